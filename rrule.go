package ical

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"
)

// Frequency enumerates the FREQ values of RFC 5545 section 3.3.10.
type Frequency string

const (
	FreqSecondly Frequency = "SECONDLY"
	FreqMinutely Frequency = "MINUTELY"
	FreqHourly   Frequency = "HOURLY"
	FreqDaily    Frequency = "DAILY"
	FreqWeekly   Frequency = "WEEKLY"
	FreqMonthly  Frequency = "MONTHLY"
	FreqYearly   Frequency = "YEARLY"
)

// ByDay is one BYDAY entry: a weekday with an optional ordinal. Ordinal 0
// means every matching weekday; +2 the second one in the interval, -1 the
// last.
type ByDay struct {
	Ordinal int
	Day     time.Weekday
}

var weekdayCodes = map[string]time.Weekday{
	"SU": time.Sunday,
	"MO": time.Monday,
	"TU": time.Tuesday,
	"WE": time.Wednesday,
	"TH": time.Thursday,
	"FR": time.Friday,
	"SA": time.Saturday,
}

var weekdayNames = map[time.Weekday]string{
	time.Sunday:    "SU",
	time.Monday:    "MO",
	time.Tuesday:   "TU",
	time.Wednesday: "WE",
	time.Thursday:  "TH",
	time.Friday:    "FR",
	time.Saturday:  "SA",
}

// RecurrenceRule is a parsed RRULE value. A zero Count means unbounded and a
// zero Until means no end date; at most one of the two is set. Exclusions
// holds the EXDATE overlay applied during generation.
type RecurrenceRule struct {
	Frequency  Frequency
	Interval   int
	Count      int
	Until      time.Time
	BySecond   []int
	ByMinute   []int
	ByHour     []int
	ByDay      []ByDay
	ByMonthDay []int
	ByYearDay  []int
	ByWeekNo   []int
	ByMonth    []int
	BySetPos   []int
	WeekStart  time.Weekday
	Exclusions ExclusionSet

	fatal bool
	sink  DiagnosticSink
}

// ParseRecurrenceRule parses the RECUR grammar of RFC 5545 section 3.3.10.
// Unknown parts are ignored. A part whose value is out of range raises a
// warning on the sink and clears that part; structural violations (missing
// or unknown FREQ, UNTIL together with COUNT, BYWEEKNO outside YEARLY) are
// reported as fatal and returned as an error, and the returned rule will
// generate no occurrences.
func ParseRecurrenceRule(text string, sink DiagnosticSink) (*RecurrenceRule, error) {
	sink = sinkOrDefault(sink)
	rule := &RecurrenceRule{
		Interval:  1,
		WeekStart: time.Sunday,
		sink:      sink,
	}
	haveFreq := false
	var fatal error
	for _, part := range strings.Split(strings.TrimSpace(text), ";") {
		if part == "" {
			continue
		}
		k, v, ok := strings.Cut(part, "=")
		if !ok {
			sink.Report(Diagnostic{Severity: SeverityWarning, Field: part, Message: "recurrence rule part without value"})
			continue
		}
		k = strings.ToUpper(strings.TrimSpace(k))
		v = strings.TrimSpace(v)
		switch k {
		case "FREQ":
			haveFreq = true
			switch f := Frequency(strings.ToUpper(v)); f {
			case FreqSecondly, FreqMinutely, FreqHourly, FreqDaily, FreqWeekly, FreqMonthly, FreqYearly:
				rule.Frequency = f
			default:
				fatal = fmt.Errorf("%w: %q", ErrUnknownFrequency, v)
			}
		case "INTERVAL":
			n, err := strconv.Atoi(v)
			if err != nil || n < 1 {
				sink.Report(Diagnostic{Severity: SeverityWarning, Field: k, Message: fmt.Sprintf("INTERVAL %q is not a positive integer", v)})
				continue
			}
			rule.Interval = n
		case "COUNT":
			n, err := strconv.Atoi(v)
			if err != nil || n < 1 {
				sink.Report(Diagnostic{Severity: SeverityWarning, Field: k, Message: fmt.Sprintf("COUNT %q is not a positive integer", v)})
				continue
			}
			rule.Count = n
		case "UNTIL":
			t, _, err := ParseICalDateTime(v, nil)
			if err != nil {
				sink.Report(Diagnostic{Severity: SeverityWarning, Field: k, Message: fmt.Sprintf("UNTIL %q is not a date or date-time", v)})
				continue
			}
			rule.Until = t
		case "WKST":
			wd, ok := weekdayCodes[strings.ToUpper(v)]
			if !ok {
				sink.Report(Diagnostic{Severity: SeverityWarning, Field: k, Message: fmt.Sprintf("WKST %q is not a weekday", v)})
				continue
			}
			rule.WeekStart = wd
		case "BYSECOND":
			rule.BySecond = parseIntList(sink, k, v, 0, 59, false)
		case "BYMINUTE":
			rule.ByMinute = parseIntList(sink, k, v, 0, 59, false)
		case "BYHOUR":
			rule.ByHour = parseIntList(sink, k, v, 0, 23, false)
		case "BYDAY":
			rule.ByDay = parseByDayList(sink, v)
		case "BYMONTHDAY":
			rule.ByMonthDay = parseIntList(sink, k, v, 1, 31, true)
		case "BYYEARDAY":
			rule.ByYearDay = parseIntList(sink, k, v, 1, 366, true)
		case "BYWEEKNO":
			rule.ByWeekNo = parseIntList(sink, k, v, 1, 53, true)
		case "BYMONTH":
			rule.ByMonth = parseIntList(sink, k, v, 1, 12, false)
		case "BYSETPOS":
			rule.BySetPos = parseIntList(sink, k, v, 1, 366, true)
		default:
			// Unknown RECUR parts are tolerated for forward compatibility.
		}
	}

	if fatal == nil {
		switch {
		case !haveFreq:
			fatal = ErrMissingFrequency
		case rule.Count > 0 && !rule.Until.IsZero():
			fatal = ErrUntilAndCount
		case len(rule.ByWeekNo) > 0 && rule.Frequency != FreqYearly:
			fatal = ErrByWeekNoRequiresYearly
		}
	}
	if fatal != nil {
		rule.fatal = true
		sink.Report(Diagnostic{Severity: SeverityFatal, Field: "RRULE", Message: fatal.Error()})
		return rule, fatal
	}
	return rule, nil
}

// parseIntList parses a comma-separated integer list. Values must lie in
// [min,max], or in ±[min,max] when signed. Any bad element raises a warning
// and discards the whole list, so a half-valid part never half-applies.
func parseIntList(sink DiagnosticSink, field, v string, min, max int, signed bool) []int {
	var out []int
	for _, e := range strings.Split(v, ",") {
		n, err := strconv.Atoi(strings.TrimSpace(e))
		if err != nil {
			sink.Report(Diagnostic{Severity: SeverityWarning, Field: field, Message: fmt.Sprintf("%s value %q is not an integer", field, e)})
			return nil
		}
		abs := n
		if abs < 0 {
			abs = -abs
		}
		if abs < min || abs > max || (!signed && n < 0) {
			sink.Report(Diagnostic{Severity: SeverityWarning, Field: field, Message: fmt.Sprintf("%s value %d out of range", field, n)})
			return nil
		}
		out = append(out, n)
	}
	return out
}

// parseByDayList parses BYDAY entries of the form [[+/-]ordinal]weekday.
func parseByDayList(sink DiagnosticSink, v string) []ByDay {
	var out []ByDay
	for _, e := range strings.Split(v, ",") {
		e = strings.ToUpper(strings.TrimSpace(e))
		if len(e) < 2 {
			sink.Report(Diagnostic{Severity: SeverityWarning, Field: "BYDAY", Message: fmt.Sprintf("BYDAY value %q too short", e)})
			return nil
		}
		code := e[len(e)-2:]
		wd, ok := weekdayCodes[code]
		if !ok {
			sink.Report(Diagnostic{Severity: SeverityWarning, Field: "BYDAY", Message: fmt.Sprintf("BYDAY value %q has no weekday", e)})
			return nil
		}
		ord := 0
		if rest := e[:len(e)-2]; rest != "" {
			n, err := strconv.Atoi(rest)
			if err != nil || n == 0 || n < -53 || n > 53 {
				sink.Report(Diagnostic{Severity: SeverityWarning, Field: "BYDAY", Message: fmt.Sprintf("BYDAY ordinal %q out of range", rest)})
				return nil
			}
			ord = n
		}
		out = append(out, ByDay{Ordinal: ord, Day: wd})
	}
	return out
}

// String renders the rule back into RECUR text. Parts at their defaults are
// omitted; the output round-trips through ParseRecurrenceRule.
func (rule *RecurrenceRule) String() string {
	parts := []string{"FREQ=" + string(rule.Frequency)}
	if rule.Interval > 1 {
		parts = append(parts, "INTERVAL="+strconv.Itoa(rule.Interval))
	}
	if rule.Count > 0 {
		parts = append(parts, "COUNT="+strconv.Itoa(rule.Count))
	}
	if !rule.Until.IsZero() {
		parts = append(parts, "UNTIL="+FormatICalDateTime(rule.Until))
	}
	if len(rule.ByMonth) > 0 {
		parts = append(parts, "BYMONTH="+joinInts(rule.ByMonth))
	}
	if len(rule.ByWeekNo) > 0 {
		parts = append(parts, "BYWEEKNO="+joinInts(rule.ByWeekNo))
	}
	if len(rule.ByYearDay) > 0 {
		parts = append(parts, "BYYEARDAY="+joinInts(rule.ByYearDay))
	}
	if len(rule.ByMonthDay) > 0 {
		parts = append(parts, "BYMONTHDAY="+joinInts(rule.ByMonthDay))
	}
	if len(rule.ByDay) > 0 {
		var days []string
		for _, bd := range rule.ByDay {
			if bd.Ordinal != 0 {
				days = append(days, strconv.Itoa(bd.Ordinal)+weekdayNames[bd.Day])
			} else {
				days = append(days, weekdayNames[bd.Day])
			}
		}
		parts = append(parts, "BYDAY="+strings.Join(days, ","))
	}
	if len(rule.ByHour) > 0 {
		parts = append(parts, "BYHOUR="+joinInts(rule.ByHour))
	}
	if len(rule.ByMinute) > 0 {
		parts = append(parts, "BYMINUTE="+joinInts(rule.ByMinute))
	}
	if len(rule.BySecond) > 0 {
		parts = append(parts, "BYSECOND="+joinInts(rule.BySecond))
	}
	if len(rule.BySetPos) > 0 {
		parts = append(parts, "BYSETPOS="+joinInts(rule.BySetPos))
	}
	if rule.WeekStart != time.Sunday {
		parts = append(parts, "WKST="+weekdayNames[rule.WeekStart])
	}
	return strings.Join(parts, ";")
}

func joinInts(ns []int) string {
	ss := make([]string, len(ns))
	for i, n := range ns {
		ss[i] = strconv.Itoa(n)
	}
	return strings.Join(ss, ",")
}

// containsInt reports list membership, resolving negative indexes against
// the given length (so -1 matches length, RFC 5545 counting from the end).
func containsInt(list []int, v, length int) bool {
	for _, n := range list {
		if n > 0 && n == v {
			return true
		}
		if n < 0 && length+n+1 == v {
			return true
		}
	}
	return false
}

func sortTimes(ts []time.Time) {
	sort.Slice(ts, func(i, j int) bool { return ts[i].Before(ts[j]) })
}
