package ical

import (
	"time"
)

// Expansion safety ceilings. A rule that is still producing intervals past
// these bounds is treated as runaway input: expansion stops and an abort
// diagnostic is reported.
const (
	// maxGenerationIntervals caps how many base intervals one Generate call
	// will evaluate.
	maxGenerationIntervals = 2000
	// generationCeilingYear is the last wall-clock year occurrences are
	// generated for.
	generationCeilingYear = 2050
)

// ExclusionSet holds EXDATE overlays for a rule. Exact instants and whole
// days are kept apart: an instant only matches to the second, a day blanks
// every occurrence whose wall-clock date (under the calculation timezone)
// equals it.
type ExclusionSet struct {
	instants map[int64]struct{}
	days     map[string]struct{}
}

// AddInstant excludes one exact occurrence instant.
func (x *ExclusionSet) AddInstant(t time.Time) {
	if x.instants == nil {
		x.instants = map[int64]struct{}{}
	}
	x.instants[t.Truncate(time.Second).Unix()] = struct{}{}
}

// AddDay excludes a whole day. The day is taken from t's own date fields, as
// an EXDATE;VALUE=DATE names a local day rather than an instant.
func (x *ExclusionSet) AddDay(t time.Time) {
	if x.days == nil {
		x.days = map[string]struct{}{}
	}
	x.days[t.Format(icalDateFormatLocal)] = struct{}{}
}

// Excludes reports whether the occurrence at t is suppressed, either as an
// exact instant or because its wall-clock date under tz is excluded.
func (x *ExclusionSet) Excludes(t time.Time, tz *Timezone) bool {
	if x == nil {
		return false
	}
	if _, ok := x.instants[t.Truncate(time.Second).Unix()]; ok {
		return true
	}
	if len(x.days) == 0 {
		return false
	}
	_, ok := x.days[wallClock(t, tz).Format(icalDateFormatLocal)]
	return ok
}

// Empty reports whether the set holds no exclusions at all.
func (x *ExclusionSet) Empty() bool {
	return x == nil || (len(x.instants) == 0 && len(x.days) == 0)
}

// Generate expands the rule into occurrence instants, starting at start and
// stopping at the earliest of COUNT, UNTIL, the caller's max (zero means no
// caller bound) and the package safety ceilings. tz is the calculation
// timezone for all wall-clock arithmetic; nil means UTC. The result is
// sorted, deduplicated and free of excluded instants. A rule that failed
// structural validation generates nothing.
func (rule *RecurrenceRule) Generate(start, max time.Time, tz *Timezone) []time.Time {
	if rule == nil || rule.fatal || rule.Frequency == "" {
		return nil
	}
	sink := sinkOrDefault(rule.sink)
	interval := rule.Interval
	if interval < 1 {
		interval = 1
	}
	start = start.Truncate(time.Second)
	startWall := wallClock(start, tz)

	var out []time.Time
	done := false
	for n := 0; !done; n++ {
		if n >= maxGenerationIntervals {
			sink.Report(Diagnostic{Severity: SeverityAbort, Field: "RRULE", Message: "occurrence expansion exceeded the interval ceiling"})
			break
		}
		anchor, valid := rule.intervalAnchor(startWall, n*interval)
		if anchor.Year() > generationCeilingYear {
			break
		}
		// The earliest wall time this interval can produce. Once it lies
		// beyond every bound the loop can stop.
		periodInstant := instantFromWall(rule.periodStart(anchor), tz)
		if !max.IsZero() && periodInstant.After(max) {
			break
		}
		if !rule.Until.IsZero() && periodInstant.After(rule.Until) {
			break
		}
		if rule.Count > 0 && len(out) >= rule.Count {
			break
		}
		if !valid && !rule.hasDayFilters() {
			// A plain rule anchored to a day this interval does not have,
			// such as the 31st of a short month.
			continue
		}

		cands := rule.intervalCandidates(anchor, startWall)
		sortTimes(cands)
		if len(rule.BySetPos) > 0 {
			cands = pickSetPos(cands, rule.BySetPos)
		}
		for _, cw := range cands {
			inst := instantFromWall(cw, tz)
			if inst.Before(start) {
				continue
			}
			if !rule.Until.IsZero() && inst.After(rule.Until) {
				continue
			}
			if !max.IsZero() && inst.After(max) {
				continue
			}
			if len(out) > 0 && !out[len(out)-1].Before(inst) {
				if out[len(out)-1].Equal(inst) {
					continue
				}
			}
			out = append(out, inst)
			if rule.Count > 0 && len(out) >= rule.Count {
				done = true
				break
			}
		}
	}

	if rule.Exclusions.Empty() {
		sortTimes(out)
		return dedupeTimes(out)
	}
	kept := out[:0]
	for _, t := range out {
		if !rule.Exclusions.Excludes(t, tz) {
			kept = append(kept, t)
		}
	}
	sortTimes(kept)
	return dedupeTimes(kept)
}

// intervalAnchor returns the wall-clock anchor of interval n relative to the
// wall start. For MONTHLY and YEARLY the month arithmetic is done on the
// year and month numbers directly so a short month never rolls over into the
// next one; when the start's day of month does not exist in the target
// month, the anchor snaps to the first and valid is false.
func (rule *RecurrenceRule) intervalAnchor(startWall time.Time, n int) (anchor time.Time, valid bool) {
	switch rule.Frequency {
	case FreqSecondly:
		return startWall.Add(time.Duration(n) * time.Second), true
	case FreqMinutely:
		return startWall.Add(time.Duration(n) * time.Minute), true
	case FreqHourly:
		return startWall.Add(time.Duration(n) * time.Hour), true
	case FreqDaily:
		return startWall.AddDate(0, 0, n), true
	case FreqWeekly:
		return startWall.AddDate(0, 0, 7*n), true
	case FreqMonthly:
		y := startWall.Year()
		m := int(startWall.Month()) - 1 + n
		y += m / 12
		m = m % 12
		month := time.Month(m + 1)
		if startWall.Day() > daysInMonth(y, month) {
			return time.Date(y, month, 1, startWall.Hour(), startWall.Minute(), startWall.Second(), 0, time.UTC), false
		}
		return time.Date(y, month, startWall.Day(), startWall.Hour(), startWall.Minute(), startWall.Second(), 0, time.UTC), true
	case FreqYearly:
		y := startWall.Year() + n
		if startWall.Day() > daysInMonth(y, startWall.Month()) {
			return time.Date(y, startWall.Month(), 1, startWall.Hour(), startWall.Minute(), startWall.Second(), 0, time.UTC), false
		}
		return time.Date(y, startWall.Month(), startWall.Day(), startWall.Hour(), startWall.Minute(), startWall.Second(), 0, time.UTC), true
	}
	return startWall, true
}

// periodStart is the earliest wall time interval candidates can fall on.
func (rule *RecurrenceRule) periodStart(anchor time.Time) time.Time {
	switch rule.Frequency {
	case FreqSecondly:
		return anchor
	case FreqMinutely:
		return anchor.Truncate(time.Minute)
	case FreqHourly:
		return anchor.Truncate(time.Hour)
	case FreqDaily:
		return midnight(anchor)
	case FreqWeekly:
		return startOfWeek(anchor, rule.WeekStart)
	case FreqMonthly:
		return time.Date(anchor.Year(), anchor.Month(), 1, 0, 0, 0, 0, time.UTC)
	case FreqYearly:
		return time.Date(anchor.Year(), 1, 1, 0, 0, 0, 0, time.UTC)
	}
	return anchor
}

// hasDayFilters reports whether the rule carries parts that re-derive the
// day of month, making the anchor's own day irrelevant.
func (rule *RecurrenceRule) hasDayFilters() bool {
	switch rule.Frequency {
	case FreqMonthly:
		return len(rule.ByMonthDay) > 0 || len(rule.ByDay) > 0
	case FreqYearly:
		return len(rule.ByMonth) > 0 || len(rule.ByWeekNo) > 0 || len(rule.ByYearDay) > 0 ||
			len(rule.ByMonthDay) > 0 || len(rule.ByDay) > 0
	}
	return false
}

// intervalCandidates produces the wall-clock candidates of one interval,
// applying the BYxxx parts in the RFC 5545 evaluation order BYMONTH,
// BYWEEKNO, BYYEARDAY, BYMONTHDAY, BYDAY, BYHOUR, BYMINUTE, BYSECOND.
// Whether a part limits or expands depends on the frequency, per the table
// in section 3.3.10.
func (rule *RecurrenceRule) intervalCandidates(anchor, startWall time.Time) []time.Time {
	switch rule.Frequency {
	case FreqSecondly:
		if rule.allowsSecond(anchor) {
			return []time.Time{anchor}
		}
		return nil
	case FreqMinutely:
		if !rule.allowsMinute(anchor) {
			return nil
		}
		return crossTimes([]time.Time{midnight(anchor)},
			[]int{anchor.Hour()}, []int{anchor.Minute()}, orDefault(rule.BySecond, anchor.Second()))
	case FreqHourly:
		if !rule.allowsHour(anchor) {
			return nil
		}
		return crossTimes([]time.Time{midnight(anchor)},
			[]int{anchor.Hour()}, orDefault(rule.ByMinute, anchor.Minute()), orDefault(rule.BySecond, anchor.Second()))
	case FreqDaily:
		days := rule.dailyDays(anchor)
		return rule.expandTimes(days, startWall)
	case FreqWeekly:
		days := rule.weeklyDays(anchor)
		return rule.expandTimes(days, startWall)
	case FreqMonthly:
		days := rule.monthlyDays(anchor.Year(), anchor.Month(), anchor)
		return rule.expandTimes(days, startWall)
	case FreqYearly:
		days := rule.yearlyDays(anchor, startWall)
		return rule.expandTimes(days, startWall)
	}
	return nil
}

func (rule *RecurrenceRule) allowsHour(t time.Time) bool {
	if len(rule.ByMonth) > 0 && !containsInt(rule.ByMonth, int(t.Month()), 12) {
		return false
	}
	if len(rule.ByMonthDay) > 0 && !containsInt(rule.ByMonthDay, t.Day(), daysInMonth(t.Year(), t.Month())) {
		return false
	}
	if len(rule.ByDay) > 0 && !weekdayListed(rule.ByDay, t.Weekday()) {
		return false
	}
	if len(rule.ByHour) > 0 && !containsInt(rule.ByHour, t.Hour(), 23) {
		return false
	}
	return true
}

func (rule *RecurrenceRule) allowsMinute(t time.Time) bool {
	if !rule.allowsHour(t) {
		return false
	}
	if len(rule.ByMinute) > 0 && !containsInt(rule.ByMinute, t.Minute(), 59) {
		return false
	}
	return true
}

func (rule *RecurrenceRule) allowsSecond(t time.Time) bool {
	if !rule.allowsMinute(t) {
		return false
	}
	if len(rule.BySecond) > 0 && !containsInt(rule.BySecond, t.Second(), 59) {
		return false
	}
	return true
}

// dailyDays applies the limiting parts to the anchor day.
func (rule *RecurrenceRule) dailyDays(anchor time.Time) []time.Time {
	if len(rule.ByMonth) > 0 && !containsInt(rule.ByMonth, int(anchor.Month()), 12) {
		return nil
	}
	if len(rule.ByMonthDay) > 0 && !containsInt(rule.ByMonthDay, anchor.Day(), daysInMonth(anchor.Year(), anchor.Month())) {
		return nil
	}
	if len(rule.ByDay) > 0 && !weekdayListed(rule.ByDay, anchor.Weekday()) {
		return nil
	}
	return []time.Time{midnight(anchor)}
}

// weeklyDays expands BYDAY within the anchor's week, aligned to WKST.
func (rule *RecurrenceRule) weeklyDays(anchor time.Time) []time.Time {
	var days []time.Time
	if len(rule.ByDay) > 0 {
		ws := startOfWeek(anchor, rule.WeekStart)
		for i := 0; i < 7; i++ {
			d := ws.AddDate(0, 0, i)
			if weekdayListed(rule.ByDay, d.Weekday()) {
				days = append(days, d)
			}
		}
	} else {
		days = []time.Time{midnight(anchor)}
	}
	if len(rule.ByMonth) > 0 {
		days = filterDays(days, func(d time.Time) bool {
			return containsInt(rule.ByMonth, int(d.Month()), 12)
		})
	}
	return days
}

// monthlyDays resolves the day set of one month. BYMONTHDAY expands, BYDAY
// expands when alone and limits when BYMONTHDAY is present, and a rule with
// neither falls back to the anchor's own day.
func (rule *RecurrenceRule) monthlyDays(year int, month time.Month, anchor time.Time) []time.Time {
	if len(rule.ByMonth) > 0 && !containsInt(rule.ByMonth, int(month), 12) {
		return nil
	}
	dim := daysInMonth(year, month)
	var days []time.Time
	switch {
	case len(rule.ByMonthDay) > 0:
		for d := 1; d <= dim; d++ {
			if containsInt(rule.ByMonthDay, d, dim) {
				days = append(days, time.Date(year, month, d, 0, 0, 0, 0, time.UTC))
			}
		}
		if len(rule.ByDay) > 0 {
			days = filterDays(days, func(d time.Time) bool {
				return rule.byDayMatchesInMonth(d, dim)
			})
		}
	case len(rule.ByDay) > 0:
		days = rule.byDayExpandInMonth(year, month)
	default:
		days = []time.Time{time.Date(year, month, anchor.Day(), 0, 0, 0, 0, time.UTC)}
	}
	return days
}

// byDayExpandInMonth expands BYDAY entries over a month, resolving ordinals
// against that month's weekday occurrences.
func (rule *RecurrenceRule) byDayExpandInMonth(year int, month time.Month) []time.Time {
	dim := daysInMonth(year, month)
	var days []time.Time
	for _, bd := range rule.ByDay {
		var matching []time.Time
		for d := 1; d <= dim; d++ {
			t := time.Date(year, month, d, 0, 0, 0, 0, time.UTC)
			if t.Weekday() == bd.Day {
				matching = append(matching, t)
			}
		}
		switch {
		case bd.Ordinal == 0:
			days = append(days, matching...)
		case bd.Ordinal > 0 && bd.Ordinal <= len(matching):
			days = append(days, matching[bd.Ordinal-1])
		case bd.Ordinal < 0 && -bd.Ordinal <= len(matching):
			days = append(days, matching[len(matching)+bd.Ordinal])
		}
	}
	return days
}

// byDayMatchesInMonth reports whether day d satisfies any BYDAY entry when
// BYDAY acts as a limit, honoring ordinals against the month.
func (rule *RecurrenceRule) byDayMatchesInMonth(d time.Time, dim int) bool {
	for _, bd := range rule.ByDay {
		if d.Weekday() != bd.Day {
			continue
		}
		if bd.Ordinal == 0 {
			return true
		}
		nth := (d.Day()-1)/7 + 1
		if bd.Ordinal > 0 && nth == bd.Ordinal {
			return true
		}
		if bd.Ordinal < 0 {
			remaining := (dim-d.Day())/7 + 1
			if remaining == -bd.Ordinal {
				return true
			}
		}
	}
	return false
}

// yearlyDays resolves the day set of one year following the BYMONTH,
// BYWEEKNO, BYYEARDAY, BYMONTHDAY, BYDAY precedence.
func (rule *RecurrenceRule) yearlyDays(anchor, startWall time.Time) []time.Time {
	year := anchor.Year()
	switch {
	case len(rule.ByWeekNo) > 0:
		return rule.weekNoDays(year, startWall)
	case len(rule.ByYearDay) > 0:
		return rule.yearDayDays(year)
	case len(rule.ByMonthDay) > 0:
		months := rule.ByMonth
		if len(months) == 0 {
			months = []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12}
		}
		var days []time.Time
		for _, m := range months {
			days = append(days, rule.monthlyDays(year, time.Month(m), anchor)...)
		}
		return days
	case len(rule.ByDay) > 0 && len(rule.ByMonth) > 0:
		// Ordinals bind to the month when BYMONTH is present.
		var days []time.Time
		for _, m := range rule.ByMonth {
			days = append(days, rule.byDayExpandInMonth(year, time.Month(m))...)
		}
		return days
	case len(rule.ByDay) > 0:
		return rule.byDayExpandInYear(year)
	case len(rule.ByMonth) > 0:
		var days []time.Time
		for _, m := range rule.ByMonth {
			if anchor.Day() <= daysInMonth(year, time.Month(m)) {
				days = append(days, time.Date(year, time.Month(m), anchor.Day(), 0, 0, 0, 0, time.UTC))
			}
		}
		return days
	}
	return []time.Time{midnight(anchor)}
}

// weekNoDays expands BYWEEKNO over the WKST-aligned week numbering of the
// year: week one is the first week with at least four of its days in the
// year, matching the ISO convention generalized to any week start.
func (rule *RecurrenceRule) weekNoDays(year int, startWall time.Time) []time.Time {
	starts := weekStarts(year, rule.WeekStart)
	var days []time.Time
	for _, wn := range rule.ByWeekNo {
		idx := wn
		if idx < 0 {
			idx = len(starts) + wn + 1
		}
		if idx < 1 || idx > len(starts) {
			continue
		}
		ws := starts[idx-1]
		if len(rule.ByDay) > 0 {
			for i := 0; i < 7; i++ {
				d := ws.AddDate(0, 0, i)
				if weekdayListed(rule.ByDay, d.Weekday()) {
					days = append(days, d)
				}
			}
		} else {
			// Without BYDAY the start's weekday selects the day in the week.
			off := int((startWall.Weekday() - rule.WeekStart + 7) % 7)
			days = append(days, ws.AddDate(0, 0, off))
		}
	}
	if len(rule.ByMonth) > 0 {
		days = filterDays(days, func(d time.Time) bool {
			return containsInt(rule.ByMonth, int(d.Month()), 12)
		})
	}
	return days
}

// yearDayDays expands BYYEARDAY, resolving negatives against the year
// length, then applies the remaining day-level limits.
func (rule *RecurrenceRule) yearDayDays(year int) []time.Time {
	yl := 365
	if isLeapYear(year) {
		yl = 366
	}
	jan1 := time.Date(year, 1, 1, 0, 0, 0, 0, time.UTC)
	var days []time.Time
	for _, yd := range rule.ByYearDay {
		d := yd
		if d < 0 {
			d = yl + yd + 1
		}
		if d < 1 || d > yl {
			continue
		}
		days = append(days, jan1.AddDate(0, 0, d-1))
	}
	days = filterDays(days, func(d time.Time) bool {
		if len(rule.ByMonth) > 0 && !containsInt(rule.ByMonth, int(d.Month()), 12) {
			return false
		}
		if len(rule.ByMonthDay) > 0 && !containsInt(rule.ByMonthDay, d.Day(), daysInMonth(d.Year(), d.Month())) {
			return false
		}
		if len(rule.ByDay) > 0 && !weekdayListed(rule.ByDay, d.Weekday()) {
			return false
		}
		return true
	})
	return days
}

// byDayExpandInYear expands BYDAY with ordinals resolved against the whole
// year, for YEARLY rules without BYMONTH.
func (rule *RecurrenceRule) byDayExpandInYear(year int) []time.Time {
	jan1 := time.Date(year, 1, 1, 0, 0, 0, 0, time.UTC)
	var days []time.Time
	for _, bd := range rule.ByDay {
		first := jan1.AddDate(0, 0, int((bd.Day-jan1.Weekday()+7)%7))
		var matching []time.Time
		for d := first; d.Year() == year; d = d.AddDate(0, 0, 7) {
			matching = append(matching, d)
		}
		switch {
		case bd.Ordinal == 0:
			days = append(days, matching...)
		case bd.Ordinal > 0 && bd.Ordinal <= len(matching):
			days = append(days, matching[bd.Ordinal-1])
		case bd.Ordinal < 0 && -bd.Ordinal <= len(matching):
			days = append(days, matching[len(matching)+bd.Ordinal])
		}
	}
	return days
}

// expandTimes crosses the day set with the time-of-day parts. BYHOUR,
// BYMINUTE and BYSECOND expand for day-or-coarser frequencies; absent parts
// fall back to the start's wall-clock fields.
func (rule *RecurrenceRule) expandTimes(days []time.Time, startWall time.Time) []time.Time {
	if len(days) == 0 {
		return nil
	}
	return crossTimes(days,
		orDefault(rule.ByHour, startWall.Hour()),
		orDefault(rule.ByMinute, startWall.Minute()),
		orDefault(rule.BySecond, startWall.Second()))
}

func crossTimes(days []time.Time, hours, minutes, seconds []int) []time.Time {
	out := make([]time.Time, 0, len(days)*len(hours)*len(minutes)*len(seconds))
	for _, d := range days {
		for _, h := range hours {
			for _, m := range minutes {
				for _, s := range seconds {
					out = append(out, time.Date(d.Year(), d.Month(), d.Day(), h, m, s, 0, time.UTC))
				}
			}
		}
	}
	return out
}

// pickSetPos keeps only the listed positions of one interval's sorted
// candidate set; positive positions count from one, negative from the end.
func pickSetPos(cands []time.Time, setPos []int) []time.Time {
	var out []time.Time
	for _, pos := range setPos {
		idx := pos - 1
		if pos < 0 {
			idx = len(cands) + pos
		}
		if idx >= 0 && idx < len(cands) {
			out = append(out, cands[idx])
		}
	}
	sortTimes(out)
	return dedupeTimes(out)
}

func orDefault(list []int, def int) []int {
	if len(list) > 0 {
		return list
	}
	return []int{def}
}

func weekdayListed(byDay []ByDay, wd time.Weekday) bool {
	for _, bd := range byDay {
		if bd.Day == wd {
			return true
		}
	}
	return false
}

func filterDays(days []time.Time, keep func(time.Time) bool) []time.Time {
	out := days[:0]
	for _, d := range days {
		if keep(d) {
			out = append(out, d)
		}
	}
	return out
}

func dedupeTimes(ts []time.Time) []time.Time {
	if len(ts) < 2 {
		return ts
	}
	out := ts[:1]
	for _, t := range ts[1:] {
		if !t.Equal(out[len(out)-1]) {
			out = append(out, t)
		}
	}
	return out
}

func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func startOfWeek(t time.Time, wkst time.Weekday) time.Time {
	d := midnight(t)
	return d.AddDate(0, 0, -int((d.Weekday()-wkst+7)%7))
}

// weekStarts returns the start day of every numbered week of the year under
// the given week start. Week one is the first week with at least four days
// inside the year; the last week is the final one still holding four.
func weekStarts(year int, wkst time.Weekday) []time.Time {
	jan1 := time.Date(year, 1, 1, 0, 0, 0, 0, time.UTC)
	ws := jan1.AddDate(0, 0, -int((jan1.Weekday()-wkst+7)%7))
	if int(jan1.Sub(ws).Hours())/24 > 3 {
		ws = ws.AddDate(0, 0, 7)
	}
	var out []time.Time
	for s := ws; s.AddDate(0, 0, 3).Year() <= year; s = s.AddDate(0, 0, 7) {
		out = append(out, s)
	}
	return out
}

func daysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

func isLeapYear(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}
