package ical

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// TransitionKind distinguishes STANDARD and DAYLIGHT timezone observances
// (RFC 5545 section 3.6.5).
type TransitionKind string

const (
	// TransitionStandard marks a change into standard time.
	TransitionStandard = TransitionKind(ComponentStandard)
	// TransitionDaylight marks a change into daylight saving time.
	TransitionDaylight = TransitionKind(ComponentDaylight)
)

// TimezoneTransition is one observance rule: the offsets before and after
// the change (seconds east of UTC), the first instant it applies, and the
// later instants it repeats at, either as an explicit date list or as a
// recurrence rule evaluated in the observance's own local time.
type TimezoneTransition struct {
	Kind        TransitionKind
	Name        string
	OffsetFrom  int
	OffsetTo    int
	AnchorStart time.Time
	Rule        *RecurrenceRule
	Dates       []time.Time
}

type offsetEntry struct {
	at     time.Time
	offset int
}

// Timezone maps instants to UTC offsets through an ordered transition list.
// The offset table is materialized lazily on the first lookup; transitions
// must not be modified after that.
type Timezone struct {
	ID          string
	Transitions []*TimezoneTransition

	table []offsetEntry
}

// newFixedTimezone returns a timezone with one constant offset. It backs
// the local-time evaluation of an observance's own recurrence rule.
func newFixedTimezone(offset int) *Timezone {
	return &Timezone{table: []offsetEntry{{offset: offset}}}
}

// maxZoneTransitions bounds the system-zone walk against a pathological
// location that never stops producing bounds.
const maxZoneTransitions = 400

// NewTimezoneFromLocation builds a Timezone from the system database entry
// loc, covering spanStart..spanEnd padded by one year on each side so
// occurrences near the edges still resolve. Transitions with the same kind
// and offset pair are grouped into one rule carrying a date list.
func NewTimezoneFromLocation(id string, loc *time.Location, spanStart, spanEnd time.Time) *Timezone {
	start := spanStart.AddDate(-1, 0, 0)
	end := spanEnd.AddDate(1, 0, 0)

	type ruleKey struct {
		kind     TransitionKind
		from, to int
	}
	rules := map[ruleKey]*TimezoneTransition{}
	var order []*TimezoneTransition

	t := start.In(loc)
	initialName, initialOff := t.Zone()
	prevOff := initialOff
	for i := 0; i < maxZoneTransitions; i++ {
		_, boundEnd := t.ZoneBounds()
		if boundEnd.IsZero() || !boundEnd.Before(end) {
			break
		}
		next := boundEnd.In(loc)
		name, off := next.Zone()
		kind := TransitionStandard
		if off > prevOff {
			kind = TransitionDaylight
		}
		k := ruleKey{kind: kind, from: prevOff, to: off}
		if tr, ok := rules[k]; ok {
			tr.Dates = append(tr.Dates, boundEnd)
		} else {
			tr := &TimezoneTransition{
				Kind:        kind,
				Name:        name,
				OffsetFrom:  prevOff,
				OffsetTo:    off,
				AnchorStart: boundEnd,
			}
			rules[k] = tr
			order = append(order, tr)
		}
		prevOff = off
		t = next
	}
	if len(order) == 0 {
		// Fixed-offset zone; represent its single state directly.
		order = append(order, &TimezoneTransition{
			Kind:        TransitionStandard,
			Name:        initialName,
			OffsetFrom:  initialOff,
			OffsetTo:    initialOff,
			AnchorStart: start,
		})
	}
	return &Timezone{ID: id, Transitions: order}
}

// NewTimezoneFromComponent builds a Timezone from a parsed VTIMEZONE. Each
// STANDARD/DAYLIGHT block is collected in full before any instant is
// resolved, since DTSTART and RDATE are local times in the block's own
// TZOFFSETTO and that offset may appear after them in the stream.
func NewTimezoneFromComponent(v *VTimezone, sink DiagnosticSink) (*Timezone, error) {
	sink = sinkOrDefault(sink)
	id := v.GetProperty(ComponentPropertyTzid).value()
	tz := &Timezone{ID: id}
	for _, sub := range v.Components {
		var kind TransitionKind
		var props []IANAProperty
		switch s := sub.(type) {
		case *Standard:
			kind, props = TransitionStandard, s.Properties
		case *Daylight:
			kind, props = TransitionDaylight, s.Properties
		default:
			continue
		}

		// Phase one: collect the block's raw values.
		var name, dtstart, rrule string
		var rdates []string
		offsetFrom, offsetTo := 0, 0
		haveFrom, haveTo := false, false
		for _, p := range props {
			switch Property(p.IANAToken) {
			case PropertyTzname:
				name = p.Value
			case PropertyTzoffsetfrom:
				off, err := ParseUTCOffset(p.Value)
				if err != nil {
					return nil, fmt.Errorf("timezone %s: %w", id, err)
				}
				offsetFrom, haveFrom = off, true
			case PropertyTzoffsetto:
				off, err := ParseUTCOffset(p.Value)
				if err != nil {
					return nil, fmt.Errorf("timezone %s: %w", id, err)
				}
				offsetTo, haveTo = off, true
			case PropertyDtstart:
				dtstart = p.Value
			case PropertyRdate:
				rdates = append(rdates, strings.Split(p.Value, ",")...)
			case PropertyRrule:
				rrule = p.Value
			}
		}
		if !haveFrom || !haveTo || dtstart == "" {
			return nil, fmt.Errorf("timezone %s: %s block missing TZOFFSETFROM, TZOFFSETTO or DTSTART", id, kind)
		}

		// Phase two: resolve local times against the completed block.
		anchor, err := localInstant(dtstart, offsetTo)
		if err != nil {
			return nil, fmt.Errorf("timezone %s: %w", id, err)
		}
		tr := &TimezoneTransition{
			Kind:        kind,
			Name:        name,
			OffsetFrom:  offsetFrom,
			OffsetTo:    offsetTo,
			AnchorStart: anchor,
		}
		for _, rd := range rdates {
			inst, err := localInstant(strings.TrimSpace(rd), offsetTo)
			if err != nil {
				return nil, fmt.Errorf("timezone %s: %w", id, err)
			}
			if !inst.Equal(anchor) {
				tr.Dates = append(tr.Dates, inst)
			}
		}
		if rrule != "" {
			rule, err := ParseRecurrenceRule(rrule, sink)
			if err != nil {
				return nil, fmt.Errorf("timezone %s: %w", id, err)
			}
			tr.Rule = rule
		}
		tz.Transitions = append(tz.Transitions, tr)
	}
	return tz, nil
}

// localInstant reads an iCalendar local DATE-TIME and pins it to the given
// UTC offset.
func localInstant(value string, offset int) (time.Time, error) {
	wall, err := time.ParseInLocation(icalTimestampFormatLocal, strings.TrimSuffix(value, "Z"), time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing local time %q: %w", value, err)
	}
	return wall.Add(-time.Duration(offset) * time.Second), nil
}

// buildTable materializes the offset lookup table: every transition instant
// paired with the offset in force from then on, preceded by a sentinel
// carrying the earliest transition's offset-from for all earlier instants.
func (tz *Timezone) buildTable() {
	if tz.table != nil {
		return
	}
	var entries []offsetEntry
	var earliest *TimezoneTransition
	for _, tr := range tz.Transitions {
		if earliest == nil || tr.AnchorStart.Before(earliest.AnchorStart) {
			earliest = tr
		}
		instants := append([]time.Time{tr.AnchorStart}, tr.Dates...)
		if tr.Rule != nil {
			horizon := time.Date(generationCeilingYear, 12, 31, 23, 59, 59, 0, time.UTC)
			instants = append(instants, tr.Rule.Generate(tr.AnchorStart, horizon, newFixedTimezone(tr.OffsetTo))...)
		}
		for _, at := range instants {
			entries = append(entries, offsetEntry{at: at, offset: tr.OffsetTo})
		}
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].at.Before(entries[j].at) })
	sentinel := offsetEntry{}
	if earliest != nil {
		sentinel.offset = earliest.OffsetFrom
	}
	tz.table = append([]offsetEntry{sentinel}, entries...)
}

// OffsetAt returns the offset in seconds east of UTC in force at t. A nil
// Timezone means UTC. The table is scanned in order, keeping the last entry
// strictly before t, so the instant of a transition itself still reports the
// previous offset.
func (tz *Timezone) OffsetAt(t time.Time) int {
	if tz == nil {
		return 0
	}
	tz.buildTable()
	offset := tz.table[0].offset
	for _, e := range tz.table[1:] {
		if !e.at.Before(t) {
			break
		}
		offset = e.offset
	}
	return offset
}

// OffsetStringAt renders the offset at t as a UTC-OFFSET value.
func (tz *Timezone) OffsetStringAt(t time.Time) string {
	return FormatUTCOffset(tz.OffsetAt(t))
}

// AddDate shifts t by calendar units keeping the wall clock under tz stable,
// so stepping a day across a DST change keeps the local time of day.
func (tz *Timezone) AddDate(t time.Time, years, months, days int) time.Time {
	return instantFromWall(wallClock(t, tz).AddDate(years, months, days), tz)
}

// wallClock maps an instant to its wall-clock reading under tz, carried as
// a UTC-located value so field arithmetic is offset-free.
func wallClock(t time.Time, tz *Timezone) time.Time {
	return t.UTC().Add(time.Duration(tz.OffsetAt(t)) * time.Second)
}

// instantFromWall maps a wall-clock reading back to an instant. The offset
// is resolved twice: once with the wall value as a first guess, then again
// at the resulting instant, which settles readings near a transition.
func instantFromWall(w time.Time, tz *Timezone) time.Time {
	if tz == nil {
		return w
	}
	guess := w.Add(-time.Duration(tz.OffsetAt(w)) * time.Second)
	return w.Add(-time.Duration(tz.OffsetAt(guess)) * time.Second)
}

// VTimezone renders the timezone as a VTIMEZONE component with one
// STANDARD/DAYLIGHT block per transition rule. Explicit date lists become a
// multi-valued RDATE property.
func (tz *Timezone) VTimezone() *VTimezone {
	v := NewTimezone(tz.ID)
	for _, tr := range tz.Transitions {
		sub := ComponentBase{}
		localAnchor := tr.AnchorStart.Add(time.Duration(tr.OffsetTo) * time.Second)
		sub.SetProperty(ComponentPropertyDtStart, localAnchor.UTC().Format(icalTimestampFormatLocal))
		sub.SetProperty(ComponentPropertyTzoffsetfrom, FormatUTCOffset(tr.OffsetFrom))
		sub.SetProperty(ComponentPropertyTzoffsetto, FormatUTCOffset(tr.OffsetTo))
		if tr.Name != "" {
			sub.SetProperty(ComponentPropertyTzname, tr.Name)
		}
		if tr.Rule != nil {
			sub.SetProperty(ComponentPropertyRrule, tr.Rule.String())
		}
		if len(tr.Dates) > 0 {
			vals := make([]string, len(tr.Dates))
			for i, d := range tr.Dates {
				vals[i] = d.Add(time.Duration(tr.OffsetTo) * time.Second).UTC().Format(icalTimestampFormatLocal)
			}
			sub.SetProperty(ComponentPropertyRdate, strings.Join(vals, ","))
		}
		switch tr.Kind {
		case TransitionDaylight:
			v.Components = append(v.Components, &Daylight{ComponentBase: sub})
		default:
			v.Components = append(v.Components, &Standard{ComponentBase: sub})
		}
	}
	return v
}
