package ical

import (
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Component is any parsed calendar component. Use a type switch over
// *VEvent, *VTodo, *VJournal, *VBusy, *VTimezone, *VAlarm, *Standard,
// *Daylight and *GeneralComponent.
type Component interface {
	UnknownPropertiesIANAProperties() []IANAProperty
	SubComponents() []Component
	SerializeTo(b io.Writer, serialConfig *SerializationConfiguration) error
}

var (
	_ Component = (*VEvent)(nil)
	_ Component = (*VTodo)(nil)
	_ Component = (*VBusy)(nil)
	_ Component = (*VJournal)(nil)
	_ Component = (*VTimezone)(nil)
	_ Component = (*VAlarm)(nil)
	_ Component = (*Standard)(nil)
	_ Component = (*Daylight)(nil)
	_ Component = (*GeneralComponent)(nil)
)

type ComponentBase struct {
	Properties []IANAProperty
	Components []Component
}

func (cb *ComponentBase) UnknownPropertiesIANAProperties() []IANAProperty {
	return cb.Properties
}

func (cb *ComponentBase) SubComponents() []Component {
	return cb.Components
}

func (cb *ComponentBase) serializeThis(writer io.Writer, componentType ComponentType, serialConfig *SerializationConfiguration) error {
	if _, err := io.WriteString(writer, "BEGIN:"+string(componentType)+serialConfig.NewLine); err != nil {
		return fmt.Errorf("serializing %s: %w", componentType, err)
	}
	for _, p := range cb.Properties {
		if err := p.serialize(writer, serialConfig); err != nil {
			return err
		}
	}
	for _, c := range cb.Components {
		if err := c.SerializeTo(writer, serialConfig); err != nil {
			return err
		}
	}
	_, err := io.WriteString(writer, "END:"+string(componentType)+serialConfig.NewLine)
	return err
}

func NewComponent(uniqueId string) ComponentBase {
	return ComponentBase{
		Properties: []IANAProperty{
			{BaseProperty{IANAToken: string(ComponentPropertyUniqueId), Value: uniqueId}},
		},
	}
}

// GetProperty returns the first match for the property, or nil.
func (cb *ComponentBase) GetProperty(componentProperty ComponentProperty) *IANAProperty {
	for i := range cb.Properties {
		if cb.Properties[i].IANAToken == string(componentProperty) {
			return &cb.Properties[i]
		}
	}
	return nil
}

// GetProperties returns all matches for the property.
func (cb *ComponentBase) GetProperties(componentProperty ComponentProperty) []*IANAProperty {
	var result []*IANAProperty
	for i := range cb.Properties {
		if cb.Properties[i].IANAToken == string(componentProperty) {
			result = append(result, &cb.Properties[i])
		}
	}
	return result
}

// HasProperty reports whether the property is present on the component.
func (cb *ComponentBase) HasProperty(componentProperty ComponentProperty) bool {
	return cb.GetProperty(componentProperty) != nil
}

// value is a nil-tolerant accessor so lookups can be chained.
func (p *IANAProperty) value() string {
	if p == nil {
		return ""
	}
	return p.Value
}

// SetProperty replaces the first match for the property, or adds it.
func (cb *ComponentBase) SetProperty(property ComponentProperty, value string, params ...PropertyParameter) {
	for i := range cb.Properties {
		if cb.Properties[i].IANAToken == string(property) {
			cb.Properties[i].Value = value
			cb.Properties[i].ICalParameters = map[string][]string{}
			for _, p := range params {
				k, v := p.KeyValue()
				cb.Properties[i].ICalParameters[k] = v
			}
			return
		}
	}
	cb.AddProperty(property, value, params...)
}

// AddProperty appends a property.
func (cb *ComponentBase) AddProperty(property ComponentProperty, value string, params ...PropertyParameter) {
	r := IANAProperty{
		BaseProperty{
			IANAToken:      string(property),
			Value:          value,
			ICalParameters: map[string][]string{},
		},
	}
	for _, p := range params {
		k, v := p.KeyValue()
		r.ICalParameters[k] = v
	}
	cb.Properties = append(cb.Properties, r)
}

// RemoveProperty removes all properties of the given type and returns them.
func (cb *ComponentBase) RemoveProperty(removeProp ComponentProperty) []IANAProperty {
	var kept, removed []IANAProperty
	for i := range cb.Properties {
		if cb.Properties[i].IANAToken != string(removeProp) {
			kept = append(kept, cb.Properties[i])
		} else {
			removed = append(removed, cb.Properties[i])
		}
	}
	cb.Properties = kept
	return removed
}

func (cb *ComponentBase) SetCreatedTime(t time.Time, params ...PropertyParameter) {
	cb.SetProperty(ComponentPropertyCreated, FormatICalDateTime(t), params...)
}

func (cb *ComponentBase) SetDtStampTime(t time.Time, params ...PropertyParameter) {
	cb.SetProperty(ComponentPropertyDtstamp, FormatICalDateTime(t), params...)
}

func (cb *ComponentBase) SetModifiedAt(t time.Time, params ...PropertyParameter) {
	cb.SetProperty(ComponentPropertyLastModified, FormatICalDateTime(t), params...)
}

func (cb *ComponentBase) SetSequence(seq int, params ...PropertyParameter) {
	cb.SetProperty(ComponentPropertySequence, strconv.Itoa(seq), params...)
}

func (cb *ComponentBase) SetStartAt(t time.Time, params ...PropertyParameter) {
	cb.SetProperty(ComponentPropertyDtStart, FormatICalDateTime(t), params...)
}

func (cb *ComponentBase) SetAllDayStartAt(t time.Time, params ...PropertyParameter) {
	cb.SetProperty(
		ComponentPropertyDtStart,
		FormatICalDate(t),
		append(params, WithValue(string(ValueDataTypeDate)))...,
	)
}

func (cb *ComponentBase) SetEndAt(t time.Time, params ...PropertyParameter) {
	cb.SetProperty(ComponentPropertyDtEnd, FormatICalDateTime(t), params...)
}

func (cb *ComponentBase) SetAllDayEndAt(t time.Time, params ...PropertyParameter) {
	cb.SetProperty(
		ComponentPropertyDtEnd,
		FormatICalDate(t),
		append(params, WithValue(string(ValueDataTypeDate)))...,
	)
}

// SetDuration sets the missing one of DTSTART/DTEND so the component spans
// d. Only those two properties are touched, not DURATION itself.
func (cb *ComponentBase) SetDuration(d time.Duration) error {
	startProp := cb.GetProperty(ComponentPropertyDtStart)
	if startProp != nil {
		t, err := cb.GetStartAt()
		if err == nil {
			v, _ := startProp.parameterValue(ParameterValue)
			if v == string(ValueDataTypeDate) {
				cb.SetAllDayEndAt(t.Add(d))
			} else {
				cb.SetEndAt(t.Add(d))
			}
			return nil
		}
	}
	endProp := cb.GetProperty(ComponentPropertyDtEnd)
	if endProp != nil {
		t, err := cb.GetEndAt()
		if err == nil {
			v, _ := endProp.parameterValue(ParameterValue)
			if v == string(ValueDataTypeDate) {
				cb.SetAllDayStartAt(t.Add(-d))
			} else {
				cb.SetStartAt(t.Add(-d))
			}
			return nil
		}
	}
	return ErrStartAndEndDateNotDefined
}

// getTimeProp reads a DATE or DATE-TIME property. expectAllDay requires the
// value to be a bare date.
func (cb *ComponentBase) getTimeProp(componentProperty ComponentProperty, expectAllDay bool) (time.Time, error) {
	timeProp := cb.GetProperty(componentProperty)
	if timeProp == nil {
		return time.Time{}, fmt.Errorf("%w: %s", ErrorPropertyNotFound, componentProperty)
	}
	t, isDate, err := ParseICalDateTime(timeProp.Value, timeProp.ICalParameters)
	if err != nil {
		return time.Time{}, err
	}
	if expectAllDay && !isDate {
		return time.Time{}, fmt.Errorf("expected an all-day value, got %q", timeProp.Value)
	}
	return t, nil
}

func (cb *ComponentBase) GetStartAt() (time.Time, error) {
	return cb.getTimeProp(ComponentPropertyDtStart, false)
}

func (cb *ComponentBase) GetEndAt() (time.Time, error) {
	return cb.getTimeProp(ComponentPropertyDtEnd, false)
}

func (cb *ComponentBase) GetAllDayStartAt() (time.Time, error) {
	return cb.getTimeProp(ComponentPropertyDtStart, true)
}

func (cb *ComponentBase) GetLastModifiedAt() (time.Time, error) {
	return cb.getTimeProp(ComponentPropertyLastModified, false)
}

func (cb *ComponentBase) GetDtStampTime() (time.Time, error) {
	return cb.getTimeProp(ComponentPropertyDtstamp, false)
}

func (cb *ComponentBase) SetSummary(s string, params ...PropertyParameter) {
	cb.SetProperty(ComponentPropertySummary, s, params...)
}

func (cb *ComponentBase) SetStatus(s ObjectStatus, params ...PropertyParameter) {
	cb.SetProperty(ComponentPropertyStatus, string(s), params...)
}

func (cb *ComponentBase) SetDescription(s string, params ...PropertyParameter) {
	cb.SetProperty(ComponentPropertyDescription, s, params...)
}

func (cb *ComponentBase) SetLocation(s string, params ...PropertyParameter) {
	cb.SetProperty(ComponentPropertyLocation, s, params...)
}

func (cb *ComponentBase) SetURL(s string, params ...PropertyParameter) {
	cb.SetProperty(ComponentPropertyUrl, s, params...)
}

func (cb *ComponentBase) SetOrganizer(s string, params ...PropertyParameter) {
	if !strings.HasPrefix(s, "mailto:") {
		s = "mailto:" + s
	}
	cb.SetProperty(ComponentPropertyOrganizer, s, params...)
}

func (cb *ComponentBase) SetClass(c Classification, params ...PropertyParameter) {
	cb.SetProperty(ComponentPropertyClass, string(c), params...)
}

func (cb *ComponentBase) setGeo(lat, lng interface{}, params ...PropertyParameter) {
	cb.SetProperty(ComponentPropertyGeo, fmt.Sprintf("%v;%v", lat, lng), params...)
}

func (cb *ComponentBase) setPriority(p int, params ...PropertyParameter) {
	cb.SetProperty(ComponentPropertyPriority, strconv.Itoa(p), params...)
}

func (cb *ComponentBase) AddAttendee(s string, params ...PropertyParameter) {
	if !strings.HasPrefix(s, "mailto:") {
		s = "mailto:" + s
	}
	cb.AddProperty(ComponentPropertyAttendee, s, params...)
}

func (cb *ComponentBase) AddExdate(s string, params ...PropertyParameter) {
	cb.AddProperty(ComponentPropertyExdate, s, params...)
}

func (cb *ComponentBase) AddRdate(s string, params ...PropertyParameter) {
	cb.AddProperty(ComponentPropertyRdate, s, params...)
}

func (cb *ComponentBase) AddRrule(s string, params ...PropertyParameter) {
	cb.AddProperty(ComponentPropertyRrule, s, params...)
}

func (cb *ComponentBase) AddAttachment(s string, params ...PropertyParameter) {
	cb.AddProperty(ComponentPropertyAttach, s, params...)
}

func (cb *ComponentBase) AddAttachmentURL(uri string, contentType string) {
	cb.AddAttachment(uri, WithFmtType(contentType))
}

func (cb *ComponentBase) AddAttachmentBinary(binary []byte, contentType string) {
	cb.AddAttachment(base64.StdEncoding.EncodeToString(binary),
		WithFmtType(contentType), WithEncoding("BASE64"), WithValue("BINARY"),
	)
}

func (cb *ComponentBase) AddComment(s string, params ...PropertyParameter) {
	cb.AddProperty(ComponentPropertyComment, s, params...)
}

func (cb *ComponentBase) AddCategory(s string, params ...PropertyParameter) {
	cb.AddProperty(ComponentPropertyCategories, s, params...)
}

func (cb *ComponentBase) Id() string {
	p := cb.GetProperty(ComponentPropertyUniqueId)
	if p != nil {
		return FromText(p.Value)
	}
	return ""
}

// Occurrences expands the component's recurrence set up to max (zero means
// no caller bound): the RRULE occurrences starting at DTSTART, minus the
// EXDATE overlay, plus literal RDATE instants. tz is the calculation
// timezone for the expansion; diagnostics go to sink. A component without a
// DTSTART has no occurrences and returns an error.
func (cb *ComponentBase) Occurrences(max time.Time, tz *Timezone, sink DiagnosticSink) ([]time.Time, error) {
	sink = sinkOrDefault(sink)
	start, err := cb.GetStartAt()
	if err != nil {
		return nil, err
	}

	var excl ExclusionSet
	for _, ex := range cb.GetProperties(ComponentPropertyExdate) {
		for _, v := range strings.Split(ex.Value, ",") {
			t, isDate, perr := ParseICalDateTime(strings.TrimSpace(v), ex.ICalParameters)
			if perr != nil {
				sink.Report(Diagnostic{Severity: SeverityWarning, Field: string(PropertyExdate), Message: perr.Error()})
				continue
			}
			if isDate {
				excl.AddDay(t)
			} else {
				excl.AddInstant(t)
			}
		}
	}

	var out []time.Time
	if rruleProp := cb.GetProperty(ComponentPropertyRrule); rruleProp != nil {
		rule, rerr := ParseRecurrenceRule(rruleProp.Value, sink)
		if rerr == nil {
			rule.Exclusions = excl
			out = append(out, rule.Generate(start, max, tz)...)
		}
		// A fatal rule contributes nothing; RDATE instants still apply.
	} else if !excl.Excludes(start, tz) {
		out = append(out, start)
	}

	for _, rd := range cb.GetProperties(ComponentPropertyRdate) {
		for _, v := range strings.Split(rd.Value, ",") {
			t, _, perr := ParseICalDateTime(strings.TrimSpace(v), rd.ICalParameters)
			if perr != nil {
				sink.Report(Diagnostic{Severity: SeverityWarning, Field: string(PropertyRdate), Message: perr.Error()})
				continue
			}
			if !max.IsZero() && t.After(max) {
				continue
			}
			if excl.Excludes(t, tz) {
				continue
			}
			out = append(out, t)
		}
	}
	sortTimes(out)
	return dedupeTimes(out), nil
}

func (cb *ComponentBase) addAlarm() *VAlarm {
	a := &VAlarm{}
	cb.Components = append(cb.Components, a)
	return a
}

func (cb *ComponentBase) alarms() []*VAlarm {
	var r []*VAlarm
	for i := range cb.Components {
		switch alarm := cb.Components[i].(type) {
		case *VAlarm:
			r = append(r, alarm)
		}
	}
	return r
}

type VEvent struct {
	ComponentBase
}

func (event *VEvent) SerializeTo(w io.Writer, serialConfig *SerializationConfiguration) error {
	return event.ComponentBase.serializeThis(w, ComponentVEvent, serialConfig)
}

func (event *VEvent) Serialize(serialConfig *SerializationConfiguration) string {
	b := &strings.Builder{}
	_ = event.ComponentBase.serializeThis(b, ComponentVEvent, serialConfig)
	return b.String()
}

func NewEvent(uniqueId string) *VEvent {
	return &VEvent{NewComponent(uniqueId)}
}

// NewEventWithGeneratedUid returns an event with a fresh random UID, for
// callers that have no natural identifier of their own.
func NewEventWithGeneratedUid() *VEvent {
	return NewEvent(uuid.NewString())
}

func (event *VEvent) SetGeo(lat, lng interface{}, params ...PropertyParameter) {
	event.setGeo(lat, lng, params...)
}

func (event *VEvent) SetPriority(p int, params ...PropertyParameter) {
	event.setPriority(p, params...)
}

func (event *VEvent) AddAlarm() *VAlarm {
	return event.addAlarm()
}

func (event *VEvent) Alarms() []*VAlarm {
	return event.alarms()
}

func (event *VEvent) GetAllDayEndAt() (time.Time, error) {
	return event.getTimeProp(ComponentPropertyDtEnd, true)
}

type TimeTransparency string

const (
	TransparencyOpaque      TimeTransparency = "OPAQUE" // default
	TransparencyTransparent TimeTransparency = "TRANSPARENT"
)

func (event *VEvent) SetTimeTransparency(v TimeTransparency, params ...PropertyParameter) {
	event.SetProperty(ComponentPropertyTransp, string(v), params...)
}

type VTodo struct {
	ComponentBase
}

func (todo *VTodo) SerializeTo(w io.Writer, serialConfig *SerializationConfiguration) error {
	return todo.ComponentBase.serializeThis(w, ComponentVTodo, serialConfig)
}

func (todo *VTodo) Serialize(serialConfig *SerializationConfiguration) string {
	b := &strings.Builder{}
	_ = todo.ComponentBase.serializeThis(b, ComponentVTodo, serialConfig)
	return b.String()
}

func NewTodo(uniqueId string) *VTodo {
	return &VTodo{NewComponent(uniqueId)}
}

// NewTodoWithGeneratedUid returns a todo with a fresh random UID.
func NewTodoWithGeneratedUid() *VTodo {
	return NewTodo(uuid.NewString())
}

func (cal *Calendar) AddTodo(id string) *VTodo {
	e := NewTodo(id)
	cal.Components = append(cal.Components, e)
	return e
}

func (cal *Calendar) AddVTodo(e *VTodo) {
	cal.Components = append(cal.Components, e)
}

func (todo *VTodo) SetCompletedAt(t time.Time, params ...PropertyParameter) {
	todo.SetProperty(ComponentPropertyCompleted, FormatICalDateTime(t), params...)
}

func (todo *VTodo) SetDueAt(t time.Time, params ...PropertyParameter) {
	todo.SetProperty(ComponentPropertyDue, FormatICalDateTime(t), params...)
}

func (todo *VTodo) SetAllDayDueAt(t time.Time, params ...PropertyParameter) {
	params = append(params, WithValue(string(ValueDataTypeDate)))
	todo.SetProperty(ComponentPropertyDue, FormatICalDate(t), params...)
}

func (todo *VTodo) SetPercentComplete(p int, params ...PropertyParameter) {
	todo.SetProperty(ComponentPropertyPercentComplete, strconv.Itoa(p), params...)
}

func (todo *VTodo) SetPriority(p int, params ...PropertyParameter) {
	todo.setPriority(p, params...)
}

func (todo *VTodo) AddAlarm() *VAlarm {
	return todo.addAlarm()
}

func (todo *VTodo) Alarms() []*VAlarm {
	return todo.alarms()
}

func (todo *VTodo) GetDueAt() (time.Time, error) {
	return todo.getTimeProp(ComponentPropertyDue, false)
}

type VJournal struct {
	ComponentBase
}

func (journal *VJournal) SerializeTo(w io.Writer, serialConfig *SerializationConfiguration) error {
	return journal.ComponentBase.serializeThis(w, ComponentVJournal, serialConfig)
}

func NewJournal(uniqueId string) *VJournal {
	return &VJournal{NewComponent(uniqueId)}
}

func (cal *Calendar) AddJournal(id string) *VJournal {
	e := NewJournal(id)
	cal.Components = append(cal.Components, e)
	return e
}

type VBusy struct {
	ComponentBase
}

func (busy *VBusy) SerializeTo(w io.Writer, serialConfig *SerializationConfiguration) error {
	return busy.ComponentBase.serializeThis(w, ComponentVFreeBusy, serialConfig)
}

func NewBusy(uniqueId string) *VBusy {
	return &VBusy{NewComponent(uniqueId)}
}

type VTimezone struct {
	ComponentBase
}

func (timezone *VTimezone) SerializeTo(w io.Writer, serialConfig *SerializationConfiguration) error {
	return timezone.ComponentBase.serializeThis(w, ComponentVTimezone, serialConfig)
}

func NewTimezone(tzId string) *VTimezone {
	return &VTimezone{
		ComponentBase{
			Properties: []IANAProperty{
				{BaseProperty{IANAToken: string(ComponentPropertyTzid), Value: tzId}},
			},
		},
	}
}

func (timezone *VTimezone) AddStandard() *Standard {
	e := &Standard{}
	timezone.Components = append(timezone.Components, e)
	return e
}

func (timezone *VTimezone) AddDaylight() *Daylight {
	e := &Daylight{}
	timezone.Components = append(timezone.Components, e)
	return e
}

func (cal *Calendar) AddVTimezone(e *VTimezone) {
	cal.Components = append(cal.Components, e)
}

func (cal *Calendar) Timezones() []*VTimezone {
	var r []*VTimezone
	for i := range cal.Components {
		switch timezone := cal.Components[i].(type) {
		case *VTimezone:
			r = append(r, timezone)
		}
	}
	return r
}

type VAlarm struct {
	ComponentBase
}

func (alarm *VAlarm) SerializeTo(w io.Writer, serialConfig *SerializationConfiguration) error {
	return alarm.ComponentBase.serializeThis(w, ComponentVAlarm, serialConfig)
}

func (alarm *VAlarm) SetAction(a Action, params ...PropertyParameter) {
	alarm.SetProperty(ComponentPropertyAction, string(a), params...)
}

func (alarm *VAlarm) SetTrigger(s string, params ...PropertyParameter) {
	alarm.SetProperty(ComponentPropertyTrigger, s, params...)
}

// TriggerDuration reads a relative TRIGGER value as a duration. A TRIGGER
// carrying an absolute DATE-TIME instead returns an error.
func (alarm *VAlarm) TriggerDuration() (time.Duration, error) {
	p := alarm.GetProperty(ComponentPropertyTrigger)
	if p == nil {
		return 0, fmt.Errorf("%w: %s", ErrorPropertyNotFound, ComponentPropertyTrigger)
	}
	if v, _ := p.parameterValue(ParameterValue); v == string(ValueDataTypeDateTime) {
		return 0, errors.New("trigger is an absolute date-time, not a duration")
	}
	return ParseICalDuration(p.Value)
}

type Standard struct {
	ComponentBase
}

func (standard *Standard) SerializeTo(w io.Writer, serialConfig *SerializationConfiguration) error {
	return standard.ComponentBase.serializeThis(w, ComponentStandard, serialConfig)
}

type Daylight struct {
	ComponentBase
}

func (daylight *Daylight) SerializeTo(w io.Writer, serialConfig *SerializationConfiguration) error {
	return daylight.ComponentBase.serializeThis(w, ComponentDaylight, serialConfig)
}

// GeneralComponent carries any component type outside the closed set, so
// vendor extensions survive a parse and re-serialize.
type GeneralComponent struct {
	ComponentBase
	Token string
}

func (general *GeneralComponent) SerializeTo(w io.Writer, serialConfig *SerializationConfiguration) error {
	return general.ComponentBase.serializeThis(w, ComponentType(general.Token), serialConfig)
}

// parseComponent dispatches a BEGIN line over the closed component set,
// falling back to GeneralComponent for anything unrecognized.
func parseComponent(cs *CalendarStream, startLine *BaseProperty) (Component, error) {
	base, err := parseComponentBase(cs, startLine)
	if err != nil {
		return nil, err
	}
	switch ComponentType(startLine.Value) {
	case ComponentVCalendar:
		return nil, errors.New("malformed calendar; vcalendar not where expected")
	case ComponentVEvent:
		return &VEvent{ComponentBase: base}, nil
	case ComponentVTodo:
		return &VTodo{ComponentBase: base}, nil
	case ComponentVJournal:
		return &VJournal{ComponentBase: base}, nil
	case ComponentVFreeBusy:
		return &VBusy{ComponentBase: base}, nil
	case ComponentVTimezone:
		return &VTimezone{ComponentBase: base}, nil
	case ComponentVAlarm:
		return &VAlarm{ComponentBase: base}, nil
	case ComponentStandard:
		return &Standard{ComponentBase: base}, nil
	case ComponentDaylight:
		return &Daylight{ComponentBase: base}, nil
	default:
		return &GeneralComponent{ComponentBase: base, Token: startLine.Value}, nil
	}
}

// parseComponentBase reads property lines until the matching END, recursing
// into nested components. Content lines that do not parse as properties are
// skipped.
func parseComponentBase(cs *CalendarStream, startLine *BaseProperty) (ComponentBase, error) {
	cb := ComponentBase{}
	for {
		l, err := cs.ReadLine()
		if err != nil && err != io.EOF {
			return cb, err
		}
		if l != nil && len(*l) > 0 {
			line := ParseProperty(*l)
			if line == nil {
				if err == io.EOF {
					break
				}
				continue
			}
			switch line.IANAToken {
			case "END":
				if line.Value == startLine.Value {
					return cb, nil
				}
				return cb, errors.New("unbalanced end")
			case "BEGIN":
				co, cerr := parseComponent(cs, line)
				if cerr != nil {
					return cb, cerr
				}
				if co != nil {
					cb.Components = append(cb.Components, co)
				}
			default:
				cb.Properties = append(cb.Properties, IANAProperty{*line})
			}
		}
		if err == io.EOF {
			break
		}
	}
	return cb, errors.New("ran out of lines")
}
