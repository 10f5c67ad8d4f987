package ical

import (
	"errors"
	"fmt"
	"io"
	"reflect"
	"strings"
	"time"
)

// ComponentType enumerates the component names defined in RFC 5545 section 3.6.
type ComponentType string

const (
	// ComponentVCalendar is the VCALENDAR container component.
	ComponentVCalendar ComponentType = "VCALENDAR"
	// ComponentVEvent represents a VEVENT component.
	ComponentVEvent ComponentType = "VEVENT"
	// ComponentVTodo represents a VTODO component.
	ComponentVTodo ComponentType = "VTODO"
	// ComponentVJournal represents a VJOURNAL component.
	ComponentVJournal ComponentType = "VJOURNAL"
	// ComponentVFreeBusy represents a VFREEBUSY component.
	ComponentVFreeBusy ComponentType = "VFREEBUSY"
	// ComponentVTimezone represents a VTIMEZONE component.
	ComponentVTimezone ComponentType = "VTIMEZONE"
	// ComponentVAlarm represents a VALARM subcomponent.
	ComponentVAlarm ComponentType = "VALARM"
	// ComponentStandard represents a STANDARD timezone subcomponent.
	ComponentStandard ComponentType = "STANDARD"
	// ComponentDaylight represents a DAYLIGHT timezone subcomponent.
	ComponentDaylight ComponentType = "DAYLIGHT"
)

// ComponentProperty enumerates the property names used on components. The
// constants are used with ComponentBase.SetProperty, GetProperty and friends
// so property names never have to be spelled out as strings.
type ComponentProperty Property

const (
	// ComponentPropertyUniqueId maps to the UID property (RFC 5545 section 3.8.4.7).
	ComponentPropertyUniqueId = ComponentProperty(PropertyUid)
	// ComponentPropertyDtstamp maps to DTSTAMP (section 3.8.7.2).
	ComponentPropertyDtstamp = ComponentProperty(PropertyDtstamp)
	// ComponentPropertyOrganizer maps to ORGANIZER (section 3.8.4.3).
	ComponentPropertyOrganizer = ComponentProperty(PropertyOrganizer)
	// ComponentPropertyAttendee maps to ATTENDEE (section 3.8.4.1).
	ComponentPropertyAttendee = ComponentProperty(PropertyAttendee)
	// ComponentPropertyAttach maps to ATTACH (section 3.8.1.1).
	ComponentPropertyAttach = ComponentProperty(PropertyAttach)
	// ComponentPropertyDescription maps to DESCRIPTION (section 3.8.1.5).
	ComponentPropertyDescription = ComponentProperty(PropertyDescription)
	// ComponentPropertyCategories maps to CATEGORIES (section 3.8.1.2).
	ComponentPropertyCategories = ComponentProperty(PropertyCategories)
	// ComponentPropertyClass maps to CLASS (section 3.8.1.3).
	ComponentPropertyClass = ComponentProperty(PropertyClass)
	// ComponentPropertyCreated maps to CREATED (section 3.8.7.1).
	ComponentPropertyCreated = ComponentProperty(PropertyCreated)
	// ComponentPropertySummary maps to SUMMARY (section 3.8.1.12).
	ComponentPropertySummary = ComponentProperty(PropertySummary)
	// ComponentPropertyDtStart maps to DTSTART (section 3.8.2.4).
	ComponentPropertyDtStart = ComponentProperty(PropertyDtstart)
	// ComponentPropertyDtEnd maps to DTEND (section 3.8.2.2).
	ComponentPropertyDtEnd = ComponentProperty(PropertyDtend)
	// ComponentPropertyLocation maps to LOCATION (section 3.8.1.7).
	ComponentPropertyLocation = ComponentProperty(PropertyLocation)
	// ComponentPropertyStatus maps to STATUS (section 3.8.1.11).
	ComponentPropertyStatus = ComponentProperty(PropertyStatus)
	// ComponentPropertyFreebusy maps to FREEBUSY (section 3.8.2.6).
	ComponentPropertyFreebusy = ComponentProperty(PropertyFreebusy)
	// ComponentPropertyLastModified maps to LAST-MODIFIED (section 3.8.7.3).
	ComponentPropertyLastModified = ComponentProperty(PropertyLastModified)
	// ComponentPropertyUrl maps to URL (section 3.8.4.6).
	ComponentPropertyUrl = ComponentProperty(PropertyUrl)
	// ComponentPropertyGeo maps to GEO (section 3.8.1.6).
	ComponentPropertyGeo = ComponentProperty(PropertyGeo)
	// ComponentPropertyTransp maps to TRANSP (section 3.8.2.7).
	ComponentPropertyTransp = ComponentProperty(PropertyTransp)
	// ComponentPropertySequence maps to SEQUENCE (section 3.8.7.4).
	ComponentPropertySequence = ComponentProperty(PropertySequence)
	// ComponentPropertyExdate maps to EXDATE (section 3.8.5.1).
	ComponentPropertyExdate = ComponentProperty(PropertyExdate)
	// ComponentPropertyRdate maps to RDATE (section 3.8.5.2).
	ComponentPropertyRdate = ComponentProperty(PropertyRdate)
	// ComponentPropertyRrule maps to RRULE (section 3.8.5.3).
	ComponentPropertyRrule = ComponentProperty(PropertyRrule)
	// ComponentPropertyAction maps to ACTION (section 3.8.6.1).
	ComponentPropertyAction = ComponentProperty(PropertyAction)
	// ComponentPropertyTrigger maps to TRIGGER (section 3.8.6.3).
	ComponentPropertyTrigger = ComponentProperty(PropertyTrigger)
	// ComponentPropertyRepeat maps to REPEAT (section 3.8.6.2).
	ComponentPropertyRepeat = ComponentProperty(PropertyRepeat)
	// ComponentPropertyPriority maps to PRIORITY (section 3.8.1.9).
	ComponentPropertyPriority = ComponentProperty(PropertyPriority)
	// ComponentPropertyResources maps to RESOURCES (section 3.8.1.10).
	ComponentPropertyResources = ComponentProperty(PropertyResources)
	// ComponentPropertyCompleted maps to COMPLETED (section 3.8.2.1).
	ComponentPropertyCompleted = ComponentProperty(PropertyCompleted)
	// ComponentPropertyDue maps to DUE (section 3.8.2.3).
	ComponentPropertyDue = ComponentProperty(PropertyDue)
	// ComponentPropertyPercentComplete maps to PERCENT-COMPLETE (section 3.8.1.8).
	ComponentPropertyPercentComplete = ComponentProperty(PropertyPercentComplete)
	// ComponentPropertyTzid maps to TZID (section 3.8.3.1).
	ComponentPropertyTzid = ComponentProperty(PropertyTzid)
	// ComponentPropertyTzname maps to TZNAME (section 3.8.3.2).
	ComponentPropertyTzname = ComponentProperty(PropertyTzname)
	// ComponentPropertyTzoffsetfrom maps to TZOFFSETFROM (section 3.8.3.3).
	ComponentPropertyTzoffsetfrom = ComponentProperty(PropertyTzoffsetfrom)
	// ComponentPropertyTzoffsetto maps to TZOFFSETTO (section 3.8.3.4).
	ComponentPropertyTzoffsetto = ComponentProperty(PropertyTzoffsetto)
	// ComponentPropertyComment maps to COMMENT (section 3.8.1.4).
	ComponentPropertyComment = ComponentProperty(PropertyComment)
	// ComponentPropertyRelatedTo maps to RELATED-TO (section 3.8.4.5).
	ComponentPropertyRelatedTo = ComponentProperty(PropertyRelatedTo)
	// ComponentPropertyRecurrenceId maps to RECURRENCE-ID (section 3.8.4.4).
	ComponentPropertyRecurrenceId = ComponentProperty(PropertyRecurrenceId)
	// ComponentPropertyDuration maps to DURATION (section 3.8.2.5).
	ComponentPropertyDuration = ComponentProperty(PropertyDuration)
	// ComponentPropertyContact maps to CONTACT (section 3.8.4.2).
	ComponentPropertyContact = ComponentProperty(PropertyContact)
)

// Property enumerates iCalendar property names, primarily from RFC 5545
// section 3.8.
type Property string

const (
	// PropertyCalscale corresponds to CALSCALE (section 3.7.1).
	PropertyCalscale Property = "CALSCALE"
	// PropertyMethod corresponds to METHOD (section 3.7.2).
	PropertyMethod Property = "METHOD"
	// PropertyProductId corresponds to PRODID (section 3.7.3).
	PropertyProductId Property = "PRODID"
	// PropertyVersion corresponds to VERSION (section 3.7.4).
	PropertyVersion Property = "VERSION"
	// PropertyAttach corresponds to ATTACH (section 3.8.1.1).
	PropertyAttach Property = "ATTACH"
	// PropertyCategories corresponds to CATEGORIES (section 3.8.1.2).
	PropertyCategories Property = "CATEGORIES"
	// PropertyClass corresponds to CLASS (section 3.8.1.3).
	PropertyClass Property = "CLASS"
	// PropertyComment corresponds to COMMENT (section 3.8.1.4).
	PropertyComment Property = "COMMENT"
	// PropertyDescription corresponds to DESCRIPTION (section 3.8.1.5).
	PropertyDescription Property = "DESCRIPTION"
	// PropertyGeo corresponds to GEO (section 3.8.1.6), "lat;lon".
	PropertyGeo Property = "GEO"
	// PropertyLocation corresponds to LOCATION (section 3.8.1.7).
	PropertyLocation Property = "LOCATION"
	// PropertyPercentComplete corresponds to PERCENT-COMPLETE (section 3.8.1.8).
	PropertyPercentComplete Property = "PERCENT-COMPLETE"
	// PropertyPriority corresponds to PRIORITY (section 3.8.1.9).
	PropertyPriority Property = "PRIORITY"
	// PropertyResources corresponds to RESOURCES (section 3.8.1.10).
	PropertyResources Property = "RESOURCES"
	// PropertyStatus corresponds to STATUS (section 3.8.1.11).
	PropertyStatus Property = "STATUS"
	// PropertySummary corresponds to SUMMARY (section 3.8.1.12).
	PropertySummary Property = "SUMMARY"
	// PropertyCompleted corresponds to COMPLETED (section 3.8.2.1).
	PropertyCompleted Property = "COMPLETED"
	// PropertyDtend corresponds to DTEND (section 3.8.2.2).
	PropertyDtend Property = "DTEND"
	// PropertyDue corresponds to DUE (section 3.8.2.3).
	PropertyDue Property = "DUE"
	// PropertyDtstart corresponds to DTSTART (section 3.8.2.4).
	PropertyDtstart Property = "DTSTART"
	// PropertyDuration corresponds to DURATION (section 3.8.2.5).
	PropertyDuration Property = "DURATION"
	// PropertyFreebusy corresponds to FREEBUSY (section 3.8.2.6).
	PropertyFreebusy Property = "FREEBUSY"
	// PropertyTransp corresponds to TRANSP (section 3.8.2.7).
	PropertyTransp Property = "TRANSP"
	// PropertyTzid corresponds to TZID (section 3.8.3.1).
	PropertyTzid Property = "TZID"
	// PropertyTzname corresponds to TZNAME (section 3.8.3.2).
	PropertyTzname Property = "TZNAME"
	// PropertyTzoffsetfrom corresponds to TZOFFSETFROM (section 3.8.3.3).
	PropertyTzoffsetfrom Property = "TZOFFSETFROM"
	// PropertyTzoffsetto corresponds to TZOFFSETTO (section 3.8.3.4).
	PropertyTzoffsetto Property = "TZOFFSETTO"
	// PropertyTzurl corresponds to TZURL (section 3.8.3.5).
	PropertyTzurl Property = "TZURL"
	// PropertyAttendee corresponds to ATTENDEE (section 3.8.4.1).
	PropertyAttendee Property = "ATTENDEE"
	// PropertyContact corresponds to CONTACT (section 3.8.4.2).
	PropertyContact Property = "CONTACT"
	// PropertyOrganizer corresponds to ORGANIZER (section 3.8.4.3).
	PropertyOrganizer Property = "ORGANIZER"
	// PropertyRecurrenceId corresponds to RECURRENCE-ID (section 3.8.4.4).
	PropertyRecurrenceId Property = "RECURRENCE-ID"
	// PropertyRelatedTo corresponds to RELATED-TO (section 3.8.4.5).
	PropertyRelatedTo Property = "RELATED-TO"
	// PropertyUrl corresponds to URL (section 3.8.4.6).
	PropertyUrl Property = "URL"
	// PropertyUid corresponds to UID (section 3.8.4.7).
	PropertyUid Property = "UID"
	// PropertyExdate corresponds to EXDATE (section 3.8.5.1).
	PropertyExdate Property = "EXDATE"
	// PropertyRdate corresponds to RDATE (section 3.8.5.2).
	PropertyRdate Property = "RDATE"
	// PropertyRrule corresponds to RRULE (section 3.8.5.3).
	PropertyRrule Property = "RRULE"
	// PropertyAction corresponds to ACTION (section 3.8.6.1).
	PropertyAction Property = "ACTION"
	// PropertyRepeat corresponds to REPEAT (section 3.8.6.2).
	PropertyRepeat Property = "REPEAT"
	// PropertyTrigger corresponds to TRIGGER (section 3.8.6.3).
	PropertyTrigger Property = "TRIGGER"
	// PropertyCreated corresponds to CREATED (section 3.8.7.1).
	PropertyCreated Property = "CREATED"
	// PropertyDtstamp corresponds to DTSTAMP (section 3.8.7.2).
	PropertyDtstamp Property = "DTSTAMP"
	// PropertyLastModified corresponds to LAST-MODIFIED (section 3.8.7.3).
	PropertyLastModified Property = "LAST-MODIFIED"
	// PropertySequence corresponds to SEQUENCE (section 3.8.7.4).
	PropertySequence Property = "SEQUENCE"
	// PropertyName is the calendar name extension from RFC 7986.
	PropertyName Property = "NAME"
	// PropertyXWRCalName is the common display-name extension.
	PropertyXWRCalName Property = "X-WR-CALNAME"
	// PropertyXWRTimezone is the common default-timezone extension.
	PropertyXWRTimezone Property = "X-WR-TIMEZONE"
)

type Parameter string

// IsQuoted reports whether the parameter's value is always quoted when
// serialized. ALTREP is the only standard parameter RFC 5545 section 3.2
// defines that way.
func (p Parameter) IsQuoted() bool {
	switch p {
	case ParameterAltrep:
		return true
	}
	return false
}

const (
	// ParameterAltrep references an alternate text representation (section 3.2.1).
	ParameterAltrep Parameter = "ALTREP"
	// ParameterCn provides a common name (section 3.2.2).
	ParameterCn Parameter = "CN"
	// ParameterCutype defines the calendar user type (section 3.2.3).
	ParameterCutype Parameter = "CUTYPE"
	// ParameterEncoding defines inline attachment encoding (section 3.2.7).
	ParameterEncoding Parameter = "ENCODING"
	// ParameterFmttype is the content type for an attachment (section 3.2.8).
	ParameterFmttype Parameter = "FMTTYPE"
	// ParameterLanguage indicates the language for text values (section 3.2.10).
	ParameterLanguage Parameter = "LANGUAGE"
	// ParameterParticipationStatus holds participation status (section 3.2.12).
	ParameterParticipationStatus Parameter = "PARTSTAT"
	// ParameterRelated indicates the anchor of a relative TRIGGER (section 3.2.14).
	ParameterRelated Parameter = "RELATED"
	// ParameterRole indicates participant role (section 3.2.16).
	ParameterRole Parameter = "ROLE"
	// ParameterRsvp indicates whether a response is requested (section 3.2.17).
	ParameterRsvp Parameter = "RSVP"
	// ParameterTzid references a time zone identifier (section 3.2.19).
	ParameterTzid Parameter = "TZID"
	// ParameterValue sets the value data type of the property (section 3.2.20).
	ParameterValue Parameter = "VALUE"
)

type ValueDataType string

// VALUE parameter types from RFC 5545 section 3.3, limited to the ones this
// library interprets.
const (
	// ValueDataTypeDate represents a DATE value (section 3.3.4).
	ValueDataTypeDate ValueDataType = "DATE"
	// ValueDataTypeDateTime represents a DATE-TIME (section 3.3.5).
	ValueDataTypeDateTime ValueDataType = "DATE-TIME"
	// ValueDataTypeDuration represents a DURATION (section 3.3.6).
	ValueDataTypeDuration ValueDataType = "DURATION"
	// ValueDataTypePeriod represents a PERIOD value (section 3.3.9).
	ValueDataTypePeriod ValueDataType = "PERIOD"
	// ValueDataTypeText represents a TEXT value (section 3.3.11).
	ValueDataTypeText ValueDataType = "TEXT"
	// ValueDataTypeUtcOffset represents UTC-OFFSET (section 3.3.14).
	ValueDataTypeUtcOffset ValueDataType = "UTC-OFFSET"
)

type ObjectStatus string

// ObjectStatus enumerates allowed STATUS property values (RFC 5545 section
// 3.8.1.11).
const (
	// ObjectStatusTentative indicates the object is tentative.
	ObjectStatusTentative ObjectStatus = "TENTATIVE"
	// ObjectStatusConfirmed indicates the object is confirmed.
	ObjectStatusConfirmed ObjectStatus = "CONFIRMED"
	// ObjectStatusCancelled indicates the object is cancelled.
	ObjectStatusCancelled ObjectStatus = "CANCELLED"
	// ObjectStatusNeedsAction indicates further action is required.
	ObjectStatusNeedsAction ObjectStatus = "NEEDS-ACTION"
	// ObjectStatusCompleted indicates completion.
	ObjectStatusCompleted ObjectStatus = "COMPLETED"
	// ObjectStatusInProcess indicates processing is ongoing.
	ObjectStatusInProcess ObjectStatus = "IN-PROCESS"
	// ObjectStatusDraft indicates a draft state.
	ObjectStatusDraft ObjectStatus = "DRAFT"
	// ObjectStatusFinal indicates a final state.
	ObjectStatusFinal ObjectStatus = "FINAL"
)

func (ps ObjectStatus) KeyValue(_ ...interface{}) (string, []string) {
	return string(PropertyStatus), []string{string(ps)}
}

type Action string

// Action enumerates VALARM ACTION property values (RFC 5545 section 3.8.6.1).
const (
	// ActionAudio plays an audio alert.
	ActionAudio Action = "AUDIO"
	// ActionDisplay shows display text.
	ActionDisplay Action = "DISPLAY"
	// ActionEmail sends an email message.
	ActionEmail Action = "EMAIL"
)

type Classification string

// Classification enumerates CLASS property values (RFC 5545 section 3.8.1.3).
const (
	// ClassificationPublic marks information as public.
	ClassificationPublic Classification = "PUBLIC"
	// ClassificationPrivate marks information as private.
	ClassificationPrivate Classification = "PRIVATE"
	// ClassificationConfidential marks information as confidential.
	ClassificationConfidential Classification = "CONFIDENTIAL"
)

type Method string

// Method enumerates METHOD property values (RFC 5545 section 3.7.2).
const (
	// MethodPublish publishes a calendar.
	MethodPublish Method = "PUBLISH"
	// MethodRequest requests scheduling.
	MethodRequest Method = "REQUEST"
	// MethodReply sends a scheduling reply.
	MethodReply Method = "REPLY"
	// MethodCancel cancels a previously scheduled object.
	MethodCancel Method = "CANCEL"
)

type CalendarProperty struct {
	BaseProperty
}

// Calendar represents a VCALENDAR object: its top-level properties and the
// components it contains. RFC 5545 section 3.6 requires PRODID and VERSION;
// NewCalendar populates both.
type Calendar struct {
	Components         []Component
	CalendarProperties []CalendarProperty
}

// NewCalendar returns a Calendar carrying the VERSION and PRODID properties
// RFC 5545 requires.
func NewCalendar() *Calendar {
	c := &Calendar{
		Components:         []Component{},
		CalendarProperties: []CalendarProperty{},
	}
	c.SetVersion("2.0")
	c.SetProductId("-//Stefanius67//ICal")
	return c
}

func (cal *Calendar) Serialize(ops ...any) string {
	b := &strings.Builder{}
	// The builder cannot fail; the ignored error is the writer's.
	_ = cal.SerializeTo(b, ops...)
	return b.String()
}

type WithLineLength int
type WithNewLine string

func (cal *Calendar) SerializeTo(w io.Writer, ops ...any) error {
	serialConfig, err := parseSerializeOps(ops)
	if err != nil {
		return err
	}
	if _, err := io.WriteString(w, "BEGIN:VCALENDAR"+serialConfig.NewLine); err != nil {
		return fmt.Errorf("serializing calendar: %w", err)
	}
	for _, p := range cal.CalendarProperties {
		if err := p.serialize(w, serialConfig); err != nil {
			return err
		}
	}
	for _, c := range cal.Components {
		if err := c.SerializeTo(w, serialConfig); err != nil {
			return err
		}
	}
	if _, err := io.WriteString(w, "END:VCALENDAR"+serialConfig.NewLine); err != nil {
		return fmt.Errorf("serializing calendar: %w", err)
	}
	return nil
}

// SerializationConfiguration controls how calendars and components are
// written. MaxLength is the physical line length in octets from RFC 5545
// section 3.1; NewLine selects the line termination sequence.
type SerializationConfiguration struct {
	MaxLength int
	NewLine   string
}

// parseSerializeOps interprets the optional arguments of Serialize and
// SerializeTo: WithLineLength, WithNewLine or a ready-made
// *SerializationConfiguration.
func parseSerializeOps(ops []any) (*SerializationConfiguration, error) {
	serialConfig := defaultSerializationOptions()
	for opi, op := range ops {
		switch op := op.(type) {
		case WithLineLength:
			serialConfig.MaxLength = int(op)
		case WithNewLine:
			serialConfig.NewLine = string(op)
		case *SerializationConfiguration:
			return op, nil
		case error:
			return nil, op
		default:
			return nil, fmt.Errorf("unknown op %d of type %s", opi, reflect.TypeOf(op))
		}
	}
	return serialConfig, nil
}

func defaultSerializationOptions() *SerializationConfiguration {
	return &SerializationConfiguration{
		MaxLength: 75,
		NewLine:   string(NewLine),
	}
}

func (cal *Calendar) SetMethod(method Method, params ...PropertyParameter) {
	cal.setProperty(PropertyMethod, string(method), params...)
}

func (cal *Calendar) SetVersion(s string, params ...PropertyParameter) {
	cal.setProperty(PropertyVersion, s, params...)
}

func (cal *Calendar) SetProductId(s string, params ...PropertyParameter) {
	cal.setProperty(PropertyProductId, s, params...)
}

func (cal *Calendar) SetName(s string, params ...PropertyParameter) {
	cal.setProperty(PropertyName, s, params...)
	cal.setProperty(PropertyXWRCalName, s, params...)
}

func (cal *Calendar) SetXWRTimezone(s string, params ...PropertyParameter) {
	cal.setProperty(PropertyXWRTimezone, s, params...)
}

func (cal *Calendar) SetDescription(s string, params ...PropertyParameter) {
	cal.setProperty(PropertyDescription, s, params...)
}

func (cal *Calendar) SetLastModified(t time.Time, params ...PropertyParameter) {
	cal.setProperty(PropertyLastModified, t.UTC().Format(icalTimestampFormatUtc), params...)
}

func (cal *Calendar) SetCalscale(s string, params ...PropertyParameter) {
	cal.setProperty(PropertyCalscale, s, params...)
}

func (cal *Calendar) setProperty(property Property, value string, params ...PropertyParameter) {
	for i := range cal.CalendarProperties {
		if cal.CalendarProperties[i].IANAToken == string(property) {
			cal.CalendarProperties[i].Value = value
			cal.CalendarProperties[i].ICalParameters = map[string][]string{}
			for _, p := range params {
				k, v := p.KeyValue()
				cal.CalendarProperties[i].ICalParameters[k] = v
			}
			return
		}
	}
	r := CalendarProperty{
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
	cal.CalendarProperties = append(cal.CalendarProperties, r)
}

func (cal *Calendar) AddEvent(id string) *VEvent {
	e := NewEvent(id)
	cal.Components = append(cal.Components, e)
	return e
}

func (cal *Calendar) AddVEvent(e *VEvent) {
	cal.Components = append(cal.Components, e)
}

func (cal *Calendar) Events() (r []*VEvent) {
	r = []*VEvent{}
	for i := range cal.Components {
		switch event := cal.Components[i].(type) {
		case *VEvent:
			r = append(r, event)
		}
	}
	return
}

func (cal *Calendar) Todos() (r []*VTodo) {
	r = []*VTodo{}
	for i := range cal.Components {
		switch todo := cal.Components[i].(type) {
		case *VTodo:
			r = append(r, todo)
		}
	}
	return
}

func (cal *Calendar) RemoveEvent(id string) {
	for i := range cal.Components {
		switch event := cal.Components[i].(type) {
		case *VEvent:
			if event.Id() == id {
				cal.Components = append(cal.Components[:i], cal.Components[i+1:]...)
				return
			}
		}
	}
}

// Timezone resolves a calculation timezone for a TZID. Embedded VTIMEZONE
// components take precedence over the system database, since a feed that
// ships its own definition expects it to be used.
func (cal *Calendar) Timezone(tzid string) (*Timezone, error) {
	for i := range cal.Components {
		switch vtz := cal.Components[i].(type) {
		case *VTimezone:
			if vtz.GetProperty(ComponentPropertyTzid).value() == tzid {
				return NewTimezoneFromComponent(vtz, nil)
			}
		}
	}
	loc, err := time.LoadLocation(tzid)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrTimezoneNotFound, tzid)
	}
	now := time.Now().UTC()
	return NewTimezoneFromLocation(tzid, loc, now.AddDate(-10, 0, 0), now.AddDate(15, 0, 0)), nil
}

// ParseCalendar reads a VCALENDAR object from r following the grammar of
// RFC 5545 section 3.4: the object must open with BEGIN:VCALENDAR and close
// with END:VCALENDAR. Content lines that do not parse as properties are
// skipped rather than failing the whole object.
func ParseCalendar(r io.Reader) (*Calendar, error) {
	state := "begin"
	c := &Calendar{}
	cs := NewCalendarStream(r)
	cont := true
	for ln := 0; cont; ln++ {
		l, err := cs.ReadLine()
		if err != nil {
			switch err {
			case io.EOF:
				cont = false
			default:
				return c, err
			}
		}
		if l == nil || len(*l) == 0 {
			continue
		}
		line := ParseProperty(*l)
		if line == nil {
			// No unquoted colon on the line; skip it.
			continue
		}
		switch state {
		case "begin":
			switch line.IANAToken {
			case "BEGIN":
				switch line.Value {
				case string(ComponentVCalendar):
					state = "properties"
				default:
					return nil, errors.New("malformed calendar; expected a vcalendar")
				}
			default:
				return nil, errors.New("malformed calendar; expected begin")
			}
		case "properties":
			switch line.IANAToken {
			case "END":
				switch line.Value {
				case string(ComponentVCalendar):
					state = "end"
				default:
					return nil, errors.New("malformed calendar; expected end")
				}
			case "BEGIN":
				state = "components"
			default:
				// Unknown property names are retained so vendor
				// extensions survive a parse and re-serialize.
				c.CalendarProperties = append(c.CalendarProperties, CalendarProperty{*line})
			}
			if state != "components" {
				break
			}
			fallthrough
		case "components":
			switch line.IANAToken {
			case "END":
				switch line.Value {
				case string(ComponentVCalendar):
					state = "end"
				default:
					return nil, errors.New("malformed calendar; expected end")
				}
			case "BEGIN":
				co, err := parseComponent(cs, line)
				if err != nil {
					return nil, err
				}
				if co != nil {
					c.Components = append(c.Components, co)
				}
			default:
				return nil, errors.New("malformed calendar; expected begin or end")
			}
		case "end":
			return nil, errors.New("malformed calendar; unexpected end")
		default:
			return nil, errors.New("malformed calendar; bad state")
		}
	}
	return c, nil
}
