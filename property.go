package ical

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"unicode/utf8"
)

// BaseProperty is one parsed content line: the property name, its parameters
// and the raw (still escaped) value. Parameter keys are normalized to upper
// case; a repeated key replaces the earlier one.
type BaseProperty struct {
	IANAToken      string
	ICalParameters map[string][]string
	Value          string
}

// PropertyParameter supplies a single parameter key/value pair when setting
// properties through the typed helpers.
type PropertyParameter interface {
	KeyValue(s ...interface{}) (string, []string)
}

type KeyValues struct {
	Key   string
	Value []string
}

func (kv *KeyValues) KeyValue(_ ...interface{}) (string, []string) {
	return kv.Key, kv.Value
}

func WithCN(cn string) PropertyParameter {
	return &KeyValues{Key: string(ParameterCn), Value: []string{cn}}
}

func WithTZID(tzid string) PropertyParameter {
	return &KeyValues{Key: string(ParameterTzid), Value: []string{tzid}}
}

func WithEncoding(encType string) PropertyParameter {
	return &KeyValues{Key: string(ParameterEncoding), Value: []string{encType}}
}

func WithFmtType(contentType string) PropertyParameter {
	return &KeyValues{Key: string(ParameterFmttype), Value: []string{contentType}}
}

func WithValue(kind string) PropertyParameter {
	return &KeyValues{Key: string(ParameterValue), Value: []string{kind}}
}

func WithRSVP(b bool) PropertyParameter {
	return &KeyValues{Key: string(ParameterRsvp), Value: []string{strconv.FormatBool(b)}}
}

func WithRole(role string) PropertyParameter {
	return &KeyValues{Key: string(ParameterRole), Value: []string{role}}
}

// ContentLine is one logical (unfolded) line of an iCalendar stream.
type ContentLine string

// ParseProperty splits a logical line into name, parameters and raw value as
// defined by RFC 5545 section 3.1. The line is cut at the first colon that is
// not inside a quoted string; the left side is split on unquoted semicolons
// into the name and KEY=VALUE parameter pairs. A line without an unquoted
// colon is malformed and yields nil; callers decide whether to report it.
func ParseProperty(contentLine ContentLine) *BaseProperty {
	s := string(contentLine)
	cut := indexUnquoted(s, ':')
	if cut < 0 {
		return nil
	}
	head, value := s[:cut], s[cut+1:]
	segments := splitUnquoted(head, ';')
	name := strings.TrimSpace(segments[0])
	if name == "" {
		return nil
	}
	r := &BaseProperty{
		IANAToken:      strings.ToUpper(name),
		ICalParameters: map[string][]string{},
		Value:          value,
	}
	for _, segment := range segments[1:] {
		k, v, ok := strings.Cut(segment, "=")
		if !ok || k == "" {
			// A parameter without '=' carries no information; drop it
			// rather than failing the whole line.
			continue
		}
		var values []string
		for _, pv := range splitUnquoted(v, ',') {
			values = append(values, unquoteParamValue(pv))
		}
		// Last occurrence of a key wins.
		r.ICalParameters[strings.ToUpper(k)] = values
	}
	return r
}

// indexUnquoted returns the index of the first sep outside a double-quoted
// substring, or -1. A double quote toggles the in-quotes state; the state is
// only tracked during the scan, never retained.
func indexUnquoted(s string, sep byte) int {
	quoted := false
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '"':
			quoted = !quoted
		case sep:
			if !quoted {
				return i
			}
		}
	}
	return -1
}

// splitUnquoted splits s on every unquoted sep. It always returns at least
// one element.
func splitUnquoted(s string, sep byte) []string {
	var parts []string
	quoted := false
	last := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '"':
			quoted = !quoted
		case sep:
			if !quoted {
				parts = append(parts, s[last:i])
				last = i + 1
			}
		}
	}
	return append(parts, s[last:])
}

func unquoteParamValue(v string) string {
	v = strings.TrimSpace(v)
	if len(v) >= 2 && v[0] == '"' && v[len(v)-1] == '"' {
		return v[1 : len(v)-1]
	}
	return v
}

var textEscaper = strings.NewReplacer(
	`\`, `\\`,
	"\n", `\n`,
	`;`, `\;`,
	`,`, `\,`,
)

// ToText escapes a string for use as a TEXT property value per RFC 5545
// section 3.3.11. The backslash is escaped before the characters whose
// escape sequences introduce one, so escaping never doubles up.
func ToText(s string) string {
	return textEscaper.Replace(s)
}

var textUnescaper = strings.NewReplacer(
	`\\`, `\`,
	`\n`, "\n",
	`\N`, "\n",
	`\;`, `;`,
	`\,`, `,`,
)

// FromText reverses ToText. Both directions are total over any input.
func FromText(s string) string {
	return textUnescaper.Replace(s)
}

// paramRequiresQuoting reports whether a parameter value must be quoted when
// written out. RFC 5545 section 3.2: values containing ':', ';' or ',' must
// be surrounded by double quotes; values free of them are written bare.
func paramRequiresQuoting(v string) bool {
	return strings.ContainsAny(v, ";:,")
}

func (property *BaseProperty) serialize(w io.Writer, serialConfig *SerializationConfiguration) error {
	b := &strings.Builder{}
	b.WriteString(property.IANAToken)
	keys := make([]string, 0, len(property.ICalParameters))
	for k := range property.ICalParameters {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		b.WriteString(";")
		b.WriteString(k)
		b.WriteString("=")
		for vi, v := range property.ICalParameters[k] {
			if vi > 0 {
				b.WriteString(",")
			}
			if paramRequiresQuoting(v) || Parameter(k).IsQuoted() {
				b.WriteString(`"`)
				b.WriteString(v)
				b.WriteString(`"`)
			} else {
				b.WriteString(v)
			}
		}
	}
	b.WriteString(":")
	b.WriteString(property.Value)
	_, err := io.WriteString(w, FoldLine(b.String(), serialConfig.MaxLength, serialConfig.NewLine))
	if err != nil {
		return fmt.Errorf("serializing property %s: %w", property.IANAToken, err)
	}
	return nil
}

// FoldLine folds a logical content line into physical lines of at most
// maxLen octets as described in RFC 5545 section 3.1. Each continuation line
// starts with a single space which occupies one of its octets. The fold
// point is moved back so that a backslash escape pair is never split across
// lines and a multi-octet UTF-8 sequence stays intact. Unfolding the result
// yields the input unchanged.
func FoldLine(s string, maxLen int, newLine string) string {
	if maxLen <= 1 {
		maxLen = 75
	}
	b := &strings.Builder{}
	room := maxLen
	for len(s) > room {
		cut := foldPoint(s, room)
		b.WriteString(s[:cut])
		b.WriteString(newLine)
		b.WriteString(" ")
		s = s[cut:]
		room = maxLen - 1
	}
	b.WriteString(s)
	b.WriteString(newLine)
	return b.String()
}

func foldPoint(s string, cut int) int {
	// Keep UTF-8 sequences whole.
	for cut > 1 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	// A backslash as the final octet would split its escape pair.
	for cut > 1 && s[cut-1] == '\\' {
		cut--
	}
	return cut
}

// IANAProperty is a property attached to a component.
type IANAProperty struct {
	BaseProperty
}

func (p *IANAProperty) parameterValue(param Parameter) (string, bool) {
	vs, ok := p.ICalParameters[string(param)]
	if !ok || len(vs) == 0 {
		return "", false
	}
	return vs[0], true
}
