// Package temporal converts custody timestamps between the display format
// (DD.MM.YYYY[ HH:MM:SS]), the storage format (YYYY-MM-DD[ HH:MM:SS]) and the
// browser widget format (YYYY-MM-DD, YYYY-MM-DDTHH:MM[:SS]).
//
// Conversions only move digits around. Nothing here builds a time.Time, so a
// value never shifts across a timezone boundary.
package temporal

import (
	"encoding/json"
	"fmt"
	"strings"

	dErrors "custody/pkg/domain-errors"
)

// Granularity tags a Value as date-only or date-time.
type Granularity int

const (
	// Date is used by procedure entries and document issue dates.
	Date Granularity = iota + 1
	// DateTime is used by movements and cell assignments.
	DateTime
)

func (g Granularity) String() string {
	switch g {
	case Date:
		return "date"
	case DateTime:
		return "datetime"
	default:
		return "unknown"
	}
}

// Value is a calendar date with an optional wall-clock time. The zero Value
// is empty.
type Value struct {
	g                    Granularity
	year, month, day     int
	hour, minute, second int
}

// IsZero reports whether v holds no value.
func (v Value) IsZero() bool { return v.g == 0 }

func (v Value) Granularity() Granularity { return v.g }

// Display formats as DD.MM.YYYY or DD.MM.YYYY HH:MM:SS.
func (v Value) Display() string {
	switch v.g {
	case Date:
		return fmt.Sprintf("%02d.%02d.%04d", v.day, v.month, v.year)
	case DateTime:
		return fmt.Sprintf("%02d.%02d.%04d %02d:%02d:%02d", v.day, v.month, v.year, v.hour, v.minute, v.second)
	}
	return ""
}

// Storage formats as YYYY-MM-DD or YYYY-MM-DD HH:MM:SS.
func (v Value) Storage() string {
	switch v.g {
	case Date:
		return fmt.Sprintf("%04d-%02d-%02d", v.year, v.month, v.day)
	case DateTime:
		return fmt.Sprintf("%04d-%02d-%02d %02d:%02d:%02d", v.year, v.month, v.day, v.hour, v.minute, v.second)
	}
	return ""
}

// Widget formats for an HTML date or datetime-local input.
func (v Value) Widget() string {
	switch v.g {
	case Date:
		return fmt.Sprintf("%04d-%02d-%02d", v.year, v.month, v.day)
	case DateTime:
		return fmt.Sprintf("%04d-%02d-%02dT%02d:%02d:%02d", v.year, v.month, v.day, v.hour, v.minute, v.second)
	}
	return ""
}

func (v Value) String() string { return v.Display() }

// Compare orders values chronologically: -1, 0 or +1. Granularity is ignored;
// a date sorts as midnight.
func (v Value) Compare(o Value) int {
	a := [6]int{v.year, v.month, v.day, v.hour, v.minute, v.second}
	b := [6]int{o.year, o.month, o.day, o.hour, o.minute, o.second}
	for i := range a {
		switch {
		case a[i] < b[i]:
			return -1
		case a[i] > b[i]:
			return 1
		}
	}
	return 0
}

// As returns v converted to granularity g. Narrowing to Date drops the time;
// widening to DateTime uses midnight.
func (v Value) As(g Granularity) Value {
	if v.IsZero() {
		return v
	}
	out := v
	out.g = g
	if g == Date {
		out.hour, out.minute, out.second = 0, 0, 0
	}
	return out
}

// MarshalJSON emits the display string, or null for the zero Value.
func (v Value) MarshalJSON() ([]byte, error) {
	if v.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(v.Display())
}

// UnmarshalJSON accepts any supported format; the granularity follows the
// presence of a time component.
func (v *Value) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*v = Value{}
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return dErrors.New(dErrors.CodeValidation, "temporal value must be a string")
	}
	if strings.TrimSpace(s) == "" {
		*v = Value{}
		return nil
	}
	parsed, err := parse(s, 0)
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

// Parse reads raw in any supported format and returns a Value of granularity g.
// A timezone or fractional-second suffix is cut off before parsing.
//
// Errors: CodeValidation when raw is empty or not a valid date.
func Parse(raw string, g Granularity) (Value, error) {
	if g != Date && g != DateTime {
		return Value{}, dErrors.New(dErrors.CodeInternal, "unknown temporal granularity")
	}
	return parse(raw, g)
}

// MustParse is Parse for literals in tests and fixtures.
func MustParse(raw string, g Granularity) Value {
	v, err := Parse(raw, g)
	if err != nil {
		panic(err)
	}
	return v
}

// ToDisplay reformats a stored or widget value for display. Empty input stays
// empty; unrecognized input is returned unchanged.
func ToDisplay(raw string) string {
	if strings.TrimSpace(raw) == "" {
		return ""
	}
	v, err := parse(raw, 0)
	if err != nil {
		return raw
	}
	return v.Display()
}

// ToStorage reformats a display or widget value for storage at granularity g.
func ToStorage(raw string, g Granularity) (string, error) {
	v, err := Parse(raw, g)
	if err != nil {
		return "", err
	}
	return v.Storage(), nil
}

// parse with g == 0 infers the granularity from the input.
func parse(raw string, g Granularity) (Value, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return Value{}, dErrors.New(dErrors.CodeValidation, "date is required")
	}

	datePart, timePart := splitDateTime(s)

	var v Value
	var ok bool
	switch {
	case len(datePart) == 10 && datePart[2] == '.' && datePart[5] == '.':
		v.day, ok = digits(datePart[0:2])
		v.month, ok = digitsAnd(ok, datePart[3:5])
		v.year, ok = digitsAnd(ok, datePart[6:10])
	case len(datePart) == 10 && datePart[4] == '-' && datePart[7] == '-':
		v.year, ok = digits(datePart[0:4])
		v.month, ok = digitsAnd(ok, datePart[5:7])
		v.day, ok = digitsAnd(ok, datePart[8:10])
	}
	if !ok || !validDate(v.year, v.month, v.day) {
		return Value{}, invalid(raw)
	}

	if timePart != "" {
		timePart = truncateZone(timePart)
		switch len(timePart) {
		case 5: // HH:MM from datetime-local inputs
			if timePart[2] != ':' {
				return Value{}, invalid(raw)
			}
			v.hour, ok = digits(timePart[0:2])
			v.minute, ok = digitsAnd(ok, timePart[3:5])
		case 8:
			if timePart[2] != ':' || timePart[5] != ':' {
				return Value{}, invalid(raw)
			}
			v.hour, ok = digits(timePart[0:2])
			v.minute, ok = digitsAnd(ok, timePart[3:5])
			v.second, ok = digitsAnd(ok, timePart[6:8])
		default:
			ok = false
		}
		if !ok || v.hour > 23 || v.minute > 59 || v.second > 59 {
			return Value{}, invalid(raw)
		}
	}

	switch {
	case g != 0:
		v.g = g
	case timePart != "":
		v.g = DateTime
	default:
		v.g = Date
	}
	if v.g == Date {
		v.hour, v.minute, v.second = 0, 0, 0
	}
	return v, nil
}

func splitDateTime(s string) (string, string) {
	if i := strings.IndexAny(s, "T "); i >= 0 {
		return s[:i], strings.TrimSpace(s[i+1:])
	}
	return s, ""
}

// truncateZone drops fractional seconds and any Z / ±HH:MM suffix.
func truncateZone(t string) string {
	if i := strings.IndexAny(t, ".Z+-"); i >= 0 {
		return t[:i]
	}
	return t
}

func digits(s string) (int, bool) {
	n := 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c < '0' || c > '9' {
			return 0, false
		}
		n = n*10 + int(c-'0')
	}
	return n, len(s) > 0
}

func digitsAnd(prev bool, s string) (int, bool) {
	n, ok := digits(s)
	return n, prev && ok
}

func validDate(y, m, d int) bool {
	if y < 1 || m < 1 || m > 12 || d < 1 {
		return false
	}
	return d <= daysIn(y, m)
}

func daysIn(y, m int) int {
	switch m {
	case 2:
		if y%4 == 0 && (y%100 != 0 || y%400 == 0) {
			return 29
		}
		return 28
	case 4, 6, 9, 11:
		return 30
	}
	return 31
}

func invalid(raw string) error {
	return dErrors.New(dErrors.CodeValidation, fmt.Sprintf("invalid date %q", raw))
}
