//go:build go1.18

package domain

import (
	"testing"
	"unicode/utf8"
)

// FuzzParseSubjectID tests that parsing never panics on arbitrary input
// and always returns either a valid ID or an error.
func FuzzParseSubjectID(f *testing.F) {
	f.Add("")
	f.Add("2001xxxx")
	f.Add("2001234567890")
	f.Add("'; DROP TABLE movements;--")
	f.Add(string([]byte{0x00, 0x01, 0x02}))
	f.Add("2001xxxx\x00suffix")

	f.Fuzz(func(t *testing.T, input string) {
		id, err := ParseSubjectID(input)

		if err == nil {
			roundTrip, err2 := ParseSubjectID(id.String())
			if err2 != nil {
				t.Errorf("valid id failed round-trip: %v", err2)
			}
			if roundTrip != id {
				t.Error("round-trip changed id value")
			}
		}

		if !utf8.ValidString(input) && err == nil {
			t.Error("non-UTF8 input was accepted")
		}
	})
}

// FuzzParseMovementID checks that accepted row ids are always positive and
// format back to an accepted string.
func FuzzParseMovementID(f *testing.F) {
	f.Add("1")
	f.Add("0")
	f.Add("-5")
	f.Add("18446744073709551616")

	f.Fuzz(func(t *testing.T, input string) {
		id, err := ParseMovementID(input)
		if err != nil {
			return
		}
		if id <= 0 {
			t.Errorf("accepted non-positive id %d", id)
		}
		again, err := ParseMovementID(id.String())
		if err != nil || again != id {
			t.Errorf("round-trip failed for %q", input)
		}
	})
}
