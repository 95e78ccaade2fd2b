package domain

import (
	"testing"
	"unicode/utf8"
)

// FuzzParseVoterID checks that parsing never panics and that accepted IDs
// round-trip unchanged.
func FuzzParseVoterID(f *testing.F) {
	f.Add("")
	f.Add("STU001")
	f.Add("stu001")
	f.Add("'; DROP TABLE students;--")
	f.Add(string([]byte{0x00, 0x01, 0x02}))
	f.Add("STU001\x00suffix")

	f.Fuzz(func(t *testing.T, input string) {
		id, err := ParseVoterID(input)
		if err != nil {
			return
		}
		roundTrip, err := ParseVoterID(id.String())
		if err != nil {
			t.Errorf("valid voter ID failed round-trip: %v", err)
		}
		if roundTrip != id {
			t.Error("round-trip changed voter ID")
		}
		if !utf8.ValidString(input) {
			t.Error("non-UTF8 input was accepted")
		}
	})
}

func FuzzParseSessionID(f *testing.F) {
	f.Add("550e8400-e29b-41d4-a716-446655440000")
	f.Add("00000000-0000-0000-0000-000000000000")
	f.Add("invalid")

	f.Fuzz(func(t *testing.T, input string) {
		id, err := ParseSessionID(input)
		if err != nil {
			return
		}
		if id.IsNil() {
			t.Error("nil session ID was accepted")
		}
		roundTrip, err := ParseSessionID(id.String())
		if err != nil || roundTrip != id {
			t.Errorf("session ID failed round-trip: %v", err)
		}
	})
}
