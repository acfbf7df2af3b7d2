package temporal

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "custody/pkg/domain-errors"
)

// Justification: the movement timestamp entered by an officer must read back
// byte-for-byte, whatever the server timezone.
func TestDisplayRoundTripThroughStorage(t *testing.T) {
	stored, err := ToStorage("01.03.2024 10:00:00", DateTime)
	require.NoError(t, err)
	assert.Equal(t, "2024-03-01 10:00:00", stored)
	assert.Equal(t, "01.03.2024 10:00:00", ToDisplay(stored))
}

func TestParseAcceptedFormats(t *testing.T) {
	tests := []struct {
		name        string
		raw         string
		g           Granularity
		wantDisplay string
		wantStorage string
	}{
		{"display date", "05.11.2023", Date, "05.11.2023", "2023-11-05"},
		{"display datetime", "01.03.2024 10:00:00", DateTime, "01.03.2024 10:00:00", "2024-03-01 10:00:00"},
		{"storage datetime", "2024-03-01 10:00:00", DateTime, "01.03.2024 10:00:00", "2024-03-01 10:00:00"},
		{"widget date", "2024-03-01", Date, "01.03.2024", "2024-03-01"},
		{"widget datetime-local without seconds", "2024-03-01T10:05", DateTime, "01.03.2024 10:05:00", "2024-03-01 10:05:00"},
		{"zone suffix is cut, not converted", "2024-03-01T23:30:00+05:00", DateTime, "01.03.2024 23:30:00", "2024-03-01 23:30:00"},
		{"utc suffix with fraction", "2024-02-29T00:15:00.000Z", DateTime, "29.02.2024 00:15:00", "2024-02-29 00:15:00"},
		{"date granularity drops time", "2024-03-01T23:59:59Z", Date, "01.03.2024", "2024-03-01"},
		{"datetime from date-only input is midnight", "01.03.2024", DateTime, "01.03.2024 00:00:00", "2024-03-01 00:00:00"},
		{"surrounding whitespace", "  01.03.2024 ", Date, "01.03.2024", "2024-03-01"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := Parse(tt.raw, tt.g)
			require.NoError(t, err)
			assert.Equal(t, tt.g, v.Granularity())
			assert.Equal(t, tt.wantDisplay, v.Display())
			assert.Equal(t, tt.wantStorage, v.Storage())
		})
	}
}

func TestParseRejects(t *testing.T) {
	for _, raw := range []string{
		"",
		"   ",
		"2024/03/01",
		"1.3.2024",
		"31.04.2024",
		"29.02.2023",
		"00.01.2024",
		"01.13.2024",
		"01.03.2024 24:00:00",
		"01.03.2024 10:60",
		"01.03.2024 10-00-00",
		"yesterday",
	} {
		t.Run(raw, func(t *testing.T) {
			_, err := Parse(raw, DateTime)
			require.Error(t, err)
			assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))
		})
	}
}

func TestParseUnknownGranularity(t *testing.T) {
	_, err := Parse("01.03.2024", Granularity(9))
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeInternal))
}

func TestToDisplayIsLenient(t *testing.T) {
	assert.Equal(t, "", ToDisplay(""))
	assert.Equal(t, "not a date", ToDisplay("not a date"))
	assert.Equal(t, "01.03.2024", ToDisplay("2024-03-01"))
	assert.Equal(t, "01.03.2024 10:00:00", ToDisplay("2024-03-01T10:00:00Z"))
}

func TestWidget(t *testing.T) {
	assert.Equal(t, "2024-03-01", MustParse("01.03.2024", Date).Widget())
	assert.Equal(t, "2024-03-01T10:00:00", MustParse("01.03.2024 10:00:00", DateTime).Widget())
	assert.Equal(t, "", Value{}.Widget())
}

func TestCompareAndAs(t *testing.T) {
	a := MustParse("01.03.2024 10:00:00", DateTime)
	b := MustParse("02.03.2024 09:00:00", DateTime)
	assert.Equal(t, -1, a.Compare(b))
	assert.Equal(t, 1, b.Compare(a))
	assert.Equal(t, 0, a.Compare(a))

	d := a.As(Date)
	assert.Equal(t, "01.03.2024", d.Display())
	assert.Equal(t, "01.03.2024 00:00:00", d.As(DateTime).Display())
	assert.True(t, Value{}.As(Date).IsZero())
}

func TestJSON(t *testing.T) {
	type row struct {
		At   Value `json:"at"`
		Next Value `json:"next"`
	}

	out, err := json.Marshal(row{At: MustParse("01.03.2024 10:00:00", DateTime)})
	require.NoError(t, err)
	assert.JSONEq(t, `{"at":"01.03.2024 10:00:00","next":null}`, string(out))

	var in row
	require.NoError(t, json.Unmarshal([]byte(`{"at":"2024-03-01","next":""}`), &in))
	assert.Equal(t, Date, in.At.Granularity())
	assert.True(t, in.Next.IsZero())

	err = json.Unmarshal([]byte(`{"at":42}`), &in)
	require.Error(t, err)
}
