package dates

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeSupportedFormats(t *testing.T) {
	// every supported representation of 5 March 2024
	cases := []string{
		"2024-03-05",
		"03-05-2024",
		"03/05/2024",
		"2024/03/05",
		"Mar 05, 2024",
		"05 Mar 2024",
		"20240305",
		"03052024",
	}

	for _, in := range cases {
		value, invalid := Normalize(in)
		assert.False(t, invalid, "input %q should parse", in)
		assert.Equal(t, "05-03-2024", value, "input %q", in)
	}
}

func TestNormalizeCanonicalPassthrough(t *testing.T) {
	// a DD-MM-YYYY input is matched by the MM-DD-YYYY candidate when the
	// day is a plausible month, so only the calendar date may swap
	value, invalid := Normalize("25-03-2024")
	assert.False(t, invalid)
	assert.Equal(t, "25-03-2024", value)
}

func TestNormalizeAmbiguousTieBreak(t *testing.T) {
	// "01-02-2024" matches MM-DD-YYYY before DD-MM-YYYY: January 2nd
	value, invalid := Normalize("01-02-2024")
	assert.False(t, invalid)
	assert.Equal(t, "02-01-2024", value)

	// slash form follows the same order: MM/DD/YYYY wins
	value, invalid = Normalize("05/03/2024")
	assert.False(t, invalid)
	assert.Equal(t, "03-05-2024", value)
}

func TestNormalizeInvalid(t *testing.T) {
	value, invalid := Normalize("not-a-date")
	assert.True(t, invalid)
	assert.Equal(t, "not-a-date", value)

	value, invalid = Normalize("13/45/2024")
	assert.True(t, invalid)
	assert.Equal(t, "13/45/2024", value)

	// trimmed raw string is preserved
	value, invalid = Normalize("  junk value  ")
	assert.True(t, invalid)
	assert.Equal(t, "junk value", value)
}

func TestNormalizeStrictness(t *testing.T) {
	// unpadded components do not match any candidate format
	_, invalid := Normalize("2024-3-5")
	assert.True(t, invalid)

	_, invalid = Normalize("Mar 5, 2024")
	assert.True(t, invalid)
}

func TestNormalizeBlank(t *testing.T) {
	for _, in := range []string{"", "   ", "\t"} {
		value, invalid := Normalize(in)
		assert.False(t, invalid, "blank input is valid-and-empty")
		assert.Equal(t, "", value)
	}
}

func TestParseCanonical(t *testing.T) {
	got, ok := ParseCanonical("05-03-2024")
	assert.True(t, ok)
	assert.Equal(t, time.Date(2024, time.March, 5, 0, 0, 0, 0, time.UTC), got)

	got, ok = ParseCanonical("2024-03-05")
	assert.True(t, ok)
	assert.Equal(t, time.Date(2024, time.March, 5, 0, 0, 0, 0, time.UTC), got)

	_, ok = ParseCanonical("03/05/2024")
	assert.False(t, ok)

	_, ok = ParseCanonical("garbage")
	assert.False(t, ok)

	_, ok = ParseCanonical("")
	assert.False(t, ok)
}

func TestNormalizeRoundTripsCalendarDate(t *testing.T) {
	// normalized output always parses back to the same calendar date
	inputs := map[string]time.Time{
		"2024-12-31":   time.Date(2024, time.December, 31, 0, 0, 0, 0, time.UTC),
		"Jan 01, 2025": time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC),
		"19991231":     time.Date(1999, time.December, 31, 0, 0, 0, 0, time.UTC),
	}
	for in, want := range inputs {
		value, invalid := Normalize(in)
		assert.False(t, invalid, "input %q", in)
		got, ok := ParseCanonical(value)
		assert.True(t, ok)
		assert.Equal(t, want, got, "input %q", in)
	}
}
