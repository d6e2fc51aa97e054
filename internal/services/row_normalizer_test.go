package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func fullMapping() *ColumnMapping {
	return &ColumnMapping{
		Address:        strPtr("Street Address"),
		Property:       strPtr("Building"),
		Unit:           strPtr("Apt"),
		Tenant:         strPtr("Renter Name"),
		LeaseStart:     strPtr("Start"),
		LeaseEnd:       strPtr("End"),
		Sqft:           strPtr("Sq Ft"),
		MonthlyPayment: strPtr("Rent"),
	}
}

func TestNormalizeRowFullRow(t *testing.T) {
	row := map[string]any{
		"Street Address": "12 Main St",
		"Building":       "North Tower",
		"Apt":            "4B",
		"Renter Name":    "Ada Lovelace",
		"Start":          "2024-03-05",
		"End":            "Mar 05, 2025",
		"Sq Ft":          "900",
		"Rent":           "$1,850",
	}

	record, invalid := NormalizeRow(row, fullMapping())
	assert.Empty(t, invalid)

	require.NotNil(t, record.Address)
	assert.Equal(t, "12 Main St", *record.Address)
	require.NotNil(t, record.LeaseStart)
	assert.Equal(t, "05-03-2024", *record.LeaseStart)
	require.NotNil(t, record.LeaseEnd)
	assert.Equal(t, "05-03-2025", *record.LeaseEnd)
	// non-date values are copied verbatim, currency noise and all
	require.NotNil(t, record.MonthlyPayment)
	assert.Equal(t, "$1,850", *record.MonthlyPayment)
}

func TestNormalizeRowAbsenceIsNotInvalidity(t *testing.T) {
	mapping := fullMapping()
	mapping.Sqft = nil // no header matched this field

	row := map[string]any{
		"Street Address": "12 Main St",
		// "Building" cell missing entirely
		"Apt":         "",   // blank
		"Renter Name": "  ", // whitespace only
		"Start":       nil,
	}

	record, invalid := NormalizeRow(row, mapping)
	assert.Empty(t, invalid)
	assert.Nil(t, record.Property)
	assert.Nil(t, record.Unit)
	assert.Nil(t, record.Tenant)
	assert.Nil(t, record.LeaseStart)
	assert.Nil(t, record.Sqft)
	assert.Empty(t, record.InvalidColumns)
}

func TestNormalizeRowFlagsUnparseableDates(t *testing.T) {
	row := map[string]any{
		"Start": "13/45/2024",
		"End":   "  sometime next year  ",
	}

	record, invalid := NormalizeRow(row, fullMapping())
	assert.ElementsMatch(t, []string{"lease_start", "lease_end"}, invalid)
	assert.ElementsMatch(t, []string{"lease_start", "lease_end"}, []string(record.InvalidColumns))

	// raw strings survive, trimmed, so nothing is silently dropped
	require.NotNil(t, record.LeaseStart)
	assert.Equal(t, "13/45/2024", *record.LeaseStart)
	require.NotNil(t, record.LeaseEnd)
	assert.Equal(t, "sometime next year", *record.LeaseEnd)
}

func TestNormalizeRowStringifiesNumericCells(t *testing.T) {
	row := map[string]any{
		"Sq Ft": 1200.0,
		"Rent":  1850,
	}

	record, invalid := NormalizeRow(row, fullMapping())
	assert.Empty(t, invalid)
	require.NotNil(t, record.Sqft)
	assert.Equal(t, "1200", *record.Sqft)
	require.NotNil(t, record.MonthlyPayment)
	assert.Equal(t, "1850", *record.MonthlyPayment)
}

func TestNormalizeRowDeterministic(t *testing.T) {
	row := map[string]any{
		"Street Address": "12 Main St",
		"Start":          "05/03/2024",
		"End":            "garbage",
	}
	mapping := fullMapping()

	first, firstInvalid := NormalizeRow(row, mapping)
	second, secondInvalid := NormalizeRow(row, mapping)

	assert.Equal(t, first, second)
	assert.Equal(t, firstInvalid, secondInvalid)
}
