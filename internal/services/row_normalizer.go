package services

import (
	"fmt"
	"strings"

	"leadroll/internal/models"
	"leadroll/pkg/dates"

	"gorm.io/datatypes"
)

// NormalizeRow applies a resolved ColumnMapping to one raw CSV row and
// returns the canonical record plus the names of fields whose values could
// not be parsed. Absence is never invalidity: a field with no mapped header,
// a missing cell, or a blank value comes out nil and unflagged. Lease dates
// go through the date normalizer; when a date fails to parse, the field name
// is flagged and the trimmed raw string is kept rather than dropped.
// The transform is pure: the same row and mapping always produce the same
// record.
func NormalizeRow(row map[string]any, mapping *ColumnMapping) (*models.RentRollRecord, []string) {
	invalid := []string{}

	record := &models.RentRollRecord{
		Address:        copyField(row, mapping.Address),
		Property:       copyField(row, mapping.Property),
		Unit:           copyField(row, mapping.Unit),
		Tenant:         copyField(row, mapping.Tenant),
		LeaseStart:     dateField(row, mapping.LeaseStart, "lease_start", &invalid),
		LeaseEnd:       dateField(row, mapping.LeaseEnd, "lease_end", &invalid),
		Sqft:           copyField(row, mapping.Sqft),
		MonthlyPayment: copyField(row, mapping.MonthlyPayment),
	}
	record.InvalidColumns = datatypes.JSONSlice[string](invalid)

	return record, invalid
}

// rawValue fetches the cell for a mapped source header. ok is false when the
// field is absent: no mapping, header not in the row, or a blank value.
func rawValue(row map[string]any, sourceKey *string) (string, bool) {
	if sourceKey == nil {
		return "", false
	}
	v, present := row[*sourceKey]
	if !present || v == nil {
		return "", false
	}
	s := stringify(v)
	if strings.TrimSpace(s) == "" {
		return "", false
	}
	return s, true
}

// copyField copies a raw value verbatim
func copyField(row map[string]any, sourceKey *string) *string {
	s, ok := rawValue(row, sourceKey)
	if !ok {
		return nil
	}
	return &s
}

// dateField normalizes a lease date, flagging the target column when the
// value does not match any supported format
func dateField(row map[string]any, sourceKey *string, targetCol string, invalid *[]string) *string {
	raw, ok := rawValue(row, sourceKey)
	if !ok {
		return nil
	}
	value, bad := dates.Normalize(raw)
	if bad {
		*invalid = append(*invalid, targetCol)
	}
	return &value
}

func stringify(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}
