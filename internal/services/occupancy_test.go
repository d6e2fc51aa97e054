package services

import (
	"testing"
	"time"

	"leadroll/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rentRow(start, end *string) models.RentRollRecord {
	return models.RentRollRecord{LeaseStart: start, LeaseEnd: end}
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestOccupancyFullCoverage(t *testing.T) {
	records := []models.RentRollRecord{
		rentRow(strPtr("01-01-2024"), strPtr("31-01-2024")),
	}

	slices := CalculateOccupancy(records, day(2024, time.January, 1), day(2024, time.January, 31))
	require.Len(t, slices, 2)
	assert.Equal(t, "Occupied", slices[0].Name)
	assert.InDelta(t, 100, slices[0].Value, 1e-9)
	assert.Equal(t, "Vacant", slices[1].Name)
	assert.InDelta(t, 0, slices[1].Value, 1e-9)
}

func TestOccupancyPartialCoverage(t *testing.T) {
	// 30-day window; one unit leased throughout, one for the first 15 days
	records := []models.RentRollRecord{
		rentRow(strPtr("01-01-2024"), strPtr("31-01-2024")),
		rentRow(strPtr("01-01-2024"), strPtr("16-01-2024")),
	}

	slices := CalculateOccupancy(records, day(2024, time.January, 1), day(2024, time.January, 31))
	require.Len(t, slices, 2)
	assert.InDelta(t, 75, slices[0].Value, 1e-9)
	assert.InDelta(t, 25, slices[1].Value, 1e-9)
}

func TestOccupancyNoRecords(t *testing.T) {
	slices := CalculateOccupancy(nil, day(2024, time.January, 1), day(2024, time.January, 31))
	require.Len(t, slices, 1)
	assert.Equal(t, "No data", slices[0].Name)
	assert.Equal(t, float64(1), slices[0].Value)
}

func TestOccupancyNoValidUnits(t *testing.T) {
	// an unparseable lease start never enters the denominator
	records := []models.RentRollRecord{
		rentRow(strPtr("sometime in spring"), strPtr("31-01-2024")),
		rentRow(nil, strPtr("31-01-2024")),
	}

	slices := CalculateOccupancy(records, day(2024, time.January, 1), day(2024, time.January, 31))
	require.Len(t, slices, 1)
	assert.Equal(t, "No data", slices[0].Name)
}

func TestOccupancyEmptyWindow(t *testing.T) {
	records := []models.RentRollRecord{
		rentRow(strPtr("01-01-2024"), strPtr("31-01-2024")),
	}

	start := day(2024, time.January, 15)
	slices := CalculateOccupancy(records, start, start)
	require.Len(t, slices, 1)
	assert.Equal(t, "No data", slices[0].Name)
}

func TestOccupancyLeaseOutsideWindow(t *testing.T) {
	records := []models.RentRollRecord{
		rentRow(strPtr("01-06-2024"), strPtr("30-06-2024")),
	}

	slices := CalculateOccupancy(records, day(2024, time.January, 1), day(2024, time.January, 31))
	require.Len(t, slices, 2)
	assert.InDelta(t, 0, slices[0].Value, 1e-9)
	assert.InDelta(t, 100, slices[1].Value, 1e-9)
}

func TestOccupancyOpenEndedLeaseContributesNothing(t *testing.T) {
	// no end date: the unit counts, its leased time does not
	records := []models.RentRollRecord{
		rentRow(strPtr("01-01-2024"), nil),
	}

	slices := CalculateOccupancy(records, day(2024, time.January, 1), day(2024, time.January, 31))
	require.Len(t, slices, 2)
	assert.InDelta(t, 0, slices[0].Value, 1e-9)
	assert.InDelta(t, 100, slices[1].Value, 1e-9)
}

func TestOccupancyEndBeforeStartIgnored(t *testing.T) {
	records := []models.RentRollRecord{
		rentRow(strPtr("31-01-2024"), strPtr("01-01-2024")),
	}

	slices := CalculateOccupancy(records, day(2024, time.January, 1), day(2024, time.January, 31))
	require.Len(t, slices, 2)
	assert.InDelta(t, 0, slices[0].Value, 1e-9)
}
