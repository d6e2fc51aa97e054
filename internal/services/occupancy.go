package services

import (
	"time"

	"leadroll/internal/models"
	"leadroll/pkg/dates"
)

// ChartSlice is one segment of the occupancy breakdown
type ChartSlice struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

// CalculateOccupancy computes the share of aggregate unit-time inside
// [periodStart, periodEnd) that is covered by a lease. A unit counts toward
// the denominator when its lease start parses; a unit without a parseable
// end date is treated as instantaneous and contributes zero leased time.
// Degenerate inputs (empty window, no valid units) return a single "No data"
// slice instead of dividing by zero.
func CalculateOccupancy(records []models.RentRollRecord, periodStart, periodEnd time.Time) []ChartSlice {
	window := periodEnd.Sub(periodStart)

	var totalOverlap time.Duration
	validUnits := 0

	for _, r := range records {
		if r.LeaseStart == nil {
			continue
		}
		start, ok := dates.ParseCanonical(*r.LeaseStart)
		if !ok {
			continue
		}
		validUnits++

		effectiveEnd := start
		if r.LeaseEnd != nil {
			if end, ok := dates.ParseCanonical(*r.LeaseEnd); ok {
				effectiveEnd = end
			}
		}
		if !effectiveEnd.After(start) {
			continue
		}

		overlapStart := maxTime(start, periodStart)
		overlapEnd := minTime(effectiveEnd, periodEnd)
		if overlapEnd.After(overlapStart) {
			totalOverlap += overlapEnd.Sub(overlapStart)
		}
	}

	if window <= 0 || validUnits == 0 {
		return []ChartSlice{{Name: "No data", Value: 1}}
	}

	totalAvailable := window * time.Duration(validUnits)
	occupied := 100 * float64(totalOverlap) / float64(totalAvailable)
	vacant := 100 - occupied
	if vacant < 0 {
		vacant = 0
	}

	return []ChartSlice{
		{Name: "Occupied", Value: occupied},
		{Name: "Vacant", Value: vacant},
	}
}

func minTime(a, b time.Time) time.Time {
	if a.Before(b) {
		return a
	}
	return b
}

func maxTime(a, b time.Time) time.Time {
	if a.After(b) {
		return a
	}
	return b
}
