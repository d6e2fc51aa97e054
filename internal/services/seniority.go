package services

// seniorityTables maps each employee-count bracket to the reference ranking
// of job titles used as model context during lead ranking (1 = most senior).
// Static reference data; never persisted or mutated.
var seniorityTables = map[string]map[string]int{
	"2-10": {
		"Founder / Co-Founder": 1,
		"CEO / President":      2,
		"Owner / Co-Owner":     3,
		"Managing Director":    4,
		"Head of Sales":        5,
	},
	"11-50": {
		"Founder / Co-Founder": 1,
		"CEO / President":      2,
		"Owner / Co-Owner":     3,
		"Managing Director":    4,
		"Head of Sales":        5,
	},
	"51-200": {
		"VP of Sales":                   1,
		"Head of Sales":                 2,
		"Sales Director":                3,
		"Director of Sales Development": 4,
		"CRO (Chief Revenue Officer)":   5,
		"Head of Revenue Operations":    6,
		"VP of Growth":                  7,
	},
	"201-1000": {
		"VP of Sales Development":       1,
		"VP of Sales":                   2,
		"Head of Sales Development":     3,
		"Director of Sales Development": 4,
		"CRO (Chief Revenue Officer)":   5,
		"VP of Revenue Operations":      6,
		"VP of GTM":                     7,
	},
	"1001-5000": {
		"VP of Sales Development":       1,
		"VP of Sales":                   2,
		"Head of Sales Development":     3,
		"Director of Sales Development": 4,
		"CRO (Chief Revenue Officer)":   5,
		"VP of Revenue Operations":      6,
		"VP of GTM":                     7,
	},
	"5001-10000": {
		"VP of Sales Development":       1,
		"VP of Sales":                   2,
		"Head of Sales Development":     3,
		"Director of Sales Development": 4,
		"CRO (Chief Revenue Officer)":   5,
		"VP of Revenue Operations":      6,
		"VP of GTM":                     7,
	},
	"10001+": {
		"VP of Sales Development":       1,
		"VP of Inside Sales":            2,
		"Head of Sales Development":     3,
		"CRO (Chief Revenue Officer)":   4,
		"VP of Revenue Operations":      5,
		"Director of Sales Development": 6,
		"VP of Field Sales":             7,
	},
}

// SeniorityTable returns the title ranking for a bracket
func SeniorityTable(bracket string) (map[string]int, bool) {
	table, ok := seniorityTables[bracket]
	return table, ok
}
