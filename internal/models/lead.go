package models

// Lead is a sales prospect imported manually or from CSV.
// Rank is only meaningful relative to leads sharing the same organization
// size bracket; it stays null until a ranking run has touched the lead.
type Lead struct {
	BaseModel
	UserID uint `gorm:"not null;index" json:"user_id"`

	Organization *string `gorm:"size:200" json:"organization"`
	FirstName    *string `gorm:"size:100" json:"firstName"`
	LastName     *string `gorm:"size:100" json:"lastName"`
	Title        *string `gorm:"size:200" json:"title"`
	Employees    *string `gorm:"size:20" json:"employees"`
	Rank         *int    `json:"rank"`
}

func (l *Lead) TableName() string {
	return "leads"
}

// EmployeeBrackets enumerates the allowed organization size ranges
var EmployeeBrackets = []string{
	"2-10",
	"11-50",
	"51-200",
	"201-1000",
	"1001-5000",
	"5001-10000",
	"10001+",
}

// IsValidBracket reports whether s is one of the known size brackets
func IsValidBracket(s string) bool {
	for _, b := range EmployeeBrackets {
		if s == b {
			return true
		}
	}
	return false
}
