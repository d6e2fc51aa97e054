package models

import (
	"gorm.io/datatypes"
)

// RentRollRecord is one leased unit. All canonical columns are stored as
// text because bulk import copies raw CSV values verbatim; a field listed in
// InvalidColumns kept its unparsed raw string instead of being dropped.
type RentRollRecord struct {
	BaseModel
	UserID uint `gorm:"not null;index" json:"user_id"`

	Address        *string `gorm:"size:300" json:"address"`
	Property       *string `gorm:"size:200" json:"property"`
	Unit           *string `gorm:"size:50" json:"unit"`
	Tenant         *string `gorm:"size:200" json:"tenant"`
	LeaseStart     *string `gorm:"size:50" json:"lease_start"`
	LeaseEnd       *string `gorm:"size:50" json:"lease_end"`
	Sqft           *string `gorm:"size:50" json:"sqft"`
	MonthlyPayment *string `gorm:"size:50" json:"monthly_payment"`

	InvalidColumns datatypes.JSONSlice[string] `gorm:"type:jsonb" json:"invalid_columns"`
}

func (r *RentRollRecord) TableName() string {
	return "rent_roll"
}
