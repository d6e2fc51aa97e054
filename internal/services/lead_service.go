package services

import (
	"strings"

	"leadroll/internal/database"
	"leadroll/internal/models"
	"leadroll/pkg/pagination"

	"gorm.io/gorm"
)

// LeadCSVRow is one row of a lead bulk import. Lead imports skip column
// mapping inference and rely on this fixed header convention instead.
type LeadCSVRow struct {
	AccountName          *string `json:"account_name"`
	LeadFirstName        *string `json:"lead_first_name"`
	LeadLastName         *string `json:"lead_last_name"`
	LeadJobTitle         *string `json:"lead_job_title"`
	AccountEmployeeRange *string `json:"account_employee_range"`
}

type LeadService struct {
	db *gorm.DB
}

func NewLeadService() *LeadService {
	return &LeadService{db: database.GetDB()}
}

// GetByUser lists the caller's leads ordered by ascending id
func (s *LeadService) GetByUser(userID uint) ([]models.Lead, error) {
	var leads []models.Lead
	err := s.db.Where("user_id = ?", userID).Order("id ASC").Find(&leads).Error
	return leads, err
}

// GetPageByUser lists one page of the caller's leads with the total count
func (s *LeadService) GetPageByUser(userID uint, params *pagination.PageParams) ([]models.Lead, int64, error) {
	query := s.db.Model(&models.Lead{}).Where("user_id = ?", userID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var leads []models.Lead
	err := query.Order("id ASC").
		Offset(params.GetOffset()).
		Limit(params.GetLimit()).
		Find(&leads).Error
	return leads, total, err
}

// Create inserts a single lead
func (s *LeadService) Create(lead *models.Lead) error {
	return s.db.Create(lead).Error
}

// BulkImport inserts one lead per CSV row. The whole batch is a single
// insert: it either commits or fails as one.
func (s *LeadService) BulkImport(userID uint, rows []LeadCSVRow) (int, error) {
	leads := make([]models.Lead, 0, len(rows))
	for _, row := range rows {
		leads = append(leads, models.Lead{
			UserID:       userID,
			Organization: trimmed(row.AccountName),
			FirstName:    trimmed(row.LeadFirstName),
			LastName:     trimmed(row.LeadLastName),
			Title:        trimmed(row.LeadJobTitle),
			Employees:    row.AccountEmployeeRange,
		})
	}

	if err := s.db.Create(&leads).Error; err != nil {
		return 0, err
	}
	return len(leads), nil
}

// Update modifies the caller's lead matching id. The user_id predicate makes
// cross-owner writes impossible regardless of the id supplied.
func (s *LeadService) Update(userID, id uint, updates map[string]interface{}) error {
	result := s.db.Model(&models.Lead{}).
		Where("user_id = ? AND id = ?", userID, id).
		Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Delete removes the caller's lead matching id
func (s *LeadService) Delete(userID, id uint) error {
	result := s.db.Where("user_id = ? AND id = ?", userID, id).Delete(&models.Lead{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// trimmed returns the trimmed value, or nil when absent
func trimmed(s *string) *string {
	if s == nil {
		return nil
	}
	t := strings.TrimSpace(*s)
	return &t
}
