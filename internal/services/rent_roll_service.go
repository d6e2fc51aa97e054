package services

import (
	"context"

	"leadroll/internal/database"
	"leadroll/internal/models"
	"leadroll/pkg/pagination"

	"gorm.io/gorm"
)

type RentRollService struct {
	db     *gorm.DB
	mapper *ColumnMapperService
}

func NewRentRollService(mapper *ColumnMapperService) *RentRollService {
	return &RentRollService{
		db:     database.GetDB(),
		mapper: mapper,
	}
}

// GetByUser lists the caller's rent-roll records ordered by ascending id
func (s *RentRollService) GetByUser(userID uint) ([]models.RentRollRecord, error) {
	var records []models.RentRollRecord
	err := s.db.Where("user_id = ?", userID).Order("id ASC").Find(&records).Error
	return records, err
}

// GetPageByUser lists one page of the caller's records with the total count
func (s *RentRollService) GetPageByUser(userID uint, params *pagination.PageParams) ([]models.RentRollRecord, int64, error) {
	query := s.db.Model(&models.RentRollRecord{}).Where("user_id = ?", userID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var records []models.RentRollRecord
	err := query.Order("id ASC").
		Offset(params.GetOffset()).
		Limit(params.GetLimit()).
		Find(&records).Error
	return records, total, err
}

// Create inserts a single record
func (s *RentRollService) Create(record *models.RentRollRecord) error {
	return s.db.Create(record).Error
}

// ImportRows runs the bulk import pipeline: infer the column mapping once
// for the whole file, normalize each row against it, then insert the batch.
// A mapping failure aborts before any row is processed; the insert is a
// single batch that commits or fails as one.
func (s *RentRollService) ImportRows(ctx context.Context, userID uint, headers []string, rows []map[string]any) (int, error) {
	mapping, err := s.mapper.MapColumns(ctx, headers)
	if err != nil {
		return 0, err
	}

	records := make([]models.RentRollRecord, 0, len(rows))
	for _, row := range rows {
		record, _ := NormalizeRow(row, mapping)
		record.UserID = userID
		records = append(records, *record)
	}

	if err := s.db.Create(&records).Error; err != nil {
		return 0, err
	}
	return len(records), nil
}

// Update modifies the caller's record matching id. Manual edits are not
// re-validated: invalid_columns keeps whatever the import recorded unless
// the caller overwrites it explicitly.
func (s *RentRollService) Update(userID, id uint, updates map[string]interface{}) error {
	result := s.db.Model(&models.RentRollRecord{}).
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

// Delete removes the caller's record matching id
func (s *RentRollService) Delete(userID, id uint) error {
	result := s.db.Where("user_id = ? AND id = ?", userID, id).Delete(&models.RentRollRecord{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
