package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/noah-isme/maum-go-api/internal/models"
)

// ActivityRepository persists submitted student activity records.
type ActivityRepository interface {
	Create(ctx context.Context, record *models.ActivityRecord) error
	ListAll(ctx context.Context) ([]models.ActivityRecord, error)
	GetByID(ctx context.Context, id uint) (models.ActivityRecord, error)
	Delete(ctx context.Context, id uint) error
}

type activityRepository struct {
	db *gorm.DB
}

// NewActivityRepository constructs the activity repository backed by GORM.
func NewActivityRepository(db *gorm.DB) ActivityRepository {
	return &activityRepository{db: db}
}

func (r *activityRepository) Create(ctx context.Context, record *models.ActivityRecord) error {
	return r.db.WithContext(ctx).Create(record).Error
}

// ListAll returns every record ordered by creation time, newest first.
func (r *activityRepository) ListAll(ctx context.Context) ([]models.ActivityRecord, error) {
	var records []models.ActivityRecord
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&records).Error; err != nil {
		return nil, err
	}

	return records, nil
}

func (r *activityRepository) GetByID(ctx context.Context, id uint) (models.ActivityRecord, error) {
	var record models.ActivityRecord
	if err := r.db.WithContext(ctx).First(&record, id).Error; err != nil {
		return models.ActivityRecord{}, err
	}

	return record, nil
}

// Delete removes the record, reporting gorm.ErrRecordNotFound when no row
// matched so callers can distinguish a miss from a successful removal.
func (r *activityRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.ActivityRecord{}, id)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}
