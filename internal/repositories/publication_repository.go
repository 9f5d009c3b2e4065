package repositories

import (
	"context"

	"github.com/anonto42/postcraft/backend/internal/models"
	"gorm.io/gorm"
)

// PublicationRepository stores publish attempts and aggregates them for analytics
type PublicationRepository interface {
	CreateRecord(ctx context.Context, record *models.PublishRecord) error
	GetByUserID(ctx context.Context, userID uint, platform string, page, limit int) ([]models.PublishRecord, int64, error)
	CountByPlatformAndStatus(ctx context.Context, userID uint) ([]models.PlatformStatusCount, error)
}

type postgresPublicationRepository struct {
	db *gorm.DB
}

func NewPostgresPublicationRepository(db *gorm.DB) PublicationRepository {
	return &postgresPublicationRepository{db: db}
}

func (r *postgresPublicationRepository) CreateRecord(ctx context.Context, record *models.PublishRecord) error {
	return r.db.WithContext(ctx).Create(record).Error
}

func (r *postgresPublicationRepository) GetByUserID(ctx context.Context, userID uint, platform string, page, limit int) ([]models.PublishRecord, int64, error) {
	records := []models.PublishRecord{}
	var total int64

	query := r.db.WithContext(ctx).Model(&models.PublishRecord{}).Where("user_id = ?", userID)
	if platform != "" {
		query = query.Where("platform = ?", platform)
	}
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	err := query.Order("created_at DESC").
		Offset(offset).Limit(limit).
		Find(&records).Error

	return records, total, err
}

func (r *postgresPublicationRepository) CountByPlatformAndStatus(ctx context.Context, userID uint) ([]models.PlatformStatusCount, error) {
	var counts []models.PlatformStatusCount
	err := r.db.WithContext(ctx).Model(&models.PublishRecord{}).
		Select("platform, status, COUNT(*) AS count").
		Where("user_id = ?", userID).
		Group("platform, status").
		Scan(&counts).Error
	return counts, err
}
