package repositories

import (
	"github.com/anonto42/postcraft/backend/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PreferenceRepository defines the interface for topic/platform preferences
type PreferenceRepository interface {
	GetByUserID(userID uint) (*models.Preference, error)
	Save(pref *models.Preference) error
}

type postgresPreferenceRepository struct {
	db *gorm.DB
}

func NewPostgresPreferenceRepository(db *gorm.DB) PreferenceRepository {
	return &postgresPreferenceRepository{db: db}
}

func (r *postgresPreferenceRepository) GetByUserID(userID uint) (*models.Preference, error) {
	var pref models.Preference
	if err := r.db.Where("user_id = ?", userID).First(&pref).Error; err != nil {
		return nil, err
	}
	return &pref, nil
}

// Save inserts the preference or overwrites the user's existing one
func (r *postgresPreferenceRepository) Save(pref *models.Preference) error {
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"topics", "platforms", "updated_at"}),
	}).Create(pref).Error
}
