package repository

import (
	"errors"

	"go-confession-board/internal/model"
	"go-confession-board/pkg/db"

	"gorm.io/gorm"
)

type ProfileRepository struct {
	db *gorm.DB
}

func NewProfileRepository() *ProfileRepository {
	return &ProfileRepository{db: db.DB}
}

func (r *ProfileRepository) Create(profile *model.Profile) error {
	return r.db.Create(profile).Error
}

func (r *ProfileRepository) FindByUserID(userID uint) (*model.Profile, error) {
	var profile model.Profile
	if err := r.db.Where("user_id = ?", userID).First(&profile).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &profile, nil
}

// FindByUserIDs returns the profiles keyed by user ID, for batching author
// names onto feed rows.
func (r *ProfileRepository) FindByUserIDs(userIDs []uint) (map[uint]model.Profile, error) {
	profiles := make([]model.Profile, 0, len(userIDs))
	if len(userIDs) > 0 {
		if err := r.db.Where("user_id IN ?", userIDs).Find(&profiles).Error; err != nil {
			return nil, err
		}
	}
	byID := make(map[uint]model.Profile, len(profiles))
	for _, p := range profiles {
		byID[p.UserID] = p
	}
	return byID, nil
}

func (r *ProfileRepository) UpdateName(userID uint, name string) error {
	return r.db.Model(&model.Profile{}).Where("user_id = ?", userID).Update("name", name).Error
}

func (r *ProfileRepository) UpdateAvatarPath(userID uint, path string) error {
	return r.db.Model(&model.Profile{}).Where("user_id = ?", userID).Update("avatar_path", path).Error
}
