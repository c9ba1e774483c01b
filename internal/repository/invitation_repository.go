package repository

import (
	"errors"
	"time"

	"go-confession-board/internal/model"
	"go-confession-board/pkg/db"

	"gorm.io/gorm"
)

type InvitationRepository struct {
	db *gorm.DB
}

func NewInvitationRepository() *InvitationRepository {
	return &InvitationRepository{db: db.DB}
}

func (r *InvitationRepository) Create(invitation *model.GroupInvitation) error {
	return r.db.Create(invitation).Error
}

// FindValidByCode returns the invitation only while it has not expired.
func (r *InvitationRepository) FindValidByCode(code string, now time.Time) (*model.GroupInvitation, error) {
	var invitation model.GroupInvitation
	err := r.db.Where("code = ? AND expires_at > ?", code, now).
		Preload("Group").
		First(&invitation).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &invitation, nil
}

// DeleteExpired removes invitations past their expiry and reports how many
// rows went away.
func (r *InvitationRepository) DeleteExpired(now time.Time) (int64, error) {
	result := r.db.Where("expires_at <= ?", now).Delete(&model.GroupInvitation{})
	return result.RowsAffected, result.Error
}
