package repository

import (
	"errors"

	"go-confession-board/internal/model"
	"go-confession-board/pkg/db"

	"gorm.io/gorm"
)

type GroupRepository struct {
	db *gorm.DB
}

func NewGroupRepository() *GroupRepository {
	return &GroupRepository{db: db.DB}
}

// Create inserts the group and its owner membership row in one transaction.
func (r *GroupRepository) Create(group *model.Group) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(group).Error; err != nil {
			return err
		}
		ownerMember := &model.GroupMember{
			GroupID: group.ID,
			UserID:  group.CreatedBy,
			Role:    model.RoleOwner,
		}
		return tx.Create(ownerMember).Error
	})
}

func (r *GroupRepository) FindByID(groupID uint) (*model.Group, error) {
	var group model.Group
	err := r.db.Preload("Members").Preload("Members.User").First(&group, groupID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &group, nil
}

// FindUserGroups returns the union of groups the user created and groups
// where they hold a membership row, deduplicated by id.
func (r *GroupRepository) FindUserGroups(userID uint) ([]model.Group, error) {
	var created []model.Group
	if err := r.db.Where("created_by = ?", userID).Find(&created).Error; err != nil {
		return nil, err
	}

	var joined []model.Group
	err := r.db.Joins("JOIN group_members ON groups.id = group_members.group_id").
		Where("group_members.user_id = ?", userID).
		Find(&joined).Error
	if err != nil {
		return nil, err
	}

	seen := make(map[uint]bool, len(created)+len(joined))
	groups := make([]model.Group, 0, len(created)+len(joined))
	for _, g := range append(created, joined...) {
		if seen[g.ID] {
			continue
		}
		seen[g.ID] = true
		groups = append(groups, g)
	}
	return groups, nil
}
