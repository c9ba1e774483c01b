package repository

import (
	"errors"

	"go-confession-board/internal/model"
	"go-confession-board/pkg/db"

	"gorm.io/gorm"
)

type GroupMemberRepository struct {
	db *gorm.DB
}

func NewGroupMemberRepository() *GroupMemberRepository {
	return &GroupMemberRepository{db: db.DB}
}

func (r *GroupMemberRepository) AddMember(groupID, userID uint, role string) error {
	if role == "" {
		role = model.RoleMember
	}
	member := &model.GroupMember{
		GroupID: groupID,
		UserID:  userID,
		Role:    role,
	}
	return r.db.Create(member).Error
}

func (r *GroupMemberRepository) FindMember(groupID, userID uint) (*model.GroupMember, error) {
	var member model.GroupMember
	err := r.db.Where("group_id = ? AND user_id = ?", groupID, userID).First(&member).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &member, nil
}

func (r *GroupMemberRepository) FindGroupMembers(groupID uint) ([]model.GroupMember, error) {
	var members []model.GroupMember
	err := r.db.Where("group_id = ?", groupID).Preload("User").Find(&members).Error
	return members, err
}

// RemoveMember deletes the membership row. Role checks belong to the
// service layer.
func (r *GroupMemberRepository) RemoveMember(groupID, userID uint) error {
	return r.db.Where("group_id = ? AND user_id = ?", groupID, userID).Delete(&model.GroupMember{}).Error
}
