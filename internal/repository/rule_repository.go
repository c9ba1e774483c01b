package repository

import (
	"errors"

	"go-confession-board/internal/model"
	"go-confession-board/pkg/db"

	"gorm.io/gorm"
)

type RuleRepository struct {
	db *gorm.DB
}

func NewRuleRepository() *RuleRepository {
	return &RuleRepository{db: db.DB}
}

func (r *RuleRepository) Create(rule *model.Rule) error {
	return r.db.Create(rule).Error
}

func (r *RuleRepository) FindByID(ruleID uint) (*model.Rule, error) {
	var rule model.Rule
	if err := r.db.First(&rule, ruleID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &rule, nil
}

func (r *RuleRepository) FindByGroup(groupID uint) ([]model.Rule, error) {
	var rules []model.Rule
	err := r.db.Where("group_id = ?", groupID).
		Order("created_at DESC").
		Find(&rules).Error
	return rules, err
}

func (r *RuleRepository) Delete(ruleID uint) error {
	return r.db.Delete(&model.Rule{}, ruleID).Error
}
