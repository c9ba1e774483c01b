package service

import (
	"strings"

	"go-confession-board/internal/model"
	"go-confession-board/internal/repository"
)

// GroupService covers group lifecycle, membership and rules.
type GroupService struct {
	groupRepo   *repository.GroupRepository
	memberRepo  *repository.GroupMemberRepository
	ruleRepo    *repository.RuleRepository
	profileRepo *repository.ProfileRepository
}

func NewGroupService(
	groupRepo *repository.GroupRepository,
	memberRepo *repository.GroupMemberRepository,
	ruleRepo *repository.RuleRepository,
	profileRepo *repository.ProfileRepository,
) *GroupService {
	return &GroupService{
		groupRepo:   groupRepo,
		memberRepo:  memberRepo,
		ruleRepo:    ruleRepo,
		profileRepo: profileRepo,
	}
}

type CreateGroupRequest struct {
	Name string `json:"name" binding:"required,max=100"`
}

type JoinGroupRequest struct {
	GroupID uint `json:"group_id" binding:"required"`
}

type CreateRuleRequest struct {
	Title      string `json:"title" binding:"required,max=200"`
	FineAmount uint   `json:"fine_amount"`
}

// MemberInfo is a membership row with the display name resolved.
type MemberInfo struct {
	UserID uint   `json:"user_id"`
	Name   string `json:"name"`
	Role   string `json:"role"`
}

// GroupDetail is the group page payload: members and rules together.
type GroupDetail struct {
	ID      uint         `json:"id"`
	Name    string       `json:"name"`
	Members []MemberInfo `json:"members"`
	Rules   []model.Rule `json:"rules"`
}

// CreateGroup inserts the group; the creator becomes owner inside the same
// transaction.
func (s *GroupService) CreateGroup(userID uint, req CreateGroupRequest) (*model.Group, error) {
	group := &model.Group{
		Name:      strings.TrimSpace(req.Name),
		CreatedBy: userID,
	}
	if err := s.groupRepo.Create(group); err != nil {
		return nil, err
	}
	return group, nil
}

// GetUserGroups lists the user's groups (created plus joined, deduplicated).
func (s *GroupService) GetUserGroups(userID uint) ([]model.Group, error) {
	return s.groupRepo.FindUserGroups(userID)
}

// JoinGroup adds the user as a plain member after an existence check and a
// duplicate-membership check.
func (s *GroupService) JoinGroup(userID uint, req JoinGroupRequest) error {
	group, err := s.groupRepo.FindByID(req.GroupID)
	if err != nil {
		return err
	}
	if group == nil {
		return ErrGroupNotFound
	}

	existing, err := s.memberRepo.FindMember(req.GroupID, userID)
	if err != nil {
		return err
	}
	if existing != nil {
		return ErrAlreadyMember
	}

	return s.memberRepo.AddMember(req.GroupID, userID, model.RoleMember)
}

// GetGroupDetail returns members (with names) and rules. Only members may
// look inside a group.
func (s *GroupService) GetGroupDetail(groupID, requesterID uint) (*GroupDetail, error) {
	group, err := s.groupRepo.FindByID(groupID)
	if err != nil {
		return nil, err
	}
	if group == nil {
		return nil, ErrGroupNotFound
	}

	requester, err := s.memberRepo.FindMember(groupID, requesterID)
	if err != nil {
		return nil, err
	}
	if requester == nil {
		return nil, ErrNotMember
	}

	members, err := s.memberRepo.FindGroupMembers(groupID)
	if err != nil {
		return nil, err
	}

	userIDs := make([]uint, 0, len(members))
	for _, m := range members {
		userIDs = append(userIDs, m.UserID)
	}
	profiles, err := s.profileRepo.FindByUserIDs(userIDs)
	if err != nil {
		return nil, err
	}

	memberInfos := make([]MemberInfo, 0, len(members))
	for _, m := range members {
		name := profiles[m.UserID].Name
		if name == "" {
			name = m.User.Email
		}
		memberInfos = append(memberInfos, MemberInfo{
			UserID: m.UserID,
			Name:   name,
			Role:   m.Role,
		})
	}

	rules, err := s.ruleRepo.FindByGroup(groupID)
	if err != nil {
		return nil, err
	}

	return &GroupDetail{
		ID:      group.ID,
		Name:    group.Name,
		Members: memberInfos,
		Rules:   rules,
	}, nil
}

// RemoveMember deletes a membership row. Only an owner may do it, never
// against themselves and never against another owner.
func (s *GroupService) RemoveMember(groupID, targetUserID, requesterID uint) error {
	requester, err := s.memberRepo.FindMember(groupID, requesterID)
	if err != nil {
		return err
	}
	if requester == nil {
		return ErrNotMember
	}
	if requester.Role != model.RoleOwner {
		return ErrNotOwner
	}
	if targetUserID == requesterID {
		return ErrCannotRemoveSelf
	}

	target, err := s.memberRepo.FindMember(groupID, targetUserID)
	if err != nil {
		return err
	}
	if target == nil {
		return ErrMemberNotFound
	}
	if target.Role == model.RoleOwner {
		return ErrCannotRemoveOwner
	}

	return s.memberRepo.RemoveMember(groupID, targetUserID)
}

// CreateRule adds a violation type to the group. Any member may create one.
func (s *GroupService) CreateRule(groupID, userID uint, req CreateRuleRequest) (*model.Rule, error) {
	member, err := s.memberRepo.FindMember(groupID, userID)
	if err != nil {
		return nil, err
	}
	if member == nil {
		return nil, ErrNotMember
	}

	rule := &model.Rule{
		GroupID:    groupID,
		Title:      strings.TrimSpace(req.Title),
		FineAmount: req.FineAmount,
		CreatedBy:  userID,
	}
	if err := s.ruleRepo.Create(rule); err != nil {
		return nil, err
	}
	return rule, nil
}

// DeleteRule is owner-only.
func (s *GroupService) DeleteRule(groupID, ruleID, requesterID uint) error {
	requester, err := s.memberRepo.FindMember(groupID, requesterID)
	if err != nil {
		return err
	}
	if requester == nil || requester.Role != model.RoleOwner {
		return ErrNotOwner
	}

	rule, err := s.ruleRepo.FindByID(ruleID)
	if err != nil {
		return err
	}
	if rule == nil || rule.GroupID != groupID {
		return ErrRuleNotFound
	}

	return s.ruleRepo.Delete(ruleID)
}
