package service

import (
	"time"

	"go-confession-board/internal/model"
	"go-confession-board/internal/repository"
	"go-confession-board/pkg/config"
	"go-confession-board/pkg/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// InviteService issues and consumes group invitation codes.
type InviteService struct {
	invitationRepo *repository.InvitationRepository
	memberRepo     *repository.GroupMemberRepository
	groupRepo      *repository.GroupRepository
}

func NewInviteService(
	invitationRepo *repository.InvitationRepository,
	memberRepo *repository.GroupMemberRepository,
	groupRepo *repository.GroupRepository,
) *InviteService {
	return &InviteService{
		invitationRepo: invitationRepo,
		memberRepo:     memberRepo,
		groupRepo:      groupRepo,
	}
}

// InviteInfo is what the invite landing view shows before any auth.
type InviteInfo struct {
	Code      string    `json:"code"`
	GroupID   uint      `json:"group_id"`
	GroupName string    `json:"group_name"`
	ExpiresAt time.Time `json:"expires_at"`
}

// CreateInvitation issues a new code for the group. Owner-only.
func (s *InviteService) CreateInvitation(groupID, requesterID uint) (*model.GroupInvitation, error) {
	requester, err := s.memberRepo.FindMember(groupID, requesterID)
	if err != nil {
		return nil, err
	}
	if requester == nil || requester.Role != model.RoleOwner {
		return nil, ErrNotOwner
	}

	invitation := &model.GroupInvitation{
		Code:      uuid.NewString(),
		GroupID:   groupID,
		CreatedBy: requesterID,
		ExpiresAt: time.Now().Add(config.GlobalConfig.Invitation.TTL),
	}
	if err := s.invitationRepo.Create(invitation); err != nil {
		return nil, err
	}
	return invitation, nil
}

// GetInvitation resolves a code to its group name for display. Expired or
// unknown codes look the same to the caller.
func (s *InviteService) GetInvitation(code string) (*InviteInfo, error) {
	invitation, err := s.invitationRepo.FindValidByCode(code, time.Now())
	if err != nil {
		return nil, err
	}
	if invitation == nil {
		return nil, ErrInviteInvalid
	}

	return &InviteInfo{
		Code:      invitation.Code,
		GroupID:   invitation.GroupID,
		GroupName: invitation.Group.Name,
		ExpiresAt: invitation.ExpiresAt,
	}, nil
}

// AcceptInvitation consumes a code for the user: verify it is unexpired,
// reject when a membership row already exists, then insert a member row.
// Accepting twice surfaces "already a member" and leaves a single row.
func (s *InviteService) AcceptInvitation(code string, userID uint) (*model.Group, error) {
	invitation, err := s.invitationRepo.FindValidByCode(code, time.Now())
	if err != nil {
		return nil, err
	}
	if invitation == nil {
		return nil, ErrInviteInvalid
	}

	existing, err := s.memberRepo.FindMember(invitation.GroupID, userID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrAlreadyMember
	}

	if err := s.memberRepo.AddMember(invitation.GroupID, userID, model.RoleMember); err != nil {
		return nil, err
	}

	group, err := s.groupRepo.FindByID(invitation.GroupID)
	if err != nil {
		return nil, err
	}
	if group == nil {
		return nil, ErrGroupNotFound
	}

	logger.L.Info("invitation accepted",
		zap.String("code", code),
		zap.Uint("groupID", invitation.GroupID),
		zap.Uint("userID", userID))
	return group, nil
}

// PurgeExpired drops invitations past their expiry. Called from the cron
// job.
func (s *InviteService) PurgeExpired() (int64, error) {
	return s.invitationRepo.DeleteExpired(time.Now())
}
