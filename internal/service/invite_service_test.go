package service

import (
	"testing"
	"time"

	"go-confession-board/internal/model"
	"go-confession-board/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestInviteService() *InviteService {
	return NewInviteService(
		repository.NewInvitationRepository(),
		repository.NewGroupMemberRepository(),
		repository.NewGroupRepository(),
	)
}

func TestInviteService_CreateAndAccept(t *testing.T) {
	setupTestDB(t)
	groupSvc := newTestGroupService()
	inviteSvc := newTestInviteService()
	owner := createTestUser(t, "inviteOwner")
	joiner := createTestUser(t, "inviteJoiner")
	group := createTestGroup(t, groupSvc, owner.ID, "Invite Test")

	invitation, err := inviteSvc.CreateInvitation(group.ID, owner.ID)
	require.NoError(t, err)
	assert.NotEmpty(t, invitation.Code)
	assert.True(t, invitation.ExpiresAt.After(time.Now()))

	// preview works without membership
	info, err := inviteSvc.GetInvitation(invitation.Code)
	require.NoError(t, err)
	assert.Equal(t, group.ID, info.GroupID)
	assert.Equal(t, group.Name, info.GroupName)

	joined, err := inviteSvc.AcceptInvitation(invitation.Code, joiner.ID)
	require.NoError(t, err)
	assert.Equal(t, group.ID, joined.ID)

	memberRepo := repository.NewGroupMemberRepository()
	member, err := memberRepo.FindMember(group.ID, joiner.ID)
	require.NoError(t, err)
	require.NotNil(t, member)
	assert.Equal(t, model.RoleMember, member.Role)

	// accepting the same code again is refused, membership already exists
	_, err = inviteSvc.AcceptInvitation(invitation.Code, joiner.ID)
	assert.ErrorIs(t, err, ErrAlreadyMember)
}

func TestInviteService_CreateRequiresOwner(t *testing.T) {
	setupTestDB(t)
	groupSvc := newTestGroupService()
	inviteSvc := newTestInviteService()
	owner := createTestUser(t, "inviteRoleOwner")
	member := createTestUser(t, "inviteRoleMember")
	group := createTestGroup(t, groupSvc, owner.ID, "Invite Role Test")
	require.NoError(t, groupSvc.JoinGroup(member.ID, JoinGroupRequest{GroupID: group.ID}))

	_, err := inviteSvc.CreateInvitation(group.ID, member.ID)
	assert.ErrorIs(t, err, ErrNotOwner)
}

func TestInviteService_ExpiredCode(t *testing.T) {
	setupTestDB(t)
	groupSvc := newTestGroupService()
	inviteSvc := newTestInviteService()
	owner := createTestUser(t, "expiredOwner")
	joiner := createTestUser(t, "expiredJoiner")
	group := createTestGroup(t, groupSvc, owner.ID, "Expired Invite Test")

	invitationRepo := repository.NewInvitationRepository()
	expired := &model.GroupInvitation{
		Code:      "expired-code-1",
		GroupID:   group.ID,
		CreatedBy: owner.ID,
		ExpiresAt: time.Now().Add(-time.Hour),
	}
	require.NoError(t, invitationRepo.Create(expired))

	_, err := inviteSvc.GetInvitation(expired.Code)
	assert.ErrorIs(t, err, ErrInviteInvalid)

	_, err = inviteSvc.AcceptInvitation(expired.Code, joiner.ID)
	assert.ErrorIs(t, err, ErrInviteInvalid)

	// no membership row was created
	memberRepo := repository.NewGroupMemberRepository()
	member, err := memberRepo.FindMember(group.ID, joiner.ID)
	require.NoError(t, err)
	assert.Nil(t, member)

	// unknown codes behave the same as expired ones
	_, err = inviteSvc.GetInvitation("no-such-code")
	assert.ErrorIs(t, err, ErrInviteInvalid)
}

func TestInviteService_PurgeExpired(t *testing.T) {
	setupTestDB(t)
	groupSvc := newTestGroupService()
	inviteSvc := newTestInviteService()
	owner := createTestUser(t, "purgeOwner")
	group := createTestGroup(t, groupSvc, owner.ID, "Purge Test")

	invitationRepo := repository.NewInvitationRepository()
	require.NoError(t, invitationRepo.Create(&model.GroupInvitation{
		Code: "purge-old", GroupID: group.ID, CreatedBy: owner.ID,
		ExpiresAt: time.Now().Add(-time.Hour),
	}))
	require.NoError(t, invitationRepo.Create(&model.GroupInvitation{
		Code: "purge-live", GroupID: group.ID, CreatedBy: owner.ID,
		ExpiresAt: time.Now().Add(time.Hour),
	}))

	removed, err := inviteSvc.PurgeExpired()
	require.NoError(t, err)
	assert.Equal(t, int64(1), removed)

	// the live code survived
	_, err = inviteSvc.GetInvitation("purge-live")
	assert.NoError(t, err)
}
