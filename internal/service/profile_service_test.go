package service

import (
	"testing"

	"go-confession-board/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestProfileService(t *testing.T) *ProfileService {
	fileService, err := NewFileService()
	require.NoError(t, err)

	return NewProfileService(
		repository.NewProfileRepository(),
		repository.NewUserRepository(),
		fileService,
	)
}

func TestProfileService_GetOrCreate(t *testing.T) {
	setupTestDB(t)
	svc := newTestProfileService(t)

	// a user created without a profile row gets one on first access
	user := createTestUser(t, "profileMissing")
	view, err := svc.GetOrCreate(user.ID)
	require.NoError(t, err)
	assert.Equal(t, user.ID, view.UserID)
	assert.Equal(t, "profileMissing", view.Name, "default name is the email local-part")

	// the created row is reused on the second call
	again, err := svc.GetOrCreate(user.ID)
	require.NoError(t, err)
	assert.Equal(t, view.Name, again.Name)

	// unknown user
	_, err = svc.GetOrCreate(99999)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestProfileService_UpdateName(t *testing.T) {
	setupTestDB(t)
	svc := newTestProfileService(t)
	user := createTestUser(t, "profileRename")

	view, err := svc.UpdateName(user.ID, UpdateProfileRequest{Name: "新しい名前"})
	require.NoError(t, err)
	assert.Equal(t, "新しい名前", view.Name)

	// persisted
	profileRepo := repository.NewProfileRepository()
	profile, err := profileRepo.FindByUserID(user.ID)
	require.NoError(t, err)
	require.NotNil(t, profile)
	assert.Equal(t, "新しい名前", profile.Name)
	assert.False(t, profile.UpdatedAt.IsZero())
}
