package service

import (
	"mime/multipart"
	"strings"
	"time"

	"go-confession-board/internal/model"
	"go-confession-board/internal/repository"
	"go-confession-board/pkg/logger"

	"go.uber.org/zap"
)

// ProfileService reads and edits the member-facing identity.
type ProfileService struct {
	profileRepo *repository.ProfileRepository
	userRepo    *repository.UserRepository
	fileService *FileService
}

func NewProfileService(
	profileRepo *repository.ProfileRepository,
	userRepo *repository.UserRepository,
	fileService *FileService,
) *ProfileService {
	return &ProfileService{
		profileRepo: profileRepo,
		userRepo:    userRepo,
		fileService: fileService,
	}
}

type UpdateProfileRequest struct {
	Name string `json:"name" binding:"required,max=100"`
}

// ProfileView is the profile payload with the avatar resolved to its public
// URL.
type ProfileView struct {
	UserID    uint      `json:"user_id"`
	Name      string    `json:"name"`
	AvatarURL string    `json:"avatar_url,omitempty"`
	UpdatedAt time.Time `json:"updated_at"`
}

// GetOrCreate returns the profile, inserting a default one derived from the
// email local-part when the row is missing.
func (s *ProfileService) GetOrCreate(userID uint) (*ProfileView, error) {
	profile, err := s.profileRepo.FindByUserID(userID)
	if err != nil {
		return nil, err
	}

	if profile == nil {
		user, err := s.userRepo.FindByID(userID)
		if err != nil {
			return nil, err
		}
		if user == nil {
			return nil, ErrUserNotFound
		}

		profile = &model.Profile{
			UserID: userID,
			Name:   emailLocalPart(user.Email),
		}
		if err := s.profileRepo.Create(profile); err != nil {
			return nil, err
		}
	}

	return s.view(profile), nil
}

// UpdateName changes the display name and bumps updated_at.
func (s *ProfileService) UpdateName(userID uint, req UpdateProfileRequest) (*ProfileView, error) {
	if _, err := s.GetOrCreate(userID); err != nil {
		return nil, err
	}
	if err := s.profileRepo.UpdateName(userID, strings.TrimSpace(req.Name)); err != nil {
		return nil, err
	}

	profile, err := s.profileRepo.FindByUserID(userID)
	if err != nil {
		return nil, err
	}
	return s.view(profile), nil
}

// UpdateAvatar removes the previous stored image, saves the new one under a
// name keyed by user ID and timestamp, and points the profile at it.
func (s *ProfileService) UpdateAvatar(userID uint, file *multipart.FileHeader) (*ProfileView, error) {
	if _, err := s.GetOrCreate(userID); err != nil {
		return nil, err
	}
	profile, err := s.profileRepo.FindByUserID(userID)
	if err != nil {
		return nil, err
	}

	if profile.AvatarPath != "" {
		if err := s.fileService.Remove(profile.AvatarPath); err != nil {
			logger.L.Warn("failed to remove previous avatar", zap.Error(err), zap.String("path", profile.AvatarPath))
		}
	}

	newPath, err := s.fileService.StoreImage(file, BucketAvatars, userID)
	if err != nil {
		return nil, err
	}

	if err := s.profileRepo.UpdateAvatarPath(userID, newPath); err != nil {
		return nil, err
	}

	profile, err = s.profileRepo.FindByUserID(userID)
	if err != nil {
		return nil, err
	}
	return s.view(profile), nil
}

func (s *ProfileService) view(profile *model.Profile) *ProfileView {
	return &ProfileView{
		UserID:    profile.UserID,
		Name:      profile.Name,
		AvatarURL: s.fileService.PublicURL(profile.AvatarPath),
		UpdatedAt: profile.UpdatedAt,
	}
}
