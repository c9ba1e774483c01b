package service

import (
	"strings"

	"go-confession-board/internal/model"
	"go-confession-board/internal/repository"
	"go-confession-board/pkg/logger"
	"go-confession-board/pkg/utils"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// AuthService handles registration and login.
type AuthService struct {
	userRepo    *repository.UserRepository
	profileRepo *repository.ProfileRepository
}

func NewAuthService(userRepo *repository.UserRepository, profileRepo *repository.ProfileRepository) *AuthService {
	return &AuthService{
		userRepo:    userRepo,
		profileRepo: profileRepo,
	}
}

type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Name     string `json:"name" binding:"max=100"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Register creates the user and their profile. An empty display name
// defaults to the email local-part.
func (s *AuthService) Register(req RegisterRequest) (*model.User, error) {
	existing, err := s.userRepo.FindByEmail(req.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailExists
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Email:    req.Email,
		Password: string(hashedPassword),
	}
	if err := s.userRepo.Create(user); err != nil {
		return nil, err
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		name = emailLocalPart(req.Email)
	}
	profile := &model.Profile{
		UserID: user.ID,
		Name:   name,
	}
	if err := s.profileRepo.Create(profile); err != nil {
		// the profile gets recreated on first access; registration stands
		logger.L.Warn("failed to create profile at registration", zap.Error(err), zap.Uint("userID", user.ID))
	}

	return user, nil
}

// Login verifies credentials and returns a signed token.
func (s *AuthService) Login(req LoginRequest) (string, *model.User, error) {
	user, err := s.userRepo.FindByEmail(req.Email)
	if err != nil {
		return "", nil, err
	}
	if user == nil {
		return "", nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return "", nil, ErrInvalidCredentials
	}

	token, err := utils.GenerateToken(user.ID)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

func emailLocalPart(email string) string {
	if i := strings.Index(email, "@"); i > 0 {
		return email[:i]
	}
	return email
}
