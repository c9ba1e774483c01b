package api

import (
	"net/http"

	"go-confession-board/internal/localization"
	"go-confession-board/internal/service"
	"go-confession-board/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type ProfileHandler struct {
	profileService *service.ProfileService
	translator
}

func NewProfileHandler(profileService *service.ProfileService, loc *localization.Localizer) *ProfileHandler {
	return &ProfileHandler{
		profileService: profileService,
		translator:     newTranslator(loc),
	}
}

func (h *ProfileHandler) GetProfile(c *gin.Context) {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return
	}

	profile, err := h.profileService.GetOrCreate(userID)
	if err != nil {
		logger.L.Error("Error getting profile", zap.Error(err), zap.Uint("userID", userID))
		h.respondError(c, err, "profile.fetch_failed")
		return
	}

	c.JSON(http.StatusOK, gin.H{"profile": profile})
}

func (h *ProfileHandler) UpdateProfile(c *gin.Context) {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return
	}

	var req service.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": h.msg("error.invalid_request")})
		return
	}

	profile, err := h.profileService.UpdateName(userID, req)
	if err != nil {
		logger.L.Warn("Error updating profile", zap.Error(err), zap.Uint("userID", userID))
		h.respondError(c, err, "profile.update_failed")
		return
	}

	c.JSON(http.StatusOK, gin.H{"profile": profile})
}

func (h *ProfileHandler) UploadAvatar(c *gin.Context) {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return
	}

	file, err := c.FormFile("avatar")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": h.msg("error.invalid_request")})
		return
	}

	profile, err := h.profileService.UpdateAvatar(userID, file)
	if err != nil {
		logger.L.Warn("Error uploading avatar", zap.Error(err), zap.Uint("userID", userID))
		h.respondError(c, err, "profile.avatar_failed")
		return
	}

	c.JSON(http.StatusOK, gin.H{"profile": profile})
}
