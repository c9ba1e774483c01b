package api

import (
	"net/http"

	"go-confession-board/internal/localization"
	"go-confession-board/internal/service"
	"go-confession-board/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AuthHandler handles registration and login requests.
type AuthHandler struct {
	authService *service.AuthService
	translator
}

func NewAuthHandler(authService *service.AuthService, loc *localization.Localizer) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		translator:  newTranslator(loc),
	}
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req service.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": h.msg("error.invalid_request")})
		return
	}

	user, err := h.authService.Register(req)
	if err != nil {
		logger.L.Warn("registration failed", zap.Error(err), zap.String("email", req.Email))
		h.respondError(c, err, "auth.register_failed")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": h.msg("auth.register_done"),
		"user": gin.H{
			"id":    user.ID,
			"email": user.Email,
		},
	})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req service.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": h.msg("error.invalid_request")})
		return
	}

	token, user, err := h.authService.Login(req)
	if err != nil {
		h.respondError(c, err, "auth.invalid_credentials")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"user": gin.H{
			"id":    user.ID,
			"email": user.Email,
		},
	})
}
