package api

import (
	"net/http"

	"go-confession-board/internal/localization"
	"go-confession-board/internal/service"
	"go-confession-board/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type InviteHandler struct {
	inviteService *service.InviteService
	translator
}

func NewInviteHandler(inviteService *service.InviteService, loc *localization.Localizer) *InviteHandler {
	return &InviteHandler{
		inviteService: inviteService,
		translator:    newTranslator(loc),
	}
}

func (h *InviteHandler) CreateInvitation(c *gin.Context) {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return
	}
	groupID, ok := getUintParam(c, "group_id")
	if !ok {
		return
	}

	invitation, err := h.inviteService.CreateInvitation(groupID, userID)
	if err != nil {
		logger.L.Warn("Error creating invitation", zap.Error(err), zap.Uint("groupID", groupID), zap.Uint("userID", userID))
		h.respondError(c, err, "invite.create_failed")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"invitation": gin.H{
			"code":       invitation.Code,
			"group_id":   invitation.GroupID,
			"expires_at": invitation.ExpiresAt,
		},
	})
}

// GetInvitation previews an invitation. It is reachable without a token so
// the invite landing page can show the group name before login.
func (h *InviteHandler) GetInvitation(c *gin.Context) {
	code := c.Param("code")
	if code == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": h.msg("error.invalid_request")})
		return
	}

	info, err := h.inviteService.GetInvitation(code)
	if err != nil {
		h.respondError(c, err, "invite.invalid_or_expired")
		return
	}

	c.JSON(http.StatusOK, gin.H{"invitation": info})
}

func (h *InviteHandler) AcceptInvitation(c *gin.Context) {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return
	}
	code := c.Param("code")
	if code == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": h.msg("error.invalid_request")})
		return
	}

	group, err := h.inviteService.AcceptInvitation(code, userID)
	if err != nil {
		logger.L.Warn("Error accepting invitation", zap.Error(err), zap.String("code", code), zap.Uint("userID", userID))
		h.respondError(c, err, "invite.join_failed")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": h.msg("invite.join_done"),
		"group": gin.H{
			"id":   group.ID,
			"name": group.Name,
		},
	})
}
