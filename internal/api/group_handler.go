package api

import (
	"net/http"

	"go-confession-board/internal/localization"
	"go-confession-board/internal/service"
	"go-confession-board/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type GroupHandler struct {
	groupService *service.GroupService
	translator
}

func NewGroupHandler(groupService *service.GroupService, loc *localization.Localizer) *GroupHandler {
	return &GroupHandler{
		groupService: groupService,
		translator:   newTranslator(loc),
	}
}

func (h *GroupHandler) CreateGroup(c *gin.Context) {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return
	}

	var req service.CreateGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": h.msg("error.invalid_request")})
		return
	}

	group, err := h.groupService.CreateGroup(userID, req)
	if err != nil {
		logger.L.Error("Error creating group", zap.Error(err), zap.Uint("userID", userID))
		h.respondError(c, err, "group.create_failed")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"group": gin.H{
			"id":         group.ID,
			"name":       group.Name,
			"created_by": group.CreatedBy,
			"created_at": group.CreatedAt,
		},
	})
}

func (h *GroupHandler) GetUserGroups(c *gin.Context) {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return
	}

	groups, err := h.groupService.GetUserGroups(userID)
	if err != nil {
		logger.L.Error("Error getting user groups", zap.Error(err), zap.Uint("userID", userID))
		h.respondError(c, err, "group.fetch_failed")
		return
	}

	responseGroups := make([]gin.H, 0, len(groups))
	for _, g := range groups {
		responseGroups = append(responseGroups, gin.H{
			"id":         g.ID,
			"name":       g.Name,
			"created_by": g.CreatedBy,
		})
	}
	c.JSON(http.StatusOK, gin.H{"groups": responseGroups})
}

func (h *GroupHandler) JoinGroup(c *gin.Context) {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return
	}

	var req service.JoinGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": h.msg("error.invalid_request")})
		return
	}

	if err := h.groupService.JoinGroup(userID, req); err != nil {
		logger.L.Warn("Error joining group", zap.Error(err), zap.Uint("userID", userID), zap.Uint("groupID", req.GroupID))
		h.respondError(c, err, "invite.join_failed")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": h.msg("group.join_done")})
}

func (h *GroupHandler) GetGroupDetail(c *gin.Context) {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return
	}
	groupID, ok := getUintParam(c, "group_id")
	if !ok {
		return
	}

	detail, err := h.groupService.GetGroupDetail(groupID, userID)
	if err != nil {
		logger.L.Warn("Error getting group detail", zap.Error(err), zap.Uint("groupID", groupID), zap.Uint("userID", userID))
		h.respondError(c, err, "group.fetch_failed")
		return
	}

	c.JSON(http.StatusOK, detail)
}

func (h *GroupHandler) RemoveMember(c *gin.Context) {
	requesterID, ok := getUserIDFromContext(c)
	if !ok {
		return
	}
	groupID, ok := getUintParam(c, "group_id")
	if !ok {
		return
	}
	targetUserID, ok := getUintParam(c, "user_id")
	if !ok {
		return
	}

	if err := h.groupService.RemoveMember(groupID, targetUserID, requesterID); err != nil {
		logger.L.Warn("Error removing group member", zap.Error(err),
			zap.Uint("groupID", groupID), zap.Uint("targetUserID", targetUserID), zap.Uint("requesterID", requesterID))
		h.respondError(c, err, "group.member_delete_failed")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": h.msg("group.member_delete_done")})
}

func (h *GroupHandler) CreateRule(c *gin.Context) {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return
	}
	groupID, ok := getUintParam(c, "group_id")
	if !ok {
		return
	}

	var req service.CreateRuleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": h.msg("error.invalid_request")})
		return
	}

	rule, err := h.groupService.CreateRule(groupID, userID, req)
	if err != nil {
		logger.L.Warn("Error creating rule", zap.Error(err), zap.Uint("groupID", groupID), zap.Uint("userID", userID))
		h.respondError(c, err, "rule.create_failed")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"rule": rule})
}

func (h *GroupHandler) DeleteRule(c *gin.Context) {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return
	}
	groupID, ok := getUintParam(c, "group_id")
	if !ok {
		return
	}
	ruleID, ok := getUintParam(c, "rule_id")
	if !ok {
		return
	}

	if err := h.groupService.DeleteRule(groupID, ruleID, userID); err != nil {
		logger.L.Warn("Error deleting rule", zap.Error(err), zap.Uint("groupID", groupID), zap.Uint("ruleID", ruleID))
		h.respondError(c, err, "rule.delete_failed")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": h.msg("rule.delete_done")})
}
