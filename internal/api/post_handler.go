package api

import (
	"net/http"
	"strconv"

	"go-confession-board/internal/localization"
	"go-confession-board/internal/service"
	"go-confession-board/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type PostHandler struct {
	postService *service.PostService
	translator
}

func NewPostHandler(postService *service.PostService, loc *localization.Localizer) *PostHandler {
	return &PostHandler{
		postService: postService,
		translator:  newTranslator(loc),
	}
}

// CreatePost accepts a multipart form so the evidence image can ride along
// with the violation fields.
func (h *PostHandler) CreatePost(c *gin.Context) {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return
	}

	var req service.CreatePostRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": h.msg("error.invalid_request")})
		return
	}

	image, err := c.FormFile("image")
	if err != nil && err != http.ErrMissingFile {
		c.JSON(http.StatusBadRequest, gin.H{"error": h.msg("post.image_invalid")})
		return
	}

	post, err := h.postService.CreatePost(userID, req, image)
	if err != nil {
		logger.L.Warn("Error creating post", zap.Error(err), zap.Uint("userID", userID), zap.Uint("groupID", req.GroupID))
		h.respondError(c, err, "post.create_failed")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"post": gin.H{
			"id":         post.ID,
			"group_id":   post.GroupID,
			"rule_id":    post.RuleID,
			"content":    post.Content,
			"created_at": post.CreatedAt,
		},
	})
}

// ListPosts returns the feed. Without a group_id query it spans every group
// the viewer belongs to.
func (h *PostHandler) ListPosts(c *gin.Context) {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return
	}

	var groupID uint
	if raw := c.Query("group_id"); raw != "" {
		value64, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid group_id parameter"})
			return
		}
		groupID = uint(value64)
	}
	limit, offset := getPaginationParams(c)

	posts, err := h.postService.ListPosts(userID, groupID, limit, offset)
	if err != nil {
		logger.L.Error("Error listing posts", zap.Error(err), zap.Uint("userID", userID))
		h.respondError(c, err, "post.fetch_failed")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"posts":    posts,
		"has_more": len(posts) == limit,
	})
}

// ListGroupPosts is the same feed scoped to one group via the path.
func (h *PostHandler) ListGroupPosts(c *gin.Context) {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return
	}
	groupID, ok := getUintParam(c, "group_id")
	if !ok {
		return
	}
	limit, offset := getPaginationParams(c)

	posts, err := h.postService.ListPosts(userID, groupID, limit, offset)
	if err != nil {
		logger.L.Error("Error listing group posts", zap.Error(err), zap.Uint("groupID", groupID))
		h.respondError(c, err, "post.fetch_failed")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"posts":    posts,
		"has_more": len(posts) == limit,
	})
}

func (h *PostHandler) UpdatePost(c *gin.Context) {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return
	}
	postID, ok := getUintParam(c, "post_id")
	if !ok {
		return
	}

	var req service.UpdatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": h.msg("error.invalid_request")})
		return
	}

	if err := h.postService.UpdatePost(postID, userID, req); err != nil {
		logger.L.Warn("Error updating post", zap.Error(err), zap.Uint("postID", postID), zap.Uint("userID", userID))
		h.respondError(c, err, "post.update_failed")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": h.msg("post.update_done")})
}

func (h *PostHandler) DeletePost(c *gin.Context) {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return
	}
	postID, ok := getUintParam(c, "post_id")
	if !ok {
		return
	}

	if err := h.postService.DeletePost(postID, userID); err != nil {
		logger.L.Warn("Error deleting post", zap.Error(err), zap.Uint("postID", postID), zap.Uint("userID", userID))
		h.respondError(c, err, "post.delete_failed")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": h.msg("post.delete_done")})
}

func (h *PostHandler) Confess(c *gin.Context) {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return
	}
	postID, ok := getUintParam(c, "post_id")
	if !ok {
		return
	}

	if err := h.postService.Confess(postID, userID); err != nil {
		logger.L.Warn("Error recording confession", zap.Error(err), zap.Uint("postID", postID), zap.Uint("userID", userID))
		h.respondError(c, err, "confession.failed")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": h.msg("confession.done")})
}

func (h *PostHandler) ListComments(c *gin.Context) {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return
	}
	postID, ok := getUintParam(c, "post_id")
	if !ok {
		return
	}

	comments, err := h.postService.ListComments(postID, userID)
	if err != nil {
		logger.L.Error("Error listing comments", zap.Error(err), zap.Uint("postID", postID))
		h.respondError(c, err, "comment.fetch_failed")
		return
	}

	c.JSON(http.StatusOK, gin.H{"comments": comments})
}

func (h *PostHandler) AddComment(c *gin.Context) {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return
	}
	postID, ok := getUintParam(c, "post_id")
	if !ok {
		return
	}

	var req service.AddCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": h.msg("error.invalid_request")})
		return
	}

	comment, err := h.postService.AddComment(postID, userID, req)
	if err != nil {
		logger.L.Warn("Error adding comment", zap.Error(err), zap.Uint("postID", postID), zap.Uint("userID", userID))
		h.respondError(c, err, "comment.create_failed")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"comment": gin.H{
			"id":         comment.ID,
			"post_id":    comment.PostID,
			"content":    comment.Content,
			"created_at": comment.CreatedAt,
		},
	})
}
