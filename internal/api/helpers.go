package api

import (
	"errors"
	"net/http"
	"strconv"

	"go-confession-board/internal/localization"
	"go-confession-board/internal/service"
	"go-confession-board/pkg/config"
	"go-confession-board/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// translator resolves message keys in the configured language.
type translator struct {
	loc  *localization.Localizer
	lang string
}

func newTranslator(loc *localization.Localizer) translator {
	return translator{loc: loc, lang: config.GlobalConfig.Locale.Language}
}

func (t translator) msg(key string) string {
	return t.loc.GetString(t.lang, key)
}

// statusAndKey maps the service sentinels to an HTTP status and a message
// key. Anything not listed is an infrastructure failure.
var statusAndKey = map[error]struct {
	status int
	key    string
}{
	service.ErrEmailExists:        {http.StatusConflict, "auth.email_exists"},
	service.ErrInvalidCredentials: {http.StatusUnauthorized, "auth.invalid_credentials"},
	service.ErrUserNotFound:       {http.StatusNotFound, "profile.user_not_found"},

	service.ErrGroupNotFound:     {http.StatusNotFound, "group.not_found"},
	service.ErrAlreadyMember:     {http.StatusConflict, "group.already_member"},
	service.ErrNotMember:         {http.StatusForbidden, "group.not_member"},
	service.ErrNotOwner:          {http.StatusForbidden, "group.member_delete_forbidden"},
	service.ErrCannotRemoveSelf:  {http.StatusForbidden, "group.member_delete_forbidden"},
	service.ErrCannotRemoveOwner: {http.StatusForbidden, "group.member_delete_forbidden"},
	service.ErrMemberNotFound:    {http.StatusNotFound, "group.not_member"},

	service.ErrInviteInvalid: {http.StatusNotFound, "invite.invalid_or_expired"},

	service.ErrRuleNotFound: {http.StatusNotFound, "rule.not_found"},

	service.ErrPostNotFound:      {http.StatusNotFound, "post.not_found"},
	service.ErrNotAuthor:         {http.StatusForbidden, "post.not_author"},
	service.ErrOwnPostConfession: {http.StatusForbidden, "confession.own_post"},
	service.ErrConfessionExpired: {http.StatusForbidden, "confession.expired"},
	service.ErrAlreadyConfessed:  {http.StatusConflict, "confession.duplicate"},

	service.ErrFileTooLarge:       {http.StatusBadRequest, "post.image_too_large"},
	service.ErrFileTypeNotAllowed: {http.StatusBadRequest, "post.image_type"},
}

// respondError turns a service error into the localized client response.
// Unknown errors become a 500 with the handler's generic fallback message.
func (t translator) respondError(c *gin.Context, err error, fallbackKey string) {
	for sentinel, r := range statusAndKey {
		if errors.Is(err, sentinel) {
			c.JSON(r.status, gin.H{"error": t.msg(r.key)})
			return
		}
	}
	logger.L.Error("unexpected error", zap.Error(err), zap.String("path", c.Request.URL.Path))
	c.JSON(http.StatusInternalServerError, gin.H{"error": t.msg(fallbackKey)})
}

func getUserIDFromContext(c *gin.Context) (uint, bool) {
	userIDValue, exists := c.Get("userID")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return 0, false
	}
	userID, ok := userIDValue.(uint)
	if !ok {
		logger.L.Error("Invalid userID type in context", zap.Any("userIDValue", userIDValue))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Invalid user ID in context"})
		return 0, false
	}
	return userID, true
}

func getUintParam(c *gin.Context, name string) (uint, bool) {
	value64, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid " + name + " parameter"})
		return 0, false
	}
	return uint(value64), true
}

func getPaginationParams(c *gin.Context) (limit, offset int) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(service.DefaultPageSize)))
	if err != nil || limit <= 0 || limit > 100 {
		limit = service.DefaultPageSize
	}
	offset, err = strconv.Atoi(c.DefaultQuery("offset", "0"))
	if err != nil || offset < 0 {
		offset = 0
	}
	return limit, offset
}
