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

// ConfessionWindow is how long after posting a confession is accepted.
const ConfessionWindow = 72 * time.Hour

// DefaultPageSize is the feed window size.
const DefaultPageSize = 10

// Confession eligibility states for a viewer.
const (
	ConfessionOpen      = "open"
	ConfessionConfessed = "confessed"
	ConfessionExpired   = "expired"
	ConfessionSelf      = "self"
)

// confessionCommentContent is the system comment inserted with every
// confession, flagged so the client renders it apart from free text.
const confessionCommentContent = "私がやりました"

// PostService covers the violation feed: posts, confessions and comments.
type PostService struct {
	postRepo       *repository.PostRepository
	confessionRepo *repository.ConfessionRepository
	commentRepo    *repository.CommentRepository
	memberRepo     *repository.GroupMemberRepository
	ruleRepo       *repository.RuleRepository
	profileRepo    *repository.ProfileRepository
	fileService    *FileService
}

func NewPostService(
	postRepo *repository.PostRepository,
	confessionRepo *repository.ConfessionRepository,
	commentRepo *repository.CommentRepository,
	memberRepo *repository.GroupMemberRepository,
	ruleRepo *repository.RuleRepository,
	profileRepo *repository.ProfileRepository,
	fileService *FileService,
) *PostService {
	return &PostService{
		postRepo:       postRepo,
		confessionRepo: confessionRepo,
		commentRepo:    commentRepo,
		memberRepo:     memberRepo,
		ruleRepo:       ruleRepo,
		profileRepo:    profileRepo,
		fileService:    fileService,
	}
}

type CreatePostRequest struct {
	GroupID uint   `form:"group_id" binding:"required"`
	RuleID  uint   `form:"rule_id" binding:"required"`
	Content string `form:"content" binding:"required"`
}

type UpdatePostRequest struct {
	Content string `json:"content" binding:"required"`
}

type AddCommentRequest struct {
	Content string `json:"content" binding:"required"`
}

// PostView is a feed row with everything the client renders.
type PostView struct {
	ID              uint      `json:"id"`
	GroupID         uint      `json:"group_id"`
	UserID          uint      `json:"user_id"`
	AuthorName      string    `json:"author_name"`
	RuleID          uint      `json:"rule_id"`
	RuleTitle       string    `json:"rule_title"`
	FineAmount      uint      `json:"fine_amount"`
	GroupName       string    `json:"group_name"`
	Content         string    `json:"content"`
	ImageURL        string    `json:"image_url,omitempty"`
	CommentCount    int64     `json:"comment_count"`
	ConfessionState string    `json:"confession_state"`
	CreatedAt       time.Time `json:"created_at"`
}

// CommentView is a comment with its author name resolved.
type CommentView struct {
	ID           uint      `json:"id"`
	UserID       uint      `json:"user_id"`
	AuthorName   string    `json:"author_name"`
	Content      string    `json:"content"`
	IsConfession bool      `json:"is_confession"`
	CreatedAt    time.Time `json:"created_at"`
}

// CreatePost stores the optional evidence image and inserts the post.
// Posting requires membership, and the rule must belong to the group.
func (s *PostService) CreatePost(userID uint, req CreatePostRequest, image *multipart.FileHeader) (*model.Post, error) {
	member, err := s.memberRepo.FindMember(req.GroupID, userID)
	if err != nil {
		return nil, err
	}
	if member == nil {
		return nil, ErrNotMember
	}

	rule, err := s.ruleRepo.FindByID(req.RuleID)
	if err != nil {
		return nil, err
	}
	if rule == nil || rule.GroupID != req.GroupID {
		return nil, ErrRuleNotFound
	}

	var imagePath string
	if image != nil {
		imagePath, err = s.fileService.StoreImage(image, BucketPosts, userID)
		if err != nil {
			return nil, err
		}
	}

	post := &model.Post{
		GroupID:   req.GroupID,
		UserID:    userID,
		RuleID:    req.RuleID,
		Content:   strings.TrimSpace(req.Content),
		ImagePath: imagePath,
	}
	if err := s.postRepo.Create(post); err != nil {
		// the post row is the source of truth; drop the orphaned image
		if imagePath != "" {
			if removeErr := s.fileService.Remove(imagePath); removeErr != nil {
				logger.L.Warn("failed to remove orphaned post image", zap.Error(removeErr), zap.String("path", imagePath))
			}
		}
		return nil, err
	}
	return post, nil
}

// ListPosts returns a newest-first window of the feed, limited to groups
// the viewer belongs to. groupID 0 means the home feed across all of them.
func (s *PostService) ListPosts(viewerID, groupID uint, limit, offset int) ([]PostView, error) {
	if limit <= 0 || limit > 100 {
		limit = DefaultPageSize
	}
	if offset < 0 {
		offset = 0
	}

	if groupID != 0 {
		member, err := s.memberRepo.FindMember(groupID, viewerID)
		if err != nil {
			return nil, err
		}
		if member == nil {
			return nil, ErrNotMember
		}
	}

	posts, err := s.postRepo.FindPage(viewerID, groupID, limit, offset)
	if err != nil {
		return nil, err
	}

	postIDs := make([]uint, 0, len(posts))
	authorIDs := make([]uint, 0, len(posts))
	for _, p := range posts {
		postIDs = append(postIDs, p.ID)
		authorIDs = append(authorIDs, p.UserID)
	}

	profiles, err := s.profileRepo.FindByUserIDs(authorIDs)
	if err != nil {
		return nil, err
	}
	counts, err := s.commentRepo.CountByPostIDs(postIDs)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	views := make([]PostView, 0, len(posts))
	for _, p := range posts {
		views = append(views, PostView{
			ID:              p.ID,
			GroupID:         p.GroupID,
			UserID:          p.UserID,
			AuthorName:      profiles[p.UserID].Name,
			RuleID:          p.RuleID,
			RuleTitle:       p.Rule.Title,
			FineAmount:      p.Rule.FineAmount,
			GroupName:       p.Group.Name,
			Content:         p.Content,
			ImageURL:        s.fileService.PublicURL(p.ImagePath),
			CommentCount:    counts[p.ID],
			ConfessionState: confessionState(&p, viewerID, now),
			CreatedAt:       p.CreatedAt,
		})
	}
	return views, nil
}

// confessionState classifies a post for the viewer. Only the viewer's own
// confession counts; someone else's does not close the post for them. A
// recorded confession is irreversible and wins over expiry.
func confessionState(post *model.Post, viewerID uint, now time.Time) string {
	if post.UserID == viewerID {
		return ConfessionSelf
	}
	for _, c := range post.Confessions {
		if c.UserID == viewerID {
			return ConfessionConfessed
		}
	}
	if !now.Before(post.CreatedAt.Add(ConfessionWindow)) {
		return ConfessionExpired
	}
	return ConfessionOpen
}

// UpdatePost replaces the content. Author-only.
func (s *PostService) UpdatePost(postID, viewerID uint, req UpdatePostRequest) error {
	post, err := s.postRepo.FindByID(postID)
	if err != nil {
		return err
	}
	if post == nil {
		return ErrPostNotFound
	}
	if post.UserID != viewerID {
		return ErrNotAuthor
	}
	return s.postRepo.UpdateContent(postID, strings.TrimSpace(req.Content))
}

// DeletePost removes the post and its stored image. Author-only.
func (s *PostService) DeletePost(postID, viewerID uint) error {
	post, err := s.postRepo.FindByID(postID)
	if err != nil {
		return err
	}
	if post == nil {
		return ErrPostNotFound
	}
	if post.UserID != viewerID {
		return ErrNotAuthor
	}

	if err := s.postRepo.Delete(postID); err != nil {
		return err
	}
	if post.ImagePath != "" {
		if err := s.fileService.Remove(post.ImagePath); err != nil {
			logger.L.Warn("failed to remove post image", zap.Error(err), zap.String("path", post.ImagePath))
		}
	}
	return nil
}

// Confess records the viewer's confession. Rejected for the author, after
// the window, and for duplicates; the unique index backs up the pre-check.
func (s *PostService) Confess(postID, viewerID uint) error {
	post, err := s.postRepo.FindByID(postID)
	if err != nil {
		return err
	}
	if post == nil {
		return ErrPostNotFound
	}
	if post.UserID == viewerID {
		return ErrOwnPostConfession
	}

	member, err := s.memberRepo.FindMember(post.GroupID, viewerID)
	if err != nil {
		return err
	}
	if member == nil {
		return ErrNotMember
	}

	if !time.Now().Before(post.CreatedAt.Add(ConfessionWindow)) {
		return ErrConfessionExpired
	}

	existing, err := s.confessionRepo.FindByPostAndUser(postID, viewerID)
	if err != nil {
		return err
	}
	if existing != nil {
		return ErrAlreadyConfessed
	}

	confession := &model.Confession{
		PostID: postID,
		UserID: viewerID,
		RuleID: post.RuleID,
	}
	return s.confessionRepo.CreateWithComment(confession, confessionCommentContent)
}

// ListComments returns a post's comments, oldest first.
func (s *PostService) ListComments(postID, viewerID uint) ([]CommentView, error) {
	post, err := s.postRepo.FindByID(postID)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, ErrPostNotFound
	}

	member, err := s.memberRepo.FindMember(post.GroupID, viewerID)
	if err != nil {
		return nil, err
	}
	if member == nil {
		return nil, ErrNotMember
	}

	comments, err := s.commentRepo.FindByPost(postID)
	if err != nil {
		return nil, err
	}

	userIDs := make([]uint, 0, len(comments))
	for _, c := range comments {
		userIDs = append(userIDs, c.UserID)
	}
	profiles, err := s.profileRepo.FindByUserIDs(userIDs)
	if err != nil {
		return nil, err
	}

	views := make([]CommentView, 0, len(comments))
	for _, c := range comments {
		views = append(views, CommentView{
			ID:           c.ID,
			UserID:       c.UserID,
			AuthorName:   profiles[c.UserID].Name,
			Content:      c.Content,
			IsConfession: c.IsConfession,
			CreatedAt:    c.CreatedAt,
		})
	}
	return views, nil
}

// AddComment appends a free-text comment. Members only.
func (s *PostService) AddComment(postID, userID uint, req AddCommentRequest) (*model.Comment, error) {
	post, err := s.postRepo.FindByID(postID)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, ErrPostNotFound
	}

	member, err := s.memberRepo.FindMember(post.GroupID, userID)
	if err != nil {
		return nil, err
	}
	if member == nil {
		return nil, ErrNotMember
	}

	comment := &model.Comment{
		PostID:  postID,
		UserID:  userID,
		Content: strings.TrimSpace(req.Content),
	}
	if err := s.commentRepo.Create(comment); err != nil {
		return nil, err
	}
	return comment, nil
}
