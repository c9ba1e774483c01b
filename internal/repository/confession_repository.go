package repository

import (
	"errors"
	"time"

	"go-confession-board/internal/model"
	"go-confession-board/pkg/db"

	"gorm.io/gorm"
)

type ConfessionRepository struct {
	db *gorm.DB
}

func NewConfessionRepository() *ConfessionRepository {
	return &ConfessionRepository{db: db.DB}
}

// CreateWithComment inserts the confession together with its system comment
// in one transaction, so a post never shows a confession without the
// matching flagged comment.
func (r *ConfessionRepository) CreateWithComment(confession *model.Confession, commentContent string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(confession).Error; err != nil {
			return err
		}
		comment := &model.Comment{
			PostID:       confession.PostID,
			UserID:       confession.UserID,
			Content:      commentContent,
			IsConfession: true,
		}
		return tx.Create(comment).Error
	})
}

func (r *ConfessionRepository) FindByPostAndUser(postID, userID uint) (*model.Confession, error) {
	var confession model.Confession
	err := r.db.Where("post_id = ? AND user_id = ?", postID, userID).First(&confession).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &confession, nil
}

// FindPenalties returns the viewer's own confessions in [start, end),
// joined to rule and group for aggregation.
func (r *ConfessionRepository) FindPenalties(userID uint, start, end time.Time) ([]model.Confession, error) {
	var confessions []model.Confession
	err := r.db.Where("user_id = ? AND created_at >= ? AND created_at < ?", userID, start, end).
		Preload("Rule").Preload("Post").Preload("Post.Group").
		Order("created_at ASC").
		Find(&confessions).Error
	return confessions, err
}

// FindRewards returns confessions made by others on the viewer's posts in
// [start, end).
func (r *ConfessionRepository) FindRewards(userID uint, start, end time.Time) ([]model.Confession, error) {
	var confessions []model.Confession
	err := r.db.Joins("JOIN posts ON posts.id = confessions.post_id").
		Where("posts.user_id = ? AND confessions.created_at >= ? AND confessions.created_at < ?", userID, start, end).
		Preload("Rule").Preload("Post").Preload("Post.Group").
		Order("confessions.created_at ASC").
		Find(&confessions).Error
	return confessions, err
}
