package repository

import (
	"errors"

	"go-confession-board/internal/model"
	"go-confession-board/pkg/db"

	"gorm.io/gorm"
)

type PostRepository struct {
	db *gorm.DB
}

func NewPostRepository() *PostRepository {
	return &PostRepository{db: db.DB}
}

func (r *PostRepository) Create(post *model.Post) error {
	return r.db.Create(post).Error
}

func (r *PostRepository) FindByID(postID uint) (*model.Post, error) {
	var post model.Post
	err := r.db.Preload("Rule").Preload("Group").Preload("Confessions").
		First(&post, postID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &post, nil
}

// FindPage returns the newest-first feed window, restricted to groups the
// viewer is a member of. groupID 0 means all of the viewer's groups.
func (r *PostRepository) FindPage(viewerID, groupID uint, limit, offset int) ([]model.Post, error) {
	query := r.db.
		Joins("JOIN group_members ON group_members.group_id = posts.group_id AND group_members.user_id = ?", viewerID).
		Preload("Rule").Preload("Group").Preload("Confessions").
		Order("posts.created_at DESC").
		Limit(limit).
		Offset(offset)
	if groupID != 0 {
		query = query.Where("posts.group_id = ?", groupID)
	}

	var posts []model.Post
	err := query.Find(&posts).Error
	return posts, err
}

func (r *PostRepository) UpdateContent(postID uint, content string) error {
	return r.db.Model(&model.Post{}).Where("id = ?", postID).Update("content", content).Error
}

func (r *PostRepository) Delete(postID uint) error {
	return r.db.Delete(&model.Post{}, postID).Error
}
