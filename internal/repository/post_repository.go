package repository

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"gamehaven/internal/model"
)

type PostRepository struct {
	db *gorm.DB
}

// PostWithAuthor carries the join row used on the single-post page.
type PostWithAuthor struct {
	model.Post
	Username string `json:"username"`
}

func NewPostRepository(db *gorm.DB) *PostRepository {
	return &PostRepository{db: db}
}

func (r *PostRepository) Create(post *model.Post) error {
	if err := r.db.Create(post).Error; err != nil {
		return fmt.Errorf("create post failed: %w", err)
	}
	return nil
}

func (r *PostRepository) GetByID(id uint) (*model.Post, error) {
	var post model.Post
	if err := r.db.First(&post, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("query post by id failed: %w", err)
	}
	return &post, nil
}

func (r *PostRepository) GetWithAuthor(id uint) (*PostWithAuthor, error) {
	var row PostWithAuthor
	err := r.db.Model(&model.Post{}).
		Select("posts.*, users.username").
		Joins("INNER JOIN users ON users.id = posts.author_id").
		Where("posts.id = ?", id).
		Take(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("query post with author failed: %w", err)
	}
	return &row, nil
}

func (r *PostRepository) ListByAuthor(authorID uint) ([]model.Post, error) {
	var posts []model.Post
	if err := r.db.Where("author_id = ?", authorID).Order("created_at DESC").Find(&posts).Error; err != nil {
		return nil, fmt.Errorf("list posts by author failed: %w", err)
	}
	return posts, nil
}

func (r *PostRepository) Update(post *model.Post) error {
	err := r.db.Model(&model.Post{}).
		Where("id = ?", post.ID).
		Updates(map[string]interface{}{"title": post.Title, "body": post.Body}).Error
	if err != nil {
		return fmt.Errorf("update post failed: %w", err)
	}
	return nil
}

func (r *PostRepository) Delete(id uint) error {
	if err := r.db.Delete(&model.Post{}, id).Error; err != nil {
		return fmt.Errorf("delete post failed: %w", err)
	}
	return nil
}
