package repository

import (
	"fmt"

	"gorm.io/gorm"

	"gamehaven/internal/model"
)

type PhotoRepository struct {
	db *gorm.DB
}

// PhotoWithUploader is the gallery row; Username is empty when the uploader
// row is gone (left join).
type PhotoWithUploader struct {
	model.Photo
	Username string `json:"username"`
}

func NewPhotoRepository(db *gorm.DB) *PhotoRepository {
	return &PhotoRepository{db: db}
}

func (r *PhotoRepository) Create(photo *model.Photo) error {
	if err := r.db.Create(photo).Error; err != nil {
		return fmt.Errorf("create photo failed: %w", err)
	}
	return nil
}

func (r *PhotoRepository) ListWithUploader() ([]PhotoWithUploader, error) {
	var rows []PhotoWithUploader
	err := r.db.Model(&model.Photo{}).
		Select("photos.*, users.username").
		Joins("LEFT JOIN users ON users.id = photos.uploader_id").
		Order("photos.uploaded_at DESC").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("list photos failed: %w", err)
	}
	return rows, nil
}
