package repository

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"gamehaven/internal/model"
)

type GameRepository struct {
	db *gorm.DB
}

type GameWithAuthor struct {
	model.Game
	Username string `json:"username"`
}

func NewGameRepository(db *gorm.DB) *GameRepository {
	return &GameRepository{db: db}
}

func (r *GameRepository) Create(game *model.Game) error {
	if err := r.db.Create(game).Error; err != nil {
		return fmt.Errorf("create game failed: %w", err)
	}
	return nil
}

func (r *GameRepository) GetByID(id uint) (*model.Game, error) {
	var game model.Game
	if err := r.db.First(&game, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("query game by id failed: %w", err)
	}
	return &game, nil
}

func (r *GameRepository) GetWithAuthor(id uint) (*GameWithAuthor, error) {
	var row GameWithAuthor
	err := r.db.Model(&model.Game{}).
		Select("games.*, users.username").
		Joins("INNER JOIN users ON users.id = games.author_id").
		Where("games.id = ?", id).
		Take(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("query game with author failed: %w", err)
	}
	return &row, nil
}

func (r *GameRepository) Update(game *model.Game) error {
	err := r.db.Model(&model.Game{}).
		Where("id = ?", game.ID).
		Updates(map[string]interface{}{
			"title":         game.Title,
			"description":   game.Description,
			"game_link":     game.GameLink,
			"thumbnail_url": game.ThumbnailURL,
			"category_id":   game.CategoryID,
		}).Error
	if err != nil {
		return fmt.Errorf("update game failed: %w", err)
	}
	return nil
}

func (r *GameRepository) Delete(id uint) error {
	if err := r.db.Delete(&model.Game{}, id).Error; err != nil {
		return fmt.Errorf("delete game failed: %w", err)
	}
	return nil
}

// Count and ListPage take an optional category filter; a nil categoryID
// means the whole catalog.
func (r *GameRepository) Count(categoryID *uint) (int64, error) {
	var total int64
	query := r.db.Model(&model.Game{})
	if categoryID != nil {
		query = query.Where("category_id = ?", *categoryID)
	}
	if err := query.Count(&total).Error; err != nil {
		return 0, fmt.Errorf("count games failed: %w", err)
	}
	return total, nil
}

func (r *GameRepository) ListPage(categoryID *uint, limit, offset int) ([]model.Game, error) {
	var games []model.Game
	query := r.db.Model(&model.Game{})
	if categoryID != nil {
		query = query.Where("category_id = ?", *categoryID)
	}
	err := query.Order("created_at DESC").Limit(limit).Offset(offset).Find(&games).Error
	if err != nil {
		return nil, fmt.Errorf("list games page failed: %w", err)
	}
	return games, nil
}

func (r *GameRepository) ListCategories() ([]model.Category, error) {
	var categories []model.Category
	if err := r.db.Order("name ASC").Find(&categories).Error; err != nil {
		return nil, fmt.Errorf("list categories failed: %w", err)
	}
	return categories, nil
}

func (r *GameRepository) GetCategoryBySlug(slug string) (*model.Category, error) {
	var category model.Category
	if err := r.db.Where("slug = ?", slug).First(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("query category by slug failed: %w", err)
	}
	return &category, nil
}
