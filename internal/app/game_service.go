package app

import (
	"context"

	"gamehaven/internal/model"
	"gamehaven/internal/pkg/sanitize"
	"gamehaven/internal/repository"
)

const catalogPageSize = 6

type GameService struct {
	gameRepo     *repository.GameRepository
	catalogCache CatalogCache
	publisher    ActivityPublisher
}

// CatalogCache keeps rendered catalog pages out of the database for a short
// TTL. Mutations invalidate every cached page at once.
type CatalogCache interface {
	GetPage(ctx context.Context, categorySlug string, page int) (*CatalogPage, bool, error)
	SetPage(ctx context.Context, categorySlug string, page int, catalog *CatalogPage) error
	Invalidate(ctx context.Context) error
}

type GameInput struct {
	Title        string
	Description  string
	ThumbnailURL string
	GameLink     string
	CategoryID   *uint
}

// CatalogPage is one page of the /games listing.
type CatalogPage struct {
	Games           []model.Game     `json:"games"`
	Categories      []model.Category `json:"categories"`
	CurrentPage     int              `json:"current_page"`
	TotalPages      int              `json:"total_pages"`
	CurrentCategory *model.Category  `json:"current_category,omitempty"`
}

func NewGameService(gameRepo *repository.GameRepository, catalogCache CatalogCache, publisher ActivityPublisher) *GameService {
	return &GameService{
		gameRepo:     gameRepo,
		catalogCache: catalogCache,
		publisher:    publisher,
	}
}

func validateGame(input GameInput) (GameInput, error) {
	input.Title = sanitize.PlainText(input.Title)
	input.Description = sanitize.PlainText(input.Description)
	input.ThumbnailURL = sanitize.PlainText(input.ThumbnailURL)
	input.GameLink = sanitize.PlainText(input.GameLink)

	var messages []string
	if input.Title == "" {
		messages = append(messages, "You must provide a title.")
	}
	if input.Description == "" {
		messages = append(messages, "You must provide a description.")
	}
	if input.ThumbnailURL == "" {
		messages = append(messages, "You must provide a thumbnail URL.")
	}
	if input.GameLink == "" {
		messages = append(messages, "You must provide a game URL.")
	}
	return input, validationFailed(messages)
}

func (s *GameService) Create(userID uint, input GameInput) (*model.Game, error) {
	if userID == 0 {
		return nil, ErrInvalidInput
	}

	input, err := validateGame(input)
	if err != nil {
		return nil, err
	}

	game := &model.Game{
		Title:        input.Title,
		Description:  input.Description,
		ThumbnailURL: input.ThumbnailURL,
		GameLink:     input.GameLink,
		CategoryID:   input.CategoryID,
		AuthorID:     userID,
	}
	if err := s.gameRepo.Create(game); err != nil {
		return nil, err
	}

	s.invalidateCatalog()
	recordActivity(s.publisher, userID, "created", "game", game.ID)
	return game, nil
}

func (s *GameService) Get(id uint) (*repository.GameWithAuthor, error) {
	if id == 0 {
		return nil, ErrInvalidInput
	}
	game, err := s.gameRepo.GetWithAuthor(id)
	if err != nil {
		return nil, err
	}
	if game == nil {
		return nil, ErrNotFound
	}
	return game, nil
}

func (s *GameService) GetOwned(userID, id uint) (*model.Game, error) {
	if userID == 0 || id == 0 {
		return nil, ErrInvalidInput
	}
	game, err := s.gameRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if game == nil {
		return nil, ErrNotFound
	}
	if game.AuthorID != userID {
		return nil, ErrNotOwner
	}
	return game, nil
}

func (s *GameService) Update(userID, id uint, input GameInput) (*model.Game, error) {
	game, err := s.GetOwned(userID, id)
	if err != nil {
		return nil, err
	}

	input, err = validateGame(input)
	if err != nil {
		return nil, err
	}

	game.Title = input.Title
	game.Description = input.Description
	game.ThumbnailURL = input.ThumbnailURL
	game.GameLink = input.GameLink
	game.CategoryID = input.CategoryID
	if err := s.gameRepo.Update(game); err != nil {
		return nil, err
	}

	s.invalidateCatalog()
	recordActivity(s.publisher, userID, "edited", "game", game.ID)
	return game, nil
}

func (s *GameService) Delete(userID, id uint) error {
	game, err := s.GetOwned(userID, id)
	if err != nil {
		return err
	}
	if err := s.gameRepo.Delete(game.ID); err != nil {
		return err
	}

	s.invalidateCatalog()
	recordActivity(s.publisher, userID, "deleted", "game", game.ID)
	return nil
}

func (s *GameService) Categories() ([]model.Category, error) {
	return s.gameRepo.ListCategories()
}

// Catalog assembles one listing page: category menu, the page of games and
// the page count. An unknown category slug falls back to the full catalog,
// matching the listing's behavior for any other unfiltered request.
func (s *GameService) Catalog(ctx context.Context, page int, categorySlug string) (*CatalogPage, error) {
	if page < 1 {
		page = 1
	}

	if s.catalogCache != nil {
		if cached, hit, err := s.catalogCache.GetPage(ctx, categorySlug, page); err == nil && hit {
			return cached, nil
		}
	}

	categories, err := s.gameRepo.ListCategories()
	if err != nil {
		return nil, err
	}

	var (
		categoryID      *uint
		currentCategory *model.Category
	)
	if categorySlug != "" {
		category, err := s.gameRepo.GetCategoryBySlug(categorySlug)
		if err != nil {
			return nil, err
		}
		if category != nil {
			categoryID = &category.ID
			currentCategory = category
		}
	}

	total, err := s.gameRepo.Count(categoryID)
	if err != nil {
		return nil, err
	}
	totalPages := int((total + catalogPageSize - 1) / catalogPageSize)

	games, err := s.gameRepo.ListPage(categoryID, catalogPageSize, (page-1)*catalogPageSize)
	if err != nil {
		return nil, err
	}

	catalog := &CatalogPage{
		Games:           games,
		Categories:      categories,
		CurrentPage:     page,
		TotalPages:      totalPages,
		CurrentCategory: currentCategory,
	}

	if s.catalogCache != nil {
		_ = s.catalogCache.SetPage(ctx, categorySlug, page, catalog)
	}
	return catalog, nil
}

func (s *GameService) invalidateCatalog() {
	if s.catalogCache == nil {
		return
	}
	_ = s.catalogCache.Invalidate(context.Background())
}
