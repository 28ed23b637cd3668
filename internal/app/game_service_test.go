package app

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"gamehaven/internal/model"
	"gamehaven/internal/repository"
)

// fakeCatalogCache is a map-backed stand-in for the redis page cache.
type fakeCatalogCache struct {
	pages       map[string]*CatalogPage
	invalidated int
}

func newFakeCatalogCache() *fakeCatalogCache {
	return &fakeCatalogCache{pages: make(map[string]*CatalogPage)}
}

func (c *fakeCatalogCache) key(slug string, page int) string {
	return fmt.Sprintf("%s:%d", slug, page)
}

func (c *fakeCatalogCache) GetPage(_ context.Context, slug string, page int) (*CatalogPage, bool, error) {
	cached, ok := c.pages[c.key(slug, page)]
	return cached, ok, nil
}

func (c *fakeCatalogCache) SetPage(_ context.Context, slug string, page int, catalog *CatalogPage) error {
	c.pages[c.key(slug, page)] = catalog
	return nil
}

func (c *fakeCatalogCache) Invalidate(_ context.Context) error {
	c.pages = make(map[string]*CatalogPage)
	c.invalidated++
	return nil
}

func newGameService(t *testing.T, cache CatalogCache) (*GameService, *gorm.DB) {
	t.Helper()
	db := setupDB(t)
	seedUser(t, db, "alice01")
	svc := NewGameService(repository.NewGameRepository(db), cache, &capturePublisher{})
	return svc, db
}

func seedGames(t *testing.T, svc *GameService, n int, categoryID *uint) {
	t.Helper()
	for i := 0; i < n; i++ {
		_, err := svc.Create(1, GameInput{
			Title:        fmt.Sprintf("Game %02d", i),
			Description:  "A game.",
			ThumbnailURL: "/static/thumb.png",
			GameLink:     "https://example.com/play",
			CategoryID:   categoryID,
		})
		require.NoError(t, err)
	}
}

func TestGameValidation(t *testing.T) {
	svc, _ := newGameService(t, nil)

	_, err := svc.Create(1, GameInput{})
	require.Error(t, err)
	require.Equal(t, []string{
		"You must provide a title.",
		"You must provide a description.",
		"You must provide a thumbnail URL.",
		"You must provide a game URL.",
	}, ValidationMessages(err))
}

func TestCatalogPagination(t *testing.T) {
	svc, _ := newGameService(t, nil)
	seedGames(t, svc, 13, nil)

	first, err := svc.Catalog(context.Background(), 1, "")
	require.NoError(t, err)
	require.Equal(t, 1, first.CurrentPage)
	require.Equal(t, 3, first.TotalPages)
	require.Len(t, first.Games, 6)
	require.Nil(t, first.CurrentCategory)

	last, err := svc.Catalog(context.Background(), 3, "")
	require.NoError(t, err)
	require.Len(t, last.Games, 1)

	beyond, err := svc.Catalog(context.Background(), 4, "")
	require.NoError(t, err)
	require.Empty(t, beyond.Games)
	require.Equal(t, 3, beyond.TotalPages)

	// Page numbers below 1 clamp to the first page.
	clamped, err := svc.Catalog(context.Background(), 0, "")
	require.NoError(t, err)
	require.Equal(t, 1, clamped.CurrentPage)
	require.Len(t, clamped.Games, 6)
}

func TestCatalogCategoryFilter(t *testing.T) {
	svc, db := newGameService(t, nil)

	action := model.Category{Name: "Action", Slug: "action"}
	puzzle := model.Category{Name: "Puzzle", Slug: "puzzle"}
	require.NoError(t, db.Create(&action).Error)
	require.NoError(t, db.Create(&puzzle).Error)

	seedGames(t, svc, 4, &action.ID)
	seedGames(t, svc, 2, &puzzle.ID)

	filtered, err := svc.Catalog(context.Background(), 1, "puzzle")
	require.NoError(t, err)
	require.Len(t, filtered.Games, 2)
	require.Equal(t, 1, filtered.TotalPages)
	require.NotNil(t, filtered.CurrentCategory)
	require.Equal(t, "Puzzle", filtered.CurrentCategory.Name)
	require.Len(t, filtered.Categories, 2)
	for _, g := range filtered.Games {
		require.Equal(t, puzzle.ID, *g.CategoryID)
	}

	// An unknown slug falls back to the unfiltered catalog.
	unknown, err := svc.Catalog(context.Background(), 1, "strategy")
	require.NoError(t, err)
	require.Len(t, unknown.Games, 6)
	require.Nil(t, unknown.CurrentCategory)
}

func TestCatalogCache(t *testing.T) {
	cache := newFakeCatalogCache()
	svc, _ := newGameService(t, cache)
	seedGames(t, svc, 2, nil)

	first, err := svc.Catalog(context.Background(), 1, "")
	require.NoError(t, err)
	require.Len(t, cache.pages, 1)

	// The second request is served from the cache.
	cached, err := svc.Catalog(context.Background(), 1, "")
	require.NoError(t, err)
	require.Same(t, first, cached)
}

func TestCatalogCacheInvalidation(t *testing.T) {
	cache := newFakeCatalogCache()
	svc, _ := newGameService(t, cache)
	seedGames(t, svc, 2, nil)

	invalidatedBySeed := cache.invalidated

	_, err := svc.Catalog(context.Background(), 1, "")
	require.NoError(t, err)

	game, err := svc.Create(1, GameInput{
		Title:        "New arrival",
		Description:  "A game.",
		ThumbnailURL: "/static/thumb.png",
		GameLink:     "https://example.com/play",
	})
	require.NoError(t, err)
	require.Equal(t, invalidatedBySeed+1, cache.invalidated)
	require.Empty(t, cache.pages)

	_, err = svc.Update(1, game.ID, GameInput{
		Title:        "Renamed",
		Description:  "A game.",
		ThumbnailURL: "/static/thumb.png",
		GameLink:     "https://example.com/play",
	})
	require.NoError(t, err)
	require.Equal(t, invalidatedBySeed+2, cache.invalidated)

	require.NoError(t, svc.Delete(1, game.ID))
	require.Equal(t, invalidatedBySeed+3, cache.invalidated)
}

func TestGameOwnershipGate(t *testing.T) {
	svc, _ := newGameService(t, nil)
	seedGames(t, svc, 1, nil)

	game, err := svc.GetOwned(1, 1)
	require.NoError(t, err)

	_, err = svc.Update(2, game.ID, GameInput{
		Title:        "Hijacked",
		Description:  "d",
		ThumbnailURL: "t",
		GameLink:     "g",
	})
	require.ErrorIs(t, err, ErrNotOwner)
	require.ErrorIs(t, svc.Delete(2, game.ID), ErrNotOwner)

	kept, err := svc.GetOwned(1, game.ID)
	require.NoError(t, err)
	require.Equal(t, "Game 00", kept.Title)
}
