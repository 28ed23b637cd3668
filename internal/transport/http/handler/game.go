package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"gamehaven/internal/app"
	"gamehaven/internal/transport/http/middleware"
)

type GameHandler struct {
	gameService *app.GameService
}

func NewGameHandler(gameService *app.GameService) *GameHandler {
	return &GameHandler{gameService: gameService}
}

func (h *GameHandler) CreateForm(c *gin.Context) {
	categories, err := h.gameService.Categories()
	if err != nil {
		renderStorageError(c, "create-game.html", err, nil)
		return
	}
	render(c, http.StatusOK, "create-game.html", gin.H{"categories": categories})
}

func (h *GameHandler) Create(c *gin.Context) {
	session, _ := middleware.SessionFrom(c)

	game, err := h.gameService.Create(session.UserID, h.gameInput(c))
	if err != nil {
		if messages := app.ValidationMessages(err); messages != nil {
			categories, _ := h.gameService.Categories()
			render(c, http.StatusBadRequest, "create-game.html", gin.H{
				"errors":     messages,
				"categories": categories,
			})
			return
		}
		renderStorageError(c, "create-game.html", err, nil)
		return
	}

	c.Redirect(http.StatusFound, fmt.Sprintf("/game/%d", game.ID))
}

func (h *GameHandler) View(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		c.Redirect(http.StatusFound, "/")
		return
	}

	game, err := h.gameService.Get(id)
	if err != nil {
		if errors.Is(err, app.ErrNotFound) || errors.Is(err, app.ErrInvalidInput) {
			c.Redirect(http.StatusFound, "/")
			return
		}
		renderStorageError(c, "single-game.html", err, nil)
		return
	}

	session, _ := middleware.SessionFrom(c)
	render(c, http.StatusOK, "single-game.html", gin.H{
		"game":     game,
		"isAuthor": session.UserID != 0 && session.UserID == game.AuthorID,
	})
}

func (h *GameHandler) EditForm(c *gin.Context) {
	session, _ := middleware.SessionFrom(c)
	id, ok := idParam(c, "id")
	if !ok {
		c.Redirect(http.StatusFound, "/")
		return
	}

	game, err := h.gameService.GetOwned(session.UserID, id)
	if err != nil {
		if errors.Is(err, app.ErrNotFound) || errors.Is(err, app.ErrNotOwner) || errors.Is(err, app.ErrInvalidInput) {
			c.Redirect(http.StatusFound, "/")
			return
		}
		renderStorageError(c, "edit-game.html", err, nil)
		return
	}

	categories, err := h.gameService.Categories()
	if err != nil {
		renderStorageError(c, "edit-game.html", err, nil)
		return
	}
	render(c, http.StatusOK, "edit-game.html", gin.H{
		"game":       game,
		"categories": categories,
	})
}

func (h *GameHandler) Edit(c *gin.Context) {
	session, _ := middleware.SessionFrom(c)
	id, ok := idParam(c, "id")
	if !ok {
		c.Redirect(http.StatusFound, "/")
		return
	}

	game, err := h.gameService.Update(session.UserID, id, h.gameInput(c))
	if err != nil {
		if messages := app.ValidationMessages(err); messages != nil {
			current, getErr := h.gameService.GetOwned(session.UserID, id)
			if getErr != nil {
				c.Redirect(http.StatusFound, "/")
				return
			}
			categories, _ := h.gameService.Categories()
			render(c, http.StatusBadRequest, "edit-game.html", gin.H{
				"errors":     messages,
				"game":       current,
				"categories": categories,
			})
			return
		}
		if errors.Is(err, app.ErrNotFound) || errors.Is(err, app.ErrNotOwner) || errors.Is(err, app.ErrInvalidInput) {
			c.Redirect(http.StatusFound, "/")
			return
		}
		renderStorageError(c, "edit-game.html", err, nil)
		return
	}

	c.Redirect(http.StatusFound, fmt.Sprintf("/game/%d", game.ID))
}

func (h *GameHandler) Delete(c *gin.Context) {
	session, _ := middleware.SessionFrom(c)
	id, ok := idParam(c, "id")
	if !ok {
		c.Redirect(http.StatusFound, "/")
		return
	}

	if err := h.gameService.Delete(session.UserID, id); err != nil {
		if errors.Is(err, app.ErrNotFound) || errors.Is(err, app.ErrNotOwner) || errors.Is(err, app.ErrInvalidInput) {
			c.Redirect(http.StatusFound, "/")
			return
		}
		renderStorageError(c, "dashboard.html", err, nil)
		return
	}

	c.Redirect(http.StatusFound, "/dashboard")
}

// Catalog serves /games: six games per page, optionally narrowed to one
// category by slug.
func (h *GameHandler) Catalog(c *gin.Context) {
	page := 1
	if raw := c.Query("page"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			page = parsed
		}
	}
	categorySlug := c.Query("category")

	catalog, err := h.gameService.Catalog(c.Request.Context(), page, categorySlug)
	if err != nil {
		renderStorageError(c, "games.html", err, nil)
		return
	}

	render(c, http.StatusOK, "games.html", gin.H{
		"games":           catalog.Games,
		"categories":      catalog.Categories,
		"currentPage":     catalog.CurrentPage,
		"totalPages":      catalog.TotalPages,
		"currentCategory": catalog.CurrentCategory,
	})
}

func (h *GameHandler) gameInput(c *gin.Context) app.GameInput {
	input := app.GameInput{
		Title:        c.PostForm("title"),
		Description:  c.PostForm("description"),
		ThumbnailURL: c.PostForm("thumbnail_url"),
		GameLink:     c.PostForm("game_url"),
	}
	if raw := c.PostForm("category_id"); raw != "" {
		if parsed, err := strconv.ParseUint(raw, 10, 64); err == nil && parsed > 0 {
			id := uint(parsed)
			input.CategoryID = &id
		}
	}
	return input
}
