package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"gamehaven/internal/app"
	"gamehaven/internal/transport/http/middleware"
)

type DiscussionHandler struct {
	discussionService *app.DiscussionService
}

func NewDiscussionHandler(discussionService *app.DiscussionService) *DiscussionHandler {
	return &DiscussionHandler{discussionService: discussionService}
}

// List shows the session user's discussions with replies nested.
func (h *DiscussionHandler) List(c *gin.Context) {
	session, _ := middleware.SessionFrom(c)

	discussions, err := h.discussionService.ListByAuthor(session.UserID)
	if err != nil {
		renderStorageError(c, "discussions.html", err, nil)
		return
	}

	render(c, http.StatusOK, "discussions.html", gin.H{"discussions": discussions})
}

func (h *DiscussionHandler) Create(c *gin.Context) {
	session, _ := middleware.SessionFrom(c)

	_, err := h.discussionService.Create(session.UserID, c.PostForm("title"))
	if err != nil {
		if messages := app.ValidationMessages(err); messages != nil {
			discussions, listErr := h.discussionService.ListByAuthor(session.UserID)
			if listErr != nil {
				renderStorageError(c, "discussions.html", listErr, nil)
				return
			}
			render(c, http.StatusBadRequest, "discussions.html", gin.H{
				"errors":      messages,
				"discussions": discussions,
			})
			return
		}
		renderStorageError(c, "discussions.html", err, nil)
		return
	}

	c.Redirect(http.StatusFound, "/discussions")
}

// Detail is the single route that answers a missing resource with an
// explicit 404 instead of the usual redirect home.
func (h *DiscussionHandler) Detail(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		c.String(http.StatusNotFound, "Discussion not found")
		return
	}

	discussion, replies, err := h.discussionService.Detail(id)
	if err != nil {
		if errors.Is(err, app.ErrNotFound) || errors.Is(err, app.ErrInvalidInput) {
			c.String(http.StatusNotFound, "Discussion not found")
			return
		}
		renderStorageError(c, "discussion-details.html", err, nil)
		return
	}

	render(c, http.StatusOK, "discussion-details.html", gin.H{
		"discussion": discussion,
		"replies":    replies,
	})
}

func (h *DiscussionHandler) Reply(c *gin.Context) {
	session, _ := middleware.SessionFrom(c)
	id, ok := idParam(c, "id")
	if !ok {
		c.String(http.StatusNotFound, "Discussion not found")
		return
	}

	_, err := h.discussionService.AddReply(session.UserID, id, c.PostForm("text"))
	if err != nil {
		if messages := app.ValidationMessages(err); messages != nil {
			discussion, replies, detailErr := h.discussionService.Detail(id)
			if detailErr != nil {
				c.String(http.StatusNotFound, "Discussion not found")
				return
			}
			render(c, http.StatusBadRequest, "discussion-details.html", gin.H{
				"errors":     messages,
				"discussion": discussion,
				"replies":    replies,
			})
			return
		}
		if errors.Is(err, app.ErrNotFound) {
			c.String(http.StatusNotFound, "Discussion not found")
			return
		}
		renderStorageError(c, "discussion-details.html", err, nil)
		return
	}

	c.Redirect(http.StatusFound, fmt.Sprintf("/discussions/%d", id))
}
