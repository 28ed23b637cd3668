package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"gamehaven/internal/app"
	"gamehaven/internal/transport/http/middleware"
)

type PostHandler struct {
	postService *app.PostService
}

func NewPostHandler(postService *app.PostService) *PostHandler {
	return &PostHandler{postService: postService}
}

func (h *PostHandler) CreateForm(c *gin.Context) {
	render(c, http.StatusOK, "create-post.html", nil)
}

func (h *PostHandler) Create(c *gin.Context) {
	session, _ := middleware.SessionFrom(c)

	post, err := h.postService.Create(session.UserID, app.PostInput{
		Title: c.PostForm("title"),
		Body:  c.PostForm("body"),
	})
	if err != nil {
		if messages := app.ValidationMessages(err); messages != nil {
			render(c, http.StatusBadRequest, "create-post.html", gin.H{"errors": messages})
			return
		}
		renderStorageError(c, "create-post.html", err, nil)
		return
	}

	c.Redirect(http.StatusFound, fmt.Sprintf("/post/%d", post.ID))
}

func (h *PostHandler) View(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		c.Redirect(http.StatusFound, "/")
		return
	}

	post, err := h.postService.Get(id)
	if err != nil {
		if errors.Is(err, app.ErrNotFound) || errors.Is(err, app.ErrInvalidInput) {
			c.Redirect(http.StatusFound, "/")
			return
		}
		renderStorageError(c, "single-post.html", err, nil)
		return
	}

	session, _ := middleware.SessionFrom(c)
	render(c, http.StatusOK, "single-post.html", gin.H{
		"post":     post,
		"isAuthor": session.UserID != 0 && session.UserID == post.AuthorID,
	})
}

func (h *PostHandler) EditForm(c *gin.Context) {
	session, _ := middleware.SessionFrom(c)
	id, ok := idParam(c, "id")
	if !ok {
		c.Redirect(http.StatusFound, "/")
		return
	}

	post, err := h.postService.GetOwned(session.UserID, id)
	if err != nil {
		if errors.Is(err, app.ErrNotFound) || errors.Is(err, app.ErrNotOwner) || errors.Is(err, app.ErrInvalidInput) {
			c.Redirect(http.StatusFound, "/")
			return
		}
		renderStorageError(c, "edit-post.html", err, nil)
		return
	}

	render(c, http.StatusOK, "edit-post.html", gin.H{"post": post})
}

func (h *PostHandler) Edit(c *gin.Context) {
	session, _ := middleware.SessionFrom(c)
	id, ok := idParam(c, "id")
	if !ok {
		c.Redirect(http.StatusFound, "/")
		return
	}

	post, err := h.postService.Update(session.UserID, id, app.PostInput{
		Title: c.PostForm("title"),
		Body:  c.PostForm("body"),
	})
	if err != nil {
		if messages := app.ValidationMessages(err); messages != nil {
			// hand the untouched record back so the form re-renders
			current, getErr := h.postService.GetOwned(session.UserID, id)
			if getErr != nil {
				c.Redirect(http.StatusFound, "/")
				return
			}
			render(c, http.StatusBadRequest, "edit-post.html", gin.H{
				"errors": messages,
				"post":   current,
			})
			return
		}
		if errors.Is(err, app.ErrNotFound) || errors.Is(err, app.ErrNotOwner) || errors.Is(err, app.ErrInvalidInput) {
			c.Redirect(http.StatusFound, "/")
			return
		}
		renderStorageError(c, "edit-post.html", err, nil)
		return
	}

	c.Redirect(http.StatusFound, fmt.Sprintf("/post/%d", post.ID))
}

func (h *PostHandler) Delete(c *gin.Context) {
	session, _ := middleware.SessionFrom(c)
	id, ok := idParam(c, "id")
	if !ok {
		c.Redirect(http.StatusFound, "/")
		return
	}

	if err := h.postService.Delete(session.UserID, id); err != nil {
		if errors.Is(err, app.ErrNotFound) || errors.Is(err, app.ErrNotOwner) || errors.Is(err, app.ErrInvalidInput) {
			c.Redirect(http.StatusFound, "/")
			return
		}
		renderStorageError(c, "dashboard.html", err, nil)
		return
	}

	c.Redirect(http.StatusFound, "/dashboard")
}
