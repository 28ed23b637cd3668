package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"gamehaven/internal/app"
	"gamehaven/internal/transport/http/middleware"
)

// PageHandler serves the pages that are not tied to a single resource:
// the homepage and the dashboard.
type PageHandler struct {
	postService       *app.PostService
	discussionService *app.DiscussionService
	activityService   *app.ActivityService
}

func NewPageHandler(
	postService *app.PostService,
	discussionService *app.DiscussionService,
	activityService *app.ActivityService,
) *PageHandler {
	return &PageHandler{
		postService:       postService,
		discussionService: discussionService,
		activityService:   activityService,
	}
}

func (h *PageHandler) Home(c *gin.Context) {
	discussions, err := h.discussionService.Latest(10)
	if err != nil {
		renderStorageError(c, "homepage.html", err, nil)
		return
	}
	render(c, http.StatusOK, "homepage.html", gin.H{"discussions": discussions})
}

func (h *PageHandler) Dashboard(c *gin.Context) {
	session, _ := middleware.SessionFrom(c)

	posts, err := h.postService.ListByAuthor(session.UserID)
	if err != nil {
		renderStorageError(c, "dashboard.html", err, nil)
		return
	}

	activities, err := h.activityService.RecentForUser(session.UserID, 10)
	if err != nil {
		renderStorageError(c, "dashboard.html", err, nil)
		return
	}

	render(c, http.StatusOK, "dashboard.html", gin.H{
		"posts":      posts,
		"activities": activities,
	})
}
