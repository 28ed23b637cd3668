package handler

import (
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"gamehaven/internal/transport/http/middleware"
)

// render wraps c.HTML so every page sees the current session (or nil) and
// an errors slice, the way the templates expect.
func render(c *gin.Context, status int, name string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	if _, ok := data["errors"]; !ok {
		data["errors"] = []string{}
	}
	if _, ok := data["user"]; !ok {
		if session, ok := middleware.SessionFrom(c); ok {
			data["user"] = session
		} else {
			data["user"] = nil
		}
	}
	c.HTML(status, name, data)
}

// renderStorageError logs the real cause and shows the user a generic
// message on the same form.
func renderStorageError(c *gin.Context, name string, err error, data gin.H) {
	log.Printf("storage error on %s: %v", c.FullPath(), err)
	if data == nil {
		data = gin.H{}
	}
	data["errors"] = []string{"Something went wrong. Please try again."}
	render(c, http.StatusInternalServerError, name, data)
}

func idParam(c *gin.Context, name string) (uint, bool) {
	parsed, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || parsed == 0 {
		return 0, false
	}
	return uint(parsed), true
}
