package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"gamehaven/internal/app"
	"gamehaven/internal/pkg/upload"
	"gamehaven/internal/transport/http/middleware"
)

type PhotoHandler struct {
	photoService *app.PhotoService
}

func NewPhotoHandler(photoService *app.PhotoService) *PhotoHandler {
	return &PhotoHandler{photoService: photoService}
}

func (h *PhotoHandler) Gallery(c *gin.Context) {
	photos, err := h.photoService.Gallery()
	if err != nil {
		renderStorageError(c, "photos.html", err, nil)
		return
	}
	render(c, http.StatusOK, "photos.html", gin.H{"photos": photos})
}

func (h *PhotoHandler) UploadForm(c *gin.Context) {
	render(c, http.StatusOK, "upload-photo.html", nil)
}

func (h *PhotoHandler) Upload(c *gin.Context) {
	session, _ := middleware.SessionFrom(c)

	file, err := c.FormFile("photo")
	if err != nil {
		render(c, http.StatusBadRequest, "upload-photo.html", gin.H{
			"errors": []string{"No file selected for upload."},
		})
		return
	}

	photo, uploadErr := h.photoService.Upload(session.UserID, app.PhotoInput{
		Title:       c.PostForm("photo-title"),
		Description: c.PostForm("photo-description"),
		File:        file,
	})
	if uploadErr != nil {
		// Size and type rejections get their own wording; everything
		// else stays generic.
		switch {
		case errors.Is(uploadErr, upload.ErrTooLarge):
			render(c, http.StatusBadRequest, "upload-photo.html", gin.H{
				"errors": []string{"Image file size cannot exceed 5MB."},
			})
		case errors.Is(uploadErr, upload.ErrBadType):
			render(c, http.StatusBadRequest, "upload-photo.html", gin.H{
				"errors": []string{"Only image files (JPEG, JPG, PNG, GIF) are allowed."},
			})
		case errors.Is(uploadErr, upload.ErrNoFile):
			render(c, http.StatusBadRequest, "upload-photo.html", gin.H{
				"errors": []string{"No file selected for upload."},
			})
		default:
			renderStorageError(c, "upload-photo.html", uploadErr, nil)
		}
		return
	}

	render(c, http.StatusOK, "upload-success.html", gin.H{
		"photo":    photo,
		"imageURL": "/uploads/" + photo.Filename,
	})
}
