package app

import (
	"mime/multipart"
	"time"

	"gamehaven/internal/model"
	"gamehaven/internal/pkg/sanitize"
	"gamehaven/internal/pkg/upload"
	"gamehaven/internal/repository"
)

type PhotoService struct {
	photoRepo *repository.PhotoRepository
	saver     *upload.Saver
	publisher ActivityPublisher
}

type PhotoInput struct {
	Title       string
	Description string
	File        *multipart.FileHeader
}

func NewPhotoService(photoRepo *repository.PhotoRepository, saver *upload.Saver, publisher ActivityPublisher) *PhotoService {
	return &PhotoService{
		photoRepo: photoRepo,
		saver:     saver,
		publisher: publisher,
	}
}

// Upload stores the file first, then the metadata row. Title and
// description are optional; the file is not.
func (s *PhotoService) Upload(userID uint, input PhotoInput) (*model.Photo, error) {
	if userID == 0 {
		return nil, ErrInvalidInput
	}

	filename, err := s.saver.Save(input.File)
	if err != nil {
		return nil, err
	}

	photo := &model.Photo{
		Filename:    filename,
		Title:       sanitize.PlainText(input.Title),
		Description: sanitize.PlainText(input.Description),
		UploaderID:  userID,
		UploadedAt:  time.Now(),
	}
	if err := s.photoRepo.Create(photo); err != nil {
		return nil, err
	}

	recordActivity(s.publisher, userID, "uploaded", "photo", photo.ID)
	return photo, nil
}

func (s *PhotoService) Gallery() ([]repository.PhotoWithUploader, error) {
	return s.photoRepo.ListWithUploader()
}
