package app

import (
	"gamehaven/internal/model"
	"gamehaven/internal/pkg/sanitize"
	"gamehaven/internal/repository"
)

type PostService struct {
	postRepo  *repository.PostRepository
	publisher ActivityPublisher
}

type PostInput struct {
	Title string
	Body  string
}

func NewPostService(postRepo *repository.PostRepository, publisher ActivityPublisher) *PostService {
	return &PostService{postRepo: postRepo, publisher: publisher}
}

func validatePost(input PostInput) (PostInput, error) {
	input.Title = sanitize.PlainText(input.Title)
	input.Body = sanitize.PlainText(input.Body)

	var messages []string
	if input.Title == "" {
		messages = append(messages, "You must provide a title.")
	}
	if input.Body == "" {
		messages = append(messages, "You must provide content.")
	}
	return input, validationFailed(messages)
}

func (s *PostService) Create(userID uint, input PostInput) (*model.Post, error) {
	if userID == 0 {
		return nil, ErrInvalidInput
	}

	input, err := validatePost(input)
	if err != nil {
		return nil, err
	}

	post := &model.Post{
		Title:    input.Title,
		Body:     input.Body,
		AuthorID: userID,
	}
	if err := s.postRepo.Create(post); err != nil {
		return nil, err
	}

	recordActivity(s.publisher, userID, "created", "post", post.ID)
	return post, nil
}

func (s *PostService) Get(id uint) (*repository.PostWithAuthor, error) {
	if id == 0 {
		return nil, ErrInvalidInput
	}
	post, err := s.postRepo.GetWithAuthor(id)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, ErrNotFound
	}
	return post, nil
}

// GetOwned fetches a post for mutation and enforces the ownership gate.
func (s *PostService) GetOwned(userID, id uint) (*model.Post, error) {
	if userID == 0 || id == 0 {
		return nil, ErrInvalidInput
	}
	post, err := s.postRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, ErrNotFound
	}
	if post.AuthorID != userID {
		return nil, ErrNotOwner
	}
	return post, nil
}

func (s *PostService) Update(userID, id uint, input PostInput) (*model.Post, error) {
	post, err := s.GetOwned(userID, id)
	if err != nil {
		return nil, err
	}

	input, err = validatePost(input)
	if err != nil {
		return nil, err
	}

	post.Title = input.Title
	post.Body = input.Body
	if err := s.postRepo.Update(post); err != nil {
		return nil, err
	}

	recordActivity(s.publisher, userID, "edited", "post", post.ID)
	return post, nil
}

func (s *PostService) Delete(userID, id uint) error {
	post, err := s.GetOwned(userID, id)
	if err != nil {
		return err
	}
	if err := s.postRepo.Delete(post.ID); err != nil {
		return err
	}

	recordActivity(s.publisher, userID, "deleted", "post", post.ID)
	return nil
}

func (s *PostService) ListByAuthor(userID uint) ([]model.Post, error) {
	if userID == 0 {
		return nil, ErrInvalidInput
	}
	return s.postRepo.ListByAuthor(userID)
}
