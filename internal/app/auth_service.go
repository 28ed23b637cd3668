package app

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"gamehaven/internal/model"
	"gamehaven/internal/pkg/jwtutil"
	"gamehaven/internal/repository"
)

var usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9]+$`)

type AuthService struct {
	userRepo      *repository.UserRepository
	publisher     ActivityPublisher
	jwtSecret     string
	jwtExpiration time.Duration
}

type RegisterInput struct {
	Username string
	Password string
}

type LoginInput struct {
	Username string
	Password string
}

type AuthResult struct {
	Token string
	User  *model.User
}

func NewAuthService(
	userRepo *repository.UserRepository,
	publisher ActivityPublisher,
	jwtSecret string,
	jwtExpiration time.Duration,
) *AuthService {
	return &AuthService{
		userRepo:      userRepo,
		publisher:     publisher,
		jwtSecret:     jwtSecret,
		jwtExpiration: jwtExpiration,
	}
}

func (s *AuthService) Register(input RegisterInput) (*AuthResult, error) {
	username := strings.TrimSpace(input.Username)
	password := input.Password

	var messages []string
	if username == "" {
		messages = append(messages, "You must provide a username.")
	}
	if username != "" && len(username) < 3 {
		messages = append(messages, "Username must be at least 3 characters.")
	}
	if username != "" && len(username) > 10 {
		messages = append(messages, "Username cannot exceed 10 characters.")
	}
	if username != "" && !usernamePattern.MatchString(username) {
		messages = append(messages, "Username can only contain letters and numbers.")
	}

	if username != "" {
		existing, err := s.userRepo.GetByUsername(username)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			messages = append(messages, "That username is already taken.")
		}
	}

	if password == "" {
		messages = append(messages, "You must provide a password.")
	}
	if password != "" && len(password) < 12 {
		messages = append(messages, "Password must be at least 12 characters.")
	}
	if password != "" && len(password) > 70 {
		messages = append(messages, "Password cannot exceed 70 characters.")
	}

	if err := validationFailed(messages); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password failed: %w", err)
	}

	user := &model.User{
		Username:     username,
		PasswordHash: string(hash),
	}
	if err := s.userRepo.Create(user); err != nil {
		// Two registrations can race past the pre-check; the unique index
		// settles it and the loser sees the same message.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, validationFailed([]string{"That username is already taken."})
		}
		return nil, err
	}

	token, err := jwtutil.GenerateToken(s.jwtSecret, s.jwtExpiration, user.ID, user.Username)
	if err != nil {
		return nil, err
	}

	recordActivity(s.publisher, user.ID, "registered", "user", user.ID)
	return &AuthResult{Token: token, User: user}, nil
}

func (s *AuthService) Login(input LoginInput) (*AuthResult, error) {
	username := strings.TrimSpace(input.Username)
	password := input.Password
	if username == "" || password == "" {
		return nil, ErrInvalidCredential
	}

	user, err := s.userRepo.GetByUsername(username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrInvalidCredential
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredential
	}

	token, err := jwtutil.GenerateToken(s.jwtSecret, s.jwtExpiration, user.ID, user.Username)
	if err != nil {
		return nil, err
	}
	return &AuthResult{Token: token, User: user}, nil
}

func (s *AuthService) GetUserByID(id uint) (*model.User, error) {
	if id == 0 {
		return nil, ErrInvalidInput
	}
	return s.userRepo.GetByID(id)
}
