package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/stocklight/inventory-backend/internal/domain"
	"github.com/stocklight/inventory-backend/internal/observability"
	"github.com/stocklight/inventory-backend/internal/repository"
	"github.com/stocklight/inventory-backend/internal/security"
)

// All three fields are required together. An earlier revision of this API
// accepted a request when any single field was present; that was a bug, not
// a contract.
var ErrUserFieldsRequired = errors.New("username, password and email are required")

type CreateUserInput struct {
	Username string
	Password string
	Email    string
}

type UserServiceImpl struct {
	repo repository.UserRepository
}

func NewUserService(repo repository.UserRepository) *UserServiceImpl {
	return &UserServiceImpl{repo: repo}
}

func (s *UserServiceImpl) Create(ctx context.Context, input CreateUserInput) (uint, error) {
	start := time.Now()
	outcome := "success"
	defer func() { observability.RecordRegistryOperation(ctx, "create", outcome, time.Since(start)) }()

	username := strings.TrimSpace(input.Username)
	email := strings.TrimSpace(input.Email)
	if username == "" || input.Password == "" || email == "" {
		outcome = "bad_request"
		return 0, ErrUserFieldsRequired
	}

	hash, err := security.HashPassword(input.Password)
	if err != nil {
		outcome = "error"
		return 0, err
	}

	user := &domain.User{Username: username, Email: email, PasswordHash: hash}
	if err := s.repo.Create(user); err != nil {
		if errors.Is(err, repository.ErrUsernameTaken) || errors.Is(err, repository.ErrEmailTaken) {
			outcome = "conflict"
		} else {
			outcome = "error"
		}
		return 0, err
	}
	return user.ID, nil
}

func (s *UserServiceImpl) List(ctx context.Context) ([]domain.User, error) {
	start := time.Now()
	outcome := "success"
	defer func() { observability.RecordRegistryOperation(ctx, "list", outcome, time.Since(start)) }()

	users, err := s.repo.List()
	if err != nil {
		outcome = "error"
		return nil, err
	}
	return users, nil
}
