package repository

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/stocklight/inventory-backend/internal/domain"
	"github.com/stocklight/inventory-backend/internal/observability"
)

var (
	ErrUsernameTaken = errors.New("username already exists")
	ErrEmailTaken    = errors.New("email already exists")
)

type UserRepository interface {
	Create(user *domain.User) error
	List() ([]domain.User, error)
}

type GormUserRepository struct{ db *gorm.DB }

func NewUserRepository(db *gorm.DB) UserRepository { return &GormUserRepository{db: db} }

func (r *GormUserRepository) Create(user *domain.User) error {
	if err := r.db.Create(user).Error; err != nil {
		if conflictErr := classifyUniqueViolation(err); conflictErr != nil {
			observability.RecordRepositoryOperation(context.Background(), "user", "create", "conflict")
			return conflictErr
		}
		observability.RecordRepositoryOperation(context.Background(), "user", "create", "error")
		return err
	}
	observability.RecordRepositoryOperation(context.Background(), "user", "create", "success")
	return nil
}

func (r *GormUserRepository) List() ([]domain.User, error) {
	var users []domain.User
	if err := r.db.Order("id").Find(&users).Error; err != nil {
		observability.RecordRepositoryOperation(context.Background(), "user", "list", "error")
		return nil, err
	}
	observability.RecordRepositoryOperation(context.Background(), "user", "list", "success")
	return users, nil
}

// classifyUniqueViolation maps a driver uniqueness error to the offending
// field. Sqlite reports "UNIQUE constraint failed: users.username", Postgres
// "duplicate key value violates unique constraint ...username...". When the
// message names neither column unambiguously, username takes precedence.
func classifyUniqueViolation(err error) error {
	msg := strings.ToLower(err.Error())
	if !strings.Contains(msg, "unique") && !strings.Contains(msg, "duplicate") {
		return nil
	}
	if strings.Contains(msg, "username") {
		return ErrUsernameTaken
	}
	if strings.Contains(msg, "email") {
		return ErrEmailTaken
	}
	return ErrUsernameTaken
}
