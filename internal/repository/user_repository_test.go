package repository

import (
	"errors"
	"testing"

	"github.com/stocklight/inventory-backend/internal/domain"
)

func TestUserRepositoryCreateAndList(t *testing.T) {
	repo := NewUserRepository(newRepositoryDBForTest(t))

	u := &domain.User{Username: "dana", Email: "dana@example.com", PasswordHash: "$argon2id$fake"}
	if err := repo.Create(u); err != nil {
		t.Fatalf("create: %v", err)
	}
	if u.ID == 0 {
		t.Fatal("expected store-assigned id")
	}

	users, err := repo.List()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(users) != 1 || users[0].Username != "dana" {
		t.Fatalf("unexpected users: %+v", users)
	}
}

func TestUserRepositoryUsernameConflict(t *testing.T) {
	repo := NewUserRepository(newRepositoryDBForTest(t))

	first := &domain.User{Username: "sam", Email: "sam@example.com", PasswordHash: "h"}
	if err := repo.Create(first); err != nil {
		t.Fatalf("create first: %v", err)
	}

	dup := &domain.User{Username: "sam", Email: "other@example.com", PasswordHash: "h"}
	if err := repo.Create(dup); !errors.Is(err, ErrUsernameTaken) {
		t.Fatalf("expected ErrUsernameTaken, got %v", err)
	}
}

func TestUserRepositoryEmailConflict(t *testing.T) {
	repo := NewUserRepository(newRepositoryDBForTest(t))

	first := &domain.User{Username: "kim", Email: "kim@example.com", PasswordHash: "h"}
	if err := repo.Create(first); err != nil {
		t.Fatalf("create first: %v", err)
	}

	dup := &domain.User{Username: "notkim", Email: "kim@example.com", PasswordHash: "h"}
	if err := repo.Create(dup); !errors.Is(err, ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
}

func TestClassifyUniqueViolation(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want error
	}{
		{"sqlite username", errors.New("UNIQUE constraint failed: users.username"), ErrUsernameTaken},
		{"sqlite email", errors.New("UNIQUE constraint failed: users.email"), ErrEmailTaken},
		{"postgres username", errors.New(`duplicate key value violates unique constraint "uni_users_username"`), ErrUsernameTaken},
		{"ambiguous defaults to username", errors.New("UNIQUE constraint failed"), ErrUsernameTaken},
		{"unrelated error passes through", errors.New("disk I/O error"), nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := classifyUniqueViolation(tc.err); !errors.Is(got, tc.want) {
				t.Fatalf("classify(%v) = %v, want %v", tc.err, got, tc.want)
			}
		})
	}
}
