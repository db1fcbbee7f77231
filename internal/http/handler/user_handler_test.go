package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"go.uber.org/mock/gomock"

	"github.com/stocklight/inventory-backend/internal/domain"
	"github.com/stocklight/inventory-backend/internal/repository"
	"github.com/stocklight/inventory-backend/internal/service"
	servicegomock "github.com/stocklight/inventory-backend/internal/service/gomock"
)

func newUserRouterForTest(t *testing.T) (*servicegomock.MockUserService, chi.Router) {
	t.Helper()
	ctrl := gomock.NewController(t)
	svc := servicegomock.NewMockUserService(ctrl)
	h := NewUserHandler(svc)

	r := chi.NewRouter()
	r.Route("/api/users", func(r chi.Router) {
		r.Post("/", h.Create)
		r.Get("/", h.List)
	})
	return svc, r
}

func decodeErrorEnvelope(t *testing.T, body []byte) (code string, details map[string]any) {
	t.Helper()
	var env struct {
		Error struct {
			Code    string         `json:"code"`
			Details map[string]any `json:"details"`
		} `json:"error"`
	}
	if err := json.Unmarshal(body, &env); err != nil {
		t.Fatalf("unmarshal error envelope: %v", err)
	}
	return env.Error.Code, env.Error.Details
}

func TestUserHandlerCreate(t *testing.T) {
	svc, r := newUserRouterForTest(t)

	t.Run("created with user id", func(t *testing.T) {
		svc.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(func(ctx context.Context, input service.CreateUserInput) (uint, error) {
			if input.Username != "alice" || input.Password != "s3cret!" || input.Email != "alice@example.com" {
				t.Fatalf("unexpected input %+v", input)
			}
			return 3, nil
		})
		req := httptest.NewRequest(http.MethodPost, "/api/users", strings.NewReader(`{"username":"alice","password":"s3cret!","email":"alice@example.com"}`))
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, req)
		if rr.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d body=%s", rr.Code, rr.Body.String())
		}
		var body map[string]any
		if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
			t.Fatalf("unmarshal response: %v", err)
		}
		if body["userId"] != float64(3) {
			t.Fatalf("expected userId 3, got %v", body["userId"])
		}
	})

	t.Run("missing fields map to 400", func(t *testing.T) {
		svc.EXPECT().Create(gomock.Any(), gomock.Any()).Return(uint(0), service.ErrUserFieldsRequired)
		req := httptest.NewRequest(http.MethodPost, "/api/users", strings.NewReader(`{"username":"alice"}`))
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, req)
		if rr.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rr.Code)
		}
	})

	t.Run("username conflict names the field", func(t *testing.T) {
		svc.EXPECT().Create(gomock.Any(), gomock.Any()).Return(uint(0), repository.ErrUsernameTaken)
		req := httptest.NewRequest(http.MethodPost, "/api/users", strings.NewReader(`{"username":"alice","password":"x","email":"a@b.c"}`))
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, req)
		if rr.Code != http.StatusConflict {
			t.Fatalf("expected 409, got %d", rr.Code)
		}
		code, details := decodeErrorEnvelope(t, rr.Body.Bytes())
		if code != "CONFLICT" || details["field"] != "username" {
			t.Fatalf("unexpected envelope code=%q details=%v", code, details)
		}
	})

	t.Run("email conflict names the field", func(t *testing.T) {
		svc.EXPECT().Create(gomock.Any(), gomock.Any()).Return(uint(0), repository.ErrEmailTaken)
		req := httptest.NewRequest(http.MethodPost, "/api/users", strings.NewReader(`{"username":"bob","password":"x","email":"a@b.c"}`))
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, req)
		if rr.Code != http.StatusConflict {
			t.Fatalf("expected 409, got %d", rr.Code)
		}
		code, details := decodeErrorEnvelope(t, rr.Body.Bytes())
		if code != "CONFLICT" || details["field"] != "email" {
			t.Fatalf("unexpected envelope code=%q details=%v", code, details)
		}
	})

	t.Run("malformed json maps to 400", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/users", strings.NewReader(`{`))
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, req)
		if rr.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rr.Code)
		}
	})
}

func TestUserHandlerList(t *testing.T) {
	svc, r := newUserRouterForTest(t)

	svc.EXPECT().List(gomock.Any()).Return([]domain.User{
		{ID: 1, Username: "alice", Email: "alice@example.com", PasswordHash: "$argon2id$..."},
	}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/users", nil)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rr.Code, rr.Body.String())
	}

	if strings.Contains(rr.Body.String(), "argon2id") || strings.Contains(rr.Body.String(), "password") {
		t.Fatalf("credentials leaked into listing: %s", rr.Body.String())
	}

	var env struct {
		Users []struct {
			ID       uint   `json:"id"`
			Username string `json:"username"`
			Email    string `json:"email"`
		} `json:"users"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &env); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if len(env.Users) != 1 || env.Users[0].Username != "alice" {
		t.Fatalf("unexpected users %+v", env.Users)
	}
}
