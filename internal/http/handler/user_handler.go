package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/stocklight/inventory-backend/internal/http/response"
	"github.com/stocklight/inventory-backend/internal/observability"
	"github.com/stocklight/inventory-backend/internal/repository"
	"github.com/stocklight/inventory-backend/internal/service"
)

type UserHandler struct {
	svc service.UserService
}

func NewUserHandler(svc service.UserService) *UserHandler {
	return &UserHandler{svc: svc}
}

func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Username string `json:"username"`
		Password string `json:"password"`
		Email    string `json:"email"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		response.Error(w, r, http.StatusBadRequest, "BAD_REQUEST", "invalid payload", nil)
		return
	}

	userID, err := h.svc.Create(r.Context(), service.CreateUserInput{
		Username: body.Username,
		Password: body.Password,
		Email:    body.Email,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUserFieldsRequired):
			response.Error(w, r, http.StatusBadRequest, "BAD_REQUEST", err.Error(), nil)
		case errors.Is(err, repository.ErrUsernameTaken):
			response.Error(w, r, http.StatusConflict, "CONFLICT", "username already exists", map[string]any{"field": "username"})
		case errors.Is(err, repository.ErrEmailTaken):
			response.Error(w, r, http.StatusConflict, "CONFLICT", "email already exists", map[string]any{"field": "email"})
		default:
			response.Error(w, r, http.StatusInternalServerError, "INTERNAL", "failed to create user", nil)
		}
		return
	}

	observability.Audit(r, "user.create", "user_id", userID)
	response.JSON(w, r, http.StatusCreated, map[string]any{"userId": userID})
}

func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.svc.List(r.Context())
	if err != nil {
		response.Error(w, r, http.StatusInternalServerError, "INTERNAL", "failed to list users", nil)
		return
	}
	response.JSON(w, r, http.StatusOK, map[string]any{"users": users})
}
