package integration

import (
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/stocklight/inventory-backend/internal/domain"
	"github.com/stocklight/inventory-backend/internal/security"
)

func TestUserRegistrationAndConflicts(t *testing.T) {
	baseURL, client, db := newInventoryTestServer(t)

	status, raw := doJSON(t, client, http.MethodPost, baseURL+"/api/users", map[string]string{
		"username": "alice",
		"password": "s3cret-password",
		"email":    "alice@example.com",
	})
	require.Equal(t, http.StatusCreated, status, string(raw))
	var created struct {
		UserID uint `json:"userId"`
	}
	require.NoError(t, json.Unmarshal(raw, &created))
	require.NotZero(t, created.UserID)

	// stored credential is an argon2id hash that verifies, never the plaintext
	var stored domain.User
	require.NoError(t, db.First(&stored, created.UserID).Error)
	require.True(t, strings.HasPrefix(stored.PasswordHash, "$argon2id$"))
	require.NotContains(t, stored.PasswordHash, "s3cret-password")
	ok, err := security.VerifyPassword(stored.PasswordHash, "s3cret-password")
	require.NoError(t, err)
	require.True(t, ok)

	// duplicate username
	status, raw = doJSON(t, client, http.MethodPost, baseURL+"/api/users", map[string]string{
		"username": "alice",
		"password": "another-password",
		"email":    "alice2@example.com",
	})
	require.Equal(t, http.StatusConflict, status, string(raw))
	var env struct {
		Error struct {
			Code    string         `json:"code"`
			Details map[string]any `json:"details"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(raw, &env))
	require.Equal(t, "CONFLICT", env.Error.Code)
	require.Equal(t, "username", env.Error.Details["field"])

	// duplicate email
	status, raw = doJSON(t, client, http.MethodPost, baseURL+"/api/users", map[string]string{
		"username": "bob",
		"password": "another-password",
		"email":    "alice@example.com",
	})
	require.Equal(t, http.StatusConflict, status, string(raw))
	require.NoError(t, json.Unmarshal(raw, &env))
	require.Equal(t, "email", env.Error.Details["field"])

	// missing field
	status, raw = doJSON(t, client, http.MethodPost, baseURL+"/api/users", map[string]string{
		"username": "carol",
	})
	require.Equal(t, http.StatusBadRequest, status, string(raw))

	// listing never exposes credentials
	status, raw = doJSON(t, client, http.MethodGet, baseURL+"/api/users", nil)
	require.Equal(t, http.StatusOK, status, string(raw))
	require.NotContains(t, string(raw), "argon2id")
	require.NotContains(t, string(raw), "password")
	var listed struct {
		Users []struct {
			ID       uint   `json:"id"`
			Username string `json:"username"`
			Email    string `json:"email"`
		} `json:"users"`
	}
	require.NoError(t, json.Unmarshal(raw, &listed))
	require.Len(t, listed.Users, 1)
	require.Equal(t, "alice", listed.Users[0].Username)
}
