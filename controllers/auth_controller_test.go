package controllers

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegister(t *testing.T) {
	db := setupTestDB(t)
	r := newTestRouter(db)

	w := performRequest(r, http.MethodPost, "/api/auth/register", "", h{
		"username": "deepthroat",
		"email":    "anon@example.com",
		"password": "password123",
	})

	require.Equal(t, http.StatusCreated, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, true, body["success"])
}

func TestRegisterDuplicateEmail(t *testing.T) {
	db := setupTestDB(t)
	r := newTestRouter(db)
	createTestUser(t, db, "existing", "taken@example.com")

	w := performRequest(r, http.MethodPost, "/api/auth/register", "", h{
		"username": "newcomer",
		"email":    "taken@example.com",
		"password": "password123",
	})

	require.Equal(t, http.StatusBadRequest, w.Code)
	body := decodeBody(t, w)
	assert.Contains(t, body["error"], "already exists")
}

func TestRegisterValidation(t *testing.T) {
	db := setupTestDB(t)
	r := newTestRouter(db)

	tests := []struct {
		name    string
		payload h
	}{
		{"missing email", h{"username": "someone", "password": "password123"}},
		{"malformed email", h{"username": "someone", "email": "nope", "password": "password123"}},
		{"short password", h{"username": "someone", "email": "a@b.com", "password": "123"}},
		{"short username", h{"username": "ab", "email": "a@b.com", "password": "password123"}},
		{"username starts with digit", h{"username": "1337leaker", "email": "a@b.com", "password": "password123"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := performRequest(r, http.MethodPost, "/api/auth/register", "", tt.payload)
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func TestLogin(t *testing.T) {
	db := setupTestDB(t)
	r := newTestRouter(db)
	user := createTestUser(t, db, "whistler", "whistler@example.com")

	w := performRequest(r, http.MethodPost, "/api/auth/login", "", h{
		"email":    user.Email,
		"password": "password123",
	})

	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.NotEmpty(t, body["access_token"])
	assert.NotEmpty(t, body["refresh_token"])
	assert.Equal(t, "Bearer", body["token_type"])
}

func TestLoginInvalidCredentials(t *testing.T) {
	db := setupTestDB(t)
	r := newTestRouter(db)
	user := createTestUser(t, db, "whistler", "whistler@example.com")

	t.Run("wrong password", func(t *testing.T) {
		w := performRequest(r, http.MethodPost, "/api/auth/login", "", h{
			"email":    user.Email,
			"password": "not-the-password",
		})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("unknown email", func(t *testing.T) {
		w := performRequest(r, http.MethodPost, "/api/auth/login", "", h{
			"email":    "ghost@example.com",
			"password": "password123",
		})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestGetProfile(t *testing.T) {
	db := setupTestDB(t)
	r := newTestRouter(db)
	user := createTestUser(t, db, "whistler", "whistler@example.com")

	w := performRequest(r, http.MethodGet, "/api/auth/profile", authToken(t, user.ID), nil)

	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	profile := body["user"].(map[string]interface{})
	assert.Equal(t, "whistler", profile["username"])
	assert.Nil(t, profile["password"])
}
