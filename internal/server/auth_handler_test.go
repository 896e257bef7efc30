package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skillgenome/genome/internal/types"
)

func newTestAuthHandler(t *testing.T) *AuthHandler {
	t.Helper()
	svc, _ := newTestUserService(t)
	return NewAuthHandler(svc, newTestJWTService("test-secret-at-least-32-chars-long!!", 1))
}

func postJSON(t *testing.T, handler http.HandlerFunc, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest("POST", path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler(rec, req)
	return rec
}

func TestAuthHandler_Register(t *testing.T) {
	h := newTestAuthHandler(t)

	rec := postJSON(t, h.Register, "/auth/register", types.CreateUserRequest{
		Name:     "Ada",
		Email:    "ada@example.com",
		Password: "hunter2hunter2",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	var resp types.LoginResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.NotEmpty(t, resp.Token)
	require.NotNil(t, resp.User)
	assert.Equal(t, "ada@example.com", resp.User.Email)
}

func TestAuthHandler_RegisterValidation(t *testing.T) {
	h := newTestAuthHandler(t)

	// Password too short.
	rec := postJSON(t, h.Register, "/auth/register", types.CreateUserRequest{
		Name:     "Ada",
		Email:    "ada@example.com",
		Password: "short",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// Not an email.
	rec = postJSON(t, h.Register, "/auth/register", types.CreateUserRequest{
		Name:     "Ada",
		Email:    "not-an-email",
		Password: "hunter2hunter2",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAuthHandler_RegisterDuplicate(t *testing.T) {
	h := newTestAuthHandler(t)
	req := types.CreateUserRequest{Name: "Ada", Email: "ada@example.com", Password: "hunter2hunter2"}

	rec := postJSON(t, h.Register, "/auth/register", req)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = postJSON(t, h.Register, "/auth/register", req)
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestAuthHandler_Login(t *testing.T) {
	h := newTestAuthHandler(t)

	rec := postJSON(t, h.Register, "/auth/register", types.CreateUserRequest{
		Name: "Ada", Email: "ada@example.com", Password: "hunter2hunter2",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = postJSON(t, h.Login, "/auth/login", types.LoginRequest{
		Email:    "ada@example.com",
		Password: "hunter2hunter2",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp types.LoginResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.NotEmpty(t, resp.Token)
}

func TestAuthHandler_LoginBadCredentials(t *testing.T) {
	h := newTestAuthHandler(t)

	rec := postJSON(t, h.Login, "/auth/login", types.LoginRequest{
		Email:    "nobody@example.com",
		Password: "whatever123",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthHandler_InvalidBody(t *testing.T) {
	h := newTestAuthHandler(t)

	req := httptest.NewRequest("POST", "/auth/register", bytes.NewReader([]byte("{not json")))
	rec := httptest.NewRecorder()
	h.Register(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
