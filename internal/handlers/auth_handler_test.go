package handlers

import (
	"net/http"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devconnector/backend/internal/models"
)

func newAuthRouter(h *AuthHandler, userID string) *chi.Mux {
	r := chi.NewRouter()
	r.Route("/api/users", func(r chi.Router) {
		r.Post("/register", h.Register)
		r.Post("/login", h.Login)

		r.Group(func(r chi.Router) {
			r.Use(asUser(userID))
			r.Get("/current", h.Current)
		})
	})
	return r
}

type authEnvelope struct {
	Success bool                `json:"success"`
	Data    models.AuthResponse `json:"data"`
	Error   string              `json:"error"`
	Errors  map[string]string   `json:"errors"`
}

func TestRegister(t *testing.T) {
	users := newFakeUserService()
	h := NewAuthHandler(users, "test-secret", time.Hour)
	router := newAuthRouter(h, "")

	rr := doRequest(t, router, http.MethodPost, "/api/users/register", models.RegisterRequest{
		Name:      "Jane Doe",
		Email:     "jane@example.com",
		Password:  "hunter22",
		Password2: "hunter22",
	})
	require.Equal(t, http.StatusCreated, rr.Code)

	var resp authEnvelope
	decodeResponse(t, rr, &resp)
	assert.True(t, resp.Success)
	assert.NotEmpty(t, resp.Data.Token)
	assert.Equal(t, "jane@example.com", resp.Data.User.Email)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	users := newFakeUserService()
	users.addUser("user-1", "Jane Doe", "jane@example.com")
	h := NewAuthHandler(users, "test-secret", time.Hour)
	router := newAuthRouter(h, "")

	rr := doRequest(t, router, http.MethodPost, "/api/users/register", models.RegisterRequest{
		Name:      "Other Jane",
		Email:     "jane@example.com",
		Password:  "hunter22",
		Password2: "hunter22",
	})
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	var resp authEnvelope
	decodeResponse(t, rr, &resp)
	assert.Equal(t, "Email already exists", resp.Errors["email"])
}

func TestRegister_ValidationErrors(t *testing.T) {
	h := NewAuthHandler(newFakeUserService(), "test-secret", time.Hour)
	router := newAuthRouter(h, "")

	rr := doRequest(t, router, http.MethodPost, "/api/users/register", models.RegisterRequest{
		Name:      "Jane Doe",
		Email:     "jane@example.com",
		Password:  "hunter22",
		Password2: "different",
	})
	require.Equal(t, http.StatusBadRequest, rr.Code)

	var resp authEnvelope
	decodeResponse(t, rr, &resp)
	assert.Equal(t, "Passwords must match", resp.Errors["password2"])
}

func TestLogin(t *testing.T) {
	users := newFakeUserService()
	h := NewAuthHandler(users, "test-secret", time.Hour)
	router := newAuthRouter(h, "")

	rr := doRequest(t, router, http.MethodPost, "/api/users/register", models.RegisterRequest{
		Name:      "Jane Doe",
		Email:     "jane@example.com",
		Password:  "hunter22",
		Password2: "hunter22",
	})
	require.Equal(t, http.StatusCreated, rr.Code)

	rr = doRequest(t, router, http.MethodPost, "/api/users/login", models.LoginRequest{
		Email:    "jane@example.com",
		Password: "hunter22",
	})
	require.Equal(t, http.StatusOK, rr.Code)

	var resp authEnvelope
	decodeResponse(t, rr, &resp)
	assert.NotEmpty(t, resp.Data.Token)
}

func TestLogin_BadCredentials(t *testing.T) {
	users := newFakeUserService()
	h := NewAuthHandler(users, "test-secret", time.Hour)
	router := newAuthRouter(h, "")

	rr := doRequest(t, router, http.MethodPost, "/api/users/register", models.RegisterRequest{
		Name:      "Jane Doe",
		Email:     "jane@example.com",
		Password:  "hunter22",
		Password2: "hunter22",
	})
	require.Equal(t, http.StatusCreated, rr.Code)

	// Wrong password and unknown email produce the same answer.
	for _, req := range []models.LoginRequest{
		{Email: "jane@example.com", Password: "wrong"},
		{Email: "nobody@example.com", Password: "hunter22"},
	} {
		rr = doRequest(t, router, http.MethodPost, "/api/users/login", req)
		assert.Equal(t, http.StatusBadRequest, rr.Code)

		var resp authEnvelope
		decodeResponse(t, rr, &resp)
		assert.Equal(t, "Invalid email or password", resp.Errors["email"])
	}
}

func TestCurrent(t *testing.T) {
	users := newFakeUserService()
	users.addUser("user-1", "Jane Doe", "jane@example.com")
	h := NewAuthHandler(users, "test-secret", time.Hour)
	router := newAuthRouter(h, "user-1")

	rr := doRequest(t, router, http.MethodGet, "/api/users/current", nil)
	require.Equal(t, http.StatusOK, rr.Code)

	var resp struct {
		Success bool        `json:"success"`
		Data    models.User `json:"data"`
	}
	decodeResponse(t, rr, &resp)
	assert.Equal(t, "user-1", resp.Data.ID)
	assert.Equal(t, "Jane Doe", resp.Data.Name)
}
