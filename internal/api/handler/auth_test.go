package handler

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/skilltreedocs/skilltreedocs/internal/api/middleware"
	"github.com/skilltreedocs/skilltreedocs/internal/config"
)

const testSecret = "a-test-secret-that-is-at-least-32-chars"

func testAdmin(t *testing.T) *config.AdminConfig {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("Corr3ct!Horse"), bcrypt.MinCost)
	require.NoError(t, err)
	return &config.AdminConfig{
		Enabled:         true,
		Username:        "admin",
		PasswordHash:    string(hash),
		JWTSecret:       testSecret,
		TokenExpiration: 2,
	}
}

func authRouter(h *AuthHandler) *gin.Engine {
	r := gin.New()
	r.POST("/login", h.Login)
	r.GET("/me", middleware.JWTAuth(h), h.Me)
	return r
}

func TestAuthHandler_Login(t *testing.T) {
	h := NewAuthHandler(testAdmin(t))
	r := authRouter(h)

	w := performRequest(r, http.MethodPost, "/login", `{"username":"admin","password":"Corr3ct!Horse"}`)
	require.Equal(t, http.StatusOK, w.Code)

	var out LoginResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	expiresAt, err := time.Parse(time.RFC3339, out.ExpiresAt)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(2*time.Hour), expiresAt, time.Minute)

	username, err := h.ValidateToken(out.Token)
	require.NoError(t, err)
	assert.Equal(t, "admin", username)

	req := performAuthed(r, "/me", out.Token)
	assert.Equal(t, http.StatusOK, req.Code)
	assert.JSONEq(t, `{"username":"admin"}`, req.Body.String())
}

func TestAuthHandler_LoginRememberMe(t *testing.T) {
	r := authRouter(NewAuthHandler(testAdmin(t)))

	w := performRequest(r, http.MethodPost, "/login", `{"username":"admin","password":"Corr3ct!Horse","remember_me":true}`)
	require.Equal(t, http.StatusOK, w.Code)

	var out LoginResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	expiresAt, err := time.Parse(time.RFC3339, out.ExpiresAt)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(RememberMeExpirationHours*time.Hour), expiresAt, time.Minute)
}

func TestAuthHandler_LoginRejected(t *testing.T) {
	disabled := testAdmin(t)
	disabled.Enabled = false

	tests := []struct {
		name     string
		admin    *config.AdminConfig
		body     string
		wantCode int
	}{
		{"bad body", testAdmin(t), `{"username":"admin"}`, http.StatusBadRequest},
		{"wrong user", testAdmin(t), `{"username":"root","password":"Corr3ct!Horse"}`, http.StatusUnauthorized},
		{"wrong password", testAdmin(t), `{"username":"admin","password":"nope"}`, http.StatusUnauthorized},
		{"admin disabled", disabled, `{"username":"admin","password":"Corr3ct!Horse"}`, http.StatusUnauthorized},
		{"admin missing", nil, `{"username":"admin","password":"Corr3ct!Horse"}`, http.StatusUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := performRequest(authRouter(NewAuthHandler(tt.admin)), http.MethodPost, "/login", tt.body)
			assert.Equal(t, tt.wantCode, w.Code)
		})
	}
}

func TestAuthHandler_ValidateToken(t *testing.T) {
	admin := testAdmin(t)
	h := NewAuthHandler(admin)

	t.Run("expired", func(t *testing.T) {
		token, _, err := h.issue("admin", -time.Minute)
		require.NoError(t, err)
		_, err = h.ValidateToken(token)
		assert.Error(t, err)
	})

	t.Run("other secret", func(t *testing.T) {
		other := NewAuthHandler(&config.AdminConfig{JWTSecret: "another-secret-of-sufficient-length!!"})
		token, _, err := other.issue("admin", time.Hour)
		require.NoError(t, err)
		_, err = h.ValidateToken(token)
		assert.Error(t, err)
	})

	t.Run("other issuer", func(t *testing.T) {
		claims := &Claims{Username: "admin", RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "someone-else",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		}}
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
		require.NoError(t, err)
		_, err = h.ValidateToken(token)
		assert.Error(t, err)
	})

	t.Run("no secret", func(t *testing.T) {
		_, err := NewAuthHandler(&config.AdminConfig{}).ValidateToken("x.y.z")
		assert.Error(t, err)
	})

	t.Run("no bearer", func(t *testing.T) {
		w := performRequest(authRouter(h), http.MethodGet, "/me", "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}
