package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/skilltreedocs/skilltreedocs/consts"
	"github.com/skilltreedocs/skilltreedocs/internal/api/middleware"
	"github.com/skilltreedocs/skilltreedocs/internal/config"
	"github.com/skilltreedocs/skilltreedocs/pkg/errors"
	"github.com/skilltreedocs/skilltreedocs/pkg/logger"
)

// AuthHandler issues and checks admin tokens.
type AuthHandler struct {
	admin *config.AdminConfig
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(admin *config.AdminConfig) *AuthHandler {
	return &AuthHandler{admin: admin}
}

// RememberMeExpirationHours is the token lifetime when "remember me" is set (7 days)
const RememberMeExpirationHours = 168

const defaultExpirationHours = 24

// LoginRequest represents the login request body
type LoginRequest struct {
	Username   string `json:"username" binding:"required"`
	Password   string `json:"password" binding:"required"`
	RememberMe bool   `json:"remember_me"`
}

// LoginResponse represents the login response
type LoginResponse struct {
	Token     string `json:"token"`
	ExpiresAt string `json:"expires_at"`
}

// Claims represents JWT claims
type Claims struct {
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// Login handles POST /api/v1/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, errors.ErrValidation("Invalid request body"))
		return
	}

	if h.admin == nil || !h.admin.Enabled {
		respondError(c, errors.ErrUnauthorized("Admin API is not enabled"))
		return
	}

	if req.Username != h.admin.Username {
		logger.Warn("Invalid login attempt", zap.String("username", req.Username))
		respondError(c, errors.ErrUnauthorized("Invalid username or password"))
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(h.admin.PasswordHash), []byte(req.Password)); err != nil {
		logger.Warn("Invalid login attempt", zap.String("username", req.Username))
		respondError(c, errors.ErrUnauthorized("Invalid username or password"))
		return
	}

	expirationHours := h.admin.TokenExpiration
	if req.RememberMe {
		expirationHours = RememberMeExpirationHours
	} else if expirationHours <= 0 {
		expirationHours = defaultExpirationHours
	}

	tokenString, expiresAt, err := h.issue(req.Username, time.Duration(expirationHours)*time.Hour)
	if err != nil {
		respondError(c, errors.ErrInternal("Failed to generate token", err))
		return
	}

	logger.Info("Admin logged in", zap.String("username", req.Username))
	c.JSON(http.StatusOK, LoginResponse{
		Token:     tokenString,
		ExpiresAt: expiresAt.Format(time.RFC3339),
	})
}

func (h *AuthHandler) issue(username string, ttl time.Duration) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(ttl)
	claims := &Claims{
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    consts.ServiceName,
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(h.admin.JWTSecret))
	return signed, expiresAt, err
}

// Me handles GET /api/v1/auth/me
func (h *AuthHandler) Me(c *gin.Context) {
	username, exists := c.Get(middleware.UsernameKey)
	if !exists {
		respondError(c, errors.ErrUnauthorized("Not authenticated"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"username": username})
}

// ValidateToken validates a JWT token and returns the username.
// Implements middleware.TokenValidator.
func (h *AuthHandler) ValidateToken(tokenString string) (string, error) {
	if h.admin == nil || h.admin.JWTSecret == "" {
		return "", fmt.Errorf("JWT secret not configured")
	}

	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (any, error) {
		return []byte(h.admin.JWTSecret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithIssuer(consts.ServiceName))
	if err != nil {
		return "", err
	}

	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims.Username, nil
	}
	return "", jwt.ErrSignatureInvalid
}
