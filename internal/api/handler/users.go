package handler

import (
	stderrors "errors"
	"net/http"
	"net/url"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/skilltreedocs/skilltreedocs/internal/model"
	"github.com/skilltreedocs/skilltreedocs/internal/registry"
	"github.com/skilltreedocs/skilltreedocs/internal/store"
	"github.com/skilltreedocs/skilltreedocs/pkg/errors"
	"github.com/skilltreedocs/skilltreedocs/pkg/idgen"
	"github.com/skilltreedocs/skilltreedocs/pkg/logger"
	"github.com/skilltreedocs/skilltreedocs/pkg/telemetry"
)

// UsersHandler creates sessions and reports their progress.
type UsersHandler struct {
	reg   *registry.Registry
	store store.Store
}

// NewUsersHandler creates a new users handler
func NewUsersHandler(reg *registry.Registry, s store.Store) *UsersHandler {
	return &UsersHandler{reg: reg, store: s}
}

// CreateUserRequest is the body of POST /api/v1/users.
type CreateUserRequest struct {
	Name string `json:"name" binding:"required,max=128"`
}

// CreateUserResponse returns the session and the tab URLs bound to it.
type CreateUserResponse struct {
	ID      string   `json:"id"`
	Name    string   `json:"name"`
	Session string   `json:"session"`
	Tabs    []string `json:"tabs"`
}

// Create handles POST /api/v1/users
func (h *UsersHandler) Create(c *gin.Context) {
	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, errors.ErrValidation("name is required and must be at most 128 characters"))
		return
	}

	user := &model.User{
		ID:         idgen.NewUserID(),
		Name:       req.Name,
		Session:    idgen.NewSessionToken(),
		LastSeenAt: time.Now(),
	}
	if err := h.store.Users().Create(user); err != nil {
		respondError(c, errors.Wrap(errors.ErrCodeDBQuery, "failed to create user", err))
		return
	}
	telemetry.GetMetrics().RecordSessionCreated(c.Request.Context())
	logger.Info("User created", zap.String("user_id", user.ID))

	var tabs []string
	q := url.Values{SessionParam: {user.Session}}.Encode()
	for _, p := range h.reg.Packages() {
		for _, t := range p.Tabs {
			tabs = append(tabs, "/packages/"+p.Identifier+"/"+t.Identifier+"?"+q)
		}
	}

	c.JSON(http.StatusCreated, CreateUserResponse{
		ID:      user.ID,
		Name:    user.Name,
		Session: user.Session,
		Tabs:    tabs,
	})
}

// SkillValuesResponse lists a session's stored values.
type SkillValuesResponse struct {
	Name   string         `json:"name"`
	Values map[string]int `json:"values"`
}

// GetValues handles GET /api/v1/users/:session/skills
func (h *UsersHandler) GetValues(c *gin.Context) {
	session := c.Param("session")
	user, err := h.store.Users().GetBySession(session)
	if err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			respondError(c, errors.New(errors.ErrCodeSessionNotFound, "session not found"))
			return
		}
		respondError(c, errors.Wrap(errors.ErrCodeDBQuery, "failed to load session", err))
		return
	}
	values, err := h.store.SkillValues().ValuesBySession(session)
	if err != nil {
		respondError(c, errors.Wrap(errors.ErrCodeDBQuery, "failed to load skill values", err))
		return
	}
	c.JSON(http.StatusOK, SkillValuesResponse{Name: user.Name, Values: values})
}
