package handler

import (
	"net/http"
	"runtime"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/skilltreedocs/skilltreedocs/consts"
	"github.com/skilltreedocs/skilltreedocs/internal/database"
	"github.com/skilltreedocs/skilltreedocs/internal/model"
	"github.com/skilltreedocs/skilltreedocs/internal/registry"
	"github.com/skilltreedocs/skilltreedocs/internal/store"
	"github.com/skilltreedocs/skilltreedocs/pkg/errors"
	"github.com/skilltreedocs/skilltreedocs/pkg/logger"
)

// AdminHandler serves the authenticated diagnostics API.
type AdminHandler struct {
	reg   *registry.Registry
	store store.Store
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(reg *registry.Registry, s store.Store) *AdminHandler {
	return &AdminHandler{reg: reg, store: s}
}

// MissingResponse lists diagram labels without a skill page.
type MissingResponse struct {
	Total int                      `json:"total"`
	Items []model.MissingReference `json:"items"`
}

// GetMissing handles GET /api/v1/admin/missing
func (h *AdminHandler) GetMissing(c *gin.Context) {
	items := h.reg.Missing()
	if items == nil {
		items = []model.MissingReference{}
	}
	c.JSON(http.StatusOK, MissingResponse{Total: len(items), Items: items})
}

// ServerStatusResponse represents the server status response
type ServerStatusResponse struct {
	Version     string         `json:"version"`
	BuildTime   string         `json:"build_time"`
	GitCommit   string         `json:"git_commit"`
	Uptime      int64          `json:"uptime"`     // seconds
	StartedAt   string         `json:"started_at"` // RFC3339
	GoVersion   string         `json:"go_version"`
	MemoryUsage int64          `json:"memory_usage"` // heap alloc, bytes
	Content     registry.Stats `json:"content"`
	Users       int64          `json:"users"`
	SkillValues int64          `json:"skill_values"`
	Database    string         `json:"database"`
}

// GetStatus handles GET /api/v1/admin/status
func (h *AdminHandler) GetStatus(c *gin.Context) {
	users, err := h.store.Users().Count()
	if err != nil {
		respondError(c, errors.Wrap(errors.ErrCodeDBQuery, "failed to count users", err))
		return
	}
	values, err := h.store.SkillValues().Count()
	if err != nil {
		respondError(c, errors.Wrap(errors.ErrCodeDBQuery, "failed to count skill values", err))
		return
	}

	dbStatus := "ok"
	if err := database.HealthCheck(); err != nil {
		logger.Warn("Database health check failed", zap.Error(err))
		dbStatus = "unavailable"
	}

	var memStats runtime.MemStats
	runtime.ReadMemStats(&memStats)

	c.JSON(http.StatusOK, ServerStatusResponse{
		Version:     consts.Version,
		BuildTime:   consts.BuildTime,
		GitCommit:   consts.GitCommit,
		Uptime:      int64(consts.GetUptime().Seconds()),
		StartedAt:   consts.GetStartedAt().Format(time.RFC3339),
		GoVersion:   runtime.Version(),
		MemoryUsage: int64(memStats.Alloc),
		Content:     h.reg.Stats(),
		Users:       users,
		SkillValues: values,
		Database:    dbStatus,
	})
}
