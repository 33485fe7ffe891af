package handler

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/skilltreedocs/skilltreedocs/consts"
	"github.com/skilltreedocs/skilltreedocs/internal/registry"
	"github.com/skilltreedocs/skilltreedocs/internal/store"
	"github.com/skilltreedocs/skilltreedocs/pkg/errors"
	"github.com/skilltreedocs/skilltreedocs/pkg/logger"
	"github.com/skilltreedocs/skilltreedocs/pkg/telemetry"
)

// Skill update outcomes reported to metrics.
const (
	updateOK       = "ok"
	updateRejected = "rejected"
	updateFailed   = "failed"
)

// UpdateHandler receives slider changes from rendered tabs.
type UpdateHandler struct {
	reg   *registry.Registry
	store store.Store
}

// NewUpdateHandler creates a new update handler
func NewUpdateHandler(reg *registry.Registry, s store.Store) *UpdateHandler {
	return &UpdateHandler{reg: reg, store: s}
}

// UpdateResponse echoes the stored value.
type UpdateResponse struct {
	Skill string `json:"skill"`
	Value int    `json:"value"`
}

// Update handles PUT /update?u=<session>&s=<skill>&v=<value>
func (h *UpdateHandler) Update(c *gin.Context) {
	ctx := c.Request.Context()
	metrics := telemetry.GetMetrics()

	skill, value, appErr := h.validate(c)
	if appErr != nil {
		metrics.RecordSkillUpdate(ctx, updateRejected)
		respondError(c, appErr)
		return
	}
	session := c.Query(SessionParam)

	if err := h.store.SkillValues().Upsert(session, skill, value); err != nil {
		metrics.RecordSkillUpdate(ctx, updateFailed)
		respondError(c, errors.Wrap(errors.ErrCodeDBQuery, "failed to store skill value", err))
		return
	}
	if err := h.store.Users().Touch(session, time.Now()); err != nil {
		logger.Warn("Failed to record session activity", zap.Error(err))
	}

	metrics.RecordSkillUpdate(ctx, updateOK)
	logger.Debug("Skill value updated", zap.String(logger.FieldSkill, skill), zap.Int("value", value))
	c.JSON(http.StatusOK, UpdateResponse{Skill: skill, Value: value})
}

func (h *UpdateHandler) validate(c *gin.Context) (string, int, *errors.AppError) {
	session := c.Query(SessionParam)
	rawSkill := c.Query("s")
	rawValue := c.Query("v")
	if session == "" || rawSkill == "" || rawValue == "" {
		return "", 0, errors.ErrValidation("query parameters u, s and v are required")
	}

	if _, err := h.store.Users().GetBySession(session); err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return "", 0, errors.New(errors.ErrCodeSessionNotFound, "session not found")
		}
		return "", 0, errors.Wrap(errors.ErrCodeDBQuery, "failed to load session", err)
	}

	skill, ok := lookupSkillID(rawSkill, h.reg.HasSkill)
	if !ok {
		return "", 0, errors.New(errors.ErrCodeSkillUnknown, fmt.Sprintf("skill %q not found", rawSkill))
	}

	value, err := strconv.Atoi(rawValue)
	if err != nil || value < consts.MinSkillValue || value > consts.MaxSkillValue {
		return "", 0, errors.New(errors.ErrCodeValueOutOfRange,
			fmt.Sprintf("v must be an integer between %d and %d", consts.MinSkillValue, consts.MaxSkillValue))
	}
	return skill, value, nil
}
