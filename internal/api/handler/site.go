package handler

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/skilltreedocs/skilltreedocs/consts"
	"github.com/skilltreedocs/skilltreedocs/internal/registry"
	"github.com/skilltreedocs/skilltreedocs/internal/render"
	"github.com/skilltreedocs/skilltreedocs/internal/skilltree"
	"github.com/skilltreedocs/skilltreedocs/internal/store"
	"github.com/skilltreedocs/skilltreedocs/pkg/errors"
	"github.com/skilltreedocs/skilltreedocs/pkg/logger"
	"github.com/skilltreedocs/skilltreedocs/pkg/telemetry"
)

// Page kinds reported to the render metrics.
const (
	pageSkill   = "skill"
	pageTab     = "tab"
	pageMissing = "missing"
)

// SiteHandler serves the content loaded at startup.
type SiteHandler struct {
	reg    *registry.Registry
	engine *render.Engine
	store  store.Store
}

// NewSiteHandler creates a new site handler
func NewSiteHandler(reg *registry.Registry, engine *render.Engine, s store.Store) *SiteHandler {
	return &SiteHandler{reg: reg, engine: engine, store: s}
}

// Index handles GET /
func (h *SiteHandler) Index(c *gin.Context) {
	c.String(http.StatusOK, "Welcome to %s. Try the /skills and /packages routes for the available paths.", consts.ServiceName)
}

// SkillSummary is one entry of GET /skills.
type SkillSummary struct {
	Identifier string `json:"identifier"`
	Title      string `json:"title"`
	URL        string `json:"url"`
}

// ListSkills handles GET /skills
func (h *SiteHandler) ListSkills(c *gin.Context) {
	skills := h.reg.Skills()
	out := make([]SkillSummary, 0, len(skills))
	for _, s := range skills {
		out = append(out, SkillSummary{
			Identifier: s.Identifier,
			Title:      s.Title,
			URL:        skilltree.DefaultEndpoints.SkillPrefix + s.Identifier,
		})
	}
	c.JSON(http.StatusOK, out)
}

// GetSkill handles GET /skills/:skill
func (h *SiteHandler) GetSkill(c *gin.Context) {
	id, ok := lookupSkillID(c.Param("skill"), h.reg.HasSkill)
	if !ok {
		respondError(c, errors.New(errors.ErrCodeSkillUnknown, fmt.Sprintf("skill %q not found", c.Param("skill"))))
		return
	}
	skill, _ := h.reg.Skill(id)

	out, err := h.engine.Render(render.SkillTemplate(id), render.Context{
		"skill":      skill.Title,
		"identifier": skill.Identifier,
	})
	telemetry.GetMetrics().RecordPageRender(c.Request.Context(), pageSkill, err == nil)
	if err != nil {
		respondError(c, err)
		return
	}
	renderHTML(c, out)
}

// TabSummary is one tab of a PackageSummary.
type TabSummary struct {
	Identifier string `json:"identifier"`
	Shapes     int    `json:"shapes"`
	URL        string `json:"url"`
}

// PackageSummary is one entry of GET /packages.
type PackageSummary struct {
	Identifier string       `json:"identifier"`
	Tabs       []TabSummary `json:"tabs"`
}

// ListPackages handles GET /packages
func (h *SiteHandler) ListPackages(c *gin.Context) {
	packages := h.reg.Packages()
	out := make([]PackageSummary, 0, len(packages))
	for _, p := range packages {
		ps := PackageSummary{Identifier: p.Identifier, Tabs: make([]TabSummary, 0, len(p.Tabs))}
		for _, t := range p.Tabs {
			ps.Tabs = append(ps.Tabs, TabSummary{
				Identifier: t.Identifier,
				Shapes:     t.Shapes,
				URL:        "/packages/" + p.Identifier + "/" + t.Identifier,
			})
		}
		out = append(out, ps)
	}
	c.JSON(http.StatusOK, out)
}

// GetTab handles GET /packages/:package/:tab?u=<session>
// The tab is rendered with the session's stored skill values.
func (h *SiteHandler) GetTab(c *gin.Context) {
	pkgID, tabID := c.Param("package"), c.Param("tab")
	pkg, ok := h.reg.Package(pkgID)
	if !ok {
		respondError(c, errors.ErrNotFound(fmt.Sprintf("package %s", pkgID)))
		return
	}
	if _, ok := pkg.Tab(tabID); !ok {
		respondError(c, errors.ErrNotFound(fmt.Sprintf("tab %s/%s", pkgID, tabID)))
		return
	}

	session := c.Query(SessionParam)
	if session == "" {
		respondError(c, errors.ErrValidation("query parameter u (session) is required"))
		return
	}
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
	if err := h.store.Users().Touch(session, time.Now()); err != nil {
		logger.Warn("Failed to record session activity", zap.Error(err))
	}

	tabs := make([]string, 0, len(pkg.Tabs))
	for _, t := range pkg.Tabs {
		tabs = append(tabs, t.Identifier)
	}

	out, err := h.engine.Render(render.TabTemplate(pkgID, tabID), render.Context{
		"username":           user.Name,
		skilltree.SessionVar: session,
		"package":            pkgID,
		"tab":                tabID,
		"tabs":               tabs,
		skilltree.SkillsVar:  skilltree.ContextValues(values),
	})
	telemetry.GetMetrics().RecordPageRender(c.Request.Context(), pageTab, err == nil)
	if err != nil {
		respondError(c, err)
		return
	}
	renderHTML(c, out)
}

// Missing handles GET /missing
func (h *SiteHandler) Missing(c *gin.Context) {
	out, err := h.engine.RenderLayout(render.LayoutMissing, render.Context{
		"missings": h.reg.Missing(),
	})
	telemetry.GetMetrics().RecordPageRender(c.Request.Context(), pageMissing, err == nil)
	if err != nil {
		respondError(c, err)
		return
	}
	renderHTML(c, out)
}
