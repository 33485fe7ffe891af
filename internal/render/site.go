package render

import (
	"go.uber.org/zap"

	"github.com/skilltreedocs/skilltreedocs/internal/registry"
	"github.com/skilltreedocs/skilltreedocs/pkg/logger"
)

// RegisterSite compiles every skill page and tab held by reg. The first
// template that fails to compile aborts registration.
func (e *Engine) RegisterSite(reg *registry.Registry) error {
	for _, s := range reg.Skills() {
		if err := e.Register(SkillTemplate(s.Identifier), s.Content); err != nil {
			return err
		}
	}
	tabs := 0
	for _, p := range reg.Packages() {
		for _, t := range p.Tabs {
			if err := e.Register(TabTemplate(p.Identifier, t.Identifier), t.Content); err != nil {
				return err
			}
			tabs++
		}
	}
	logger.Info("Templates compiled",
		zap.Int("skills", len(reg.Skills())),
		zap.Int("tabs", tabs),
	)
	return nil
}
