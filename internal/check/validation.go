package check

import (
	"context"
	"fmt"

	"github.com/skilltreedocs/skilltreedocs/internal/config"
	"github.com/skilltreedocs/skilltreedocs/internal/loader"
	"github.com/skilltreedocs/skilltreedocs/internal/registry"
)

// ValidationResult is the outcome of one validation step.
type ValidationResult struct {
	Path     string
	Valid    bool
	Error    error
	Warnings []string
}

// validateConfigFile loads and validates the configuration at path.
func validateConfigFile(path string) (*config.Config, ValidationResult) {
	result := ValidationResult{Path: path}

	cfg, err := config.Load(path)
	if err != nil {
		result.Error = err
		return nil, result
	}
	if appErr := config.Validate(cfg); appErr != nil {
		result.Error = appErr
		return nil, result
	}

	result.Valid = true
	if cfg.Admin == nil || !cfg.Admin.Enabled {
		result.Warnings = append(result.Warnings, "admin API is disabled")
	}
	if cfg.Server.Debug {
		result.Warnings = append(result.Warnings, "server.debug exposes internal error details")
	}
	return cfg, result
}

// checkContentDirs verifies the configured content directories exist.
func checkContentDirs(c config.ContentConfig) []ValidationResult {
	dirs := []struct {
		path     string
		name     string
		optional bool
	}{
		{c.PagesDir, "content.pages_dir", false},
		{c.PackagesDir, "content.packages_dir", false},
		{c.StaticDir, "content.static_dir", true},
	}

	var results []ValidationResult
	for _, d := range dirs {
		if d.optional && d.path == "" {
			continue
		}
		r := ValidationResult{Path: d.path, Valid: true}
		if !dirExists(d.path) {
			if d.optional {
				r.Warnings = append(r.Warnings, fmt.Sprintf("%s %s not found, the built-in stylesheet is served", d.name, d.path))
			} else {
				r.Valid = false
				r.Error = fmt.Errorf("%s %s is not a directory", d.name, d.path)
			}
		}
		results = append(results, r)
	}
	return results
}

func loadContent(ctx context.Context, c config.ContentConfig) (*registry.Registry, error) {
	return loader.New(loader.OptionsFromConfig(c)).Load(ctx)
}
