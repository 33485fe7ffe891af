// Package check validates a site before it is served: the configuration file,
// the content directories, and every page and diagram in them.
package check

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/fatih/color"

	"github.com/skilltreedocs/skilltreedocs/consts"
	"github.com/skilltreedocs/skilltreedocs/internal/registry"
)

// CheckResult represents the result of a non-interactive check
type CheckResult struct {
	// Success indicates whether all required checks passed
	Success bool
	// Errors contains problems that prevent server startup
	Errors []string
	// Warnings contains issues that don't block startup
	Warnings []string
	// Suggestions contains tips for fixing issues
	Suggestions []string
}

// Checker runs the site check.
type Checker struct {
	configPath string
	out        io.Writer
	report     *Report
	theme      *huh.Theme
	// confirm asks before a file is created. Replaced in tests.
	confirm func(path string) (bool, error)
}

// NewChecker creates a checker for the configuration at configPath.
func NewChecker(configPath string) *Checker {
	c := &Checker{
		configPath: configPath,
		out:        os.Stdout,
		report:     NewReport(),
		theme:      huh.ThemeCharm(),
	}
	c.confirm = c.confirmCreate
	return c
}

// SetOutput redirects everything the checker prints.
func (c *Checker) SetOutput(w io.Writer) {
	c.out = w
	c.report.out = w
}

// Run checks the configuration file, offering to create it from the example,
// then loads the content and prints a report. It returns the loaded registry
// and an error when any check failed.
func (c *Checker) Run(ctx context.Context, interactive bool) (*registry.Registry, error) {
	c.printHeader()

	fmt.Fprintln(c.out)
	c.printSection("Checking configuration file")
	file := c.checkConfigFile(interactive)
	c.report.AddFileResult(file)
	if !file.Exists {
		fmt.Fprintln(c.out)
		c.report.PrintDetailedReport()
		return nil, fmt.Errorf("configuration file %s not found", c.configPath)
	}

	fmt.Fprintln(c.out)
	c.printSection("Validating configuration")
	cfg, validation := validateConfigFile(c.configPath)
	c.report.AddValidationResult(validation)
	if !validation.Valid {
		c.report.PrintDetailedReport()
		return nil, validation.Error
	}
	for _, dir := range checkContentDirs(cfg.Content) {
		c.report.AddValidationResult(dir)
	}

	fmt.Fprintln(c.out)
	c.printSection("Loading content")
	reg, err := loadContent(ctx, cfg.Content)
	c.report.SetContent(reg, err)

	fmt.Fprintln(c.out)
	c.report.PrintDetailedReport()
	if err != nil {
		return nil, err
	}
	if c.report.HasErrors() {
		return reg, fmt.Errorf("site check failed")
	}
	return reg, nil
}

func (c *Checker) printHeader() {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("12")).
		MarginBottom(1)

	fmt.Fprintln(c.out, titleStyle.Render(consts.ProjectName+" site check"))
}

func (c *Checker) printSection(title string) {
	style := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("15"))
	fmt.Fprintln(c.out, style.Render(title+"..."))
}

// RunNonInteractive checks the configuration without prompting or creating
// files. Content is not loaded; serve does that itself.
func RunNonInteractive(configPath string) *CheckResult {
	result := &CheckResult{
		Success:     true,
		Errors:      make([]string, 0),
		Warnings:    make([]string, 0),
		Suggestions: make([]string, 0),
	}

	if !fileExists(configPath) {
		result.Success = false
		result.Errors = append(result.Errors, fmt.Sprintf("Configuration not found: %s", configPath))
		result.Suggestions = append(result.Suggestions,
			fmt.Sprintf("Run '%s check --init' to create it from the example", consts.ServiceName))
		return result
	}

	cfg, validation := validateConfigFile(configPath)
	if !validation.Valid {
		result.Success = false
		result.Errors = append(result.Errors, fmt.Sprintf("Invalid %s: %v", configPath, validation.Error))
		return result
	}
	result.Warnings = append(result.Warnings, validation.Warnings...)

	for _, dir := range checkContentDirs(cfg.Content) {
		if !dir.Valid {
			result.Success = false
			result.Errors = append(result.Errors, dir.Error.Error())
		}
		result.Warnings = append(result.Warnings, dir.Warnings...)
	}
	if !result.Success {
		result.Suggestions = append(result.Suggestions,
			"Create the content directories or point content.pages_dir and content.packages_dir at them")
	}
	return result
}

// PrintCheckResult prints the check result in a formatted way
func PrintCheckResult(w io.Writer, result *CheckResult) {
	red := color.New(color.FgRed)
	yellow := color.New(color.FgYellow)
	cyan := color.New(color.FgCyan)

	if len(result.Errors) > 0 {
		fmt.Fprintln(w)
		red.Fprintln(w, "[ERROR] Site check failed")
		fmt.Fprintln(w)
		for _, err := range result.Errors {
			red.Fprintf(w, "  ✗ %s\n", err)
		}
	}

	if len(result.Warnings) > 0 {
		fmt.Fprintln(w)
		yellow.Fprintln(w, "[WARNING] Configuration warnings:")
		fmt.Fprintln(w)
		for _, warn := range result.Warnings {
			yellow.Fprintf(w, "  ⚠ %s\n", warn)
		}
	}

	if len(result.Suggestions) > 0 {
		cyan.Fprintln(w, "\nTo fix these issues:")
		for _, suggestion := range result.Suggestions {
			fmt.Fprintf(w, "  → %s\n", suggestion)
		}
	}

	fmt.Fprintln(w)
}
