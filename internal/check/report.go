package check

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/fatih/color"

	"github.com/skilltreedocs/skilltreedocs/consts"
	"github.com/skilltreedocs/skilltreedocs/internal/registry"
)

// Report collects and displays check results
type Report struct {
	FileResults       []FileCheckResult
	ValidationResults []ValidationResult
	// Content is nil until content has been loaded.
	Content    *registry.Registry
	ContentErr error

	out io.Writer
}

// NewReport creates a new report
func NewReport() *Report {
	return &Report{
		FileResults:       make([]FileCheckResult, 0),
		ValidationResults: make([]ValidationResult, 0),
		out:               os.Stdout,
	}
}

// AddFileResult adds a file check result
func (r *Report) AddFileResult(result FileCheckResult) {
	r.FileResults = append(r.FileResults, result)
}

// AddValidationResult adds a validation result
func (r *Report) AddValidationResult(result ValidationResult) {
	r.ValidationResults = append(r.ValidationResults, result)
}

// SetContent records the outcome of loading the content tree.
func (r *Report) SetContent(reg *registry.Registry, err error) {
	r.Content = reg
	r.ContentErr = err
}

// ReportSummary holds the summary statistics
type ReportSummary struct {
	FilesCreated     int
	FilesMissing     int
	ValidationErrors int
	MissingSkills    int
	HasErrors        bool
	HasWarnings      bool
}

func (r *Report) calculateSummary() ReportSummary {
	summary := ReportSummary{}

	for _, result := range r.FileResults {
		if result.Created {
			summary.FilesCreated++
		}
		if !result.Exists {
			summary.FilesMissing++
			summary.HasErrors = true
		}
		if result.Error != nil {
			summary.HasErrors = true
		}
	}

	for _, result := range r.ValidationResults {
		if !result.Valid {
			summary.ValidationErrors++
			summary.HasErrors = true
		}
		if len(result.Warnings) > 0 {
			summary.HasWarnings = true
		}
	}

	if r.ContentErr != nil {
		summary.HasErrors = true
	}
	if r.Content != nil {
		summary.MissingSkills = len(r.Content.Missing())
		if summary.MissingSkills > 0 {
			summary.HasWarnings = true
		}
	}
	return summary
}

// HasErrors reports whether anything would prevent serving the site.
func (r *Report) HasErrors() bool {
	return r.calculateSummary().HasErrors
}

// Print prints the final summary line
func (r *Report) Print() {
	style := lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	fmt.Fprintln(r.out, style.Render(strings.Repeat("─", 50)))
	r.printSummary(r.calculateSummary())
}

func (r *Report) printSummary(summary ReportSummary) {
	green := color.New(color.FgGreen, color.Bold)
	yellow := color.New(color.FgYellow, color.Bold)
	red := color.New(color.FgRed, color.Bold)

	switch {
	case summary.HasErrors:
		red.Fprint(r.out, "✗ Check completed")
	case summary.HasWarnings:
		yellow.Fprint(r.out, "⚠ Check completed")
	default:
		green.Fprint(r.out, "✓ Check completed")
	}

	var details []string
	if summary.FilesCreated > 0 {
		details = append(details, fmt.Sprintf("%d file(s) created", summary.FilesCreated))
	}
	if summary.FilesMissing > 0 {
		details = append(details, fmt.Sprintf("%d file(s) missing", summary.FilesMissing))
	}
	if summary.ValidationErrors > 0 {
		details = append(details, fmt.Sprintf("%d validation error(s)", summary.ValidationErrors))
	}
	if r.ContentErr != nil {
		details = append(details, "content failed to load")
	}
	if summary.MissingSkills > 0 {
		details = append(details, fmt.Sprintf("%d missing skill page(s)", summary.MissingSkills))
	}

	if len(details) > 0 {
		fmt.Fprintf(r.out, " (%s)\n", strings.Join(details, ", "))
	} else {
		fmt.Fprintln(r.out, " - All checks passed")
	}
}

// PrintDetailedReport prints every section followed by the summary
func (r *Report) PrintDetailedReport() {
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("12")).
		Padding(0, 2).
		Width(50).
		Align(lipgloss.Center)
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("15"))

	fmt.Fprintln(r.out, boxStyle.Render(titleStyle.Render(consts.ProjectName+" Check Report")))
	fmt.Fprintln(r.out)

	r.printFileSection()
	fmt.Fprintln(r.out)
	r.printValidationSection()
	fmt.Fprintln(r.out)
	if r.Content != nil || r.ContentErr != nil {
		r.printContentSection()
		fmt.Fprintln(r.out)
	}
	r.Print()
}

func (r *Report) sectionTitle(title string) {
	style := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("14"))
	fmt.Fprintln(r.out, style.Render(title))
}

func (r *Report) printFileSection() {
	r.sectionTitle("Files")

	green := color.New(color.FgGreen)
	yellow := color.New(color.FgYellow)
	red := color.New(color.FgRed)

	for _, result := range r.FileResults {
		switch {
		case result.Error != nil:
			red.Fprintf(r.out, "  ✗ %s: %v\n", result.Path, result.Error)
		case result.Created:
			green.Fprintf(r.out, "  ✓ %s (created)\n", result.Path)
		case result.Exists:
			green.Fprintf(r.out, "  ✓ %s\n", result.Path)
		default:
			yellow.Fprintf(r.out, "  ⚠ %s does not exist\n", result.Path)
		}
	}
}

func (r *Report) printValidationSection() {
	r.sectionTitle("Configuration")

	green := color.New(color.FgGreen)
	red := color.New(color.FgRed)
	yellow := color.New(color.FgYellow)

	for _, result := range r.ValidationResults {
		if result.Valid {
			green.Fprintf(r.out, "  ✓ %s\n", result.Path)
		} else if result.Error != nil {
			red.Fprintf(r.out, "  ✗ %s: %v\n", result.Path, result.Error)
		}
		for _, warning := range result.Warnings {
			yellow.Fprintf(r.out, "    └─ %s\n", warning)
		}
	}
}

func (r *Report) printContentSection() {
	r.sectionTitle("Content")

	green := color.New(color.FgGreen)
	red := color.New(color.FgRed)
	yellow := color.New(color.FgYellow)
	dim := color.New(color.Faint)

	if r.ContentErr != nil {
		red.Fprintf(r.out, "  ✗ %v\n", r.ContentErr)
		return
	}

	st := r.Content.Stats()
	green.Fprintf(r.out, "  ✓ %d skill page(s), %d package(s), %d tab(s), %d shape(s)\n",
		st.Skills, st.Packages, st.Tabs, st.Shapes)

	for _, p := range r.Content.Packages() {
		fmt.Fprintf(r.out, "  %s\n", p.Identifier)
		if len(p.Tabs) == 0 {
			dim.Fprintln(r.out, "    (no tabs)")
		}
		for _, t := range p.Tabs {
			dim.Fprintf(r.out, "    └─ %s (%d shapes)\n", t.Identifier, t.Shapes)
		}
	}

	missing := r.Content.Missing()
	if len(missing) == 0 {
		return
	}
	yellow.Fprintf(r.out, "  ⚠ %d diagram label(s) without a skill page:\n", len(missing))
	for _, m := range missing {
		yellow.Fprintf(r.out, "    └─ %s/%s: %q\n", m.PackageIdentifier, m.TabIdentifier, m.RawLabel)
	}
}
