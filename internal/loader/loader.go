// Package loader reads the content tree once at startup and produces the
// immutable registry served by the HTTP layer.
package loader

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path"
	"runtime"
	"sort"
	"strings"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/skilltreedocs/skilltreedocs/internal/config"
	"github.com/skilltreedocs/skilltreedocs/internal/markdown"
	"github.com/skilltreedocs/skilltreedocs/internal/model"
	"github.com/skilltreedocs/skilltreedocs/internal/registry"
	"github.com/skilltreedocs/skilltreedocs/internal/skilltree"
	apperrors "github.com/skilltreedocs/skilltreedocs/pkg/errors"
	"github.com/skilltreedocs/skilltreedocs/pkg/logger"
	"github.com/skilltreedocs/skilltreedocs/pkg/telemetry"
)

// Default glob patterns, relative to the pages directory and to each package
// directory respectively.
const (
	DefaultPagePattern = "*.md"
	DefaultTabPattern  = "*.svg"
)

// Options configures a Loader.
type Options struct {
	PagesDir    string
	PackagesDir string
	PagePattern string
	TabPattern  string
	// Concurrency bounds the number of files processed at once. Zero means
	// one per CPU.
	Concurrency int
	LabelPath   skilltree.LabelPath
	Endpoints   skilltree.Endpoints
}

// OptionsFromConfig maps the content section of the configuration.
func OptionsFromConfig(c config.ContentConfig) Options {
	opts := Options{
		PagesDir:    c.PagesDir,
		PackagesDir: c.PackagesDir,
		PagePattern: c.PagePattern,
		TabPattern:  c.TabPattern,
		Concurrency: c.LoadConcurrency,
	}
	if len(c.LabelPath) > 0 {
		opts.LabelPath = skilltree.LabelPath(c.LabelPath)
	}
	return opts
}

// Loader builds a registry from Markdown pages and SVG diagrams.
type Loader struct {
	opts  Options
	pages fs.FS
	pkgs  fs.FS
	md    *markdown.Renderer
}

// New creates a Loader reading from the directories in opts.
func New(opts Options) *Loader {
	return NewFS(os.DirFS(opts.PagesDir), os.DirFS(opts.PackagesDir), opts)
}

// NewFS creates a Loader over arbitrary file systems. The directory fields of
// opts are only used in messages.
func NewFS(pages, packages fs.FS, opts Options) *Loader {
	if opts.PagePattern == "" {
		opts.PagePattern = DefaultPagePattern
	}
	if opts.TabPattern == "" {
		opts.TabPattern = DefaultTabPattern
	}
	if opts.Concurrency <= 0 {
		opts.Concurrency = runtime.NumCPU()
	}
	if len(opts.LabelPath) == 0 {
		opts.LabelPath = skilltree.DefaultLabelPath
	}
	if opts.Endpoints == (skilltree.Endpoints{}) {
		opts.Endpoints = skilltree.DefaultEndpoints
	}
	return &Loader{opts: opts, pages: pages, pkgs: packages, md: markdown.New()}
}

// Load reads every skill page, then transforms every tab against the loaded
// skill set. Any structural violation aborts the load.
func (l *Loader) Load(ctx context.Context) (*registry.Registry, error) {
	ctx, span := telemetry.StartSpan(ctx, "loader.Load")
	defer span.End()

	start := time.Now()
	metrics := telemetry.GetMetrics()

	skills, err := l.loadSkills(ctx)
	if err != nil {
		telemetry.SetSpanError(span, err)
		metrics.RecordContentLoad(ctx, false, 0, 0, 0, time.Since(start).Seconds())
		return nil, err
	}

	known := make([]string, 0, len(skills))
	for _, s := range skills {
		known = append(known, s.Identifier)
	}
	collector := skilltree.NewCollector()

	packages, err := l.loadPackages(ctx, skilltree.NewSkillSet(known...), collector)
	if err != nil {
		telemetry.SetSpanError(span, err)
		metrics.RecordContentLoad(ctx, false, len(skills), 0, 0, time.Since(start).Seconds())
		return nil, err
	}

	missing := collector.Snapshot()
	sort.SliceStable(missing, func(i, j int) bool {
		if missing[i].PackageIdentifier != missing[j].PackageIdentifier {
			return missing[i].PackageIdentifier < missing[j].PackageIdentifier
		}
		return missing[i].TabIdentifier < missing[j].TabIdentifier
	})

	reg := registry.New(skills, packages, missing)
	st := reg.Stats()
	metrics.RecordContentLoad(ctx, true, st.Skills, st.Tabs, st.Missing, time.Since(start).Seconds())
	telemetry.SetSpanAttributes(span,
		telemetry.AttrKnownSkills.Int(st.Skills),
		telemetry.AttrMissingCount.Int(st.Missing),
	)
	telemetry.SetSpanOK(span)

	logger.Info("Content loaded",
		zap.Int("skills", st.Skills),
		zap.Int("packages", st.Packages),
		zap.Int("tabs", st.Tabs),
		zap.Int("missing", st.Missing),
		zap.Duration("duration", time.Since(start)),
	)
	return reg, nil
}

type page struct {
	path  string
	skill model.Skill
}

func (l *Loader) loadSkills(ctx context.Context) ([]model.Skill, error) {
	if _, err := fs.Stat(l.pages, "."); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeContentLoad,
			fmt.Sprintf("pages directory %s is not readable", l.opts.PagesDir), err)
	}
	paths, err := doublestar.Glob(l.pages, l.opts.PagePattern, doublestar.WithFilesOnly())
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeContentLoad,
			fmt.Sprintf("failed to list pages in %s", l.opts.PagesDir), err)
	}
	sort.Strings(paths)

	pages := make([]page, len(paths))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(l.opts.Concurrency)
	for i, p := range paths {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			skill, err := l.loadSkill(p)
			if err != nil {
				return err
			}
			pages[i] = page{path: p, skill: skill}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	seen := make(map[string]string, len(pages))
	skills := make([]model.Skill, 0, len(pages))
	for _, pg := range pages {
		id := pg.skill.Identifier
		if id == "" {
			logger.Warn("Skipping page with empty identifier", zap.String("path", pg.path))
			continue
		}
		if prev, ok := seen[id]; ok {
			logger.Warn("Skipping page with duplicate identifier",
				zap.String("path", pg.path),
				zap.String("kept", prev),
				zap.String(logger.FieldSkill, id),
			)
			continue
		}
		seen[id] = pg.path
		skills = append(skills, pg.skill)
	}
	return skills, nil
}

func (l *Loader) loadSkill(p string) (model.Skill, error) {
	source, err := fs.ReadFile(l.pages, p)
	if err != nil {
		return model.Skill{}, apperrors.Wrap(apperrors.ErrCodeContentLoad,
			fmt.Sprintf("failed to read page %s", p), err)
	}
	stem := stem(p)
	content, err := skilltree.BuildSkillPage(l.md, source, skilltree.SkillSkeleton)
	if err != nil {
		return model.Skill{}, err
	}
	title := l.md.Title(source)
	if title == "" {
		title = stem
	}
	return model.Skill{
		Identifier: skilltree.Normalize(stem),
		Title:      title,
		Content:    content,
	}, nil
}

func (l *Loader) loadPackages(ctx context.Context, known skilltree.SkillSet, collector *skilltree.Collector) ([]model.Package, error) {
	entries, err := fs.ReadDir(l.pkgs, ".")
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeContentLoad,
			fmt.Sprintf("failed to list packages in %s", l.opts.PackagesDir), err)
	}

	transformer := skilltree.NewTransformer(known, collector,
		skilltree.WithLabelPath(l.opts.LabelPath),
		skilltree.WithEndpoints(l.opts.Endpoints),
	)

	// Every package is listed before any tab is transformed, so a listing
	// error returns with no transform in flight.
	var packages []model.Package
	var files [][]string
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		dir := entry.Name()
		tabs, err := l.listTabs(dir)
		if err != nil {
			return nil, err
		}
		packages = append(packages, model.Package{Identifier: dir, Tabs: make([]model.Tab, len(tabs))})
		files = append(files, tabs)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(l.opts.Concurrency)
	for p := range packages {
		dir, tabs := packages[p].Identifier, packages[p].Tabs
		for i, f := range files[p] {
			g.Go(func() error {
				tab, err := l.loadTab(gctx, transformer, dir, f)
				if err != nil {
					return err
				}
				tabs[i] = tab
				return nil
			})
		}
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return packages, nil
}

// listTabs returns the sorted tab files of one package, relative to the
// packages root.
func (l *Loader) listTabs(dir string) ([]string, error) {
	sub, err := fs.Sub(l.pkgs, dir)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeContentLoad,
			fmt.Sprintf("failed to open package %s", dir), err)
	}
	files, err := doublestar.Glob(sub, l.opts.TabPattern, doublestar.WithFilesOnly(), doublestar.WithFailOnIOErrors())
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeContentLoad,
			fmt.Sprintf("failed to list tabs in package %s", dir), err)
	}
	sort.Strings(files)
	for i, f := range files {
		files[i] = path.Join(dir, f)
	}
	return files, nil
}

func (l *Loader) loadTab(ctx context.Context, tr *skilltree.Transformer, pkg, file string) (model.Tab, error) {
	markup, err := fs.ReadFile(l.pkgs, file)
	if err != nil {
		return model.Tab{}, apperrors.Wrap(apperrors.ErrCodeContentLoad,
			fmt.Sprintf("failed to read tab %s", file), err)
	}
	id := stem(file)
	res, err := tr.Transform(ctx, skilltree.TabSource{Package: pkg, Tab: id, Markup: markup})
	if err != nil {
		return model.Tab{}, err
	}
	telemetry.GetMetrics().RecordTabTransformed(ctx, pkg, res.Annotated)
	return model.Tab{Identifier: id, Content: res.Content, Shapes: res.Annotated}, nil
}

func stem(p string) string {
	base := path.Base(p)
	return strings.TrimSuffix(base, path.Ext(base))
}
