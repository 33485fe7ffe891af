package skilltree

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/net/html"

	"github.com/skilltreedocs/skilltreedocs/internal/model"
	apperrors "github.com/skilltreedocs/skilltreedocs/pkg/errors"
	"github.com/skilltreedocs/skilltreedocs/pkg/logger"
	"github.com/skilltreedocs/skilltreedocs/pkg/telemetry"
)

// TabSource is one diagram to transform.
type TabSource struct {
	Package string
	Tab     string
	Markup  []byte
}

// Result is the outcome of transforming one tab.
type Result struct {
	// Content is the template artifact stored as the tab's content.
	Content string
	// Shapes is the number of rects located in the diagram.
	Shapes int
	// Annotated is the number of shapes bound to a non-empty identifier.
	Annotated int
	// Missing lists annotated shapes whose identifier is not a known skill.
	Missing []model.MissingReference
}

// Transformer rewrites diagrams against a fixed set of known skills. It holds
// no per-tab state, so one instance may transform many tabs concurrently.
type Transformer struct {
	known     SkillSet
	collector *Collector
	path      LabelPath
	skeleton  Skeleton
	endpoints Endpoints
}

// Option configures a Transformer.
type Option func(*Transformer)

// WithLabelPath overrides the label nesting convention.
func WithLabelPath(p LabelPath) Option {
	return func(t *Transformer) { t.path = p }
}

// WithSkeleton overrides the page skeleton wrapped around each tab.
func WithSkeleton(s Skeleton) Option {
	return func(t *Transformer) { t.skeleton = s }
}

// WithEndpoints overrides the URLs used by the injected controls.
func WithEndpoints(ep Endpoints) Option {
	return func(t *Transformer) { t.endpoints = ep }
}

// NewTransformer creates a Transformer. collector may be nil when the caller
// only needs per-tab results.
func NewTransformer(known SkillSet, collector *Collector, opts ...Option) *Transformer {
	t := &Transformer{
		known:     known,
		collector: collector,
		path:      DefaultLabelPath,
		skeleton:  TabSkeleton,
		endpoints: DefaultEndpoints,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Transform runs both passes over one diagram. A StructuralViolation is
// returned wrapped in an E7001 AppError and nothing is collected for the tab.
func (t *Transformer) Transform(ctx context.Context, src TabSource) (*Result, error) {
	ctx, span := telemetry.StartSpan(ctx, "skilltree.Transform", telemetry.WithTabAttributes(src.Package, src.Tab))
	defer span.End()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	doc, err := html.Parse(bytes.NewReader(src.Markup))
	if err != nil {
		telemetry.SetSpanError(span, err)
		return nil, apperrors.Wrap(apperrors.ErrCodeContentLoad,
			fmt.Sprintf("failed to parse tab %s/%s", src.Package, src.Tab), err)
	}

	refs, err := LocateLabels(doc, t.path)
	if err != nil {
		var sv *StructuralViolation
		if errors.As(err, &sv) {
			sv.Package, sv.Tab = src.Package, src.Tab
		}
		telemetry.SetSpanError(span, err)
		return nil, apperrors.Wrap(apperrors.ErrCodeStructuralViolation,
			fmt.Sprintf("tab %s/%s does not follow the label convention %q", src.Package, src.Tab, t.path.String()), err).
			WithDetails(sv)
	}

	protectSource(doc)
	table, missing := annotate(refs, t.known, src.Package, src.Tab)
	injectControls(table, t.endpoints)

	body, err := renderBody(doc)
	if err != nil {
		telemetry.SetSpanError(span, err)
		return nil, apperrors.Wrap(apperrors.ErrCodeContentLoad,
			fmt.Sprintf("failed to serialize tab %s/%s", src.Package, src.Tab), err)
	}

	if t.collector != nil {
		t.collector.AddAll(missing)
	}

	telemetry.SetSpanAttributes(span,
		telemetry.AttrShapesCount.Int(table.len()),
		telemetry.AttrMissingCount.Int(len(missing)),
	)
	logger.ForTab(src.Package, src.Tab).Debug("Tab transformed",
		zap.Int("shapes", len(refs)),
		zap.Int("annotated", table.len()),
		zap.Int("missing", len(missing)),
	)

	return &Result{
		Content:   t.skeleton.Fill(body),
		Shapes:    len(refs),
		Annotated: table.len(),
		Missing:   missing,
	}, nil
}
