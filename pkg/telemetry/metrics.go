// Package telemetry provides OpenTelemetry integration for the application.
package telemetry

import (
	"context"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"

	"github.com/skilltreedocs/skilltreedocs/pkg/logger"
)

// MeterName is the meter name for the application
const MeterName = "github.com/skilltreedocs/skilltreedocs"

// Metrics holds all application metrics. Every Record method is a no-op for
// instruments that failed to initialize.
type Metrics struct {
	// Content load metrics
	ContentLoadsTotal   metric.Int64Counter
	ContentLoadDuration metric.Float64Histogram
	TabsLoaded          metric.Int64Counter
	SkillsLoaded        metric.Int64Counter
	ShapesAnnotated     metric.Int64Counter
	MissingReferences   metric.Int64Counter

	// Page and update metrics
	PageRendersTotal  metric.Int64Counter
	SkillUpdatesTotal metric.Int64Counter

	// Session metrics
	SessionsCreated metric.Int64Counter
	SessionsPurged  metric.Int64Counter

	// HTTP metrics
	HTTPRequestsTotal   metric.Int64Counter
	HTTPRequestDuration metric.Float64Histogram
}

var (
	globalMetrics *Metrics
	metricsOnce   sync.Once
)

// GetMetrics returns the global metrics instance, initializing it if necessary
func GetMetrics() *Metrics {
	metricsOnce.Do(func() {
		var err error
		globalMetrics, err = initMetrics()
		if err != nil {
			logger.Error("Failed to initialize metrics", zap.Error(err))
			globalMetrics = &Metrics{}
		}
	})
	return globalMetrics
}

func initMetrics() (*Metrics, error) {
	meter := otel.Meter(MeterName)
	m := &Metrics{}
	var err error

	counters := []struct {
		dst  *metric.Int64Counter
		name string
		desc string
		unit string
	}{
		{&m.ContentLoadsTotal, "skilltree_content_loads_total", "Number of content load passes", "{load}"},
		{&m.TabsLoaded, "skilltree_tabs_loaded_total", "Number of tabs transformed", "{tab}"},
		{&m.SkillsLoaded, "skilltree_skills_loaded_total", "Number of skill pages loaded", "{skill}"},
		{&m.ShapesAnnotated, "skilltree_shapes_annotated_total", "Number of diagram shapes bound to a skill", "{shape}"},
		{&m.MissingReferences, "skilltree_missing_references_total", "Number of diagram labels that match no skill page", "{reference}"},
		{&m.PageRendersTotal, "skilltree_page_renders_total", "Number of rendered pages", "{page}"},
		{&m.SkillUpdatesTotal, "skilltree_skill_updates_total", "Number of skill value updates", "{update}"},
		{&m.SessionsCreated, "skilltree_sessions_created_total", "Number of sessions created", "{session}"},
		{&m.SessionsPurged, "skilltree_sessions_purged_total", "Number of idle sessions removed", "{session}"},
		{&m.HTTPRequestsTotal, "skilltree_http_requests_total", "Total number of HTTP requests", "{request}"},
	}
	for _, c := range counters {
		*c.dst, err = meter.Int64Counter(c.name, metric.WithDescription(c.desc), metric.WithUnit(c.unit))
		if err != nil {
			return nil, err
		}
	}

	m.ContentLoadDuration, err = meter.Float64Histogram(
		"skilltree_content_load_duration_seconds",
		metric.WithDescription("Duration of content load passes in seconds"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30),
	)
	if err != nil {
		return nil, err
	}

	m.HTTPRequestDuration, err = meter.Float64Histogram(
		"skilltree_http_request_duration_seconds",
		metric.WithDescription("Duration of HTTP requests in seconds"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10),
	)
	if err != nil {
		return nil, err
	}

	logger.Info("Metrics initialized successfully")
	return m, nil
}

// RecordContentLoad records a finished load pass with its totals.
func (m *Metrics) RecordContentLoad(ctx context.Context, success bool, skills, tabs, missing int, durationSeconds float64) {
	if m.ContentLoadsTotal != nil {
		m.ContentLoadsTotal.Add(ctx, 1, metric.WithAttributes(attribute.Bool("success", success)))
	}
	if m.ContentLoadDuration != nil {
		m.ContentLoadDuration.Record(ctx, durationSeconds, metric.WithAttributes(attribute.Bool("success", success)))
	}
	if !success {
		return
	}
	if m.SkillsLoaded != nil {
		m.SkillsLoaded.Add(ctx, int64(skills))
	}
	if m.TabsLoaded != nil {
		m.TabsLoaded.Add(ctx, int64(tabs))
	}
	if m.MissingReferences != nil {
		m.MissingReferences.Add(ctx, int64(missing))
	}
}

// RecordTabTransformed records the shapes bound in one tab.
func (m *Metrics) RecordTabTransformed(ctx context.Context, pkg string, annotated int) {
	if m.ShapesAnnotated == nil {
		return
	}
	m.ShapesAnnotated.Add(ctx, int64(annotated), metric.WithAttributes(attribute.String("package", pkg)))
}

// RecordPageRender records a page render of the given kind (tab, skill, missing).
func (m *Metrics) RecordPageRender(ctx context.Context, kind string, success bool) {
	if m.PageRendersTotal == nil {
		return
	}
	m.PageRendersTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("kind", kind),
		attribute.Bool("success", success),
	))
}

// RecordSkillUpdate records a value update with its outcome.
func (m *Metrics) RecordSkillUpdate(ctx context.Context, result string) {
	if m.SkillUpdatesTotal == nil {
		return
	}
	m.SkillUpdatesTotal.Add(ctx, 1, metric.WithAttributes(attribute.String("result", result)))
}

func (m *Metrics) RecordSessionCreated(ctx context.Context) {
	if m.SessionsCreated != nil {
		m.SessionsCreated.Add(ctx, 1)
	}
}

func (m *Metrics) RecordSessionsPurged(ctx context.Context, count int64) {
	if m.SessionsPurged != nil && count > 0 {
		m.SessionsPurged.Add(ctx, count)
	}
}

// RecordHTTPRequest records an HTTP request
func (m *Metrics) RecordHTTPRequest(ctx context.Context, method, path string, statusCode int, durationSeconds float64) {
	if m.HTTPRequestsTotal != nil {
		m.HTTPRequestsTotal.Add(ctx, 1,
			metric.WithAttributes(
				attribute.String("method", method),
				attribute.String("path", path),
				attribute.Int("status_code", statusCode),
			),
		)
	}
	if m.HTTPRequestDuration != nil {
		m.HTTPRequestDuration.Record(ctx, durationSeconds,
			metric.WithAttributes(
				attribute.String("method", method),
				attribute.String("path", path),
			),
		)
	}
}
