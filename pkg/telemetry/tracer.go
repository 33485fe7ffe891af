package telemetry

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// TracerName is the tracer name for the application
const TracerName = "github.com/skilltreedocs/skilltreedocs"

// Tracer returns the global tracer for the application
func Tracer() trace.Tracer {
	return otel.Tracer(TracerName)
}

// StartSpan starts a new span. The caller must call span.End().
func StartSpan(ctx context.Context, name string, opts ...trace.SpanStartOption) (context.Context, trace.Span) {
	return Tracer().Start(ctx, name, opts...)
}

// SpanFromContext returns the current span, or a no-op span.
func SpanFromContext(ctx context.Context) trace.Span {
	return trace.SpanFromContext(ctx)
}

// SetSpanError records an error on the span and marks it failed
func SetSpanError(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
}

func SetSpanOK(span trace.Span) {
	span.SetStatus(codes.Ok, "")
}

// AddSpanEvent adds an event to the span with optional attributes
func AddSpanEvent(span trace.Span, name string, attrs ...attribute.KeyValue) {
	span.AddEvent(name, trace.WithAttributes(attrs...))
}

func SetSpanAttributes(span trace.Span, attrs ...attribute.KeyValue) {
	span.SetAttributes(attrs...)
}

// Attribute keys used by content spans
var (
	AttrPackage      = attribute.Key("skilltree.package")
	AttrTab          = attribute.Key("skilltree.tab")
	AttrSkill        = attribute.Key("skilltree.skill")
	AttrShapesCount  = attribute.Key("skilltree.shapes")
	AttrMissingCount = attribute.Key("skilltree.missing")
	AttrKnownSkills  = attribute.Key("skilltree.known_skills")
)

// WithTabAttributes returns span start options naming a package tab
func WithTabAttributes(pkg, tab string) trace.SpanStartOption {
	return trace.WithAttributes(AttrPackage.String(pkg), AttrTab.String(tab))
}

// WithSkillAttributes returns span start options naming a skill page
func WithSkillAttributes(skill string) trace.SpanStartOption {
	return trace.WithAttributes(AttrSkill.String(skill))
}
