package telemetry

import (
	"context"
	"errors"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
	"go.trai.ch/cagesync/internal/core/ports"
)

// bundleKey is the span attribute naming the bundle a step works on.
const bundleKey attribute.Key = "cagesync.bundle"

// Bridge is an sdktrace.SpanProcessor that reports each span to a Renderer as
// one step. Steps working on a single bundle are labelled with its name.
type Bridge struct {
	renderer ports.Renderer
}

// NewBridge returns a Bridge feeding renderer. A nil renderer drops every step.
func NewBridge(renderer ports.Renderer) *Bridge {
	return &Bridge{renderer: renderer}
}

// OnStart reports the step start together with its parent step, if any.
func (b *Bridge) OnStart(parent context.Context, s sdktrace.ReadWriteSpan) {
	sc := s.SpanContext()
	if b.renderer == nil || !sc.IsValid() {
		return
	}

	parentID := ""
	if p := trace.SpanContextFromContext(parent); p.IsValid() {
		parentID = p.SpanID().String()
	}
	b.renderer.OnStepStart(sc.SpanID().String(), parentID, stepName(s.Name(), s.Attributes()), s.StartTime())
}

// OnEnd reports the step completion. A span with an error status completes
// with its status description as the error.
func (b *Bridge) OnEnd(s sdktrace.ReadOnlySpan) {
	sc := s.SpanContext()
	if b.renderer == nil || !sc.IsValid() {
		return
	}
	b.renderer.OnStepComplete(sc.SpanID().String(), s.EndTime(), statusErr(s.Status()))
}

// ForceFlush is a no-op; steps are reported synchronously.
func (b *Bridge) ForceFlush(context.Context) error { return nil }

// Shutdown is a no-op.
func (b *Bridge) Shutdown(context.Context) error { return nil }

func stepName(name string, attrs []attribute.KeyValue) string {
	for _, kv := range attrs {
		if kv.Key == bundleKey && kv.Value.AsString() != "" {
			return name + " " + kv.Value.AsString()
		}
	}
	return name
}

func statusErr(status sdktrace.Status) error {
	if status.Code != codes.Error {
		return nil
	}
	if status.Description == "" {
		return errors.New("step failed")
	}
	return errors.New(status.Description)
}

// Install makes a tracer provider feeding processors the global provider, so
// every OTelTracer without an explicit provider reports to them. The returned
// function shuts that provider down.
func Install(processors ...sdktrace.SpanProcessor) func(context.Context) error {
	opts := make([]sdktrace.TracerProviderOption, 0, len(processors))
	for _, p := range processors {
		opts = append(opts, sdktrace.WithSpanProcessor(p))
	}
	tp := sdktrace.NewTracerProvider(opts...)
	otel.SetTracerProvider(tp)
	return tp.Shutdown
}
