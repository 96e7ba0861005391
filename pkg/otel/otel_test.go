package otel

import (
	"bytes"
	"context"
	"io"
	"testing"

	"go.opentelemetry.io/otel/attribute"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"takeout/pkg/logger"
)

func TestAddSpanUsesInjectedTracer(t *testing.T) {
	rec := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(rec))
	ctx := InjectTracing(context.Background(), tp.Tracer("test"))

	ctx, span := AddSpan(ctx, "restaurant.AddOrder", attribute.String("customer", "Jane Smith"))
	if GetTraceID(ctx) == "" {
		t.Fatal("expected trace id inside span")
	}
	span.End()

	ended := rec.Ended()
	if len(ended) != 1 || ended[0].Name() != "restaurant.AddOrder" {
		t.Fatalf("unexpected spans: %v", ended)
	}
	attrs := ended[0].Attributes()
	if len(attrs) != 1 || attrs[0].Value.AsString() != "Jane Smith" {
		t.Fatalf("unexpected attributes: %v", attrs)
	}
}

func TestGetTraceIDWithoutSpan(t *testing.T) {
	if id := GetTraceID(context.Background()); id != "" {
		t.Fatalf("expected empty trace id, got %q", id)
	}
}

func TestInitTracingStdout(t *testing.T) {
	var spans bytes.Buffer
	log := logger.New(io.Discard, logger.LevelInfo, "takeout", nil)
	tp, shutdown, err := InitTracing(log, Config{ServiceName: "takeout", Writer: &spans, Probability: 1.0})
	if err != nil {
		t.Fatalf("init tracing: %v", err)
	}
	ctx := InjectTracing(context.Background(), tp.Tracer("test"))
	_, span := AddSpan(ctx, "restaurant.SaveOrdersToFile")
	span.End()

	if err := shutdown(context.Background()); err != nil {
		t.Fatalf("shutdown: %v", err)
	}
	if !bytes.Contains(spans.Bytes(), []byte("restaurant.SaveOrdersToFile")) {
		t.Fatalf("span not exported: %s", spans.String())
	}
}

func TestInitTracingDisabled(t *testing.T) {
	log := logger.New(io.Discard, logger.LevelInfo, "takeout", nil)
	tp, shutdown, err := InitTracing(log, Config{ServiceName: "takeout"})
	if err != nil {
		t.Fatalf("init tracing: %v", err)
	}
	defer shutdown(context.Background())

	ctx := InjectTracing(context.Background(), tp.Tracer("test"))
	ctx, span := AddSpan(ctx, "noop")
	defer span.End()
	if GetTraceID(ctx) != "" {
		t.Fatal("expected no trace id from noop provider")
	}
}
