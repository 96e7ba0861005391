package config

import (
	"io"
	"testing"
)

func TestParseDefaults(t *testing.T) {
	t.Setenv("OTEL_HOST", "")
	cfg, rest, err := Parse(nil, io.Discard)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if cfg.OrdersFile != "orders.json" || cfg.Restaurant != "Tasty Bites" || cfg.LogLevel != "info" {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if cfg.Trace || cfg.OTLPEndpoint != "" || cfg.TraceRatio != 1.0 {
		t.Fatalf("unexpected tracing defaults: %+v", cfg)
	}
	if len(rest) != 0 {
		t.Fatalf("unexpected args: %v", rest)
	}
}

func TestParseFlagsAndCommand(t *testing.T) {
	cfg, rest, err := Parse([]string{"-file", "/tmp/o.json", "-restaurant", "Diner", "-trace", "delete", "-customer", "A"}, io.Discard)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if cfg.OrdersFile != "/tmp/o.json" || cfg.Restaurant != "Diner" || !cfg.Trace {
		t.Fatalf("unexpected config: %+v", cfg)
	}
	if len(rest) != 3 || rest[0] != "delete" {
		t.Fatalf("unexpected args: %v", rest)
	}
}

func TestParseOTLPFromEnv(t *testing.T) {
	t.Setenv("OTEL_HOST", "collector:4317")
	cfg, _, err := Parse(nil, io.Discard)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if cfg.OTLPEndpoint != "collector:4317" {
		t.Fatalf("OTLPEndpoint = %q", cfg.OTLPEndpoint)
	}
}

func TestParseErrors(t *testing.T) {
	for _, args := range [][]string{
		{"-unknown"},
		{"-trace-ratio", "2"},
	} {
		if _, _, err := Parse(args, io.Discard); err == nil {
			t.Errorf("Parse(%v): expected error", args)
		}
	}
}
