// Package config parses the command-line configuration of the takeout CLI.
package config

import (
	"flag"
	"fmt"
	"io"
	"os"
)

// Config holds the global settings shared by every command.
type Config struct {
	OrdersFile   string
	Restaurant   string
	LogLevel     string
	Trace        bool
	OTLPEndpoint string
	TraceRatio   float64
}

// Parse reads global flags from args (without the program name) and returns
// the remaining arguments, which start with the command name.
func Parse(args []string, output io.Writer) (Config, []string, error) {
	var cfg Config
	fs := flag.NewFlagSet("takeout", flag.ContinueOnError)
	fs.SetOutput(output)
	fs.StringVar(&cfg.OrdersFile, "file", "orders.json", "orders JSON file")
	fs.StringVar(&cfg.Restaurant, "restaurant", "Tasty Bites", "restaurant name shown when listing orders")
	fs.StringVar(&cfg.LogLevel, "log-level", "info", "minimum log level: debug, info, warn, error")
	fs.BoolVar(&cfg.Trace, "trace", false, "print spans to stderr")
	fs.StringVar(&cfg.OTLPEndpoint, "otlp-endpoint", os.Getenv("OTEL_HOST"), "OTLP/gRPC collector host:port")
	fs.Float64Var(&cfg.TraceRatio, "trace-ratio", 1.0, "fraction of traces to sample")
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "usage: takeout [flags] [demo|list|add|modify|delete] [command flags]\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return Config{}, nil, err
	}
	if cfg.TraceRatio < 0 || cfg.TraceRatio > 1 {
		return Config{}, nil, fmt.Errorf("trace-ratio must be within [0,1], got %v", cfg.TraceRatio)
	}
	return cfg, fs.Args(), nil
}
