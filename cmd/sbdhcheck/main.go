// sbdhcheck validates business document envelope files.
//
// Each file is read with the configured flavor (generic, peppol,
// delivery-profile or xhe). GZIP and Zstandard compressed files are
// decompressed transparently. One log record is written per file; failures
// carry the stable error code. With --canonical the re-serialized envelope
// of every valid file is written to stdout. The exit status is 1 when any
// file fails validation and 2 on usage errors.
//
// Usage:
//
//	sbdhcheck [flags] FILE...
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/pflag"

	"github.com/sirosfoundation/go-sbdh/internal/config"
)

// exitError carries the process exit status
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }
func (e *exitError) Unwrap() error { return e.err }
func (e *exitError) ExitCode() int { return e.code }

func usageError(format string, args ...any) error {
	return &exitError{code: 2, err: fmt.Errorf(format, args...)}
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		var coder interface{ ExitCode() int }
		if errors.As(err, &coder) {
			if coder.ExitCode() == 2 {
				fmt.Fprintf(os.Stderr, "error: %v\n", err)
			}
			os.Exit(coder.ExitCode())
		}
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	var (
		configPath   string
		flavor       string
		concurrency  int
		canonical    bool
		metricsFile  string
		codelistFile string
		logLevel     string
		logFormat    string
	)

	flagSet := pflag.NewFlagSet("sbdhcheck", pflag.ContinueOnError)
	flagSet.SetOutput(stderr)
	flagSet.StringVarP(&configPath, "config", "c", "", "path to YAML configuration file")
	flagSet.StringVarP(&flavor, "flavor", "f", "", "envelope flavor: generic, peppol, delivery-profile or xhe")
	flagSet.IntVarP(&concurrency, "concurrency", "j", 0, "number of files checked in parallel")
	flagSet.BoolVar(&canonical, "canonical", false, "write the re-serialized envelope of valid files to stdout")
	flagSet.StringVar(&metricsFile, "metrics-file", "", "write Prometheus metrics to this textfile")
	flagSet.StringVar(&codelistFile, "codelist", "", "YAML identifier scheme tables replacing the embedded ones")
	flagSet.StringVar(&logLevel, "log-level", "", "log level: debug, info, warn or error")
	flagSet.StringVar(&logFormat, "log-format", "", "log format: text or json")

	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return usageError("%w", err)
	}

	files := flagSet.Args()
	if len(files) == 0 {
		return usageError("no envelope files given")
	}

	cfg := config.Default()
	if configPath != "" {
		loaded, err := config.Load(configPath)
		if err != nil {
			return usageError("%w", err)
		}
		cfg = loaded
	}

	if flagSet.Changed("flavor") {
		cfg.Flavor = flavor
	}
	if flagSet.Changed("concurrency") {
		cfg.Concurrency = concurrency
	}
	if flagSet.Changed("metrics-file") {
		cfg.Metrics.File = metricsFile
	}
	if flagSet.Changed("codelist") {
		cfg.Codelist.File = codelistFile
	}
	if flagSet.Changed("log-level") {
		cfg.Logging.Level = logLevel
	}
	if flagSet.Changed("log-format") {
		cfg.Logging.Format = logFormat
	}
	if err := cfg.Validate(); err != nil {
		return usageError("%w", err)
	}

	logger := newLogger(cfg.Logging, stderr)

	c, err := newChecker(cfg, logger)
	if err != nil {
		return usageError("%w", err)
	}
	if canonical {
		c.canonical = stdout
	}

	failed, err := c.checkAll(ctx, files)
	if cfg.Metrics.File != "" {
		if merr := c.metrics.WriteToTextfile(cfg.Metrics.File); merr != nil {
			logger.Error("Failed to write metrics", "error", merr)
		}
	}
	if err != nil {
		return err
	}

	logger.Info("Check finished", "files", len(files), "failed", failed, "flavor", cfg.Flavor)
	if failed > 0 {
		return &exitError{code: 1, err: fmt.Errorf("%d of %d envelopes failed validation", failed, len(files))}
	}
	return nil
}

func newLogger(cfg config.LoggingConfig, w io.Writer) *slog.Logger {
	var level slog.Level
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	if cfg.Format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}
