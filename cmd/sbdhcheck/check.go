package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/sirosfoundation/go-sbdh/internal/config"
	"github.com/sirosfoundation/go-sbdh/pkg/codelist"
	"github.com/sirosfoundation/go-sbdh/pkg/compression"
	"github.com/sirosfoundation/go-sbdh/pkg/envelope"
	"github.com/sirosfoundation/go-sbdh/pkg/metrics"
	"github.com/sirosfoundation/go-sbdh/pkg/sbdh"
	"github.com/sirosfoundation/go-sbdh/pkg/xhe"
)

// readFunc validates one envelope and returns a function re-serializing it
type readFunc func(in io.Reader, observer envelope.Observer) (func() ([]byte, error), error)

type checker struct {
	flavor      string
	concurrency int
	read        readFunc
	metrics     *metrics.Metrics
	logger      *slog.Logger

	canonical io.Writer
	mu        sync.Mutex
}

func newChecker(cfg *config.Config, logger *slog.Logger) (*checker, error) {
	var registry *codelist.Table
	if cfg.Codelist.File != "" {
		f, err := os.Open(cfg.Codelist.File)
		if err != nil {
			return nil, fmt.Errorf("opening code list: %w", err)
		}
		defer f.Close()
		if registry, err = codelist.Load(f); err != nil {
			return nil, err
		}
	}

	var creationTime envelope.CreationTimeValidator
	if cfg.Validation.MaxClockSkew > 0 {
		creationTime = envelope.NotAfter(time.Now, cfg.Validation.MaxClockSkew)
	}

	read, err := readerFor(cfg.Flavor, registry, creationTime)
	if err != nil {
		return nil, err
	}

	m := metrics.New()
	m.Init(cfg.Flavor)

	return &checker{
		flavor:      cfg.Flavor,
		concurrency: cfg.Concurrency,
		read:        read,
		metrics:     m,
		logger:      logger,
	}, nil
}

// readerFor builds the read function of a flavor. A registry replaces the
// embedded code lists of flavors that check identifiers against them.
func readerFor(name string, registry *codelist.Table, creationTime envelope.CreationTimeValidator) (readFunc, error) {
	if name == xhe.FlavorName {
		return func(in io.Reader, observer envelope.Observer) (func() ([]byte, error), error) {
			opts := []xhe.ReaderOption{xhe.WithObserver(observer)}
			if creationTime != nil {
				opts = append(opts, xhe.WithCreationTimeValidator(creationTime))
			}
			env, err := xhe.NewReader(opts...).ReadFrom(in)
			if err != nil {
				return nil, err
			}
			return func() ([]byte, error) { return xhe.NewWriter().WriteBytes(env) }, nil
		}, nil
	}

	flavor, ok := sbdh.FlavorByName(name)
	if !ok {
		return nil, fmt.Errorf("unknown flavor %q", name)
	}
	return func(in io.Reader, observer envelope.Observer) (func() ([]byte, error), error) {
		opts := []sbdh.ReaderOption{sbdh.WithObserver(observer)}
		if _, usesCodelist := flavor.Registry.(*codelist.Table); usesCodelist && registry != nil {
			opts = append(opts, sbdh.WithRegistry(registry))
		}
		if creationTime != nil {
			opts = append(opts, sbdh.WithCreationTimeValidator(creationTime))
		}
		env, err := sbdh.NewReader(flavor, opts...).ReadFrom(in)
		if err != nil {
			return nil, err
		}
		return func() ([]byte, error) { return sbdh.NewWriter(flavor).WriteBytes(env) }, nil
	}, nil
}

// checkAll checks every file with bounded concurrency and returns the
// number of failed files. Validation failures do not stop the other checks.
func (c *checker) checkAll(ctx context.Context, files []string) (int, error) {
	var failed atomic.Int64

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(c.concurrency)
	for _, path := range files {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := c.checkFile(path); err != nil {
				failed.Add(1)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return int(failed.Load()), fmt.Errorf("check interrupted: %w", err)
	}
	return int(failed.Load()), nil
}

func (c *checker) checkFile(path string) error {
	logger := c.logger.With("file", path)
	start := time.Now()

	f, err := os.Open(path)
	if err != nil {
		logger.Error("Failed to open envelope", "error", err)
		return err
	}
	defer f.Close()

	in, err := compression.NewReader(f)
	if err != nil {
		logger.Error("Failed to decompress envelope", "error", err)
		return err
	}
	defer in.Close()

	observer := envelope.Observers(envelope.LogObserver(logger), c.metrics.Observer())
	write, err := c.read(in, observer)
	c.metrics.ObserveReadLatency(c.flavor, time.Since(start))
	if err != nil {
		return err
	}
	c.metrics.IncrementSuccess(c.flavor)
	logger.Info("Envelope valid", "flavor", c.flavor, "compression", in.Algorithm().String())

	if c.canonical == nil {
		return nil
	}
	data, err := write()
	if err != nil {
		logger.Error("Failed to serialize envelope", "error", err)
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, err := c.canonical.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("writing canonical output: %w", err)
	}
	return nil
}
