package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"sort"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/aleksandar-had/http-server/httpx"
	"github.com/aleksandar-had/http-server/internal/obs"
)

const shutdownTimeout = 10 * time.Second

func main() {
	opts, err := parseArgs(os.Args[1:], os.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		fmt.Fprintln(os.Stderr, "httpserver:", err)
		os.Exit(2)
	}
	if err := run(opts); err != nil {
		fmt.Fprintln(os.Stderr, "httpserver:", err)
		os.Exit(1)
	}
}

func newLogger(debug bool) (*zap.Logger, error) {
	if debug {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

func run(opts options) error {
	zl, err := newLogger(opts.debug)
	if err != nil {
		return err
	}
	defer func() { _ = zl.Sync() }()

	meter := obs.NewMemoryMeter()
	s := httpx.NewServer(opts.cfg, obs.NewZapLogger(zl), meter)
	cfg := s.Config()
	zl.Info("starting",
		zap.String("addr", cfg.Addr),
		zap.String("directory", cfg.Directory),
		zap.Int("workers", cfg.Workers),
		zap.Int("read_buffer", cfg.ReadBufferSize))
	if cfg.Directory == "" {
		zl.Warn("no --directory given, /files answers 404")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errc := make(chan error, 1)
	go func() { errc <- s.ListenAndServe() }()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}
	zl.Info("shutting down", zap.Duration("timeout", shutdownTimeout))
	sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := s.Shutdown(sctx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	if err := <-errc; !errors.Is(err, httpx.ErrServerClosed) {
		return err
	}
	logMetrics(zl, meter)
	return nil
}

func logMetrics(zl *zap.Logger, m *obs.MemoryMeter) {
	counters := m.Counters()
	keys := make([]string, 0, len(counters))
	for k := range counters {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		zl.Info("counter", zap.String("series", k), zap.Float64("value", counters[k]))
	}
	for k, s := range m.Histograms() {
		zl.Info("histogram",
			zap.String("series", k),
			zap.Float64("count", s.Count),
			zap.Float64("sum", s.Sum),
			zap.Float64("max", s.Max))
	}
}
