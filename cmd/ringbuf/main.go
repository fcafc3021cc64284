// Package main runs a small ring buffer demonstration: it fills a fixed-size
// buffer, drains part of it, and prints the buffer state. Optionally it keeps
// serving the buffer's Prometheus metrics until interrupted.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/google/uuid"

	"github.com/c360/ringbuf/config"
	"github.com/c360/ringbuf/metric"
	"github.com/c360/ringbuf/pkg/ringbuf"
)

// Build information constants
const (
	Version = "0.1.0"
	appName = "ringbuf"
)

func main() {
	defer func() {
		if r := recover(); r != nil {
			buf := make([]byte, 4096)
			n := runtime.Stack(buf, false)
			_, _ = fmt.Fprintf(os.Stderr, "PANIC: %v\nStack trace:\n%s\n", r, string(buf[:n]))
			os.Exit(2)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		slog.Error("Application failed", "error", err, "exit_code", 1)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	cli, err := parseFlags(args, stderr)
	if err != nil {
		return err
	}

	if cli.ShowVersion {
		_, _ = fmt.Fprintf(stdout, "%s version %s\n", appName, Version)
		return nil
	}

	cfg, err := resolveConfig(cli)
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	logger := setupLogger(cfg.Log.Level, cfg.Log.Format, stderr).With("run_id", uuid.NewString())
	slog.SetDefault(logger)

	var registry *metric.MetricsRegistry
	if cfg.Metrics.Enabled {
		registry = metric.NewMetricsRegistry(metric.WithRuntimeCollectors())
	}

	rb, err := ringbuf.New[uint32](cfg.Capacity,
		ringbuf.WithLogger[uint32](logger),
		ringbuf.WithMetrics[uint32](registry, "demo"),
		ringbuf.WithDropCallback[uint32](func(v uint32) {
			logger.Info("Element dropped", "value", v)
		}),
	)
	if err != nil {
		return err
	}
	defer func() {
		_ = rb.Close()
	}()

	logger.Info("Starting ring buffer run",
		"capacity", cfg.Capacity,
		"inserts", cfg.Inserts,
		"removes", cfg.Removes)

	exercise(rb, cfg, logger)

	_, _ = fmt.Fprintln(stdout, rb.String())
	logger.Info("Run complete", "stats", rb.Stats().Summary())

	if cfg.Metrics.Enabled {
		return serveMetrics(ctx, cfg.Metrics, registry, logger)
	}
	return nil
}

// exercise inserts 1..Inserts and then performs Removes reads.
func exercise(rb *ringbuf.RingBuffer[uint32], cfg *config.Config, logger *slog.Logger) {
	for i := 1; i <= cfg.Inserts; i++ {
		rb.Insert(uint32(i))
	}

	for i := 0; i < cfg.Removes; i++ {
		v, ok := rb.Remove()
		if !ok {
			logger.Info("Buffer is empty, nothing to read")
			continue
		}
		logger.Debug("Element read", "value", v)
	}
}

func serveMetrics(ctx context.Context, cfg config.MetricsConfig, registry *metric.MetricsRegistry, logger *slog.Logger) error {
	server := metric.NewServer(cfg.Port, cfg.Path, registry, logger)

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("Shutting down metrics server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Stop(shutdownCtx); err != nil {
		return err
	}
	return <-errCh
}
