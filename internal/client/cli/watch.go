package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
)

type watchOptions struct {
	metricsListen string
}

func (c *Cli) newWatchCommand() *cobra.Command {
	opts := &watchOptions{}
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Stay subscribed to the server and apply `key value` lines from stdin",
		Long: `Keeps a live subscription open: changes made on other devices are
written to the local database as they arrive. Every input line of the form
"<key> <value>" is written locally and pushed after the debounce delay.
End of input flushes pending writes and exits.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runWatch(cmd.Context(), opts)
		},
	}
	cmd.Flags().StringVar(&opts.metricsListen, "metrics-listen", "", "expose Prometheus metrics on this address (e.g. :9100)")
	return cmd
}

func (c *Cli) runWatch(ctx context.Context, opts *watchOptions) error {
	if c.opts.Offline {
		return fmt.Errorf("watch requires the server, remove --offline")
	}
	if err := c.mustEngage(ctx); err != nil {
		return err
	}

	if opts.metricsListen != "" {
		stop := c.serveMetrics(opts.metricsListen)
		defer stop()
	}

	c.io.Println("Watching for changes. Enter `<key> <value>` lines, Ctrl-D to finish.")

	lines := make(chan string)
	readErr := make(chan error, 1)
	go func() {
		defer close(lines)
		for {
			line, err := c.io.ReadInput("")
			if err != nil {
				readErr <- err
				return
			}
			select {
			case lines <- line:
			case <-ctx.Done():
				return
			}
		}
	}()

loop:
	for {
		select {
		case <-ctx.Done():
			break loop
		case line, ok := <-lines:
			if !ok {
				break loop
			}
			c.watchLine(ctx, line)
		}
	}

	select {
	case err := <-readErr:
		if !errors.Is(err, io.EOF) {
			c.io.Printf("Warning: input closed: %v\n", err)
		}
	default:
	}

	// ctx мог быть отменён сигналом: последний flush получает свой таймаут
	flushCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 10*time.Second)
	defer cancel()
	if err := c.gate.Flush(flushCtx); err != nil {
		return fmt.Errorf("failed to push pending writes: %w", err)
	}
	c.io.Println("✓ Pending writes pushed")
	return nil
}

func (c *Cli) watchLine(ctx context.Context, line string) {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return
	}
	key, raw, ok := strings.Cut(line, " ")
	if !ok {
		c.io.Printf("Error: expected `<key> <value>`, got %q\n", line)
		return
	}
	value, err := parseSliceArg(key, strings.TrimSpace(raw))
	if err != nil {
		c.io.Printf("Error: %v\n", err)
		return
	}
	if err := c.gate.QueueWrite(ctx, key, value); err != nil {
		c.io.Printf("Error: %v\n", err)
		return
	}
	c.io.Printf("✓ %s queued\n", key)
}

// serveMetrics поднимает /metrics в фоне и возвращает функцию остановки
func (c *Cli) serveMetrics(addr string) func() {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			c.logger.Error("Metrics server failed", "error", err)
		}
	}()
	c.logger.Info("Serving metrics", "addr", addr)
	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = srv.Shutdown(ctx)
	}
}
