package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

func (c *Cli) newSyncCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "sync",
		Short: "Pull the server document and push pending local state",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runSync(cmd.Context())
		},
	}
}

func (c *Cli) runSync(ctx context.Context) error {
	if c.opts.Offline {
		return fmt.Errorf("sync requires the server, remove --offline")
	}
	c.io.Println("=== Synchronization ===")
	c.io.Println()

	started := time.Now()
	if err := c.mustEngage(ctx); err != nil {
		return err
	}

	if err := c.gate.Flush(ctx); err != nil {
		return fmt.Errorf("synchronization failed: %w", err)
	}

	c.io.Printf("✓ Synchronization completed in %s\n", time.Since(started).Round(time.Millisecond))
	if c.metadata != nil {
		if ts, err := c.metadata.GetLastSyncTimestamp(ctx); err == nil && ts > 0 {
			c.io.Printf("Last exchange with server: %s\n", humanize.Time(time.Unix(ts, 0)))
		}
	}
	return nil
}
