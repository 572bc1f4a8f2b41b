package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/iudanet/lifetracker/internal/client/slices"
	"github.com/iudanet/lifetracker/internal/models"
)

func (c *Cli) newStatusCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show session, last sync and stored slices",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runStatus(cmd.Context())
		},
	}
}

func (c *Cli) runStatus(ctx context.Context) error {
	c.io.Println("=== Status ===")
	c.io.Println()

	status, err := c.auth.Status(ctx)
	if err != nil {
		return fmt.Errorf("failed to check authentication: %w", err)
	}

	if status == nil {
		c.io.Println("Session: not signed in (changes stay on this device)")
	} else {
		c.io.Printf("Session: signed in as %s\n", status.Username)
		c.io.Printf("User ID: %s\n", status.UserID)
		if status.Expired {
			c.io.Printf("Access token: expired %s, refreshed on next sync\n", humanize.Time(status.ExpiresAt))
		} else {
			c.io.Printf("Access token: expires %s\n", humanize.Time(status.ExpiresAt))
		}
	}

	if c.metadata != nil {
		ts, err := c.metadata.GetLastSyncTimestamp(ctx)
		if err != nil {
			// Не прерываем выполнение
			c.io.Printf("Warning: failed to get last sync time: %v\n", err)
		} else if ts == 0 {
			c.io.Println("Last sync: never")
		} else {
			c.io.Printf("Last sync: %s\n", humanize.Time(time.Unix(ts, 0)))
		}
	}

	c.io.Println()
	c.io.Println("Slices:")
	var total uint64
	for _, def := range models.Slices() {
		v, ok, err := c.slices.Read(ctx, string(def.Key))
		if err != nil {
			return err
		}
		if !ok {
			c.io.Printf("  %-14s -\n", def.Key)
			continue
		}
		raw, err := slices.Encode(v)
		if err != nil {
			return err
		}
		size := uint64(len(raw))
		total += size
		c.io.Printf("  %-14s %s\n", def.Key, humanize.Bytes(size))
	}
	c.io.Printf("Total: %s\n", humanize.Bytes(total))
	return nil
}
