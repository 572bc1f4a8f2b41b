package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/iudanet/lifetracker/internal/validation"
)

func (c *Cli) newGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get <key>",
		Short: "Print a slice (or its default when absent)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runGet(cmd.Context(), args[0])
		},
	}
}

func (c *Cli) runGet(ctx context.Context, key string) error {
	if err := validation.ValidateSliceKey(key); err != nil {
		return err
	}
	value, err := c.slices.ReadOrDefault(ctx, key)
	if err != nil {
		return err
	}
	if value == nil {
		c.io.Println("(not set)")
		return nil
	}
	return c.printJSON(value)
}

func (c *Cli) newSnapshotCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "snapshot",
		Short: "Print the aggregate document built from local slices",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runSnapshot(cmd.Context())
		},
	}
}

func (c *Cli) runSnapshot(ctx context.Context) error {
	doc, err := c.slices.BuildSnapshot(ctx)
	if err != nil {
		return err
	}
	return c.printJSON(doc)
}
