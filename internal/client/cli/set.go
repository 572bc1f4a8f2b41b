package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/iudanet/lifetracker/internal/models"
	"github.com/iudanet/lifetracker/internal/validation"
)

func (c *Cli) newSetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Write a slice locally and push it when signed in",
		Long: `Write a slice value. Scalar slices (weightGoal, theme) take the value as
plain text; structured slices take a JSON object or array.

  lifetracker set theme dark
  lifetracker set shoppingState '{"items":[{"name":"milk"}]}'`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runSet(cmd.Context(), args[0], strings.Join(args[1:], " "))
		},
	}
}

func (c *Cli) runSet(ctx context.Context, key, raw string) error {
	value, err := parseSliceArg(key, raw)
	if err != nil {
		return err
	}

	// движок запускается до записи: иначе первый pull перезапишет
	// локальное значение серверным
	synced, err := c.engage(ctx)
	if err != nil {
		return err
	}

	if err := c.gate.QueueWrite(ctx, key, value); err != nil {
		return fmt.Errorf("failed to write %s: %w", key, err)
	}

	if !synced {
		c.io.Printf("✓ %s saved locally\n", key)
		return nil
	}
	if err := c.gate.Flush(ctx); err != nil {
		c.io.Printf("✓ %s saved locally\n", key)
		c.io.Printf("Warning: failed to push to server: %v\n", err)
		return nil
	}
	c.io.Printf("✓ %s saved and synchronized\n", key)
	return nil
}

func parseSliceArg(key, raw string) (any, error) {
	if err := validation.ValidateSliceKey(key); err != nil {
		return nil, err
	}
	def, err := models.LookupSlice(key)
	if err != nil {
		return nil, err
	}
	value, err := parseValue(def, raw)
	if err != nil {
		return nil, fmt.Errorf("%s expects JSON: %w", key, err)
	}
	if err := validation.ValidateSliceValue(key, value); err != nil {
		return nil, err
	}
	return value, nil
}

func (c *Cli) newUnsetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "unset <key>",
		Short: "Remove a slice from this device",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runUnset(cmd.Context(), args[0])
		},
	}
}

func (c *Cli) runUnset(ctx context.Context, key string) error {
	if err := validation.ValidateSliceKey(key); err != nil {
		return err
	}
	if err := c.gate.Remove(ctx, key); err != nil {
		return err
	}
	c.io.Printf("✓ %s removed locally\n", key)
	c.io.Println("The server copy is kept and comes back on the next sync.")
	return nil
}
