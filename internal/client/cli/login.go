package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/iudanet/lifetracker/internal/client/sync"
)

func (c *Cli) newLoginCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "login [username]",
		Short: "Sign in and synchronize local state",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runLogin(cmd.Context(), args)
		},
	}
}

func (c *Cli) runLogin(ctx context.Context, args []string) error {
	if c.opts.Offline {
		return fmt.Errorf("login requires the server, remove --offline")
	}

	c.io.Println("=== Login ===")
	c.io.Println()

	username, err := c.readUsername(args)
	if err != nil {
		return err
	}
	masterPassword, err := c.getMasterPassword(false)
	if err != nil {
		return fmt.Errorf("failed to get master password: %w", err)
	}

	c.io.Println("Authenticating...")
	session, err := c.auth.Login(ctx, username, masterPassword)
	if err != nil {
		return err
	}

	c.io.Println()
	c.io.Println("✓ Login successful!")
	c.io.Printf("Username: %s\n", username)
	c.io.Println("Your session has been saved securely.")
	c.io.Println()

	return c.startSession(ctx, session)
}

// startSession выполняет первый pull (и bootstrap, если документа ещё нет)
// сразу после входа
func (c *Cli) startSession(ctx context.Context, session *sync.Session) error {
	c.io.Println("Synchronizing...")
	if err := c.gate.OnSessionChange(ctx, session); err != nil {
		c.io.Printf("Warning: initial sync failed: %v\n", err)
		c.io.Println("Local data is kept; run 'lifetracker sync' later.")
		return nil
	}
	if err := c.gate.Flush(ctx); err != nil {
		c.io.Printf("Warning: failed to push local changes: %v\n", err)
		return nil
	}
	c.io.Println("✓ Local state is synchronized with the server")
	return nil
}
