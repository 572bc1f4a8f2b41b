package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

func (c *Cli) newRegisterCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "register [username]",
		Short: "Register a new account and sign in",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runRegister(cmd.Context(), args)
		},
	}
}

func (c *Cli) runRegister(ctx context.Context, args []string) error {
	if c.opts.Offline {
		return fmt.Errorf("registration requires the server, remove --offline")
	}

	c.io.Println("=== Registration ===")
	c.io.Println()

	username, err := c.readUsername(args)
	if err != nil {
		return err
	}
	masterPassword, err := c.getMasterPassword(true)
	if err != nil {
		return fmt.Errorf("failed to get master password: %w", err)
	}

	c.io.Println("Registering user...")
	session, err := c.auth.Register(ctx, username, masterPassword)
	if err != nil {
		return err
	}

	c.io.Println()
	c.io.Println("✓ Registration successful!")
	c.io.Printf("User ID: %s\n", session.UserID)
	c.io.Printf("Username: %s\n", username)
	c.io.Println()
	c.io.Println("⚠️  IMPORTANT: Remember your master password!")
	c.io.Println("   It unlocks your session on this device and cannot be recovered.")
	c.io.Println()

	return c.startSession(ctx, session)
}

func (c *Cli) readUsername(args []string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	username, err := c.io.ReadInput("Username: ")
	if err != nil {
		return "", fmt.Errorf("failed to read username: %w", err)
	}
	return username, nil
}
