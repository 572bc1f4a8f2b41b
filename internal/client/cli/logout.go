package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/iudanet/lifetracker/internal/config"
)

func (c *Cli) newLogoutCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Sign out; local data stays on this device",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runLogout(cmd.Context())
		},
	}
}

func (c *Cli) runLogout(ctx context.Context) error {
	c.io.Println("=== Logout ===")

	// без пароля токен отзывается только локально
	password := ""
	if !c.opts.Offline && c.hasPasswordSource() {
		var err error
		password, err = c.getMasterPassword(false)
		if err != nil {
			return fmt.Errorf("failed to get master password: %w", err)
		}
	}

	if err := c.gate.OnSessionChange(ctx, nil); err != nil {
		return err
	}
	if err := c.auth.Logout(ctx, password); err != nil {
		return fmt.Errorf("logout failed: %w", err)
	}

	c.io.Println("✓ Logout successful!")
	c.io.Println("Your local session has been deleted. Slices stay on this device.")
	return nil
}

// hasPasswordSource сообщает, задан ли пароль без интерактивного ввода
func (c *Cli) hasPasswordSource() bool {
	return os.Getenv(config.EnvMasterPassword) != "" ||
		c.opts.MasterPasswordFile != "" ||
		c.opts.MasterPassword != ""
}
