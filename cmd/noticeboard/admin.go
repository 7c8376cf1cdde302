package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/joestump/noticeboard/internal/auth"
	"github.com/joestump/noticeboard/internal/config"
	"github.com/joestump/noticeboard/internal/store"
)

func newAdminCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "admin",
		Short: "Manage admin accounts",
	}
	cmd.AddCommand(newAdminCreateCmd())
	return cmd
}

func newAdminCreateCmd() *cobra.Command {
	var email, password string
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create an admin account",
		RunE: func(cmd *cobra.Command, args []string) error {
			email = strings.TrimSpace(email)
			if email == "" || password == "" {
				return errors.New("--email and --password are required")
			}

			cfg, err := config.Load()
			if err != nil {
				return err
			}
			b, err := openBackend(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer func() { _ = b.Close() }()

			hash, err := auth.HashPassword(password)
			if err != nil {
				return err
			}
			if _, err := b.Admins.Create(cmd.Context(), email, hash); err != nil {
				if errors.Is(err, store.ErrDuplicateAdmin) {
					return fmt.Errorf("admin %s already exists", email)
				}
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "admin %s created\n", email)
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "admin email")
	cmd.Flags().StringVar(&password, "password", "", "admin password")
	return cmd
}
