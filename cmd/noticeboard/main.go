package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/joestump/noticeboard/internal/build"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "noticeboard",
		Short: "An authenticated announcement board",
		Long:  "noticeboard serves a public list of announcements that admins post and remove with a bearer token.",
	}

	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newMigrateCmd())
	rootCmd.AddCommand(newAdminCmd())
	rootCmd.AddCommand(newVersionCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), build.String())
		},
	}
}
