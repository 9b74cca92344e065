package main

import (
	"os"

	"github.com/spf13/cobra"

	"netwatch/internal/interfaces/cli/ingest"
	"netwatch/internal/interfaces/cli/migrate"
	"netwatch/internal/interfaces/cli/server"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "netwatch",
		Short: "Netwatch - internet usage analytics service",
		Long:  `Netwatch ingests per-session internet usage records and serves windowed usage analytics over HTTP.`,
	}

	rootCmd.AddCommand(
		server.NewCommand(),
		migrate.NewCommand(),
		ingest.NewCommand(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
