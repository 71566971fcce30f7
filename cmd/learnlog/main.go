package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var envFile string

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "learnlog",
		Short: "Record and query learner interactions",
		Long: `learnlog stores learner interactions with learning items and serves them
over HTTP and gRPC. Configuration comes from LEARNLOG_* environment variables,
optionally loaded from a .env file.`,
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "Optional dotenv file to load before reading the environment")

	rootCmd.AddCommand(newServeCommand())
	rootCmd.AddCommand(newListCommand())
	rootCmd.AddCommand(newImportCommand())
	rootCmd.AddCommand(newTokenCommand())

	return rootCmd
}
