package cmd

import (
	"context"

	"github.com/spf13/cobra"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "queuedesk",
	Short: "QueueDesk client for queues, appointments and attendance history",
	Long: `queuedesk is the command-line client for the QueueDesk platform.
It manages waiting queues, scheduled appointments and attendance history
for multi-tenant businesses, with an authenticated session that refreshes
its token transparently and signs out cleanly when the session is gone.`,

	SilenceUsage: true,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// ExecuteContext runs the root command with the given context
func ExecuteContext(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.queuedesk/config.yaml)")
}
