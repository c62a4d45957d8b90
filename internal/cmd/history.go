package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var historyCmd = &cobra.Command{
	Use:   "history <client-id>",
	Short: "Show a client's attendance history",
	Long: `Show a client's past visits from the event store.

History is best-effort: when the event store has no record of the client
the result is simply empty, never an error.

Examples:
  queuedesk history client-9`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp()
		if err != nil {
			return err
		}

		records, err := app.api.AttendanceHistory(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		if len(records) == 0 {
			fmt.Println("No attendance history.")
			return nil
		}

		for _, rec := range records {
			fmt.Printf("%-20s %-24s %s\n",
				rec.OccurredAt.Format(time.RFC3339), rec.QueueID, rec.Summary)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(historyCmd)
}
