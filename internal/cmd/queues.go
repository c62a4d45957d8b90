package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var queuesCmd = &cobra.Command{
	Use:   "queues",
	Short: "Inspect waiting queues",
}

var queuesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List queues",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp()
		if err != nil {
			return err
		}

		queues, err := app.api.ListQueues(cmd.Context())
		if err != nil {
			return err
		}

		if len(queues) == 0 {
			fmt.Println("No queues found.")
			return nil
		}

		for _, q := range queues {
			state := "closed"
			if q.Open {
				state = "open"
			}
			fmt.Printf("%-24s %-30s %-8s %d waiting\n", q.ID, q.Name, state, q.Waiting)
		}
		return nil
	},
}

var queuesGetCmd = &cobra.Command{
	Use:   "get <queue-id>",
	Short: "Show one queue",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp()
		if err != nil {
			return err
		}

		queue, err := app.api.Queue(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		fmt.Printf("ID:      %s\n", queue.ID)
		fmt.Printf("Name:    %s\n", queue.Name)
		fmt.Printf("Open:    %t\n", queue.Open)
		fmt.Printf("Waiting: %d\n", queue.Waiting)
		return nil
	},
}

var checkInCmd = &cobra.Command{
	Use:   "check-in <queue-id>",
	Short: "Take a ticket in a queue",
	Long: `Take a ticket for a client in the given queue.

Examples:
  queuedesk check-in q1 --client "Ana Souza"`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		clientName, _ := cmd.Flags().GetString("client")
		if clientName == "" {
			return fmt.Errorf("--client is required")
		}

		app, err := newApp()
		if err != nil {
			return err
		}

		ticket, err := app.api.CheckIn(cmd.Context(), args[0], clientName)
		if err != nil {
			return err
		}

		fmt.Printf("Ticket %d issued (%s)\n", ticket.Number, ticket.ID)
		return nil
	},
}

func init() {
	checkInCmd.Flags().String("client", "", "client name")

	queuesCmd.AddCommand(queuesListCmd)
	queuesCmd.AddCommand(queuesGetCmd)
	rootCmd.AddCommand(queuesCmd)
	rootCmd.AddCommand(checkInCmd)
}
