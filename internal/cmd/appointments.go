package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/queuedesk/queuedesk-go/internal/platform"
)

var appointmentsCmd = &cobra.Command{
	Use:   "appointments",
	Short: "Manage scheduled appointments",
}

var appointmentsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List appointments",
	Long: `List scheduled appointments, optionally filtered by queue and window.

Examples:
  queuedesk appointments list --queue q1
  queuedesk appointments list --from 2026-09-01T00:00:00Z --limit 25`,
	RunE: func(cmd *cobra.Command, args []string) error {
		queueID, _ := cmd.Flags().GetString("queue")
		fromStr, _ := cmd.Flags().GetString("from")
		toStr, _ := cmd.Flags().GetString("to")
		limit, _ := cmd.Flags().GetInt("limit")

		opts := platform.ListAppointmentsOptions{QueueID: queueID, Limit: limit}

		if fromStr != "" {
			from, err := time.Parse(time.RFC3339, fromStr)
			if err != nil {
				return fmt.Errorf("invalid --from: %w", err)
			}
			opts.From = from
		}
		if toStr != "" {
			to, err := time.Parse(time.RFC3339, toStr)
			if err != nil {
				return fmt.Errorf("invalid --to: %w", err)
			}
			opts.To = to
		}

		app, err := newApp()
		if err != nil {
			return err
		}

		appointments, err := app.api.ListAppointments(cmd.Context(), opts)
		if err != nil {
			return err
		}

		if len(appointments) == 0 {
			fmt.Println("No appointments found.")
			return nil
		}

		for _, apt := range appointments {
			fmt.Printf("%-24s %-20s %-24s %s\n",
				apt.ID, apt.ScheduledAt.Format(time.RFC3339), apt.ClientName, apt.Status)
		}
		return nil
	},
}

var appointmentsCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Schedule an appointment",
	Long: `Schedule an appointment in a queue.

Examples:
  queuedesk appointments create --queue q1 --client "Ana Souza" --at 2026-09-14T10:30:00Z`,
	RunE: func(cmd *cobra.Command, args []string) error {
		queueID, _ := cmd.Flags().GetString("queue")
		clientName, _ := cmd.Flags().GetString("client")
		clientEmail, _ := cmd.Flags().GetString("email")
		atStr, _ := cmd.Flags().GetString("at")

		if queueID == "" {
			return fmt.Errorf("--queue is required")
		}
		if clientName == "" {
			return fmt.Errorf("--client is required")
		}
		if atStr == "" {
			return fmt.Errorf("--at is required")
		}

		at, err := time.Parse(time.RFC3339, atStr)
		if err != nil {
			return fmt.Errorf("invalid --at: %w", err)
		}

		app, err := newApp()
		if err != nil {
			return err
		}

		apt, err := app.api.CreateAppointment(cmd.Context(), platform.CreateAppointmentRequest{
			QueueID:     queueID,
			ClientName:  clientName,
			ClientEmail: clientEmail,
			ScheduledAt: at,
		})
		if err != nil {
			return err
		}

		fmt.Printf("Appointment %s scheduled for %s\n", apt.ID, apt.ScheduledAt.Format(time.RFC3339))
		return nil
	},
}

var appointmentsCancelCmd = &cobra.Command{
	Use:   "cancel <appointment-id>",
	Short: "Cancel an appointment",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp()
		if err != nil {
			return err
		}

		if err := app.api.CancelAppointment(cmd.Context(), args[0]); err != nil {
			return err
		}

		fmt.Println("Appointment cancelled.")
		return nil
	},
}

func init() {
	appointmentsListCmd.Flags().String("queue", "", "filter by queue ID")
	appointmentsListCmd.Flags().String("from", "", "window start (RFC 3339)")
	appointmentsListCmd.Flags().String("to", "", "window end (RFC 3339)")
	appointmentsListCmd.Flags().Int("limit", 0, "maximum results")

	appointmentsCreateCmd.Flags().String("queue", "", "queue ID")
	appointmentsCreateCmd.Flags().String("client", "", "client name")
	appointmentsCreateCmd.Flags().String("email", "", "client email")
	appointmentsCreateCmd.Flags().String("at", "", "scheduled time (RFC 3339)")

	appointmentsCmd.AddCommand(appointmentsListCmd)
	appointmentsCmd.AddCommand(appointmentsCreateCmd)
	appointmentsCmd.AddCommand(appointmentsCancelCmd)
	rootCmd.AddCommand(appointmentsCmd)
}
