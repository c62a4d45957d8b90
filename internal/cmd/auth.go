package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/queuedesk/queuedesk-go/internal/identity"
	"github.com/queuedesk/queuedesk-go/internal/session"
)

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Manage the QueueDesk session",
}

// authLoginCmd authenticates and persists the session
var authLoginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in to QueueDesk",
	Long: `Log in to QueueDesk with email and password.

The session is persisted to ~/.queuedesk/session.json and reused by every
subsequent command until it expires or you log out.

Examples:
  queuedesk auth login --email owner@clinic.example --password secret`,
	RunE: func(cmd *cobra.Command, args []string) error {
		email, _ := cmd.Flags().GetString("email")
		password, _ := cmd.Flags().GetString("password")

		if email == "" {
			return fmt.Errorf("--email is required")
		}
		if password == "" {
			return fmt.Errorf("--password is required")
		}

		app, err := newApp()
		if err != nil {
			return err
		}

		result, err := app.identity.Login(cmd.Context(), email, password)
		if err != nil {
			return err
		}

		sess := session.Session{
			User: session.User{
				Active: result.Active,
				Token:  result.AccessToken,
				Email:  result.Email,
			},
			UserType:     session.ParseUserType(result.UserType),
			RefreshToken: result.RefreshToken,
			UpdatedAt:    time.Now(),
		}
		if err := app.store.Save(sess); err != nil {
			return fmt.Errorf("failed to save session: %w", err)
		}

		fmt.Println("Logged in")
		fmt.Printf("Email:     %s\n", result.Email)
		fmt.Printf("User type: %s\n", sess.UserType)

		return nil
	},
}

// authStatusCmd shows the current session
var authStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show session status",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp()
		if err != nil {
			return err
		}

		sess, ok := app.store.Current()
		if !ok || sess.User.Token == "" {
			fmt.Println("Not logged in.")
			fmt.Println("Use 'queuedesk auth login' to authenticate.")
			return nil
		}

		fmt.Println("Logged in")
		fmt.Printf("Email:     %s\n", sess.User.Email)
		fmt.Printf("User type: %s\n", sess.UserType)
		fmt.Printf("Active:    %t\n", sess.User.Active)

		if expiry, err := identity.TokenExpiry(sess.User.Token); err == nil {
			if time.Now().After(expiry) {
				fmt.Printf("Token:     expired %s (refreshes on next request)\n", expiry.Format(time.RFC3339))
			} else {
				fmt.Printf("Token:     valid until %s\n", expiry.Format(time.RFC3339))
			}
		}

		return nil
	},
}

// authLogoutCmd signs out and clears the persisted session
var authLogoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Log out and clear the session",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp()
		if err != nil {
			return err
		}

		sess, ok := app.store.Current()
		if !ok {
			fmt.Println("Not logged in.")
			return nil
		}

		// Best-effort: the local session is cleared even when the
		// identity service is unreachable.
		if err := app.identity.SignOut(cmd.Context(), sess.User.Email, sess.UserType); err != nil {
			app.log.Warn("identity sign-out failed", "error", err.Error())
		}

		if err := app.store.Reset(cmd.Context()); err != nil {
			return fmt.Errorf("failed to clear session: %w", err)
		}

		fmt.Println("Logged out.")
		return nil
	},
}

func init() {
	authLoginCmd.Flags().String("email", "", "account email")
	authLoginCmd.Flags().String("password", "", "account password")

	authCmd.AddCommand(authLoginCmd)
	authCmd.AddCommand(authStatusCmd)
	authCmd.AddCommand(authLogoutCmd)
	rootCmd.AddCommand(authCmd)
}
