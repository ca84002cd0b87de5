package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kjess/corpora/corpora"
)

var (
	loginEmail    string
	loginPassword string
	showTokens    bool
)

// loginCmd verifies credentials and prints the resulting session tokens.
var loginCmd = &cobra.Command{
	Use:     "login",
	Short:   "Log in to the Corpora server",
	PreRunE: initializeApp,
	RunE:    runLogin,
}

func init() {
	loginCmd.Flags().StringVar(&loginEmail, "email", "", "account email (overrides config)")
	loginCmd.Flags().StringVar(&loginPassword, "password", "", "account password (overrides config)")
	loginCmd.Flags().BoolVar(&showTokens, "show-tokens", false, "print the raw token pair")
}

func runLogin(cmd *cobra.Command, args []string) error {
	email := cfg.Server.Email
	password := cfg.Server.Password
	if loginEmail != "" {
		email = loginEmail
	}
	if loginPassword != "" {
		password = loginPassword
	}
	if email == "" {
		return fmt.Errorf("no email provided: use --email or set server.email in config")
	}

	if err := client.Login(cmd.Context(), email, password); err != nil {
		return fmt.Errorf("login failed: %w", err)
	}

	fmt.Printf("✓ Logged in as %s\n", email)

	access, refresh := client.Tokens()
	if showTokens {
		fmt.Printf("access token:  %s\nrefresh token: %s\n", access, refresh)
	}
	if claims, err := corpora.TokenClaims(access); err == nil && !claims.ExpiresAt.IsZero() {
		fmt.Printf("session expires %s\n", claims.ExpiresAt.Format("2006-01-02 15:04:05 MST"))
	}
	return nil
}

// logoutCmd ends the current session.
var logoutCmd = &cobra.Command{
	Use:     "logout",
	Short:   "Log out and invalidate the current session",
	PreRunE: initializeApp,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		if err := ensureSession(ctx); err != nil {
			return err
		}
		if err := client.Logout(ctx); err != nil {
			// Tokens are cleared locally regardless.
			logger.Warn().Err(err).Msg("Server-side logout failed")
		}
		fmt.Println("✓ Logged out")
		return nil
	},
}

// whoamiCmd shows the authenticated account and session expiry.
var whoamiCmd = &cobra.Command{
	Use:     "whoami",
	Short:   "Show the currently authenticated account",
	PreRunE: initializeApp,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		if err := ensureSession(ctx); err != nil {
			return err
		}

		user, err := client.Me(ctx)
		if err != nil {
			return fmt.Errorf("failed to fetch account: %w", err)
		}

		fmt.Printf("Email:     %s\n", user.Email)
		fmt.Printf("User ID:   %s\n", user.ID)
		if user.Name != "" {
			fmt.Printf("Name:      %s\n", user.Name)
		}
		fmt.Printf("Verified:  %t\n", user.IsVerified)
		fmt.Printf("Superuser: %t\n", user.IsSuperuser)

		access, _ := client.Tokens()
		if claims, err := corpora.TokenClaims(access); err == nil && !claims.ExpiresAt.IsZero() {
			fmt.Printf("Session expires %s\n", claims.ExpiresAt.Format("2006-01-02 15:04:05 MST"))
		}
		return nil
	},
}
