package command

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"takosu/cmd/cli/authentication"
	"takosu/cmd/cli/dto"
)

// auth.go handles authentication commands: register, login and logout.

// authCmd represents the auth command for authentication related subcommands
var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Authentication commands",
	Long:  `Authenticate with the TakosuAnime server. Supports login, registration, logout.`,
}

// registerCmd represents the register command
var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Register a new TakosuAnime account",
	RunE: func(cmd *cobra.Command, args []string) error {
		// get data from flags
		var c dto.RegisterRequest
		c.Username, _ = cmd.Flags().GetString("username")
		c.Password, _ = cmd.Flags().GetString("password")
		c.Email, _ = cmd.Flags().GetString("email")

		httpClient := newClient()
		response, err := httpClient.Register(cmd.Context(), &c)
		if err != nil {
			return fmt.Errorf("registration process failed: %w", err)
		}

		fmt.Fprintln(cmd.OutOrStdout(), "✓ Registration successful! Please login to continue.")
		fmt.Fprintf(cmd.OutOrStdout(), "UserID: %s\n", response.UserID)
		return nil
	},
}

// loginCmd represents the login command
var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Login to your TakosuAnime account",
	RunE: func(cmd *cobra.Command, args []string) error {
		var c dto.LoginRequest
		c.Username, _ = cmd.Flags().GetString("username")
		c.Password, _ = cmd.Flags().GetString("password")

		httpClient := newClient()
		response, err := httpClient.Login(cmd.Context(), &c)
		if err != nil {
			return fmt.Errorf("login process failed: %w", err)
		}

		err = authentication.StoreTokens(&authentication.StoredCredentials{
			AccessToken:  response.AccessToken,
			RefreshToken: response.RefreshToken,
			Username:     response.Username,
			IsAdmin:      response.IsAdmin,
			ExpiresAt:    time.Now().Add(time.Duration(response.ExpiresIn) * time.Second).Unix(),
		})
		if err != nil {
			return fmt.Errorf("could not store session: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "✓ Logged in as %s\n", response.Username)
		return nil
	},
}

// logoutCmd revokes the refresh token and forgets the session
var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Logout from your TakosuAnime account",
	RunE: func(cmd *cobra.Command, args []string) error {
		creds, err := authentication.GetTokens()
		if err == nil && creds.RefreshToken != "" {
			httpClient := newClient()
			if _, err := httpClient.RevokeToken(cmd.Context(), &dto.RevokeTokenRequest{RefreshToken: creds.RefreshToken}); err != nil {
				slog.Warn("could not revoke refresh token", "error", err)
			}
		}

		if err := authentication.DeleteTokens(); err != nil {
			return fmt.Errorf("could not clear session: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), "✓ Successfully logged out.")
		return nil
	},
}

// init function to add auth commands to root command
func init() {
	authCmd.AddCommand(registerCmd)
	authCmd.AddCommand(loginCmd)
	authCmd.AddCommand(logoutCmd)

	registerCmd.Flags().StringP("username", "u", "", "Username for the new account")
	registerCmd.Flags().StringP("password", "p", "", "Password for the new account")
	registerCmd.Flags().StringP("email", "e", "", "Email address for the new account")
	registerCmd.MarkFlagRequired("username")
	registerCmd.MarkFlagRequired("password")
	registerCmd.MarkFlagRequired("email")

	loginCmd.Flags().StringP("username", "u", "", "Username for the account")
	loginCmd.Flags().StringP("password", "p", "", "Password for the account")
	loginCmd.MarkFlagRequired("username")
	loginCmd.MarkFlagRequired("password")
}
