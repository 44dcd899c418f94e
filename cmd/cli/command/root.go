package command

// root.go defines the root command for the takosu CLI.
// set up the global flags and the shared API client here.

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"takosu/cmd/cli/authentication"
	"takosu/cmd/cli/command/client"
	"takosu/cmd/cli/dto"
	"takosu/internal/widget/feed"
)

var (
	apiURL   string        // Global flag for API server URL
	interval time.Duration // delay between polls
	cooldown time.Duration // extra delay after a failed poll
	timeout  time.Duration // per request, must exceed the server long-poll hold
	verbose  bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "takosu",
	Short: "takosu - TakosuAnime from the terminal",
	Long: `takosu drives the TakosuAnime site from a terminal. User can:
- Search the catalog as they type
- Pick a random anime from a category, or let the slot machine choose
- Follow and post episode comments live
- Talk to support through the help chat
- Keep favorites, change the profile icon and leave suggestions

Use "takosu command --help" to see all available commands.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := slog.LevelWarn
		if verbose {
			level = slog.LevelDebug
		}
		slog.SetDefault(slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level})))
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err) // Print error to standard error
		stop()
		os.Exit(1)
	}
}

func init() {
	// Global persistent flags = available to all subcommands
	rootCmd.PersistentFlags().StringVar(&apiURL, "api", "http://localhost:8080", "API server URL")
	rootCmd.PersistentFlags().DurationVar(&interval, "interval", feed.DefaultInterval, "delay between feed polls")
	rootCmd.PersistentFlags().DurationVar(&cooldown, "cooldown", feed.DefaultCooldown, "extra delay after a failed poll")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", client.DefaultTimeout, "request timeout, keep it above the server LONG_POLL_TIMEOUT")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log every poll")

	rootCmd.AddCommand(authCmd, chatCmd, commentsCmd, searchCmd, categoriesCmd, randomCmd, surpriseCmd,
		profileCmd, favoriteCmd, suggestCmd, suggestionsCmd)
}

// GetAuthenticatedClient returns a client carrying the stored access token,
// refreshing it first when it is about to expire.
func GetAuthenticatedClient(ctx context.Context) (*client.HTTPClient, error) {
	httpClient := newClient()

	creds, err := authentication.GetTokens()
	if err != nil {
		return nil, err
	}

	if creds.Expired(time.Now()) && creds.RefreshToken != "" {
		refreshed, err := httpClient.RefreshToken(ctx, &dto.RefreshTokenRequest{RefreshToken: creds.RefreshToken})
		if err != nil {
			return nil, fmt.Errorf("session expired, log in again: %w", err)
		}
		creds.AccessToken = refreshed.AccessToken
		creds.ExpiresAt = time.Now().Add(time.Duration(refreshed.ExpiresIn) * time.Second).Unix()
		if err := authentication.StoreTokens(creds); err != nil {
			slog.Warn("could not store refreshed token", "error", err)
		}
	}

	httpClient.SetToken(creds.AccessToken)
	return httpClient, nil
}

// getOptionalClient authenticates when a session exists and stays anonymous otherwise.
func getOptionalClient(ctx context.Context) *client.HTTPClient {
	httpClient, err := GetAuthenticatedClient(ctx)
	if err != nil {
		slog.Debug("continuing without a session", "error", err)
		return newClient()
	}
	return httpClient
}

// newClient is an anonymous client honoring the global flags.
func newClient() *client.HTTPClient {
	httpClient := client.NewHTTPClient(apiURL)
	httpClient.SetTimeout(timeout)
	return httpClient
}

// feedOptions applies the global polling flags to a widget variant.
func feedOptions(base feed.Options) feed.Options {
	base.Interval = interval
	base.Cooldown = cooldown
	base.Logger = slog.Default()
	return base
}
