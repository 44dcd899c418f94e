package command

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var suggestCmd = &cobra.Command{
	Use:   "suggest <subject> <message...>",
	Short: "Send a suggestion to the site admins",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		httpClient, err := GetAuthenticatedClient(ctx)
		if err != nil {
			return err
		}
		if err := httpClient.SubmitSuggestion(ctx, args[0], strings.Join(args[1:], " ")); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "¡Sugerencia enviada!")
		return nil
	},
}

var suggestionsCmd = &cobra.Command{
	Use:   "suggestions",
	Short: "Read the suggestion box (admins only)",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		httpClient, err := GetAuthenticatedClient(ctx)
		if err != nil {
			return err
		}
		page, err := httpClient.Suggestions(ctx)
		if err != nil {
			return err
		}
		if !page.IsAdmin {
			return errors.New("only admins can read the suggestion box")
		}
		printSuggestions(cmd.OutOrStdout(), page.Suggestions)
		return nil
	},
}
