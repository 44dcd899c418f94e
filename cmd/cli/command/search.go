package command

import (
	"bufio"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"takosu/internal/widget/search"
)

const clearCommand = "/clear"

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search the catalog as you type",
	Long: `Search anime titles. Every line you type replaces the search box value;
an empty line or /clear empties it.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		httpClient := getOptionalClient(ctx)
		widget := search.NewWidget(httpClient, gridPrinter{out: cmd.OutOrStdout(), base: httpClient.BaseURL()}, slog.Default())

		if len(args) > 0 {
			widget.Input(ctx, strings.Join(args, " "))
		}

		scanner := bufio.NewScanner(cmd.InOrStdin())
		for scanner.Scan() {
			if ctx.Err() != nil {
				return nil
			}
			line := scanner.Text()
			if strings.TrimSpace(line) == clearCommand {
				widget.Clear()
				continue
			}
			// errors are logged by the widget and leave the results as they were
			widget.Input(ctx, line)
		}
		return scanner.Err()
	},
}
