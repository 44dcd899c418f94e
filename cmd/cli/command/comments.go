package command

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"takosu/internal/shared"
	"takosu/internal/widget/feed"
	"takosu/internal/widget/menu"
)

var commentsCmd = &cobra.Command{
	Use:   "comments <anime> <episode>",
	Short: "Follow and post the comments of an episode",
	Long: `Show the comments of an episode and keep following new ones.

Type a line and press Enter to post it. End a line with \ to continue on the
next line. Type /profile to toggle the profile menu.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		out := cmd.OutOrStdout()

		anime := args[0]
		number, err := strconv.Atoi(args[1])
		if err != nil || number < 0 {
			return fmt.Errorf("invalid episode number %q", args[1])
		}

		httpClient, err := GetAuthenticatedClient(ctx)
		if err != nil {
			return err
		}

		page, err := httpClient.EpisodePage(ctx, anime, number)
		if err != nil {
			return err
		}

		fmt.Fprintf(out, "%s · Episodio %d: %s\n", titleColor.Sprint(page.Anime), page.EpisodeNumber, page.Title)
		printer := commentPrinter{out: out}
		for _, c := range page.Comments {
			if err := printer.Render(c); err != nil {
				return err
			}
		}

		comments := httpClient.CommentFeed(anime, number)
		poller := feed.NewPoller[shared.CommentRecord](comments, printer, page.InitialTimestamp, feedOptions(feed.CommentOptions()))
		widget := feed.NewWidget(poller, feed.NewForm("content"), comments)

		return runFeedWidget(ctx, widget, cmd.InOrStdin(), out, menu.New())
	},
}
