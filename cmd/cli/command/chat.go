package command

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"takosu/cmd/cli/command/client"
	"takosu/internal/shared"
	"takosu/internal/widget/feed"
	"takosu/internal/widget/menu"
)

var chatCmd = &cobra.Command{
	Use:   "chat [conversation-id]",
	Short: "Open the help chat",
	Long: `Open a help chat conversation. Without an id, users open their own
conversation and admins get the list of conversations.

Type a line and press Enter to send it. End a line with \ to continue the
message on the next line. Type /profile to toggle the profile menu.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		out := cmd.OutOrStdout()

		httpClient, err := GetAuthenticatedClient(ctx)
		if err != nil {
			return err
		}

		id, err := resolveConversation(ctx, httpClient, args, out)
		if err != nil || id == 0 {
			return err
		}

		chat := httpClient.ChatFeed(id)
		poller := feed.NewPoller[shared.MessageRecord](chat, messagePrinter{out: out}, 0, feedOptions(feed.ChatOptions()))
		widget := feed.NewWidget(poller, feed.NewForm("message"), chat)

		fmt.Fprintf(out, "Chat de ayuda #%d\n", id)
		err = runFeedWidget(ctx, widget, cmd.InOrStdin(), out, menu.New())
		if errors.Is(err, feed.ErrDenied) {
			return fmt.Errorf("conversation %d not found or access denied", id)
		}
		return err
	},
}

// resolveConversation picks the conversation to open. It returns 0 when the
// server sent the viewer to the conversation list instead.
func resolveConversation(ctx context.Context, httpClient *client.HTTPClient, args []string, out io.Writer) (int64, error) {
	if len(args) == 1 {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil || id < 1 {
			return 0, fmt.Errorf("invalid conversation id %q", args[0])
		}
		return id, nil
	}

	path, err := httpClient.RedirectPath(ctx)
	if err != nil {
		return 0, err
	}
	if id, ok := client.ParseConversationPath(path); ok {
		return id, nil
	}

	list, err := httpClient.Conversations(ctx)
	if err != nil {
		return 0, err
	}
	if len(list) == 0 {
		fmt.Fprintln(out, "No conversations yet.")
		return 0, nil
	}
	for _, conv := range list {
		fmt.Fprintf(out, "%5d  %s\n", conv.ID, senderColor.Sprint(conv.Username))
	}
	fmt.Fprintln(out, "Open one with: takosu chat <id>")
	return 0, nil
}
