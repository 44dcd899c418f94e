package command

import (
	"bufio"
	"context"
	"io"
	"log/slog"
	"strings"

	"takosu/internal/widget/feed"
	"takosu/internal/widget/menu"
)

// profileCommand stands for a click on the profile avatar.
const profileCommand = "/profile"

// runFeedWidget polls in the background and turns every input line into
// keystrokes. It returns when input ends, ctx is cancelled or polling stops.
func runFeedWidget[T feed.Record](ctx context.Context, w *feed.Widget[T], in io.Reader, out io.Writer, profile *menu.Menu) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	w.Start(ctx)
	defer w.Close()

	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-w.Done():
			if err := w.Err(); err != nil && ctx.Err() == nil {
				return err
			}
			return nil
		case line, ok := <-lines:
			if !ok {
				return nil
			}
			if err := handleLine(ctx, w, line, profile, out); err != nil {
				slog.Error("send failed", "error", err)
			}
		}
	}
}

// handleLine applies one line of input. A trailing backslash is Shift+Enter,
// anything else ends with Enter.
func handleLine[T feed.Record](ctx context.Context, w *feed.Widget[T], line string, profile *menu.Menu, out io.Writer) error {
	if strings.TrimSpace(line) == profileCommand {
		printMenu(out, profile.Click(menu.OnTrigger))
		return nil
	}
	profile.Click(menu.Elsewhere)

	if text, ok := strings.CutSuffix(line, `\`); ok {
		w.Form().Type(text)
		_, err := w.KeyDown(ctx, feed.KeyEvent{Key: feed.KeyEnter, Shift: true})
		return err
	}

	w.Form().Type(line)
	if strings.TrimSpace(w.Form().Text()) == "" {
		w.Form().Reset()
		return nil
	}
	_, err := w.KeyDown(ctx, feed.KeyEvent{Key: feed.KeyEnter})
	return err
}
