// Package feed implements the incremental polling widgets behind the help chat
// and the episode comment thread: a cursor-driven poller, the submit form and
// the widget that ties both to a transport.
package feed

import (
	"context"
	"errors"
	"log/slog"
	"net/url"
	"time"
)

// ErrDenied is returned by a Fetcher when the feed does not exist or the user
// may not read it (HTTP 403/404).
var ErrDenied = errors.New("feed not found or access denied")

// Record is anything carrying a server-assigned, monotonically increasing stamp.
type Record interface {
	Stamp() int64
}

// Fetcher returns the records newer than after, ascending by stamp.
type Fetcher[T Record] interface {
	Fetch(ctx context.Context, after int64) ([]T, error)
}

// Renderer appends one record to the end of the log and scrolls it to the bottom.
type Renderer[T Record] interface {
	Render(rec T) error
}

// Submitter posts the form fields to the page. It returns an error only when
// no response was received; the response status and body are not its concern.
type Submitter interface {
	Submit(ctx context.Context, fields url.Values) error
}

// Clock schedules the next poll.
type Clock interface {
	After(d time.Duration) <-chan time.Time
}

type realClock struct{}

func (realClock) After(d time.Duration) <-chan time.Time { return time.After(d) }

// Options configures a poller and its widget.
type Options struct {
	Interval        time.Duration // delay after a completed poll
	Cooldown        time.Duration // extra delay after a failed poll
	StopOnDenied    bool          // stop polling for good on ErrDenied
	PollAfterSubmit bool          // poll once right after a successful submit
	Clock           Clock
	Logger          *slog.Logger
}

const (
	DefaultInterval = 500 * time.Millisecond
	DefaultCooldown = 2 * time.Second
)

// ChatOptions returns the help chat behavior.
func ChatOptions() Options {
	return Options{
		Interval:        DefaultInterval,
		Cooldown:        DefaultCooldown,
		StopOnDenied:    true,
		PollAfterSubmit: true,
	}
}

// CommentOptions returns the comment thread behavior. Comments keep polling on
// any failure and rely on the loop to pick up the user's own submissions.
func CommentOptions() Options {
	return Options{
		Interval: DefaultInterval,
		Cooldown: DefaultCooldown,
	}
}

func (o Options) withDefaults() Options {
	if o.Clock == nil {
		o.Clock = realClock{}
	}
	if o.Logger == nil {
		o.Logger = slog.Default()
	}
	return o
}
