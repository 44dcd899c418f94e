package feed

import (
	"context"
	"fmt"
	"sync"
)

// Widget is one chat or comment box: a poller running for the widget's
// lifetime plus the form that posts new records.
type Widget[T Record] struct {
	poller    *Poller[T]
	form      *Form
	submitter Submitter
	opts      Options

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
	err    error
}

func NewWidget[T Record](poller *Poller[T], form *Form, submitter Submitter) *Widget[T] {
	return &Widget[T]{
		poller:    poller,
		form:      form,
		submitter: submitter,
		opts:      poller.opts,
	}
}

func (w *Widget[T]) Poller() *Poller[T] { return w.poller }

func (w *Widget[T]) Form() *Form { return w.form }

// Start launches the polling loop. Calling Start on a running widget is a no-op.
func (w *Widget[T]) Start(ctx context.Context) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.cancel != nil {
		return
	}

	ctx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	w.cancel = cancel
	w.done = done

	go func() {
		defer close(done)
		err := w.poller.Run(ctx)
		w.mu.Lock()
		w.err = err
		w.mu.Unlock()
	}()
}

// Done is closed when the polling loop has ended.
func (w *Widget[T]) Done() <-chan struct{} {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.done
}

// Err reports why the loop ended.
func (w *Widget[T]) Err() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.err
}

// Close cancels the pending poll and waits for the loop to exit.
func (w *Widget[T]) Close() {
	w.mu.Lock()
	cancel, done := w.cancel, w.done
	w.mu.Unlock()
	if cancel == nil {
		return
	}
	cancel()
	<-done
}

// Submit posts the form. Once the post completes the form is cleared whatever
// the server answered; the new record only shows up through polling. With
// PollAfterSubmit the running loop is kicked rather than polled inline, so a
// long-poll hold never stalls the caller.
func (w *Widget[T]) Submit(ctx context.Context) error {
	if err := w.submitter.Submit(ctx, w.form.Values()); err != nil {
		return fmt.Errorf("submit form: %w", err)
	}
	w.form.Reset()

	if w.opts.PollAfterSubmit {
		w.poller.Kick()
	}
	return nil
}

// KeyDown handles a key press in the text field: Enter submits, Shift+Enter
// inserts a newline. It reports whether a submit happened.
func (w *Widget[T]) KeyDown(ctx context.Context, ev KeyEvent) (bool, error) {
	if ev.Key != KeyEnter {
		return false, nil
	}
	if ev.Shift {
		w.form.Type("\n")
		return false, nil
	}
	return true, w.Submit(ctx)
}
