// Package search implements the search-as-you-type widget.
package search

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"takosu/internal/shared"
)

// Searcher queries the search endpoint.
type Searcher interface {
	Search(ctx context.Context, query string) ([]shared.AnimeSummary, error)
}

// Results is the grid the widget renders into.
type Results interface {
	ShowResults(items []shared.AnimeSummary) error
	ShowEmpty(query string) error
	Clear()
}

// Widget reflects the current input value as a result grid. Every request
// gets a generation number and only the response of the latest one is shown,
// so a slow answer for an old prefix never overwrites a newer grid.
type Widget struct {
	searcher Searcher
	results  Results
	logger   *slog.Logger

	mu           sync.Mutex
	generation   uint64
	input        string
	clearVisible bool
}

func NewWidget(searcher Searcher, results Results, logger *slog.Logger) *Widget {
	if logger == nil {
		logger = slog.Default()
	}
	return &Widget{searcher: searcher, results: results, logger: logger}
}

// Input handles one input event with the field's new value. It blocks until
// the search answers; callers that must not block run it in a goroutine.
// It reports whether the grid was updated.
func (w *Widget) Input(ctx context.Context, value string) (bool, error) {
	query := strings.TrimSpace(value)

	w.mu.Lock()
	w.input = value
	w.generation++
	gen := w.generation
	if query == "" {
		w.clearVisible = false
		w.results.Clear()
		w.mu.Unlock()
		return true, nil
	}
	w.clearVisible = true
	w.mu.Unlock()

	items, err := w.searcher.Search(ctx, query)
	if err != nil {
		w.logger.Error("search failed", "query", query, "error", err)
		return false, fmt.Errorf("search %q: %w", query, err)
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if gen != w.generation {
		w.logger.Debug("discarding stale search response", "query", query)
		return false, nil
	}
	if len(items) == 0 {
		return true, w.results.ShowEmpty(query)
	}
	return true, w.results.ShowResults(items)
}

// Clear resets the input and empties the grid without a request.
func (w *Widget) Clear() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.generation++
	w.input = ""
	w.clearVisible = false
	w.results.Clear()
}

// Value returns the current input value.
func (w *Widget) Value() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.input
}

// ClearVisible reports whether the clear control is shown.
func (w *Widget) ClearVisible() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.clearVisible
}
