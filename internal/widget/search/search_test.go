package search

import (
	"context"
	"errors"
	"sync"
	"testing"

	"takosu/internal/shared"
	"takosu/internal/widget/view"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockSearcher struct {
	mock.Mock
}

func (m *MockSearcher) Search(ctx context.Context, query string) ([]shared.AnimeSummary, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]shared.AnimeSummary), args.Error(1)
}

func TestInput_EmptyQueryClearsWithoutRequest(t *testing.T) {
	searcher := new(MockSearcher)
	box := view.NewContainer()
	w := NewWidget(searcher, view.NewGrid(box), nil)
	searcher.On("Search", mock.Anything, "naruto").Return([]shared.AnimeSummary{{Title: "Naruto"}}, nil).Once()

	_, err := w.Input(context.Background(), "naruto")
	require.NoError(t, err)
	require.Equal(t, 1, box.Len())

	updated, err := w.Input(context.Background(), "   ")
	require.NoError(t, err)
	assert.True(t, updated)
	assert.Equal(t, 0, box.Len())
	assert.False(t, w.ClearVisible())
	searcher.AssertExpectations(t)
}

func TestInput_TrimsQueryAndRendersCards(t *testing.T) {
	searcher := new(MockSearcher)
	box := view.NewContainer()
	w := NewWidget(searcher, view.NewGrid(box), nil)
	searcher.On("Search", mock.Anything, "one").Return([]shared.AnimeSummary{
		{Title: "One Piece"}, {Title: "One Punch Man"},
	}, nil).Once()

	updated, err := w.Input(context.Background(), "  one ")

	require.NoError(t, err)
	assert.True(t, updated)
	assert.Equal(t, 2, box.Len())
	assert.True(t, w.ClearVisible())
	searcher.AssertExpectations(t)
}

func TestInput_NoResultsShowsEmptyState(t *testing.T) {
	searcher := new(MockSearcher)
	box := view.NewContainer()
	w := NewWidget(searcher, view.NewGrid(box), nil)
	searcher.On("Search", mock.Anything, "<zz>").Return([]shared.AnimeSummary{}, nil).Once()

	_, err := w.Input(context.Background(), "<zz>")

	require.NoError(t, err)
	children := box.Children()
	require.Len(t, children, 1)
	assert.Contains(t, string(children[0]), "&lt;zz&gt;")
	assert.Contains(t, string(children[0]), `href="/anime/"`)
}

func TestInput_ErrorLeavesGrid(t *testing.T) {
	searcher := new(MockSearcher)
	box := view.NewContainer()
	w := NewWidget(searcher, view.NewGrid(box), nil)
	searcher.On("Search", mock.Anything, "a").Return([]shared.AnimeSummary{{Title: "Akira"}}, nil).Once()
	searcher.On("Search", mock.Anything, "ak").Return(nil, errors.New("unexpected token < in JSON")).Once()

	_, err := w.Input(context.Background(), "a")
	require.NoError(t, err)
	_, err = w.Input(context.Background(), "ak")

	assert.Error(t, err)
	assert.Equal(t, 1, box.Len())
}

func TestClear_EmptiesWithoutRequest(t *testing.T) {
	searcher := new(MockSearcher)
	box := view.NewContainer()
	w := NewWidget(searcher, view.NewGrid(box), nil)
	searcher.On("Search", mock.Anything, "bleach").Return([]shared.AnimeSummary{{Title: "Bleach"}}, nil).Once()

	_, err := w.Input(context.Background(), "bleach")
	require.NoError(t, err)
	w.Clear()

	assert.Equal(t, 0, box.Len())
	assert.Equal(t, "", w.Value())
	assert.False(t, w.ClearVisible())
	searcher.AssertNumberOfCalls(t, "Search", 1)
}

// gatedSearcher holds each query until the test releases it.
type gatedSearcher struct {
	mu      sync.Mutex
	gates   map[string]chan struct{}
	started chan string
}

func (g *gatedSearcher) gate(q string) chan struct{} {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.gates[q] == nil {
		g.gates[q] = make(chan struct{})
	}
	return g.gates[q]
}

func (g *gatedSearcher) Search(ctx context.Context, query string) ([]shared.AnimeSummary, error) {
	g.started <- query
	<-g.gate(query)
	return []shared.AnimeSummary{{Title: "result for " + query}}, nil
}

func TestInput_StaleResponseIsDiscarded(t *testing.T) {
	searcher := &gatedSearcher{gates: map[string]chan struct{}{}, started: make(chan string, 2)}
	box := view.NewContainer()
	w := NewWidget(searcher, view.NewGrid(box), nil)
	ctx := context.Background()

	type result struct {
		updated bool
		err     error
	}
	slow := make(chan result, 1)
	go func() {
		updated, err := w.Input(ctx, "na")
		slow <- result{updated, err}
	}()
	require.Equal(t, "na", <-searcher.started)

	fast := make(chan result, 1)
	go func() {
		updated, err := w.Input(ctx, "naruto")
		fast <- result{updated, err}
	}()
	require.Equal(t, "naruto", <-searcher.started)

	close(searcher.gate("naruto"))
	r := <-fast
	require.NoError(t, r.err)
	assert.True(t, r.updated)

	close(searcher.gate("na"))
	r = <-slow
	require.NoError(t, r.err)
	assert.False(t, r.updated)

	children := box.Children()
	require.Len(t, children, 1)
	assert.Contains(t, string(children[0]), "result for naruto")
}

func TestClear_DiscardsInFlightResponse(t *testing.T) {
	searcher := &gatedSearcher{gates: map[string]chan struct{}{}, started: make(chan string, 1)}
	box := view.NewContainer()
	w := NewWidget(searcher, view.NewGrid(box), nil)

	done := make(chan bool, 1)
	go func() {
		updated, _ := w.Input(context.Background(), "bleach")
		done <- updated
	}()
	<-searcher.started
	w.Clear()
	close(searcher.gate("bleach"))

	assert.False(t, <-done)
	assert.Equal(t, 0, box.Len())
}
