package carousel

import (
	"context"
	"testing"
	"time"

	"takosu/internal/shared"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPerView(t *testing.T) {
	cases := map[int]float64{
		320:  1,
		480:  1,
		600:  2,
		1000: 3,
		1280: 4,
		1500: 5,
		1700: 5.5,
		2560: 5.5,
	}
	for width, want := range cases {
		assert.Equal(t, want, PerView(width), "width %d", width)
	}
}

func TestParseCategoriesData_List(t *testing.T) {
	raw := []byte(`[
		{"id":"accion","name":"Acción","animes":[{"title":"Naruto","image":"/n.jpg","url":"/anime/Naruto/"}]},
		{"id":"comedia","name":"Comedia","animes":[]}
	]`)

	catalog, err := ParseCategoriesData(raw)

	require.NoError(t, err)
	assert.Equal(t, []string{"accion", "comedia"}, catalog.IDs())
	cat, ok := catalog.Category("accion")
	require.True(t, ok)
	assert.Equal(t, "Acción", cat.Name)
	assert.Len(t, catalog.All(), 1)
}

func TestParseCategoriesData_LegacyPositionalKeys(t *testing.T) {
	raw := []byte(`{"animes-10":[{"title":"J"}],"animes-2":[{"title":"B"}],"animes-1":[{"title":"A"}]}`)

	catalog, err := ParseCategoriesData(raw)

	require.NoError(t, err)
	assert.Equal(t, []string{"animes-1", "animes-2", "animes-10"}, catalog.IDs())
	titles := []string{}
	for _, a := range catalog.All() {
		titles = append(titles, a.Title)
	}
	assert.Equal(t, []string{"A", "B", "J"}, titles)
}

func TestParseCategoriesData_Invalid(t *testing.T) {
	_, err := ParseCategoriesData([]byte(`"nope"`))
	assert.Error(t, err)
}

// seqRand returns scripted indexes, modulo n.
type seqRand struct {
	seq []int
	i   int
}

func (r *seqRand) IntN(n int) int {
	v := r.seq[r.i%len(r.seq)]
	r.i++
	return v % n
}

type recordingNav struct{ urls []string }

func (n *recordingNav) Navigate(url string) { n.urls = append(n.urls, url) }

func TestPickFromCategory_Navigates(t *testing.T) {
	catalog := NewCatalog([]shared.CategoryData{{ID: "shonen", Animes: []shared.AnimeSummary{
		{Title: "Naruto"}, {Title: "Kimetsu no Yaiba"},
	}}})
	nav := &recordingNav{}

	chosen, ok := NewPicker(catalog, &seqRand{seq: []int{1}}, nav).PickFromCategory("shonen")

	require.True(t, ok)
	assert.Equal(t, "Kimetsu no Yaiba", chosen.Title)
	assert.Equal(t, []string{"/anime/Kimetsu%20no%20Yaiba/"}, nav.urls)
}

func TestPickFromCategory_EmptyOrUnknownIsNoop(t *testing.T) {
	catalog := NewCatalog([]shared.CategoryData{{ID: "vacia"}})
	nav := &recordingNav{}
	p := NewPicker(catalog, nil, nav)

	_, ok := p.PickFromCategory("vacia")
	assert.False(t, ok)
	_, ok = p.PickFromCategory("no-existe")
	assert.False(t, ok)
	assert.Empty(t, nav.urls)
}

type countingClock struct{ calls []time.Duration }

func (c *countingClock) After(d time.Duration) <-chan time.Time {
	c.calls = append(c.calls, d)
	ch := make(chan time.Time, 1)
	ch <- time.Time{}
	return ch
}

func TestReveal_TwentyFramesThenFinalPick(t *testing.T) {
	items := []shared.AnimeSummary{
		{Title: "A", Image: "/a.jpg", URL: "/anime/A/"},
		{Title: "B", Image: "/b.jpg", URL: "/anime/B/"},
		{Title: "C", Image: "/c.jpg", URL: "/anime/C/"},
	}
	catalog := NewCatalog([]shared.CategoryData{{ID: "x", Animes: items[:2]}, {ID: "y", Animes: items[2:]}})
	rnd := &seqRand{seq: []int{0, 1, 2}}
	clock := &countingClock{}
	panel := NewPanel()

	final, err := NewReveal(catalog, rnd, clock, panel).Run(context.Background())

	require.NoError(t, err)
	assert.Equal(t, RevealFrames, panel.Frames)
	assert.Len(t, clock.calls, RevealFrames)
	var total time.Duration
	for _, d := range clock.calls {
		total += d
	}
	assert.Equal(t, time.Second, total)
	assert.Equal(t, 21, rnd.i)
	assert.Equal(t, items[20%3], final)
	assert.Equal(t, final.URL, panel.ViewHref)
	assert.Equal(t, final.Title, panel.Title)
	assert.False(t, panel.ViewHidden)
	assert.True(t, panel.QuestionHidden)
}

func TestReveal_EmptyCatalog(t *testing.T) {
	panel := NewPanel()
	_, err := NewReveal(NewCatalog(nil), nil, &countingClock{}, panel).Run(context.Background())

	assert.ErrorIs(t, err, ErrEmptyCatalog)
	assert.True(t, panel.ViewHidden)
	assert.Zero(t, panel.Frames)
}

func TestReveal_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	catalog := NewCatalog([]shared.CategoryData{{ID: "x", Animes: []shared.AnimeSummary{{Title: "A"}}}})
	panel := NewPanel()

	_, err := NewReveal(catalog, nil, blockedClock{}, panel).Run(ctx)

	assert.ErrorIs(t, err, context.Canceled)
	assert.True(t, panel.ViewHidden)
}

type blockedClock struct{}

func (blockedClock) After(time.Duration) <-chan time.Time { return make(chan time.Time) }
