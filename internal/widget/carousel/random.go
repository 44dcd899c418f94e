package carousel

import (
	"context"
	"math/rand/v2"
	"net/url"
	"time"

	"takosu/internal/shared"
)

// Rand is the source of uniform picks.
type Rand interface {
	IntN(n int) int
}

type globalRand struct{}

func (globalRand) IntN(n int) int { return rand.IntN(n) }

// Navigator follows a link.
type Navigator interface {
	Navigate(url string)
}

// Clock paces the reveal animation.
type Clock interface {
	After(d time.Duration) <-chan time.Time
}

type realClock struct{}

func (realClock) After(d time.Duration) <-chan time.Time { return time.After(d) }

// DetailPath is the detail page of an anime.
func DetailPath(title string) string {
	return "/anime/" + url.PathEscape(title) + "/"
}

func pick(rnd Rand, items []shared.AnimeSummary) shared.AnimeSummary {
	return items[rnd.IntN(len(items))]
}

// Picker handles a double-click on a category heading.
type Picker struct {
	catalog *Catalog
	rnd     Rand
	nav     Navigator
}

func NewPicker(catalog *Catalog, rnd Rand, nav Navigator) *Picker {
	if rnd == nil {
		rnd = globalRand{}
	}
	return &Picker{catalog: catalog, rnd: rnd, nav: nav}
}

// PickFromCategory navigates to a random anime of the category. Unknown or
// empty categories do nothing.
func (p *Picker) PickFromCategory(id string) (shared.AnimeSummary, bool) {
	cat, ok := p.catalog.Category(id)
	if !ok || len(cat.Animes) == 0 {
		return shared.AnimeSummary{}, false
	}
	chosen := pick(p.rnd, cat.Animes)
	p.nav.Navigate(DetailPath(chosen.Title))
	return chosen, true
}

// Display is the "surprise me" panel.
type Display interface {
	// ShowFrame swaps the shown image and title for one animation step.
	ShowFrame(a shared.AnimeSummary)
	// Reveal commits to the final anime and points the view link at it.
	Reveal(a shared.AnimeSummary)
}

const (
	RevealFrames   = 20
	RevealInterval = 50 * time.Millisecond
)

// Reveal runs the slot machine animation over the whole catalog.
type Reveal struct {
	items    []shared.AnimeSummary
	rnd      Rand
	clock    Clock
	display  Display
	frames   int
	interval time.Duration
}

func NewReveal(catalog *Catalog, rnd Rand, clock Clock, display Display) *Reveal {
	if rnd == nil {
		rnd = globalRand{}
	}
	if clock == nil {
		clock = realClock{}
	}
	return &Reveal{
		items:    catalog.All(),
		rnd:      rnd,
		clock:    clock,
		display:  display,
		frames:   RevealFrames,
		interval: RevealInterval,
	}
}

// Run shows RevealFrames random anime, one per RevealInterval, then reveals a
// final independent random pick and returns it.
func (r *Reveal) Run(ctx context.Context) (shared.AnimeSummary, error) {
	if len(r.items) == 0 {
		return shared.AnimeSummary{}, ErrEmptyCatalog
	}

	for i := 0; i < r.frames; i++ {
		r.display.ShowFrame(pick(r.rnd, r.items))
		select {
		case <-ctx.Done():
			return shared.AnimeSummary{}, ctx.Err()
		case <-r.clock.After(r.interval):
		}
	}

	final := pick(r.rnd, r.items)
	r.display.Reveal(final)
	return final, nil
}

// Panel is the state of the surprise panel's elements.
type Panel struct {
	ImageSrc       string
	Title          string
	ImageHidden    bool
	TitleHidden    bool
	QuestionHidden bool
	ViewHidden     bool
	ViewHref       string
	Frames         int
}

// NewPanel returns the panel as first rendered: only the question visible.
func NewPanel() *Panel {
	return &Panel{ImageHidden: true, TitleHidden: true, ViewHidden: true}
}

func (p *Panel) ShowFrame(a shared.AnimeSummary) {
	p.ImageSrc = a.Image
	p.ImageHidden = false
	p.Title = a.Title
	p.TitleHidden = false
	p.Frames++
}

func (p *Panel) Reveal(a shared.AnimeSummary) {
	p.QuestionHidden = true
	p.Title = a.Title
	p.TitleHidden = false
	p.ImageSrc = a.Image
	p.ImageHidden = false
	p.ViewHidden = false
	p.ViewHref = a.URL
}
