// Package carousel implements the home page carousel: responsive paging, the
// category catalog and the two random pick interactions.
package carousel

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"takosu/internal/shared"
)

// Breakpoint caps how many cards are visible up to a viewport width.
type Breakpoint struct {
	MaxWidth int
	PerView  float64
}

const (
	DefaultPerView = 5.5
	Gap            = 20
)

// Breakpoints are ordered by width, narrowest first.
var Breakpoints = []Breakpoint{
	{MaxWidth: 480, PerView: 1},
	{MaxWidth: 768, PerView: 2},
	{MaxWidth: 1024, PerView: 3},
	{MaxWidth: 1280, PerView: 4},
	{MaxWidth: 1536, PerView: 5},
	{MaxWidth: 1792, PerView: 5.5},
}

// PerView returns the number of visible cards for a viewport width.
func PerView(width int) float64 {
	for _, bp := range Breakpoints {
		if width <= bp.MaxWidth {
			return bp.PerView
		}
	}
	return DefaultPerView
}

// Catalog maps category ids to their anime, in heading order.
type Catalog struct {
	order      []string
	categories map[string]shared.CategoryData
}

func NewCatalog(categories []shared.CategoryData) *Catalog {
	c := &Catalog{categories: make(map[string]shared.CategoryData, len(categories))}
	for _, cat := range categories {
		if _, dup := c.categories[cat.ID]; !dup {
			c.order = append(c.order, cat.ID)
		}
		c.categories[cat.ID] = cat
	}
	return c
}

// ParseCategoriesData decodes the embedded categories payload. Both the list
// form ([{id, name, animes}]) and the older positional object form
// ({"animes-1": [...]}) are accepted; positional keys become the ids.
func ParseCategoriesData(raw []byte) (*Catalog, error) {
	var list []shared.CategoryData
	if err := json.Unmarshal(raw, &list); err == nil {
		return NewCatalog(list), nil
	}

	var keyed map[string][]shared.AnimeSummary
	if err := json.Unmarshal(raw, &keyed); err != nil {
		return nil, fmt.Errorf("invalid categories data: %w", err)
	}
	keys := make([]string, 0, len(keyed))
	for k := range keyed {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return positional(keys[i]) < positional(keys[j]) })

	list = make([]shared.CategoryData, 0, len(keys))
	for _, k := range keys {
		list = append(list, shared.CategoryData{ID: k, Animes: keyed[k]})
	}
	return NewCatalog(list), nil
}

func positional(key string) int {
	n, err := strconv.Atoi(strings.TrimPrefix(key, "animes-"))
	if err != nil {
		return int(^uint(0) >> 1)
	}
	return n
}

// IDs returns the category ids in heading order.
func (c *Catalog) IDs() []string {
	return append([]string(nil), c.order...)
}

// Category returns one category.
func (c *Catalog) Category(id string) (shared.CategoryData, bool) {
	cat, ok := c.categories[id]
	return cat, ok
}

// All flattens every category's anime, in heading order.
func (c *Catalog) All() []shared.AnimeSummary {
	var all []shared.AnimeSummary
	for _, id := range c.order {
		all = append(all, c.categories[id].Animes...)
	}
	return all
}

var ErrEmptyCatalog = errors.New("catalog has no anime")
