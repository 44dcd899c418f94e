// Package view renders widget records into HTML fragments and keeps them in
// in-memory containers standing in for the page's log and grid elements.
package view

import (
	"html/template"
	"strings"
	"sync"
)

// Container is an ordered list of rendered children with a scroll position.
type Container struct {
	mu        sync.Mutex
	children  []template.HTML
	scrollTop int // number of children scrolled past
}

func NewContainer() *Container {
	return &Container{}
}

// Append adds a child at the end.
func (c *Container) Append(frag template.HTML) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.children = append(c.children, frag)
}

// Clear removes every child.
func (c *Container) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.children = nil
	c.scrollTop = 0
}

// ScrollToBottom moves the scroll position past the last child.
func (c *Container) ScrollToBottom() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.scrollTop = len(c.children)
}

// AtBottom reports whether the last child is in view.
func (c *Container) AtBottom() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.scrollTop == len(c.children)
}

func (c *Container) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.children)
}

// Children returns a copy of the rendered children.
func (c *Container) Children() []template.HTML {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]template.HTML(nil), c.children...)
}

// HTML concatenates all children.
func (c *Container) HTML() template.HTML {
	c.mu.Lock()
	defer c.mu.Unlock()
	var b strings.Builder
	for _, ch := range c.children {
		b.WriteString(string(ch))
	}
	return template.HTML(b.String())
}
