// Package menu implements the profile dropdown toggle.
package menu

import "sync"

// Region is where a click landed relative to the menu.
type Region int

const (
	Elsewhere Region = iota
	OnTrigger
	InsideMenu
)

// Menu is hidden until its trigger is clicked; a click anywhere outside both
// the trigger and the menu hides it again.
type Menu struct {
	mu      sync.Mutex
	visible bool
}

func New() *Menu {
	return &Menu{}
}

// Click handles a click and returns whether the menu is now visible.
func (m *Menu) Click(r Region) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	switch r {
	case OnTrigger:
		m.visible = !m.visible
	case Elsewhere:
		m.visible = false
	}
	return m.visible
}

func (m *Menu) Visible() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.visible
}
