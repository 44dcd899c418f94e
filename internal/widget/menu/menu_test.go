package menu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMenu_Click(t *testing.T) {
	m := New()
	assert.False(t, m.Visible())

	assert.True(t, m.Click(OnTrigger))
	assert.True(t, m.Click(InsideMenu))
	assert.False(t, m.Click(OnTrigger))
	assert.True(t, m.Click(OnTrigger))
	assert.False(t, m.Click(Elsewhere))
	assert.False(t, m.Click(Elsewhere))
	assert.False(t, m.Click(InsideMenu))
}
