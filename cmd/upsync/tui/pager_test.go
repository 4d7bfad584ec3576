package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
)

func TestNewPager(t *testing.T) {
	p := NewPager("AGENT.md @ v2", "line one\nline two")
	assert.False(t, p.Quitting)
	assert.Contains(t, p.View(), "AGENT.md @ v2")
}

func TestPager_QuitKeys(t *testing.T) {
	for _, key := range []tea.KeyMsg{
		{Type: tea.KeyRunes, Runes: []rune("q")},
		{Type: tea.KeyEsc},
		{Type: tea.KeyCtrlC},
	} {
		p := NewPager("title", "content")
		model, cmd := p.Update(key)
		assert.True(t, model.(Pager).Quitting, key.String())
		assert.NotNil(t, cmd, key.String())
	}
}

func TestPager_SetSize(t *testing.T) {
	p := NewPager("title", strings.Repeat("line\n", 200))
	p.SetSize(100, 40)
	assert.Equal(t, 100, p.viewport.Width)
	assert.Equal(t, 38, p.viewport.Height)

	// Never collapses below one content line.
	p.SetSize(100, 1)
	assert.Equal(t, 1, p.viewport.Height)
}

func TestPager_Resize(t *testing.T) {
	p := NewPager("title", "content")
	model, _ := p.Update(tea.WindowSizeMsg{Width: 120, Height: 50})
	resized := model.(Pager)
	assert.Equal(t, 120, resized.viewport.Width)
	assert.Equal(t, 48, resized.viewport.Height)
}
