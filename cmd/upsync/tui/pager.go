package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Pager is a full-screen scrollable view for diff output too long to read
// inline.
type Pager struct {
	title    string
	viewport viewport.Model
	ready    bool
	Quitting bool
}

// NewPager creates a pager showing content under a fixed title bar.
func NewPager(title, content string) Pager {
	vp := viewport.New(80, 24)
	vp.SetContent(content)
	return Pager{title: title, viewport: vp}
}

// Init implements tea.Model.
func (p Pager) Init() tea.Cmd {
	return nil
}

// Update handles resizing, scrolling, and quit keys.
func (p Pager) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			p.Quitting = true
			return p, tea.Quit
		case "g":
			p.viewport.GotoTop()
			return p, nil
		case "G":
			p.viewport.GotoBottom()
			return p, nil
		}

	case tea.WindowSizeMsg:
		p.SetSize(msg.Width, msg.Height)
		p.ready = true
	}

	var cmd tea.Cmd
	p.viewport, cmd = p.viewport.Update(msg)
	return p, cmd
}

// SetSize fits the viewport under the title bar and above the status bar.
func (p *Pager) SetSize(width, height int) {
	contentHeight := height - 2 // title bar and status bar
	if contentHeight < 1 {
		contentHeight = 1
	}
	p.viewport.Width = width
	p.viewport.Height = contentHeight
}

// ScrollPercent returns the scroll position for the status bar, 0-100.
func (p Pager) ScrollPercent() int {
	return int(p.viewport.ScrollPercent() * 100)
}

// View renders title bar, content, and status bar.
func (p Pager) View() string {
	title := TitleStyle.Render(p.title)

	status := StatusBarStyle.Render(fmt.Sprintf("%3d%%  ", p.ScrollPercent())) +
		StatusBarKeyStyle.Render("↑/↓") + StatusBarStyle.Render(" scroll  ") +
		StatusBarKeyStyle.Render("g/G") + StatusBarStyle.Render(" top/bottom  ") +
		StatusBarKeyStyle.Render("q") + StatusBarStyle.Render(" quit")

	content := ContentStyle.Render(p.viewport.View())

	return lipgloss.JoinVertical(lipgloss.Left,
		title,
		content,
		strings.TrimRight(status, "\n"),
	)
}
