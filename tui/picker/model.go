// Package picker is the interactive palette for pinning a custom icon: it
// lists a pack's drawable names and returns the one the user chose.
package picker

import (
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

const pageSize = 10

// Config defines what the picker shows.
type Config struct {
	// Title is shown above the list, e.g. the app being themed.
	Title string
	// Pack is the package the names come from.
	Pack string
	// Names is the palette, usually Pack.ListAllIconNames().
	Names []string
}

// Model is the picker's bubbletea model.
type Model struct {
	title    string
	pack     string
	names    []string
	filtered []string
	cursor   int
	height   int

	filterInput textinput.Model
	help        help.Model
	keys        KeyMap

	selected string
	quit     bool
}

// New creates a picker over cfg.Names.
func New(cfg Config) Model {
	ti := textinput.New()
	ti.Placeholder = "Press / to filter..."
	ti.CharLimit = 128
	ti.Width = 40

	m := Model{
		title:       cfg.Title,
		pack:        cfg.Pack,
		names:       cfg.Names,
		filterInput: ti,
		help:        help.New(),
		keys:        defaultKeyMap,
		height:      pageSize,
	}
	m.updateFiltered()
	return m
}

func (m Model) Init() tea.Cmd {
	return nil
}

// Selected is the chosen drawable, "" when the user quit.
func (m Model) Selected() string {
	return m.selected
}

// Cancelled reports whether the picker was closed without a choice.
func (m Model) Cancelled() bool {
	return m.quit && m.selected == ""
}

// Filtered returns the names matching the current filter.
func (m Model) Filtered() []string {
	return m.filtered
}

// Cursor is the index of the highlighted name in Filtered.
func (m Model) Cursor() int {
	return m.cursor
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.height = msg.Height - 6
		if m.height < 3 {
			m.height = 3
		}
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		if m.filterInput.Focused() {
			return m.updateFilter(msg)
		}

		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quit = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Search):
			cmd := m.filterInput.Focus()
			return m, cmd
		case key.Matches(msg, m.keys.Select):
			return m.choose()
		case key.Matches(msg, m.keys.Up):
			m.move(-1)
		case key.Matches(msg, m.keys.Down):
			m.move(1)
		case key.Matches(msg, m.keys.PageUp):
			m.move(-m.height)
		case key.Matches(msg, m.keys.PageDown):
			m.move(m.height)
		case key.Matches(msg, m.keys.GotoTop):
			m.cursor = 0
		case key.Matches(msg, m.keys.GotoEnd):
			m.cursor = len(m.filtered) - 1
			m.clamp()
		}
	}
	return m, nil
}

func (m Model) updateFilter(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.filterInput.Blur()
		return m, nil
	case tea.KeyEnter:
		m.filterInput.Blur()
		return m.choose()
	case tea.KeyUp:
		m.move(-1)
		return m, nil
	case tea.KeyDown:
		m.move(1)
		return m, nil
	}

	var cmd tea.Cmd
	m.filterInput, cmd = m.filterInput.Update(msg)
	m.updateFiltered()
	return m, cmd
}

func (m Model) choose() (tea.Model, tea.Cmd) {
	if len(m.filtered) == 0 {
		return m, nil
	}
	m.selected = m.filtered[m.cursor]
	m.quit = true
	return m, tea.Quit
}

func (m *Model) move(delta int) {
	m.cursor += delta
	m.clamp()
}

func (m *Model) clamp() {
	if m.cursor >= len(m.filtered) {
		m.cursor = len(m.filtered) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// updateFiltered keeps names containing every space-separated term of the
// filter, case-insensitively.
func (m *Model) updateFiltered() {
	terms := strings.Fields(strings.ToLower(m.filterInput.Value()))
	if len(terms) == 0 {
		m.filtered = m.names
		m.clamp()
		return
	}

	m.filtered = nil
	for _, name := range m.names {
		lower := strings.ToLower(name)
		match := true
		for _, term := range terms {
			if !strings.Contains(lower, term) {
				match = false
				break
			}
		}
		if match {
			m.filtered = append(m.filtered, name)
		}
	}
	m.clamp()
}
