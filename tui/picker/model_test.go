package picker

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func send(t *testing.T, m Model, msgs ...tea.Msg) Model {
	t.Helper()
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		var ok bool
		m, ok = next.(Model)
		require.True(t, ok)
	}
	return m
}

func newPicker() Model {
	return New(Config{
		Title: "com.maps/com.maps.Main",
		Pack:  "com.pack",
		Names: []string{"calendar", "camera", "maps", "maps_alt", "music"},
	})
}

func TestNavigateAndSelect(t *testing.T) {
	m := send(t, newPicker(),
		tea.KeyMsg{Type: tea.KeyDown},
		keyRunes("j"),
		tea.KeyMsg{Type: tea.KeyEnter},
	)
	assert.Equal(t, "maps", m.Selected())
	assert.False(t, m.Cancelled())
}

func TestCursorClamps(t *testing.T) {
	m := send(t, newPicker(), tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(t, 0, m.Cursor())

	m = send(t, m, keyRunes("G"))
	assert.Equal(t, 4, m.Cursor())
	m = send(t, m, tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, 4, m.Cursor())
	m = send(t, m, keyRunes("g"))
	assert.Equal(t, 0, m.Cursor())
}

func TestFilter(t *testing.T) {
	m := send(t, newPicker(), keyRunes("/"), keyRunes("m"), keyRunes("a"))
	assert.Equal(t, []string{"maps", "maps_alt"}, m.Filtered())

	m = send(t, m, keyRunes("p"))
	assert.Equal(t, []string{"maps", "maps_alt"}, m.Filtered())

	m = send(t, m, tea.KeyMsg{Type: tea.KeyDown}, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, "maps_alt", m.Selected())
}

func TestFilterWithNoMatchSelectsNothing(t *testing.T) {
	m := send(t, newPicker(), keyRunes("/"), keyRunes("z"), keyRunes("z"), tea.KeyMsg{Type: tea.KeyEnter})
	assert.Empty(t, m.Filtered())
	assert.Equal(t, "", m.Selected())
	assert.Contains(t, m.View(), "no matching icons")
}

func TestQuit(t *testing.T) {
	m := send(t, newPicker(), keyRunes("q"))
	assert.True(t, m.Cancelled())
	assert.Equal(t, "", m.Selected())
}

func TestViewShowsNames(t *testing.T) {
	view := newPicker().View()
	assert.Contains(t, view, "com.maps/com.maps.Main")
	assert.Contains(t, view, "calendar")
	assert.Contains(t, view, "5/5")
}
