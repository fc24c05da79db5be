package picker

import (
	"fmt"
	"io"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ovehbe/710Launcher-sub000/logging"
	"github.com/ovehbe/710Launcher-sub000/tui/theme"
)

func (m Model) View() string {
	t := theme.DefaultTheme
	var b strings.Builder

	header := m.title
	if header == "" {
		header = "Pick an icon"
	}
	b.WriteString(t.Bold.Render(header))
	if m.pack != "" {
		b.WriteString(" " + t.Muted.Render("from "+m.pack))
	}
	b.WriteString("\n")
	b.WriteString(m.filterInput.View())
	b.WriteString("\n\n")

	if len(m.filtered) == 0 {
		b.WriteString(t.Muted.Render("  no matching icons"))
		b.WriteString("\n")
	}

	start, end := m.window()
	for i := start; i < end; i++ {
		name := m.filtered[i]
		if i == m.cursor {
			b.WriteString(t.Selected.Render("> " + name))
		} else {
			b.WriteString("  " + name)
		}
		b.WriteString("\n")
	}

	b.WriteString(t.Muted.Render(fmt.Sprintf("\n%d/%d", len(m.filtered), len(m.names))))
	b.WriteString("  ")
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

// window returns the visible slice of filtered around the cursor.
func (m Model) window() (int, int) {
	height := m.height
	if height <= 0 {
		height = pageSize
	}
	start := 0
	if m.cursor >= height {
		start = m.cursor - height + 1
	}
	end := start + height
	if end > len(m.filtered) {
		end = len(m.filtered)
	}
	return start, end
}

// Run shows the picker on the terminal and returns the chosen name. Log
// output is muted while the alternate screen is active.
func Run(cfg Config, opts ...tea.ProgramOption) (string, error) {
	restore := logging.SwapGlobalOutput(io.Discard)
	defer restore()

	final, err := tea.NewProgram(New(cfg), opts...).Run()
	if err != nil {
		return "", err
	}
	return final.(Model).Selected(), nil
}
