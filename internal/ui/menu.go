package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/kiyori/preso/internal/deck"
)

var (
	menuBoxStyle = lipgloss.NewStyle().
			Padding(1, 2).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#7aa2f7")).
			Background(lipgloss.Color("#1f2335"))
	menuTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#7aa2f7"))
	menuLineStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#a9b1d6"))
	menuCursorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#1a1b26")).
			Background(lipgloss.Color("#7aa2f7")).
			Bold(true)
	menuCurrentStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#c0caf5")).
				Background(lipgloss.Color("#283457"))
)

// menu is the slide menu overlay: one row per slide, a movable cursor, and
// an emphasized row for the slide currently shown.
type menu struct {
	titles []string
	ids    []string
	cursor int
}

func newMenu(reg *deck.Registry) menu {
	ids := make([]string, reg.Len())
	for i := 0; i < reg.Len(); i++ {
		ids[i] = reg.At(i).ID
	}
	return menu{titles: reg.Titles(), ids: ids}
}

func (m *menu) moveCursor(delta int) {
	m.cursor = clamp(m.cursor+delta, 0, len(m.titles)-1)
}

func (m *menu) setCursor(index int) {
	m.cursor = clamp(index, 0, len(m.titles)-1)
}

// target returns how to navigate to the cursor row: by identifier when the
// slide has one, by index otherwise.
func (m *menu) target() (id string, index int) {
	return m.ids[m.cursor], m.cursor
}

// view renders the overlay box. current is the index of the active slide,
// which gets the emphasized style regardless of where the cursor sits.
func (m *menu) view(current int) string {
	var b strings.Builder
	b.WriteString(menuTitleStyle.Render("Slides"))
	b.WriteByte('\n')
	for i, title := range m.titles {
		b.WriteByte('\n')
		row := " " + title + " "
		switch {
		case i == m.cursor:
			b.WriteString(menuCursorStyle.Render(row))
		case i == current:
			b.WriteString(menuCurrentStyle.Render(row))
		default:
			b.WriteString(menuLineStyle.Render(row))
		}
	}
	return menuBoxStyle.Render(b.String())
}
