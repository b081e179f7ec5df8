package components

import (
	"strconv"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/phonassess/internal/ui/theme"
)

// NavItem is one numbered button of the navigation bar.
type NavItem struct {
	Number    int
	Practice  bool
	Current   bool
	Completed bool
}

// Label returns "연N" for practice items and the bare number otherwise.
func (n NavItem) Label() string {
	if n.Practice {
		return "연" + strconv.Itoa(n.Number)
	}
	return strconv.Itoa(n.Number)
}

// NavBar renders the item buttons in rows that fit the given width.
type NavBar struct {
	Items []NavItem
	Width int
}

// NewNavBar creates a navigation bar.
func NewNavBar(items []NavItem, width int) NavBar {
	return NavBar{Items: items, Width: width}
}

func (b NavBar) cell(item NavItem) string {
	label := " " + item.Label() + " "
	switch {
	case item.Current:
		return theme.NavCurrent.Render(label)
	case item.Completed:
		return theme.NavCompleted.Render(label)
	default:
		return theme.NavPending.Render(label)
	}
}

// View renders the bar, wrapping onto new lines as needed.
func (b NavBar) View() string {
	var (
		lines []string
		line  strings.Builder
		used  int
	)
	for _, item := range b.Items {
		c := b.cell(item)
		w := lipgloss.Width(c) + 1
		if b.Width > 0 && used > 0 && used+w > b.Width {
			lines = append(lines, line.String())
			line.Reset()
			used = 0
		}
		line.WriteString(c)
		line.WriteString(" ")
		used += w
	}
	if line.Len() > 0 {
		lines = append(lines, line.String())
	}
	return strings.Join(lines, "\n")
}
