package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/habitrack/internal/constants"
)

func (m Model) View() string {
	switch m.state {
	case constants.StateAddHabit, constants.StateEditHabit, constants.StateNote:
		return docStyle.Render(m.viewForm())
	case constants.StateConfirmDelete:
		return m.viewConfirmDelete()
	case constants.StateHistory:
		return docStyle.Render(m.viewHistory())
	}
	return docStyle.Render(m.viewHabits())
}

func (m Model) viewHabits() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("%s · %s", constants.AppName, m.today)))
	b.WriteString("\n\n")

	if m.banner != "" {
		b.WriteString(bannerStyle.Render("⏰ " + m.banner))
		b.WriteString("\n\n")
	}

	if m.table.Len() == 0 {
		b.WriteString(mutedStyle.Render("No habits yet. Press a to add one."))
		b.WriteString("\n")
	} else {
		b.WriteString(m.table.View())
		b.WriteString("\n")
		b.WriteString(mutedStyle.Render(fmt.Sprintf("Done today: %d/%d", m.table.DoneToday(), m.table.Len())))
		if id := m.focusedColumn(); id != "" {
			b.WriteString(mutedStyle.Render(fmt.Sprintf("   column %s: width %d", id, m.layout.Columns[id].Width)))
		}
		b.WriteString("\n")
	}

	b.WriteString(m.viewStatus())
	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

func (m Model) viewStatus() string {
	if m.status == "" {
		return ""
	}
	if !m.statusErr {
		return successStyle.Render(m.status)
	}
	if strings.HasPrefix(m.status, "Warning") {
		return warningStyle.Render(m.status)
	}
	return dangerStyle.Render(m.status)
}

func (m Model) viewForm() string {
	if m.form == nil {
		return ""
	}
	var b strings.Builder
	if m.state == constants.StateNote {
		b.WriteString(titleStyle.Render("Done: " + m.target))
		b.WriteString("\n\n")
	}
	b.WriteString(m.form.View())
	if m.statusErr {
		b.WriteString("\n")
		b.WriteString(m.viewStatus())
	}
	b.WriteString("\n")
	b.WriteString(mutedStyle.Render("esc to cancel"))
	return b.String()
}

func (m Model) viewConfirmDelete() string {
	question := fmt.Sprintf("Delete habit %q and all of its completions?", m.target)
	return lipgloss.Place(m.width, m.height-4,
		lipgloss.Center, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Center,
			dangerStyle.Render(question),
			"",
			"[y] Yes",
			"[n] No",
		),
	)
}

func (m Model) viewHistory() string {
	var b strings.Builder
	b.WriteString(m.history.View())
	b.WriteString("\n\n")
	if m.statusErr {
		b.WriteString(m.viewStatus())
		b.WriteString("\n")
	}
	b.WriteString(m.help.View(historyKeys{k: m.keys}))
	return b.String()
}
