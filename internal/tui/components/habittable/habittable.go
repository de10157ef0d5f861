// Package habittable renders the habit list as a table whose columns follow
// the saved layout.
package habittable

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/habitrack/internal/constants"
	"github.com/julianstephens/habitrack/internal/models"
)

var titles = map[string]string{
	constants.ColumnName:     "Habit",
	constants.ColumnCategory: "Category",
	constants.ColumnStreak:   "Streak",
	constants.ColumnToday:    "Today",
	constants.ColumnNote:     "Recent note",
}

type Model struct {
	table  table.Model
	layout models.Layout
	habits []models.HabitSummary
	focus  string
}

func New(layout models.Layout, height int) Model {
	t := table.New(table.WithFocused(true))

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(false)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	m := Model{table: t}
	m.SetHeight(height)
	m.SetLayout(layout)
	return m
}

// ColumnIDs returns the layout's column ids in order, skipping ids the
// table does not know how to render
func ColumnIDs(layout models.Layout) []string {
	ids := make([]string, 0, len(layout.Columns))
	for _, id := range layout.OrderedColumns() {
		if _, ok := titles[id]; ok {
			ids = append(ids, id)
		}
	}
	return ids
}

// Columns builds the table columns in layout order
func Columns(layout models.Layout, focus string) []table.Column {
	ids := ColumnIDs(layout)
	cols := make([]table.Column, 0, len(ids))
	for _, id := range ids {
		title := titles[id]
		if id == focus {
			title = "▸" + title
		}
		cols = append(cols, table.Column{Title: title, Width: layout.Columns[id].Width})
	}
	return cols
}

// Row renders one habit with cells in layout order
func Row(layout models.Layout, h models.HabitSummary) table.Row {
	ids := ColumnIDs(layout)
	row := make(table.Row, 0, len(ids))
	for _, id := range ids {
		row = append(row, cell(id, h))
	}
	return row
}

func cell(id string, h models.HabitSummary) string {
	switch id {
	case constants.ColumnName:
		return h.Name
	case constants.ColumnCategory:
		return h.Category
	case constants.ColumnStreak:
		return strconv.Itoa(h.Streak)
	case constants.ColumnToday:
		switch {
		case h.TodayCount == 1:
			return "✓"
		case h.TodayCount > 1:
			return fmt.Sprintf("✓ x%d", h.TodayCount)
		}
		return ""
	case constants.ColumnNote:
		if h.RecentNote != nil {
			return *h.RecentNote
		}
	}
	return ""
}

// SetLayout rebuilds columns and rows. Rows are cleared first so the table
// never renders rows with a different column count.
func (m *Model) SetLayout(layout models.Layout) {
	m.layout = layout
	m.rebuild()
}

// SetFocus highlights a column header; an empty id clears it
func (m *Model) SetFocus(id string) {
	m.focus = id
	m.rebuild()
}

// SetHabits replaces the rows. The cursor stays on the same index, clamped
// to the new list.
func (m *Model) SetHabits(habits []models.HabitSummary) {
	cursor := m.table.Cursor()
	m.habits = habits
	m.table.SetRows(m.rows())
	m.restoreCursor(cursor)
}

func (m *Model) SetHeight(h int) {
	if h < 1 {
		h = 1
	}
	m.table.SetHeight(h)
}

func (m *Model) rebuild() {
	cursor := m.table.Cursor()
	m.table.SetRows(nil)
	m.table.SetColumns(Columns(m.layout, m.focus))
	m.table.SetRows(m.rows())
	m.restoreCursor(cursor)
}

// restoreCursor puts the cursor back after the table clamped it while rows
// were swapped
func (m *Model) restoreCursor(cursor int) {
	if len(m.habits) == 0 {
		return
	}
	cursor = max(0, min(cursor, len(m.habits)-1))
	m.table.SetCursor(cursor)
}

func (m Model) rows() []table.Row {
	rows := make([]table.Row, 0, len(m.habits))
	for _, h := range m.habits {
		rows = append(rows, Row(m.layout, h))
	}
	return rows
}

// Selected returns the habit under the cursor
func (m Model) Selected() (models.HabitSummary, bool) {
	i := m.table.Cursor()
	if i < 0 || i >= len(m.habits) {
		return models.HabitSummary{}, false
	}
	return m.habits[i], true
}

func (m Model) Len() int {
	return len(m.habits)
}

// DoneToday counts habits with at least one completion today
func (m Model) DoneToday() int {
	n := 0
	for _, h := range m.habits {
		if h.TodayCount > 0 {
			n++
		}
	}
	return n
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	return m.table.View()
}
