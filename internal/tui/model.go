// Package tui is the interactive habit list. It talks only to the habit
// repository; reminder delivery is injected from outside as ReminderMsg.
package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/habitrack/internal/constants"
	apperrors "github.com/julianstephens/habitrack/internal/errors"
	"github.com/julianstephens/habitrack/internal/logger"
	"github.com/julianstephens/habitrack/internal/models"
	"github.com/julianstephens/habitrack/internal/streak"
	"github.com/julianstephens/habitrack/internal/tracker"
	"github.com/julianstephens/habitrack/internal/tui/components/habittable"
	"github.com/julianstephens/habitrack/internal/tui/components/history"
)

const (
	// rows taken by title, status, banner and help around the table
	chromeHeight = 9
	minColWidth  = 3
	refreshEvery = time.Minute
)

// ReminderMsg shows a reminder banner and refreshes the list
type ReminderMsg struct {
	Text string
}

type tickMsg time.Time

type Model struct {
	repo  *tracker.Repository
	state constants.SessionState
	keys  KeyMap
	help  help.Model

	layout  models.Layout
	table   habittable.Model
	history history.Model
	today   string

	form      *huh.Form
	habitForm *HabitFormModel
	noteForm  *NoteFormModel
	targetID  int64
	target    string

	// index into habittable.ColumnIDs(layout), -1 when no column is selected
	focusCol int

	status    string
	statusErr bool
	banner    string

	width  int
	height int
}

// NewModel loads the saved layout and the habit list
func NewModel(repo *tracker.Repository) (Model, error) {
	layout, err := repo.Layout()
	if err != nil {
		return Model{}, err
	}

	m := Model{
		repo:     repo,
		state:    constants.StateHabits,
		keys:     DefaultKeyMap(),
		help:     help.New(),
		layout:   layout,
		focusCol: -1,
		width:    layout.Window.Width,
		height:   layout.Window.Height,
	}
	m.table = habittable.New(layout, m.tableHeight())
	if err := m.refresh(); err != nil {
		return Model{}, err
	}
	return m, nil
}

func (m Model) Init() tea.Cmd {
	return tick()
}

func tick() tea.Cmd {
	return tea.Tick(refreshEvery, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Layout returns the column layout with the last seen terminal size
func (m Model) Layout() models.Layout {
	l := m.layout
	if m.width > 0 && m.height > 0 {
		l.Window.Width = m.width
		l.Window.Height = m.height
	}
	return l
}

func (m Model) tableHeight() int {
	return m.height - chromeHeight
}

func (m *Model) refresh() error {
	habits, err := m.repo.ListHabits()
	if err != nil {
		return err
	}
	m.table.SetHabits(habits)
	m.today = m.repo.Today()
	return nil
}

func (m *Model) setStatus(msg string) {
	m.status = msg
	m.statusErr = false
}

func (m *Model) setError(err error) {
	if !apperrors.IsUserFacing(err) {
		logger.Error("TUI operation failed", "error", err)
	}
	m.status = apperrors.Format(err)
	m.statusErr = true
}

func (m *Model) openHistory(h models.HabitSummary) error {
	days, err := m.repo.History(h.ID)
	if err != nil {
		return err
	}
	stats, err := m.repo.Stats(h.ID)
	if err != nil {
		return err
	}
	today, err := streak.ParseDay(m.repo.Today())
	if err != nil {
		return err
	}
	m.history = history.New(h.Habit, stats, days, today)
	m.state = constants.StateHistory
	return nil
}

func (m Model) focusedColumn() string {
	ids := habittable.ColumnIDs(m.layout)
	if m.focusCol < 0 || m.focusCol >= len(ids) {
		return ""
	}
	return ids[m.focusCol]
}

func (m *Model) moveFocus(delta int) {
	n := len(habittable.ColumnIDs(m.layout))
	if n == 0 {
		return
	}
	if m.focusCol < 0 {
		if delta > 0 {
			m.focusCol = 0
		} else {
			m.focusCol = n - 1
		}
	} else {
		m.focusCol = (m.focusCol + delta + n) % n
	}
	m.table.SetFocus(m.focusedColumn())
}

func (m *Model) resizeColumn(delta int) {
	id := m.focusedColumn()
	if id == "" {
		m.setStatus("Select a column with [ or ] first")
		return
	}
	col := m.layout.Columns[id]
	col.Width += delta
	if col.Width < minColWidth {
		col.Width = minColWidth
	}
	m.layout.Columns[id] = col
	m.table.SetLayout(m.layout)
}

// moveColumn swaps the focused column with its neighbour. Positions of the
// rendered columns are renumbered so the saved order is always dense.
func (m *Model) moveColumn(delta int) {
	id := m.focusedColumn()
	if id == "" {
		m.setStatus("Select a column with [ or ] first")
		return
	}
	ids := habittable.ColumnIDs(m.layout)
	to := m.focusCol + delta
	if to < 0 || to >= len(ids) {
		return
	}
	ids[m.focusCol], ids[to] = ids[to], ids[m.focusCol]
	for pos, cid := range ids {
		col := m.layout.Columns[cid]
		col.Position = pos
		m.layout.Columns[cid] = col
	}
	m.focusCol = to
	m.table.SetLayout(m.layout)
}
