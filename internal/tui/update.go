package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/habitrack/internal/constants"
	"github.com/julianstephens/habitrack/internal/logger"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.table.SetHeight(m.tableHeight())
		return m, nil

	case ReminderMsg:
		m.banner = msg.Text
		if err := m.refresh(); err != nil {
			m.setError(err)
		}
		return m, nil

	case tickMsg:
		// pick up the new day after midnight
		if m.repo.Today() != m.today {
			logger.Debug("Day changed, refreshing habit list", "today", m.repo.Today())
			if err := m.refresh(); err != nil {
				m.setError(err)
			}
		}
		return m, tick()
	}

	switch m.state {
	case constants.StateAddHabit, constants.StateEditHabit:
		return m.updateHabitForm(msg)
	case constants.StateNote:
		return m.updateNoteForm(msg)
	case constants.StateConfirmDelete:
		return m.updateConfirmDelete(msg)
	case constants.StateHistory:
		return m.updateHistory(msg)
	}
	return m.updateHabits(msg)
}

func (m Model) updateHabits(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		var cmd tea.Cmd
		m.table, cmd = m.table.Update(msg)
		return m, cmd
	}

	// any key dismisses the reminder banner and the last status
	m.banner = ""
	m.setStatus("")

	switch {
	case key.Matches(keyMsg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(keyMsg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll

	case key.Matches(keyMsg, m.keys.Add):
		m.habitForm = &HabitFormModel{}
		m.form = NewHabitForm(m.habitForm, "New habit")
		m.state = constants.StateAddHabit
		return m, m.form.Init()

	case key.Matches(keyMsg, m.keys.Edit):
		h, ok := m.table.Selected()
		if !ok {
			return m, nil
		}
		m.targetID, m.target = h.ID, h.Name
		m.habitForm = &HabitFormModel{Name: h.Name, Category: h.Category}
		m.form = NewHabitForm(m.habitForm, "Edit habit")
		m.state = constants.StateEditHabit
		return m, m.form.Init()

	case key.Matches(keyMsg, m.keys.Delete):
		if h, ok := m.table.Selected(); ok {
			m.targetID, m.target = h.ID, h.Name
			m.state = constants.StateConfirmDelete
		}

	case key.Matches(keyMsg, m.keys.Done):
		if h, ok := m.table.Selected(); ok {
			m.recordCompletion(h.ID, h.Name, "")
		}

	case key.Matches(keyMsg, m.keys.Note):
		h, ok := m.table.Selected()
		if !ok {
			return m, nil
		}
		m.targetID, m.target = h.ID, h.Name
		m.noteForm = &NoteFormModel{}
		m.form = NewNoteForm(m.noteForm, h.Name)
		m.state = constants.StateNote
		return m, m.form.Init()

	case key.Matches(keyMsg, m.keys.History):
		if h, ok := m.table.Selected(); ok {
			if err := m.openHistory(h); err != nil {
				m.setError(err)
			}
		}

	case key.Matches(keyMsg, m.keys.PrevColumn):
		m.moveFocus(-1)
	case key.Matches(keyMsg, m.keys.NextColumn):
		m.moveFocus(1)
	case key.Matches(keyMsg, m.keys.Wider):
		m.resizeColumn(1)
	case key.Matches(keyMsg, m.keys.Narrower):
		m.resizeColumn(-1)
	case key.Matches(keyMsg, m.keys.MoveLeft):
		m.moveColumn(-1)
	case key.Matches(keyMsg, m.keys.MoveRight):
		m.moveColumn(1)

	default:
		var cmd tea.Cmd
		m.table, cmd = m.table.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *Model) recordCompletion(habitID int64, name, note string) {
	n, err := m.repo.RecordCompletion(habitID, note)
	if err != nil {
		m.setError(err)
		return
	}
	m.setStatus(fmt.Sprintf("✓ %s done (streak: %d)", name, n))
	if err := m.refresh(); err != nil {
		m.setError(err)
	}
}

// updateForm forwards msg to the active form. It reports whether the form
// finished; an aborted form returns to the habit list.
func (m *Model) updateForm(msg tea.Msg) (bool, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		m.closeForm()
		return false, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		return true, cmd
	case huh.StateAborted:
		m.closeForm()
	}
	return false, cmd
}

func (m *Model) closeForm() {
	m.state = constants.StateHabits
	m.form = nil
	m.habitForm = nil
	m.noteForm = nil
}

func (m Model) updateHabitForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	done, cmd := m.updateForm(msg)
	if !done {
		return m, cmd
	}

	var err error
	if m.state == constants.StateAddHabit {
		h, addErr := m.repo.AddHabit(m.habitForm.Name, m.habitForm.Category)
		if err = addErr; err == nil {
			m.setStatus(fmt.Sprintf("Added habit #%d: %s", h.ID, h.Name))
		}
	} else {
		if err = m.repo.EditHabit(m.targetID, m.habitForm.Name, m.habitForm.Category); err == nil {
			m.setStatus(fmt.Sprintf("Updated habit: %s", m.habitForm.Name))
		}
	}
	if err != nil {
		// stay on the form so the input can be corrected
		m.setError(err)
		m.form.State = huh.StateNormal
		return m, cmd
	}

	m.closeForm()
	if err := m.refresh(); err != nil {
		m.setError(err)
	}
	return m, cmd
}

func (m Model) updateNoteForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	done, cmd := m.updateForm(msg)
	if !done {
		return m, cmd
	}
	note := m.noteForm.Note
	m.closeForm()
	m.recordCompletion(m.targetID, m.target, note)
	return m, cmd
}

func (m Model) updateConfirmDelete(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, m.keys.Yes):
		m.state = constants.StateHabits
		if err := m.repo.DeleteHabit(m.targetID); err != nil {
			m.setError(err)
			return m, nil
		}
		m.setStatus(fmt.Sprintf("Deleted habit: %s", m.target))
		if err := m.refresh(); err != nil {
			m.setError(err)
		}
	case key.Matches(keyMsg, m.keys.No):
		m.state = constants.StateHabits
		m.setStatus("Deletion cancelled")
	}
	return m, nil
}

func (m Model) updateHistory(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(keyMsg, m.keys.Back):
		m.state = constants.StateHabits
	case key.Matches(keyMsg, m.keys.PrevMonth):
		m.history.PrevMonth()
	case key.Matches(keyMsg, m.keys.NextMonth):
		m.history.NextMonth()
	case key.Matches(keyMsg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	}
	return m, nil
}
