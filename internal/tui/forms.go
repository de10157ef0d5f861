package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"
)

// HabitFormModel backs the add and edit habit forms
type HabitFormModel struct {
	Name     string
	Category string
}

// NoteFormModel backs the done-with-note form
type NoteFormModel struct {
	Note string
}

func required(field string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", field)
		}
		return nil
	}
}

// NewHabitForm creates the form used for both adding and editing a habit
func NewHabitForm(fm *HabitFormModel, title string) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Name").
				Value(&fm.Name).
				Validate(required("name")),
			huh.NewInput().
				Title("Category").
				Value(&fm.Category).
				Validate(required("category")),
		).Title(title),
	)
}

// NewNoteForm creates the form shown before recording a completion with a note
func NewNoteForm(fm *NoteFormModel, habitName string) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Note").
				Description("Recorded with today's completion of " + habitName).
				Value(&fm.Note),
		),
	)
}
