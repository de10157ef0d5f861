package constants

// SessionState is the screen the TUI is currently showing
type SessionState int

const (
	StateHabits SessionState = iota
	StateHistory
	StateAddHabit
	StateEditHabit
	StateNote
	StateConfirmDelete
)
