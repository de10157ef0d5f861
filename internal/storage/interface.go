package storage

import "github.com/julianstephens/habitrack/internal/models"

// Provider is the persistent store behind the habit repository. Every
// mutating call is durable before it returns.
type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Habits
	AddHabit(models.Habit) (models.Habit, error)
	GetHabit(id int64) (models.Habit, error)
	UpdateHabit(models.Habit) error
	DeleteHabit(id int64) error
	GetHabitSummaries(today string) ([]models.HabitSummary, error)

	// Completions
	AddCompletion(models.Completion) (models.Completion, error)
	CompleteHabit(c models.Completion, streak int, lastCompleted string, update bool) (models.Completion, error)
	GetCompletion(id int64) (models.Completion, error)
	GetCompletionsForHabit(habitID int64) ([]models.Completion, error)
	GetCompletionCountsByDay(habitID int64) ([]models.DayCount, error)
	UpdateCompletionNote(id int64, note *string) error
	DeleteCompletion(id int64) error

	// Settings
	GetSettings() (map[string]string, error)
	SaveSettings(map[string]string) error

	// Utils
	GetConfigPath() string
}
