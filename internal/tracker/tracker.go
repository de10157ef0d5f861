// Package tracker is the habit repository. It validates input, runs the
// streak engine on every completion and persists through a storage.Provider.
package tracker

import (
	"strings"
	"time"

	apperrors "github.com/julianstephens/habitrack/internal/errors"
	"github.com/julianstephens/habitrack/internal/logger"
	"github.com/julianstephens/habitrack/internal/models"
	"github.com/julianstephens/habitrack/internal/storage"
	"github.com/julianstephens/habitrack/internal/streak"
)

// Option configures a Repository
type Option func(*Repository)

// WithClock replaces time.Now, mostly for tests
func WithClock(now func() time.Time) Option {
	return func(r *Repository) {
		r.now = now
	}
}

// WithLocation sets the timezone that decides what "today" is
func WithLocation(loc *time.Location) Option {
	return func(r *Repository) {
		if loc != nil {
			r.loc = loc
		}
	}
}

type Repository struct {
	store storage.Provider
	now   func() time.Time
	loc   *time.Location
}

func New(store storage.Provider, opts ...Option) *Repository {
	r := &Repository{
		store: store,
		now:   time.Now,
		loc:   time.Local,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Today returns the current calendar day as YYYY-MM-DD
func (r *Repository) Today() string {
	return streak.FormatDay(r.today())
}

func (r *Repository) today() time.Time {
	return r.now().In(r.loc)
}

func validateHabit(name, category string) (string, string, error) {
	name = strings.TrimSpace(name)
	category = strings.TrimSpace(category)
	if name == "" {
		return "", "", apperrors.Validationf("habit name cannot be empty")
	}
	if category == "" {
		return "", "", apperrors.Validationf("habit category cannot be empty")
	}
	return name, category, nil
}

// AddHabit creates a habit with no completions and a zero streak
func (r *Repository) AddHabit(name, category string) (models.Habit, error) {
	name, category, err := validateHabit(name, category)
	if err != nil {
		return models.Habit{}, err
	}

	habit, err := r.store.AddHabit(models.Habit{Name: name, Category: category})
	if err != nil {
		return models.Habit{}, err
	}
	logger.Debug("Habit added", "id", habit.ID, "name", habit.Name)
	return habit, nil
}

// GetHabit returns a single habit
func (r *Repository) GetHabit(habitID int64) (models.Habit, error) {
	return r.store.GetHabit(habitID)
}

// EditHabit renames or recategorizes a habit. The streak is left alone.
func (r *Repository) EditHabit(habitID int64, name, category string) error {
	name, category, err := validateHabit(name, category)
	if err != nil {
		return err
	}

	habit, err := r.store.GetHabit(habitID)
	if err != nil {
		return err
	}
	habit.Name = name
	habit.Category = category
	return r.store.UpdateHabit(habit)
}

// DeleteHabit removes a habit and every completion recorded for it
func (r *Repository) DeleteHabit(habitID int64) error {
	if err := r.store.DeleteHabit(habitID); err != nil {
		return err
	}
	logger.Debug("Habit deleted", "id", habitID)
	return nil
}

// ListHabits returns every habit ordered by category then name, annotated
// with today's completion count and the most recent note.
func (r *Repository) ListHabits() ([]models.HabitSummary, error) {
	return r.store.GetHabitSummaries(r.Today())
}

// RecordCompletion marks a habit done today and returns the resulting
// streak. Repeats on the same day add a completion row but leave the streak
// as it was.
func (r *Repository) RecordCompletion(habitID int64, note string) (int, error) {
	habit, err := r.store.GetHabit(habitID)
	if err != nil {
		return 0, err
	}

	today := r.today()
	var last *time.Time
	if habit.LastCompleted != nil {
		t, err := streak.ParseDay(*habit.LastCompleted)
		if err != nil {
			// A malformed date restarts the streak rather than blocking the user.
			logger.Warn("Ignoring malformed last_completed", "habit", habit.ID, "value", *habit.LastCompleted)
		} else {
			last = &t
		}
	}

	newStreak, update := streak.Compute(last, today, habit.Streak)
	day := streak.FormatDay(today)

	completion := models.Completion{
		HabitID: habit.ID,
		Date:    day,
		Note:    models.StringPtr(strings.TrimSpace(note)),
	}
	if _, err := r.store.CompleteHabit(completion, newStreak, day, update); err != nil {
		return 0, err
	}

	logger.Debug("Completion recorded", "habit", habit.ID, "day", day, "streak", newStreak, "updated", update)
	return newStreak, nil
}

// ListCompletions returns a habit's completions by date, oldest first
func (r *Repository) ListCompletions(habitID int64) ([]models.Completion, error) {
	if _, err := r.store.GetHabit(habitID); err != nil {
		return nil, err
	}
	return r.store.GetCompletionsForHabit(habitID)
}

// AddNote attaches a note to an arbitrary past day without touching the
// streak. It inserts a completion row for that day.
func (r *Repository) AddNote(habitID int64, day, text string) (models.Completion, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return models.Completion{}, apperrors.Validationf("note cannot be empty")
	}
	d, err := streak.ParseDay(day)
	if err != nil {
		return models.Completion{}, apperrors.Validationf("invalid date %q (expected YYYY-MM-DD)", day)
	}
	if streak.FormatDay(d) > r.Today() {
		return models.Completion{}, apperrors.Validationf("cannot add a note for a future date: %s", day)
	}

	if _, err := r.store.GetHabit(habitID); err != nil {
		return models.Completion{}, err
	}
	return r.store.AddCompletion(models.Completion{
		HabitID: habitID,
		Date:    streak.FormatDay(d),
		Note:    &text,
	})
}

// EditNote replaces a completion's note. Empty text clears it.
func (r *Repository) EditNote(completionID int64, text string) error {
	return r.store.UpdateCompletionNote(completionID, models.StringPtr(strings.TrimSpace(text)))
}

// DeleteNote removes the completion row the note belongs to. The habit's
// streak is not recomputed.
func (r *Repository) DeleteNote(completionID int64) error {
	return r.store.DeleteCompletion(completionID)
}

// History returns the number of completions per day, oldest first
func (r *Repository) History(habitID int64) ([]models.DayCount, error) {
	if _, err := r.store.GetHabit(habitID); err != nil {
		return nil, err
	}
	return r.store.GetCompletionCountsByDay(habitID)
}

// Stats summarizes a habit's history. CurrentStreak is the stored streak
// while it is still alive (last completed today or yesterday) and 0 once a
// day has been missed.
func (r *Repository) Stats(habitID int64) (models.HabitStats, error) {
	habit, err := r.store.GetHabit(habitID)
	if err != nil {
		return models.HabitStats{}, err
	}
	counts, err := r.store.GetCompletionCountsByDay(habitID)
	if err != nil {
		return models.HabitStats{}, err
	}

	stats := models.HabitStats{HabitID: habitID}
	days := make([]string, 0, len(counts))
	for _, c := range counts {
		stats.TotalCompletions += c.Count
		days = append(days, c.Date)
	}
	stats.DaysCompleted = len(days)
	stats.LongestStreak = streak.Longest(days)
	if len(days) > 0 {
		stats.FirstDay = days[0]
		stats.LastDay = days[len(days)-1]
	}

	if habit.LastCompleted != nil {
		today := r.Today()
		yesterday := streak.FormatDay(r.today().AddDate(0, 0, -1))
		if *habit.LastCompleted == today || *habit.LastCompleted == yesterday {
			stats.CurrentStreak = habit.Streak
		}
	}
	if stats.CurrentStreak > stats.LongestStreak {
		stats.LongestStreak = stats.CurrentStreak
	}
	return stats, nil
}
