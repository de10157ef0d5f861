package models

// Habit represents a recurring practice to track
type Habit struct {
	ID            int64   `json:"id" db:"id"`
	Name          string  `json:"name" db:"name"`
	Category      string  `json:"category" db:"category"`
	Streak        int     `json:"streak" db:"streak"`
	LastCompleted *string `json:"last_completed,omitempty" db:"last_completed"` // YYYY-MM-DD format
}

// HabitSummary is a habit annotated for the habit list
type HabitSummary struct {
	Habit
	TodayCount int     `json:"today_count" db:"today_count"`
	RecentNote *string `json:"recent_note,omitempty" db:"recent_note"`
}

// Completion records that a habit was performed on a given day
type Completion struct {
	ID      int64   `json:"id" db:"id"`
	HabitID int64   `json:"habit_id" db:"habit_id"`
	Date    string  `json:"date" db:"date"` // YYYY-MM-DD format
	Note    *string `json:"note,omitempty" db:"note"`
}

// NoteText returns the note or an empty string when none is attached
func (c Completion) NoteText() string {
	if c.Note == nil {
		return ""
	}
	return *c.Note
}

// DayCount is the number of completions a habit had on one day
type DayCount struct {
	Date  string `json:"date" db:"date"`
	Count int    `json:"count" db:"count"`
}

// HabitStats summarizes a habit's completion history
type HabitStats struct {
	HabitID          int64  `json:"habit_id"`
	CurrentStreak    int    `json:"current_streak"`
	LongestStreak    int    `json:"longest_streak"`
	TotalCompletions int    `json:"total_completions"`
	DaysCompleted    int    `json:"days_completed"`
	FirstDay         string `json:"first_day,omitempty"`
	LastDay          string `json:"last_day,omitempty"`
}

// StringPtr returns nil for an empty string and a pointer to s otherwise
func StringPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
