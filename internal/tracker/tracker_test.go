package tracker

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/julianstephens/habitrack/internal/constants"
	apperrors "github.com/julianstephens/habitrack/internal/errors"
	"github.com/julianstephens/habitrack/internal/models"
	"github.com/julianstephens/habitrack/internal/storage/sqlite"
)

// fakeClock is a settable clock shared with the repository under test
type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) set(day string) {
	t, err := time.ParseInLocation("2006-01-02 15:04", day+" 10:00", time.UTC)
	if err != nil {
		panic(err)
	}
	c.now = t
}

func setupRepository(t *testing.T, startDay string) (*Repository, *fakeClock, *sqlite.Store) {
	t.Helper()
	store := sqlite.NewStore(filepath.Join(t.TempDir(), "test.db"))
	if err := store.Init(); err != nil {
		t.Fatalf("failed to init store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	clock := &fakeClock{}
	clock.set(startDay)
	return New(store, WithClock(clock.Now), WithLocation(time.UTC)), clock, store
}

func mustAddHabit(t *testing.T, r *Repository, name, category string) models.Habit {
	t.Helper()
	h, err := r.AddHabit(name, category)
	if err != nil {
		t.Fatalf("AddHabit failed: %v", err)
	}
	return h
}

func TestReadScenario(t *testing.T) {
	repo, clock, _ := setupRepository(t, "2024-09-12")
	habit := mustAddHabit(t, repo, "Read", "Learning")

	steps := []struct {
		day  string
		want int
	}{
		{"2024-09-12", 1},
		{"2024-09-12", 1},
		{"2024-09-13", 2},
		{"2024-09-15", 1},
	}
	for i, step := range steps {
		clock.set(step.day)
		got, err := repo.RecordCompletion(habit.ID, "")
		if err != nil {
			t.Fatalf("step %d: RecordCompletion failed: %v", i, err)
		}
		if got != step.want {
			t.Errorf("step %d (%s): streak = %d, want %d", i, step.day, got, step.want)
		}
	}

	completions, err := repo.ListCompletions(habit.ID)
	if err != nil {
		t.Fatalf("ListCompletions failed: %v", err)
	}
	if len(completions) != 4 {
		t.Fatalf("expected 4 completion rows, got %d", len(completions))
	}
	wantDays := []string{"2024-09-12", "2024-09-12", "2024-09-13", "2024-09-15"}
	for i, c := range completions {
		if c.Date != wantDays[i] {
			t.Errorf("completion %d date = %s, want %s", i, c.Date, wantDays[i])
		}
	}

	got, _ := repo.GetHabit(habit.ID)
	if got.Streak != 1 || got.LastCompleted == nil || *got.LastCompleted != "2024-09-15" {
		t.Errorf("unexpected habit state: %+v", got)
	}
}

func TestStreakSequence(t *testing.T) {
	repo, clock, _ := setupRepository(t, "2024-03-01")
	habit := mustAddHabit(t, repo, "Run", "Health")

	for i, want := range []int{1, 2, 3} {
		clock.set(time.Date(2024, 3, 1+i, 0, 0, 0, 0, time.UTC).Format("2006-01-02"))
		got, err := repo.RecordCompletion(habit.ID, "")
		if err != nil {
			t.Fatalf("RecordCompletion failed: %v", err)
		}
		if got != want {
			t.Errorf("day %d: streak = %d, want %d", i, got, want)
		}
	}

	clock.set("2024-03-08")
	got, err := repo.RecordCompletion(habit.ID, "")
	if err != nil {
		t.Fatalf("RecordCompletion failed: %v", err)
	}
	if got != 1 {
		t.Errorf("after gap: streak = %d, want 1", got)
	}
}

func TestRecordCompletionUsesLocation(t *testing.T) {
	store := sqlite.NewStore(filepath.Join(t.TempDir(), "test.db"))
	if err := store.Init(); err != nil {
		t.Fatalf("failed to init store: %v", err)
	}
	defer store.Close()

	loc := time.FixedZone("UTC-8", -8*3600)
	// 02:00 UTC on the 13th is still the 12th at UTC-8.
	now := time.Date(2024, 9, 13, 2, 0, 0, 0, time.UTC)
	repo := New(store, WithClock(func() time.Time { return now }), WithLocation(loc))

	habit, _ := repo.AddHabit("Read", "Learning")
	if _, err := repo.RecordCompletion(habit.ID, ""); err != nil {
		t.Fatalf("RecordCompletion failed: %v", err)
	}

	completions, _ := repo.ListCompletions(habit.ID)
	if len(completions) != 1 || completions[0].Date != "2024-09-12" {
		t.Errorf("expected completion dated 2024-09-12, got %+v", completions)
	}
}

func TestRecordCompletionNotes(t *testing.T) {
	repo, _, _ := setupRepository(t, "2024-09-12")
	habit := mustAddHabit(t, repo, "Read", "Learning")

	if _, err := repo.RecordCompletion(habit.ID, "chapter 3"); err != nil {
		t.Fatalf("RecordCompletion failed: %v", err)
	}
	if _, err := repo.RecordCompletion(habit.ID, "   "); err != nil {
		t.Fatalf("RecordCompletion failed: %v", err)
	}

	completions, _ := repo.ListCompletions(habit.ID)
	if completions[0].NoteText() != "chapter 3" {
		t.Errorf("first note = %q, want chapter 3", completions[0].NoteText())
	}
	if completions[1].Note != nil {
		t.Errorf("blank note should be stored as NULL, got %q", *completions[1].Note)
	}

	habits, _ := repo.ListHabits()
	if len(habits) != 1 || habits[0].TodayCount != 2 {
		t.Fatalf("unexpected summaries: %+v", habits)
	}
	// Most recent row has no note
	if habits[0].RecentNote != nil {
		t.Errorf("recent note = %q, want nil", *habits[0].RecentNote)
	}
}

func TestRecordCompletionUnknownHabit(t *testing.T) {
	repo, _, _ := setupRepository(t, "2024-09-12")
	if _, err := repo.RecordCompletion(42, ""); !errors.Is(err, apperrors.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestAddHabitValidation(t *testing.T) {
	repo, _, _ := setupRepository(t, "2024-09-12")

	tests := []struct {
		name     string
		habit    string
		category string
		wantErr  bool
	}{
		{"valid", "Read", "Learning", false},
		{"empty name", "", "Learning", true},
		{"blank name", "   ", "Learning", true},
		{"empty category", "Read", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, err := repo.AddHabit(tt.habit, tt.category)
			if tt.wantErr {
				if !errors.Is(err, apperrors.ErrValidation) {
					t.Errorf("expected ErrValidation, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if h.Streak != 0 || h.LastCompleted != nil {
				t.Errorf("new habit should have no streak: %+v", h)
			}
		})
	}

	habits, _ := repo.ListHabits()
	if len(habits) != 1 {
		t.Errorf("expected only the valid habit to be stored, got %d", len(habits))
	}
}

func TestAddHabitTrims(t *testing.T) {
	repo, _, _ := setupRepository(t, "2024-09-12")
	h := mustAddHabit(t, repo, "  Read ", " Learning ")
	if h.Name != "Read" || h.Category != "Learning" {
		t.Errorf("expected trimmed values, got %+v", h)
	}
}

func TestEditHabit(t *testing.T) {
	repo, _, _ := setupRepository(t, "2024-09-12")
	habit := mustAddHabit(t, repo, "Read", "Learning")
	if _, err := repo.RecordCompletion(habit.ID, ""); err != nil {
		t.Fatalf("RecordCompletion failed: %v", err)
	}

	if err := repo.EditHabit(habit.ID, "Read fiction", "Leisure"); err != nil {
		t.Fatalf("EditHabit failed: %v", err)
	}
	got, _ := repo.GetHabit(habit.ID)
	if got.Name != "Read fiction" || got.Category != "Leisure" {
		t.Errorf("edit not applied: %+v", got)
	}
	if got.Streak != 1 || got.LastCompleted == nil {
		t.Errorf("edit touched the streak: %+v", got)
	}

	if err := repo.EditHabit(habit.ID, "", "Leisure"); !errors.Is(err, apperrors.ErrValidation) {
		t.Errorf("expected ErrValidation, got %v", err)
	}
	if err := repo.EditHabit(999, "x", "y"); !errors.Is(err, apperrors.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestDeleteHabit(t *testing.T) {
	repo, _, _ := setupRepository(t, "2024-09-12")
	read := mustAddHabit(t, repo, "Read", "Learning")
	run := mustAddHabit(t, repo, "Run", "Health")
	repo.RecordCompletion(read.ID, "note")
	repo.RecordCompletion(run.ID, "")

	if err := repo.DeleteHabit(read.ID); err != nil {
		t.Fatalf("DeleteHabit failed: %v", err)
	}
	if _, err := repo.ListCompletions(read.ID); !errors.Is(err, apperrors.ErrNotFound) {
		t.Errorf("expected ErrNotFound after delete, got %v", err)
	}
	if err := repo.DeleteHabit(read.ID); !errors.Is(err, apperrors.ErrNotFound) {
		t.Errorf("expected ErrNotFound deleting twice, got %v", err)
	}

	left, err := repo.ListCompletions(run.ID)
	if err != nil || len(left) != 1 {
		t.Errorf("other habit affected: %v, %v", left, err)
	}
}

func TestListHabitsOrder(t *testing.T) {
	repo, _, _ := setupRepository(t, "2024-09-12")
	mustAddHabit(t, repo, "Stretch", "Health")
	mustAddHabit(t, repo, "Read", "Learning")
	mustAddHabit(t, repo, "Run", "Health")

	habits, err := repo.ListHabits()
	if err != nil {
		t.Fatalf("ListHabits failed: %v", err)
	}
	want := []string{"Run", "Stretch", "Read"}
	for i, h := range habits {
		if h.Name != want[i] {
			t.Errorf("position %d = %s, want %s", i, h.Name, want[i])
		}
	}
}

func TestNotes(t *testing.T) {
	repo, clock, _ := setupRepository(t, "2024-09-12")
	habit := mustAddHabit(t, repo, "Read", "Learning")
	repo.RecordCompletion(habit.ID, "")
	completions, _ := repo.ListCompletions(habit.ID)
	id := completions[0].ID

	if err := repo.EditNote(id, "finished book"); err != nil {
		t.Fatalf("EditNote failed: %v", err)
	}
	completions, _ = repo.ListCompletions(habit.ID)
	if completions[0].NoteText() != "finished book" {
		t.Errorf("note = %q", completions[0].NoteText())
	}

	if err := repo.EditNote(id, ""); err != nil {
		t.Fatalf("EditNote failed: %v", err)
	}
	completions, _ = repo.ListCompletions(habit.ID)
	if completions[0].Note != nil {
		t.Error("empty text should clear the note")
	}

	if err := repo.EditNote(999, "x"); !errors.Is(err, apperrors.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}

	clock.set("2024-09-13")
	repo.RecordCompletion(habit.ID, "")
	if err := repo.DeleteNote(id); err != nil {
		t.Fatalf("DeleteNote failed: %v", err)
	}
	completions, _ = repo.ListCompletions(habit.ID)
	if len(completions) != 1 {
		t.Errorf("expected 1 completion after delete, got %d", len(completions))
	}
	got, _ := repo.GetHabit(habit.ID)
	if got.Streak != 2 {
		t.Errorf("DeleteNote must not recompute the streak, got %d", got.Streak)
	}
	if err := repo.DeleteNote(id); !errors.Is(err, apperrors.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestAddNote(t *testing.T) {
	repo, _, _ := setupRepository(t, "2024-09-12")
	habit := mustAddHabit(t, repo, "Read", "Learning")

	tests := []struct {
		name    string
		day     string
		text    string
		wantErr error
	}{
		{"past day", "2024-09-01", "library visit", nil},
		{"today", "2024-09-12", "evening", nil},
		{"future", "2024-09-13", "later", apperrors.ErrValidation},
		{"malformed", "09/01/2024", "x", apperrors.ErrValidation},
		{"empty text", "2024-09-01", "  ", apperrors.ErrValidation},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := repo.AddNote(habit.ID, tt.day, tt.text)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("expected %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("AddNote failed: %v", err)
			}
			if c.Date != tt.day || c.NoteText() != tt.text {
				t.Errorf("unexpected completion: %+v", c)
			}
		})
	}

	if _, err := repo.AddNote(999, "2024-09-01", "x"); !errors.Is(err, apperrors.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}

	got, _ := repo.GetHabit(habit.ID)
	if got.Streak != 0 || got.LastCompleted != nil {
		t.Errorf("AddNote must not touch the streak: %+v", got)
	}
}

func TestHistoryAndStats(t *testing.T) {
	repo, clock, _ := setupRepository(t, "2024-09-01")
	habit := mustAddHabit(t, repo, "Read", "Learning")

	for _, day := range []string{"2024-09-01", "2024-09-02", "2024-09-03", "2024-09-03", "2024-09-06", "2024-09-07"} {
		clock.set(day)
		if _, err := repo.RecordCompletion(habit.ID, ""); err != nil {
			t.Fatalf("RecordCompletion failed: %v", err)
		}
	}

	history, err := repo.History(habit.ID)
	if err != nil {
		t.Fatalf("History failed: %v", err)
	}
	if len(history) != 5 || history[2] != (models.DayCount{Date: "2024-09-03", Count: 2}) {
		t.Errorf("unexpected history: %+v", history)
	}

	stats, err := repo.Stats(habit.ID)
	if err != nil {
		t.Fatalf("Stats failed: %v", err)
	}
	want := models.HabitStats{
		HabitID:          habit.ID,
		CurrentStreak:    2,
		LongestStreak:    3,
		TotalCompletions: 6,
		DaysCompleted:    5,
		FirstDay:         "2024-09-01",
		LastDay:          "2024-09-07",
	}
	if stats != want {
		t.Errorf("stats = %+v, want %+v", stats, want)
	}

	clock.set("2024-09-10")
	stats, _ = repo.Stats(habit.ID)
	if stats.CurrentStreak != 0 {
		t.Errorf("streak should be broken after a missed day, got %d", stats.CurrentStreak)
	}

	if _, err := repo.History(999); !errors.Is(err, apperrors.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestLayout(t *testing.T) {
	repo, _, store := setupRepository(t, "2024-09-12")

	layout, err := repo.Layout()
	if err != nil {
		t.Fatalf("Layout failed: %v", err)
	}
	if layout.Window.Width <= 0 || len(layout.Columns) == 0 {
		t.Fatalf("expected defaults, got %+v", layout)
	}

	layout.Window = models.Geometry{Width: 140, Height: 45, X: 10, Y: 20}
	name := layout.Columns["name"]
	name.Width = 40
	name.Position = 3
	layout.Columns["name"] = name
	if err := repo.SaveLayout(layout); err != nil {
		t.Fatalf("SaveLayout failed: %v", err)
	}

	got, err := repo.Layout()
	if err != nil {
		t.Fatalf("Layout failed: %v", err)
	}
	if got.Window != layout.Window {
		t.Errorf("window = %+v, want %+v", got.Window, layout.Window)
	}
	if got.Columns["name"] != name {
		t.Errorf("name column = %+v, want %+v", got.Columns["name"], name)
	}

	// An unreadable key falls back to its default and keeps the saved columns
	if err := store.SaveSettings(map[string]string{"window.width": "wide", "window.x": "12abc"}); err != nil {
		t.Fatalf("SaveSettings failed: %v", err)
	}
	got, err = repo.Layout()
	if err != nil {
		t.Fatalf("Layout failed: %v", err)
	}
	if got.Window.Width != constants.DefaultWindowWidth {
		t.Errorf("expected default width, got %+v", got.Window)
	}
	if got.Window.Height != 45 || got.Window.Y != 20 {
		t.Errorf("readable window keys lost: %+v", got.Window)
	}
	if got.Columns["name"] != name {
		t.Errorf("name column = %+v, want %+v", got.Columns["name"], name)
	}
}
