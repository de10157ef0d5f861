package postgres

import (
	"errors"
	"os"
	"testing"

	apperrors "github.com/julianstephens/habitrack/internal/errors"
	"github.com/julianstephens/habitrack/internal/models"
)

// TestStore_Integration runs against a real database.
// Example: POSTGRES_TEST_URL="postgres://habitrack@localhost:5432/habitrack_test?sslmode=disable"
func TestStore_Integration(t *testing.T) {
	connStr := os.Getenv("POSTGRES_TEST_URL")
	if connStr == "" {
		t.Skip("POSTGRES_TEST_URL not set, skipping PostgreSQL integration test")
	}

	store := New(connStr)
	if err := store.Init(); err != nil {
		t.Fatalf("Failed to initialize store: %v", err)
	}
	defer store.Close()

	if _, err := store.DB().Exec("TRUNCATE completions, habits, settings RESTART IDENTITY"); err != nil {
		t.Fatalf("Failed to reset tables: %v", err)
	}

	var habit models.Habit

	t.Run("Habits", func(t *testing.T) {
		var err error
		habit, err = store.AddHabit(models.Habit{Name: "Read", Category: "Learning"})
		if err != nil {
			t.Fatalf("Failed to add habit: %v", err)
		}
		if habit.ID == 0 {
			t.Fatal("Expected an assigned id")
		}

		habit.Name = "Read more"
		if err := store.UpdateHabit(habit); err != nil {
			t.Fatalf("Failed to update habit: %v", err)
		}
		got, err := store.GetHabit(habit.ID)
		if err != nil {
			t.Fatalf("Failed to get habit: %v", err)
		}
		if got.Name != "Read more" {
			t.Errorf("Expected name 'Read more', got %q", got.Name)
		}
	})

	t.Run("Completions", func(t *testing.T) {
		c, err := store.CompleteHabit(models.Completion{HabitID: habit.ID, Date: "2024-09-12", Note: models.StringPtr("ch. 1")}, 1, "2024-09-12", true)
		if err != nil {
			t.Fatalf("Failed to complete habit: %v", err)
		}

		summaries, err := store.GetHabitSummaries("2024-09-12")
		if err != nil {
			t.Fatalf("Failed to list habits: %v", err)
		}
		if len(summaries) != 1 || summaries[0].TodayCount != 1 || summaries[0].Streak != 1 {
			t.Errorf("Unexpected summaries: %+v", summaries)
		}

		if err := store.UpdateCompletionNote(c.ID, nil); err != nil {
			t.Fatalf("Failed to clear note: %v", err)
		}

		_, err = store.AddCompletion(models.Completion{HabitID: habit.ID + 1000, Date: "2024-09-12"})
		if !errors.Is(err, apperrors.ErrIntegrity) {
			t.Errorf("Expected ErrIntegrity, got %v", err)
		}
	})

	t.Run("Settings", func(t *testing.T) {
		if err := store.SaveSettings(map[string]string{"window.width": "120"}); err != nil {
			t.Fatalf("Failed to save settings: %v", err)
		}
		settings, err := store.GetSettings()
		if err != nil {
			t.Fatalf("Failed to get settings: %v", err)
		}
		if settings["window.width"] != "120" {
			t.Errorf("Expected window.width 120, got %q", settings["window.width"])
		}
	})

	t.Run("DeleteCascades", func(t *testing.T) {
		if err := store.DeleteHabit(habit.ID); err != nil {
			t.Fatalf("Failed to delete habit: %v", err)
		}
		left, err := store.GetCompletionsForHabit(habit.ID)
		if err != nil {
			t.Fatalf("Failed to list completions: %v", err)
		}
		if len(left) != 0 {
			t.Errorf("Expected no completions, got %d", len(left))
		}
	})
}
