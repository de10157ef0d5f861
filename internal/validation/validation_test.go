package validation

import (
	"strings"
	"testing"

	"github.com/julianstephens/habitrack/internal/models"
)

func hasConflict(result ValidationResult, t ConflictType) bool {
	for _, c := range result.Conflicts {
		if c.Type == t {
			return true
		}
	}
	return false
}

func TestValidateHabits_Clean(t *testing.T) {
	habits := []models.Habit{
		{ID: 1, Name: "Read", Category: "Learning", Streak: 2, LastCompleted: models.StringPtr("2024-09-12")},
		{ID: 2, Name: "Run", Category: "Health"},
	}
	history := map[int64][]string{1: {"2024-09-11", "2024-09-12"}}

	result := New().ValidateHabits(habits, history, "2024-09-12")
	if result.HasConflicts() {
		t.Errorf("expected no conflicts, got: %s", result.FormatReport())
	}
	if result.FormatReport() != "No problems detected." {
		t.Errorf("unexpected report: %q", result.FormatReport())
	}
}

func TestValidateHabits_Conflicts(t *testing.T) {
	tests := []struct {
		name    string
		habits  []models.Habit
		history map[int64][]string
		want    ConflictType
	}{
		{
			name: "duplicate name in category",
			habits: []models.Habit{
				{ID: 1, Name: "Read", Category: "Learning"},
				{ID: 2, Name: "read ", Category: "learning"},
			},
			want: ConflictDuplicateHabit,
		},
		{
			name:   "empty category",
			habits: []models.Habit{{ID: 1, Name: "Read", Category: ""}},
			want:   ConflictEmptyField,
		},
		{
			name:   "malformed last_completed",
			habits: []models.Habit{{ID: 1, Name: "Read", Category: "L", LastCompleted: models.StringPtr("12/09/2024")}},
			want:   ConflictInvalidDate,
		},
		{
			name:    "future completion",
			habits:  []models.Habit{{ID: 1, Name: "Read", Category: "L"}},
			history: map[int64][]string{1: {"2030-01-01"}},
			want:    ConflictFutureDate,
		},
		{
			name:    "streak without completion row",
			habits:  []models.Habit{{ID: 1, Name: "Read", Category: "L", Streak: 3, LastCompleted: models.StringPtr("2024-09-10")}},
			history: map[int64][]string{1: {"2024-09-08"}},
			want:    ConflictStreakWithoutEntry,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := New().ValidateHabits(tt.habits, tt.history, "2024-09-12")
			if !hasConflict(result, tt.want) {
				t.Errorf("expected %s, got: %s", tt.want, result.FormatReport())
			}
			if !strings.HasPrefix(result.FormatReport(), "Problems detected:") {
				t.Errorf("unexpected report header: %q", result.FormatReport())
			}
		})
	}
}
