// Package validation audits stored habits and their history for problems
// that the repository cannot prevent on its own, such as rows written by an
// older release or edited by hand.
package validation

import (
	"fmt"
	"sort"
	"strings"

	"github.com/julianstephens/habitrack/internal/models"
	"github.com/julianstephens/habitrack/internal/streak"
)

// ConflictType represents the type of validation conflict
type ConflictType string

const (
	ConflictDuplicateHabit     ConflictType = "duplicate_habit"
	ConflictEmptyField         ConflictType = "empty_field"
	ConflictInvalidDate        ConflictType = "invalid_date"
	ConflictFutureDate         ConflictType = "future_date"
	ConflictStreakWithoutEntry ConflictType = "streak_without_completion"
)

// Conflict is one detected problem
type Conflict struct {
	Type        ConflictType
	Description string
	HabitIDs    []int64
}

// ValidationResult contains all detected conflicts
type ValidationResult struct {
	Conflicts []Conflict
}

// HasConflicts returns true if there are any conflicts
func (vr *ValidationResult) HasConflicts() bool {
	return len(vr.Conflicts) > 0
}

// FormatReport returns a human-readable report of all conflicts
func (vr *ValidationResult) FormatReport() string {
	if !vr.HasConflicts() {
		return "No problems detected."
	}

	var b strings.Builder
	b.WriteString("Problems detected:\n")
	for _, c := range vr.Conflicts {
		fmt.Fprintf(&b, "- %s\n", c.Description)
	}
	return b.String()
}

func (vr *ValidationResult) add(t ConflictType, ids []int64, format string, args ...any) {
	vr.Conflicts = append(vr.Conflicts, Conflict{
		Type:        t,
		Description: fmt.Sprintf(format, args...),
		HabitIDs:    ids,
	})
}

// Validator checks habits against their completion history
type Validator struct{}

// New creates a new Validator
func New() *Validator {
	return &Validator{}
}

// ValidateHabits checks habits and their completion days. history maps a
// habit id to the dates of its completions; today is YYYY-MM-DD.
func (v *Validator) ValidateHabits(habits []models.Habit, history map[int64][]string, today string) ValidationResult {
	result := ValidationResult{Conflicts: []Conflict{}}

	byKey := make(map[string][]int64)
	for _, h := range habits {
		if strings.TrimSpace(h.Name) == "" || strings.TrimSpace(h.Category) == "" {
			result.add(ConflictEmptyField, []int64{h.ID}, "Habit %d has an empty name or category", h.ID)
		}
		key := strings.ToLower(strings.TrimSpace(h.Category)) + "\x00" + strings.ToLower(strings.TrimSpace(h.Name))
		byKey[key] = append(byKey[key], h.ID)
	}

	var keys []string
	for key, ids := range byKey {
		if len(ids) > 1 {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)
	for _, key := range keys {
		category, name, _ := strings.Cut(key, "\x00")
		result.add(ConflictDuplicateHabit, byKey[key], "Duplicate habit %q in category %q (IDs: %v)", name, category, byKey[key])
	}

	for _, h := range habits {
		days := history[h.ID]
		dayset := make(map[string]bool, len(days))
		for _, d := range days {
			dayset[d] = true
			if _, err := streak.ParseDay(d); err != nil {
				result.add(ConflictInvalidDate, []int64{h.ID}, "Habit %q has a completion with invalid date %q", h.Name, d)
			} else if d > today {
				result.add(ConflictFutureDate, []int64{h.ID}, "Habit %q has a completion dated in the future: %s", h.Name, d)
			}
		}

		if h.LastCompleted == nil {
			continue
		}
		last := *h.LastCompleted
		switch {
		case !isValidDate(last):
			result.add(ConflictInvalidDate, []int64{h.ID}, "Habit %q has invalid last_completed %q", h.Name, last)
		case last > today:
			result.add(ConflictFutureDate, []int64{h.ID}, "Habit %q was last completed in the future: %s", h.Name, last)
		case h.Streak > 0 && !dayset[last]:
			result.add(ConflictStreakWithoutEntry, []int64{h.ID}, "Habit %q has a streak of %d but no completion on %s", h.Name, h.Streak, last)
		}
	}

	return result
}

func isValidDate(day string) bool {
	_, err := streak.ParseDay(day)
	return err == nil
}
