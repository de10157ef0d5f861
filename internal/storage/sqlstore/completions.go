package sqlstore

import (
	"github.com/julianstephens/habitrack/internal/models"
)

const completionColumns = "id, habit_id, date, note"

func (s *Store) AddCompletion(c models.Completion) (models.Completion, error) {
	err := s.db.Get(&c.ID, s.q(`
		INSERT INTO completions (habit_id, date, note)
		VALUES (?, ?, ?)
		RETURNING id`),
		c.HabitID, c.Date, c.Note)
	if err != nil {
		return models.Completion{}, s.classify("add completion", err)
	}
	return c, nil
}

// CompleteHabit inserts c and, when update is set, writes the habit's streak
// and last_completed in the same transaction.
func (s *Store) CompleteHabit(c models.Completion, streak int, lastCompleted string, update bool) (models.Completion, error) {
	tx, err := s.db.Beginx()
	if err != nil {
		return models.Completion{}, s.classify("complete habit", err)
	}
	defer tx.Rollback()

	err = tx.Get(&c.ID, tx.Rebind(`
		INSERT INTO completions (habit_id, date, note)
		VALUES (?, ?, ?)
		RETURNING id`),
		c.HabitID, c.Date, c.Note)
	if err != nil {
		return models.Completion{}, s.classify("add completion", err)
	}

	if update {
		res, err := tx.Exec(tx.Rebind("UPDATE habits SET streak = ?, last_completed = ? WHERE id = ?"),
			streak, lastCompleted, c.HabitID)
		if err != nil {
			return models.Completion{}, s.classify("update streak", err)
		}
		if err := s.requireAffected("update streak", res, "habit", c.HabitID); err != nil {
			return models.Completion{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		return models.Completion{}, s.classify("complete habit", err)
	}
	return c, nil
}

func (s *Store) GetCompletion(id int64) (models.Completion, error) {
	var c models.Completion
	err := s.db.Get(&c, s.q("SELECT "+completionColumns+" FROM completions WHERE id = ?"), id)
	if err != nil {
		return models.Completion{}, s.notFoundOr("get completion", err, "completion", id)
	}
	return c, nil
}

// GetCompletionsForHabit returns a habit's completions by date, ties by id
func (s *Store) GetCompletionsForHabit(habitID int64) ([]models.Completion, error) {
	var completions []models.Completion
	err := s.db.Select(&completions, s.q(
		"SELECT "+completionColumns+" FROM completions WHERE habit_id = ? ORDER BY date, id"), habitID)
	if err != nil {
		return nil, s.classify("list completions", err)
	}
	return completions, nil
}

// GetCompletionCountsByDay returns one row per day with at least one completion
func (s *Store) GetCompletionCountsByDay(habitID int64) ([]models.DayCount, error) {
	var counts []models.DayCount
	err := s.db.Select(&counts, s.q(`
		SELECT date, COUNT(*) AS count
		FROM completions
		WHERE habit_id = ?
		GROUP BY date
		ORDER BY date`), habitID)
	if err != nil {
		return nil, s.classify("count completions", err)
	}
	return counts, nil
}

// UpdateCompletionNote replaces a completion's note; nil clears it
func (s *Store) UpdateCompletionNote(id int64, note *string) error {
	res, err := s.db.Exec(s.q("UPDATE completions SET note = ? WHERE id = ?"), note, id)
	if err != nil {
		return s.classify("update note", err)
	}
	return s.requireAffected("update note", res, "completion", id)
}

func (s *Store) DeleteCompletion(id int64) error {
	res, err := s.db.Exec(s.q("DELETE FROM completions WHERE id = ?"), id)
	if err != nil {
		return s.classify("delete completion", err)
	}
	return s.requireAffected("delete completion", res, "completion", id)
}
