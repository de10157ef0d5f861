package sqlstore

import (
	"github.com/julianstephens/habitrack/internal/models"
)

const habitColumns = "id, name, category, streak, last_completed"

func (s *Store) AddHabit(h models.Habit) (models.Habit, error) {
	err := s.db.Get(&h.ID, s.q(`
		INSERT INTO habits (name, category, streak, last_completed)
		VALUES (?, ?, ?, ?)
		RETURNING id`),
		h.Name, h.Category, h.Streak, h.LastCompleted)
	if err != nil {
		return models.Habit{}, s.classify("add habit", err)
	}
	return h, nil
}

func (s *Store) GetHabit(id int64) (models.Habit, error) {
	var h models.Habit
	err := s.db.Get(&h, s.q("SELECT "+habitColumns+" FROM habits WHERE id = ?"), id)
	if err != nil {
		return models.Habit{}, s.notFoundOr("get habit", err, "habit", id)
	}
	return h, nil
}

// UpdateHabit writes name and category only. Streak fields are owned by
// CompleteHabit.
func (s *Store) UpdateHabit(h models.Habit) error {
	res, err := s.db.Exec(s.q("UPDATE habits SET name = ?, category = ? WHERE id = ?"),
		h.Name, h.Category, h.ID)
	if err != nil {
		return s.classify("update habit", err)
	}
	return s.requireAffected("update habit", res, "habit", h.ID)
}

// DeleteHabit removes a habit and its completions in one transaction
func (s *Store) DeleteHabit(id int64) error {
	tx, err := s.db.Beginx()
	if err != nil {
		return s.classify("delete habit", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(tx.Rebind("DELETE FROM completions WHERE habit_id = ?"), id); err != nil {
		return s.classify("delete completions", err)
	}
	res, err := tx.Exec(tx.Rebind("DELETE FROM habits WHERE id = ?"), id)
	if err != nil {
		return s.classify("delete habit", err)
	}
	if err := s.requireAffected("delete habit", res, "habit", id); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return s.classify("delete habit", err)
	}
	return nil
}

// GetHabitSummaries lists every habit ordered by category then name, with
// the number of completions dated today and the note of the most recently
// inserted completion.
func (s *Store) GetHabitSummaries(today string) ([]models.HabitSummary, error) {
	var summaries []models.HabitSummary
	err := s.db.Select(&summaries, s.q(`
		SELECT h.id, h.name, h.category, h.streak, h.last_completed,
			(SELECT COUNT(*) FROM completions c
				WHERE c.habit_id = h.id AND c.date = ?) AS today_count,
			(SELECT c.note FROM completions c
				WHERE c.habit_id = h.id ORDER BY c.id DESC LIMIT 1) AS recent_note
		FROM habits h
		ORDER BY h.category, h.name, h.id`), today)
	if err != nil {
		return nil, s.classify("list habits", err)
	}
	return summaries, nil
}
