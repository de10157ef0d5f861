package migration

import (
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/julianstephens/habitrack/internal/streak"
)

// LegacyResult reports what UpgradeLegacy changed
type LegacyResult struct {
	CopiedCompletions  int
	DroppedOrphans     int
	AddedHabitColumns  []string
	BackfilledStreaks  int
	RebuiltCompletions bool
}

// legacyHabitColumns are the habit columns the first release did not have,
// with the DDL that adds each one.
var legacyHabitColumns = []struct {
	name string
	ddl  string
}{
	{"category", "ALTER TABLE habits ADD COLUMN category TEXT NOT NULL DEFAULT ''"},
	{"streak", "ALTER TABLE habits ADD COLUMN streak INTEGER NOT NULL DEFAULT 0"},
	{"last_completed", "ALTER TABLE habits ADD COLUMN last_completed TEXT"},
}

// IsLegacySchema reports whether a SQLite database still has the
// first-release shape: a completions table without id/note columns, or a
// habits table without category/streak columns.
func IsLegacySchema(db *sqlx.DB) (bool, error) {
	completionCols, err := tableColumns(db, "completions")
	if err != nil {
		return false, err
	}
	if len(completionCols) > 0 && (!completionCols["id"] || !completionCols["note"]) {
		return true, nil
	}

	habitCols, err := tableColumns(db, "habits")
	if err != nil {
		return false, err
	}
	if len(habitCols) == 0 {
		return false, nil
	}
	for _, c := range legacyHabitColumns {
		if !habitCols[c.name] {
			return true, nil
		}
	}
	return false, nil
}

// UpgradeLegacy brings a first-release SQLite database to the current table
// shape in one transaction. Completions are copied forward as (habit_id, date)
// rows into a table with id and note columns; rows whose habit no longer
// exists are dropped. Streaks are rebuilt from the copied history.
//
// This is a one-shot operator command. It is never run at startup.
func UpgradeLegacy(db *sqlx.DB) (LegacyResult, error) {
	var result LegacyResult

	habitCols, err := tableColumns(db, "habits")
	if err != nil {
		return result, err
	}
	if len(habitCols) == 0 {
		return result, fmt.Errorf("no habits table found; nothing to upgrade")
	}
	completionCols, err := tableColumns(db, "completions")
	if err != nil {
		return result, err
	}

	tx, err := db.Beginx()
	if err != nil {
		return result, fmt.Errorf("failed to begin legacy upgrade: %w", err)
	}
	defer tx.Rollback()

	for _, c := range legacyHabitColumns {
		if habitCols[c.name] {
			continue
		}
		if _, err := tx.Exec(c.ddl); err != nil {
			return result, fmt.Errorf("failed to add habits.%s: %w", c.name, err)
		}
		result.AddedHabitColumns = append(result.AddedHabitColumns, c.name)
	}

	switch {
	case len(completionCols) == 0:
		// Nothing to carry forward; the regular migrations create the table.
	case completionCols["id"] && completionCols["note"]:
		// Already in the current shape.
	default:
		if err := rebuildCompletions(tx, &result); err != nil {
			return result, err
		}
	}

	if len(result.AddedHabitColumns) > 0 || result.RebuiltCompletions {
		n, err := backfillStreaks(tx)
		if err != nil {
			return result, err
		}
		result.BackfilledStreaks = n
	}

	if err := tx.Commit(); err != nil {
		return result, fmt.Errorf("failed to commit legacy upgrade: %w", err)
	}
	return result, nil
}

func rebuildCompletions(tx *sqlx.Tx, result *LegacyResult) error {
	if _, err := tx.Exec(`
		CREATE TABLE completions_new (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			habit_id INTEGER NOT NULL REFERENCES habits (id) ON DELETE CASCADE,
			date TEXT NOT NULL,
			note TEXT
		)`); err != nil {
		return fmt.Errorf("failed to create completions_new: %w", err)
	}

	var total int
	if err := tx.Get(&total, "SELECT COUNT(*) FROM completions"); err != nil {
		return fmt.Errorf("failed to count legacy completions: %w", err)
	}

	res, err := tx.Exec(`
		INSERT INTO completions_new (habit_id, date)
		SELECT habit_id, date FROM completions
		WHERE habit_id IN (SELECT id FROM habits) AND date IS NOT NULL
		ORDER BY rowid`)
	if err != nil {
		return fmt.Errorf("failed to copy completions: %w", err)
	}
	copied, err := res.RowsAffected()
	if err != nil {
		return err
	}
	result.CopiedCompletions = int(copied)
	result.DroppedOrphans = total - int(copied)

	if _, err := tx.Exec("DROP TABLE completions"); err != nil {
		return fmt.Errorf("failed to drop legacy completions: %w", err)
	}
	if _, err := tx.Exec("ALTER TABLE completions_new RENAME TO completions"); err != nil {
		return fmt.Errorf("failed to rename completions_new: %w", err)
	}
	result.RebuiltCompletions = true
	return nil
}

func backfillStreaks(tx *sqlx.Tx) (int, error) {
	var ids []int64
	if err := tx.Select(&ids, "SELECT id FROM habits"); err != nil {
		return 0, fmt.Errorf("failed to list habits: %w", err)
	}

	updated := 0
	for _, id := range ids {
		var days []string
		if err := tx.Select(&days, "SELECT DISTINCT date FROM completions WHERE habit_id = ?", id); err != nil {
			return updated, fmt.Errorf("failed to read history for habit %d: %w", id, err)
		}
		run, latest := streak.Trailing(days)
		if latest == "" {
			continue
		}
		if _, err := tx.Exec("UPDATE habits SET streak = ?, last_completed = ? WHERE id = ?", run, latest, id); err != nil {
			return updated, fmt.Errorf("failed to backfill streak for habit %d: %w", id, err)
		}
		updated++
	}
	return updated, nil
}

// tableColumns returns the column names of a SQLite table, empty if the
// table does not exist.
func tableColumns(db sqlx.Queryer, table string) (map[string]bool, error) {
	rows, err := db.Queryx("SELECT name FROM pragma_table_info(?)", table)
	if err != nil {
		return nil, fmt.Errorf("failed to inspect table %s: %w", table, err)
	}
	defer rows.Close()

	cols := make(map[string]bool)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		cols[name] = true
	}
	return cols, rows.Err()
}
