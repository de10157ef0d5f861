// Package sqlite is the default store, a single SQLite file under the
// config directory.
package sqlite

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/jmoiron/sqlx"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/julianstephens/habitrack/internal/logger"
	"github.com/julianstephens/habitrack/internal/migration"
	"github.com/julianstephens/habitrack/internal/storage/sqlstore"
	"github.com/julianstephens/habitrack/migrations"
)

// ErrLegacySchema is returned when the database predates the current table
// shape and must be upgraded with 'habitrack migrate --legacy'.
var ErrLegacySchema = errors.New("database uses the legacy schema, run 'habitrack migrate --legacy' first")

// ErrNotLegacy is returned by UpgradeLegacy when there is nothing to upgrade
var ErrNotLegacy = errors.New("database already uses the current schema")

type Store struct {
	*sqlstore.Store

	path string
	db   *sqlx.DB
}

func NewStore(path string) *Store {
	return &Store{
		path: path,
	}
}

// dsn enables foreign keys on every connection the driver opens
func dsn(path string) string {
	return path + "?_pragma=foreign_keys(1)"
}

func (s *Store) open() error {
	db, err := sqlx.Open("sqlite", dsn(s.path))
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	// Single writer: one connection serializes every statement.
	db.SetMaxOpenConns(1)

	s.db = db
	s.Store = sqlstore.New(db, IsForeignKeyViolation)
	return nil
}

func (s *Store) Init() error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if s.db == nil {
		if err := s.open(); err != nil {
			return err
		}
		if err := s.checkLegacy(); err != nil {
			s.Close()
			return err
		}
	}

	if err := s.runMigrations(); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	logger.Debug("SQLite store initialized", "path", s.path)
	return nil
}

func (s *Store) Load() error {
	if s.db != nil {
		return nil
	}
	// Pick up migrations shipped with a newer binary.
	_, err := s.Migrate(func(msg string) {
		logger.Debug(msg)
	})
	return err
}

// Migrate opens an initialized database if needed and applies pending
// migrations, reporting each one through logFn.
func (s *Store) Migrate(logFn func(string)) (int, error) {
	if s.db == nil {
		if _, err := os.Stat(s.path); os.IsNotExist(err) {
			return 0, fmt.Errorf("storage not initialized, run 'habitrack init' first")
		}
		if err := s.open(); err != nil {
			return 0, err
		}
		if err := s.checkLegacy(); err != nil {
			s.Close()
			return 0, err
		}
		if err := s.validateSchemaVersion(); err != nil {
			s.Close()
			return 0, err
		}
	}

	runner, err := s.migrationRunner()
	if err != nil {
		return 0, err
	}
	n, err := runner.ApplyMigrations(logFn)
	if err != nil {
		return n, fmt.Errorf("failed to run migrations: %w", err)
	}
	return n, nil
}

// IsLegacy opens the database if needed and reports whether it still has
// the first-release table shape.
func (s *Store) IsLegacy() (bool, error) {
	if _, err := os.Stat(s.path); os.IsNotExist(err) {
		return false, fmt.Errorf("no database at %s", s.path)
	}
	if s.db == nil {
		if err := s.open(); err != nil {
			return false, err
		}
	}
	return migration.IsLegacySchema(s.db)
}

// UpgradeLegacy rewrites a first-release database into the current shape
// and then applies the regular migrations. Callers take a backup first.
func (s *Store) UpgradeLegacy() (migration.LegacyResult, error) {
	legacy, err := s.IsLegacy()
	if err != nil {
		return migration.LegacyResult{}, err
	}
	if !legacy {
		return migration.LegacyResult{}, ErrNotLegacy
	}

	result, err := migration.UpgradeLegacy(s.db)
	if err != nil {
		return result, err
	}
	if err := s.runMigrations(); err != nil {
		return result, fmt.Errorf("failed to run migrations: %w", err)
	}
	logger.Info("Legacy database upgraded", "path", s.path, "copied", result.CopiedCompletions, "dropped", result.DroppedOrphans)
	return result, nil
}

func (s *Store) Close() error {
	if s.db != nil {
		err := s.db.Close()
		s.db = nil
		s.Store = nil
		return err
	}
	return nil
}

func (s *Store) GetConfigPath() string {
	return s.path
}

func (s *Store) checkLegacy() error {
	legacy, err := migration.IsLegacySchema(s.db)
	if err != nil {
		return err
	}
	if legacy {
		return ErrLegacySchema
	}
	return nil
}

func (s *Store) migrationRunner() (*migration.Runner, error) {
	subFS, err := fs.Sub(migrations.FS, "sqlite")
	if err != nil {
		return nil, fmt.Errorf("failed to access sqlite migrations: %w", err)
	}
	return migration.NewRunner(s.db, subFS), nil
}

func (s *Store) runMigrations() error {
	runner, err := s.migrationRunner()
	if err != nil {
		return err
	}
	_, err = runner.ApplyMigrations(func(msg string) {
		logger.Debug(msg)
	})
	return err
}

// SchemaVersion reports the applied and the newest known migration version
func (s *Store) SchemaVersion() (current, latest int, err error) {
	if s.db == nil {
		return 0, 0, errors.New("database not loaded")
	}
	runner, err := s.migrationRunner()
	if err != nil {
		return 0, 0, err
	}
	if current, err = runner.GetCurrentVersion(); err != nil {
		return 0, 0, err
	}
	if latest, err = runner.GetLatestVersion(); err != nil {
		return 0, 0, err
	}
	return current, latest, nil
}

func (s *Store) validateSchemaVersion() error {
	runner, err := s.migrationRunner()
	if err != nil {
		return err
	}
	return runner.ValidateVersion()
}

// IsForeignKeyViolation reports whether err is SQLITE_CONSTRAINT_FOREIGNKEY
func IsForeignKeyViolation(err error) bool {
	var sqliteErr *sqlite.Error
	if !errors.As(err, &sqliteErr) {
		return false
	}
	code := sqliteErr.Code()
	if code == sqlite3.SQLITE_CONSTRAINT_FOREIGNKEY {
		return true
	}
	return code&0xff == sqlite3.SQLITE_CONSTRAINT && strings.Contains(sqliteErr.Error(), "FOREIGN KEY")
}
