package system

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/julianstephens/habitrack/internal/backup"
	"github.com/julianstephens/habitrack/internal/cli"
	"github.com/julianstephens/habitrack/internal/storage/sqlite"
)

type MigrateCmd struct {
	Legacy bool `help:"Upgrade a first-release SQLite database to the current table shape. A backup is taken first."`
}

// migrator is implemented by both stores
type migrator interface {
	Migrate(logFn func(string)) (int, error)
}

func (c *MigrateCmd) Run(ctx *cli.Context) error {
	if c.Legacy {
		return c.upgradeLegacy(ctx)
	}

	m, ok := ctx.Store.(migrator)
	if !ok {
		return fmt.Errorf("storage backend does not support migrations")
	}
	count, err := m.Migrate(func(msg string) {
		ctx.Println(msg)
	})
	if err != nil {
		if errors.Is(err, sqlite.ErrLegacySchema) {
			return fmt.Errorf("%w (rerun with --legacy)", err)
		}
		return fmt.Errorf("migration failed: %w", err)
	}

	if count == 0 {
		ctx.Println("No migrations to apply. Database is up to date.")
	} else {
		ctx.Printf("\nSuccessfully applied %d migration(s).\n", count)
	}
	return nil
}

func (c *MigrateCmd) upgradeLegacy(ctx *cli.Context) error {
	s, ok := ctx.SQLiteStore()
	if !ok {
		return fmt.Errorf("--legacy only applies to SQLite databases")
	}

	legacy, err := s.IsLegacy()
	if err != nil {
		return err
	}
	if !legacy {
		ctx.Println("Database already uses the current schema. Nothing to upgrade.")
		return nil
	}

	// The upgrade rewrites the completions table; never run it without a backup.
	backupPath, err := backup.NewManager(s.GetConfigPath()).CreateBackup()
	if err != nil {
		return fmt.Errorf("refusing to upgrade without a backup: %w", err)
	}
	ctx.Printf("✓ Backup created: %s\n", filepath.Base(backupPath))

	result, err := s.UpgradeLegacy()
	if err != nil {
		return fmt.Errorf("legacy upgrade failed (database unchanged, backup at %s): %w", backupPath, err)
	}

	ctx.Println("✓ Legacy database upgraded")
	if len(result.AddedHabitColumns) > 0 {
		ctx.Printf("  Added habit columns:   %s\n", strings.Join(result.AddedHabitColumns, ", "))
	}
	if result.RebuiltCompletions {
		ctx.Printf("  Copied completions:    %d\n", result.CopiedCompletions)
		if result.DroppedOrphans > 0 {
			ctx.Printf("  Dropped orphan rows:   %d\n", result.DroppedOrphans)
		}
	}
	ctx.Printf("  Rebuilt streaks:       %d\n", result.BackfilledStreaks)
	return nil
}
