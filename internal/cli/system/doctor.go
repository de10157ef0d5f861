package system

import (
	"errors"
	"fmt"

	"github.com/julianstephens/habitrack/internal/backup"
	"github.com/julianstephens/habitrack/internal/cli"
	"github.com/julianstephens/habitrack/internal/constants"
	"github.com/julianstephens/habitrack/internal/keyring"
	"github.com/julianstephens/habitrack/internal/notifier"
)

// versioned is implemented by both stores
type versioned interface {
	SchemaVersion() (current, latest int, err error)
}

type DoctorCmd struct{}

func (cmd *DoctorCmd) Run(ctx *cli.Context) error {
	ctx.Println("Running diagnostics...")
	ctx.Println()

	hasError := false
	fail := func(name string, err error) {
		ctx.Printf("❌ %s: FAIL\n", name)
		ctx.Printf("   Error: %v\n", err)
		hasError = true
	}
	skip := func(name, why string) {
		ctx.Printf("⊘ %s: SKIPPED (%s)\n", name, why)
	}

	dbReachable := false
	if err := ctx.Store.Load(); err != nil {
		fail("Database reachable", err)
	} else {
		ctx.Println("✓ Database reachable: OK")
		dbReachable = true
	}

	if dbReachable {
		if err := checkSchemaVersion(ctx); err != nil {
			fail("Schema version", err)
		} else {
			ctx.Println("✓ Schema version: OK")
		}
	} else {
		skip("Schema version", "database not reachable")
	}

	if err := checkBackupsPresent(ctx); err != nil {
		ctx.Println("⚠ Backups present: WARNING")
		ctx.Printf("   %v\n", err)
	} else {
		ctx.Println("✓ Backups present: OK")
	}

	if dbReachable {
		result, err := validateData(ctx)
		switch {
		case err != nil:
			fail("Data validation", err)
		case result.HasConflicts():
			fail("Data validation", fmt.Errorf("%d problem(s), run 'habitrack validate' for details", len(result.Conflicts)))
		default:
			ctx.Println("✓ Data validation: OK")
		}
	} else {
		skip("Data validation", "database not reachable")
	}

	if err := ctx.Config.Validate(); err != nil {
		fail("Config", err)
	} else {
		ctx.Printf("✓ Config: OK (timezone %s)\n", ctx.Config.Location())
	}

	if ctx.Config.Database == constants.KeyringTarget {
		if _, err := keyring.GetConnectionString(); err != nil {
			fail("Keyring credentials", err)
		} else {
			ctx.Println("✓ Keyring credentials: OK")
		}
	}

	// The tray is optional; reminders print to the terminal without it
	if err := notifier.TrayStatus(); err != nil {
		ctx.Printf("ℹ Tray companion: not running (%v)\n", err)
	} else {
		ctx.Println("✓ Tray companion: running")
	}

	ctx.Println()
	if hasError {
		ctx.Println("Diagnostics completed with errors.")
		return errors.New("one or more health checks failed")
	}
	ctx.Println("All diagnostics passed!")
	return nil
}

func checkSchemaVersion(ctx *cli.Context) error {
	v, ok := ctx.Store.(versioned)
	if !ok {
		return nil
	}
	current, latest, err := v.SchemaVersion()
	if err != nil {
		return err
	}
	if current != latest {
		return fmt.Errorf("schema version %d, expected %d (run 'habitrack migrate')", current, latest)
	}
	return nil
}

func checkBackupsPresent(ctx *cli.Context) error {
	s, ok := ctx.SQLiteStore()
	if !ok {
		return errors.New("backups are managed outside habitrack for PostgreSQL")
	}
	mgr := backup.NewManager(s.GetConfigPath())
	backups, err := mgr.ListBackups()
	if err != nil {
		return err
	}
	if len(backups) == 0 {
		return fmt.Errorf("no backups found in %s (run 'habitrack backup')", mgr.GetBackupDir())
	}
	return nil
}
