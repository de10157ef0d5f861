package backups

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/julianstephens/habitrack/internal/cli/clitest"
	"github.com/julianstephens/habitrack/internal/storage/postgres"
)

func TestBackupCreateAndList(t *testing.T) {
	ctx, out := clitest.New(t, "2024-09-14")

	if err := (&BackupListCmd{}).Run(ctx); err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if !strings.Contains(out.String(), "No backups found.") {
		t.Errorf("expected empty list, got %q", out.String())
	}

	if err := (&BackupCreateCmd{}).Run(ctx); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if !strings.Contains(out.String(), "✓ Backup created: habitrack-") {
		t.Errorf("unexpected output: %q", out.String())
	}

	out.Reset()
	if err := (&BackupListCmd{}).Run(ctx); err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if !strings.Contains(out.String(), "Available backups (1 total") {
		t.Errorf("expected one backup, got %q", out.String())
	}
}

func TestBackupRestore(t *testing.T) {
	ctx, out := clitest.New(t, "2024-09-14")
	if _, err := ctx.Repo.AddHabit("Read", "Learning"); err != nil {
		t.Fatalf("AddHabit failed: %v", err)
	}
	if err := (&BackupCreateCmd{}).Run(ctx); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	s, _ := ctx.SQLiteStore()
	backupDir := filepath.Join(filepath.Dir(s.GetConfigPath()), "backups")
	matches, err := filepath.Glob(filepath.Join(backupDir, "habitrack-*.db"))
	if err != nil || len(matches) != 1 {
		t.Fatalf("expected one backup file, got %v (err %v)", matches, err)
	}

	if _, err := ctx.Repo.AddHabit("Run", "Health"); err != nil {
		t.Fatalf("AddHabit failed: %v", err)
	}

	// Declining leaves everything alone
	clitest.Answer(ctx, "n\n")
	if err := (&BackupRestoreCmd{BackupFile: filepath.Base(matches[0])}).Run(ctx); err != nil {
		t.Fatalf("restore failed: %v", err)
	}
	if !strings.Contains(out.String(), "Restore cancelled.") {
		t.Errorf("expected cancellation, got %q", out.String())
	}

	out.Reset()
	if err := (&BackupRestoreCmd{BackupFile: filepath.Base(matches[0]), Yes: true}).Run(ctx); err != nil {
		t.Fatalf("restore failed: %v", err)
	}
	if !strings.Contains(out.String(), "Previous database saved as:") {
		t.Errorf("expected safety backup note, got %q", out.String())
	}

	if err := ctx.Store.Load(); err != nil {
		t.Fatalf("Load after restore failed: %v", err)
	}
	habits, err := ctx.Repo.ListHabits()
	if err != nil {
		t.Fatalf("ListHabits failed: %v", err)
	}
	if len(habits) != 1 || habits[0].Name != "Read" {
		t.Errorf("expected only the backed up habit, got %+v", habits)
	}
}

func TestBackupRestoreMissingFile(t *testing.T) {
	ctx, _ := clitest.New(t, "2024-09-14")
	if err := (&BackupRestoreCmd{BackupFile: "habitrack-20000101-000000.db", Yes: true}).Run(ctx); err == nil {
		t.Fatal("expected an error for a missing backup")
	}
}

func TestBackupRequiresSQLite(t *testing.T) {
	ctx, _ := clitest.New(t, "2024-09-14")
	ctx.Store = postgres.New("postgres://user@localhost/habitrack")

	if err := (&BackupCreateCmd{}).Run(ctx); err == nil || !strings.Contains(err.Error(), "only supported for SQLite") {
		t.Errorf("expected SQLite-only error, got %v", err)
	}
}
