// Package clitest builds command contexts over throwaway SQLite databases.
package clitest

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/julianstephens/habitrack/internal/cli"
	"github.com/julianstephens/habitrack/internal/config"
	"github.com/julianstephens/habitrack/internal/constants"
	"github.com/julianstephens/habitrack/internal/storage/sqlite"
	"github.com/julianstephens/habitrack/internal/tracker"
)

// New returns a Context over a freshly initialized SQLite database whose
// clock is fixed at 10:00 UTC on day. Command output is captured in the
// returned buffer.
func New(t *testing.T, day string) (*cli.Context, *bytes.Buffer) {
	t.Helper()

	dir := t.TempDir()
	dbPath := filepath.Join(dir, "habitrack.db")
	store := sqlite.NewStore(dbPath)
	if err := store.Init(); err != nil {
		t.Fatalf("failed to init store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	now, err := time.ParseInLocation(constants.DateFormat, day, time.UTC)
	if err != nil {
		t.Fatalf("bad day %q: %v", day, err)
	}
	now = now.Add(10 * time.Hour)

	cfg := config.Default()
	cfg.Database = dbPath
	cfg.Timezone = "UTC"

	out := &bytes.Buffer{}
	return &cli.Context{
		Store:      store,
		Repo:       tracker.New(store, tracker.WithClock(func() time.Time { return now }), tracker.WithLocation(time.UTC)),
		Config:     cfg,
		ConfigPath: filepath.Join(dir, "config.yaml"),
		Out:        out,
		In:         strings.NewReader(""),
	}, out
}

// Answer makes the next confirmation prompts read input
func Answer(ctx *cli.Context, input string) {
	ctx.In = strings.NewReader(input)
}
