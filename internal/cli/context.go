package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/julianstephens/habitrack/internal/backup"
	"github.com/julianstephens/habitrack/internal/config"
	"github.com/julianstephens/habitrack/internal/logger"
	"github.com/julianstephens/habitrack/internal/storage"
	"github.com/julianstephens/habitrack/internal/storage/sqlite"
	"github.com/julianstephens/habitrack/internal/tracker"
)

// Context is handed to every command's Run method
type Context struct {
	Store      storage.Provider
	Repo       *tracker.Repository
	Config     *config.Config
	ConfigPath string

	// Ctx is cancelled on SIGINT/SIGTERM
	Ctx context.Context
	Out io.Writer
	In  io.Reader
}

// Context returns the command's cancellation context
func (c *Context) Context() context.Context {
	if c.Ctx == nil {
		return context.Background()
	}
	return c.Ctx
}

// Stdout is where command output goes
func (c *Context) Stdout() io.Writer {
	if c.Out == nil {
		return os.Stdout
	}
	return c.Out
}

func (c *Context) stdin() io.Reader {
	if c.In == nil {
		return os.Stdin
	}
	return c.In
}

// Printf writes formatted command output
func (c *Context) Printf(format string, args ...any) {
	fmt.Fprintf(c.Stdout(), format, args...)
}

// Println writes a line of command output
func (c *Context) Println(args ...any) {
	fmt.Fprintln(c.Stdout(), args...)
}

// Confirm asks a yes/no question and reports whether the answer was yes.
// Anything other than y or yes, including EOF, is a no.
func (c *Context) Confirm(prompt string) (bool, error) {
	c.Printf("%s [y/N]: ", prompt)
	response, err := bufio.NewReader(c.stdin()).ReadString('\n')
	if err != nil && err != io.EOF {
		return false, err
	}
	response = strings.TrimSpace(strings.ToLower(response))
	return response == "y" || response == "yes", nil
}

// SQLiteStore returns the store as a SQLite store, or false for PostgreSQL
func (c *Context) SQLiteStore() (*sqlite.Store, bool) {
	s, ok := c.Store.(*sqlite.Store)
	return s, ok
}

// PerformAutomaticBackup creates an automatic backup and silently handles errors
func (c *Context) PerformAutomaticBackup() {
	s, ok := c.SQLiteStore()
	if !ok {
		// PostgreSQL has its own backup tooling
		return
	}
	mgr := backup.NewManager(s.GetConfigPath())
	if _, err := mgr.CreateBackup(); err != nil {
		// Log warning but don't interrupt user workflow
		logger.Warn("Automatic backup failed", "error", err)
	}
}
