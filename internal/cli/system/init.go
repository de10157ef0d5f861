package system

import (
	"fmt"
	"os"

	"github.com/julianstephens/habitrack/internal/cli"
	"github.com/julianstephens/habitrack/internal/config"
)

type InitCmd struct {
	Force bool `help:"Force reset by deleting the existing SQLite database before initialization."`
}

func (c *InitCmd) Run(ctx *cli.Context) error {
	if c.Force {
		if err := c.reset(ctx); err != nil {
			return err
		}
	}

	if err := ctx.Store.Init(); err != nil {
		return err
	}
	ctx.Printf("Initialized habitrack storage at: %s\n", ctx.Store.GetConfigPath())

	// Write the settings this run used so later runs find the same database
	if ctx.ConfigPath != "" && ctx.Config != nil {
		if _, err := os.Stat(ctx.ConfigPath); os.IsNotExist(err) {
			if err := config.Save(ctx.ConfigPath, ctx.Config); err != nil {
				return err
			}
			ctx.Printf("Wrote config: %s\n", ctx.ConfigPath)
		}
	}
	return nil
}

// reset deletes the SQLite file behind the store
func (c *InitCmd) reset(ctx *cli.Context) error {
	s, ok := ctx.SQLiteStore()
	if !ok {
		return fmt.Errorf("--force is only supported for SQLite storage")
	}
	dbPath := s.GetConfigPath()

	if _, err := os.Stat(dbPath); err == nil {
		// Close first to release the file
		if err := ctx.Store.Close(); err != nil {
			return fmt.Errorf("failed to close existing database: %w", err)
		}
		if err := os.Remove(dbPath); err != nil {
			return fmt.Errorf("failed to delete existing database: %w", err)
		}
		ctx.Printf("Deleted existing database at: %s\n", dbPath)
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("failed to access existing database: %w", err)
	}
	return nil
}
