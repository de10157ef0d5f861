package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"

	"github.com/alecthomas/kong"

	"github.com/julianstephens/habitrack/internal/cli"
	"github.com/julianstephens/habitrack/internal/cli/backups"
	"github.com/julianstephens/habitrack/internal/cli/habits"
	"github.com/julianstephens/habitrack/internal/cli/notes"
	"github.com/julianstephens/habitrack/internal/cli/settings"
	"github.com/julianstephens/habitrack/internal/cli/system"
	"github.com/julianstephens/habitrack/internal/config"
	"github.com/julianstephens/habitrack/internal/constants"
	apperrors "github.com/julianstephens/habitrack/internal/errors"
	"github.com/julianstephens/habitrack/internal/logger"
	"github.com/julianstephens/habitrack/internal/storage"
	"github.com/julianstephens/habitrack/internal/tracker"
	"github.com/julianstephens/habitrack/internal/utils"
)

var CLI struct {
	Version  kong.VersionFlag
	Config   string `help:"Config file path." type:"string" default:"${config_path}"`
	Database string `help:"Override the database from config: a SQLite path, a PostgreSQL URL without a password, or 'keyring'." type:"string"`
	Debug    bool   `help:"Log debug output to stderr as well as the log file."`

	Init     system.InitCmd     `cmd:"" help:"Initialize habitrack storage."`
	Migrate  system.MigrateCmd  `cmd:"" help:"Run database migrations."`
	Doctor   system.DoctorCmd   `cmd:"" help:"Run health checks and diagnostics."`
	Validate system.ValidateCmd `cmd:"" help:"Check habits and completions for inconsistencies."`
	Tui      system.TuiCmd      `cmd:"" help:"Launch the interactive TUI." default:"1"`
	Remind   system.RemindCmd   `cmd:"" help:"Send check-in reminders at the configured hours."`
	Keyring  system.KeyringCmd  `cmd:"" help:"Manage the PostgreSQL connection string in the OS keyring."`
	Habit    habits.HabitCmd    `cmd:"" help:"Manage habits and mark them done."`
	History  habits.HistoryCmd  `cmd:"" help:"Show a habit's daily completions."`
	Note     notes.NoteCmd      `cmd:"" help:"Manage completion notes."`
	Layout   settings.LayoutCmd `cmd:"" help:"Show or change the saved window and column layout."`
	Backup   backups.BackupCmd  `cmd:"" help:"Manage database backups."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Habit tracker with streaks, notes and reminders"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{
			"version":      constants.Version,
			"config_path":  constants.DefaultConfigPath,
			"history_days": strconv.Itoa(constants.DefaultHistoryDays),
		},
	)

	cfg, err := config.Load(CLI.Config)
	if err != nil {
		fmt.Fprintln(os.Stderr, apperrors.Format(err))
		os.Exit(1)
	}
	if CLI.Database != "" {
		cfg.Database = CLI.Database
	}
	if CLI.Debug {
		cfg.Debug = true
	}

	configPath, err := utils.ExpandHome(CLI.Config)
	if err != nil {
		apperrors.Fatal(err)
	}
	if err := logger.Init(logger.Config{Debug: cfg.Debug, ConfigDir: filepath.Dir(configPath)}); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: file logging disabled: %v\n", err)
	}

	appCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cliCtx := &cli.Context{
		Config:     cfg,
		ConfigPath: configPath,
		Ctx:        appCtx,
	}

	command := strings.Fields(ctx.Command())[0]
	// Keyring commands manage the credentials a store would be built from.
	if command != "keyring" {
		store, err := storage.New(cfg.Database)
		if err != nil {
			apperrors.Fatal(err)
		}
		defer store.Close()

		switch command {
		case "init", "migrate", "doctor":
			// These open the database themselves
		default:
			if err := store.Load(); err != nil {
				apperrors.Fatal(err)
			}
		}

		cliCtx.Store = store
		cliCtx.Repo = tracker.New(store, tracker.WithLocation(cfg.Location()))
	}

	logger.Debug("Running command", "command", ctx.Command(), "database", cfg.Database)
	if err := ctx.Run(cliCtx); err != nil {
		stop()
		apperrors.Fatal(err)
	}
}
