package system

import (
	"context"
	"errors"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/habitrack/internal/cli"
	"github.com/julianstephens/habitrack/internal/logger"
	"github.com/julianstephens/habitrack/internal/notifier"
	"github.com/julianstephens/habitrack/internal/reminder"
	"github.com/julianstephens/habitrack/internal/tui"
)

type TuiCmd struct{}

func (c *TuiCmd) Run(ctx *cli.Context) error {
	// Perform automatic backup on TUI startup (after successful load)
	ctx.PerformAutomaticBackup()

	model, err := tui.NewModel(ctx.Repo)
	if err != nil {
		return err
	}

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx.Context()))

	if ctx.Config.Reminders.Enabled {
		remindCtx, cancel := context.WithCancel(ctx.Context())
		defer cancel()

		tray := notifier.New(nil)
		sched := reminder.New(ctx.Config.Reminders.Hours, func(nctx context.Context, msg string) error {
			p.Send(tui.ReminderMsg{Text: msg})
			return tray.Notify(nctx, msg)
		}, reminder.WithLocation(ctx.Config.Location()), reminder.WithMessage(ctx.Config.Reminders.Message))

		go func() {
			if err := sched.Run(remindCtx); err != nil {
				logger.Warn("Reminder scheduler stopped", "error", err)
			}
		}()
	}

	final, err := p.Run()
	if err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return err
	}

	if m, ok := final.(tui.Model); ok {
		if err := ctx.Repo.SaveLayout(m.Layout()); err != nil {
			logger.Warn("Failed to save layout", "error", err)
		}
	}
	return nil
}
