package system

import (
	"fmt"
	"strings"
	"time"

	"github.com/julianstephens/habitrack/internal/cli"
	"github.com/julianstephens/habitrack/internal/notifier"
	"github.com/julianstephens/habitrack/internal/reminder"
)

type RemindCmd struct {
	DryRun bool `help:"Print the upcoming reminder times instead of waiting for them."`
	Count  int  `help:"Number of upcoming reminders to print with --dry-run." default:"5"`
}

func (c *RemindCmd) Run(ctx *cli.Context) error {
	if !ctx.Config.Reminders.Enabled {
		ctx.Println("Reminders are disabled in config.")
		return nil
	}

	loc := ctx.Config.Location()
	n := notifier.New(ctx.Stdout())
	sched := reminder.New(ctx.Config.Reminders.Hours, n.Notify,
		reminder.WithLocation(loc),
		reminder.WithMessage(ctx.Config.Reminders.Message),
	)

	hours := make([]string, 0, len(sched.Hours()))
	for _, h := range sched.Hours() {
		hours = append(hours, fmt.Sprintf("%02d:00", h))
	}

	if c.DryRun {
		ctx.Printf("Reminder hours: %s (%s)\n\n", strings.Join(hours, ", "), loc)
		next := sched.Next()
		for i := 0; i < c.Count; i++ {
			ctx.Printf("[DryRun] %s  %s\n", next.Format("Mon 2006-01-02 15:04"), sched.Message())
			next = reminder.NextTrigger(next, sched.Hours())
		}
		return nil
	}

	ctx.Printf("Reminding at %s (%s). Press Ctrl+C to stop.\n", strings.Join(hours, ", "), loc)
	start := time.Now()
	if err := sched.Run(ctx.Context()); err != nil {
		return err
	}
	ctx.Printf("Stopped after %s.\n", time.Since(start).Round(time.Second))
	return nil
}
