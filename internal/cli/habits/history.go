package habits

import (
	"strings"
	"time"

	"github.com/julianstephens/habitrack/internal/cli"
	"github.com/julianstephens/habitrack/internal/constants"
	apperrors "github.com/julianstephens/habitrack/internal/errors"
	"github.com/julianstephens/habitrack/internal/streak"
)

// maxBarWidth caps a single day's bar in the history chart
const maxBarWidth = 40

type HistoryCmd struct {
	ID   int64 `arg:"" help:"Habit ID."`
	Days int   `help:"Number of days to show." default:"${history_days}"`
}

func (c *HistoryCmd) Run(ctx *cli.Context) error {
	if c.Days <= 0 {
		return apperrors.Validationf("--days must be positive, got %d", c.Days)
	}

	habit, err := ctx.Repo.GetHabit(c.ID)
	if err != nil {
		return err
	}
	counts, err := ctx.Repo.History(c.ID)
	if err != nil {
		return err
	}

	byDay := make(map[string]int, len(counts))
	peak := 0
	for _, dc := range counts {
		byDay[dc.Date] = dc.Count
		peak = max(peak, dc.Count)
	}

	endDay, err := time.Parse(constants.DateFormat, ctx.Repo.Today())
	if err != nil {
		return err
	}
	startDay := endDay.AddDate(0, 0, -(c.Days - 1))

	ctx.Printf("History for %s (last %d days):\n\n", habit.Name, c.Days)
	total := 0
	for i := 0; i < c.Days; i++ {
		day := streak.FormatDay(startDay.AddDate(0, 0, i))
		n := byDay[day]
		total += n
		if n == 0 {
			ctx.Printf("%s  %s\n", day, "·")
			continue
		}
		ctx.Printf("%s  %s %d\n", day, bar(n, peak), n)
	}
	ctx.Printf("\n%d completion(s) in range\n", total)
	return nil
}

// bar scales n against peak so the busiest day fills maxBarWidth
func bar(n, peak int) string {
	width := n
	if peak > maxBarWidth {
		width = n * maxBarWidth / peak
	}
	return strings.Repeat("█", max(width, 1))
}
