package habits

import (
	"fmt"
	"strings"

	"github.com/julianstephens/habitrack/internal/cli"
	apperrors "github.com/julianstephens/habitrack/internal/errors"
)

type HabitCmd struct {
	Add    HabitAddCmd    `cmd:"" help:"Add a new habit."`
	Edit   HabitEditCmd   `cmd:"" help:"Rename or recategorize a habit."`
	Delete HabitDeleteCmd `cmd:"" help:"Delete a habit and all of its completions."`
	List   HabitListCmd   `cmd:"" help:"List habits with today's status." default:"1"`
	Done   HabitDoneCmd   `cmd:"" help:"Mark a habit as done today."`
	Show   HabitShowCmd   `cmd:"" help:"Show a habit's streaks and recent completions."`
}

type HabitAddCmd struct {
	Name     string `arg:"" help:"Habit name."`
	Category string `arg:"" help:"Habit category."`
}

func (c *HabitAddCmd) Run(ctx *cli.Context) error {
	habit, err := ctx.Repo.AddHabit(c.Name, c.Category)
	if err != nil {
		return err
	}
	ctx.Printf("Added habit #%d: %s (%s)\n", habit.ID, habit.Name, habit.Category)
	return nil
}

type HabitEditCmd struct {
	ID       int64  `arg:"" help:"Habit ID."`
	Name     string `help:"New name."`
	Category string `help:"New category."`
}

func (c *HabitEditCmd) Run(ctx *cli.Context) error {
	if c.Name == "" && c.Category == "" {
		return apperrors.Validationf("nothing to change, use --name or --category")
	}

	habit, err := ctx.Repo.GetHabit(c.ID)
	if err != nil {
		return err
	}
	name, category := habit.Name, habit.Category
	if c.Name != "" {
		name = c.Name
	}
	if c.Category != "" {
		category = c.Category
	}

	if err := ctx.Repo.EditHabit(c.ID, name, category); err != nil {
		return err
	}
	ctx.Printf("Updated habit #%d: %s (%s)\n", c.ID, strings.TrimSpace(name), strings.TrimSpace(category))
	return nil
}

type HabitDeleteCmd struct {
	ID  int64 `arg:"" help:"Habit ID."`
	Yes bool  `short:"y" help:"Skip the confirmation prompt."`
}

func (c *HabitDeleteCmd) Run(ctx *cli.Context) error {
	habit, err := ctx.Repo.GetHabit(c.ID)
	if err != nil {
		return err
	}

	if !c.Yes {
		ok, err := ctx.Confirm(fmt.Sprintf("Delete habit %q and all of its completions?", habit.Name))
		if err != nil {
			return err
		}
		if !ok {
			ctx.Println("Deletion cancelled.")
			return nil
		}
	}

	if err := ctx.Repo.DeleteHabit(c.ID); err != nil {
		return err
	}
	ctx.Printf("Deleted habit: %s\n", habit.Name)
	return nil
}

type HabitListCmd struct {
	Category string `help:"Only show habits in this category."`
}

func (c *HabitListCmd) Run(ctx *cli.Context) error {
	habits, err := ctx.Repo.ListHabits()
	if err != nil {
		return err
	}

	if len(habits) == 0 {
		ctx.Println("No habits found. Use 'habitrack habit add' to create one.")
		return nil
	}

	ctx.Printf("Habits for %s:\n\n", ctx.Repo.Today())
	ctx.Printf("%4s  %-24s %-16s %6s  %5s  %s\n", "ID", "NAME", "CATEGORY", "STREAK", "TODAY", "NOTE")

	shown, done := 0, 0
	for _, h := range habits {
		if c.Category != "" && !strings.EqualFold(h.Category, c.Category) {
			continue
		}
		shown++
		status := "[ ]"
		if h.TodayCount > 0 {
			status = "[x]"
			done++
		}
		note := ""
		if h.RecentNote != nil {
			note = *h.RecentNote
		}
		ctx.Printf("%4d  %-24s %-16s %6d  %5s  %s\n",
			h.ID, truncate(h.Name, 24), truncate(h.Category, 16), h.Streak, status, truncate(note, 40))
	}

	if shown == 0 {
		ctx.Printf("\nNo habits in category %q.\n", c.Category)
		return nil
	}
	ctx.Printf("\nDone today: %d/%d\n", done, shown)
	return nil
}

type HabitDoneCmd struct {
	ID   int64  `arg:"" help:"Habit ID."`
	Note string `help:"Optional note for this completion."`
}

func (c *HabitDoneCmd) Run(ctx *cli.Context) error {
	streak, err := ctx.Repo.RecordCompletion(c.ID, c.Note)
	if err != nil {
		return err
	}
	habit, err := ctx.Repo.GetHabit(c.ID)
	if err != nil {
		return err
	}
	ctx.Printf("✓ %s done for %s (streak: %s)\n", habit.Name, ctx.Repo.Today(), pluralDays(streak))
	return nil
}

type HabitShowCmd struct {
	ID    int64 `arg:"" help:"Habit ID."`
	Limit int   `help:"Number of recent completions to show." default:"10"`
}

func (c *HabitShowCmd) Run(ctx *cli.Context) error {
	habit, err := ctx.Repo.GetHabit(c.ID)
	if err != nil {
		return err
	}
	stats, err := ctx.Repo.Stats(c.ID)
	if err != nil {
		return err
	}
	completions, err := ctx.Repo.ListCompletions(c.ID)
	if err != nil {
		return err
	}

	last := "never"
	if habit.LastCompleted != nil {
		last = *habit.LastCompleted
	}

	ctx.Printf("Habit #%d: %s\n", habit.ID, habit.Name)
	ctx.Printf("  Category:        %s\n", habit.Category)
	ctx.Printf("  Current streak:  %s\n", pluralDays(stats.CurrentStreak))
	ctx.Printf("  Longest streak:  %s\n", pluralDays(stats.LongestStreak))
	ctx.Printf("  Last completed:  %s\n", last)
	if stats.TotalCompletions > 0 {
		ctx.Printf("  Completions:     %d over %s (since %s)\n", stats.TotalCompletions, pluralDays(stats.DaysCompleted), stats.FirstDay)
	} else {
		ctx.Printf("  Completions:     0\n")
		return nil
	}

	if c.Limit <= 0 {
		return nil
	}
	ctx.Println()
	ctx.Println("Recent completions:")
	start := max(len(completions)-c.Limit, 0)
	for i := len(completions) - 1; i >= start; i-- {
		comp := completions[i]
		ctx.Printf("  #%-5d %s  %s\n", comp.ID, comp.Date, comp.NoteText())
	}
	return nil
}

func pluralDays(n int) string {
	if n == 1 {
		return "1 day"
	}
	return fmt.Sprintf("%d days", n)
}

// truncate shortens s to at most n runes, marking the cut with "..."
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n < 5 {
		return string(r[:n])
	}
	return string(r[:n-3]) + "..."
}
