package notes

import (
	"github.com/julianstephens/habitrack/internal/cli"
)

type NoteCmd struct {
	Add    NoteAddCmd    `cmd:"" help:"Attach a note to a habit on a given day."`
	Edit   NoteEditCmd   `cmd:"" help:"Replace a note's text."`
	Delete NoteDeleteCmd `cmd:"" help:"Delete a note and the completion it belongs to."`
	List   NoteListCmd   `cmd:"" help:"List a habit's notes."`
}

type NoteAddCmd struct {
	HabitID int64  `arg:"" help:"Habit ID."`
	Text    string `arg:"" help:"Note text."`
	Date    string `help:"Day the note belongs to (YYYY-MM-DD). Defaults to today."`
}

func (c *NoteAddCmd) Run(ctx *cli.Context) error {
	day := c.Date
	if day == "" {
		day = ctx.Repo.Today()
	}
	comp, err := ctx.Repo.AddNote(c.HabitID, day, c.Text)
	if err != nil {
		return err
	}
	ctx.Printf("Added note #%d for %s\n", comp.ID, comp.Date)
	return nil
}

type NoteEditCmd struct {
	ID   int64  `arg:"" help:"Note (completion) ID."`
	Text string `arg:"" help:"New note text. An empty string clears the note."`
}

func (c *NoteEditCmd) Run(ctx *cli.Context) error {
	if err := ctx.Repo.EditNote(c.ID, c.Text); err != nil {
		return err
	}
	ctx.Printf("Updated note #%d\n", c.ID)
	return nil
}

type NoteDeleteCmd struct {
	ID  int64 `arg:"" help:"Note (completion) ID."`
	Yes bool  `short:"y" help:"Skip the confirmation prompt."`
}

func (c *NoteDeleteCmd) Run(ctx *cli.Context) error {
	if !c.Yes {
		ok, err := ctx.Confirm("Delete this note? The completion it belongs to is removed too; streaks are not recalculated.")
		if err != nil {
			return err
		}
		if !ok {
			ctx.Println("Deletion cancelled.")
			return nil
		}
	}

	if err := ctx.Repo.DeleteNote(c.ID); err != nil {
		return err
	}
	ctx.Printf("Deleted note #%d\n", c.ID)
	return nil
}

type NoteListCmd struct {
	HabitID int64 `arg:"" help:"Habit ID."`
	All     bool  `help:"Include completions without a note."`
}

func (c *NoteListCmd) Run(ctx *cli.Context) error {
	habit, err := ctx.Repo.GetHabit(c.HabitID)
	if err != nil {
		return err
	}
	completions, err := ctx.Repo.ListCompletions(c.HabitID)
	if err != nil {
		return err
	}

	ctx.Printf("Notes for %s:\n\n", habit.Name)
	shown := 0
	for _, comp := range completions {
		if comp.Note == nil && !c.All {
			continue
		}
		shown++
		ctx.Printf("  #%-5d %s  %s\n", comp.ID, comp.Date, comp.NoteText())
	}
	if shown == 0 {
		ctx.Println("  (none)")
	}
	return nil
}
