package settings

import (
	"slices"
	"strings"

	"github.com/julianstephens/habitrack/internal/cli"
	"github.com/julianstephens/habitrack/internal/constants"
	apperrors "github.com/julianstephens/habitrack/internal/errors"
)

type LayoutCmd struct {
	Show      LayoutShowCmd      `cmd:"" help:"Show the saved window and column layout." default:"1"`
	SetColumn LayoutSetColumnCmd `cmd:"" help:"Change a habit table column's width or position."`
	SetWindow LayoutSetWindowCmd `cmd:"" help:"Change the saved window geometry."`
}

type LayoutShowCmd struct{}

func (c *LayoutShowCmd) Run(ctx *cli.Context) error {
	layout, err := ctx.Repo.Layout()
	if err != nil {
		return err
	}

	ctx.Println("Window:")
	ctx.Printf("  Size:      %dx%d\n", layout.Window.Width, layout.Window.Height)
	ctx.Printf("  Position:  %d,%d\n", layout.Window.X, layout.Window.Y)
	ctx.Println("\nColumns:")
	for _, id := range layout.OrderedColumns() {
		col := layout.Columns[id]
		ctx.Printf("  %-10s width %-4d position %d\n", id, col.Width, col.Position)
	}
	return nil
}

type LayoutSetColumnCmd struct {
	Column   string `arg:"" help:"Column id (name, category, streak, today, note)."`
	Width    *int   `help:"Column width in cells."`
	Position *int   `help:"Zero-based column position."`
}

func (c *LayoutSetColumnCmd) Run(ctx *cli.Context) error {
	id := strings.ToLower(strings.TrimSpace(c.Column))
	if !slices.Contains(constants.DefaultColumnOrder, id) {
		return apperrors.Validationf("unknown column %q (use one of: %s)", c.Column, strings.Join(constants.DefaultColumnOrder, ", "))
	}
	if c.Width == nil && c.Position == nil {
		return apperrors.Validationf("nothing to change, use --width or --position")
	}
	if c.Width != nil && *c.Width <= 0 {
		return apperrors.Validationf("width must be positive, got %d", *c.Width)
	}
	if c.Position != nil && *c.Position < 0 {
		return apperrors.Validationf("position cannot be negative, got %d", *c.Position)
	}

	layout, err := ctx.Repo.Layout()
	if err != nil {
		return err
	}
	col := layout.Columns[id]
	if c.Width != nil {
		col.Width = *c.Width
	}
	if c.Position != nil {
		col.Position = *c.Position
	}
	layout.Columns[id] = col

	if err := ctx.Repo.SaveLayout(layout); err != nil {
		return err
	}
	ctx.Printf("Column %s: width %d, position %d\n", id, col.Width, col.Position)
	return nil
}

type LayoutSetWindowCmd struct {
	Width  *int `help:"Window width."`
	Height *int `help:"Window height."`
	X      *int `help:"Window x position."`
	Y      *int `help:"Window y position."`
}

func (c *LayoutSetWindowCmd) Run(ctx *cli.Context) error {
	if c.Width == nil && c.Height == nil && c.X == nil && c.Y == nil {
		return apperrors.Validationf("nothing to change, use --width, --height, --x or --y")
	}
	if (c.Width != nil && *c.Width <= 0) || (c.Height != nil && *c.Height <= 0) {
		return apperrors.Validationf("window width and height must be positive")
	}

	layout, err := ctx.Repo.Layout()
	if err != nil {
		return err
	}
	if c.Width != nil {
		layout.Window.Width = *c.Width
	}
	if c.Height != nil {
		layout.Window.Height = *c.Height
	}
	if c.X != nil {
		layout.Window.X = *c.X
	}
	if c.Y != nil {
		layout.Window.Y = *c.Y
	}

	if err := ctx.Repo.SaveLayout(layout); err != nil {
		return err
	}
	ctx.Printf("Window: %dx%d at %d,%d\n", layout.Window.Width, layout.Window.Height, layout.Window.X, layout.Window.Y)
	return nil
}
