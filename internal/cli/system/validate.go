package system

import (
	"fmt"

	"github.com/julianstephens/habitrack/internal/cli"
	"github.com/julianstephens/habitrack/internal/models"
	"github.com/julianstephens/habitrack/internal/validation"
)

type ValidateCmd struct{}

func (cmd *ValidateCmd) Run(ctx *cli.Context) error {
	ctx.Println("Validating habits and completions...")
	result, err := validateData(ctx)
	if err != nil {
		return err
	}

	ctx.Println()
	ctx.Println(result.FormatReport())
	// Problems are reported, not treated as a failure
	return nil
}

// validateData runs the validator over every habit and its completion days
func validateData(ctx *cli.Context) (validation.ValidationResult, error) {
	summaries, err := ctx.Repo.ListHabits()
	if err != nil {
		return validation.ValidationResult{}, fmt.Errorf("failed to load habits: %w", err)
	}

	habits := make([]models.Habit, 0, len(summaries))
	history := make(map[int64][]string, len(summaries))
	for _, s := range summaries {
		habits = append(habits, s.Habit)
		completions, err := ctx.Repo.ListCompletions(s.ID)
		if err != nil {
			return validation.ValidationResult{}, fmt.Errorf("failed to load completions for habit %d: %w", s.ID, err)
		}
		for _, c := range completions {
			history[s.ID] = append(history[s.ID], c.Date)
		}
	}

	return validation.New().ValidateHabits(habits, history, ctx.Repo.Today()), nil
}
