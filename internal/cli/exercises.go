package cli

import (
	"context"
	"fmt"
)

type ExercisesCmd struct {
	Category   string `help:"Filter by category (breathing, stretching, meditation, eye_care)."`
	Difficulty string `help:"Filter by difficulty (beginner, intermediate, advanced)."`
	Stats      bool   `help:"Print your aggregate exercise stats instead of the catalog."`
}

func (c *ExercisesCmd) Run(ctx *Context) error {
	if err := requireAuth(ctx); err != nil {
		return err
	}

	if c.Stats {
		stats, err := ctx.Client.ExerciseStats(context.Background())
		if err != nil {
			return fmt.Errorf("loading exercise stats: %w", err)
		}
		fmt.Printf("Sessions: %d (%d completed)\n", stats.TotalSessions, stats.CompletedSessions)
		fmt.Printf("Minutes:  %.0f\n", stats.TotalMinutes)
		if stats.CurrentStreak > 0 {
			fmt.Printf("Streak:   %d days\n", stats.CurrentStreak)
		}
		return nil
	}

	exercises, err := ctx.Client.Exercises(context.Background(), c.Category, c.Difficulty)
	if err != nil {
		return fmt.Errorf("loading exercises: %w", err)
	}
	if len(exercises) == 0 {
		fmt.Println("No exercises match those filters.")
		return nil
	}

	for _, ex := range exercises {
		fmt.Printf("%-28s %-12s %-14s %dm\n", ex.Name, ex.Category, ex.Difficulty, ex.TotalDurationSeconds/60)
	}
	return nil
}
