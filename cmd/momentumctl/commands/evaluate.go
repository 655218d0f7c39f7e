package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/momentum-app/momentum/internal/database"
	"github.com/momentum-app/momentum/internal/streaks"
)

// NewEvaluateCmd creates the evaluate command
func NewEvaluateCmd() *cobra.Command {
	var date string

	cmd := &cobra.Command{
		Use:   "evaluate",
		Short: "Run streak evaluation for a day and persist the result",
		RunE: func(cmd *cobra.Command, args []string) error {
			day, err := resolveDate(date)
			if err != nil {
				return err
			}

			db, err := openDB()
			if err != nil {
				return err
			}
			defer closeDB(db)

			ctx := context.Background()
			tasks, err := database.NewTaskRepository(db).List(ctx, false)
			if err != nil {
				return fmt.Errorf("failed to list tasks: %w", err)
			}
			completions, err := database.NewCompletionRepository(db).GetByDate(ctx, day)
			if err != nil {
				return fmt.Errorf("failed to get completions: %w", err)
			}

			streakRepo := database.NewStreakStateRepository(db)
			state, err := streakRepo.Get(ctx)
			if err != nil {
				return fmt.Errorf("failed to get streak state: %w", err)
			}

			result := streaks.Evaluate(state, tasks, completions, day)
			if err := streakRepo.Save(ctx, result.State); err != nil {
				return fmt.Errorf("failed to save streak state: %w", err)
			}

			fmt.Printf("Evaluated %s\n", day)
			fmt.Printf("  consistency streak: %d (best %d)\n",
				result.State.ConsistencyStreak, result.State.BestConsistencyStreak)
			fmt.Printf("  perfect streak: %d (best %d)\n",
				result.State.PerfectStreak, result.State.BestPerfectStreak)
			for _, signal := range result.GraceAvailable {
				fmt.Printf("  grace day available for the %s streak (gap before %s)\n",
					signal.StreakType, signal.Date)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Calendar day (YYYY-MM-DD), defaults to today")
	return cmd
}
