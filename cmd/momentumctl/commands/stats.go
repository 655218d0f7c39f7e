package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/momentum-app/momentum/internal/database"
	"github.com/momentum-app/momentum/internal/dates"
	"github.com/momentum-app/momentum/internal/scoring"
	"github.com/momentum-app/momentum/internal/validation"
)

// NewStatsCmd creates the stats command with day and week subcommands
func NewStatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show day or week statistics",
	}

	cmd.AddCommand(newStatsDayCmd())
	cmd.AddCommand(newStatsWeekCmd())
	return cmd
}

func newStatsDayCmd() *cobra.Command {
	var date string

	cmd := &cobra.Command{
		Use:   "day",
		Short: "Show stats for one calendar day",
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

			stats := scoring.ComputeDayStats(tasks, completions, day)
			fmt.Printf("%s: score %d (%s), %d/%d tasks done\n",
				stats.Date, stats.Percentage, stats.Grade, stats.CompletedTasks, stats.TotalTasks)
			for _, win := range stats.Wins {
				fmt.Printf("  + %s\n", win)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Calendar day (YYYY-MM-DD), defaults to today")
	return cmd
}

func newStatsWeekCmd() *cobra.Command {
	var start string

	cmd := &cobra.Command{
		Use:   "week",
		Short: "Show stats for one Sunday-start week",
		RunE: func(cmd *cobra.Command, args []string) error {
			day, err := resolveDate(start)
			if err != nil {
				return err
			}
			weekStart := dates.WeekStart(day)
			prevStart := dates.AddDays(weekStart, -7)

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
			completions, err := database.NewCompletionRepository(db).GetRange(ctx, prevStart, dates.WeekEnd(weekStart))
			if err != nil {
				return fmt.Errorf("failed to get completions: %w", err)
			}

			previous := scoring.ComputeWeekStats(tasks, completions, prevStart, nil)
			week := scoring.ComputeWeekStats(tasks, completions, weekStart, &previous)

			fmt.Printf("Week of %s: score %d (%s), trend %+d\n",
				week.WeekStartDate, week.Percentage, week.Grade, week.TrendVsLastWeek)
			fmt.Printf("  consistency days: %d, perfect days: %d\n",
				week.ConsistencyDays, week.PerfectDays)
			for _, d := range week.Days {
				fmt.Printf("  %s: %3d%% (%d/%d)\n", d.Date, d.Percentage, d.CompletedTasks, d.TotalTasks)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&start, "start", "", "Any day in the week (YYYY-MM-DD), defaults to today")
	return cmd
}

// resolveDate validates a date flag, defaulting to today when empty.
func resolveDate(date string) (string, error) {
	if date == "" {
		return dates.Today(time.Now()), nil
	}
	if err := validation.ValidateCalendarDay(date); err != nil {
		return "", err
	}
	return date, nil
}
