package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/momentum-app/momentum/internal/database"
	"github.com/momentum-app/momentum/internal/models"
)

// NewTasksCmd creates the tasks command
func NewTasksCmd() *cobra.Command {
	var includeArchived bool

	cmd := &cobra.Command{
		Use:   "tasks",
		Short: "List tasks",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := openDB()
			if err != nil {
				return err
			}
			defer closeDB(db)

			taskRepo := database.NewTaskRepository(db)
			tasks, err := taskRepo.List(context.Background(), includeArchived)
			if err != nil {
				return fmt.Errorf("failed to list tasks: %w", err)
			}

			if len(tasks) == 0 {
				fmt.Println("No tasks")
				return nil
			}

			for _, task := range tasks {
				fmt.Printf("  - %s (%s, %s)\n", task.Name, task.Kind, describeSchedule(task.Schedule))
				fmt.Printf("    ID: %s\n", task.ID)
				fmt.Printf("    Target per day: %d\n", task.Target())
				if task.Focus {
					fmt.Println("    Focus: yes")
				}
				if task.Archived {
					fmt.Println("    Archived: yes")
				}
				fmt.Println()
			}

			return nil
		},
	}

	cmd.Flags().BoolVarP(&includeArchived, "all", "a", false, "Include archived tasks")
	return cmd
}

func describeSchedule(s models.Schedule) string {
	switch s.Kind {
	case models.ScheduleDaily:
		return "daily"
	case models.ScheduleWeekdays:
		return fmt.Sprintf("weekdays %v", s.Weekdays)
	case models.ScheduleTimesPerWeek:
		return fmt.Sprintf("%dx per week", s.TimesPerWeek)
	case models.ScheduleEveryNDays:
		return fmt.Sprintf("every %d days", s.EveryNDays)
	default:
		return string(s.Kind)
	}
}
