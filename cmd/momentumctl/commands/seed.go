package commands

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/momentum-app/momentum/internal/database"
	"github.com/momentum-app/momentum/internal/models"
)

// seedFile is the YAML shape accepted by `momentumctl seed -f`.
type seedFile struct {
	Tasks []seedTask `yaml:"tasks"`
}

type seedTask struct {
	Name         string `yaml:"name"`
	Kind         string `yaml:"kind"`
	TargetPerDay int    `yaml:"target_per_day"`
	Focus        bool   `yaml:"focus"`
	Schedule     struct {
		Kind         string `yaml:"kind"`
		Weekdays     []int  `yaml:"weekdays"`
		TimesPerWeek int    `yaml:"times_per_week"`
		EveryNDays   int    `yaml:"every_n_days"`
	} `yaml:"schedule"`
}

// NewSeedCmd creates the seed command
func NewSeedCmd() *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Seed tasks into the database",
		Long:  "Seed the built-in starter tasks, or tasks from a YAML file with -f",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := openDB()
			if err != nil {
				return err
			}
			defer closeDB(db)

			taskRepo := database.NewTaskRepository(db)
			ctx := context.Background()

			if file == "" {
				seeded, err := taskRepo.SeedDefaults(ctx)
				if err != nil {
					return fmt.Errorf("failed to seed default tasks: %w", err)
				}
				if seeded == 0 {
					fmt.Println("Database already has tasks, nothing seeded")
					return nil
				}
				fmt.Printf("Seeded %d starter tasks\n", seeded)
				return nil
			}

			data, err := os.ReadFile(file)
			if err != nil {
				return fmt.Errorf("failed to read seed file: %w", err)
			}

			var seed seedFile
			if err := yaml.Unmarshal(data, &seed); err != nil {
				return fmt.Errorf("failed to parse seed file: %w", err)
			}

			created := 0
			for _, st := range seed.Tasks {
				task, err := buildTask(st)
				if err != nil {
					return fmt.Errorf("task %q: %w", st.Name, err)
				}
				if err := taskRepo.Create(ctx, task); err != nil {
					return fmt.Errorf("failed to create task %q: %w", st.Name, err)
				}
				created++
			}

			fmt.Printf("Created %d tasks from %s\n", created, file)
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "YAML file of tasks to seed")
	return cmd
}

func buildTask(st seedTask) (*models.Task, error) {
	if st.Name == "" {
		return nil, fmt.Errorf("name is required")
	}

	kind := models.TaskKind(st.Kind)
	if st.Kind == "" {
		kind = models.TaskKindCustom
	}
	if !kind.IsValid() {
		return nil, fmt.Errorf("invalid kind %q", st.Kind)
	}

	var schedule models.Schedule
	switch models.ScheduleKind(st.Schedule.Kind) {
	case models.ScheduleDaily, "":
		schedule = models.Daily()
	case models.ScheduleWeekdays:
		schedule = models.OnWeekdays(st.Schedule.Weekdays...)
	case models.ScheduleTimesPerWeek:
		schedule = models.TimesPerWeek(st.Schedule.TimesPerWeek)
	case models.ScheduleEveryNDays:
		schedule = models.EveryNDays(st.Schedule.EveryNDays)
	default:
		return nil, fmt.Errorf("invalid schedule kind %q", st.Schedule.Kind)
	}

	target := st.TargetPerDay
	if target < 1 {
		target = 1
	}

	now := time.Now()
	return &models.Task{
		ID:           uuid.New(),
		Name:         st.Name,
		Kind:         kind,
		Schedule:     schedule,
		TargetPerDay: target,
		Focus:        st.Focus,
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}
