package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/momentum-app/momentum/cmd/momentumctl/commands"
)

func main() {
	var rootCmd = &cobra.Command{
		Use:   "momentumctl",
		Short: "Admin tool for the Momentum habit tracker",
		Long:  "CLI tool for seeding tasks, inspecting stats, and running streak evaluations",
	}

	rootCmd.AddCommand(commands.NewSeedCmd())
	rootCmd.AddCommand(commands.NewTasksCmd())
	rootCmd.AddCommand(commands.NewStatsCmd())
	rootCmd.AddCommand(commands.NewEvaluateCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
