package cli

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

var runsLimit int

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "Inspect run history",
	Long:  `Lists past generation runs and shows their audit logs.`,
}

var runsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent runs, newest first",
	RunE:  runRunsList,
}

var runsShowCmd = &cobra.Command{
	Use:   "show [run-id]",
	Short: "Show one run and its step records",
	Args:  cobra.ExactArgs(1),
	RunE:  runRunsShow,
}

func init() {
	runsListCmd.Flags().IntVarP(&runsLimit, "limit", "n", 20, "maximum number of runs")
	runsCmd.AddCommand(runsListCmd)
	runsCmd.AddCommand(runsShowCmd)
	rootCmd.AddCommand(runsCmd)
}

func runRunsList(cmd *cobra.Command, _ []string) error {
	if runsService == nil {
		return errors.New("run history service not configured")
	}

	runs, err := runsService.List(cmd.Context(), runsLimit)
	if err != nil {
		return fmt.Errorf("listing runs: %w", err)
	}

	if len(runs) == 0 {
		cmd.Println("No runs recorded.")
		return nil
	}

	for _, run := range runs {
		types := make([]string, len(run.DocumentTypes))
		for i, t := range run.DocumentTypes {
			types[i] = string(t)
		}

		cmd.Printf("%s  %-10s  %s\n", run.StartedAt.Format("2006-01-02 15:04:05"), run.State, run.ID)
		cmd.Printf("  Request: %s\n", truncate(run.Request, 80))
		if len(types) > 0 {
			cmd.Printf("  Types:   %s\n", strings.Join(types, ", "))
		}
		if run.Error != "" {
			cmd.Printf("  Error:   %s\n", run.Error)
		}
		cmd.Println()
	}

	return nil
}

func runRunsShow(cmd *cobra.Command, args []string) error {
	if runsService == nil {
		return errors.New("run history service not configured")
	}

	run, steps, err := runsService.Get(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("getting run %s: %w", args[0], err)
	}

	cmd.Printf("Run:     %s\n", run.ID)
	cmd.Printf("State:   %s\n", run.State)
	cmd.Printf("Request: %s\n", run.Request)
	cmd.Printf("Started: %s\n", run.StartedAt.Format(time.RFC3339))
	if !run.FinishedAt.IsZero() {
		cmd.Printf("Took:    %s\n", run.FinishedAt.Sub(run.StartedAt).Round(time.Millisecond))
	}
	if run.OutputDir != "" {
		cmd.Printf("Output:  %s\n", run.OutputDir)
	}
	if run.Error != "" {
		cmd.Printf("Error:   %s\n", run.Error)
	}

	if len(steps) == 0 {
		return nil
	}

	cmd.Println("\nSteps:")
	for _, step := range steps {
		took := step.FinishedAt.Sub(step.StartedAt).Round(time.Millisecond)
		cmd.Printf("  [%-7s] %-24s %s\n", step.Status, step.Step, took)
		if step.Detail != "" {
			cmd.Printf("            %s\n", truncate(step.Detail, 100))
		}
	}

	return nil
}

func truncate(s string, maxLen int) string {
	s = strings.ReplaceAll(s, "\n", " ")
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
