package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <meeting-id>",
	Short: "Extract tasks from a single meeting",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		reg, log, err := wire()
		if err != nil {
			return err
		}
		defer log.Sync()

		ctx, cancel := context.WithTimeout(cmd.Context(), flagTimeout)
		defer cancel()

		records, err := reg.Meetings().All(ctx)
		if err != nil {
			return err
		}

		var found bool
		for _, rec := range records {
			if rec.ID != args[0] {
				continue
			}
			found = true
			result, err := reg.Orchestrator().AnalyzeMeeting(ctx, rec.Ref, flagProvider)
			if err != nil {
				return err
			}
			fmt.Printf("%s (%s)\n\n", result.Summary, result.Method)
			printTasks(result.Tasks)
			break
		}
		if !found {
			return fmt.Errorf("meeting %q not found", args[0])
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
}
