package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var extractCmd = &cobra.Command{
	Use:   "extract",
	Short: "Extract the most important tasks from unanalyzed meetings",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		reg, log, err := wire()
		if err != nil {
			return err
		}
		defer log.Sync()

		ctx, cancel := context.WithTimeout(cmd.Context(), flagTimeout)
		defer cancel()

		result, err := reg.Orchestrator().ExtractImportantTasks(ctx, flagProvider)
		if err != nil {
			return err
		}

		fmt.Printf("%s (%d toplantı, yöntem: %s)\n\n", result.Summary, result.TotalMeetingsConsidered, result.Method)
		printTasks(result.Tasks)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(extractCmd)
}
