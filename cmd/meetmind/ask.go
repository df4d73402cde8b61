package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kararlabs/meetmind/internal/meeting"
)

var askCmd = &cobra.Command{
	Use:   "ask <question>",
	Short: "Ask a question about recorded meeting decisions",
	Args:  cobra.MinimumNArgs(1),
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

		question := strings.Join(args, " ")
		resp, err := reg.Orchestrator().AskQuestion(ctx, question, meeting.Refs(records), flagProvider)
		if err != nil {
			return err
		}

		fmt.Println(resp.Answer)
		if len(resp.RelatedMeetings) > 0 {
			fmt.Println()
			fmt.Println("İlgili toplantılar:")
			for _, m := range resp.RelatedMeetings {
				fmt.Printf("  - %s (%s)\n", m.Topic, m.Date)
			}
		}
		if resp.HasRevisions {
			fmt.Println()
			fmt.Println("Not: Bu kararlardan bazıları sonraki toplantılarda revize edildi.")
		}
		fmt.Printf("\n[%s]\n", resp.ProviderUsed)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(askCmd)
}
