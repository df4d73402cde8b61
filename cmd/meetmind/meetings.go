package main

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/kararlabs/meetmind/internal/meeting"
)

var (
	meetingDate     string
	meetingTopic    string
	meetingDecision string
	meetingNotes    string
	meetingTags     []string
	revisedTopic    string
	revisedDate     string
)

var meetingsCmd = &cobra.Command{
	Use:   "meetings",
	Short: "Record and manage meeting decisions",
}

var meetingsAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Record a meeting decision",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		reg, log, err := wire()
		if err != nil {
			return err
		}
		defer log.Sync()

		if meetingDate == "" {
			meetingDate = time.Now().Format("2006-01-02")
		}

		records, err := reg.Meetings().All(cmd.Context())
		if err != nil {
			return err
		}
		rec := meeting.Record{Ref: meeting.Ref{
			ID:               uuid.NewString(),
			Date:             meetingDate,
			Topic:            meetingTopic,
			DecisionText:     meetingDecision,
			Notes:            meetingNotes,
			Tags:             meetingTags,
			RevisedFromTopic: revisedTopic,
			RevisedFromDate:  revisedDate,
		}}
		repo, ok := reg.Meetings().(*meeting.FileRepository)
		if !ok {
			return fmt.Errorf("meeting store does not support writes")
		}
		if err := repo.Replace(append(records, rec)); err != nil {
			return err
		}
		fmt.Println(rec.ID)
		return nil
	},
}

var meetingsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recorded meetings",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		reg, log, err := wire()
		if err != nil {
			return err
		}
		defer log.Sync()

		records, err := reg.Meetings().All(cmd.Context())
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tDATE\tTOPIC\tANALYZED")
		for _, rec := range records {
			analyzed := ""
			if rec.Analyzed {
				analyzed = "yes"
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", rec.ID, rec.Date, rec.Topic, analyzed)
		}
		return w.Flush()
	},
}

var meetingsDeleteCmd = &cobra.Command{
	Use:   "delete <meeting-id>",
	Short: "Delete a meeting and its ledger tasks",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		reg, log, err := wire()
		if err != nil {
			return err
		}
		defer log.Sync()

		records, err := reg.Meetings().All(cmd.Context())
		if err != nil {
			return err
		}

		kept := make([]meeting.Record, 0, len(records))
		var deleted meeting.Record
		found := false
		for _, rec := range records {
			if rec.ID == args[0] {
				deleted = rec
				found = true
				continue
			}
			kept = append(kept, rec)
		}
		if !found {
			return fmt.Errorf("meeting %q not found", args[0])
		}

		repo, ok := reg.Meetings().(*meeting.FileRepository)
		if !ok {
			return fmt.Errorf("meeting store does not support writes")
		}
		if err := repo.Replace(kept); err != nil {
			return err
		}

		res, err := reg.Orchestrator().CleanupForDeletedMeeting(deleted.Ref)
		if err != nil {
			return err
		}
		fmt.Printf("Silindi: %s (%d aktif, %d tamamlanmış görev kaldırıldı)\n",
			deleted.Topic, res.RemovedActive, res.RemovedCompleted)
		return nil
	},
}

func init() {
	meetingsAddCmd.Flags().StringVar(&meetingDate, "date", "", "Meeting date, YYYY-MM-DD (default today)")
	meetingsAddCmd.Flags().StringVar(&meetingTopic, "topic", "", "Meeting topic")
	meetingsAddCmd.Flags().StringVar(&meetingDecision, "decision", "", "Decision text")
	meetingsAddCmd.Flags().StringVar(&meetingNotes, "notes", "", "Additional notes")
	meetingsAddCmd.Flags().StringSliceVar(&meetingTags, "tag", nil, "Tag (repeatable)")
	meetingsAddCmd.Flags().StringVar(&revisedTopic, "revises-topic", "", "Topic of the decision this one revises")
	meetingsAddCmd.Flags().StringVar(&revisedDate, "revises-date", "", "Date of the decision this one revises")
	_ = meetingsAddCmd.MarkFlagRequired("topic")
	_ = meetingsAddCmd.MarkFlagRequired("decision")

	meetingsCmd.AddCommand(meetingsAddCmd, meetingsListCmd, meetingsDeleteCmd)
	rootCmd.AddCommand(meetingsCmd)
}
