package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/kararlabs/meetmind/internal/task"
)

var tasksShowCompleted bool

var tasksCmd = &cobra.Command{
	Use:   "tasks",
	Short: "Manage the task ledger",
}

var tasksListCmd = &cobra.Command{
	Use:   "list",
	Short: "List tasks",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		reg, log, err := wire()
		if err != nil {
			return err
		}
		defer log.Sync()

		tasks := reg.Orchestrator().ActiveTasks()
		if tasksShowCompleted {
			tasks = reg.Orchestrator().CompletedTasks()
		}
		if len(tasks) == 0 {
			fmt.Println("Görev yok.")
			return nil
		}
		printTasks(tasks)
		return nil
	},
}

var tasksCompleteCmd = &cobra.Command{
	Use:   "complete <task-id>",
	Short: "Mark a task as completed",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		reg, log, err := wire()
		if err != nil {
			return err
		}
		defer log.Sync()

		t, err := reg.Orchestrator().CompleteTask(args[0])
		if err != nil {
			return err
		}
		fmt.Printf("Tamamlandı: %s\n", t.Title)
		return nil
	},
}

var tasksPriorityCmd = &cobra.Command{
	Use:   "priority <task-id> <low|medium|high>",
	Short: "Change the priority of an active task",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		reg, log, err := wire()
		if err != nil {
			return err
		}
		defer log.Sync()

		t, err := reg.Orchestrator().UpdateTaskPriority(args[0], task.Priority(args[1]))
		if err != nil {
			return err
		}
		fmt.Printf("%s -> %s\n", t.Title, t.Priority)
		return nil
	},
}

func init() {
	tasksListCmd.Flags().BoolVar(&tasksShowCompleted, "completed", false, "Show completed tasks instead of active ones")
	tasksCmd.AddCommand(tasksListCmd, tasksCompleteCmd, tasksPriorityCmd)
	rootCmd.AddCommand(tasksCmd)
}

func printTasks(tasks []task.Candidate) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tPRIORITY\tURGENT\tDEADLINE\tTITLE\tMEETING")
	for _, t := range tasks {
		urgent := ""
		if t.IsUrgent {
			urgent = "!"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s (%s)\n",
			t.ID, t.Priority, urgent, t.Deadline, t.Title, t.MeetingTopic, t.MeetingDate)
	}
	w.Flush()
}
