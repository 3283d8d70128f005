package cmd

import (
	"fmt"

	"github.com/lawrnfy/TaskForge/internal/ui"
	"github.com/spf13/cobra"
)

// listCmd represents the list command
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all tasks",
	Long: `List all tasks, most important first.

Verbose mode adds IDs, effort estimates, and each task's reminder
ladder position.

Examples:
  taskforge list
  taskforge list -v
  taskforge list --json`,
	Args: cobra.NoArgs,
	RunE: runList,
}

func init() {
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	st := mustStore()
	defer func() { _ = st.Close() }()

	tasks, err := st.ListTasks(nil)
	if err != nil {
		return fmt.Errorf("list tasks: %w", err)
	}
	reminders, err := st.GetReminders()
	if err != nil {
		return fmt.Errorf("read reminders: %w", err)
	}

	if isJSON() {
		return printJSON(tasks)
	}

	if len(tasks) == 0 {
		cmd.Println("No tasks yet.")
		cmd.Println("Add one with: taskforge add \"Your task here\"")
		return nil
	}

	if isVerbose() {
		ui.RenderTaskListVerbose(tasks, reminders)
	} else {
		ui.RenderTaskList(tasks, reminders)
	}
	return nil
}
