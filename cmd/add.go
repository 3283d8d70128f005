package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/lawrnfy/TaskForge/internal/engine"
	"github.com/lawrnfy/TaskForge/internal/util"
	"github.com/spf13/cobra"
)

// addCmd represents the add command
var addCmd = &cobra.Command{
	Use:   "add <title>",
	Short: "Add a task and start its reminder ladder",
	Long: `Add a task to the forge. The reminder ladder starts immediately:
the first nag fires right away, then escalates at growing intervals
until you start a session or the daily cap is hit.

Examples:
  taskforge add "Write quarterly report" --importance 5 --effort 40
  taskforge add "Inbox zero" --due 2026-09-01T17:00:00Z`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAdd,
}

var (
	addImportance int
	addEffort     int
	addDue        string
	addNotes      string
)

func init() {
	rootCmd.AddCommand(addCmd)

	addCmd.Flags().IntVarP(&addImportance, "importance", "i", 0, "importance 1-5 (default 3)")
	addCmd.Flags().IntVarP(&addEffort, "effort", "e", 0, "estimated effort in minutes (default 25)")
	addCmd.Flags().StringVar(&addDue, "due", "", "due time, RFC 3339 (e.g. 2026-09-01T17:00:00Z)")
	addCmd.Flags().StringVarP(&addNotes, "notes", "n", "", "free-form notes")
}

func runAdd(cmd *cobra.Command, args []string) error {
	title := strings.TrimSpace(strings.Join(args, " "))
	if title == "" {
		return fmt.Errorf("title cannot be empty")
	}

	var dueAt *time.Time
	if addDue != "" {
		parsed, err := time.Parse(time.RFC3339, addDue)
		if err != nil {
			return fmt.Errorf("invalid --due time %q: %w", addDue, err)
		}
		dueAt = &parsed
	}

	eng, cleanup, err := openEngine()
	if err != nil {
		return err
	}
	defer cleanup()

	task, err := eng.AddTask(engine.AddTask{
		Title:      title,
		Importance: addImportance,
		EffortMin:  addEffort,
		DueAt:      dueAt,
		Notes:      addNotes,
	})
	if err != nil {
		return fmt.Errorf("add task: %w", err)
	}

	if isJSON() {
		return printJSON(task)
	}

	fmt.Printf("✔ Added %q (ID: %s, importance %d, ~%dm)\n",
		task.Title, util.ShortID(task.ID, 0), task.Importance, task.EffortMin)
	return nil
}
