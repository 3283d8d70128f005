package cmd

import (
	"fmt"
	"os"

	"github.com/lawrnfy/TaskForge/internal/util"
	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
)

// deleteCmd represents the delete command
var deleteCmd = &cobra.Command{
	Use:   "delete [task_id]",
	Short: "Delete a task",
	Long: `Delete a task by its ID or a unique ID prefix. If no ID is provided,
an interactive list is shown. Deleting a task also cancels any pending
reminder for it. A confirmation prompt is displayed before deletion.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runDelete,
}

var deleteYes bool

func init() {
	rootCmd.AddCommand(deleteCmd)

	deleteCmd.Flags().BoolVarP(&deleteYes, "yes", "y", false, "skip confirmation prompt")
}

func runDelete(cmd *cobra.Command, args []string) error {
	eng, cleanup, err := openEngine()
	if err != nil {
		return err
	}
	defer cleanup()

	snap, err := eng.Snapshot()
	if err != nil {
		return fmt.Errorf("read state: %w", err)
	}

	var taskID, taskTitle string

	if len(args) > 0 {
		task, err := util.ResolveTask(snap.Tasks, args[0])
		if err != nil {
			return err
		}
		taskID = task.ID
		taskTitle = task.Title
	} else {
		st := mustStore()
		selected, err := selectTaskInteractive(st, nil, "Select task to delete")
		_ = st.Close()
		if err != nil {
			if err == promptui.ErrInterrupt {
				fmt.Println("Deletion cancelled.")
				return nil
			}
			if err == ErrNoTasksFound {
				fmt.Println("No tasks available to delete.")
				return nil
			}
			return fmt.Errorf("task selection failed: %w", err)
		}
		taskID = selected.ID
		taskTitle = selected.Title
	}

	if !deleteYes && !isJSON() {
		confirmPrompt := promptui.Prompt{
			Label:     fmt.Sprintf("Delete task %q (ID: %s)", taskTitle, util.ShortID(taskID, 0)),
			IsConfirm: true,
		}
		if _, err := confirmPrompt.Run(); err != nil {
			if err == promptui.ErrAbort {
				fmt.Println("Deletion cancelled.")
				return nil
			}
			fmt.Fprintf(os.Stderr, "Confirmation prompt failed: %v\n", err)
			return err
		}
	}

	if err := eng.RemoveTask(taskID); err != nil {
		return fmt.Errorf("delete task %s: %w", taskID, err)
	}

	if isJSON() {
		return printJSON(map[string]string{"status": "deleted", "id": taskID})
	}
	fmt.Printf("✔ Deleted %q\n", taskTitle)
	return nil
}
