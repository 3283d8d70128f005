package cmd

import (
	"fmt"
	"time"

	"github.com/lawrnfy/TaskForge/internal/ui"
	"github.com/spf13/cobra"
)

// statusCmd represents the status command
var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the current session at a glance",
	Args:  cobra.NoArgs,
	RunE:  runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
	eng, cleanup, err := openEngine()
	if err != nil {
		return err
	}
	defer cleanup()

	snap, err := eng.Snapshot()
	if err != nil {
		return fmt.Errorf("read state: %w", err)
	}

	if isJSON() {
		return printJSON(snap)
	}

	sess := snap.Session
	if !sess.Active {
		fmt.Println("No active session.")
		return nil
	}

	title := "untracked"
	if sess.TaskID != nil {
		for _, t := range snap.Tasks {
			if t.ID == *sess.TaskID {
				title = t.Title
				break
			}
		}
	}

	remaining := sess.Remaining(time.Now()).Round(time.Second)
	state := "running"
	if sess.Paused {
		state = "paused"
	}
	fmt.Printf(" %s %s (%s, %s left)\n", ui.StylePrimary.Render("●"), title, state, remaining)
	return nil
}
