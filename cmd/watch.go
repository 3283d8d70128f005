package cmd

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/lawrnfy/TaskForge/internal/ui"
	"github.com/spf13/cobra"
)

// watchCmd represents the watch command
var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Follow the running session in a live countdown view",
	Long: `Open a live countdown for the current focus session.

Keys: p pause, r resume, s stop, b break, q quit. Quitting the view
does not affect the session.`,
	Args: cobra.NoArgs,
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	if !ui.IsInteractive() {
		return fmt.Errorf("watch needs a terminal; use `taskforge status` instead")
	}

	eng, cleanup, err := openEngine()
	if err != nil {
		return err
	}
	defer cleanup()

	snap, err := eng.Snapshot()
	if err != nil {
		return fmt.Errorf("read state: %w", err)
	}

	model := ui.NewTimerModel(eng, snap.Settings.Accent)
	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("watch view failed: %w", err)
	}
	return nil
}
