package cmd

import (
	"fmt"

	"github.com/lawrnfy/TaskForge/internal/ui"
	"github.com/spf13/cobra"
)

// statsCmd represents the stats command
var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show credits and streak",
	Long: `Show the gamified ledger: credits earned this month and the current
daily streak. Credits reset at each month boundary; the streak survives
as long as you complete at least one session every day.`,
	Args: cobra.NoArgs,
	RunE: runStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, args []string) error {
	st := mustStore()
	defer func() { _ = st.Close() }()

	stats, err := st.GetStats()
	if err != nil {
		return fmt.Errorf("read stats: %w", err)
	}

	if isJSON() {
		return printJSON(stats)
	}

	ui.RenderStats(stats)
	return nil
}
