package cmd

import (
	"fmt"
	"strings"

	"github.com/lawrnfy/TaskForge/internal/ui"
	"github.com/lawrnfy/TaskForge/models"
	"github.com/spf13/cobra"
)

// settingsCmd groups settings inspection and updates.
var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Show or change settings",
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	Args:  cobra.NoArgs,
	RunE:  runSettingsShow,
}

var (
	setAccent   string
	setWorkMin  int
	setBreakMin int
	setBlocked  []string
	setBlockOn  bool
	setBlockOff bool
	setDailyCap int
)

var settingsSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Update settings",
	Long: `Update one or more settings. Only flags you pass are changed.

Examples:
  taskforge settings set --work 50 --break 10
  taskforge settings set --accent green
  taskforge settings set --blocked youtube.com,news.ycombinator.com
  taskforge settings set --block-off`,
	Args: cobra.NoArgs,
	RunE: runSettingsSet,
}

func init() {
	rootCmd.AddCommand(settingsCmd)
	settingsCmd.AddCommand(settingsShowCmd, settingsSetCmd)

	settingsSetCmd.Flags().StringVar(&setAccent, "accent", "", "accent color: blue, green, or orange")
	settingsSetCmd.Flags().IntVar(&setWorkMin, "work", 0, "work session length in minutes")
	settingsSetCmd.Flags().IntVar(&setBreakMin, "break", 0, "break length in minutes")
	settingsSetCmd.Flags().StringSliceVar(&setBlocked, "blocked", nil, "comma-separated list of blocked site suffixes")
	settingsSetCmd.Flags().BoolVar(&setBlockOn, "block-on", false, "enable site blocking during sessions")
	settingsSetCmd.Flags().BoolVar(&setBlockOff, "block-off", false, "disable site blocking")
	settingsSetCmd.Flags().IntVar(&setDailyCap, "daily-cap", 0, "max reminder nags per task per day")
}

func runSettingsShow(cmd *cobra.Command, args []string) error {
	st := mustStore()
	defer func() { _ = st.Close() }()

	settings, err := st.GetSettings()
	if err != nil {
		return fmt.Errorf("read settings: %w", err)
	}

	if isJSON() {
		return printJSON(settings)
	}

	fmt.Println(ui.StyleHeader.Render("⚙ Settings"))
	fmt.Printf(" Accent: %s\n", settings.Accent)
	fmt.Printf(" Work: %dm  Break: %dm\n", settings.WorkMin, settings.BreakMin)
	fmt.Printf(" Site blocking: %v (%s)\n", settings.SiteBlockEnabled, strings.Join(settings.BlockedSites, ", "))
	fmt.Printf(" Daily nag cap: %d\n", settings.DailyEscalationCap)
	return nil
}

func runSettingsSet(cmd *cobra.Command, args []string) error {
	if setBlockOn && setBlockOff {
		return fmt.Errorf("--block-on and --block-off are mutually exclusive")
	}

	var patch models.SettingsPatch
	if cmd.Flags().Changed("accent") {
		patch.Accent = &setAccent
	}
	if cmd.Flags().Changed("work") {
		patch.WorkMin = &setWorkMin
	}
	if cmd.Flags().Changed("break") {
		patch.BreakMin = &setBreakMin
	}
	if cmd.Flags().Changed("blocked") {
		patch.BlockedSites = &setBlocked
	}
	if setBlockOn {
		on := true
		patch.SiteBlockEnabled = &on
	}
	if setBlockOff {
		off := false
		patch.SiteBlockEnabled = &off
	}
	if cmd.Flags().Changed("daily-cap") {
		patch.DailyEscalationCap = &setDailyCap
	}

	eng, cleanup, err := openEngine()
	if err != nil {
		return err
	}
	defer cleanup()

	if err := eng.PatchSettings(patch); err != nil {
		return fmt.Errorf("update settings: %w", err)
	}

	return runSettingsShow(cmd, nil)
}
