package cmd

import (
	"fmt"

	"github.com/lawrnfy/TaskForge/internal/util"
	"github.com/lawrnfy/TaskForge/types"
	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
)

// sessionCmd groups the focus-session lifecycle commands.
var sessionCmd = &cobra.Command{
	Use:   "session",
	Short: "Control the focus session",
	Long: `Start, pause, resume, and stop focus sessions.

Only one session runs at a time; starting while one is active is a
no-op. Completing a session earns credits scaled by the bound task's
importance.`,
}

var startDuration int

var sessionStartCmd = &cobra.Command{
	Use:   "start [task_id]",
	Short: "Start a focus session",
	Long: `Start a focus session, optionally against a task (by ID or unique
prefix). Without a task ID and with a terminal attached, an interactive
picker is shown; pass --untracked to skip it. Duration falls back to
the configured work length (default 25 minutes).`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSessionStart,
}

var startUntracked bool

var sessionPauseCmd = &cobra.Command{
	Use:   "pause",
	Short: "Pause the running session",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runLifecycle("pause", func(eng sessionEngine) error { return eng.PauseSession() })
	},
}

var sessionResumeCmd = &cobra.Command{
	Use:   "resume",
	Short: "Resume a paused session",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runLifecycle("resume", func(eng sessionEngine) error { return eng.ResumeSession() })
	},
}

var sessionStopCmd = &cobra.Command{
	Use:   "stop",
	Short: "Stop the session without credit",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runLifecycle("stop", func(eng sessionEngine) error { return eng.StopSession() })
	},
}

var sessionBreakCmd = &cobra.Command{
	Use:   "break",
	Short: "Start a break timer",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runLifecycle("break", func(eng sessionEngine) error { return eng.StartBreak() })
	},
}

func init() {
	rootCmd.AddCommand(sessionCmd)
	sessionCmd.AddCommand(sessionStartCmd, sessionPauseCmd, sessionResumeCmd, sessionStopCmd, sessionBreakCmd)

	sessionStartCmd.Flags().IntVarP(&startDuration, "duration", "d", 0, "session length in minutes (default from settings)")
	sessionStartCmd.Flags().BoolVar(&startUntracked, "untracked", false, "start without a task")
}

// sessionEngine is the slice of the engine the lifecycle subcommands need.
type sessionEngine interface {
	PauseSession() error
	ResumeSession() error
	StopSession() error
	StartBreak() error
}

func runLifecycle(name string, fn func(sessionEngine) error) error {
	eng, cleanup, err := openEngine()
	if err != nil {
		return err
	}
	defer cleanup()

	if err := fn(eng); err != nil {
		if types.IsIgnored(err) {
			fmt.Printf("Nothing to %s: %v\n", name, err)
			return nil
		}
		return err
	}

	if isJSON() {
		return printJSON(map[string]string{"status": name})
	}
	fmt.Printf("✔ Session %s\n", pastTense(name))
	return nil
}

func pastTense(name string) string {
	switch name {
	case "stop":
		return "stopped"
	case "break":
		return "break started"
	default:
		return name + "d"
	}
}

func runSessionStart(cmd *cobra.Command, args []string) error {
	eng, cleanup, err := openEngine()
	if err != nil {
		return err
	}
	defer cleanup()

	var taskID string
	if len(args) > 0 {
		snap, err := eng.Snapshot()
		if err != nil {
			return fmt.Errorf("read state: %w", err)
		}
		task, err := util.ResolveTask(snap.Tasks, args[0])
		if err != nil {
			return err
		}
		taskID = task.ID
	} else if !startUntracked && !isJSON() {
		st := mustStore()
		selected, err := selectTaskInteractive(st, nil, "Focus on which task")
		_ = st.Close()
		switch err {
		case nil:
			taskID = selected.ID
		case promptui.ErrInterrupt:
			fmt.Println("Cancelled.")
			return nil
		case ErrNoTasksFound:
			// Untracked session.
		default:
			return fmt.Errorf("task selection failed: %w", err)
		}
	}

	if err := eng.StartSession(taskID, startDuration); err != nil {
		if types.IsIgnored(err) {
			fmt.Println("A session is already running.")
			return nil
		}
		return fmt.Errorf("start session: %w", err)
	}

	if isJSON() {
		return printJSON(map[string]string{"status": "started", "taskId": taskID})
	}
	fmt.Println("✔ Focus session started. Run `taskforge watch` to follow it.")
	return nil
}
