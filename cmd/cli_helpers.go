package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/lawrnfy/TaskForge/internal/alarm"
	"github.com/lawrnfy/TaskForge/internal/engine"
	"github.com/lawrnfy/TaskForge/internal/notify"
	"github.com/lawrnfy/TaskForge/store"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

func isJSON() bool {
	return viper.GetBool("json")
}

func isVerbose() bool {
	return viper.GetBool("verbose")
}

func printJSON(v any) error {
	output, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(output))
	return nil
}

// newLogger builds the zap logger for a command invocation. Verbose mode
// gets development output; otherwise only warnings and up reach stderr.
func newLogger() *zap.Logger {
	if isVerbose() {
		log, err := zap.NewDevelopment()
		if err == nil {
			return log
		}
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	log, err := cfg.Build()
	if err != nil {
		return zap.NewNop()
	}
	return log
}

// openEngine wires a store, scheduler, and console notifier into an engine.
// The returned cleanup stops the scheduler and closes the store.
func openEngine() (*engine.Engine, func(), error) {
	st, err := GetStore()
	if err != nil {
		return nil, nil, err
	}

	settings, err := st.GetSettings()
	if err != nil {
		_ = st.Close()
		return nil, nil, fmt.Errorf("read settings: %w", err)
	}

	// The scheduler needs the engine's alarm handler and the engine needs
	// the scheduler, so route through a late-bound pointer.
	var eng *engine.Engine
	sched := alarm.NewHeapScheduler(func(key string, firedAt time.Time) {
		eng.HandleAlarm(key, firedAt)
	})

	log := newLogger()
	eng = engine.New(engine.Options{
		Store:    st,
		Alarms:   sched,
		Notifier: notify.NewConsoleNotifier(os.Stdout, settings.Accent),
		Logger:   log,
	})

	cleanup := func() {
		sched.Stop()
		_ = st.Close()
		_ = log.Sync()
	}
	return eng, cleanup, nil
}

// mustStore opens the store or exits with a message. For read-only commands
// that don't need the full engine.
func mustStore() store.StateStore {
	st, err := GetStore()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to get store: %v\n", err)
		os.Exit(1)
	}
	return st
}
