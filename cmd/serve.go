package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/lawrnfy/TaskForge/internal/server"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the focus daemon with its HTTP command API",
	Long: `Run TaskForge as a long-lived daemon. The daemon owns the alarm
scheduler, so reminder ladders, session expiry, and the daily reset all
fire while it runs. An HTTP API on the configured port accepts the same
commands as the CLI, for browser extensions or other frontends.

Endpoints live under /api: state, tasks, session lifecycle, settings,
and the navigation gate check.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

var servePort int

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().IntVarP(&servePort, "port", "p", 0, "listen port (default from config)")
}

func runServe(cmd *cobra.Command, args []string) error {
	eng, cleanup, err := openEngine()
	if err != nil {
		return err
	}
	defer cleanup()

	log := newLogger()
	defer func() { _ = log.Sync() }()

	// Re-arm alarms for whatever state the last run left behind before
	// opening the API.
	if err := eng.Recover(); err != nil {
		return fmt.Errorf("recover persisted schedules: %w", err)
	}
	eng.ScheduleHousekeeping()

	cfg := GetConfig()
	port := cfg.Server.Port
	if servePort > 0 {
		port = servePort
	}

	srv := server.New(eng, port, cfg.Server.Origins, log)

	var wg sync.WaitGroup
	errChan := make(chan error, 1)
	srv.Start(&wg, errChan)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errChan:
		return err
	case sig := <-sigChan:
		log.Info("shutting down", zap.String("signal", sig.String()))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	wg.Wait()
	return nil
}
