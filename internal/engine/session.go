package engine

import (
	"fmt"
	"math"
	"time"

	"github.com/lawrnfy/TaskForge/internal/block"
	"github.com/lawrnfy/TaskForge/internal/notify"
	"github.com/lawrnfy/TaskForge/models"
	"github.com/lawrnfy/TaskForge/types"
	"go.uber.org/zap"
)

// StartSession begins a focus session, optionally tied to a task. A zero or
// negative durationMin falls back to Settings.WorkMin. When a session is
// already active it returns types.ErrSessionActive and changes nothing:
// concurrent starts resolve to exactly one winner under sessionMu.
func (e *Engine) StartSession(taskID string, durationMin int) error {
	e.sessionMu.Lock()
	defer e.sessionMu.Unlock()

	sess, err := e.store.GetSession()
	if err != nil {
		return fmt.Errorf("read session: %w", err)
	}
	if sess.Active {
		return types.ErrSessionActive
	}

	settings, err := e.store.GetSettings()
	if err != nil {
		return fmt.Errorf("read settings: %w", err)
	}

	// A deleted or unknown task degrades to an untracked session.
	var boundTask *string
	if taskID != "" {
		if _, err := e.store.GetTask(taskID); err == nil {
			id := taskID
			boundTask = &id
		}
	}

	workMin := durationMin
	if workMin <= 0 {
		workMin = settings.WorkMin
	}
	if workMin <= 0 {
		workMin = 25
	}

	now := e.clock.Now()
	next := models.SessionState{
		Active:  true,
		TaskID:  boundTask,
		StartAt: now,
		EndAt:   now.Add(time.Duration(workMin) * time.Minute),
	}
	if err := e.store.SetSession(next); err != nil {
		return fmt.Errorf("persist session: %w", err)
	}

	// Schedule only after the state is durably active.
	e.alarms.ScheduleAt(AlarmSessionEnd, next.EndAt)

	// Surfaces already sitting on a blocked destination get no navigation
	// event, so sweep them now.
	if settings.SiteBlockEnabled {
		e.gate.Sweep(func(host string) bool {
			return block.HostBlocked(host, settings.BlockedSites)
		})
	}

	e.notifier.Notify(notify.Notification{
		ID:       "session_started",
		Title:    "Focus started",
		Message:  fmt.Sprintf("Stay on task for %d minutes.", workMin),
		Priority: 1,
	})
	e.log.Info("session started",
		zap.Stringp("task", boundTask),
		zap.Int("minutes", workMin))
	return nil
}

// PauseSession freezes the remaining duration. Pausing an idle session
// returns ErrNoActiveSession; pausing a paused one returns
// ErrAlreadyPaused. HadPause is set and never unset within the session.
func (e *Engine) PauseSession() error {
	e.sessionMu.Lock()
	defer e.sessionMu.Unlock()

	sess, err := e.store.GetSession()
	if err != nil {
		return fmt.Errorf("read session: %w", err)
	}
	if !sess.Active {
		return types.ErrNoActiveSession
	}
	if sess.Paused {
		return types.ErrAlreadyPaused
	}

	now := e.clock.Now()
	remaining := sess.EndAt.Sub(now)
	if remaining < 0 {
		remaining = 0
	}
	remainingMs := remaining.Milliseconds()

	sess.Paused = true
	sess.PausedAt = &now
	sess.RemainingMs = &remainingMs
	sess.HadPause = true
	if err := e.store.SetSession(sess); err != nil {
		return fmt.Errorf("persist session: %w", err)
	}

	e.alarms.Cancel(AlarmSessionEnd)
	e.log.Info("session paused", zap.Int64("remainingMs", remainingMs))
	return nil
}

// ResumeSession re-arms the expiry alarm from the frozen remainder. The
// total focused time stays exactly the original duration no matter how many
// pause/resume cycles occur.
func (e *Engine) ResumeSession() error {
	e.sessionMu.Lock()
	defer e.sessionMu.Unlock()

	sess, err := e.store.GetSession()
	if err != nil {
		return fmt.Errorf("read session: %w", err)
	}
	if !sess.Active {
		return types.ErrNoActiveSession
	}
	if !sess.Paused {
		return types.ErrNotPaused
	}

	var remainingMs int64
	if sess.RemainingMs != nil {
		remainingMs = *sess.RemainingMs
	}
	now := e.clock.Now()
	sess.EndAt = now.Add(time.Duration(remainingMs) * time.Millisecond)
	sess.Paused = false
	sess.PausedAt = nil
	sess.RemainingMs = nil
	if err := e.store.SetSession(sess); err != nil {
		return fmt.Errorf("persist session: %w", err)
	}

	// ScheduleAt replaces any prior entry for the key, so the alarm can
	// never fire at a stale endAt.
	e.alarms.ScheduleAt(AlarmSessionEnd, sess.EndAt)
	e.log.Info("session resumed", zap.Time("endAt", sess.EndAt))
	return nil
}

// StopSession abandons the session: state resets, the expiry alarm is
// cancelled, blocking is lifted, and no credit is awarded.
func (e *Engine) StopSession() error {
	e.sessionMu.Lock()
	defer e.sessionMu.Unlock()

	sess, err := e.store.GetSession()
	if err != nil {
		return fmt.Errorf("read session: %w", err)
	}
	if !sess.Active {
		return types.ErrNoActiveSession
	}
	if err := e.resetSessionLocked(&sess); err != nil {
		return err
	}
	e.log.Info("session stopped")
	return nil
}

// resetSessionLocked folds sess back to idle, persists it, cancels the
// expiry alarm, and releases blocking surfaces. Caller holds sessionMu.
func (e *Engine) resetSessionLocked(sess *models.SessionState) error {
	sess.Reset()
	if err := e.store.SetSession(*sess); err != nil {
		return fmt.Errorf("persist session reset: %w", err)
	}
	e.alarms.Cancel(AlarmSessionEnd)
	e.gate.ReleaseAll()
	return nil
}

// onSessionExpire handles the expiry alarm: award credit, fold the session
// back to idle, and announce the result. Firing against an idle session
// (stopped between scheduling and delivery) is a no-op.
func (e *Engine) onSessionExpire() error {
	e.sessionMu.Lock()
	defer e.sessionMu.Unlock()

	sess, err := e.store.GetSession()
	if err != nil {
		return fmt.Errorf("read session: %w", err)
	}
	if !sess.Active {
		return nil
	}

	// Deleted or unbound tasks complete at the default importance.
	importance := models.DefaultImportance
	if sess.TaskID != nil {
		if task, err := e.store.GetTask(*sess.TaskID); err == nil {
			importance = task.Importance
		}
	}

	now := e.clock.Now()
	earned, stats, err := e.applyCompletion(importance, sess.HadPause, now)
	if err != nil {
		return err
	}

	if err := e.resetSessionLocked(&sess); err != nil {
		return err
	}

	e.notifier.Notify(notify.Notification{
		ID:       "session_done",
		Title:    "Session complete",
		Message:  fmt.Sprintf("+%d credits • Streak %d days", int(math.Round(earned)), stats.StreakDays),
		Priority: 2,
	})
	e.log.Info("session completed",
		zap.Float64("earned", earned),
		zap.Int("streak", stats.StreakDays),
		zap.Int("creditsThisMonth", stats.CreditsThisMonth))
	return nil
}

// StartBreak runs a short break timer. Breaks never award credit and never
// engage blocking.
func (e *Engine) StartBreak() error {
	settings, err := e.store.GetSettings()
	if err != nil {
		return fmt.Errorf("read settings: %w", err)
	}
	breakMin := settings.BreakMin
	if breakMin <= 0 {
		breakMin = 5
	}
	e.alarms.ScheduleAt(AlarmBreakEnd, e.clock.Now().Add(time.Duration(breakMin)*time.Minute))
	e.log.Info("break started", zap.Int("minutes", breakMin))
	return nil
}

func (e *Engine) onBreakEnd() {
	e.notifier.Notify(notify.Notification{
		ID:      "break_done",
		Title:   "Break over",
		Message: "Ready for the next focus?",
	})
}

// CheckNavigation applies the distraction gate to a navigation while a
// session is running. It reports whether the host was blocked.
func (e *Engine) CheckNavigation(host string) (bool, error) {
	sess, err := e.store.GetSession()
	if err != nil {
		return false, fmt.Errorf("read session: %w", err)
	}
	settings, err := e.store.GetSettings()
	if err != nil {
		return false, fmt.Errorf("read settings: %w", err)
	}
	if !sess.Active || !settings.SiteBlockEnabled {
		return false, nil
	}
	if !block.HostBlocked(host, settings.BlockedSites) {
		return false, nil
	}
	e.gate.Engage(host)
	return true, nil
}
