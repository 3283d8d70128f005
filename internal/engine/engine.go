// Package engine hosts the core state machines: the session controller,
// the reminder escalation scheduler, the credit ledger, and daily
// maintenance. All mutation paths funnel through the Engine, which holds a
// mutex per aggregate because the store offers no multi-step transactions;
// two interleaved read-modify-write sequences on the same aggregate would
// otherwise race (e.g. two rapid starts both observing an idle session).
package engine

import (
	"strings"
	"sync"
	"time"

	"github.com/lawrnfy/TaskForge/internal/alarm"
	"github.com/lawrnfy/TaskForge/internal/block"
	"github.com/lawrnfy/TaskForge/internal/notify"
	"github.com/lawrnfy/TaskForge/store"
	"go.uber.org/zap"
)

// Alarm keys dispatched back into the engine. Reminder alarms carry the
// task ID after the prefix.
const (
	AlarmSessionEnd     = "session_end"
	AlarmBreakEnd       = "break_end"
	AlarmDailyReset     = "daily_reset"
	AlarmDisplayTick    = "display_tick"
	AlarmReminderPrefix = "reminder:"
)

// SnoozeDelay is how long a snoozed reminder waits before re-firing.
const SnoozeDelay = 15 * time.Minute

// Engine owns the session, reminder, and stats aggregates.
type Engine struct {
	store    store.StateStore
	alarms   alarm.Scheduler
	notifier notify.Notifier
	gate     *block.Gate
	clock    Clock
	log      *zap.Logger

	sessionMu   sync.Mutex
	remindersMu sync.Mutex
	statsMu     sync.Mutex
}

// Options configures an Engine. Store and Alarms are required; the rest
// default to no-op or system implementations.
type Options struct {
	Store    store.StateStore
	Alarms   alarm.Scheduler
	Notifier notify.Notifier
	Gate     *block.Gate
	Clock    Clock
	Logger   *zap.Logger
}

// New assembles an engine from options.
func New(opts Options) *Engine {
	e := &Engine{
		store:    opts.Store,
		alarms:   opts.Alarms,
		notifier: opts.Notifier,
		gate:     opts.Gate,
		clock:    opts.Clock,
		log:      opts.Logger,
	}
	if e.notifier == nil {
		e.notifier = notify.NotifierFunc(func(notify.Notification) {})
	}
	if e.gate == nil {
		e.gate = block.NewGate()
	}
	if e.clock == nil {
		e.clock = SystemClock()
	}
	if e.log == nil {
		e.log = zap.NewNop()
	}
	return e
}

// Gate exposes the blocking gate for surface registration.
func (e *Engine) Gate() *block.Gate { return e.gate }

// HandleAlarm is the scheduler's callback entry point. Unknown keys are
// ignored so stale alarms from older versions cannot wedge the loop.
func (e *Engine) HandleAlarm(key string, firedAt time.Time) {
	switch {
	case key == AlarmSessionEnd:
		if err := e.onSessionExpire(); err != nil {
			e.log.Error("session expiry handling failed", zap.Error(err))
		}
	case key == AlarmBreakEnd:
		e.onBreakEnd()
	case key == AlarmDailyReset:
		if err := e.DailyMaintenance(); err != nil {
			e.log.Error("daily maintenance failed", zap.Error(err))
		}
	case key == AlarmDisplayTick:
		// Display refresh only; never state-affecting.
	case strings.HasPrefix(key, AlarmReminderPrefix):
		taskID := strings.TrimPrefix(key, AlarmReminderPrefix)
		if err := e.OnReminderFire(taskID); err != nil {
			e.log.Error("reminder firing failed", zap.String("task", taskID), zap.Error(err))
		}
	default:
		e.log.Debug("ignoring unknown alarm", zap.String("key", key), zap.Time("firedAt", firedAt))
	}
}

// HandleNotificationAction maps a pressed notification button back into the
// core: index 0 starts a session for the task, index 1 snoozes its
// reminder.
func (e *Engine) HandleNotificationAction(taskID string, buttonIndex int) error {
	switch buttonIndex {
	case 0:
		err := e.StartSession(taskID, 0)
		if err != nil {
			return err
		}
		return nil
	case 1:
		return e.SnoozeReminder(taskID)
	default:
		e.log.Debug("unknown notification button", zap.Int("index", buttonIndex))
		return nil
	}
}

// ScheduleHousekeeping arms the daily-boundary alarm at the next 00:01
// local time (repeating every 24h) and the one-minute display tick.
func (e *Engine) ScheduleHousekeeping() {
	now := e.clock.Now()
	next := time.Date(now.Year(), now.Month(), now.Day(), 0, 1, 0, 0, now.Location()).Add(24 * time.Hour)
	e.alarms.SchedulePeriodic(AlarmDailyReset, next, 24*time.Hour)
	e.alarms.SchedulePeriodic(AlarmDisplayTick, now.Add(time.Minute), time.Minute)
}

// Recover re-arms alarms for state that survived a restart: a running
// session gets its expiry alarm back (firing immediately if overdue) and
// every reminder with a future nextAt is re-scheduled.
func (e *Engine) Recover() error {
	sess, err := e.store.GetSession()
	if err != nil {
		return err
	}
	if sess.Active && !sess.Paused {
		e.alarms.ScheduleAt(AlarmSessionEnd, sess.EndAt)
		e.log.Info("re-armed session expiry", zap.Time("endAt", sess.EndAt))
	}

	reminders, err := e.store.GetReminders()
	if err != nil {
		return err
	}
	now := e.clock.Now()
	for taskID, r := range reminders {
		if r.NextAt != nil && r.NextAt.After(now) {
			e.alarms.ScheduleAt(AlarmReminderPrefix+taskID, *r.NextAt)
		}
	}
	return nil
}
