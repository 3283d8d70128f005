package engine

import (
	"fmt"
	"time"

	"github.com/lawrnfy/TaskForge/internal/notify"
	"github.com/lawrnfy/TaskForge/models"
	"go.uber.org/zap"
)

// escalationDelays is the reminder ladder, in minutes of delay before the
// next notification, indexed by level. Level 0 means an immediate first
// ping.
var escalationDelays = []time.Duration{
	0,
	5 * time.Minute,
	15 * time.Minute,
	45 * time.Minute,
}

// ScheduleNextReminder arms the next reminder alarm for a task according to
// its escalation level. Once the daily cap is reached nothing is scheduled
// until the daily reset clears the counter and a caller re-invokes
// scheduling. The reminder state is persisted before the alarm is armed.
func (e *Engine) ScheduleNextReminder(task models.Task) error {
	e.remindersMu.Lock()
	defer e.remindersMu.Unlock()

	r, _, err := e.store.GetReminder(task.ID)
	if err != nil {
		return fmt.Errorf("read reminder: %w", err)
	}
	settings, err := e.store.GetSettings()
	if err != nil {
		return fmt.Errorf("read settings: %w", err)
	}
	cap := settings.DailyEscalationCap
	if cap <= 0 {
		cap = models.DefaultDailyEscalationCap
	}
	if r.SentToday >= cap {
		e.log.Debug("daily reminder cap reached", zap.String("task", task.ID))
		return nil
	}

	level := r.Level
	if level >= len(escalationDelays) {
		level = len(escalationDelays) - 1
	}
	when := e.clock.Now().Add(escalationDelays[level])
	r.NextAt = &when
	if err := e.store.SetReminder(task.ID, r); err != nil {
		return fmt.Errorf("persist reminder: %w", err)
	}

	e.alarms.ScheduleAt(AlarmReminderPrefix+task.ID, when)
	e.log.Debug("reminder scheduled",
		zap.String("task", task.ID),
		zap.Int("level", r.Level),
		zap.Time("nextAt", when))
	return nil
}

// OnReminderFire handles a reminder alarm for taskID. A missing task or
// missing reminder state (deleted between scheduling and firing) is a
// benign no-op. Under the cap it emits the nag notification, bumps the
// level (bounded by the ladder) and the daily counter, and persists; it
// does not re-arm the next alarm; re-triggering is an external workflow
// concern.
func (e *Engine) OnReminderFire(taskID string) error {
	e.remindersMu.Lock()
	defer e.remindersMu.Unlock()

	task, err := e.store.GetTask(taskID)
	if err != nil {
		return nil
	}
	r, ok, err := e.store.GetReminder(taskID)
	if err != nil {
		return fmt.Errorf("read reminder: %w", err)
	}
	if !ok {
		return nil
	}
	settings, err := e.store.GetSettings()
	if err != nil {
		return fmt.Errorf("read settings: %w", err)
	}
	cap := settings.DailyEscalationCap
	if cap <= 0 {
		cap = models.DefaultDailyEscalationCap
	}
	if r.SentToday >= cap {
		return nil
	}

	escalated := r.Level >= 1
	if r.Level < len(escalationDelays)-1 {
		r.Level++
	}
	r.SentToday++
	r.NextAt = nil
	if err := e.store.SetReminder(taskID, r); err != nil {
		return fmt.Errorf("persist reminder: %w", err)
	}

	e.notifier.Notify(notify.Notification{
		ID:                 fmt.Sprintf("tf_%s_%d", taskID, e.clock.Now().UnixMilli()),
		Title:              "Time to forge: " + task.Title,
		Message:            fmt.Sprintf("Est. %dm • Importance %d★", task.EffortMin, task.Importance),
		Priority:           2,
		RequireInteraction: escalated,
		Buttons: []notify.Button{
			{Title: "Start Session"},
			{Title: "Snooze 15m"},
		},
		TaskID: taskID,
	})
	e.log.Info("reminder fired",
		zap.String("task", taskID),
		zap.Int("level", r.Level),
		zap.Int("sentToday", r.SentToday))
	return nil
}

// SnoozeReminder re-arms a task's reminder alarm 15 minutes out without
// touching its level or daily counter. Snoozing a deleted task is a no-op.
func (e *Engine) SnoozeReminder(taskID string) error {
	if _, err := e.store.GetTask(taskID); err != nil {
		return nil
	}
	e.alarms.ScheduleAt(AlarmReminderPrefix+taskID, e.clock.Now().Add(SnoozeDelay))
	e.log.Debug("reminder snoozed", zap.String("task", taskID))
	return nil
}

// CancelReminder disarms a task's reminder alarm and drops its state; used
// when the task is deleted. Idempotent.
func (e *Engine) CancelReminder(taskID string) error {
	e.remindersMu.Lock()
	defer e.remindersMu.Unlock()

	e.alarms.Cancel(AlarmReminderPrefix + taskID)
	if err := e.store.DeleteReminder(taskID); err != nil {
		return fmt.Errorf("delete reminder: %w", err)
	}
	return nil
}
