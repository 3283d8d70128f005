package engine

import (
	"fmt"

	"go.uber.org/zap"
)

// DailyMaintenance runs the calendar-boundary housekeeping: every task's
// sentToday counter is zeroed (levels are kept so escalation keeps building
// urgency across days) and the monthly credit epoch rolls over when the
// stored month differs from the current one. Idempotent within a day; it
// must run before any reminder scheduling that depends on the fresh
// counters.
func (e *Engine) DailyMaintenance() error {
	e.remindersMu.Lock()
	reminders, err := e.store.GetReminders()
	if err != nil {
		e.remindersMu.Unlock()
		return fmt.Errorf("read reminders: %w", err)
	}
	for id, r := range reminders {
		r.SentToday = 0
		reminders[id] = r
	}
	if err := e.store.SetReminders(reminders); err != nil {
		e.remindersMu.Unlock()
		return fmt.Errorf("persist reminders: %w", err)
	}
	e.remindersMu.Unlock()

	e.statsMu.Lock()
	defer e.statsMu.Unlock()
	stats, err := e.store.GetStats()
	if err != nil {
		return fmt.Errorf("read stats: %w", err)
	}
	if MonthlyReset(&stats, e.clock.Now()) {
		if err := e.store.SetStats(stats); err != nil {
			return fmt.Errorf("persist stats: %w", err)
		}
		e.log.Info("credit epoch rolled", zap.String("month", stats.LastCreditResetMonth))
	}
	return nil
}
