package engine

import (
	"fmt"
	"math"
	"time"

	"github.com/lawrnfy/TaskForge/models"
)

// Credit economy constants.
const creditBase = 1.0

// streakBonuses are flat, un-multiplied credits awarded the day a streak
// milestone is reached.
var streakBonuses = map[int]int{5: 5, 10: 10, 30: 50}

// creditMultiplier scales the base credit by task importance.
func creditMultiplier(importance int) float64 {
	switch {
	case importance >= 5:
		return 2.0
	case importance >= 3:
		return 1.5
	default:
		return 1.0
	}
}

// ApplyCompletion is the pure ledger step: it mutates stats in place for
// one completed session and returns the multiplied credit earned (before
// the flat streak bonus, which callers do not display).
//
// The monthly total is floored after adding the multiplied credit and
// before any flat bonus: fractional pomodoro credit truncates, bonuses stay
// whole. The streak advances only on the first completion of a calendar
// day; a completion the day after the previous one extends the streak, any
// other new date restarts it at 1.
func ApplyCompletion(stats *models.Stats, importance int, hadPause bool, now time.Time) float64 {
	earned := creditBase * creditMultiplier(importance)
	if hadPause {
		earned *= 0.5 // pause penalty
	}
	stats.CreditsThisMonth = int(math.Floor(float64(stats.CreditsThisMonth) + earned))

	today := models.DateOf(now)
	if stats.LastPomodoroDate != today {
		if stats.LastPomodoroDate == models.DayBefore(now) {
			stats.StreakDays++
		} else {
			stats.StreakDays = 1
		}
		stats.LastPomodoroDate = today
		if bonus, ok := streakBonuses[stats.StreakDays]; ok {
			stats.CreditsThisMonth += bonus
		}
	}
	return earned
}

// loadStats reads the ledger, stamping a never-written credit epoch with
// the current month. Without the stamp the first maintenance pass inside
// the month would treat the ledger as stale and zero it. Callers hold
// statsMu.
func (e *Engine) loadStats() (models.Stats, error) {
	stats, err := e.store.GetStats()
	if err != nil {
		return models.Stats{}, err
	}
	if stats == (models.Stats{}) {
		stats = models.NewStats(e.clock.Now())
	} else if stats.LastCreditResetMonth == "" {
		// Ledger written by an older build that never stamped the epoch.
		stats.LastCreditResetMonth = models.MonthOf(e.clock.Now())
	}
	return stats, nil
}

// applyCompletion runs the ledger under statsMu with a read-apply-write
// against the store.
func (e *Engine) applyCompletion(importance int, hadPause bool, now time.Time) (float64, models.Stats, error) {
	e.statsMu.Lock()
	defer e.statsMu.Unlock()

	stats, err := e.loadStats()
	if err != nil {
		return 0, models.Stats{}, fmt.Errorf("read stats: %w", err)
	}
	earned := ApplyCompletion(&stats, importance, hadPause, now)
	if err := e.store.SetStats(stats); err != nil {
		return 0, models.Stats{}, fmt.Errorf("persist stats: %w", err)
	}
	return earned, stats, nil
}

// MonthlyReset zeroes the monthly credit total exactly once per month
// boundary. Safe to call any number of times within a month. A ledger with
// no epoch stamp adopts the current month instead of being wiped.
func MonthlyReset(stats *models.Stats, now time.Time) bool {
	month := models.MonthOf(now)
	if stats.LastCreditResetMonth == month {
		return false
	}
	if stats.LastCreditResetMonth == "" {
		stats.LastCreditResetMonth = month
		return true
	}
	stats.CreditsThisMonth = 0
	stats.LastCreditResetMonth = month
	return true
}
