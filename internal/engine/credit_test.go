package engine

import (
	"testing"
	"time"

	"github.com/lawrnfy/TaskForge/models"
	"github.com/stretchr/testify/assert"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 14, 0, 0, 0, time.UTC)
}

func TestApplyCompletion_Multipliers(t *testing.T) {
	tests := []struct {
		name       string
		importance int
		hadPause   bool
		want       int
	}{
		{"importance 5", 5, false, 2},
		{"importance 4", 4, false, 1}, // floor(1.5)
		{"importance 3", 3, false, 1},
		{"importance 1", 1, false, 1},
		{"importance 5 with pause", 5, true, 1},
		{"importance 3 with pause", 3, true, 0}, // floor(0.75)
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stats := models.Stats{LastCreditResetMonth: "2025-06"}
			ApplyCompletion(&stats, tt.importance, tt.hadPause, day(2025, time.June, 10))
			assert.Equal(t, tt.want, stats.CreditsThisMonth)
		})
	}
}

func TestApplyCompletion_PauseHalvesCredit(t *testing.T) {
	clean := models.Stats{}
	paused := models.Stats{}
	at := day(2025, time.June, 10)

	earnedClean := ApplyCompletion(&clean, 5, false, at)
	earnedPaused := ApplyCompletion(&paused, 5, true, at)

	assert.Equal(t, 2.0, earnedClean)
	assert.Equal(t, 1.0, earnedPaused)
	assert.Equal(t, 2, clean.CreditsThisMonth)
	assert.Equal(t, 1, paused.CreditsThisMonth)
}

func TestApplyCompletion_StreakRules(t *testing.T) {
	stats := models.Stats{}

	// Three consecutive days.
	ApplyCompletion(&stats, 1, false, day(2025, time.June, 1))
	assert.Equal(t, 1, stats.StreakDays)
	ApplyCompletion(&stats, 1, false, day(2025, time.June, 2))
	assert.Equal(t, 2, stats.StreakDays)
	ApplyCompletion(&stats, 1, false, day(2025, time.June, 3))
	assert.Equal(t, 3, stats.StreakDays)

	// Second completion the same day leaves the streak alone.
	ApplyCompletion(&stats, 1, false, day(2025, time.June, 3).Add(2*time.Hour))
	assert.Equal(t, 3, stats.StreakDays)

	// Missing a day restarts at 1.
	ApplyCompletion(&stats, 1, false, day(2025, time.June, 5))
	assert.Equal(t, 1, stats.StreakDays)
}

func TestApplyCompletion_MilestoneBonusFlat(t *testing.T) {
	// Four consecutive days in, importance 3, fresh month.
	stats := models.Stats{}
	for d := 1; d <= 4; d++ {
		ApplyCompletion(&stats, 3, false, day(2025, time.June, d))
	}
	before := stats.CreditsThisMonth

	// Day five: base floor(1.5)=1 plus flat bonus 5.
	ApplyCompletion(&stats, 3, false, day(2025, time.June, 5))
	assert.Equal(t, 5, stats.StreakDays)
	assert.Equal(t, before+6, stats.CreditsThisMonth)
}

func TestApplyCompletion_NoBonusOnRepeatDay(t *testing.T) {
	stats := models.Stats{StreakDays: 4, LastPomodoroDate: "2025-06-04"}
	ApplyCompletion(&stats, 1, false, day(2025, time.June, 5))
	assert.Equal(t, 5, stats.StreakDays)
	withBonus := stats.CreditsThisMonth

	// Same-day completion: no second bonus, streak untouched.
	ApplyCompletion(&stats, 1, false, day(2025, time.June, 5).Add(time.Hour))
	assert.Equal(t, 5, stats.StreakDays)
	assert.Equal(t, withBonus+1, stats.CreditsThisMonth)
}

func TestMonthlyReset_OncePerBoundary(t *testing.T) {
	stats := models.Stats{CreditsThisMonth: 42, LastCreditResetMonth: "2025-05"}

	assert.True(t, MonthlyReset(&stats, day(2025, time.June, 1)))
	assert.Zero(t, stats.CreditsThisMonth)
	assert.Equal(t, "2025-06", stats.LastCreditResetMonth)

	stats.CreditsThisMonth = 7
	assert.False(t, MonthlyReset(&stats, day(2025, time.June, 15)))
	assert.Equal(t, 7, stats.CreditsThisMonth, "repeat maintenance within a month must not reset")
}

func TestMonthlyReset_AdoptsMonthOnUnstampedLedger(t *testing.T) {
	stats := models.Stats{CreditsThisMonth: 3}

	assert.True(t, MonthlyReset(&stats, day(2025, time.June, 15)))
	assert.Equal(t, 3, stats.CreditsThisMonth, "first stamp keeps mid-month credits")
	assert.Equal(t, "2025-06", stats.LastCreditResetMonth)
}
