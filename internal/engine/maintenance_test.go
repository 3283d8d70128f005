package engine

import (
	"testing"
	"time"

	"github.com/lawrnfy/TaskForge/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDailyMaintenance_ResetsCountersKeepsLevels(t *testing.T) {
	rig := newTestRig(t)
	a := rig.addTask(t, "Alpha", 3, 25)
	b := rig.addTask(t, "Beta", 4, 40)

	require.NoError(t, rig.store.SetReminder(a.ID, models.ReminderState{Level: 3, SentToday: 6}))
	require.NoError(t, rig.store.SetReminder(b.ID, models.ReminderState{Level: 1, SentToday: 2}))

	require.NoError(t, rig.engine.DailyMaintenance())

	ra, _, err := rig.store.GetReminder(a.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, ra.Level, "level survives the daily boundary")
	assert.Zero(t, ra.SentToday)

	rb, _, err := rig.store.GetReminder(b.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, rb.Level)
	assert.Zero(t, rb.SentToday)
}

func TestDailyMaintenance_ReopensCappedReminders(t *testing.T) {
	rig := newTestRig(t)
	task := rig.addTask(t, "Daily grind", 3, 25)
	rig.sink.Reset()

	for i := 0; i < models.DefaultDailyEscalationCap; i++ {
		require.NoError(t, rig.engine.OnReminderFire(task.ID))
	}
	require.NoError(t, rig.engine.OnReminderFire(task.ID))
	require.Len(t, rig.sink.Sent(), models.DefaultDailyEscalationCap)

	// New day: counters clear, firing is permitted again up to the cap.
	rig.clock.Advance(24 * time.Hour)
	require.NoError(t, rig.engine.DailyMaintenance())

	require.NoError(t, rig.engine.OnReminderFire(task.ID))
	sent := rig.sink.Sent()
	assert.Len(t, sent, models.DefaultDailyEscalationCap+1)
	// Level carried over, so the fresh day's first nag is already urgent.
	assert.True(t, sent[len(sent)-1].RequireInteraction)
}

func TestDailyMaintenance_MonthlyRolloverOnce(t *testing.T) {
	rig := newTestRig(t)
	require.NoError(t, rig.store.SetStats(models.Stats{
		CreditsThisMonth:     99,
		LastCreditResetMonth: "2025-05",
	}))

	require.NoError(t, rig.engine.DailyMaintenance())
	stats, err := rig.store.GetStats()
	require.NoError(t, err)
	assert.Zero(t, stats.CreditsThisMonth)
	assert.Equal(t, "2025-06", stats.LastCreditResetMonth)

	// Later completions within the month accumulate and a second
	// maintenance pass leaves them alone.
	_, _, err = rig.engine.applyCompletion(5, false, rig.clock.Now())
	require.NoError(t, err)
	require.NoError(t, rig.engine.DailyMaintenance())

	stats, err = rig.store.GetStats()
	require.NoError(t, err)
	assert.Equal(t, 2, stats.CreditsThisMonth)
}

func TestDailyMaintenance_FreshLedgerKeepsMidMonthCredits(t *testing.T) {
	rig := newTestRig(t)
	task := rig.addTask(t, "First ever", 5, 25)

	// First completion on a store that has never written stats: the ledger
	// must come up stamped with the current month.
	require.NoError(t, rig.engine.StartSession(task.ID, 25))
	rig.clock.Advance(25 * time.Minute)
	rig.engine.HandleAlarm(AlarmSessionEnd, rig.clock.Now())

	stats, err := rig.store.GetStats()
	require.NoError(t, err)
	require.Equal(t, 2, stats.CreditsThisMonth)
	assert.Equal(t, models.MonthOf(rig.clock.Now()), stats.LastCreditResetMonth)

	// Next day, same month: maintenance must not zero the ledger.
	rig.clock.Advance(24 * time.Hour)
	require.NoError(t, rig.engine.DailyMaintenance())

	stats, err = rig.store.GetStats()
	require.NoError(t, err)
	assert.Equal(t, 2, stats.CreditsThisMonth, "same-month maintenance keeps credits")
	assert.Equal(t, 1, stats.StreakDays)
}

func TestDailyMaintenance_StampsUnversionedLedgerWithoutWiping(t *testing.T) {
	rig := newTestRig(t)
	require.NoError(t, rig.store.SetStats(models.Stats{
		CreditsThisMonth: 7,
		StreakDays:       2,
	}))

	require.NoError(t, rig.engine.DailyMaintenance())

	stats, err := rig.store.GetStats()
	require.NoError(t, err)
	assert.Equal(t, 7, stats.CreditsThisMonth, "a ledger missing its epoch is stamped, not reset")
	assert.Equal(t, 2, stats.StreakDays)
	assert.Equal(t, models.MonthOf(rig.clock.Now()), stats.LastCreditResetMonth)
}

func TestHandleAlarm_DailyResetDispatch(t *testing.T) {
	rig := newTestRig(t)
	task := rig.addTask(t, "Dispatch check", 3, 25)
	require.NoError(t, rig.store.SetReminder(task.ID, models.ReminderState{Level: 2, SentToday: 4}))

	rig.engine.HandleAlarm(AlarmDailyReset, rig.clock.Now())

	r, _, err := rig.store.GetReminder(task.ID)
	require.NoError(t, err)
	assert.Zero(t, r.SentToday)
	assert.Equal(t, 2, r.Level)
}
