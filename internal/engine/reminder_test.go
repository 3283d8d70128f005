package engine

import (
	"fmt"
	"testing"
	"time"

	"github.com/lawrnfy/TaskForge/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScheduleNextReminder_LadderDelays(t *testing.T) {
	rig := newTestRig(t)
	task := rig.addTask(t, "Nag me", 3, 25) // AddTask schedules level 0

	key := AlarmReminderPrefix + task.ID
	at, armed := rig.alarms.armedAt(key)
	require.True(t, armed)
	assert.Equal(t, rig.clock.Now(), at, "level 0 pings immediately")

	// Fire through the ladder; each fire bumps the level, each schedule
	// uses the bumped level's delay.
	delays := []time.Duration{5 * time.Minute, 15 * time.Minute, 45 * time.Minute, 45 * time.Minute}
	for _, want := range delays {
		require.NoError(t, rig.engine.OnReminderFire(task.ID))
		require.NoError(t, rig.engine.ScheduleNextReminder(task))
		at, armed = rig.alarms.armedAt(key)
		require.True(t, armed)
		assert.Equal(t, rig.clock.Now().Add(want), at)
	}

	r, ok, err := rig.store.GetReminder(task.ID)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, len(escalationDelays)-1, r.Level, "level is bounded by the ladder")
}

func TestOnReminderFire_EscalationAndCap(t *testing.T) {
	rig := newTestRig(t)
	task := rig.addTask(t, "Urgent thing", 4, 30)
	rig.sink.Reset()

	cap := models.DefaultDailyEscalationCap
	for i := 0; i < cap; i++ {
		require.NoError(t, rig.engine.OnReminderFire(task.ID))
	}
	sent := rig.sink.Sent()
	require.Len(t, sent, cap, "exactly cap notifications in one day")

	// The first notification is dismissible; escalations demand attention.
	assert.False(t, sent[0].RequireInteraction)
	for i := 1; i < cap; i++ {
		assert.True(t, sent[i].RequireInteraction, "notification %d", i)
	}
	assert.Contains(t, sent[0].Title, "Urgent thing")
	assert.Contains(t, sent[0].Message, "Est. 30m")
	require.Len(t, sent[0].Buttons, 2)

	before, _, err := rig.store.GetReminder(task.ID)
	require.NoError(t, err)

	// The (cap+1)th fire sends nothing and changes nothing.
	require.NoError(t, rig.engine.OnReminderFire(task.ID))
	assert.Len(t, rig.sink.Sent(), cap)
	after, _, err := rig.store.GetReminder(task.ID)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestScheduleNextReminder_SuppressedAtCap(t *testing.T) {
	rig := newTestRig(t)
	task := rig.addTask(t, "Capped", 3, 25)

	require.NoError(t, rig.store.SetReminder(task.ID, models.ReminderState{
		Level:     2,
		SentToday: models.DefaultDailyEscalationCap,
	}))
	rig.alarms.Cancel(AlarmReminderPrefix + task.ID)

	require.NoError(t, rig.engine.ScheduleNextReminder(task))
	_, armed := rig.alarms.armedAt(AlarmReminderPrefix + task.ID)
	assert.False(t, armed, "no alarm while at the daily cap")
}

func TestOnReminderFire_MissingTaskOrStateIsBenign(t *testing.T) {
	rig := newTestRig(t)

	require.NoError(t, rig.engine.OnReminderFire("no-such-task"))
	assert.Empty(t, rig.sink.Sent())

	// Task exists, but its reminder state was cleared.
	task := rig.addTask(t, "Stateless", 3, 25)
	require.NoError(t, rig.store.DeleteReminder(task.ID))
	rig.sink.Reset()
	require.NoError(t, rig.engine.OnReminderFire(task.ID))
	assert.Empty(t, rig.sink.Sent())
}

func TestSnoozeReminder_ReArmsWithoutStateChange(t *testing.T) {
	rig := newTestRig(t)
	task := rig.addTask(t, "Later", 2, 20)
	require.NoError(t, rig.engine.OnReminderFire(task.ID))

	before, _, err := rig.store.GetReminder(task.ID)
	require.NoError(t, err)

	require.NoError(t, rig.engine.SnoozeReminder(task.ID))
	at, armed := rig.alarms.armedAt(AlarmReminderPrefix + task.ID)
	require.True(t, armed)
	assert.Equal(t, rig.clock.Now().Add(SnoozeDelay), at)

	after, _, err := rig.store.GetReminder(task.ID)
	require.NoError(t, err)
	assert.Equal(t, before, after, "snooze must not touch level or sentToday")

	// Snoozing a deleted task is a no-op.
	require.NoError(t, rig.engine.RemoveTask(task.ID))
	require.NoError(t, rig.engine.SnoozeReminder(task.ID))
}

func TestRemoveTask_CancelsAlarmAndState(t *testing.T) {
	rig := newTestRig(t)
	task := rig.addTask(t, "Short lived", 3, 25)
	key := AlarmReminderPrefix + task.ID

	require.NoError(t, rig.engine.RemoveTask(task.ID))
	assert.Contains(t, rig.alarms.cancels, key)
	_, ok, err := rig.store.GetReminder(task.ID)
	require.NoError(t, err)
	assert.False(t, ok)

	// Deleting again is benign, as is a late alarm for the dead task.
	require.NoError(t, rig.engine.RemoveTask(task.ID))
	rig.sink.Reset()
	rig.engine.HandleAlarm(key, rig.clock.Now())
	assert.Empty(t, rig.sink.Sent())
}

func TestHandleNotificationAction_Buttons(t *testing.T) {
	rig := newTestRig(t)
	task := rig.addTask(t, "Push me", 3, 25)

	// Button 0 starts a session bound to the task.
	require.NoError(t, rig.engine.HandleNotificationAction(task.ID, 0))
	sess, err := rig.store.GetSession()
	require.NoError(t, err)
	require.True(t, sess.Active)
	require.NotNil(t, sess.TaskID)
	assert.Equal(t, task.ID, *sess.TaskID)

	require.NoError(t, rig.engine.StopSession())

	// Button 1 snoozes.
	require.NoError(t, rig.engine.HandleNotificationAction(task.ID, 1))
	at, armed := rig.alarms.armedAt(AlarmReminderPrefix + task.ID)
	require.True(t, armed)
	assert.Equal(t, rig.clock.Now().Add(SnoozeDelay), at)
}

func TestReminderCapFromSettings(t *testing.T) {
	rig := newTestRig(t)
	capOverride := 2
	require.NoError(t, rig.engine.PatchSettings(models.SettingsPatch{DailyEscalationCap: &capOverride}))

	task := rig.addTask(t, "Limited", 3, 25)
	rig.sink.Reset()
	for i := 0; i < 4; i++ {
		require.NoError(t, rig.engine.OnReminderFire(task.ID))
	}
	assert.Len(t, rig.sink.Sent(), 2)
}

func TestReminderNotificationIDsAreUnique(t *testing.T) {
	rig := newTestRig(t)
	task := rig.addTask(t, "Twice", 3, 25)
	rig.sink.Reset()

	require.NoError(t, rig.engine.OnReminderFire(task.ID))
	rig.clock.Advance(time.Minute)
	require.NoError(t, rig.engine.OnReminderFire(task.ID))

	sent := rig.sink.Sent()
	require.Len(t, sent, 2)
	assert.NotEqual(t, sent[0].ID, sent[1].ID)
	assert.Equal(t, fmt.Sprintf("tf_%s_%d", task.ID, rig.clock.Now().UnixMilli()), sent[1].ID)
}
