package engine

import (
	"sync"
	"testing"
	"time"

	"github.com/lawrnfy/TaskForge/models"
	"github.com/lawrnfy/TaskForge/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStartSession_SecondStartIsIgnored(t *testing.T) {
	rig := newTestRig(t)

	require.NoError(t, rig.engine.StartSession("", 25))
	sess, err := rig.store.GetSession()
	require.NoError(t, err)

	err = rig.engine.StartSession("", 50)
	assert.ErrorIs(t, err, types.ErrSessionActive)

	after, err := rig.store.GetSession()
	require.NoError(t, err)
	assert.Equal(t, sess, after, "state must be unchanged by the rejected start")
	assert.Equal(t, 1, rig.alarms.timesArmed(AlarmSessionEnd), "no second expiry alarm")
}

func TestStartSession_ConcurrentStartsHaveOneWinner(t *testing.T) {
	rig := newTestRig(t)

	const attempts = 8
	var wg sync.WaitGroup
	results := make(chan error, attempts)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results <- rig.engine.StartSession("", 25)
		}()
	}
	wg.Wait()
	close(results)

	wins, rejects := 0, 0
	for err := range results {
		if err == nil {
			wins++
		} else if types.IsIgnored(err) {
			rejects++
		} else {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	assert.Equal(t, 1, wins)
	assert.Equal(t, attempts-1, rejects)
	assert.Equal(t, 1, rig.alarms.timesArmed(AlarmSessionEnd))
}

func TestStartSession_DurationFallsBackToSettings(t *testing.T) {
	rig := newTestRig(t)

	require.NoError(t, rig.engine.StartSession("", 0))
	sess, err := rig.store.GetSession()
	require.NoError(t, err)

	// Default workMin is 25.
	assert.Equal(t, 25*time.Minute, sess.EndAt.Sub(sess.StartAt))
}

func TestPauseResume_PreservesRemaining(t *testing.T) {
	rig := newTestRig(t)
	require.NoError(t, rig.engine.StartSession("", 25))

	rig.clock.Advance(10 * time.Minute)
	require.NoError(t, rig.engine.PauseSession())

	paused, err := rig.store.GetSession()
	require.NoError(t, err)
	require.NotNil(t, paused.RemainingMs)
	assert.Equal(t, (15 * time.Minute).Milliseconds(), *paused.RemainingMs)
	assert.True(t, paused.HadPause)

	// The expiry alarm is cancelled while paused.
	_, armed := rig.alarms.armedAt(AlarmSessionEnd)
	assert.False(t, armed)

	// A long pause must not eat into focus time.
	rig.clock.Advance(3 * time.Hour)
	require.NoError(t, rig.engine.ResumeSession())

	resumed, err := rig.store.GetSession()
	require.NoError(t, err)
	assert.False(t, resumed.Paused)
	assert.Nil(t, resumed.RemainingMs)
	assert.Equal(t, 15*time.Minute, resumed.EndAt.Sub(rig.clock.Now()))
	assert.True(t, resumed.HadPause, "hadPause is sticky across resume")

	at, armed := rig.alarms.armedAt(AlarmSessionEnd)
	require.True(t, armed)
	assert.Equal(t, resumed.EndAt, at)
}

func TestPauseResume_NoOpOutsideTheirStates(t *testing.T) {
	rig := newTestRig(t)

	assert.ErrorIs(t, rig.engine.PauseSession(), types.ErrNoActiveSession)
	assert.ErrorIs(t, rig.engine.ResumeSession(), types.ErrNoActiveSession)
	assert.ErrorIs(t, rig.engine.StopSession(), types.ErrNoActiveSession)

	require.NoError(t, rig.engine.StartSession("", 25))
	assert.ErrorIs(t, rig.engine.ResumeSession(), types.ErrNotPaused)

	require.NoError(t, rig.engine.PauseSession())
	assert.ErrorIs(t, rig.engine.PauseSession(), types.ErrAlreadyPaused)
}

func TestStopSession_ResetsWithoutCredit(t *testing.T) {
	rig := newTestRig(t)
	require.NoError(t, rig.engine.StartSession("", 25))
	require.NoError(t, rig.engine.StopSession())

	sess, err := rig.store.GetSession()
	require.NoError(t, err)
	assert.False(t, sess.Active)
	assert.Nil(t, sess.TaskID)

	stats, err := rig.store.GetStats()
	require.NoError(t, err)
	assert.Zero(t, stats.CreditsThisMonth, "stop awards no credit")

	assert.Contains(t, rig.alarms.cancels, AlarmSessionEnd)
}

func TestExpire_AwardsCreditAndResets(t *testing.T) {
	rig := newTestRig(t)
	task := rig.addTask(t, "Deep work", 5, 50)
	rig.sink.Reset()

	require.NoError(t, rig.engine.StartSession(task.ID, 25))
	rig.clock.Advance(25 * time.Minute)
	rig.engine.HandleAlarm(AlarmSessionEnd, rig.clock.Now())

	stats, err := rig.store.GetStats()
	require.NoError(t, err)
	assert.Equal(t, 2, stats.CreditsThisMonth, "importance 5 earns 2 credits")
	assert.Equal(t, 1, stats.StreakDays)

	sess, err := rig.store.GetSession()
	require.NoError(t, err)
	assert.False(t, sess.Active)

	sent := rig.sink.Sent()
	require.Len(t, sent, 2, "started + completed notifications")
	assert.Contains(t, sent[1].Message, "+2 credits")
	assert.Contains(t, sent[1].Message, "Streak 1 days")
}

func TestExpire_DeletedTaskFallsBackToDefaultImportance(t *testing.T) {
	rig := newTestRig(t)
	task := rig.addTask(t, "Doomed", 5, 25)

	require.NoError(t, rig.engine.StartSession(task.ID, 25))
	require.NoError(t, rig.engine.RemoveTask(task.ID))

	rig.clock.Advance(25 * time.Minute)
	rig.engine.HandleAlarm(AlarmSessionEnd, rig.clock.Now())

	stats, err := rig.store.GetStats()
	require.NoError(t, err)
	// Importance falls back to 3: floor(1 * 1.5) = 1.
	assert.Equal(t, 1, stats.CreditsThisMonth)
}

func TestExpire_WhenIdleIsNoOp(t *testing.T) {
	rig := newTestRig(t)
	rig.engine.HandleAlarm(AlarmSessionEnd, rig.clock.Now())

	stats, err := rig.store.GetStats()
	require.NoError(t, err)
	assert.Zero(t, stats.CreditsThisMonth)
	assert.Empty(t, rig.sink.Sent())
}

func TestCheckNavigation_GateFollowsSessionLifecycle(t *testing.T) {
	rig := newTestRig(t)
	surface := &recordingSurface{}
	rig.engine.Gate().Register(surface)

	// Idle: nothing blocks.
	blocked, err := rig.engine.CheckNavigation("www.youtube.com")
	require.NoError(t, err)
	assert.False(t, blocked)

	require.NoError(t, rig.engine.StartSession("", 25))

	blocked, err = rig.engine.CheckNavigation("www.youtube.com")
	require.NoError(t, err)
	assert.True(t, blocked)
	assert.Equal(t, []string{"www.youtube.com"}, surface.engaged)

	blocked, err = rig.engine.CheckNavigation("example.com")
	require.NoError(t, err)
	assert.False(t, blocked)

	require.NoError(t, rig.engine.StopSession())
	assert.Equal(t, 1, surface.released, "stop releases every surface")

	blocked, err = rig.engine.CheckNavigation("youtube.com")
	require.NoError(t, err)
	assert.False(t, blocked)
}

func TestCheckNavigation_DisabledByFlag(t *testing.T) {
	rig := newTestRig(t)
	off := false
	require.NoError(t, rig.engine.PatchSettings(models.SettingsPatch{SiteBlockEnabled: &off}))
	require.NoError(t, rig.engine.StartSession("", 25))

	blocked, err := rig.engine.CheckNavigation("youtube.com")
	require.NoError(t, err)
	assert.False(t, blocked)
}

type recordingSurface struct {
	showing  string
	engaged  []string
	released int
}

func (r *recordingSurface) Engage(host string) { r.engaged = append(r.engaged, host) }
func (r *recordingSurface) Release()           { r.released++ }
func (r *recordingSurface) Current() string    { return r.showing }

func TestStartSession_SweepsSurfacesAlreadyOnBlockedHosts(t *testing.T) {
	rig := newTestRig(t)
	onBlocked := &recordingSurface{showing: "www.reddit.com"}
	onAllowed := &recordingSurface{showing: "example.com"}
	rig.engine.Gate().Register(onBlocked)
	rig.engine.Gate().Register(onAllowed)

	require.NoError(t, rig.engine.StartSession("", 25))

	assert.Equal(t, []string{"www.reddit.com"}, onBlocked.engaged,
		"a surface already on a blocked host is gated at start")
	assert.Empty(t, onAllowed.engaged)

	require.NoError(t, rig.engine.StopSession())
	assert.Equal(t, 1, onBlocked.released)
}

func TestStartSession_SweepSkippedWhenBlockingDisabled(t *testing.T) {
	rig := newTestRig(t)
	off := false
	require.NoError(t, rig.engine.PatchSettings(models.SettingsPatch{SiteBlockEnabled: &off}))

	surface := &recordingSurface{showing: "youtube.com"}
	rig.engine.Gate().Register(surface)

	require.NoError(t, rig.engine.StartSession("", 25))
	assert.Empty(t, surface.engaged)
}
