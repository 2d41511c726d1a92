package tracking

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRestTimer_StartsIdleAtFullDuration(t *testing.T) {
	timer := NewRestTimer(90)

	assert.Equal(t, TimerIdle, timer.State())
	assert.Equal(t, 90, timer.Remaining())
}

func TestRestTimer_CountdownExpiresWithoutWrapping(t *testing.T) {
	timer := NewRestTimer(90)
	timer.Start()

	expiredAt := -1
	for i := 1; i <= 95; i++ {
		if timer.Tick() {
			expiredAt = i
		}
	}

	assert.Equal(t, 90, expiredAt, "the 90th tick exhausts the countdown")
	assert.Equal(t, TimerExpired, timer.State())
	assert.Equal(t, 0, timer.Remaining(), "remaining never goes negative")
}

func TestRestTimer_TickIgnoredWhenNotRunning(t *testing.T) {
	timer := NewRestTimer(30)

	assert.False(t, timer.Tick())
	assert.Equal(t, 30, timer.Remaining())
}

func TestRestTimer_StopKeepsRemaining(t *testing.T) {
	timer := NewRestTimer(60)
	timer.Start()
	for i := 0; i < 10; i++ {
		timer.Tick()
	}

	timer.Stop()

	assert.Equal(t, TimerIdle, timer.State())
	assert.Equal(t, 50, timer.Remaining())

	timer.Tick()
	assert.Equal(t, 50, timer.Remaining(), "a stopped timer does not tick")
}

func TestRestTimer_ResetRestoresFullDuration(t *testing.T) {
	timer := NewRestTimer(60)
	timer.Start()
	for i := 0; i < 25; i++ {
		timer.Tick()
	}

	timer.Reset()

	assert.Equal(t, TimerIdle, timer.State())
	assert.Equal(t, 60, timer.Remaining())
}

func TestRestTimer_StartReloadsAfterExpiry(t *testing.T) {
	timer := NewRestTimer(2)
	timer.Start()
	timer.Tick()
	timer.Tick()
	require.Equal(t, TimerExpired, timer.State())

	timer.Start()

	assert.Equal(t, TimerRunning, timer.State())
	assert.Equal(t, 2, timer.Remaining())
}

func TestRestTimer_SetDurationDoesNotDisturbRunningCountdown(t *testing.T) {
	timer := NewRestTimer(60)
	timer.Start()
	for i := 0; i < 10; i++ {
		timer.Tick()
	}

	timer.SetDuration(120)

	assert.Equal(t, 50, timer.Remaining(), "running countdown keeps its remaining time")

	timer.Reset()
	assert.Equal(t, 120, timer.Remaining(), "new duration applies on reset")
}

func TestSessionClock_TogglesBetweenRunningAndPaused(t *testing.T) {
	clock := NewSessionClock(0)

	assert.False(t, clock.Running())
	assert.True(t, clock.Toggle())

	clock.Tick()
	clock.Tick()
	assert.Equal(t, 2, clock.Elapsed())

	assert.False(t, clock.Toggle())
	clock.Tick()
	assert.Equal(t, 2, clock.Elapsed(), "a paused clock does not accumulate")
}

func TestSessionClock_MinutesIsIntegerDivision(t *testing.T) {
	clock := NewSessionClock(119)

	assert.Equal(t, 1, clock.Minutes())

	clock.Toggle()
	clock.Tick()
	assert.Equal(t, 2, clock.Minutes())
}
