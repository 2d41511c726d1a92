package tracking

// TimerState describes where a rest timer is in its lifecycle.
type TimerState string

const (
	TimerIdle    TimerState = "idle"
	TimerRunning TimerState = "running"
	TimerExpired TimerState = "expired"
)

// RestTimer is a countdown between sets. It never ticks below zero;
// reaching zero moves it to the expired state until reset or restarted.
type RestTimer struct {
	duration  int
	remaining int
	state     TimerState
}

// NewRestTimer creates an idle timer with the given duration in seconds.
func NewRestTimer(durationSeconds int) *RestTimer {
	if durationSeconds <= 0 {
		durationSeconds = 1
	}
	return &RestTimer{
		duration:  durationSeconds,
		remaining: durationSeconds,
		state:     TimerIdle,
	}
}

// Start reloads the timer to its full duration and begins counting down.
func (t *RestTimer) Start() {
	t.remaining = t.duration
	t.state = TimerRunning
}

// Stop halts the countdown, keeping the current remaining time.
func (t *RestTimer) Stop() {
	if t.state == TimerRunning {
		t.state = TimerIdle
	}
}

// Reset halts the countdown and restores the full duration.
func (t *RestTimer) Reset() {
	t.remaining = t.duration
	t.state = TimerIdle
}

// SetDuration changes the configured duration. It takes effect on the
// next Start or Reset; a running countdown is not disturbed.
func (t *RestTimer) SetDuration(durationSeconds int) {
	if durationSeconds <= 0 {
		return
	}
	t.duration = durationSeconds
	if t.state != TimerRunning {
		t.remaining = durationSeconds
	}
}

// Tick advances the timer by one second. It reports true on the tick
// that exhausts the countdown.
func (t *RestTimer) Tick() bool {
	if t.state != TimerRunning {
		return false
	}
	t.remaining--
	if t.remaining <= 0 {
		t.remaining = 0
		t.state = TimerExpired
		return true
	}
	return false
}

// Remaining returns the seconds left on the countdown.
func (t *RestTimer) Remaining() int { return t.remaining }

// Duration returns the configured countdown length in seconds.
func (t *RestTimer) Duration() int { return t.duration }

// State returns the current timer state.
func (t *RestTimer) State() TimerState { return t.state }

// SessionClock accumulates elapsed workout time in seconds. It starts
// paused and toggles between running and paused.
type SessionClock struct {
	elapsed int
	running bool
}

// NewSessionClock creates a paused clock, optionally preloaded with
// already-elapsed seconds from a resumed session.
func NewSessionClock(elapsedSeconds int) *SessionClock {
	if elapsedSeconds < 0 {
		elapsedSeconds = 0
	}
	return &SessionClock{elapsed: elapsedSeconds}
}

// Toggle flips the clock between running and paused and returns the
// new running state.
func (c *SessionClock) Toggle() bool {
	c.running = !c.running
	return c.running
}

// Tick advances the clock by one second while running.
func (c *SessionClock) Tick() {
	if c.running {
		c.elapsed++
	}
}

// Running reports whether the clock is counting.
func (c *SessionClock) Running() bool { return c.running }

// Elapsed returns the accumulated seconds.
func (c *SessionClock) Elapsed() int { return c.elapsed }

// Minutes returns the elapsed time in whole minutes.
func (c *SessionClock) Minutes() int { return c.elapsed / 60 }
