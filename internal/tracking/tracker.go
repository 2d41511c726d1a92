package tracking

import (
	"errors"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"pulsemind/fitness-coach/internal/domain"
)

var (
	ErrExerciseIndex = errors.New("exercise index out of range")
	ErrSetIndex      = errors.New("set index out of range")
)

// Tracker holds the live state of one user's workout for a single day:
// the exercise checklist, the session clock and the rest timer. The
// manager's tick goroutine and request handlers share a tracker, so
// every method takes the tracker mutex.
type Tracker struct {
	UserID  string
	PlanID  primitive.ObjectID
	Date    string
	DayName string

	mu        sync.Mutex
	notes     string
	exercises []domain.CompletedExercise
	clock     *SessionClock
	rest      *RestTimer
}

// NewTracker builds a tracker for today's routines from the active plan.
// Each routine becomes an exercise with the configured number of sets,
// all initially incomplete.
func NewTracker(userID string, planID primitive.ObjectID, date, dayName string, routines []domain.Routine, defaultSets, defaultReps, restSeconds int) *Tracker {
	exercises := make([]domain.CompletedExercise, 0, len(routines))
	for _, routine := range routines {
		sets := defaultSets
		if routine.Sets != nil && *routine.Sets > 0 {
			sets = *routine.Sets
		}
		reps := defaultReps
		if routine.Reps != nil && *routine.Reps > 0 {
			reps = *routine.Reps
		}
		results := make([]domain.SetResult, sets)
		for i := range results {
			results[i] = domain.SetResult{Reps: reps}
		}
		exercises = append(exercises, domain.CompletedExercise{
			ExerciseName: routine.Name,
			Sets:         results,
		})
	}
	return &Tracker{
		UserID:    userID,
		PlanID:    planID,
		Date:      date,
		DayName:   dayName,
		exercises: exercises,
		clock:     NewSessionClock(0),
		rest:      NewRestTimer(restSeconds),
	}
}

// ResumeTracker rebuilds a tracker from a previously saved session so
// a user picks up where they left off on the same day.
func ResumeTracker(session *domain.WorkoutSession, restSeconds int) *Tracker {
	elapsed := 0
	if session.Duration != nil {
		elapsed = *session.Duration * 60
	}
	return &Tracker{
		UserID:    session.UserID,
		PlanID:    session.PlanID,
		Date:      session.Date,
		DayName:   session.DayName,
		notes:     session.Notes,
		exercises: session.CompletedExercises,
		clock:     NewSessionClock(elapsed),
		rest:      NewRestTimer(restSeconds),
	}
}

// ToggleSet flips the completed flag of one set. Completing a set
// starts the rest countdown; un-completing it leaves the timer alone.
func (t *Tracker) ToggleSet(exerciseIdx, setIdx int) (bool, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	set, err := t.set(exerciseIdx, setIdx)
	if err != nil {
		return false, err
	}
	set.Completed = !set.Completed
	if set.Completed {
		t.rest.Start()
	}
	return set.Completed, nil
}

// UpdateSetReps records the rep count actually performed for one set.
func (t *Tracker) UpdateSetReps(exerciseIdx, setIdx, reps int) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	set, err := t.set(exerciseIdx, setIdx)
	if err != nil {
		return err
	}
	if reps < 0 {
		reps = 0
	}
	set.Reps = reps
	return nil
}

// UpdateSetWeight records the weight used for one set. A nil weight
// clears any previously recorded value.
func (t *Tracker) UpdateSetWeight(exerciseIdx, setIdx int, weight *float64) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	set, err := t.set(exerciseIdx, setIdx)
	if err != nil {
		return err
	}
	set.Weight = weight
	return nil
}

// set must be called with the mutex held.
func (t *Tracker) set(exerciseIdx, setIdx int) (*domain.SetResult, error) {
	if exerciseIdx < 0 || exerciseIdx >= len(t.exercises) {
		return nil, ErrExerciseIndex
	}
	exercise := &t.exercises[exerciseIdx]
	if setIdx < 0 || setIdx >= len(exercise.Sets) {
		return nil, ErrSetIndex
	}
	return &exercise.Sets[setIdx], nil
}

// SetNotes replaces the session notes.
func (t *Tracker) SetNotes(notes string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.notes = notes
}

// Notes returns the current session notes.
func (t *Tracker) Notes() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.notes
}

// ToggleClock flips the session clock and returns the new running state.
func (t *Tracker) ToggleClock() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.clock.Toggle()
}

// ClockRunning reports whether the session clock is counting.
func (t *Tracker) ClockRunning() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.clock.Running()
}

// ElapsedSeconds returns the accumulated session time in seconds.
func (t *Tracker) ElapsedSeconds() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.clock.Elapsed()
}

// StartRest reloads and starts the rest countdown.
func (t *Tracker) StartRest() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.rest.Start()
}

// StopRest halts the countdown keeping the remaining time.
func (t *Tracker) StopRest() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.rest.Stop()
}

// ResetRest halts the countdown and restores the full duration.
func (t *Tracker) ResetRest() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.rest.Reset()
}

// SetRestDuration changes the configured rest countdown length.
func (t *Tracker) SetRestDuration(seconds int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.rest.SetDuration(seconds)
}

// RestRemaining returns the seconds left on the rest countdown.
func (t *Tracker) RestRemaining() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.rest.Remaining()
}

// RestDuration returns the configured rest countdown length.
func (t *Tracker) RestDuration() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.rest.Duration()
}

// RestState returns the rest timer state.
func (t *Tracker) RestState() TimerState {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.rest.State()
}

// Tick advances the clock and the rest timer by one second.
func (t *Tracker) Tick() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.clock.Tick()
	t.rest.Tick()
}

// Exercises returns a copy of the current checklist.
func (t *Tracker) Exercises() []domain.CompletedExercise {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.copyExercises()
}

// CompletedSets counts sets marked complete across all exercises.
func (t *Tracker) CompletedSets() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.completedSets()
}

// TotalSets counts all sets in the session.
func (t *Tracker) TotalSets() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.totalSets()
}

// Progress returns completion as a percentage, 0 when the session is empty.
func (t *Tracker) Progress() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	total := t.totalSets()
	if total == 0 {
		return 0
	}
	return t.completedSets() * 100 / total
}

func (t *Tracker) completedSets() int {
	count := 0
	for _, exercise := range t.exercises {
		for _, set := range exercise.Sets {
			if set.Completed {
				count++
			}
		}
	}
	return count
}

func (t *Tracker) totalSets() int {
	count := 0
	for _, exercise := range t.exercises {
		count += len(exercise.Sets)
	}
	return count
}

func (t *Tracker) copyExercises() []domain.CompletedExercise {
	exercises := make([]domain.CompletedExercise, len(t.exercises))
	for i, exercise := range t.exercises {
		sets := make([]domain.SetResult, len(exercise.Sets))
		copy(sets, exercise.Sets)
		exercises[i] = domain.CompletedExercise{
			ExerciseName: exercise.ExerciseName,
			Sets:         sets,
		}
	}
	return exercises
}

// Snapshot converts the live tracker into a session document ready to
// be persisted.
func (t *Tracker) Snapshot() *domain.WorkoutSession {
	t.mu.Lock()
	defer t.mu.Unlock()
	minutes := t.clock.Minutes()
	return &domain.WorkoutSession{
		UserID:             t.UserID,
		PlanID:             t.PlanID,
		Date:               t.Date,
		DayName:            t.DayName,
		CompletedExercises: t.copyExercises(),
		Duration:           &minutes,
		Notes:              t.notes,
	}
}
