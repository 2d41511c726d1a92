package tracking

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pulsemind/fitness-coach/internal/domain"
)

func TestManager_PutGetRemove(t *testing.T) {
	manager := NewManager()

	assert.Nil(t, manager.Get("user-1"))

	tracker := newTestTracker([]domain.Routine{{Name: "Squat"}})
	manager.Put("user-1", tracker)
	assert.Same(t, tracker, manager.Get("user-1"))

	manager.Remove("user-1")
	assert.Nil(t, manager.Get("user-1"))
}

func TestManager_TickingDuringOperations(t *testing.T) {
	manager := NewManager()
	tracker := newTestTracker([]domain.Routine{{Name: "Squat", Sets: intPtr(3)}})
	manager.Put("user-1", tracker)
	tracker.ToggleClock()

	done := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for {
			select {
			case <-done:
				return
			default:
				manager.tickAll()
			}
		}
	}()

	for i := 0; i < 500; i++ {
		_, err := tracker.ToggleSet(0, i%3)
		require.NoError(t, err)
		require.NoError(t, tracker.UpdateSetReps(0, i%3, i))
		require.NoError(t, tracker.UpdateSetWeight(0, i%3, floatPtr(float64(i))))
		tracker.StartRest()
		tracker.SetNotes("mid-session")
		tracker.Snapshot()
		tracker.Progress()
		tracker.RestRemaining()
		tracker.ElapsedSeconds()
	}
	close(done)
	wg.Wait()

	session := tracker.Snapshot()
	require.NotNil(t, session.Duration)
	assert.Equal(t, "mid-session", session.Notes)
}
