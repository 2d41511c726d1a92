package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func floatPtr(v float64) *float64 { return &v }
func intPtr(v int) *int           { return &v }

func TestPromote_NoImprovementIsNoop(t *testing.T) {
	record := &PersonalRecord{
		MaxWeight:    floatPtr(100),
		MaxReps:      intPtr(10),
		AchievedDate: "2026-01-10",
	}

	promoted := record.Promote(RecordCandidate{
		MaxWeight:    floatPtr(90),
		MaxReps:      intPtr(8),
		AchievedDate: "2026-02-01",
	})

	assert.False(t, promoted)
	assert.Equal(t, 100.0, *record.MaxWeight)
	assert.Equal(t, 10, *record.MaxReps)
	assert.Equal(t, "2026-01-10", record.AchievedDate, "date must not change without promotion")
}

func TestPromote_EqualValuesDoNotPromote(t *testing.T) {
	record := &PersonalRecord{MaxWeight: floatPtr(100), MaxReps: intPtr(10)}

	promoted := record.Promote(RecordCandidate{MaxWeight: floatPtr(100), MaxReps: intPtr(10)})

	assert.False(t, promoted, "strictly greater is required")
}

func TestPromote_WeightOnlyImprovementKeepsReps(t *testing.T) {
	record := &PersonalRecord{
		MaxWeight:    floatPtr(100),
		MaxReps:      intPtr(12),
		AchievedDate: "2026-01-10",
	}

	promoted := record.Promote(RecordCandidate{
		MaxWeight:    floatPtr(110),
		MaxReps:      intPtr(8), // worse than stored
		AchievedDate: "2026-02-01",
	})

	require.True(t, promoted)
	assert.Equal(t, 110.0, *record.MaxWeight)
	assert.Equal(t, 12, *record.MaxReps, "stored reps must never regress")
	assert.Equal(t, "2026-02-01", record.AchievedDate)
}

func TestPromote_FieldsMergeIndependently(t *testing.T) {
	record := &PersonalRecord{}

	promoted := record.Promote(RecordCandidate{MaxWeight: floatPtr(50), AchievedDate: "2026-03-01"})
	require.True(t, promoted)

	promoted = record.Promote(RecordCandidate{MaxReps: intPtr(12), AchievedDate: "2026-03-02"})
	require.True(t, promoted)

	assert.Equal(t, 50.0, *record.MaxWeight)
	assert.Equal(t, 12, *record.MaxReps)
	assert.Equal(t, "2026-03-02", record.AchievedDate)
}

func TestPromote_AbsentStoredFieldAlwaysLoses(t *testing.T) {
	record := &PersonalRecord{MaxWeight: floatPtr(80)}

	promoted := record.Promote(RecordCandidate{MaxReps: intPtr(1), AchievedDate: "2026-04-01"})

	require.True(t, promoted, "any present candidate beats an absent stored field")
	assert.Equal(t, 1, *record.MaxReps)
	assert.Equal(t, 80.0, *record.MaxWeight)
}

func TestPromote_MonotonicAcrossSequence(t *testing.T) {
	record := &PersonalRecord{}
	weights := []float64{50, 40, 60, 55, 70, 10}

	prev := 0.0
	for _, w := range weights {
		record.Promote(RecordCandidate{MaxWeight: floatPtr(w)})
		require.GreaterOrEqual(t, *record.MaxWeight, prev)
		prev = *record.MaxWeight
	}
	assert.Equal(t, 70.0, *record.MaxWeight)
}

func TestNewRecordFromCandidate_CopiesFields(t *testing.T) {
	candidate := RecordCandidate{
		ExerciseName: "Bench Press",
		MaxWeight:    floatPtr(60),
		MaxReps:      intPtr(8),
		AchievedDate: "2026-05-01",
	}

	record := NewRecordFromCandidate("user-1", candidate)

	assert.Equal(t, "user-1", record.UserID)
	assert.Equal(t, "Bench Press", record.ExerciseName)
	assert.Equal(t, 60.0, *record.MaxWeight)
	assert.Equal(t, 8, *record.MaxReps)
	assert.Equal(t, "2026-05-01", record.AchievedDate)

	// The record must hold its own copies.
	*candidate.MaxWeight = 999
	assert.Equal(t, 60.0, *record.MaxWeight)
}
