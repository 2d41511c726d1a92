package assistant

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"pulsemind/fitness-coach/internal/config"
	"pulsemind/fitness-coach/internal/domain"
)

type fakePlanCreator struct {
	created []string
	err     error
}

func (f *fakePlanCreator) CreatePlan(ctx context.Context, userID, name string, workout domain.WorkoutPlan, diet domain.DietPlan) (*domain.Plan, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.created = append(f.created, name)
	return &domain.Plan{
		ID:          primitive.NewObjectID(),
		UserID:      userID,
		Name:        name,
		WorkoutPlan: workout,
		DietPlan:    diet,
		IsActive:    true,
	}, nil
}

func newTestBridge(plans PlanCreator) *Bridge {
	return NewBridge(config.AssistantConfig{
		URL:              "wss://assistant.example.com/call",
		AssistantID:      "asst-123",
		SuppressPatterns: []string{"Meeting has ended"},
	}, plans)
}

func TestClassifyError(t *testing.T) {
	tests := []struct {
		name    string
		message string
		want    string
	}{
		{"empty message", "", "An unexpected error occurred. Please try again."},
		{"quota exhausted", "provider quota exceeded", "AI service is temporarily unavailable due to high demand. Please try again in a few moments."},
		{"rate limited", "upstream returned 429", "AI service is temporarily unavailable due to high demand. Please try again in a few moments."},
		{"network failure", "network timeout", "Network connection issue. Please check your internet and try again."},
		{"fetch failure", "fetch failed", "Network connection issue. Please check your internet and try again."},
		{"anything else", "pipeline crashed", "An error occurred. Please try again or contact support if the issue persists."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifyError(tt.message))
		})
	}
}

func TestSuppressor_MatchesConfiguredSubstrings(t *testing.T) {
	s := NewSuppressor([]string{"Meeting has ended", ""})

	assert.True(t, s.Match("Error: Meeting has ended unexpectedly"))
	assert.False(t, s.Match("something else broke"))
	assert.False(t, s.Match(""))
}

func TestAdaptEvent_DropsInterimTranscripts(t *testing.T) {
	b := newTestBridge(&fakePlanCreator{})

	payload, _ := json.Marshal(Event{Type: EventTranscript, Role: "user", Transcript: "I want to", TranscriptType: "partial"})
	_, forward := b.adaptEvent(context.Background(), "user-1", payload)
	assert.False(t, forward)

	payload, _ = json.Marshal(Event{Type: EventTranscript, Role: "user", Transcript: "I want to build muscle", TranscriptType: TranscriptFinal})
	adapted, forward := b.adaptEvent(context.Background(), "user-1", payload)
	assert.True(t, forward)
	assert.Equal(t, payload, adapted)
}

func TestAdaptEvent_SuppressesKnownErrors(t *testing.T) {
	b := newTestBridge(&fakePlanCreator{})

	payload, _ := json.Marshal(Event{Type: EventError, Message: "Meeting has ended"})
	_, forward := b.adaptEvent(context.Background(), "user-1", payload)

	assert.False(t, forward)
}

func TestAdaptEvent_RewritesErrorMessages(t *testing.T) {
	b := newTestBridge(&fakePlanCreator{})

	payload, _ := json.Marshal(Event{Type: EventError, Message: "provider quota exceeded"})
	adapted, forward := b.adaptEvent(context.Background(), "user-1", payload)

	require.True(t, forward)
	var event Event
	require.NoError(t, json.Unmarshal(adapted, &event))
	assert.Equal(t, EventError, event.Type)
	assert.Equal(t, "AI service is temporarily unavailable due to high demand. Please try again in a few moments.", event.Message)
}

func TestAdaptEvent_PersistsGeneratedPlan(t *testing.T) {
	plans := &fakePlanCreator{}
	b := newTestBridge(plans)

	payload, _ := json.Marshal(Event{Type: EventPlan, Plan: &PlanPayload{
		Name: "Beginner Full Body",
		WorkoutPlan: domain.WorkoutPlan{
			Schedule: []string{"Monday"},
			Exercises: []domain.ExerciseDay{
				{Day: "Monday", Routines: []domain.Routine{{Name: "Squat"}}},
			},
		},
		DietPlan: domain.DietPlan{DailyCalories: 2200},
	}})
	adapted, forward := b.adaptEvent(context.Background(), "user-1", payload)

	require.True(t, forward)
	assert.Equal(t, payload, adapted)
	assert.Equal(t, []string{"Beginner Full Body"}, plans.created)
}

func TestAdaptEvent_PlanWithoutPayloadDropped(t *testing.T) {
	plans := &fakePlanCreator{}
	b := newTestBridge(plans)

	payload, _ := json.Marshal(Event{Type: EventPlan})
	_, forward := b.adaptEvent(context.Background(), "user-1", payload)

	assert.False(t, forward)
	assert.Empty(t, plans.created)
}

func TestAdaptEvent_PlanSaveFailureBecomesErrorEvent(t *testing.T) {
	b := newTestBridge(&fakePlanCreator{err: errors.New("db down")})

	payload, _ := json.Marshal(Event{Type: EventPlan, Plan: &PlanPayload{Name: "Doomed Plan"}})
	adapted, forward := b.adaptEvent(context.Background(), "user-1", payload)

	require.True(t, forward)
	var event Event
	require.NoError(t, json.Unmarshal(adapted, &event))
	assert.Equal(t, EventError, event.Type)
	assert.Equal(t, "An error occurred. Please try again or contact support if the issue persists.", event.Message)
}

func TestAdaptEvent_NonJSONFramesPassThrough(t *testing.T) {
	b := newTestBridge(&fakePlanCreator{})

	payload := []byte("not json at all")
	adapted, forward := b.adaptEvent(context.Background(), "user-1", payload)

	assert.True(t, forward)
	assert.Equal(t, payload, adapted)
}

func TestDialURL_CarriesIdentity(t *testing.T) {
	b := newTestBridge(&fakePlanCreator{})

	raw, err := b.dialURL("subj-42", "Ada Lovelace")

	require.NoError(t, err)
	assert.Contains(t, raw, "assistant_id=asst-123")
	assert.Contains(t, raw, "user_id=subj-42")
	assert.Contains(t, raw, "full_name=Ada+Lovelace")
}
