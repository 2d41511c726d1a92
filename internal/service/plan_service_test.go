package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"pulsemind/fitness-coach/internal/domain"
)

func TestGetActivePlan_NoneActive(t *testing.T) {
	svc := NewPlanService(newFakePlanRepo())

	_, err := svc.GetActivePlan(context.Background(), "user-1")

	assert.ErrorIs(t, err, ErrNoActivePlan)
	assert.EqualError(t, err, "no active plan")
}

func TestCreatePlan_BecomesTheActivePlan(t *testing.T) {
	repo := newFakePlanRepo()
	svc := NewPlanService(repo)

	workout := domain.WorkoutPlan{
		Schedule: []string{"Push", "Pull"},
		Exercises: []domain.ExerciseDay{
			{Day: "Push", Routines: []domain.Routine{{Name: "Bench Press"}}},
		},
	}
	diet := domain.DietPlan{DailyCalories: 2600, Meals: []domain.Meal{{Name: "Breakfast", Foods: []string{"oats"}}}}

	plan, err := svc.CreatePlan(context.Background(), "user-1", "Strength Block", workout, diet)

	require.NoError(t, err)
	assert.False(t, plan.ID.IsZero())
	assert.True(t, plan.IsActive)

	active, err := svc.GetActivePlan(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Equal(t, plan.ID, active.ID)
	assert.Equal(t, 2600, active.DietPlan.DailyCalories)
}

func TestCreatePlan_DeactivatesPreviousPlan(t *testing.T) {
	repo := newFakePlanRepo()
	svc := NewPlanService(repo)

	first, err := svc.CreatePlan(context.Background(), "user-1", "Old Plan", domain.WorkoutPlan{}, domain.DietPlan{})
	require.NoError(t, err)
	second, err := svc.CreatePlan(context.Background(), "user-1", "New Plan", domain.WorkoutPlan{}, domain.DietPlan{})
	require.NoError(t, err)

	active, err := svc.GetActivePlan(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Equal(t, second.ID, active.ID)
	assert.False(t, repo.plans[first.ID].IsActive)
}

func TestCreatePlan_RejectsEmptyName(t *testing.T) {
	svc := NewPlanService(newFakePlanRepo())

	_, err := svc.CreatePlan(context.Background(), "user-1", "", domain.WorkoutPlan{}, domain.DietPlan{})

	assert.Error(t, err)
}

func TestActivatePlan_SwitchesActivePlan(t *testing.T) {
	repo := newFakePlanRepo()
	svc := NewPlanService(repo)

	first, err := svc.CreatePlan(context.Background(), "user-1", "First", domain.WorkoutPlan{}, domain.DietPlan{})
	require.NoError(t, err)
	second, err := svc.CreatePlan(context.Background(), "user-1", "Second", domain.WorkoutPlan{}, domain.DietPlan{})
	require.NoError(t, err)

	require.NoError(t, svc.ActivatePlan(context.Background(), first.ID, "user-1"))

	active, err := svc.GetActivePlan(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Equal(t, first.ID, active.ID)
	assert.False(t, repo.plans[second.ID].IsActive)
}

func TestActivatePlan_ForeignPlanDenied(t *testing.T) {
	repo := newFakePlanRepo()
	svc := NewPlanService(repo)

	plan, err := svc.CreatePlan(context.Background(), "user-2", "Theirs", domain.WorkoutPlan{}, domain.DietPlan{})
	require.NoError(t, err)

	err = svc.ActivatePlan(context.Background(), plan.ID, "user-1")

	assert.ErrorIs(t, err, ErrPlanAccessDenied)
	assert.EqualError(t, err, "plan not found or unauthorized")
}

func TestDeletePlan_ForeignPlanDenied(t *testing.T) {
	repo := newFakePlanRepo()
	svc := NewPlanService(repo)

	plan, err := svc.CreatePlan(context.Background(), "user-2", "Theirs", domain.WorkoutPlan{}, domain.DietPlan{})
	require.NoError(t, err)

	err = svc.DeletePlan(context.Background(), plan.ID, "user-1")

	assert.ErrorIs(t, err, ErrPlanAccessDenied)
	_, stillThere := repo.plans[plan.ID]
	assert.True(t, stillThere)
}

func TestDeletePlan_UnknownPlanDenied(t *testing.T) {
	svc := NewPlanService(newFakePlanRepo())

	err := svc.DeletePlan(context.Background(), primitive.NewObjectID(), "user-1")

	assert.ErrorIs(t, err, ErrPlanAccessDenied)
}

func TestDeletePlan_OwnedPlanRemoved(t *testing.T) {
	repo := newFakePlanRepo()
	svc := NewPlanService(repo)

	plan, err := svc.CreatePlan(context.Background(), "user-1", "Mine", domain.WorkoutPlan{}, domain.DietPlan{})
	require.NoError(t, err)

	require.NoError(t, svc.DeletePlan(context.Background(), plan.ID, "user-1"))

	plans, err := svc.GetUserPlans(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Empty(t, plans)
}
