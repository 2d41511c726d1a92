package export

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pulsemind/fitness-coach/internal/domain"
)

func TestFileName_ReplacesWhitespaceRuns(t *testing.T) {
	assert.Equal(t, "My_Plan_Fitness_Plan.pdf", FileName("My Plan"))
	assert.Equal(t, "Summer_Cut_Fitness_Plan.pdf", FileName("Summer \t Cut"))
	assert.Equal(t, "Strength_Fitness_Plan.pdf", FileName("Strength"))
}

func TestRenderPlanPDF_ProducesDocument(t *testing.T) {
	sets := 4
	reps := 8
	plan := &domain.Plan{
		Name: "Hypertrophy Block",
		WorkoutPlan: domain.WorkoutPlan{
			Schedule: []string{"Monday", "Wednesday", "Friday"},
			Exercises: []domain.ExerciseDay{
				{
					Day: "Monday",
					Routines: []domain.Routine{
						{Name: "Squat", Sets: &sets, Reps: &reps, Description: "pause at the bottom"},
						{Name: "Plank", Duration: "60s"},
					},
				},
			},
		},
		DietPlan: domain.DietPlan{
			DailyCalories: 2800,
			Meals: []domain.Meal{
				{Name: "Breakfast", Foods: []string{"oats", "eggs"}},
				{Name: "Dinner", Foods: []string{"rice", "chicken"}},
			},
		},
	}

	data, err := RenderPlanPDF(plan, "Ada Lovelace")

	require.NoError(t, err)
	require.NotEmpty(t, data)
	assert.Equal(t, "%PDF", string(data[:4]))
}

func TestRenderPlanPDF_HandlesSparsePlan(t *testing.T) {
	data, err := RenderPlanPDF(&domain.Plan{Name: "Empty"}, "")

	require.NoError(t, err)
	assert.Equal(t, "%PDF", string(data[:4]))
}

func TestRenderPlanPDF_ManyDaysPaginate(t *testing.T) {
	plan := &domain.Plan{Name: "Long Program"}
	for day := 0; day < 12; day++ {
		routines := make([]domain.Routine, 0, 6)
		for i := 0; i < 6; i++ {
			routines = append(routines, domain.Routine{Name: "Movement", Description: "tempo work"})
		}
		plan.WorkoutPlan.Exercises = append(plan.WorkoutPlan.Exercises, domain.ExerciseDay{
			Day:      "Day",
			Routines: routines,
		})
	}

	data, err := RenderPlanPDF(plan, "Ada Lovelace")

	require.NoError(t, err)
	assert.Equal(t, "%PDF", string(data[:4]))
}
