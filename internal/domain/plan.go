package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Routine is one exercise definition within a training day.
type Routine struct {
	Name        string   `bson:"name" json:"name"`
	Sets        *int     `bson:"sets,omitempty" json:"sets,omitempty"`
	Reps        *int     `bson:"reps,omitempty" json:"reps,omitempty"`
	Duration    string   `bson:"duration,omitempty" json:"duration,omitempty"`
	Description string   `bson:"description,omitempty" json:"description,omitempty"`
	Exercises   []string `bson:"exercises,omitempty" json:"exercises,omitempty"`
}

// ExerciseDay is one named training day with its ordered routines.
type ExerciseDay struct {
	Day      string    `bson:"day" json:"day"`
	Routines []Routine `bson:"routines" json:"routines"`
}

// WorkoutPlan is the workout half of a plan: the weekly schedule plus the
// per-day routine lists.
type WorkoutPlan struct {
	Schedule  []string      `bson:"schedule" json:"schedule"`
	Exercises []ExerciseDay `bson:"exercises" json:"exercises"`
}

// Meal is a named meal with its ordered food list.
type Meal struct {
	Name  string   `bson:"name" json:"name"`
	Foods []string `bson:"foods" json:"foods"`
}

// DietPlan is the diet half of a plan.
type DietPlan struct {
	DailyCalories int    `bson:"dailyCalories" json:"dailyCalories"`
	Meals         []Meal `bson:"meals" json:"meals"`
}

// Plan bundles a workout structure and a diet structure for one user.
// At most one plan per user has IsActive set; the plan repository enforces
// this by deactivating siblings whenever a plan is created or activated.
type Plan struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID      string             `bson:"userId" json:"userId"` // external auth subject
	Name        string             `bson:"name" json:"name"`
	WorkoutPlan WorkoutPlan        `bson:"workoutPlan" json:"workoutPlan"`
	DietPlan    DietPlan           `bson:"dietPlan" json:"dietPlan"`
	IsActive    bool               `bson:"isActive" json:"isActive"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// DayByName returns the training day with the given name, or nil.
func (p *Plan) DayByName(day string) *ExerciseDay {
	for i := range p.WorkoutPlan.Exercises {
		if p.WorkoutPlan.Exercises[i].Day == day {
			return &p.WorkoutPlan.Exercises[i]
		}
	}
	return nil
}
