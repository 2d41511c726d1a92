package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DateLayout is the ISO calendar-date format used for session and record
// dates. Lexical order on these strings matches chronological order.
const DateLayout = "2006-01-02"

// Today returns the current UTC calendar date as an ISO string.
func Today() string {
	return time.Now().UTC().Format(DateLayout)
}

// SetResult is one tracked set within an exercise: the reps performed, an
// optional weight, and whether the set was completed.
type SetResult struct {
	Reps      int      `bson:"reps" json:"reps"`
	Weight    *float64 `bson:"weight,omitempty" json:"weight,omitempty"`
	Completed bool     `bson:"completed" json:"completed"`
}

// CompletedExercise is the per-exercise record inside a session.
type CompletedExercise struct {
	ExerciseName string      `bson:"exerciseName" json:"exerciseName"`
	Sets         []SetResult `bson:"sets" json:"sets"`
}

// WorkoutSession records one user performing a training day on a calendar
// date. At most one session exists per (user, date); saves for the same
// date replace completedExercises, duration and notes.
type WorkoutSession struct {
	ID                 primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	UserID             string              `bson:"userId" json:"userId"`
	PlanID             primitive.ObjectID  `bson:"planId" json:"planId"`
	Date               string              `bson:"date" json:"date"` // ISO YYYY-MM-DD
	DayName            string              `bson:"dayName" json:"dayName"`
	CompletedExercises []CompletedExercise `bson:"completedExercises" json:"completedExercises"`
	Duration           *int                `bson:"duration,omitempty" json:"duration,omitempty"` // minutes
	Notes              string              `bson:"notes,omitempty" json:"notes,omitempty"`
	CreatedAt          time.Time           `bson:"createdAt" json:"createdAt"`
	UpdatedAt          time.Time           `bson:"updatedAt" json:"updatedAt"`
}
