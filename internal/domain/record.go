package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PersonalRecord holds the best-known max weight and max reps a user has
// logged for one exercise name. The two fields are tracked independently.
type PersonalRecord struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID       string             `bson:"userId" json:"userId"`
	ExerciseName string             `bson:"exerciseName" json:"exerciseName"`
	MaxWeight    *float64           `bson:"maxWeight,omitempty" json:"maxWeight,omitempty"`
	MaxReps      *int               `bson:"maxReps,omitempty" json:"maxReps,omitempty"`
	AchievedDate string             `bson:"achievedDate" json:"achievedDate"` // ISO YYYY-MM-DD
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// RecordCandidate is one promotion attempt produced by saving a workout:
// the best weight and reps among an exercise's completed sets on one date.
type RecordCandidate struct {
	ExerciseName string
	MaxWeight    *float64
	MaxReps      *int
	AchievedDate string
}

// Promote applies the candidate to the record and reports whether anything
// changed. A record is promoted when any present candidate field strictly
// exceeds the stored value (or the stored value is absent). Fields are
// merged upward independently, so a stored field never decreases even when
// the other field triggered the promotion. AchievedDate is overwritten on
// every promotion.
func (r *PersonalRecord) Promote(c RecordCandidate) bool {
	weightImproved := c.MaxWeight != nil && (r.MaxWeight == nil || *c.MaxWeight > *r.MaxWeight)
	repsImproved := c.MaxReps != nil && (r.MaxReps == nil || *c.MaxReps > *r.MaxReps)
	if !weightImproved && !repsImproved {
		return false
	}
	if weightImproved {
		w := *c.MaxWeight
		r.MaxWeight = &w
	}
	if repsImproved {
		n := *c.MaxReps
		r.MaxReps = &n
	}
	r.AchievedDate = c.AchievedDate
	return true
}

// NewRecordFromCandidate builds the initial record for an exercise that has
// no stored record yet. Creation is unconditional.
func NewRecordFromCandidate(userID string, c RecordCandidate) *PersonalRecord {
	rec := &PersonalRecord{
		UserID:       userID,
		ExerciseName: c.ExerciseName,
		AchievedDate: c.AchievedDate,
	}
	if c.MaxWeight != nil {
		w := *c.MaxWeight
		rec.MaxWeight = &w
	}
	if c.MaxReps != nil {
		n := *c.MaxReps
		rec.MaxReps = &n
	}
	return rec
}
