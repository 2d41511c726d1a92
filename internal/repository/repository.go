package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"pulsemind/fitness-coach/internal/domain"
)

// Error constants for the repository layer.
var (
	ErrNotFound     = RepositoryError("not found")
	ErrUpdateFailed = RepositoryError("update failed")
	ErrDeleteFailed = RepositoryError("delete failed")
)

// RepositoryError helps distinguish repository errors.
type RepositoryError string

func (e RepositoryError) Error() string {
	return string(e)
}

// UserRepository defines the interface for interacting with user data.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (primitive.ObjectID, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error)
	GetByExternalAuthID(ctx context.Context, externalAuthID string) (*domain.User, error)
}

// PlanRepository defines the interface for interacting with plan data.
// CreateActive and Activate both guarantee the single-active-plan
// invariant: every other plan of the user is deactivated in the same call.
type PlanRepository interface {
	CreateActive(ctx context.Context, plan *domain.Plan) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Plan, error)
	GetByUserID(ctx context.Context, userID string) ([]domain.Plan, error)
	GetActiveByUserID(ctx context.Context, userID string) (*domain.Plan, error)
	Activate(ctx context.Context, planID primitive.ObjectID, userID string) error
	Delete(ctx context.Context, planID primitive.ObjectID, userID string) error
}

// SessionRepository defines the interface for workout-session data.
// Upsert is keyed by (userId, date): an existing session for the date has
// its completedExercises, duration and notes replaced; otherwise the full
// document is inserted.
type SessionRepository interface {
	Upsert(ctx context.Context, session *domain.WorkoutSession) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.WorkoutSession, error)
	GetByUserID(ctx context.Context, userID string) ([]domain.WorkoutSession, error)
	GetByUserAndDate(ctx context.Context, userID, date string) (*domain.WorkoutSession, error)
	GetByPlanID(ctx context.Context, planID primitive.ObjectID) ([]domain.WorkoutSession, error)
	Delete(ctx context.Context, sessionID primitive.ObjectID, userID string) error
}

// RecordRepository defines the interface for personal-record data.
type RecordRepository interface {
	Create(ctx context.Context, record *domain.PersonalRecord) (primitive.ObjectID, error)
	Update(ctx context.Context, record *domain.PersonalRecord) error
	GetByUserID(ctx context.Context, userID string) ([]domain.PersonalRecord, error)
	GetByUserAndExercise(ctx context.Context, userID, exerciseName string) (*domain.PersonalRecord, error)
}

// ExportRepository defines the interface for export metadata.
type ExportRepository interface {
	Create(ctx context.Context, export *domain.Export) (primitive.ObjectID, error)
	GetByUserID(ctx context.Context, userID string) ([]domain.Export, error)
}
