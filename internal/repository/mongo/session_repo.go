package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"pulsemind/fitness-coach/internal/domain"
	"pulsemind/fitness-coach/internal/repository"
)

const sessionCollectionName = "workout_sessions"

// mongoSessionRepository implements repository.SessionRepository.
type mongoSessionRepository struct {
	collection *mongo.Collection
}

// NewMongoSessionRepository creates a new WorkoutSession repository.
func NewMongoSessionRepository(db *mongo.Database) repository.SessionRepository {
	return &mongoSessionRepository{
		collection: db.Collection(sessionCollectionName),
	}
}

// Upsert saves a session keyed by (userId, date). An existing session for
// the date has its completedExercises, duration and notes replaced; the
// dayName recorded at first insert is kept. Otherwise the full document is
// inserted. Repeating the call with identical input is idempotent.
func (r *mongoSessionRepository) Upsert(ctx context.Context, session *domain.WorkoutSession) (primitive.ObjectID, error) {
	if session.UserID == "" || session.Date == "" {
		return primitive.NilObjectID, errors.New("session requires userId and date")
	}

	filter := bson.M{"userId": session.UserID, "date": session.Date}

	var existing domain.WorkoutSession
	err := r.collection.FindOne(ctx, filter).Decode(&existing)
	if err == nil {
		update := bson.M{
			"$set": bson.M{
				"completedExercises": session.CompletedExercises,
				"duration":           session.Duration,
				"notes":              session.Notes,
				"updatedAt":          time.Now().UTC(),
			},
		}
		if _, err := r.collection.UpdateOne(ctx, bson.M{"_id": existing.ID}, update); err != nil {
			return primitive.NilObjectID, err
		}
		return existing.ID, nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return primitive.NilObjectID, err
	}

	session.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	session.CreatedAt = now
	session.UpdatedAt = now

	result, err := r.collection.InsertOne(ctx, session)
	if err != nil {
		return primitive.NilObjectID, err
	}
	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted session ID")
	}
	return insertedID, nil
}

// GetByID retrieves a single session by its ID.
func (r *mongoSessionRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.WorkoutSession, error) {
	var session domain.WorkoutSession
	filter := bson.M{"_id": id}
	err := r.collection.FindOne(ctx, filter).Decode(&session)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &session, nil
}

// GetByUserID retrieves all sessions belonging to a user. Date filtering
// and ordering happen in the service layer.
func (r *mongoSessionRepository) GetByUserID(ctx context.Context, userID string) ([]domain.WorkoutSession, error) {
	var sessions []domain.WorkoutSession
	filter := bson.M{"userId": userID}

	cursor, err := r.collection.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &sessions); err != nil {
		return nil, err
	}
	if err = cursor.Err(); err != nil {
		return nil, err
	}
	return sessions, nil
}

// GetByUserAndDate retrieves the session for one (user, date) pair.
func (r *mongoSessionRepository) GetByUserAndDate(ctx context.Context, userID, date string) (*domain.WorkoutSession, error) {
	var session domain.WorkoutSession
	filter := bson.M{"userId": userID, "date": date}
	err := r.collection.FindOne(ctx, filter).Decode(&session)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &session, nil
}

// GetByPlanID retrieves all sessions recorded against one plan.
func (r *mongoSessionRepository) GetByPlanID(ctx context.Context, planID primitive.ObjectID) ([]domain.WorkoutSession, error) {
	var sessions []domain.WorkoutSession
	filter := bson.M{"planId": planID}

	cursor, err := r.collection.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &sessions); err != nil {
		return nil, err
	}
	if err = cursor.Err(); err != nil {
		return nil, err
	}
	return sessions, nil
}

// Delete removes a session, enforcing ownership at the store boundary.
// All-or-nothing: a mismatched owner deletes nothing.
func (r *mongoSessionRepository) Delete(ctx context.Context, sessionID primitive.ObjectID, userID string) error {
	if sessionID == primitive.NilObjectID || userID == "" {
		return errors.New("session ID and user ID are required for deletion")
	}

	filter := bson.M{
		"_id":    sessionID,
		"userId": userID,
	}

	result, err := r.collection.DeleteOne(ctx, filter)
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// EnsureSessionIndexes creates necessary indexes. Call during startup.
func EnsureSessionIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "userId", Value: 1}},
			Options: options.Index(),
		},
		{
			Keys:    bson.D{{Key: "planId", Value: 1}},
			Options: options.Index(),
		},
		{
			// One session per user per calendar date.
			Keys:    bson.D{{Key: "userId", Value: 1}, {Key: "date", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}
	_, err := collection.Indexes().CreateMany(ctx, indexes)
	if err != nil {
		// Index creation failure is not fatal; lookups still work unindexed.
	}
}
