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

const recordCollectionName = "personal_records"

// mongoRecordRepository implements repository.RecordRepository.
type mongoRecordRepository struct {
	collection *mongo.Collection
}

// NewMongoRecordRepository creates a new PersonalRecord repository.
func NewMongoRecordRepository(db *mongo.Database) repository.RecordRepository {
	return &mongoRecordRepository{
		collection: db.Collection(recordCollectionName),
	}
}

// Create inserts a new record.
func (r *mongoRecordRepository) Create(ctx context.Context, record *domain.PersonalRecord) (primitive.ObjectID, error) {
	if record.UserID == "" || record.ExerciseName == "" {
		return primitive.NilObjectID, errors.New("record requires userId and exerciseName")
	}

	record.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	record.CreatedAt = now
	record.UpdatedAt = now

	result, err := r.collection.InsertOne(ctx, record)
	if err != nil {
		return primitive.NilObjectID, err
	}
	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted record ID")
	}
	return insertedID, nil
}

// Update overwrites the mutable fields of an existing record.
func (r *mongoRecordRepository) Update(ctx context.Context, record *domain.PersonalRecord) error {
	if record.ID == primitive.NilObjectID {
		return errors.New("record ID is required for update")
	}

	filter := bson.M{"_id": record.ID}
	update := bson.M{
		"$set": bson.M{
			"maxWeight":    record.MaxWeight,
			"maxReps":      record.MaxReps,
			"achievedDate": record.AchievedDate,
			"updatedAt":    time.Now().UTC(),
		},
	}

	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// GetByUserID retrieves all records belonging to a user.
func (r *mongoRecordRepository) GetByUserID(ctx context.Context, userID string) ([]domain.PersonalRecord, error) {
	var records []domain.PersonalRecord
	filter := bson.M{"userId": userID}

	cursor, err := r.collection.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &records); err != nil {
		return nil, err
	}
	if err = cursor.Err(); err != nil {
		return nil, err
	}
	return records, nil
}

// GetByUserAndExercise retrieves the record for one (user, exercise) pair.
func (r *mongoRecordRepository) GetByUserAndExercise(ctx context.Context, userID, exerciseName string) (*domain.PersonalRecord, error) {
	var record domain.PersonalRecord
	filter := bson.M{"userId": userID, "exerciseName": exerciseName}
	err := r.collection.FindOne(ctx, filter).Decode(&record)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &record, nil
}

// EnsureRecordIndexes creates necessary indexes. Call during startup.
func EnsureRecordIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "userId", Value: 1}},
			Options: options.Index(),
		},
		{
			// One record per user per exercise name.
			Keys:    bson.D{{Key: "userId", Value: 1}, {Key: "exerciseName", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}
	_, err := collection.Indexes().CreateMany(ctx, indexes)
	if err != nil {
		// Index creation failure is not fatal; lookups still work unindexed.
	}
}
