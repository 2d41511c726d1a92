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

const planCollectionName = "plans"

// mongoPlanRepository implements repository.PlanRepository.
type mongoPlanRepository struct {
	collection *mongo.Collection
}

// NewMongoPlanRepository creates a new Plan repository.
func NewMongoPlanRepository(db *mongo.Database) repository.PlanRepository {
	return &mongoPlanRepository{
		collection: db.Collection(planCollectionName),
	}
}

// deactivateAll clears isActive on every plan of the user except excludeID.
func (r *mongoPlanRepository) deactivateAll(ctx context.Context, userID string, excludeID primitive.ObjectID) error {
	filter := bson.M{
		"userId":   userID,
		"isActive": true,
	}
	if excludeID != primitive.NilObjectID {
		filter["_id"] = bson.M{"$ne": excludeID}
	}
	update := bson.M{"$set": bson.M{"isActive": false, "updatedAt": time.Now().UTC()}}
	_, err := r.collection.UpdateMany(ctx, filter, update)
	return err
}

// CreateActive inserts a new plan as the user's single active plan.
// All other plans of the user are deactivated first, so the invariant
// holds regardless of caller discipline.
func (r *mongoPlanRepository) CreateActive(ctx context.Context, plan *domain.Plan) (primitive.ObjectID, error) {
	if plan.UserID == "" || plan.Name == "" {
		return primitive.NilObjectID, errors.New("plan requires userId and name")
	}

	if err := r.deactivateAll(ctx, plan.UserID, primitive.NilObjectID); err != nil {
		return primitive.NilObjectID, err
	}

	plan.ID = primitive.NewObjectID()
	plan.IsActive = true
	now := time.Now().UTC()
	plan.CreatedAt = now
	plan.UpdatedAt = now

	result, err := r.collection.InsertOne(ctx, plan)
	if err != nil {
		return primitive.NilObjectID, err
	}
	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted plan ID")
	}
	return insertedID, nil
}

// GetByID retrieves a single plan by its ID.
func (r *mongoPlanRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Plan, error) {
	var plan domain.Plan
	filter := bson.M{"_id": id}
	err := r.collection.FindOne(ctx, filter).Decode(&plan)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &plan, nil
}

// GetByUserID retrieves all plans belonging to a user, newest first.
func (r *mongoPlanRepository) GetByUserID(ctx context.Context, userID string) ([]domain.Plan, error) {
	var plans []domain.Plan
	filter := bson.M{"userId": userID}
	findOptions := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})

	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &plans); err != nil {
		return nil, err
	}
	if err = cursor.Err(); err != nil {
		return nil, err
	}
	// Empty slice when the user has no plans (not an error).
	return plans, nil
}

// GetActiveByUserID retrieves the user's active plan.
func (r *mongoPlanRepository) GetActiveByUserID(ctx context.Context, userID string) (*domain.Plan, error) {
	var plan domain.Plan
	filter := bson.M{"userId": userID, "isActive": true}
	err := r.collection.FindOne(ctx, filter).Decode(&plan)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &plan, nil
}

// Activate marks one plan active and deactivates every other plan of the
// user. Ownership is verified before any write, and siblings are
// deactivated before the target is activated: a failure part-way leaves
// the user with no active plan, never two.
func (r *mongoPlanRepository) Activate(ctx context.Context, planID primitive.ObjectID, userID string) error {
	if planID == primitive.NilObjectID || userID == "" {
		return errors.New("plan ID and user ID are required for activation")
	}

	// Filter on owner as well, so activating someone else's plan fails.
	filter := bson.M{"_id": planID, "userId": userID}
	count, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return err
	}
	if count == 0 {
		return repository.ErrNotFound
	}

	if err := r.deactivateAll(ctx, userID, planID); err != nil {
		return err
	}

	update := bson.M{"$set": bson.M{"isActive": true, "updatedAt": time.Now().UTC()}}
	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// Delete removes a plan, enforcing ownership at the store boundary.
func (r *mongoPlanRepository) Delete(ctx context.Context, planID primitive.ObjectID, userID string) error {
	if planID == primitive.NilObjectID || userID == "" {
		return errors.New("plan ID and user ID are required for deletion")
	}

	filter := bson.M{
		"_id":    planID,
		"userId": userID,
	}

	result, err := r.collection.DeleteOne(ctx, filter)
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		// Either the plan didn't exist or it belongs to another user.
		return repository.ErrNotFound
	}
	return nil
}

// EnsurePlanIndexes creates necessary indexes. Call during startup.
func EnsurePlanIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "userId", Value: 1}},
			Options: options.Index(),
		},
		{
			Keys:    bson.D{{Key: "userId", Value: 1}, {Key: "isActive", Value: 1}},
			Options: options.Index(),
		},
	}
	_, err := collection.Indexes().CreateMany(ctx, indexes)
	if err != nil {
		// Index creation failure is not fatal; lookups still work unindexed.
	}
}
