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

const exportCollectionName = "exports"

// mongoExportRepository implements repository.ExportRepository.
type mongoExportRepository struct {
	collection *mongo.Collection
}

// NewMongoExportRepository creates a new Export repository.
func NewMongoExportRepository(db *mongo.Database) repository.ExportRepository {
	return &mongoExportRepository{
		collection: db.Collection(exportCollectionName),
	}
}

// Create inserts export metadata for a generated document.
func (r *mongoExportRepository) Create(ctx context.Context, export *domain.Export) (primitive.ObjectID, error) {
	if export.UserID == "" || export.S3ObjectKey == "" {
		return primitive.NilObjectID, errors.New("export requires userId and object key")
	}

	export.ID = primitive.NewObjectID()
	export.GeneratedAt = time.Now().UTC()

	result, err := r.collection.InsertOne(ctx, export)
	if err != nil {
		return primitive.NilObjectID, err
	}
	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted export ID")
	}
	return insertedID, nil
}

// GetByUserID retrieves all export records belonging to a user, newest first.
func (r *mongoExportRepository) GetByUserID(ctx context.Context, userID string) ([]domain.Export, error) {
	var exports []domain.Export
	filter := bson.M{"userId": userID}
	findOptions := options.Find().SetSort(bson.D{{Key: "generatedAt", Value: -1}})

	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &exports); err != nil {
		return nil, err
	}
	if err = cursor.Err(); err != nil {
		return nil, err
	}
	return exports, nil
}

// EnsureExportIndexes creates necessary indexes. Call during startup.
func EnsureExportIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "userId", Value: 1}},
			Options: options.Index(),
		},
	}
	_, err := collection.Indexes().CreateMany(ctx, indexes)
	if err != nil {
		// Index creation failure is not fatal; lookups still work unindexed.
	}
}
