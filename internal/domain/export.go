package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Export stores metadata about a generated plan document. The rendered PDF
// itself resides in object storage under S3ObjectKey.
type Export struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID      string             `bson:"userId" json:"userId"`
	PlanID      primitive.ObjectID `bson:"planId" json:"planId"`
	S3ObjectKey string             `bson:"s3ObjectKey" json:"-"` // internal use
	FileName    string             `bson:"fileName" json:"fileName"`
	ContentType string             `bson:"contentType" json:"contentType"`
	Size        int64              `bson:"size" json:"size"`
	GeneratedAt time.Time          `bson:"generatedAt" json:"generatedAt"`
}
