package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User represents an account in the system. ExternalAuthID is the stable
// subject identifier minted at registration; all owned documents (plans,
// sessions, records, exports) reference it rather than the Mongo ObjectID.
type User struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name           string             `bson:"name" json:"name"`
	Email          string             `bson:"email" json:"email"` // unique
	Image          string             `bson:"image,omitempty" json:"image,omitempty"`
	PasswordHash   string             `bson:"passwordHash" json:"-"` // Never expose this via JSON
	ExternalAuthID string             `bson:"externalAuthId" json:"externalAuthId"`
	CreatedAt      time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt      time.Time          `bson:"updatedAt" json:"updatedAt"`
}
