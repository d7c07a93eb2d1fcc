package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User represents a registered account. Usernames are unique and
// case-sensitive; only the bcrypt hash of the password is ever stored.
type User struct {
	ID           primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Username     string             `json:"username" bson:"username"`
	PasswordHash string             `json:"-" bson:"passwordHash"` // never exposed in API responses
	CreatedAt    time.Time          `json:"createdAt" bson:"createdAt"`
}
