package model

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User represents a user document in MongoDB
type User struct {
	ID        primitive.ObjectID `json:"-" bson:"_id,omitempty"`
	Username  string             `json:"username" bson:"username"`
	FirstName string             `json:"firstName" bson:"first_name"`
	Email     string             `json:"email" bson:"email"`
	IsActive  bool               `json:"isActive" bson:"is_active"`
}

// Fields returns the four user-owned fields as a $set document body.
func (u User) Fields() map[string]interface{} {
	return map[string]interface{}{
		"username":   u.Username,
		"first_name": u.FirstName,
		"email":      u.Email,
		"is_active":  u.IsActive,
	}
}
