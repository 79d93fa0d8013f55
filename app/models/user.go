package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Roles a user account can carry. Admins are the sellers of the
// marketplace: they list products and see ownership-scoped orders and
// analytics. Regular users are buyers.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User is the primary account model, shared by buyers and sellers.
type User struct {
	ID         primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Name       string             `json:"name" bson:"name"`
	Email      string             `json:"email" bson:"email"`
	Password   string             `json:"-" bson:"password"` // bcrypt hash, never serialised
	Role       string             `json:"role" bson:"role"`
	ProfilePic string             `json:"profilePic,omitempty" bson:"profilePic,omitempty"`
	Phone      string             `json:"phone,omitempty" bson:"phone,omitempty"`
	Address    string             `json:"address,omitempty" bson:"address,omitempty"`
	CreatedAt  time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt  time.Time          `json:"updatedAt" bson:"updatedAt"`
}

// IsAdmin reports whether the user is a seller account.
func (u User) IsAdmin() bool { return u.Role == RoleAdmin }
