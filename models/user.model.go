package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Roles a user account can carry. Admin accounts are provisioned out of
// band and can never be chosen at registration.
const (
	RoleConsumer = "consumer"
	RoleBusiness = "business"
	RoleAdmin    = "admin"
)

// User represents an account in the system
type User struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Name      string             `bson:"name" json:"name"`
	Email     string             `bson:"email" json:"email"`
	Password  string             `bson:"password,omitempty" json:"-"`
	Role      string             `bson:"role" json:"role"`
	Company   string             `bson:"company,omitempty" json:"company,omitempty"`
	Phone     string             `bson:"phone,omitempty" json:"phone,omitempty"`
	CreatedAt time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updated_at" json:"updatedAt"`
}

// ValidRegistrationRole reports whether role may be chosen at sign-up.
func ValidRegistrationRole(role string) bool {
	return role == RoleConsumer || role == RoleBusiness
}
