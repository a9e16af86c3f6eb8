package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Role string

const (
	RoleStudent   Role = "student"
	RoleModerator Role = "moderator"
	RoleAdmin     Role = "admin"
)

// Valid reports whether r is one of the three known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleStudent, RoleModerator, RoleAdmin:
		return true
	}
	return false
}

type User struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Name     string             `bson:"name,omitempty" json:"name,omitempty"`
	Email    string             `bson:"email" json:"email"`
	PhotoURL string             `bson:"photoURL,omitempty" json:"photoURL,omitempty"`
	Role     Role               `bson:"role" json:"role"` // "student", "moderator", "admin"

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`

	// Set when the external identity is gone but the record could not be removed.
	IdentityDeletedAt *time.Time `bson:"identityDeletedAt,omitempty" json:"identityDeletedAt,omitempty"`
}
