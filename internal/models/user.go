package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Preferences struct {
	Newsletter    bool `bson:"newsletter" json:"newsletter"`
	Notifications bool `bson:"notifications" json:"notifications"`
}

type Profile struct {
	Phone       string      `bson:"phone" json:"phone"`
	Address     string      `bson:"address" json:"address"`
	City        string      `bson:"city" json:"city"`
	Preferences Preferences `bson:"preferences" json:"preferences"`
}

// User represents the application user account. Email is stored
// lowercase and is unique at the collection level.
type User struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name           string             `bson:"name" json:"name"`
	Email          string             `bson:"email" json:"email"`
	HashedPassword string             `bson:"hashedPassword" json:"-"`
	Role           string             `bson:"role" json:"role"`
	IsActive       bool               `bson:"isActive" json:"isActive"`
	Profile        Profile            `bson:"profile" json:"profile"`
	LastLogin      *time.Time         `bson:"lastLogin,omitempty" json:"lastLogin,omitempty"`
	CreatedAt      time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt      time.Time          `bson:"updatedAt" json:"updatedAt"`
	UpdatedBy      string             `bson:"updatedBy,omitempty" json:"updatedBy,omitempty"`
}
