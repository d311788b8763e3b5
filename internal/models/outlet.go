package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Outlet represents a physical distribution point holding cylinders
type Outlet struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Name      string             `bson:"name" json:"name"`
	Code      string             `bson:"code" json:"code"` // short unique code, e.g. "LAG-01"
	Address   string             `bson:"address,omitempty" json:"address,omitempty"`
	Phone     string             `bson:"phone,omitempty" json:"phone,omitempty"`
	IsActive  bool               `bson:"isActive" json:"isActive"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}
