package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Operation is an executed business action against a cylinder (refill, swap,
// or transfer between outlets). Priced operations persist the breakdown that
// was charged at execution time.
type Operation struct {
	ID          primitive.ObjectID  `bson:"_id,omitempty" json:"id,omitempty"`
	Reference   string              `bson:"reference" json:"reference"`
	Type        OperationType       `bson:"type" json:"type"`
	CylinderID  primitive.ObjectID  `bson:"cylinderId" json:"cylinderId"`
	OutletID    primitive.ObjectID  `bson:"outletId" json:"outletId"`
	CustomerID  *primitive.ObjectID `bson:"customerId" json:"customerId,omitempty"`
	ToOutletID  *primitive.ObjectID `bson:"toOutletId" json:"toOutletId,omitempty"` // TRANSFER destination
	GasAmountKg float64             `bson:"gasAmountKg,omitempty" json:"gasAmountKg,omitempty"`
	Condition   CylinderCondition   `bson:"condition,omitempty" json:"condition,omitempty"`
	Charge      *PricingResult      `bson:"charge,omitempty" json:"charge,omitempty"`
	PerformedBy string              `bson:"performedBy" json:"performedBy"`
	PerformedAt time.Time           `bson:"performedAt" json:"performedAt"`
	CreatedAt   time.Time           `bson:"createdAt" json:"createdAt"`
}

// SystemStats is a point-in-time record count overview for the admin dashboard
type SystemStats struct {
	Settings   int64 `json:"settings"`
	Outlets    int64 `json:"outlets"`
	Cylinders  int64 `json:"cylinders"`
	Customers  int64 `json:"customers"`
	Leases     int64 `json:"leases"`
	Operations int64 `json:"operations"`
}
