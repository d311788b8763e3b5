package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CylinderStatus enumerates the lifecycle states of a cylinder
type CylinderStatus string

const (
	CylinderAvailable   CylinderStatus = "AVAILABLE"
	CylinderLeased      CylinderStatus = "LEASED"
	CylinderMaintenance CylinderStatus = "MAINTENANCE"
	CylinderRetired     CylinderStatus = "RETIRED"
)

// Cylinder represents a single physical gas cylinder tracked by serial number
type Cylinder struct {
	ID           primitive.ObjectID  `bson:"_id,omitempty" json:"id,omitempty"`
	SerialNumber string              `bson:"serialNumber" json:"serialNumber"`
	CylinderType string              `bson:"cylinderType" json:"cylinderType"` // type tag, e.g. "10kg"
	SizeKg       float64             `bson:"sizeKg" json:"sizeKg"`
	Status       CylinderStatus      `bson:"status" json:"status"`
	OutletID     *primitive.ObjectID `bson:"outletId" json:"outletId,omitempty"` // current location
	CreatedAt    time.Time           `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time           `bson:"updatedAt" json:"updatedAt"`
}
