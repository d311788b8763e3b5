package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// LeaseStatus enumerates the lifecycle states of a lease
type LeaseStatus string

const (
	LeaseActive   LeaseStatus = "ACTIVE"
	LeaseReturned LeaseStatus = "RETURNED"
	LeaseOverdue  LeaseStatus = "OVERDUE"
)

// Lease represents a customer holding a cylinder against a deposit. The
// pricing breakdown computed at creation is stored verbatim so the charge can
// be audited even after the underlying settings change.
type Lease struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Reference       string             `bson:"reference" json:"reference"`
	CustomerID      primitive.ObjectID `bson:"customerId" json:"customerId"`
	CylinderID      primitive.ObjectID `bson:"cylinderId" json:"cylinderId"`
	OutletID        primitive.ObjectID `bson:"outletId" json:"outletId"`
	Status          LeaseStatus        `bson:"status" json:"status"`
	Duration        int                `bson:"duration" json:"duration"` // billing periods
	LeaseCharge     PricingResult      `bson:"leaseCharge" json:"leaseCharge"`
	DepositCharge   PricingResult      `bson:"depositCharge" json:"depositCharge"`
	ReturnCondition CylinderCondition  `bson:"returnCondition,omitempty" json:"returnCondition,omitempty"`
	ReturnPenalty   *PricingResult     `bson:"returnPenalty,omitempty" json:"returnPenalty,omitempty"`
	StartedAt       time.Time          `bson:"startedAt" json:"startedAt"`
	ReturnedAt      *time.Time         `bson:"returnedAt,omitempty" json:"returnedAt,omitempty"`
	CreatedBy       string             `bson:"createdBy" json:"createdBy"`
	CreatedAt       time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt       time.Time          `bson:"updatedAt" json:"updatedAt"`
}
