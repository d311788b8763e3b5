package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TaxType enumerates how tax relates to the quoted price
type TaxType string

const (
	TaxExclusive TaxType = "exclusive" // tax added on top of the subtotal
	TaxInclusive TaxType = "inclusive" // tax carved out of the quoted subtotal
)

// CylinderCondition describes the physical state of a cylinder at swap or return
type CylinderCondition string

const (
	ConditionGood    CylinderCondition = "good"
	ConditionPoor    CylinderCondition = "poor"
	ConditionDamaged CylinderCondition = "damaged"
)

// IsValid reports whether the condition is a known grade
func (c CylinderCondition) IsValid() bool {
	switch c {
	case ConditionGood, ConditionPoor, ConditionDamaged:
		return true
	}
	return false
}

// PriceRequest describes a single operation instance to price
type PriceRequest struct {
	OperationType OperationType       `json:"operationType" binding:"required"`
	CylinderType  *string             `json:"cylinderType,omitempty"`
	CylinderSize  string              `json:"cylinderSize,omitempty"`
	Quantity      int                 `json:"quantity"`
	OutletID      *primitive.ObjectID `json:"outletId,omitempty"`
	CustomerID    *primitive.ObjectID `json:"customerId,omitempty"`
	Duration      int                 `json:"duration,omitempty"`  // billing periods, LEASE only
	GasAmount     float64             `json:"gasAmount,omitempty"` // kilograms, REFILL only
	Condition     CylinderCondition   `json:"condition,omitempty"` // SWAP and PENALTY only
}

// BreakdownLine is one intermediate step of a price computation
type BreakdownLine struct {
	Label  string  `json:"label"`
	Amount float64 `json:"amount"`
}

// PricingResult is the full breakdown of one priced operation. Every
// intermediate is exposed so receipts and audits can reproduce the
// computation independently of this service.
type PricingResult struct {
	OperationType   OperationType   `json:"operationType"`
	CylinderType    string          `json:"cylinderType,omitempty"`
	Quantity        int             `json:"quantity"`
	BasePrice       float64         `json:"basePrice"`
	Subtotal        float64         `json:"subtotal"`
	DiscountAmount  float64         `json:"discountAmount"`
	SurchargeAmount float64         `json:"surchargeAmount"`
	TaxRate         float64         `json:"taxRate"`
	TaxType         TaxType         `json:"taxType"`
	TaxAmount       float64         `json:"taxAmount"`
	TotalPrice      float64         `json:"totalPrice"`
	Breakdown       []BreakdownLine `json:"breakdown"`
}

// BulkPriceRequest prices a batch of operations atomically
type BulkPriceRequest struct {
	Items []PriceRequest `json:"items" binding:"required"`
}

// BulkPricingResult aggregates the per-item breakdowns of a bulk request
type BulkPricingResult struct {
	Items         []PricingResult `json:"items"`
	TotalSubtotal float64         `json:"totalSubtotal"`
	TotalTax      float64         `json:"totalTax"`
	TotalPrice    float64         `json:"totalPrice"`
}

// Quote is a non-persisted price preview with a reference for correlation
type Quote struct {
	Reference string        `json:"reference"`
	Result    PricingResult `json:"result"`
}

// ProjectionResult is a linear revenue projection: one unit's computed total
// multiplied by an estimated volume. It is not a statistical forecast.
type ProjectionResult struct {
	OperationType   OperationType `json:"operationType"`
	UnitPrice       float64       `json:"unitPrice"`
	EstimatedVolume int           `json:"estimatedVolume"`
	ProjectedTotal  float64       `json:"projectedTotal"`
}
