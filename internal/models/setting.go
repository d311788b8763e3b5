package models

import (
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SettingDataType enumerates the storable value types for a setting
type SettingDataType string

const (
	DataTypeString  SettingDataType = "string"
	DataTypeNumber  SettingDataType = "number"
	DataTypeBoolean SettingDataType = "boolean"
	DataTypeJSON    SettingDataType = "json"
	DataTypeArray   SettingDataType = "array"
)

// IsValid reports whether the data type is one of the supported kinds
func (t SettingDataType) IsValid() bool {
	switch t {
	case DataTypeString, DataTypeNumber, DataTypeBoolean, DataTypeJSON, DataTypeArray:
		return true
	}
	return false
}

// OperationType enumerates the business operations that can be priced
type OperationType string

const (
	OperationLease        OperationType = "LEASE"
	OperationRefill       OperationType = "REFILL"
	OperationSwap         OperationType = "SWAP"
	OperationRegistration OperationType = "REGISTRATION"
	OperationPenalty      OperationType = "PENALTY"
	OperationDeposit      OperationType = "DEPOSIT"

	// OperationTransfer is a stock movement between outlets. It is recorded
	// like the other operations but is never priced, so IsValid excludes it.
	OperationTransfer OperationType = "TRANSFER"
)

// IsValid reports whether the operation type is a known business operation
func (o OperationType) IsValid() bool {
	switch o {
	case OperationLease, OperationRefill, OperationSwap, OperationRegistration, OperationPenalty, OperationDeposit:
		return true
	}
	return false
}

// SettingScope narrows which settings apply to a request. A nil field is a
// wildcard: the dimension places no restriction on matching settings.
type SettingScope struct {
	OutletID      *primitive.ObjectID `bson:"outletId" json:"outletId,omitempty"`
	CylinderType  *string             `bson:"cylinderType" json:"cylinderType,omitempty"`
	OperationType *OperationType      `bson:"operationType" json:"operationType,omitempty"`
}

// Specificity counts the non-wildcard dimensions carried by the scope
func (s SettingScope) Specificity() int {
	n := 0
	if s.OutletID != nil {
		n++
	}
	if s.CylinderType != nil {
		n++
	}
	if s.OperationType != nil {
		n++
	}
	return n
}

// Matches reports whether a setting carrying this scope applies to a request
// scope. Each dimension must be either a wildcard on the setting or equal to
// the requested value; a set dimension never matches a request that omits it.
func (s SettingScope) Matches(req SettingScope) bool {
	if s.OutletID != nil && (req.OutletID == nil || *s.OutletID != *req.OutletID) {
		return false
	}
	if s.CylinderType != nil && (req.CylinderType == nil || *s.CylinderType != *req.CylinderType) {
		return false
	}
	if s.OperationType != nil && (req.OperationType == nil || *s.OperationType != *req.OperationType) {
		return false
	}
	return true
}

// Equals reports whether two scopes name exactly the same tuple
func (s SettingScope) Equals(other SettingScope) bool {
	if (s.OutletID == nil) != (other.OutletID == nil) {
		return false
	}
	if s.OutletID != nil && *s.OutletID != *other.OutletID {
		return false
	}
	if (s.CylinderType == nil) != (other.CylinderType == nil) {
		return false
	}
	if s.CylinderType != nil && *s.CylinderType != *other.CylinderType {
		return false
	}
	if (s.OperationType == nil) != (other.OperationType == nil) {
		return false
	}
	if s.OperationType != nil && *s.OperationType != *other.OperationType {
		return false
	}
	return true
}

// Setting represents a scoped, typed configuration record stored in the database
type Setting struct {
	ID            primitive.ObjectID  `bson:"_id,omitempty" json:"id,omitempty"`
	CategoryID    *primitive.ObjectID `bson:"categoryId" json:"categoryId,omitempty"`
	Key           string              `bson:"key" json:"key"` // Normalized: trimmed, lower-cased (e.g. "lease.base_price")
	Value         interface{}         `bson:"value" json:"value"`
	DataType      SettingDataType     `bson:"dataType" json:"dataType"`
	OutletID      *primitive.ObjectID `bson:"outletId" json:"outletId,omitempty"`
	CylinderType  *string             `bson:"cylinderType" json:"cylinderType,omitempty"`
	OperationType *OperationType      `bson:"operationType" json:"operationType,omitempty"`
	IsActive      bool                `bson:"isActive" json:"isActive"`
	CreatedBy     string              `bson:"createdBy" json:"createdBy"`
	UpdatedBy     string              `bson:"updatedBy" json:"updatedBy"`
	CreatedAt     time.Time           `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time           `bson:"updatedAt" json:"updatedAt"`
}

// Scope returns the setting's scope tuple
func (s *Setting) Scope() SettingScope {
	return SettingScope{
		OutletID:      s.OutletID,
		CylinderType:  s.CylinderType,
		OperationType: s.OperationType,
	}
}

// SettingCategory is a lookup grouping for settings (e.g. PRICING, LEASE, TAXES).
// It is informational only and does not affect resolution.
type SettingCategory struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Name        string             `bson:"name" json:"name"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// NormalizeSettingKey canonicalizes a setting key. Storage and lookup must use
// the same normalization or scoped resolution silently misses records.
func NormalizeSettingKey(key string) string {
	return strings.ToLower(strings.TrimSpace(key))
}
