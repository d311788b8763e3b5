package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestNormalizeSettingKey(t *testing.T) {
	assert.Equal(t, "lease.base_price", NormalizeSettingKey("  Lease.Base_Price "))
	assert.Equal(t, "tax.rate", NormalizeSettingKey("TAX.RATE"))
	assert.Equal(t, "", NormalizeSettingKey("   "))
}

func TestSettingScopeSpecificity(t *testing.T) {
	outletID := primitive.NewObjectID()
	cylType := "12kg"
	op := OperationLease

	assert.Equal(t, 0, SettingScope{}.Specificity())
	assert.Equal(t, 1, SettingScope{CylinderType: &cylType}.Specificity())
	assert.Equal(t, 2, SettingScope{OutletID: &outletID, OperationType: &op}.Specificity())
	assert.Equal(t, 3, SettingScope{OutletID: &outletID, CylinderType: &cylType, OperationType: &op}.Specificity())
}

func TestSettingScopeMatches(t *testing.T) {
	outletID := primitive.NewObjectID()
	otherOutlet := primitive.NewObjectID()
	cylType := "12kg"
	op := OperationLease

	full := SettingScope{OutletID: &outletID, CylinderType: &cylType, OperationType: &op}

	// A wildcard scope matches any request
	assert.True(t, SettingScope{}.Matches(full))
	assert.True(t, SettingScope{}.Matches(SettingScope{}))

	// Each set dimension must equal the request's value
	assert.True(t, SettingScope{CylinderType: &cylType}.Matches(full))
	assert.True(t, full.Matches(full))
	assert.False(t, SettingScope{OutletID: &otherOutlet}.Matches(full))

	// A set dimension never matches a request that omits it
	assert.False(t, SettingScope{OutletID: &outletID}.Matches(SettingScope{CylinderType: &cylType}))
}

func TestSettingScopeEquals(t *testing.T) {
	outletID := primitive.NewObjectID()
	cylType := "12kg"

	a := SettingScope{OutletID: &outletID, CylinderType: &cylType}
	b := SettingScope{OutletID: &outletID, CylinderType: &cylType}
	assert.True(t, a.Equals(b))
	assert.False(t, a.Equals(SettingScope{OutletID: &outletID}))
	assert.True(t, SettingScope{}.Equals(SettingScope{}))
}

func TestOperationTypeIsValid(t *testing.T) {
	for _, op := range []OperationType{OperationLease, OperationRefill, OperationSwap, OperationRegistration, OperationPenalty, OperationDeposit} {
		assert.True(t, op.IsValid(), string(op))
	}
	// TRANSFER is a stock movement, not a priceable operation
	assert.False(t, OperationTransfer.IsValid())
	assert.False(t, OperationType("RESALE").IsValid())
}
