package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/gasops/cylinder-backend/internal/models"
	"github.com/gasops/cylinder-backend/internal/repositories/memory"
)

func newSettingsFixture() *SettingsServiceImpl {
	return NewSettingsService(memory.NewSettingRepository(), memory.NewSettingCategoryRepository())
}

func strPtr(s string) *string { return &s }

func opPtr(o models.OperationType) *models.OperationType { return &o }

func mustSet(t *testing.T, svc *SettingsServiceImpl, key string, value interface{}, dataType models.SettingDataType, scope models.SettingScope) *models.Setting {
	t.Helper()
	setting, err := svc.SetSetting(context.Background(), SetSettingRequest{
		Key:      key,
		Value:    value,
		DataType: dataType,
		Scope:    scope,
	}, "test-admin")
	require.NoError(t, err)
	return setting
}

func TestResolveMostSpecificWins(t *testing.T) {
	svc := newSettingsFixture()
	ctx := context.Background()
	outletID := primitive.NewObjectID()

	mustSet(t, svc, "lease.base_price", 100, models.DataTypeNumber, models.SettingScope{})
	mustSet(t, svc, "lease.base_price", 90, models.DataTypeNumber, models.SettingScope{
		CylinderType: strPtr("12kg"),
	})
	mustSet(t, svc, "lease.base_price", 80, models.DataTypeNumber, models.SettingScope{
		OutletID:     &outletID,
		CylinderType: strPtr("12kg"),
	})

	// Fully specified request reaches the two-dimension setting
	value, err := svc.ResolveNumber(ctx, "lease.base_price", models.SettingScope{
		OutletID:      &outletID,
		CylinderType:  strPtr("12kg"),
		OperationType: opPtr(models.OperationLease),
	})
	require.NoError(t, err)
	assert.Equal(t, float64(80), value)

	// Request without the outlet falls back to the cylinder-type setting
	value, err = svc.ResolveNumber(ctx, "lease.base_price", models.SettingScope{
		CylinderType: strPtr("12kg"),
	})
	require.NoError(t, err)
	assert.Equal(t, float64(90), value)

	// Request matching only the global wildcard
	value, err = svc.ResolveNumber(ctx, "lease.base_price", models.SettingScope{
		CylinderType: strPtr("6kg"),
	})
	require.NoError(t, err)
	assert.Equal(t, float64(100), value)
}

func TestResolveScopedSettingNeverLeaksToBroaderRequest(t *testing.T) {
	svc := newSettingsFixture()
	ctx := context.Background()
	outletID := primitive.NewObjectID()

	mustSet(t, svc, "lease.base_price", 80, models.DataTypeNumber, models.SettingScope{
		OutletID: &outletID,
	})

	// A request that omits the outlet must not see the outlet-scoped value
	_, err := svc.ResolveNumber(ctx, "lease.base_price", models.SettingScope{})
	var notFound *models.NotFoundError
	require.ErrorAs(t, err, &notFound)
}

func TestResolveTieBreakPrefersLatestUpdate(t *testing.T) {
	svc := newSettingsFixture()
	ctx := context.Background()
	reqScope := models.SettingScope{
		CylinderType:  strPtr("12kg"),
		OperationType: opPtr(models.OperationLease),
	}

	// Two settings with equal specificity, both matching the request
	mustSet(t, svc, "discount.percentage", 5, models.DataTypeNumber, models.SettingScope{
		CylinderType: strPtr("12kg"),
	})
	time.Sleep(5 * time.Millisecond)
	mustSet(t, svc, "discount.percentage", 10, models.DataTypeNumber, models.SettingScope{
		OperationType: opPtr(models.OperationLease),
	})

	value, err := svc.ResolveNumber(ctx, "discount.percentage", reqScope)
	require.NoError(t, err)
	assert.Equal(t, float64(10), value)

	// Updating the older record makes it the winner
	time.Sleep(5 * time.Millisecond)
	mustSet(t, svc, "discount.percentage", 7, models.DataTypeNumber, models.SettingScope{
		CylinderType: strPtr("12kg"),
	})
	value, err = svc.ResolveNumber(ctx, "discount.percentage", reqScope)
	require.NoError(t, err)
	assert.Equal(t, float64(7), value)
}

func TestResolveIsDeterministic(t *testing.T) {
	svc := newSettingsFixture()
	ctx := context.Background()
	scope := models.SettingScope{CylinderType: strPtr("12kg"), OperationType: opPtr(models.OperationSwap)}

	mustSet(t, svc, "swap.base_price", 200, models.DataTypeNumber, models.SettingScope{CylinderType: strPtr("12kg")})
	mustSet(t, svc, "swap.base_price", 210, models.DataTypeNumber, models.SettingScope{OperationType: opPtr(models.OperationSwap)})

	first, _, err := svc.Resolve(ctx, "swap.base_price", scope)
	require.NoError(t, err)
	for i := 0; i < 20; i++ {
		again, _, err := svc.Resolve(ctx, "swap.base_price", scope)
		require.NoError(t, err)
		assert.Equal(t, first.ID, again.ID)
	}
}

func TestResolveNormalizesKeys(t *testing.T) {
	svc := newSettingsFixture()
	ctx := context.Background()

	setting := mustSet(t, svc, "  Lease.Base_Price  ", 100, models.DataTypeNumber, models.SettingScope{})
	assert.Equal(t, "lease.base_price", setting.Key)

	value, err := svc.ResolveNumber(ctx, "LEASE.BASE_PRICE", models.SettingScope{})
	require.NoError(t, err)
	assert.Equal(t, float64(100), value)
}

func TestSetSettingUpsertsSameTuple(t *testing.T) {
	svc := newSettingsFixture()
	ctx := context.Background()
	scope := models.SettingScope{CylinderType: strPtr("12kg")}

	first := mustSet(t, svc, "lease.base_price", 100, models.DataTypeNumber, scope)
	second := mustSet(t, svc, "lease.base_price", 120, models.DataTypeNumber, scope)

	// Same tuple is superseded in place, not duplicated
	assert.Equal(t, first.ID, second.ID)

	all, err := svc.ListSettings(ctx, 1, 50)
	require.NoError(t, err)
	assert.Len(t, all, 1)

	value, err := svc.ResolveNumber(ctx, "lease.base_price", scope)
	require.NoError(t, err)
	assert.Equal(t, float64(120), value)
}

func TestSetSettingRejectsBadInput(t *testing.T) {
	svc := newSettingsFixture()
	ctx := context.Background()
	var valErr *models.ValidationError

	_, err := svc.SetSetting(ctx, SetSettingRequest{Key: "   ", Value: 1, DataType: models.DataTypeNumber}, "admin")
	require.ErrorAs(t, err, &valErr)

	_, err = svc.SetSetting(ctx, SetSettingRequest{
		Key: "lease.base_price", Value: "not a number", DataType: models.DataTypeNumber,
	}, "admin")
	require.ErrorAs(t, err, &valErr)

	// TRANSFER is a movement, not a priceable operation, so it cannot scope a setting
	_, err = svc.SetSetting(ctx, SetSettingRequest{
		Key: "lease.base_price", Value: 1, DataType: models.DataTypeNumber,
		Scope: models.SettingScope{OperationType: opPtr(models.OperationTransfer)},
	}, "admin")
	require.ErrorAs(t, err, &valErr)
}

func TestDeleteSettingStopsResolution(t *testing.T) {
	svc := newSettingsFixture()
	ctx := context.Background()

	setting := mustSet(t, svc, "tax.rate", 0.075, models.DataTypeNumber, models.SettingScope{})

	_, err := svc.ResolveNumber(ctx, "tax.rate", models.SettingScope{})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteSetting(ctx, setting.ID, "test-admin"))

	_, err = svc.ResolveNumber(ctx, "tax.rate", models.SettingScope{})
	var notFound *models.NotFoundError
	require.ErrorAs(t, err, &notFound)

	// The record survives for audit, only resolution stops
	stored, err := svc.GetSettingByID(ctx, setting.ID)
	require.NoError(t, err)
	assert.False(t, stored.IsActive)

	// A fresh write to the same tuple reactivates it
	mustSet(t, svc, "tax.rate", 0.05, models.DataTypeNumber, models.SettingScope{})
	value, err := svc.ResolveNumber(ctx, "tax.rate", models.SettingScope{})
	require.NoError(t, err)
	assert.Equal(t, 0.05, value)
}

func TestDeleteSettingUnknownID(t *testing.T) {
	svc := newSettingsFixture()
	err := svc.DeleteSetting(context.Background(), primitive.NewObjectID(), "test-admin")
	var notFound *models.NotFoundError
	require.ErrorAs(t, err, &notFound)
}

func TestResolveSurfacesDecodeError(t *testing.T) {
	repo := memory.NewSettingRepository()
	svc := NewSettingsService(repo, memory.NewSettingCategoryRepository())
	ctx := context.Background()

	// Write a corrupt record directly, bypassing write-time validation
	require.NoError(t, repo.Create(ctx, &models.Setting{
		Key:      "lease.base_price",
		Value:    "garbage",
		DataType: models.DataTypeNumber,
		IsActive: true,
	}))

	_, _, err := svc.Resolve(ctx, "lease.base_price", models.SettingScope{})
	var decodeErr *models.SettingDecodeError
	require.ErrorAs(t, err, &decodeErr)
	assert.Equal(t, "lease.base_price", decodeErr.Key)
}

func TestResolveTypedMismatch(t *testing.T) {
	svc := newSettingsFixture()
	ctx := context.Background()

	mustSet(t, svc, "tax.type", "inclusive", models.DataTypeString, models.SettingScope{})

	_, err := svc.ResolveNumber(ctx, "tax.type", models.SettingScope{})
	var decodeErr *models.SettingDecodeError
	require.ErrorAs(t, err, &decodeErr)
}

func TestCategoryLifecycle(t *testing.T) {
	svc := newSettingsFixture()
	ctx := context.Background()

	category := &models.SettingCategory{Name: "PRICING", Description: "Price configuration"}
	require.NoError(t, svc.CreateCategory(ctx, category))
	require.False(t, category.ID.IsZero())

	err := svc.CreateCategory(ctx, &models.SettingCategory{Name: "PRICING"})
	var conflict *models.ConflictError
	require.ErrorAs(t, err, &conflict)

	// Settings may reference a category; an unknown one is rejected
	unknown := primitive.NewObjectID()
	_, err = svc.SetSetting(ctx, SetSettingRequest{
		Key: "lease.base_price", Value: 100, DataType: models.DataTypeNumber, CategoryID: &unknown,
	}, "admin")
	var notFound *models.NotFoundError
	require.ErrorAs(t, err, &notFound)

	setting, err := svc.SetSetting(ctx, SetSettingRequest{
		Key: "lease.base_price", Value: 100, DataType: models.DataTypeNumber, CategoryID: &category.ID,
	}, "admin")
	require.NoError(t, err)

	grouped, err := svc.ListSettingsByCategory(ctx, category.ID, 1, 50)
	require.NoError(t, err)
	require.Len(t, grouped, 1)
	assert.Equal(t, setting.ID, grouped[0].ID)
}
