package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/gasops/cylinder-backend/internal/models"
)

func newPricingFixture() (*SettingsServiceImpl, *PricingServiceImpl) {
	settings := newSettingsFixture()
	return settings, NewPricingService(settings)
}

func seedNumber(t *testing.T, settings *SettingsServiceImpl, key string, value float64, scope models.SettingScope) {
	t.Helper()
	mustSet(t, settings, key, value, models.DataTypeNumber, scope)
}

func TestCalculatePriceExclusiveTax(t *testing.T) {
	settings, pricing := newPricingFixture()
	ctx := context.Background()

	seedNumber(t, settings, "lease.base_price", 50, models.SettingScope{})
	seedNumber(t, settings, "tax.rate", 0.075, models.SettingScope{})

	result, err := pricing.CalculatePrice(ctx, models.PriceRequest{
		OperationType: models.OperationLease,
		CylinderType:  strPtr("12kg"),
		Quantity:      2,
	})
	require.NoError(t, err)

	assert.Equal(t, float64(50), result.BasePrice)
	assert.InDelta(t, 100, result.Subtotal, 1e-9)
	assert.InDelta(t, 7.5, result.TaxAmount, 1e-9)
	assert.InDelta(t, 107.5, result.TotalPrice, 1e-9)
	assert.Equal(t, models.TaxExclusive, result.TaxType)
	assert.NotEmpty(t, result.Breakdown)
}

func TestCalculatePriceInclusiveTax(t *testing.T) {
	settings, pricing := newPricingFixture()
	ctx := context.Background()

	seedNumber(t, settings, "lease.base_price", 50, models.SettingScope{})
	seedNumber(t, settings, "tax.rate", 0.075, models.SettingScope{})
	mustSet(t, settings, "tax.type", "inclusive", models.DataTypeString, models.SettingScope{})

	result, err := pricing.CalculatePrice(ctx, models.PriceRequest{
		OperationType: models.OperationLease,
		Quantity:      2,
	})
	require.NoError(t, err)

	// Inclusive tax is carved out of the quoted amount, not added to it
	assert.InDelta(t, 100, result.Subtotal, 1e-9)
	assert.InDelta(t, 100, result.TotalPrice, 1e-9)
	assert.InDelta(t, 6.98, result.TaxAmount, 1e-9)
	assert.Equal(t, models.TaxInclusive, result.TaxType)
}

func TestCalculatePriceRejectsNegativeTaxRate(t *testing.T) {
	settings, pricing := newPricingFixture()
	ctx := context.Background()

	seedNumber(t, settings, "lease.base_price", 50, models.SettingScope{})
	seedNumber(t, settings, "tax.rate", -1, models.SettingScope{})
	mustSet(t, settings, "tax.type", "inclusive", models.DataTypeString, models.SettingScope{})

	_, err := pricing.CalculatePrice(ctx, models.PriceRequest{
		OperationType: models.OperationLease,
		Quantity:      1,
	})
	var decodeErr *models.SettingDecodeError
	require.ErrorAs(t, err, &decodeErr)
	assert.Equal(t, "tax.rate", decodeErr.Key)
}

func TestCalculatePriceRefillScalesByGasAmount(t *testing.T) {
	settings, pricing := newPricingFixture()
	ctx := context.Background()

	seedNumber(t, settings, "refill.price_per_kg", 10, models.SettingScope{})

	result, err := pricing.CalculatePrice(ctx, models.PriceRequest{
		OperationType: models.OperationRefill,
		Quantity:      2,
		GasAmount:     12.5,
	})
	require.NoError(t, err)
	assert.InDelta(t, 250, result.Subtotal, 1e-9)
	assert.InDelta(t, 250, result.TotalPrice, 1e-9)
}

func TestCalculatePriceLeaseDurationMultiplies(t *testing.T) {
	settings, pricing := newPricingFixture()
	ctx := context.Background()

	seedNumber(t, settings, "lease.base_price", 50, models.SettingScope{})

	result, err := pricing.CalculatePrice(ctx, models.PriceRequest{
		OperationType: models.OperationLease,
		Quantity:      1,
		Duration:      3,
	})
	require.NoError(t, err)
	assert.InDelta(t, 150, result.Subtotal, 1e-9)
}

func TestCalculatePriceSwapConditionFee(t *testing.T) {
	settings, pricing := newPricingFixture()
	ctx := context.Background()

	seedNumber(t, settings, "swap.base_price", 200, models.SettingScope{})

	// Damaged swap carries the default 15% condition fee
	result, err := pricing.CalculatePrice(ctx, models.PriceRequest{
		OperationType: models.OperationSwap,
		Quantity:      1,
		Condition:     models.ConditionDamaged,
	})
	require.NoError(t, err)
	assert.InDelta(t, 200, result.Subtotal, 1e-9)
	assert.InDelta(t, 30, result.SurchargeAmount, 1e-9)
	assert.InDelta(t, 230, result.TotalPrice, 1e-9)

	// A good-condition swap carries no fee
	result, err = pricing.CalculatePrice(ctx, models.PriceRequest{
		OperationType: models.OperationSwap,
		Quantity:      1,
		Condition:     models.ConditionGood,
	})
	require.NoError(t, err)
	assert.InDelta(t, 0, result.SurchargeAmount, 1e-9)
	assert.InDelta(t, 200, result.TotalPrice, 1e-9)

	// A configured fee overrides the default
	seedNumber(t, settings, "swap.fee.damaged", 20, models.SettingScope{})
	result, err = pricing.CalculatePrice(ctx, models.PriceRequest{
		OperationType: models.OperationSwap,
		Quantity:      1,
		Condition:     models.ConditionDamaged,
	})
	require.NoError(t, err)
	assert.InDelta(t, 40, result.SurchargeAmount, 1e-9)
}

func TestCalculatePricePenaltyReturnFee(t *testing.T) {
	settings, pricing := newPricingFixture()
	ctx := context.Background()

	seedNumber(t, settings, "penalty.base_price", 100, models.SettingScope{})

	result, err := pricing.CalculatePrice(ctx, models.PriceRequest{
		OperationType: models.OperationPenalty,
		Quantity:      1,
		Condition:     models.ConditionDamaged,
	})
	require.NoError(t, err)
	assert.InDelta(t, 25, result.SurchargeAmount, 1e-9)
	assert.InDelta(t, 125, result.TotalPrice, 1e-9)
}

func TestCalculatePriceDiscount(t *testing.T) {
	settings, pricing := newPricingFixture()
	ctx := context.Background()

	seedNumber(t, settings, "lease.base_price", 50, models.SettingScope{})
	seedNumber(t, settings, "discount.percentage", 10, models.SettingScope{})

	result, err := pricing.CalculatePrice(ctx, models.PriceRequest{
		OperationType: models.OperationLease,
		Quantity:      2,
	})
	require.NoError(t, err)
	assert.InDelta(t, 100, result.Subtotal, 1e-9)
	assert.InDelta(t, 10, result.DiscountAmount, 1e-9)
	assert.InDelta(t, 90, result.TotalPrice, 1e-9)
}

func TestCalculatePriceScopedOverride(t *testing.T) {
	settings, pricing := newPricingFixture()
	ctx := context.Background()
	outletID := primitive.NewObjectID()

	seedNumber(t, settings, "lease.base_price", 50, models.SettingScope{})
	seedNumber(t, settings, "lease.base_price", 60, models.SettingScope{OutletID: &outletID})

	result, err := pricing.CalculatePrice(ctx, models.PriceRequest{
		OperationType: models.OperationLease,
		OutletID:      &outletID,
		Quantity:      1,
	})
	require.NoError(t, err)
	assert.Equal(t, float64(60), result.BasePrice)

	result, err = pricing.CalculatePrice(ctx, models.PriceRequest{
		OperationType: models.OperationLease,
		Quantity:      1,
	})
	require.NoError(t, err)
	assert.Equal(t, float64(50), result.BasePrice)
}

func TestCalculatePriceMissingBasePrice(t *testing.T) {
	_, pricing := newPricingFixture()

	_, err := pricing.CalculatePrice(context.Background(), models.PriceRequest{
		OperationType: models.OperationLease,
		Quantity:      1,
	})
	var cfgErr *models.PricingConfigurationError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, "lease.base_price", cfgErr.Key)
}

func TestCalculatePriceValidation(t *testing.T) {
	settings, pricing := newPricingFixture()
	ctx := context.Background()
	seedNumber(t, settings, "refill.price_per_kg", 10, models.SettingScope{})
	var valErr *models.ValidationError

	_, err := pricing.CalculatePrice(ctx, models.PriceRequest{OperationType: "RESALE", Quantity: 1})
	require.ErrorAs(t, err, &valErr)

	_, err = pricing.CalculatePrice(ctx, models.PriceRequest{OperationType: models.OperationRefill, Quantity: 0, GasAmount: 5})
	require.ErrorAs(t, err, &valErr)

	_, err = pricing.CalculatePrice(ctx, models.PriceRequest{OperationType: models.OperationRefill, Quantity: 1})
	require.ErrorAs(t, err, &valErr)

	// TRANSFER moves stock and is never priced
	_, err = pricing.CalculatePrice(ctx, models.PriceRequest{OperationType: models.OperationTransfer, Quantity: 1})
	require.ErrorAs(t, err, &valErr)
}

func TestCalculateBulkPriceAtomicValidation(t *testing.T) {
	settings, pricing := newPricingFixture()
	ctx := context.Background()
	seedNumber(t, settings, "lease.base_price", 50, models.SettingScope{})

	items := make([]models.PriceRequest, 5)
	for i := range items {
		items[i] = models.PriceRequest{
			OperationType: models.OperationLease,
			CylinderType:  strPtr("12kg"),
			Quantity:      1,
		}
	}
	items[2].Quantity = 0

	result, err := pricing.CalculateBulkPrice(ctx, models.BulkPriceRequest{Items: items})
	require.Error(t, err)
	assert.Nil(t, result)

	var valErr *models.ValidationError
	require.ErrorAs(t, err, &valErr)
	assert.Equal(t, "items[2].quantity", valErr.Field)
}

func TestCalculateBulkPriceTotals(t *testing.T) {
	settings, pricing := newPricingFixture()
	ctx := context.Background()
	seedNumber(t, settings, "lease.base_price", 50, models.SettingScope{})
	seedNumber(t, settings, "refill.price_per_kg", 10, models.SettingScope{})
	seedNumber(t, settings, "tax.rate", 0.1, models.SettingScope{})

	result, err := pricing.CalculateBulkPrice(ctx, models.BulkPriceRequest{Items: []models.PriceRequest{
		{OperationType: models.OperationLease, CylinderType: strPtr("12kg"), Quantity: 2},
		{OperationType: models.OperationRefill, CylinderType: strPtr("12kg"), Quantity: 1, GasAmount: 10},
	}})
	require.NoError(t, err)
	require.Len(t, result.Items, 2)
	assert.InDelta(t, 200, result.TotalSubtotal, 1e-9)
	assert.InDelta(t, 20, result.TotalTax, 1e-9)
	assert.InDelta(t, 220, result.TotalPrice, 1e-9)
}

func TestCalculateBulkPriceRequiresCylinderType(t *testing.T) {
	settings, pricing := newPricingFixture()
	seedNumber(t, settings, "lease.base_price", 50, models.SettingScope{})

	_, err := pricing.CalculateBulkPrice(context.Background(), models.BulkPriceRequest{Items: []models.PriceRequest{
		{OperationType: models.OperationLease, Quantity: 1},
	}})
	var valErr *models.ValidationError
	require.ErrorAs(t, err, &valErr)
	assert.Equal(t, "items[0].cylinderType", valErr.Field)

	_, err = pricing.CalculateBulkPrice(context.Background(), models.BulkPriceRequest{Items: nil})
	require.ErrorAs(t, err, &valErr)
}

func TestGetQuote(t *testing.T) {
	settings, pricing := newPricingFixture()
	ctx := context.Background()
	seedNumber(t, settings, "swap.base_price", 200, models.SettingScope{})

	quote, err := pricing.GetQuote(ctx, models.PriceRequest{
		OperationType: models.OperationSwap,
		Quantity:      1,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, quote.Reference)
	assert.InDelta(t, 200, quote.Result.TotalPrice, 1e-9)

	// Each quote carries a fresh reference
	again, err := pricing.GetQuote(ctx, models.PriceRequest{
		OperationType: models.OperationSwap,
		Quantity:      1,
	})
	require.NoError(t, err)
	assert.NotEqual(t, quote.Reference, again.Reference)
}

func TestCalculateRevenueProjection(t *testing.T) {
	settings, pricing := newPricingFixture()
	ctx := context.Background()
	seedNumber(t, settings, "refill.price_per_kg", 10, models.SettingScope{})

	projection, err := pricing.CalculateRevenueProjection(ctx, models.OperationRefill, models.SettingScope{}, 100)
	require.NoError(t, err)
	assert.InDelta(t, 10, projection.UnitPrice, 1e-9)
	assert.Equal(t, 100, projection.EstimatedVolume)
	assert.InDelta(t, 1000, projection.ProjectedTotal, 1e-9)

	_, err = pricing.CalculateRevenueProjection(ctx, models.OperationRefill, models.SettingScope{}, 0)
	var valErr *models.ValidationError
	require.ErrorAs(t, err, &valErr)
}

func TestRound2(t *testing.T) {
	assert.Equal(t, 7.5, round2(7.4999999999))
	assert.Equal(t, 1.01, round2(1.005000001))
	assert.Equal(t, -2.35, round2(-2.345000001))
	assert.Equal(t, 0.0, round2(0))
}
