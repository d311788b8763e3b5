package services

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/google/uuid"
	"golang.org/x/exp/slog"

	"github.com/gasops/cylinder-backend/internal/models"
)

// Setting keys consumed by the calculator. Base-price keys are required for
// their operation; the rest fall back to the documented defaults when no
// setting matches.
const (
	keyTaxRate            = "tax.rate"
	keyTaxType            = "tax.type"
	keyDiscountPercentage = "discount.percentage"
	keySwapFeePrefix      = "swap.fee."   // + condition, percent of subtotal
	keyReturnFeePrefix    = "return.fee." // + condition, percent of subtotal
)

// Default condition fees (percent), used when no setting overrides them
var (
	defaultSwapFees   = map[models.CylinderCondition]float64{models.ConditionGood: 0, models.ConditionPoor: 5, models.ConditionDamaged: 15}
	defaultReturnFees = map[models.CylinderCondition]float64{models.ConditionGood: 0, models.ConditionPoor: 10, models.ConditionDamaged: 25}
)

// Compile-time check to ensure PricingServiceImpl implements PricingService
var _ PricingService = (*PricingServiceImpl)(nil)

// PricingServiceImpl computes price breakdowns from resolved settings. It is
// stateless: every calculation re-reads the settings it needs, so results
// always reflect the store at call time.
type PricingServiceImpl struct {
	settings SettingsService
}

// NewPricingService creates a new PricingServiceImpl
func NewPricingService(settings SettingsService) *PricingServiceImpl {
	return &PricingServiceImpl{settings: settings}
}

// basePriceKey maps an operation type to its base-price setting key
func basePriceKey(op models.OperationType) string {
	switch op {
	case models.OperationLease:
		return "lease.base_price"
	case models.OperationRefill:
		return "refill.price_per_kg"
	case models.OperationSwap:
		return "swap.base_price"
	case models.OperationRegistration:
		return "registration.base_price"
	case models.OperationPenalty:
		return "penalty.base_price"
	case models.OperationDeposit:
		return "deposit.base_price"
	}
	return ""
}

// round2 rounds to the currency minor unit, half away from zero. Applied to
// every monetary intermediate so penny-level reconciliation is stable.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func validatePriceRequest(req models.PriceRequest, field func(string) string) error {
	if !req.OperationType.IsValid() {
		return models.NewValidationError(field("operationType"), fmt.Sprintf("unknown operation type %q", req.OperationType))
	}
	if req.Quantity <= 0 {
		return models.NewValidationError(field("quantity"), "quantity must be at least 1")
	}
	if req.OperationType == models.OperationRefill && req.GasAmount <= 0 {
		return models.NewValidationError(field("gasAmount"), "gasAmount must be positive for refill pricing")
	}
	if req.Condition != "" && !req.Condition.IsValid() {
		return models.NewValidationError(field("condition"), fmt.Sprintf("unknown cylinder condition %q", req.Condition))
	}
	if req.Duration < 0 {
		return models.NewValidationError(field("duration"), "duration must not be negative")
	}
	return nil
}

// CalculatePrice computes the full breakdown for one operation instance.
// A missing base price is a PricingConfigurationError naming the unresolved
// key; the calculator never guesses a price.
func (s *PricingServiceImpl) CalculatePrice(ctx context.Context, req models.PriceRequest) (*models.PricingResult, error) {
	if err := validatePriceRequest(req, func(f string) string { return f }); err != nil {
		return nil, err
	}

	opType := req.OperationType
	scope := models.SettingScope{
		OutletID:      req.OutletID,
		CylinderType:  req.CylinderType,
		OperationType: &opType,
	}

	basePrice, err := s.settings.ResolveNumber(ctx, basePriceKey(opType), scope)
	if err != nil {
		var notFound *models.NotFoundError
		if errors.As(err, &notFound) {
			return nil, &models.PricingConfigurationError{Key: basePriceKey(opType), Scope: scope}
		}
		return nil, err
	}

	// Per-unit amount, then scaled by quantity
	unit := basePrice
	switch opType {
	case models.OperationRefill:
		unit = basePrice * req.GasAmount
	case models.OperationLease:
		if req.Duration > 1 {
			unit = basePrice * float64(req.Duration)
		}
	}
	subtotal := round2(unit * float64(req.Quantity))

	discountPct, err := s.resolveNumberOrDefault(ctx, keyDiscountPercentage, scope, 0)
	if err != nil {
		return nil, err
	}
	discountAmount := round2(subtotal * discountPct / 100)

	surchargePct, surchargeLabel, err := s.resolveConditionFee(ctx, opType, req.Condition, scope)
	if err != nil {
		return nil, err
	}
	surchargeAmount := round2(subtotal * surchargePct / 100)

	adjusted := subtotal - discountAmount + surchargeAmount

	taxRate, err := s.resolveNumberOrDefault(ctx, keyTaxRate, scope, 0)
	if err != nil {
		return nil, err
	}
	// A negative rate would divide by zero in the inclusive carve-out
	if taxRate < 0 {
		return nil, &models.SettingDecodeError{Key: keyTaxRate, DataType: models.DataTypeNumber, RawValue: taxRate}
	}
	taxType, err := s.resolveTaxType(ctx, scope)
	if err != nil {
		return nil, err
	}

	var taxAmount, totalPrice float64
	switch taxType {
	case models.TaxExclusive:
		taxAmount = round2(adjusted * taxRate)
		totalPrice = round2(adjusted + taxAmount)
	case models.TaxInclusive:
		// Tax is carved out of the quoted amount, not added to it
		taxAmount = round2(adjusted - adjusted/(1+taxRate))
		totalPrice = round2(adjusted)
	}

	cylinderType := ""
	if req.CylinderType != nil {
		cylinderType = *req.CylinderType
	}

	result := &models.PricingResult{
		OperationType:   opType,
		CylinderType:    cylinderType,
		Quantity:        req.Quantity,
		BasePrice:       basePrice,
		Subtotal:        subtotal,
		DiscountAmount:  discountAmount,
		SurchargeAmount: surchargeAmount,
		TaxRate:         taxRate,
		TaxType:         taxType,
		TaxAmount:       taxAmount,
		TotalPrice:      totalPrice,
		Breakdown: []models.BreakdownLine{
			{Label: "base price", Amount: basePrice},
			{Label: "subtotal", Amount: subtotal},
		},
	}
	if discountAmount != 0 {
		result.Breakdown = append(result.Breakdown, models.BreakdownLine{Label: fmt.Sprintf("discount (%.2f%%)", discountPct), Amount: -discountAmount})
	}
	if surchargeAmount != 0 {
		result.Breakdown = append(result.Breakdown, models.BreakdownLine{Label: surchargeLabel, Amount: surchargeAmount})
	}
	result.Breakdown = append(result.Breakdown,
		models.BreakdownLine{Label: fmt.Sprintf("tax (%s, %.4f)", taxType, taxRate), Amount: taxAmount},
		models.BreakdownLine{Label: "total", Amount: totalPrice},
	)
	return result, nil
}

// CalculateBulkPrice prices a batch atomically. Every item is validated up
// front and the first invalid item fails the whole batch: a partially priced
// batch is worse than no batch.
func (s *PricingServiceImpl) CalculateBulkPrice(ctx context.Context, req models.BulkPriceRequest) (*models.BulkPricingResult, error) {
	if len(req.Items) == 0 {
		return nil, models.NewValidationError("items", "at least one item is required")
	}
	for i, item := range req.Items {
		idx := i
		if item.CylinderType == nil || *item.CylinderType == "" {
			return nil, models.NewValidationError(fmt.Sprintf("items[%d].cylinderType", idx), "cylinderType is required for bulk pricing")
		}
		if err := validatePriceRequest(item, func(f string) string { return fmt.Sprintf("items[%d].%s", idx, f) }); err != nil {
			return nil, err
		}
	}

	result := &models.BulkPricingResult{Items: make([]models.PricingResult, 0, len(req.Items))}
	for i, item := range req.Items {
		priced, err := s.CalculatePrice(ctx, item)
		if err != nil {
			return nil, fmt.Errorf("bulk item %d: %w", i, err)
		}
		result.Items = append(result.Items, *priced)
		result.TotalSubtotal = round2(result.TotalSubtotal + priced.Subtotal)
		result.TotalTax = round2(result.TotalTax + priced.TaxAmount)
		result.TotalPrice = round2(result.TotalPrice + priced.TotalPrice)
	}
	return result, nil
}

// GetQuote prices a request without persisting anything. The uuid reference
// lets a later receipt or support query correlate with the preview.
func (s *PricingServiceImpl) GetQuote(ctx context.Context, req models.PriceRequest) (*models.Quote, error) {
	result, err := s.CalculatePrice(ctx, req)
	if err != nil {
		return nil, err
	}
	return &models.Quote{
		Reference: uuid.NewString(),
		Result:    *result,
	}, nil
}

// CalculateRevenueProjection multiplies one unit's computed total by an
// estimated volume. This is a linear projection over a settings snapshot,
// not a statistical forecast, and must not be read as one.
func (s *PricingServiceImpl) CalculateRevenueProjection(ctx context.Context, opType models.OperationType, scope models.SettingScope, estimatedVolume int) (*models.ProjectionResult, error) {
	if estimatedVolume <= 0 {
		return nil, models.NewValidationError("estimatedVolume", "estimatedVolume must be at least 1")
	}
	req := models.PriceRequest{
		OperationType: opType,
		CylinderType:  scope.CylinderType,
		OutletID:      scope.OutletID,
		Quantity:      1,
	}
	if opType == models.OperationRefill {
		// A refill "unit" is one kilogram of gas
		req.GasAmount = 1
	}
	unit, err := s.CalculatePrice(ctx, req)
	if err != nil {
		return nil, err
	}
	projected := round2(unit.TotalPrice * float64(estimatedVolume))
	slog.Info("Revenue projection computed", "operationType", opType, "unitPrice", unit.TotalPrice, "estimatedVolume", estimatedVolume, "projectedTotal", projected)
	return &models.ProjectionResult{
		OperationType:   opType,
		UnitPrice:       unit.TotalPrice,
		EstimatedVolume: estimatedVolume,
		ProjectedTotal:  projected,
	}, nil
}

// resolveNumberOrDefault resolves an optional numeric setting. NotFound means
// the default applies; a decode failure still surfaces.
func (s *PricingServiceImpl) resolveNumberOrDefault(ctx context.Context, key string, scope models.SettingScope, def float64) (float64, error) {
	value, err := s.settings.ResolveNumber(ctx, key, scope)
	if err != nil {
		var notFound *models.NotFoundError
		if errors.As(err, &notFound) {
			return def, nil
		}
		return 0, err
	}
	return value, nil
}

// resolveConditionFee resolves the percentage fee for a cylinder condition:
// swap fees for SWAP, return fees for PENALTY. Operations without a
// condition dimension carry no surcharge.
func (s *PricingServiceImpl) resolveConditionFee(ctx context.Context, opType models.OperationType, condition models.CylinderCondition, scope models.SettingScope) (float64, string, error) {
	if condition == "" {
		return 0, "", nil
	}
	var key string
	var defaults map[models.CylinderCondition]float64
	switch opType {
	case models.OperationSwap:
		key = keySwapFeePrefix + string(condition)
		defaults = defaultSwapFees
	case models.OperationPenalty:
		key = keyReturnFeePrefix + string(condition)
		defaults = defaultReturnFees
	default:
		return 0, "", nil
	}
	pct, err := s.resolveNumberOrDefault(ctx, key, scope, defaults[condition])
	if err != nil {
		return 0, "", err
	}
	return pct, fmt.Sprintf("%s condition fee (%.2f%%)", condition, pct), nil
}

// resolveTaxType resolves tax.type, defaulting to exclusive. A stored value
// that is neither "inclusive" nor "exclusive" is corrupt configuration.
func (s *PricingServiceImpl) resolveTaxType(ctx context.Context, scope models.SettingScope) (models.TaxType, error) {
	raw, err := s.settings.ResolveString(ctx, keyTaxType, scope)
	if err != nil {
		var notFound *models.NotFoundError
		if errors.As(err, &notFound) {
			return models.TaxExclusive, nil
		}
		return "", err
	}
	switch models.TaxType(raw) {
	case models.TaxExclusive:
		return models.TaxExclusive, nil
	case models.TaxInclusive:
		return models.TaxInclusive, nil
	}
	return "", &models.SettingDecodeError{Key: keyTaxType, DataType: models.DataTypeString, RawValue: raw}
}
