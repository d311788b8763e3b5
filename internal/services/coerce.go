package services

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/gasops/cylinder-backend/internal/models"
)

// decodeSettingValue coerces a stored raw value into the type declared by the
// setting. A value that cannot be coerced is a SettingDecodeError: it marks
// corrupt data and must surface, never degrade to a default.
func decodeSettingValue(setting *models.Setting) (interface{}, error) {
	decoded, err := coerceValue(setting.DataType, setting.Value)
	if err != nil {
		return nil, &models.SettingDecodeError{
			Key:      setting.Key,
			DataType: setting.DataType,
			RawValue: setting.Value,
		}
	}
	return decoded, nil
}

// validateSettingValue checks a proposed value against a data type at write
// time and returns the canonical form to store.
func validateSettingValue(key string, dataType models.SettingDataType, raw interface{}) (interface{}, error) {
	if !dataType.IsValid() {
		return nil, models.NewValidationError("dataType", fmt.Sprintf("unknown data type %q", dataType))
	}
	canonical, err := coerceValue(dataType, raw)
	if err != nil {
		return nil, models.NewValidationError("value", fmt.Sprintf("value %v is not coercible to %s for key %q", raw, dataType, key))
	}
	return canonical, nil
}

func coerceValue(dataType models.SettingDataType, raw interface{}) (interface{}, error) {
	switch dataType {
	case models.DataTypeNumber:
		return coerceNumber(raw)
	case models.DataTypeBoolean:
		return coerceBool(raw)
	case models.DataTypeString:
		return coerceString(raw), nil
	case models.DataTypeJSON:
		return coerceJSON(raw)
	case models.DataTypeArray:
		return coerceArray(raw)
	}
	return nil, fmt.Errorf("unsupported data type %q", dataType)
}

// coerceNumber accepts the numeric kinds the BSON and JSON decoders produce,
// plus numeric strings. Everything lands on float64.
func coerceNumber(raw interface{}) (float64, error) {
	switch v := raw.(type) {
	case float64:
		return v, nil
	case float32:
		return float64(v), nil
	case int:
		return float64(v), nil
	case int32:
		return float64(v), nil
	case int64:
		return float64(v), nil
	case json.Number:
		return v.Float64()
	case primitive.Decimal128:
		f, err := strconv.ParseFloat(v.String(), 64)
		if err != nil {
			return 0, fmt.Errorf("decimal128 %q is not a number", v.String())
		}
		return f, nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0, fmt.Errorf("string %q is not a number", v)
		}
		return f, nil
	}
	return 0, fmt.Errorf("%T is not a number", raw)
}

func coerceBool(raw interface{}) (bool, error) {
	switch v := raw.(type) {
	case bool:
		return v, nil
	case string:
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "true", "1", "yes":
			return true, nil
		case "false", "0", "no":
			return false, nil
		}
		return false, fmt.Errorf("string %q is not a boolean", v)
	case float64:
		if v == 0 || v == 1 {
			return v == 1, nil
		}
	case int:
		if v == 0 || v == 1 {
			return v == 1, nil
		}
	case int32:
		if v == 0 || v == 1 {
			return v == 1, nil
		}
	case int64:
		if v == 0 || v == 1 {
			return v == 1, nil
		}
	}
	return false, fmt.Errorf("%T is not a boolean", raw)
}

func coerceString(raw interface{}) string {
	if s, ok := raw.(string); ok {
		return s
	}
	return fmt.Sprintf("%v", raw)
}

// coerceJSON accepts structured data directly (maps, slices, BSON documents)
// or a string holding a JSON document.
func coerceJSON(raw interface{}) (interface{}, error) {
	switch v := raw.(type) {
	case string:
		var decoded interface{}
		if err := json.Unmarshal([]byte(v), &decoded); err != nil {
			return nil, fmt.Errorf("string is not valid JSON: %w", err)
		}
		return decoded, nil
	case map[string]interface{}, primitive.M, primitive.D, []interface{}, primitive.A:
		return v, nil
	case nil:
		return nil, fmt.Errorf("nil is not a JSON value")
	}
	return nil, fmt.Errorf("%T is not a JSON value", raw)
}

// coerceArray is coerceJSON with the extra requirement that the decoded value
// is a sequence.
func coerceArray(raw interface{}) ([]interface{}, error) {
	decoded, err := coerceJSON(raw)
	if err != nil {
		return nil, err
	}
	switch v := decoded.(type) {
	case []interface{}:
		return v, nil
	case primitive.A:
		return []interface{}(v), nil
	}
	return nil, fmt.Errorf("%T is not an array", decoded)
}
