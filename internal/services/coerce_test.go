package services

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/gasops/cylinder-backend/internal/models"
)

func TestCoerceNumber(t *testing.T) {
	cases := []struct {
		name string
		raw  interface{}
		want float64
	}{
		{"float64", 42.5, 42.5},
		{"int", 7, 7},
		{"int32", int32(7), 7},
		{"int64", int64(7), 7},
		{"json number", json.Number("99.25"), 99.25},
		{"numeric string", "150.75", 150.75},
		{"padded string", "  3 ", 3},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := coerceNumber(tc.raw)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}

	_, err := coerceNumber("not a number")
	assert.Error(t, err)
	_, err = coerceNumber(true)
	assert.Error(t, err)
}

func TestCoerceBool(t *testing.T) {
	cases := []struct {
		raw  interface{}
		want bool
	}{
		{true, true},
		{false, false},
		{"true", true},
		{"FALSE", false},
		{"yes", true},
		{"no", false},
		{"1", true},
		{"0", false},
		{float64(1), true},
		{float64(0), false},
	}
	for _, tc := range cases {
		got, err := coerceBool(tc.raw)
		require.NoError(t, err)
		assert.Equal(t, tc.want, got)
	}

	_, err := coerceBool("maybe")
	assert.Error(t, err)
	_, err = coerceBool(float64(2))
	assert.Error(t, err)
}

func TestCoerceJSONAndArray(t *testing.T) {
	decoded, err := coerceJSON(`{"tiers": [1, 2, 3]}`)
	require.NoError(t, err)
	m, ok := decoded.(map[string]interface{})
	require.True(t, ok)
	assert.Contains(t, m, "tiers")

	decoded, err = coerceJSON(primitive.M{"a": 1})
	require.NoError(t, err)
	assert.NotNil(t, decoded)

	_, err = coerceJSON("{broken")
	assert.Error(t, err)

	arr, err := coerceArray(`[10, 20]`)
	require.NoError(t, err)
	assert.Len(t, arr, 2)

	arr, err = coerceArray(primitive.A{"a", "b"})
	require.NoError(t, err)
	assert.Len(t, arr, 2)

	_, err = coerceArray(`{"not": "an array"}`)
	assert.Error(t, err)
}

func TestDecodeSettingValueError(t *testing.T) {
	setting := &models.Setting{
		Key:      "refill.price_per_kg",
		DataType: models.DataTypeNumber,
		Value:    "garbage",
	}
	_, err := decodeSettingValue(setting)
	require.Error(t, err)

	var decodeErr *models.SettingDecodeError
	require.ErrorAs(t, err, &decodeErr)
	assert.Equal(t, "refill.price_per_kg", decodeErr.Key)
	assert.Equal(t, models.DataTypeNumber, decodeErr.DataType)
}

func TestValidateSettingValue(t *testing.T) {
	canonical, err := validateSettingValue("lease.base_price", models.DataTypeNumber, "50")
	require.NoError(t, err)
	assert.Equal(t, float64(50), canonical)

	_, err = validateSettingValue("lease.base_price", models.DataTypeNumber, "fifty")
	var valErr *models.ValidationError
	require.ErrorAs(t, err, &valErr)

	_, err = validateSettingValue("some.key", models.SettingDataType("binary"), "x")
	require.ErrorAs(t, err, &valErr)
}
