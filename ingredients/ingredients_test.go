package ingredients

import (
	"testing"

	"mesa/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string     { return &s }
func floatPtr(f float64) *float64 { return &f }

func unitPtr(u models.MeasurementUnit) *models.MeasurementUnit { return &u }

func moneyPtr(t *testing.T, s string) *models.Money {
	t.Helper()
	m, err := models.MoneyFromString(s)
	require.NoError(t, err)
	return &m
}

func validPayload(t *testing.T) payload {
	return payload{
		Name:              strPtr("Salt"),
		AvailableQuantity: floatPtr(10),
		MeasurementUnit:   unitPtr(models.Grams),
		PricePerUnit:      moneyPtr(t, "0.50"),
	}
}

func TestValidateCreate(t *testing.T) {
	assert.Nil(t, validate(validPayload(t), false))
}

func TestValidateCreateMissingFields(t *testing.T) {
	errs := validate(payload{}, false)
	require.NotNil(t, errs)
	assert.Contains(t, errs, "name")
	assert.Contains(t, errs, "available_quantity")
	assert.Contains(t, errs, "measurement_unit")
	assert.Contains(t, errs, "price_per_unit")
}

func TestValidateNegativeQuantity(t *testing.T) {
	p := validPayload(t)
	p.AvailableQuantity = floatPtr(-1)
	errs := validate(p, false)
	require.NotNil(t, errs)
	assert.Contains(t, errs, "available_quantity")
}

func TestValidateZeroQuantityAllowed(t *testing.T) {
	p := validPayload(t)
	p.AvailableQuantity = floatPtr(0)
	assert.Nil(t, validate(p, false))
}

func TestValidatePrice(t *testing.T) {
	p := validPayload(t)
	p.PricePerUnit = moneyPtr(t, "0.00")
	errs := validate(p, false)
	require.NotNil(t, errs, "price must be strictly positive")
	assert.Contains(t, errs, "price_per_unit")

	p.PricePerUnit = moneyPtr(t, "-0.50")
	errs = validate(p, false)
	require.NotNil(t, errs)
	assert.Contains(t, errs, "price_per_unit")

	p.PricePerUnit = moneyPtr(t, "1000.00")
	errs = validate(p, false)
	require.NotNil(t, errs, "more than 5 digits in total must be rejected")
	assert.Contains(t, errs, "price_per_unit")

	p.PricePerUnit = moneyPtr(t, "999.99")
	assert.Nil(t, validate(p, false))
}

func TestValidateMeasurementUnit(t *testing.T) {
	p := validPayload(t)
	p.MeasurementUnit = unitPtr("gallons")
	errs := validate(p, false)
	require.NotNil(t, errs)
	assert.Contains(t, errs, "measurement_unit")
}

func TestValidateBlankName(t *testing.T) {
	p := validPayload(t)
	p.Name = strPtr("   ")
	errs := validate(p, false)
	require.NotNil(t, errs)
	assert.Contains(t, errs, "name")
}

func TestValidatePartialSkipsAbsentFields(t *testing.T) {
	assert.Nil(t, validate(payload{}, true))
	assert.Nil(t, validate(payload{Name: strPtr("Sea Salt")}, true))
}

func TestValidatePartialStillChecksSuppliedFields(t *testing.T) {
	errs := validate(payload{AvailableQuantity: floatPtr(-5)}, true)
	require.NotNil(t, errs)
	assert.Contains(t, errs, "available_quantity")

	errs = validate(payload{PricePerUnit: moneyPtr(t, "0.00")}, true)
	require.NotNil(t, errs)
	assert.Contains(t, errs, "price_per_unit")
}

func TestUpdateDocOnlySuppliedFields(t *testing.T) {
	doc := UpdateDoc(payload{Name: strPtr("Sea Salt")})
	assert.Len(t, doc, 1)
	assert.Equal(t, "Sea Salt", doc["name"])
	assert.NotContains(t, doc, "pricePerUnit")
	assert.NotContains(t, doc, "availableQuantity")
}

func TestUpdateDocNeverTouchesDateAdded(t *testing.T) {
	p := validPayload(t)
	expiry, err := models.ParseDate("2025-01-01")
	require.NoError(t, err)
	p.ExpiryDate = &expiry

	doc := UpdateDoc(p)
	assert.NotContains(t, doc, "dateAdded")
	assert.Contains(t, doc, "expiryDate")
	assert.Len(t, doc, 5)
}

func TestUpdateDocEmptyPayload(t *testing.T) {
	assert.Empty(t, UpdateDoc(payload{}))
}
