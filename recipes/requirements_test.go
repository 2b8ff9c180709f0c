package recipes

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func strPtr(s string) *string     { return &s }
func floatPtr(f float64) *float64 { return &f }

func TestValidate(t *testing.T) {
	p := payload{
		MenuItem:   strPtr(primitive.NewObjectID().Hex()),
		Ingredient: strPtr(primitive.NewObjectID().Hex()),
		Quantity:   floatPtr(2.5),
	}
	assert.Nil(t, validate(p))
}

func TestValidateZeroQuantityAllowed(t *testing.T) {
	p := payload{
		MenuItem:   strPtr(primitive.NewObjectID().Hex()),
		Ingredient: strPtr(primitive.NewObjectID().Hex()),
		Quantity:   floatPtr(0),
	}
	assert.Nil(t, validate(p))
}

func TestValidateMissingFields(t *testing.T) {
	errs := validate(payload{})
	require.NotNil(t, errs)
	assert.Contains(t, errs, "menu_item")
	assert.Contains(t, errs, "ingredient")
	assert.Contains(t, errs, "quantity")
}

func TestValidateMalformedIDs(t *testing.T) {
	p := payload{
		MenuItem:   strPtr("9999"),
		Ingredient: strPtr("not-an-id"),
		Quantity:   floatPtr(1),
	}
	errs := validate(p)
	require.NotNil(t, errs)
	assert.Contains(t, errs, "menu_item")
	assert.Contains(t, errs, "ingredient")
}

func TestValidateNegativeQuantity(t *testing.T) {
	p := payload{
		MenuItem:   strPtr(primitive.NewObjectID().Hex()),
		Ingredient: strPtr(primitive.NewObjectID().Hex()),
		Quantity:   floatPtr(-1),
	}
	errs := validate(p)
	require.NotNil(t, errs)
	assert.Contains(t, errs, "quantity")
}
