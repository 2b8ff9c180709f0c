package menuitems

import (
	"testing"

	"mesa/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func strPtr(s string) *string { return &s }

func moneyPtr(t *testing.T, s string) *models.Money {
	t.Helper()
	m, err := models.MoneyFromString(s)
	require.NoError(t, err)
	return &m
}

func TestValidate(t *testing.T) {
	assert.Nil(t, validate(payload{Name: strPtr("Veggie Salad"), Price: moneyPtr(t, "8.99")}))
}

func TestValidateZeroPriceAllowed(t *testing.T) {
	assert.Nil(t, validate(payload{Name: strPtr("Tap Water"), Price: moneyPtr(t, "0.00")}))
}

func TestValidateNegativePrice(t *testing.T) {
	errs := validate(payload{Name: strPtr("Soup"), Price: moneyPtr(t, "-1.00")})
	require.NotNil(t, errs)
	assert.Contains(t, errs, "price")
}

func TestValidatePriceTooManyDigits(t *testing.T) {
	errs := validate(payload{Name: strPtr("Caviar"), Price: moneyPtr(t, "10000.00")})
	require.NotNil(t, errs)
	assert.Contains(t, errs, "price")

	assert.Nil(t, validate(payload{Name: strPtr("Caviar"), Price: moneyPtr(t, "9999.99")}))
}

func TestValidateMissingFields(t *testing.T) {
	errs := validate(payload{})
	require.NotNil(t, errs)
	assert.Contains(t, errs, "name")
	assert.Contains(t, errs, "price")
}

func TestSearchFilter(t *testing.T) {
	assert.Equal(t, bson.M{}, SearchFilter(""))

	filter := SearchFilter("Chicken")
	regex, ok := filter["itemName"].(bson.M)["$regex"].(primitive.Regex)
	require.True(t, ok)
	assert.Equal(t, "Chicken", regex.Pattern)
	assert.Equal(t, "i", regex.Options, "search must be case-insensitive")
}

func TestSort(t *testing.T) {
	assert.Equal(t, bson.D{{Key: "price", Value: 1}}, Sort("price"))
	assert.Equal(t, bson.D{{Key: "price", Value: -1}}, Sort("-price"))
	assert.Equal(t, bson.D{{Key: "itemName", Value: 1}}, Sort("item_name"))
	assert.Equal(t, bson.D{{Key: "itemName", Value: -1}}, Sort("-item_name"))
}

func TestSortIgnoresUnknownKeys(t *testing.T) {
	fallback := bson.D{{Key: "_id", Value: 1}}
	assert.Equal(t, fallback, Sort(""))
	assert.Equal(t, fallback, Sort("photo"))
	assert.Equal(t, fallback, Sort("price; DROP TABLE"))
}
