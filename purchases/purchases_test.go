package purchases

import (
	"net/url"
	"testing"
	"time"

	"mesa/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func money(t *testing.T, s string) models.Money {
	t.Helper()
	m, err := models.MoneyFromString(s)
	require.NoError(t, err)
	return m
}

func TestTotalPrice(t *testing.T) {
	assert.Equal(t, "30.00", TotalPrice(money(t, "10.00"), 3).String())
	assert.Equal(t, "7.49", TotalPrice(money(t, "7.49"), 1).String())
	assert.Equal(t, "21.98", TotalPrice(money(t, "10.99"), 2).String())
	assert.Equal(t, "0.00", TotalPrice(money(t, "0.00"), 5).String())
}

func TestFilterEmpty(t *testing.T) {
	assert.Equal(t, bson.M{}, Filter(url.Values{}))
}

func TestFilterMenuItemID(t *testing.T) {
	id := primitive.NewObjectID()
	filter := Filter(url.Values{"menu_item_id": {id.Hex()}})
	assert.Equal(t, id, filter["menuItem"])
}

func TestFilterInvalidMenuItemIDMatchesNothing(t *testing.T) {
	filter := Filter(url.Values{"menu_item_id": {"9999"}})
	assert.Equal(t, primitive.NilObjectID, filter["menuItem"])
}

func TestFilterCustomerName(t *testing.T) {
	filter := Filter(url.Values{"customer_name": {"ali"}})
	regex, ok := filter["customerName"].(bson.M)["$regex"].(primitive.Regex)
	require.True(t, ok)
	assert.Equal(t, "ali", regex.Pattern)
	assert.Equal(t, "i", regex.Options)
}

func TestFilterDateRange(t *testing.T) {
	filter := Filter(url.Values{
		"date_from": {"2025-01-01"},
		"date_to":   {"2025-01-31"},
	})
	rng, ok := filter["purchaseDate"].(bson.M)
	require.True(t, ok)
	assert.Equal(t, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), rng["$gte"])
	// inclusive upper bound: anything before midnight of the next day
	assert.Equal(t, time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC), rng["$lt"])
}

func TestFilterLoneDateBoundIgnored(t *testing.T) {
	assert.NotContains(t, Filter(url.Values{"date_from": {"2025-01-01"}}), "purchaseDate")
	assert.NotContains(t, Filter(url.Values{"date_to": {"2025-01-31"}}), "purchaseDate")
}

func TestFilterMalformedDatesIgnored(t *testing.T) {
	filter := Filter(url.Values{
		"date_from": {"01/01/2025"},
		"date_to":   {"2025-01-31"},
	})
	assert.NotContains(t, filter, "purchaseDate")
}

func TestFiltersCombine(t *testing.T) {
	id := primitive.NewObjectID()
	filter := Filter(url.Values{
		"menu_item_id":  {id.Hex()},
		"customer_name": {"smith"},
		"date_from":     {"2025-01-01"},
		"date_to":       {"2025-12-31"},
	})
	assert.Len(t, filter, 3)
}

func TestSort(t *testing.T) {
	assert.Equal(t, bson.D{{Key: "purchaseDate", Value: 1}}, Sort("purchase_date"))
	assert.Equal(t, bson.D{{Key: "purchaseDate", Value: -1}}, Sort("-purchase_date"))
}

func TestSortIgnoresUnknownKeys(t *testing.T) {
	fallback := bson.D{{Key: "purchaseDate", Value: -1}}
	assert.Equal(t, fallback, Sort(""))
	assert.Equal(t, fallback, Sort("total_price"))
	assert.Equal(t, fallback, Sort("customer_name"))
}
