package purchases

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"mesa/db"
	"mesa/models"
	"mesa/mq"
	"mesa/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type payload struct {
	MenuItem     *string       `json:"menu_item"`
	Quantity     *int64        `json:"quantity"`
	CustomerName string        `json:"customer_name"`
	PurchaseDate *time.Time    `json:"purchase_date"`
	TotalPrice   *models.Money `json:"total_price"` // accepted but always overwritten
}

// TotalPrice is the only derived field in the system: menu item price times
// quantity, never what the client sent.
func TotalPrice(price models.Money, quantity int64) models.Money {
	return price.MulInt(quantity)
}

// StorePurchase checks that the referenced menu item exists before any field
// validation runs, so an unknown reference reads as not-found rather than a
// generic validation failure.
func StorePurchase(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var p payload
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if p.MenuItem == nil {
		utils.RespondWithFieldErrors(w, map[string]string{"menu_item": "This field is required."})
		return
	}

	menuItemID, err := primitive.ObjectIDFromHex(*p.MenuItem)
	if err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Menu item not found")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var item models.MenuItem
	if err := db.MenuItemCollection.FindOne(ctx, bson.M{"_id": menuItemID}).Decode(&item); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Menu item not found")
		return
	}

	if p.Quantity == nil {
		utils.RespondWithFieldErrors(w, map[string]string{"quantity": "This field is required."})
		return
	}
	if *p.Quantity < 1 {
		utils.RespondWithFieldErrors(w, map[string]string{"quantity": models.ErrInvalidQuantity.Error()})
		return
	}

	purchaseDate := time.Now().UTC()
	if p.PurchaseDate != nil {
		purchaseDate = p.PurchaseDate.UTC()
	}

	purchase := models.Purchase{
		MenuItem:     menuItemID,
		PurchaseDate: purchaseDate,
		CustomerName: strings.TrimSpace(p.CustomerName),
		Quantity:     *p.Quantity,
		TotalPrice:   TotalPrice(item.Price, *p.Quantity),
	}

	res, err := db.PurchaseCollection.InsertOne(ctx, purchase)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to store purchase")
		return
	}

	purchase.ID = res.InsertedID.(primitive.ObjectID)
	log.Printf("purchase %s created by user %s", purchase.ID.Hex(), utils.GetUserIDFromContext(r.Context()))
	mq.Emit("purchase", "created", purchase.ID.Hex())
	utils.RespondWithJSON(w, http.StatusCreated, purchase)
}

// Filter builds the combinable purchase filters. The date bounds only apply
// as a complete pair; a lone or malformed bound is dropped, not an error. An
// unparsable menu_item_id matches nothing, the same as an unknown id.
func Filter(query url.Values) bson.M {
	filter := bson.M{}

	if idStr := query.Get("menu_item_id"); idStr != "" {
		id, err := primitive.ObjectIDFromHex(idStr)
		if err != nil {
			id = primitive.NilObjectID
		}
		filter["menuItem"] = id
	}

	if name := query.Get("customer_name"); name != "" {
		filter["customerName"] = bson.M{"$regex": primitive.Regex{Pattern: name, Options: "i"}}
	}

	fromStr, toStr := query.Get("date_from"), query.Get("date_to")
	if fromStr != "" && toStr != "" {
		from, errFrom := models.ParseDate(fromStr)
		to, errTo := models.ParseDate(toStr)
		if errFrom == nil && errTo == nil {
			filter["purchaseDate"] = bson.M{
				"$gte": from.Time(),
				"$lt":  to.Time().AddDate(0, 0, 1),
			}
		}
	}

	return filter
}

// Sort honors only purchase_date (± prefix); everything else falls back to
// newest first.
func Sort(ordering string) bson.D {
	switch ordering {
	case "purchase_date":
		return bson.D{{Key: "purchaseDate", Value: 1}}
	case "-purchase_date":
		return bson.D{{Key: "purchaseDate", Value: -1}}
	}
	return bson.D{{Key: "purchaseDate", Value: -1}}
}

// GetPurchases lists purchases with the combinable filters applied,
// paginated.
func GetPurchases(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	filter := Filter(r.URL.Query())
	sort := Sort(r.URL.Query().Get("ordering"))

	count, err := db.PurchaseCollection.CountDocuments(ctx, filter)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch purchases")
		return
	}

	page := utils.ParsePage(r)
	findOpts := options.Find().
		SetSort(sort).
		SetSkip(page.Skip).
		SetLimit(page.Limit)

	cursor, err := db.PurchaseCollection.Find(ctx, filter, findOpts)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch purchases")
		return
	}
	defer cursor.Close(ctx)

	purchases := []models.Purchase{}
	if err := cursor.All(ctx, &purchases); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to decode purchases")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.Paginated(r, page, count, purchases))
}
