package menuitems

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strings"
	"time"

	"mesa/db"
	"mesa/models"
	"mesa/mq"
	"mesa/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type payload struct {
	Name  *string       `json:"name"`
	Price *models.Money `json:"price"`
}

func validate(p payload) map[string]string {
	errs := make(map[string]string)

	if p.Name == nil {
		errs["name"] = "This field is required."
	} else if strings.TrimSpace(*p.Name) == "" {
		errs["name"] = "This field may not be blank."
	}

	if p.Price == nil {
		errs["price"] = "This field is required."
	} else if p.Price.IsNegative() {
		errs["price"] = "Price must be greater than or equal to zero."
	} else if p.Price.Digits() > 4 {
		errs["price"] = "Ensure that there are no more than 6 digits in total."
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}

// SearchFilter builds the Mongo filter for the search parameter: a
// case-insensitive substring match on the item name. Empty search matches
// everything.
func SearchFilter(search string) bson.M {
	if search == "" {
		return bson.M{}
	}
	return bson.M{"itemName": bson.M{"$regex": primitive.Regex{Pattern: search, Options: "i"}}}
}

// Sort maps the ordering parameter onto a Mongo sort. Only price and
// item_name are honored, with an optional "-" prefix for descending;
// anything else silently falls back to insertion order.
func Sort(ordering string) bson.D {
	desc := false
	if strings.HasPrefix(ordering, "-") {
		desc = true
		ordering = ordering[1:]
	}

	var key string
	switch ordering {
	case "price":
		key = "price"
	case "item_name":
		key = "itemName"
	default:
		return bson.D{{Key: "_id", Value: 1}}
	}

	dir := 1
	if desc {
		dir = -1
	}
	return bson.D{{Key: key, Value: dir}}
}

// GetMenuItems is the plain authenticated listing with the same
// empty-collection semantics as the ingredient list.
func GetMenuItems(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	count, err := db.MenuItemCollection.CountDocuments(ctx, bson.M{})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch menu items")
		return
	}
	if count == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "No menu items found")
		return
	}

	page := utils.ParsePage(r)
	findOpts := options.Find().
		SetSort(bson.D{{Key: "_id", Value: 1}}).
		SetSkip(page.Skip).
		SetLimit(page.Limit)

	cursor, err := db.MenuItemCollection.Find(ctx, bson.M{}, findOpts)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch menu items")
		return
	}
	defer cursor.Close(ctx)

	items := []models.MenuItem{}
	if err := cursor.All(ctx, &items); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to decode menu items")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.Paginated(r, page, count, items))
}

// SearchMenuItems is the open listing with substring search and a restricted
// ordering key. Deliberately unauthenticated: it backs the public menu.
func SearchMenuItems(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	filter := SearchFilter(r.URL.Query().Get("search"))
	sort := Sort(r.URL.Query().Get("ordering"))

	count, err := db.MenuItemCollection.CountDocuments(ctx, filter)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch menu items")
		return
	}

	page := utils.ParsePage(r)
	findOpts := options.Find().
		SetSort(sort).
		SetSkip(page.Skip).
		SetLimit(page.Limit)

	cursor, err := db.MenuItemCollection.Find(ctx, filter, findOpts)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch menu items")
		return
	}
	defer cursor.Close(ctx)

	items := []models.MenuItem{}
	if err := cursor.All(ctx, &items); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to decode menu items")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.Paginated(r, page, count, items))
}

// StoreMenuItem validates and persists a new menu item. Name uniqueness is
// an exact, case-sensitive match.
func StoreMenuItem(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var p payload
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if errs := validate(p); errs != nil {
		utils.RespondWithFieldErrors(w, errs)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	count, err := db.MenuItemCollection.CountDocuments(ctx, bson.M{"itemName": *p.Name})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to store menu item")
		return
	}
	if count > 0 {
		utils.RespondWithFieldErrors(w, map[string]string{"name": "A menu item with this name already exists."})
		return
	}

	item := models.MenuItem{
		ItemName: *p.Name,
		Price:    *p.Price,
	}

	res, err := db.MenuItemCollection.InsertOne(ctx, item)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			utils.RespondWithFieldErrors(w, map[string]string{"name": "A menu item with this name already exists."})
			return
		}
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to store menu item")
		return
	}

	item.ID = res.InsertedID.(primitive.ObjectID)
	mq.Emit("menu_item", "created", item.ID.Hex())
	utils.RespondWithJSON(w, http.StatusCreated, item)
}

// DeleteMenuItem removes the item and cascades to the recipe requirements
// and purchases that reference it.
func DeleteMenuItem(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id, err := primitive.ObjectIDFromHex(ps.ByName("id"))
	if err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Menu item not found")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	res, err := db.MenuItemCollection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to delete menu item")
		return
	}
	if res.DeletedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "Menu item not found")
		return
	}

	if _, err := db.RequirementCollection.DeleteMany(ctx, bson.M{"menuItem": id}); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to delete dependent recipe requirements")
		return
	}
	if _, err := db.PurchaseCollection.DeleteMany(ctx, bson.M{"menuItem": id}); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to delete dependent purchases")
		return
	}

	log.Printf("menu item %s deleted by user %s", id.Hex(), utils.GetUserIDFromContext(r.Context()))
	mq.Emit("menu_item", "deleted", id.Hex())
	w.WriteHeader(http.StatusNoContent)
}
