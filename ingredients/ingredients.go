package ingredients

import (
	"context"
	"encoding/json"
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

// payload carries the client-supplied fields for create and partial update.
// Pointers distinguish "absent" from "zero" so PATCH only touches what was
// sent.
type payload struct {
	Name              *string                 `json:"name"`
	AvailableQuantity *float64                `json:"available_quantity"`
	MeasurementUnit   *models.MeasurementUnit `json:"measurement_unit"`
	PricePerUnit      *models.Money           `json:"price_per_unit"`
	ExpiryDate        *models.Date            `json:"expiry_date"`
}

// validate applies the per-field rules. With partial set, absent fields are
// skipped instead of reported as missing.
func validate(p payload, partial bool) map[string]string {
	errs := make(map[string]string)

	if p.Name == nil {
		if !partial {
			errs["name"] = "This field is required."
		}
	} else if strings.TrimSpace(*p.Name) == "" {
		errs["name"] = "This field may not be blank."
	}

	if p.AvailableQuantity == nil {
		if !partial {
			errs["available_quantity"] = "This field is required."
		}
	} else if *p.AvailableQuantity < 0 {
		errs["available_quantity"] = "Ensure this value is greater than or equal to 0."
	}

	if p.MeasurementUnit == nil {
		if !partial {
			errs["measurement_unit"] = "This field is required."
		}
	} else if !p.MeasurementUnit.Valid() {
		errs["measurement_unit"] = models.ErrInvalidUnit.Error()
	}

	if p.PricePerUnit == nil {
		if !partial {
			errs["price_per_unit"] = "This field is required."
		}
	} else if !p.PricePerUnit.IsPositive() {
		errs["price_per_unit"] = "Ensure this value is greater than or equal to 0.01."
	} else if p.PricePerUnit.Digits() > 3 {
		errs["price_per_unit"] = "Ensure that there are no more than 5 digits in total."
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}

// GetIngredients lists every ingredient, paginated. An entirely empty
// collection is a 404; once data exists any page, even an empty one past the
// end, is a 200.
func GetIngredients(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	count, err := db.IngredientCollection.CountDocuments(ctx, bson.M{})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch ingredients")
		return
	}
	if count == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "No ingredients found")
		return
	}

	page := utils.ParsePage(r)
	findOpts := options.Find().
		SetSort(bson.D{{Key: "_id", Value: 1}}).
		SetSkip(page.Skip).
		SetLimit(page.Limit)

	cursor, err := db.IngredientCollection.Find(ctx, bson.M{}, findOpts)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch ingredients")
		return
	}
	defer cursor.Close(ctx)

	ingredients := []models.Ingredient{}
	if err := cursor.All(ctx, &ingredients); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to decode ingredients")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.Paginated(r, page, count, ingredients))
}

// StoreIngredient validates and persists a new ingredient. date_added is
// stamped here and never changes afterwards.
func StoreIngredient(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var p payload
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if errs := validate(p, false); errs != nil {
		utils.RespondWithFieldErrors(w, errs)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	count, err := db.IngredientCollection.CountDocuments(ctx, bson.M{"name": *p.Name})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to store ingredient")
		return
	}
	if count > 0 {
		utils.RespondWithFieldErrors(w, map[string]string{"name": "An ingredient with this name already exists."})
		return
	}

	ingredient := models.Ingredient{
		Name:              *p.Name,
		AvailableQuantity: *p.AvailableQuantity,
		MeasurementUnit:   *p.MeasurementUnit,
		PricePerUnit:      *p.PricePerUnit,
		DateAdded:         models.Today(),
		ExpiryDate:        p.ExpiryDate,
	}

	res, err := db.IngredientCollection.InsertOne(ctx, ingredient)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			utils.RespondWithFieldErrors(w, map[string]string{"name": "An ingredient with this name already exists."})
			return
		}
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to store ingredient")
		return
	}

	ingredient.ID = res.InsertedID.(primitive.ObjectID)
	mq.Emit("ingredient", "created", ingredient.ID.Hex())
	utils.RespondWithJSON(w, http.StatusCreated, ingredient)
}

// UpdateIngredient applies a partial update: only the supplied fields are
// re-validated and written, everything else keeps its stored value.
func UpdateIngredient(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id, err := primitive.ObjectIDFromHex(ps.ByName("id"))
	if err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Ingredient not found")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var existing models.Ingredient
	if err := db.IngredientCollection.FindOne(ctx, bson.M{"_id": id}).Decode(&existing); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Ingredient not found")
		return
	}

	var p payload
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if errs := validate(p, true); errs != nil {
		utils.RespondWithFieldErrors(w, errs)
		return
	}

	updates := UpdateDoc(p)
	if p.Name != nil && *p.Name != existing.Name {
		count, err := db.IngredientCollection.CountDocuments(ctx, bson.M{"name": *p.Name})
		if err != nil {
			utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update ingredient")
			return
		}
		if count > 0 {
			utils.RespondWithFieldErrors(w, map[string]string{"name": "An ingredient with this name already exists."})
			return
		}
	}

	if len(updates) > 0 {
		if _, err := db.IngredientCollection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": updates}); err != nil {
			if mongo.IsDuplicateKeyError(err) {
				utils.RespondWithFieldErrors(w, map[string]string{"name": "An ingredient with this name already exists."})
				return
			}
			utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update ingredient")
			return
		}
	}

	var updated models.Ingredient
	if err := db.IngredientCollection.FindOne(ctx, bson.M{"_id": id}).Decode(&updated); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch updated ingredient")
		return
	}

	mq.Emit("ingredient", "updated", id.Hex())
	utils.RespondWithJSON(w, http.StatusOK, updated)
}

// UpdateDoc builds the $set document from the supplied fields only.
// date_added is deliberately absent: it is immutable after creation.
func UpdateDoc(p payload) bson.M {
	updates := bson.M{}
	if p.Name != nil {
		updates["name"] = *p.Name
	}
	if p.AvailableQuantity != nil {
		updates["availableQuantity"] = *p.AvailableQuantity
	}
	if p.MeasurementUnit != nil {
		updates["measurementUnit"] = *p.MeasurementUnit
	}
	if p.PricePerUnit != nil {
		updates["pricePerUnit"] = *p.PricePerUnit
	}
	if p.ExpiryDate != nil {
		updates["expiryDate"] = *p.ExpiryDate
	}
	return updates
}

// DeleteIngredient removes the ingredient and every recipe requirement that
// references it.
func DeleteIngredient(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id, err := primitive.ObjectIDFromHex(ps.ByName("id"))
	if err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Ingredient not found")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	res, err := db.IngredientCollection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to delete ingredient")
		return
	}
	if res.DeletedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "Ingredient not found")
		return
	}

	if _, err := db.RequirementCollection.DeleteMany(ctx, bson.M{"ingredient": id}); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to delete dependent recipe requirements")
		return
	}

	mq.Emit("ingredient", "deleted", id.Hex())
	w.WriteHeader(http.StatusNoContent)
}
