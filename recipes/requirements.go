package recipes

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"mesa/db"
	"mesa/models"
	"mesa/mq"
	"mesa/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type payload struct {
	MenuItem   *string  `json:"menu_item"`
	Ingredient *string  `json:"ingredient"`
	Quantity   *float64 `json:"quantity"`
}

func validate(p payload) map[string]string {
	errs := make(map[string]string)

	if p.MenuItem == nil {
		errs["menu_item"] = "This field is required."
	} else if _, err := primitive.ObjectIDFromHex(*p.MenuItem); err != nil {
		errs["menu_item"] = "Invalid menu_item id."
	}

	if p.Ingredient == nil {
		errs["ingredient"] = "This field is required."
	} else if _, err := primitive.ObjectIDFromHex(*p.Ingredient); err != nil {
		errs["ingredient"] = "Invalid ingredient id."
	}

	if p.Quantity == nil {
		errs["quantity"] = "This field is required."
	} else if *p.Quantity < 0 {
		errs["quantity"] = "Ensure this value is greater than or equal to 0."
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}

// StoreRequirement links a menu item to an ingredient with a quantity. The
// (menu_item, ingredient) pair is unique; a duplicate is a validation error
// even when the quantity differs. The compound unique index makes the same
// guarantee hold under concurrent creates.
func StoreRequirement(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var p payload
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if errs := validate(p); errs != nil {
		utils.RespondWithFieldErrors(w, errs)
		return
	}

	menuItemID, _ := primitive.ObjectIDFromHex(*p.MenuItem)
	ingredientID, _ := primitive.ObjectIDFromHex(*p.Ingredient)

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if count, err := db.MenuItemCollection.CountDocuments(ctx, bson.M{"_id": menuItemID}); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to store recipe requirement")
		return
	} else if count == 0 {
		utils.RespondWithFieldErrors(w, map[string]string{"menu_item": "Menu item does not exist."})
		return
	}

	if count, err := db.IngredientCollection.CountDocuments(ctx, bson.M{"_id": ingredientID}); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to store recipe requirement")
		return
	} else if count == 0 {
		utils.RespondWithFieldErrors(w, map[string]string{"ingredient": "Ingredient does not exist."})
		return
	}

	if count, err := db.RequirementCollection.CountDocuments(ctx, bson.M{"menuItem": menuItemID, "ingredient": ingredientID}); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to store recipe requirement")
		return
	} else if count > 0 {
		utils.RespondWithError(w, http.StatusBadRequest, models.ErrDuplicatePair.Error())
		return
	}

	requirement := models.RecipeRequirement{
		MenuItem:   menuItemID,
		Ingredient: ingredientID,
		Quantity:   *p.Quantity,
	}

	res, err := db.RequirementCollection.InsertOne(ctx, requirement)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			utils.RespondWithError(w, http.StatusBadRequest, models.ErrDuplicatePair.Error())
			return
		}
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to store recipe requirement")
		return
	}

	requirement.ID = res.InsertedID.(primitive.ObjectID)
	mq.Emit("recipe_requirement", "created", requirement.ID.Hex())
	utils.RespondWithJSON(w, http.StatusCreated, requirement)
}
