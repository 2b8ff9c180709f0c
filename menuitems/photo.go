package menuitems

import (
	"context"
	"net/http"
	"time"

	"mesa/db"
	"mesa/mq"
	"mesa/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const photoDir = "./static/menupic"

// UploadPhoto attaches an image to a menu item. The original and a 256px
// thumbnail land under static/menupic, served by the static file routes.
func UploadPhoto(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id, err := primitive.ObjectIDFromHex(ps.ByName("id"))
	if err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Menu item not found")
		return
	}

	if err := r.ParseMultipartForm(10 << 20); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Failed to parse form")
		return
	}

	file, header, err := r.FormFile("photo")
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Missing photo file")
		return
	}
	defer file.Close()

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	count, err := db.MenuItemCollection.CountDocuments(ctx, bson.M{"_id": id})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch menu item")
		return
	}
	if count == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "Menu item not found")
		return
	}

	name, err := utils.SaveImage(file, header, photoDir)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	if _, err := db.MenuItemCollection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"photo": name}}); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update menu item")
		return
	}

	mq.Emit("menu_item", "updated", id.Hex())
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"photo": name})
}
