package auth

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strings"
	"time"

	"mesa/db"
	"mesa/globals"
	"mesa/models"
	"mesa/mq"
	"mesa/rdx"
	"mesa/utils"

	"github.com/google/uuid"
	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"
)

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func validateLogin(req loginRequest) map[string]string {
	errs := make(map[string]string)
	if strings.TrimSpace(req.Username) == "" {
		errs["username"] = "This field is required."
	}
	if req.Password == "" {
		errs["password"] = "This field is required."
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

func badCredentials(w http.ResponseWriter) {
	utils.RespondWithJSON(w, http.StatusUnauthorized, utils.M{
		"success": false,
		"message": "Bad credentials.",
		"code":    "bad_credentials",
		"status":  http.StatusUnauthorized,
		"data":    utils.M{},
	})
}

// Login validates the payload shape first, then looks the user up by
// lowercased username. Unknown users and wrong passwords produce the same
// response so usernames cannot be enumerated.
func Login(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithJSON(w, http.StatusBadRequest, utils.M{
			"success": false,
			"message": "Request is invalid.",
			"code":    "request_invalid",
			"status":  http.StatusBadRequest,
			"data":    utils.M{"detail": "malformed JSON body"},
		})
		return
	}
	if errs := validateLogin(req); errs != nil {
		utils.RespondWithJSON(w, http.StatusBadRequest, utils.M{
			"success": false,
			"message": "Request is invalid.",
			"code":    "request_invalid",
			"status":  http.StatusBadRequest,
			"data":    errs,
		})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var user models.User
	err := db.UserCollection.FindOne(ctx, bson.M{"username": strings.ToLower(req.Username)}).Decode(&user)
	if err != nil {
		log.Printf("login attempt with non-existing username: %s", req.Username)
		badCredentials(w)
		return
	}

	if bcrypt.CompareHashAndPassword(user.PasswordHash, []byte(req.Password)) != nil {
		log.Printf("login attempt with bad password for username: %s", req.Username)
		badCredentials(w)
		return
	}

	token, err := getOrCreateToken(ctx, user)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to issue token")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"success": true,
		"message": "User logged in successfully.",
		"status":  http.StatusOK,
		"data": utils.M{
			"token":      token.Key,
			"id":         user.ID.Hex(),
			"username":   user.Username,
			"email":      user.Email,
			"first_name": user.FirstName,
			"last_name":  user.LastName,
		},
	})
}

// getOrCreateToken returns the user's persistent token, minting one only on
// first login. The unique index on userId settles the race between two
// concurrent first logins; the loser re-reads the winner's token.
func getOrCreateToken(ctx context.Context, user models.User) (models.Token, error) {
	var token models.Token
	err := db.TokenCollection.FindOne(ctx, bson.M{"userId": user.ID}).Decode(&token)
	if err == nil {
		return token, nil
	}
	if err != mongo.ErrNoDocuments {
		return models.Token{}, err
	}

	token = models.Token{
		Key:       uuid.NewString(),
		UserID:    user.ID,
		CreatedAt: time.Now().UTC(),
	}
	if _, err := db.TokenCollection.InsertOne(ctx, token); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			err = db.TokenCollection.FindOne(ctx, bson.M{"userId": user.ID}).Decode(&token)
			return token, err
		}
		return models.Token{}, err
	}

	rdx.CacheToken(ctx, token.Key, user.ID.Hex())
	return token, nil
}

// Logout revokes the caller's token so the next login mints a fresh one.
func Logout(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	key, _ := r.Context().Value(globals.TokenKey).(string)
	if key == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "No token")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if _, err := db.TokenCollection.DeleteOne(ctx, bson.M{"key": key}); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to revoke token")
		return
	}
	rdx.DropToken(ctx, key)
	mq.Emit("token", "deleted", key)

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"success": true, "message": "Logged out."})
}

// EnsureAdminUser creates the bootstrap user from the environment when it
// does not exist yet. Safe to call on every startup.
func EnsureAdminUser(ctx context.Context, username, password string) error {
	if username == "" || password == "" {
		return nil
	}
	username = strings.ToLower(username)

	count, err := db.UserCollection.CountDocuments(ctx, bson.M{"username": username})
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	_, err = db.UserCollection.InsertOne(ctx, models.User{
		Username:     username,
		PasswordHash: hash,
	})
	if err != nil && mongo.IsDuplicateKeyError(err) {
		return nil
	}
	return err
}
