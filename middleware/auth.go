package middleware

import (
	"context"
	"net/http"
	"strings"
	"time"

	"mesa/db"
	"mesa/globals"
	"mesa/models"
	"mesa/rdx"
	"mesa/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
)

// ParseTokenHeader extracts the opaque key from an "Authorization: Token <key>"
// header. Returns "" when the header is absent or malformed.
func ParseTokenHeader(header string) string {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || parts[0] != "Token" {
		return ""
	}
	key := strings.TrimSpace(parts[1])
	if strings.Contains(key, " ") {
		return ""
	}
	return key
}

// Authenticate rejects requests without a valid bearer token before the
// wrapped handler runs.
func Authenticate(next httprouter.Handle) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		key := ParseTokenHeader(r.Header.Get("Authorization"))
		if key == "" {
			utils.RespondWithJSON(w, http.StatusUnauthorized, utils.M{"detail": "Authentication credentials were not provided."})
			return
		}

		userID := resolveToken(r.Context(), key)
		if userID == "" {
			utils.RespondWithJSON(w, http.StatusUnauthorized, utils.M{"detail": "Invalid token."})
			return
		}

		ctx := context.WithValue(r.Context(), globals.UserIDKey, userID)
		ctx = context.WithValue(ctx, globals.TokenKey, key)
		next(w, r.WithContext(ctx), ps)
	}
}

// OptionalAuth attaches the user to the context when a valid token is
// present but never rejects the request.
func OptionalAuth(next httprouter.Handle) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		if key := ParseTokenHeader(r.Header.Get("Authorization")); key != "" {
			if userID := resolveToken(r.Context(), key); userID != "" {
				ctx := context.WithValue(r.Context(), globals.UserIDKey, userID)
				ctx = context.WithValue(ctx, globals.TokenKey, key)
				r = r.WithContext(ctx)
			}
		}
		next(w, r, ps)
	}
}

// resolveToken maps a token key to a user id, consulting the Redis cache
// before Mongo.
func resolveToken(ctx context.Context, key string) string {
	if userID := rdx.LookupToken(ctx, key); userID != "" {
		return userID
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var token models.Token
	if err := db.TokenCollection.FindOne(ctx, bson.M{"key": key}).Decode(&token); err != nil {
		return ""
	}

	userID := token.UserID.Hex()
	rdx.CacheToken(ctx, key, userID)
	return userID
}
