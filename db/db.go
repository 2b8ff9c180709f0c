package db

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	IngredientCollection  *mongo.Collection
	MenuItemCollection    *mongo.Collection
	RequirementCollection *mongo.Collection
	PurchaseCollection    *mongo.Collection
	UserCollection        *mongo.Collection
	TokenCollection       *mongo.Collection

	Client *mongo.Client
)

// Init connects to MongoDB and assigns the collection globals.
func Init(ctx context.Context, uri string) error {
	serverAPI := options.ServerAPI(options.ServerAPIVersion1)
	opts := options.Client().ApplyURI(uri).SetServerAPIOptions(serverAPI)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return err
	}
	if err := client.Database("admin").RunCommand(ctx, bson.D{{Key: "ping", Value: 1}}).Err(); err != nil {
		return err
	}

	Client = client
	database := client.Database("mesadb")
	IngredientCollection = database.Collection("ingredients")
	MenuItemCollection = database.Collection("menuitems")
	RequirementCollection = database.Collection("reciperequirements")
	PurchaseCollection = database.Collection("purchases")
	UserCollection = database.Collection("users")
	TokenCollection = database.Collection("tokens")

	return EnsureIndexes(ctx)
}

// EnsureIndexes creates the unique indexes that back the model invariants.
// Request-time validation gives friendly errors; the indexes close the race
// where two concurrent creates both pass validation before either commits.
func EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if _, err := IngredientCollection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "name", Value: 1}},
		Options: options.Index().SetUnique(true),
	}); err != nil {
		return err
	}
	if _, err := MenuItemCollection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "itemName", Value: 1}},
		Options: options.Index().SetUnique(true),
	}); err != nil {
		return err
	}
	if _, err := RequirementCollection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "menuItem", Value: 1}, {Key: "ingredient", Value: 1}},
		Options: options.Index().SetUnique(true),
	}); err != nil {
		return err
	}
	if _, err := UserCollection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "username", Value: 1}},
		Options: options.Index().SetUnique(true),
	}); err != nil {
		return err
	}
	if _, err := TokenCollection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "key", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "userId", Value: 1}}, Options: options.Index().SetUnique(true)},
	}); err != nil {
		return err
	}
	if _, err := PurchaseCollection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "menuItem", Value: 1}}},
		{Keys: bson.D{{Key: "purchaseDate", Value: -1}}},
	}); err != nil {
		return err
	}
	return nil
}
