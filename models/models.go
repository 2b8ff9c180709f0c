package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type MeasurementUnit string

const (
	Grams  MeasurementUnit = "grams"
	Liters MeasurementUnit = "liters"
	Pieces MeasurementUnit = "pieces"
)

func (u MeasurementUnit) Valid() bool {
	switch u {
	case Grams, Liters, Pieces:
		return true
	}
	return false
}

type Ingredient struct {
	ID                primitive.ObjectID `bson:"_id,omitempty"        json:"id"`
	Name              string             `bson:"name"                 json:"name"`
	AvailableQuantity float64            `bson:"availableQuantity"    json:"available_quantity"`
	MeasurementUnit   MeasurementUnit    `bson:"measurementUnit"      json:"measurement_unit"`
	PricePerUnit      Money              `bson:"pricePerUnit"         json:"price_per_unit"`
	DateAdded         Date               `bson:"dateAdded"            json:"date_added"`
	ExpiryDate        *Date              `bson:"expiryDate,omitempty" json:"expiry_date,omitempty"`
}

type MenuItem struct {
	ID       primitive.ObjectID `bson:"_id,omitempty"   json:"id"`
	ItemName string             `bson:"itemName"        json:"name"`
	Price    Money              `bson:"price"           json:"price"`
	Photo    string             `bson:"photo,omitempty" json:"photo,omitempty"`
}

type RecipeRequirement struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	MenuItem   primitive.ObjectID `bson:"menuItem"      json:"menu_item"`
	Ingredient primitive.ObjectID `bson:"ingredient"    json:"ingredient"`
	Quantity   float64            `bson:"quantity"      json:"quantity"`
}

type Purchase struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"          json:"id"`
	MenuItem     primitive.ObjectID `bson:"menuItem"               json:"menu_item"`
	PurchaseDate time.Time          `bson:"purchaseDate"           json:"purchase_date"`
	CustomerName string             `bson:"customerName,omitempty" json:"customer_name,omitempty"`
	Quantity     int64              `bson:"quantity"               json:"quantity"`
	TotalPrice   Money              `bson:"totalPrice"             json:"total_price"`
}

type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"       json:"id"`
	Username     string             `bson:"username"            json:"username"`
	PasswordHash []byte             `bson:"passwordHash"        json:"-"`
	Email        string             `bson:"email,omitempty"     json:"email"`
	FirstName    string             `bson:"firstName,omitempty" json:"first_name"`
	LastName     string             `bson:"lastName,omitempty"  json:"last_name"`
}

// Token is the persistent opaque key presented in the Authorization header.
// One per user, reused across logins.
type Token struct {
	Key       string             `bson:"key"       json:"key"`
	UserID    primitive.ObjectID `bson:"userId"    json:"user_id"`
	CreatedAt time.Time          `bson:"createdAt" json:"created_at"`
}
