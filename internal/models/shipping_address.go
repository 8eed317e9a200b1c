package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ShippingAddress is an immutable snapshot taken at order time. Later
// edits to the user's address book never touch these documents.
type ShippingAddress struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID        primitive.ObjectID `bson:"user" json:"user"`
	FirstName     string             `bson:"firstName" json:"firstName"`
	LastName      string             `bson:"lastName" json:"lastName"`
	StreetAddress string             `bson:"streetAddress" json:"streetAddress"`
	Apartment     string             `bson:"apartment,omitempty" json:"apartment,omitempty"`
	Phone         string             `bson:"phone" json:"phone"`
	AddressLine   string             `bson:"addressLine" json:"addressLine"`
	Landmark      string             `bson:"landmark,omitempty" json:"landmark,omitempty"`
	City          string             `bson:"city" json:"city"`
	State         string             `bson:"state" json:"state"`
	PostalCode    string             `bson:"postalCode" json:"postalCode"`
	Type          string             `bson:"type" json:"type"`
	IsDefault     bool               `bson:"isDefault" json:"isDefault"`
	IsArchived    bool               `bson:"isArchived" json:"isArchived"`
	CreatedAt     time.Time          `bson:"createdAt" json:"createdAt"`
}
