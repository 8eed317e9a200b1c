package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	RoleUser   = "User"
	RoleSeller = "Seller"
	RoleAdmin  = "Admin"
)

// User represents the application user account. The order engine only
// reads identity and role and appends to the order history; account
// management lives elsewhere.
type User struct {
	ID          primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	Name        string               `bson:"name" json:"name"`
	Email       string               `bson:"email" json:"email"`
	AccountType string               `bson:"accountType" json:"accountType"`
	Orders      []primitive.ObjectID `bson:"orders" json:"orders"`
	CreatedAt   time.Time            `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time            `bson:"updatedAt" json:"updatedAt"`
}
