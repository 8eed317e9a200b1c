package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Product carries the slice of the catalog document the order engine
// reads and mutates: the stock counter plus the price/title snapshot
// source. CreatedBy references the seller account.
type Product struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title     string             `bson:"title" json:"title"`
	Price     float64            `bson:"price" json:"price"`
	Stock     int                `bson:"stock" json:"stock"`
	CreatedBy primitive.ObjectID `bson:"createdBy" json:"createdBy"`
	IsDeleted bool               `bson:"isDeleted" json:"isDeleted,omitempty"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}
