package store

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"shopapi/internal/models"
)

// AddressStore writes shipping-address snapshots. Snapshots are insert
// only; nothing in the order engine ever updates one.
type AddressStore struct {
	col *mongo.Collection
}

func NewAddressStore(db *mongo.Database) *AddressStore {
	return &AddressStore{col: db.Collection("shipping_addresses")}
}

func (s *AddressStore) CreateSnapshot(ctx context.Context, address *models.ShippingAddress) (primitive.ObjectID, error) {
	res, err := s.col.InsertOne(ctx, address)
	if err != nil {
		return primitive.NilObjectID, err
	}
	id, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, nil
	}
	return id, nil
}
