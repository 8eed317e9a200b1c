package store

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"shopapi/internal/models"
)

type RefundStore struct {
	col *mongo.Collection
}

func NewRefundStore(db *mongo.Database) *RefundStore {
	return &RefundStore{col: db.Collection("refund_requests")}
}

func (s *RefundStore) Insert(ctx context.Context, refund *models.RefundRequest) (primitive.ObjectID, error) {
	res, err := s.col.InsertOne(ctx, refund)
	if err != nil {
		return primitive.NilObjectID, err
	}
	id, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, nil
	}
	return id, nil
}
