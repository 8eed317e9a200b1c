package store

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"shopapi/internal/models"
	"shopapi/internal/orders"
)

// OrderStore persists orders in the orders collection.
type OrderStore struct {
	col *mongo.Collection
}

func NewOrderStore(db *mongo.Database) *OrderStore {
	return &OrderStore{col: db.Collection("orders")}
}

func (s *OrderStore) Insert(ctx context.Context, order *models.Order) (primitive.ObjectID, error) {
	res, err := s.col.InsertOne(ctx, order)
	if err != nil {
		return primitive.NilObjectID, err
	}
	id, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, nil
	}
	return id, nil
}

func (s *OrderStore) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Order, error) {
	var order models.Order
	err := s.col.FindOne(ctx, bson.M{"_id": id}).Decode(&order)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (s *OrderStore) FindByUser(ctx context.Context, userID primitive.ObjectID) ([]models.Order, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := s.col.Find(ctx, bson.M{"user": userID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	result := []models.Order{}
	if err := cursor.All(ctx, &result); err != nil {
		return nil, err
	}
	return result, nil
}

func (s *OrderStore) Find(ctx context.Context, q orders.OrderQuery) ([]models.Order, int64, error) {
	filter := bson.M{}
	if q.Status != "" {
		filter["orderStatus"] = q.Status
	}
	if q.StartDate != nil || q.EndDate != nil {
		created := bson.M{}
		if q.StartDate != nil {
			created["$gte"] = *q.StartDate
		}
		if q.EndDate != nil {
			created["$lte"] = *q.EndDate
		}
		filter["createdAt"] = created
	}
	if q.BuyerID != nil {
		filter["user"] = *q.BuyerID
	}
	if q.ProductIDs != nil {
		filter["orderItems.product"] = bson.M{"$in": q.ProductIDs}
	}

	total, err := s.col.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	sortDir := -1
	if q.SortOrder == "asc" {
		sortDir = 1
	}
	opts := options.Find().
		SetSort(bson.D{{Key: q.SortBy, Value: sortDir}}).
		SetSkip((q.Page - 1) * q.Limit).
		SetLimit(q.Limit)

	cursor, err := s.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	result := []models.Order{}
	if err := cursor.All(ctx, &result); err != nil {
		return nil, 0, err
	}
	return result, total, nil
}

func (s *OrderStore) Replace(ctx context.Context, order *models.Order) error {
	res, err := s.col.ReplaceOne(ctx, bson.M{"_id": order.ID}, order)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return orders.NotFoundError{Kind: "order", ID: order.ID.Hex()}
	}
	return nil
}

func (s *OrderStore) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := s.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return orders.NotFoundError{Kind: "order", ID: id.Hex()}
	}
	return nil
}
