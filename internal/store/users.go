package store

import (
	"context"
	"regexp"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"shopapi/internal/models"
)

// UserStore is the order engine's view of the user directory: identity,
// role and the order history list.
type UserStore struct {
	col *mongo.Collection
}

func NewUserStore(db *mongo.Database) *UserStore {
	return &UserStore{col: db.Collection("users")}
}

func (s *UserStore) FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	var user models.User
	err := s.col.FindOne(ctx, bson.M{"_id": id}).Decode(&user)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// buyerSearchFilter matches users whose name or email contains query,
// case-insensitive. The query comes from an admin-supplied search box,
// so regex metacharacters are escaped to match literally.
func buyerSearchFilter(query string) bson.M {
	pattern := regexp.QuoteMeta(query)
	return bson.M{"$or": bson.A{
		bson.M{"name": bson.M{"$regex": pattern, "$options": "i"}},
		bson.M{"email": bson.M{"$regex": pattern, "$options": "i"}},
	}}
}

func (s *UserStore) FindByNameOrEmail(ctx context.Context, query string) (*models.User, error) {
	filter := buyerSearchFilter(query)

	var user models.User
	err := s.col.FindOne(ctx, filter).Decode(&user)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *UserStore) AppendOrder(ctx context.Context, userID, orderID primitive.ObjectID) error {
	_, err := s.col.UpdateOne(ctx,
		bson.M{"_id": userID},
		bson.M{"$push": bson.M{"orders": orderID}},
	)
	return err
}
