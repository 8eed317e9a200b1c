package inventory

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"shopapi/internal/models"
	"shopapi/internal/orders"
)

// Ledger owns the stock counter on the products collection. Reservation
// is a single conditional update so two orders racing for the last unit
// cannot both win.
type Ledger struct {
	products *mongo.Collection
}

func NewLedger(db *mongo.Database) *Ledger {
	return &Ledger{products: db.Collection("products")}
}

func activeProductFilter(id primitive.ObjectID) bson.M {
	return bson.M{
		"_id":       id,
		"isDeleted": bson.M{"$ne": true},
	}
}

func (l *Ledger) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Product, error) {
	var product models.Product
	err := l.products.FindOne(ctx, activeProductFilter(id)).Decode(&product)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (l *Ledger) FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Product, error) {
	cursor, err := l.products.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var products []models.Product
	if err := cursor.All(ctx, &products); err != nil {
		return nil, err
	}
	return products, nil
}

func (l *Ledger) FindIDsBySeller(ctx context.Context, sellerID primitive.ObjectID) ([]primitive.ObjectID, error) {
	cursor, err := l.products.Find(ctx, bson.M{"createdBy": sellerID})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var products []models.Product
	if err := cursor.All(ctx, &products); err != nil {
		return nil, err
	}
	ids := make([]primitive.ObjectID, 0, len(products))
	for _, p := range products {
		ids = append(ids, p.ID)
	}
	return ids, nil
}

func (l *Ledger) CheckAvailability(ctx context.Context, id primitive.ObjectID, quantity int) (bool, error) {
	product, err := l.FindByID(ctx, id)
	if err != nil {
		return false, err
	}
	if product == nil {
		return false, orders.NotFoundError{Kind: "product", ID: id.Hex()}
	}
	return product.Stock >= quantity, nil
}

// DecrementStock reserves quantity units. The stock floor is enforced in
// the update filter, so the decrement only matches while enough stock
// remains.
func (l *Ledger) DecrementStock(ctx context.Context, id primitive.ObjectID, quantity int) error {
	filter := activeProductFilter(id)
	filter["stock"] = bson.M{"$gte": quantity}

	res, err := l.products.UpdateOne(ctx, filter, bson.M{"$inc": bson.M{"stock": -quantity}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		product, err := l.FindByID(ctx, id)
		if err != nil {
			return err
		}
		if product == nil {
			return orders.NotFoundError{Kind: "product", ID: id.Hex()}
		}
		return orders.InsufficientStockError{
			ProductID: id,
			Available: product.Stock,
			Requested: quantity,
		}
	}
	return nil
}

// IncrementStock returns quantity units to the shelf. Restocking a
// product that has since been removed is a no-op.
func (l *Ledger) IncrementStock(ctx context.Context, id primitive.ObjectID, quantity int) error {
	_, err := l.products.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$inc": bson.M{"stock": quantity}})
	return err
}
