package orders

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"shopapi/internal/models"
)

// ProductStore is the inventory ledger contract: availability checks,
// conditional stock reservation and restock. Decrement must be a single
// atomic decrement-with-floor-check so stock never goes negative under
// concurrent reservations.
type ProductStore interface {
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Product, error)
	FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Product, error)
	FindIDsBySeller(ctx context.Context, sellerID primitive.ObjectID) ([]primitive.ObjectID, error)
	CheckAvailability(ctx context.Context, id primitive.ObjectID, quantity int) (bool, error)
	DecrementStock(ctx context.Context, id primitive.ObjectID, quantity int) error
	IncrementStock(ctx context.Context, id primitive.ObjectID, quantity int) error
}

// OrderQuery is the admin listing filter.
type OrderQuery struct {
	Status     models.OrderStatus
	StartDate  *time.Time
	EndDate    *time.Time
	BuyerID    *primitive.ObjectID
	ProductIDs []primitive.ObjectID
	Page       int64
	Limit      int64
	SortBy     string
	SortOrder  string
}

type OrderStore interface {
	Insert(ctx context.Context, order *models.Order) (primitive.ObjectID, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Order, error)
	FindByUser(ctx context.Context, userID primitive.ObjectID) ([]models.Order, error)
	Find(ctx context.Context, q OrderQuery) ([]models.Order, int64, error)
	Replace(ctx context.Context, order *models.Order) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

type UserStore interface {
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	FindByNameOrEmail(ctx context.Context, query string) (*models.User, error)
	AppendOrder(ctx context.Context, userID, orderID primitive.ObjectID) error
}

type AddressStore interface {
	CreateSnapshot(ctx context.Context, address *models.ShippingAddress) (primitive.ObjectID, error)
}

type RefundStore interface {
	Insert(ctx context.Context, refund *models.RefundRequest) (primitive.ObjectID, error)
}

// Notifier is fire and forget: implementations must never block the
// caller or surface delivery failures.
type Notifier interface {
	Notify(n models.Notification)
}

// TxRunner brackets a set of writes in one unit of work.
type TxRunner interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
