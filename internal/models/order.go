package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// OrderStatus is the lifecycle state of an order.
type OrderStatus string

const (
	StatusProcessing       OrderStatus = "Processing"
	StatusShipped          OrderStatus = "Shipped"
	StatusDelivered        OrderStatus = "Delivered"
	StatusCancelled        OrderStatus = "Cancelled"
	StatusRefundProcessing OrderStatus = "Refund Processing"
)

// statusOrder fixes the forward progression of an order. Cancelled and
// Refund Processing sit outside it and are reached through their own
// entry points.
var statusOrder = []OrderStatus{StatusProcessing, StatusShipped, StatusDelivered}

// Rank returns the position of s in the forward progression, or -1 for
// statuses outside it.
func (s OrderStatus) Rank() int {
	for i, status := range statusOrder {
		if s == status {
			return i
		}
	}
	return -1
}

// IsTerminal reports whether no ordinary status update may follow s.
func (s OrderStatus) IsTerminal() bool {
	return s == StatusDelivered || s == StatusCancelled
}

// IsForwardStatus reports whether s is one of the statuses an admin may
// move an order to through the ordinary update path.
func (s OrderStatus) IsForwardStatus() bool {
	return s.Rank() >= 0
}

type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "Pending"
	PaymentCompleted PaymentStatus = "Completed"
	PaymentFailed    PaymentStatus = "Failed"
)

const (
	PaymentMethodOnline = "Online"
	PaymentMethodCOD    = "COD"
)

// OrderItem is a single line of an order. Title and Price are snapshots
// taken from the catalog at order time and never recomputed.
type OrderItem struct {
	ProductID primitive.ObjectID `bson:"product" json:"product"`
	Title     string             `bson:"title" json:"title"`
	Price     float64            `bson:"price" json:"price"`
	Quantity  int                `bson:"quantity" json:"quantity"`
}

// Order defines the persisted order document.
type Order struct {
	ID                primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID            primitive.ObjectID `bson:"user" json:"user"`
	OrderItems        []OrderItem        `bson:"orderItems" json:"orderItems"`
	ShippingAddressID primitive.ObjectID `bson:"shippingAddress" json:"shippingAddress"`
	PaymentMethod     string             `bson:"paymentMethod" json:"paymentMethod"`
	PaymentStatus     PaymentStatus      `bson:"paymentStatus" json:"paymentStatus"`
	OrderStatus       OrderStatus        `bson:"orderStatus" json:"orderStatus"`
	TotalAmount       float64            `bson:"totalAmount" json:"totalAmount"`
	ShippingPrice     float64            `bson:"shippingPrice" json:"shippingPrice"`
	IsPaid            bool               `bson:"isPaid" json:"isPaid"`
	DeliveredAt       *time.Time         `bson:"deliveredAt,omitempty" json:"deliveredAt,omitempty"`
	CreatedAt         time.Time          `bson:"createdAt" json:"createdAt"`
}
