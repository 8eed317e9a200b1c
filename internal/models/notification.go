package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const NotificationTypeOrder = "order"

// Notification is a fire-and-forget message to a user about an order
// event. Delivery is best effort; order operations never wait on it.
type Notification struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	RecipientID  primitive.ObjectID `bson:"recipient" json:"recipient"`
	SenderID     primitive.ObjectID `bson:"sender" json:"sender"`
	Type         string             `bson:"type" json:"type"`
	Message      string             `bson:"message" json:"message"`
	RelatedOrder primitive.ObjectID `bson:"relatedOrder" json:"relatedOrder"`
	Read         bool               `bson:"read" json:"read"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
}
