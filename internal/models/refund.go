package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// RefundRequest records a return/refund workflow opened by a buyer.
// Reference is the human-facing tracking id handed back to the buyer.
type RefundRequest struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Reference    string             `bson:"reference" json:"reference"`
	UserID       primitive.ObjectID `bson:"user" json:"user"`
	ProductID    primitive.ObjectID `bson:"product" json:"product"`
	OrderID      primitive.ObjectID `bson:"order" json:"order"`
	ReturnReason string             `bson:"returnReason,omitempty" json:"returnReason,omitempty"`
	RefundReason string             `bson:"refundReason,omitempty" json:"refundReason,omitempty"`
	Feedback     string             `bson:"feedback,omitempty" json:"feedback,omitempty"`
	Status       string             `bson:"status" json:"status"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
}
