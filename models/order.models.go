package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Order statuses
const (
	OrderPending    = "pending"
	OrderProcessing = "processing"
	OrderCompleted  = "completed"
	OrderCancelled  = "cancelled"
)

// Payment methods accepted at checkout
const (
	PayStripe    = "stripe"
	PayJazzCash  = "jazzcash"
	PayEasyPaisa = "easypaisa"
	PayCOD       = "cod"
)

// PaymentResult is the opaque gateway payload recorded when an order is
// marked paid.
type PaymentResult struct {
	ID           string `bson:"id,omitempty" json:"id,omitempty"`
	Status       string `bson:"status,omitempty" json:"status,omitempty"`
	UpdateTime   string `bson:"update_time,omitempty" json:"update_time,omitempty"`
	EmailAddress string `bson:"email_address,omitempty" json:"email_address,omitempty"`
	PhoneNumber  string `bson:"phone_number,omitempty" json:"phone_number,omitempty"`
}

// Order references its user and product by id only; there is no
// cross-collection integrity, so a deleted product leaves historical
// orders pointing at the dead id (audit-trail semantics).
type Order struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	UserID        primitive.ObjectID `bson:"user_id" json:"user"`
	ProductID     primitive.ObjectID `bson:"product_id" json:"product"`
	PaymentMethod string             `bson:"payment_method" json:"paymentMethod"`
	PaymentResult PaymentResult      `bson:"payment_result,omitempty" json:"paymentResult,omitempty"`
	TotalPrice    float64            `bson:"total_price" json:"totalPrice"`
	IsPaid        bool               `bson:"is_paid" json:"isPaid"`
	PaidAt        *time.Time         `bson:"paid_at,omitempty" json:"paidAt,omitempty"`
	Status        string             `bson:"status" json:"status"`
	CreatedAt     time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt     time.Time          `bson:"updated_at" json:"updatedAt"`
}

// ValidPaymentMethod reports whether method is one of the accepted rails.
func ValidPaymentMethod(method string) bool {
	switch method {
	case PayStripe, PayJazzCash, PayEasyPaisa, PayCOD:
		return true
	}
	return false
}

// ValidOrderStatus reports whether status names a known order state.
func ValidOrderStatus(status string) bool {
	switch status {
	case OrderPending, OrderProcessing, OrderCompleted, OrderCancelled:
		return true
	}
	return false
}

// CanTransition is the order state machine: pending may move to
// processing or cancelled, processing to completed or cancelled, and the
// terminal states never move again.
func CanTransition(from, to string) bool {
	switch from {
	case OrderPending:
		return to == OrderProcessing || to == OrderCancelled
	case OrderProcessing:
		return to == OrderCompleted || to == OrderCancelled
	}
	return false
}
