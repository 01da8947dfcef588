package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Payment transaction lifecycle. Initiation endpoints write "initiated",
// gateway callbacks flip to "confirmed" or "failed", and marking an order
// paid consumes a confirmed transaction by moving it to "applied".
const (
	TxnInitiated = "initiated"
	TxnConfirmed = "confirmed"
	TxnFailed    = "failed"
	TxnApplied   = "applied"
)

// PaymentTransaction records one simulated gateway interaction. Orders
// can only be marked paid against a confirmed transaction, so the client
// never gets to assert payment success on its own.
type PaymentTransaction struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Reference string             `bson:"reference" json:"reference"`
	Method    string             `bson:"method" json:"method"`
	OrderRef  string             `bson:"order_ref,omitempty" json:"orderRef,omitempty"`
	UserID    primitive.ObjectID `bson:"user_id" json:"userId"`
	Amount    float64            `bson:"amount" json:"amount"`
	Phone     string             `bson:"phone,omitempty" json:"phone,omitempty"`
	Status    string             `bson:"status" json:"status"`
	CreatedAt time.Time          `bson:"created_at" json:"createdAt"`
}
