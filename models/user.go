package models

import "time"

// User roles.
const (
	RoleCustomer = "customer"
	RoleProvider = "provider"
)

// User is the account an order's customer or provider acts under.
type User struct {
	ID        string    `bson:"id" json:"id"`
	Name      string    `bson:"name" json:"name,omitempty"`
	Email     string    `bson:"email" json:"email,omitempty"`
	Phone     string    `bson:"phone" json:"phone,omitempty"`
	Role      string    `bson:"role" json:"role"`
	Balance   float64   `bson:"balance" json:"balance"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

// Ledger entry types.
const (
	LedgerRefundIn = "REFUND_IN"
)

// LedgerEntry is an immutable record of a balance mutation.
type LedgerEntry struct {
	ID          string    `bson:"id" json:"id"`
	UserID      string    `bson:"userId" json:"userId"`
	OrderID     string    `bson:"orderId" json:"orderId"`
	Type        string    `bson:"type" json:"type"`
	Amount      float64   `bson:"amount" json:"amount"`
	Description string    `bson:"description" json:"description"`
	CreatedAt   time.Time `bson:"createdAt" json:"createdAt"`
}
