package userRepo

import (
	"context"

	"beresin/models"
)

// UserRepository defines data access for user accounts and their ledger.
type UserRepository interface {
	GetByID(id string) (*models.User, error)
	SetRole(id, role string) error

	// CreditRefund atomically adds entry.Amount to the user's balance and
	// appends the ledger entry. A second call for the same order is a no-op,
	// so redelivered cancellation events cannot double-credit.
	CreditRefund(ctx context.Context, entry models.LedgerEntry) error
}
