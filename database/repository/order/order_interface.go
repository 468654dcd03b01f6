package orderRepo

import (
	"context"
	"time"

	"beresin/models"

	"go.mongodb.org/mongo-driver/bson"
)

// ClaimCheck decides whether a claim may proceed, given the state read inside
// the claim transaction: the order, the provider's profile, and the provider's
// currently-active orders. Returning an error aborts the transaction.
type ClaimCheck func(order *models.Order, profile *models.ProviderProfile, active []models.Order) error

// OrderRepository defines data access for orders.
type OrderRepository interface {
	GetByID(id string) (*models.Order, error)
	Create(order *models.Order) error

	// UpdateFields merges the given fields onto the order and returns the
	// updated document.
	UpdateFields(id string, fields bson.M) (*models.Order, error)

	// FindActiveByProvider returns the provider's orders whose status is in
	// the active set.
	FindActiveByProvider(providerID string) ([]models.Order, error)

	// FindExpiredAwaitingPayment returns orders still awaiting payment that
	// were created before the cutoff.
	FindExpiredAwaitingPayment(cutoff time.Time) ([]models.Order, error)

	// Claim atomically assigns providerID and date to the order after check
	// passes against state read in the same transaction. Returns the order
	// as it was before and after the write.
	Claim(ctx context.Context, orderID, providerID, date string, check ClaimCheck) (before, after *models.Order, err error)
}
