// Package order hosts the claim operation and the expired-order sweeper.
package order

import (
	"context"
	"time"

	orderRepo "beresin/database/repository/order"
	"beresin/services/sync"

	"go.uber.org/zap"
)

// OrderService defines the coordination operations on orders.
type OrderService interface {
	// Claim atomically assigns the calling provider and a scheduled date to
	// the order.
	Claim(ctx context.Context, orderID, providerID, requestedDate string) error

	// SweepExpired cancels orders stuck awaiting payment past the configured
	// timeout and returns how many were swept.
	SweepExpired(ctx context.Context) (int, error)
}

// DefaultOrderService implements OrderService.
type DefaultOrderService struct {
	Logger         *zap.Logger
	Orders         orderRepo.OrderRepository
	Sync           *sync.AvailabilitySyncEngine
	Publisher      sync.EventPublisher
	PaymentTimeout time.Duration
}
