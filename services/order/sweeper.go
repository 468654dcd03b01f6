package order

import (
	"context"
	"time"

	"beresin/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

// SweepExpired cancels orders stuck in awaiting_payment past the payment
// timeout. Each swept order goes through the normal event path, so any
// consumed date is released by the sync engine.
func (s *DefaultOrderService) SweepExpired(ctx context.Context) (int, error) {
	cutoff := time.Now().Add(-s.PaymentTimeout)
	expired, err := s.Orders.FindExpiredAwaitingPayment(cutoff)
	if err != nil {
		s.Logger.Error("expired order query failed", zap.Error(err))
		return 0, err
	}

	swept := 0
	for i := range expired {
		before := expired[i]
		after, err := s.Orders.UpdateFields(before.ID, bson.M{
			"status":        models.StatusCancelled,
			"paymentStatus": models.PaymentExpire,
		})
		if err != nil {
			s.Logger.Error("failed to cancel expired order",
				zap.String("orderId", before.ID), zap.Error(err))
			continue
		}
		swept++

		if err := s.Publisher.PublishOrderEvent(ctx, &before, after); err != nil {
			s.Logger.Warn("failed to publish sweep event",
				zap.String("orderId", before.ID), zap.Error(err))
		}
	}

	if swept > 0 {
		s.Logger.Info("expired orders swept",
			zap.Int("count", swept),
			zap.Time("cutoff", cutoff))
	}
	return swept, nil
}
