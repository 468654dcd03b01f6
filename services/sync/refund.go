package sync

import (
	"context"
	"fmt"
	"time"

	userRepo "beresin/database/repository/user"
	"beresin/models"
	"beresin/services/refund"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CancellationRefundHandler credits a customer's balance when an order is
// cancelled after being paid. The credit is idempotent per order, so
// redelivered events cannot refund twice.
type CancellationRefundHandler struct {
	Logger *zap.Logger
	Users  userRepo.UserRepository
}

func cancelledAfterPaid(before, after *models.Order) bool {
	if after == nil || after.Status != models.StatusCancelled || after.PaymentStatus != models.PaymentPaid {
		return false
	}
	return before == nil || before.Status != models.StatusCancelled
}

// HandleOrderEvent fires on the transition into cancelled-after-paid.
func (h *CancellationRefundHandler) HandleOrderEvent(ctx context.Context, before, after *models.Order) error {
	if !cancelledAfterPaid(before, after) {
		return nil
	}

	result := refund.CalculateRefund(after)
	if result.Amount <= 0 {
		h.Logger.Info("nothing to refund for cancelled order",
			zap.String("orderId", after.ID), zap.String("source", result.Source))
		return nil
	}
	if after.CustomerID == "" {
		h.Logger.Warn("cancelled paid order has no customer, skipping refund",
			zap.String("orderId", after.ID))
		return nil
	}

	entry := models.LedgerEntry{
		ID:          uuid.New().String(),
		UserID:      after.CustomerID,
		OrderID:     after.ID,
		Type:        models.LedgerRefundIn,
		Amount:      result.Amount,
		Description: fmt.Sprintf("Refund for cancelled order %s (%s)", after.ID, result.Source),
		CreatedAt:   time.Now(),
	}
	if err := h.Users.CreditRefund(ctx, entry); err != nil {
		h.Logger.Error("refund credit failed",
			zap.String("orderId", after.ID),
			zap.String("userId", after.CustomerID),
			zap.Float64("amount", result.Amount),
			zap.Error(err))
		return err
	}

	h.Logger.Info("refund credited",
		zap.String("orderId", after.ID),
		zap.String("userId", after.CustomerID),
		zap.Float64("amount", result.Amount))
	return nil
}
