package payment

import (
	"context"
	"crypto/sha512"
	"encoding/hex"
	"errors"
	"fmt"

	orderRepo "beresin/database/repository/order"
	"beresin/models"
	"beresin/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

// VerifySignature checks the gateway's sha512 signature over
// orderId + statusCode + grossAmount + serverKey.
func (g *GatewayAdapter) VerifySignature(n *models.GatewayNotification) bool {
	sum := sha512.Sum512([]byte(n.OrderID + n.StatusCode + n.GrossAmount + g.serverKey))
	return hex.EncodeToString(sum[:]) == n.SignatureKey
}

// ProcessNotification applies a gateway status notification to the order.
// Idempotent: the gateway redelivers, and re-applying the same mapping is a
// no-op for the order document and the event consumers.
func (g *GatewayAdapter) ProcessNotification(ctx context.Context, n *models.GatewayNotification) error {
	if !g.VerifySignature(n) {
		return utils.NewAppError(utils.CodeUnauthenticated, "invalid notification signature").
			WithDetails(map[string]any{"orderId": n.OrderID})
	}

	before, err := g.orders.GetByID(n.OrderID)
	if err != nil {
		if errors.Is(err, orderRepo.ErrOrderNotFound) {
			return utils.NewAppError(utils.CodeNotFound, fmt.Sprintf("order %s not found", n.OrderID))
		}
		return utils.NewAppError(utils.CodeInternal, "failed to load order")
	}

	fields := bson.M{}
	switch n.TransactionStatus {
	case "capture", "settlement":
		if n.FraudStatus != "" && n.FraudStatus != "accept" {
			g.logger.Warn("payment held by fraud status",
				zap.String("orderId", n.OrderID),
				zap.String("fraudStatus", n.FraudStatus))
			return nil
		}
		fields["paymentStatus"] = models.PaymentPaid
		// Only advance orders still waiting on payment; a redelivered
		// notification must not regress an already-claimed order.
		if before.Status == models.StatusAwaitingPayment {
			if before.OrderType == models.OrderTypeDirect {
				fields["status"] = models.StatusAwaitingProviderConfirmation
				// Chat-room creation for direct orders is dispatched by the
				// messaging subsystem outside this service.
				g.logger.Info("direct order paid, awaiting provider confirmation",
					zap.String("orderId", n.OrderID))
			} else {
				fields["status"] = models.StatusSearchingProvider
			}
		}

	case "cancel", "deny", "expire":
		fields["paymentStatus"] = n.TransactionStatus
		fields["status"] = models.StatusCancelled

	case "pending":
		fields["paymentStatus"] = models.PaymentPending

	default:
		g.logger.Warn("unhandled transaction status",
			zap.String("orderId", n.OrderID),
			zap.String("transactionStatus", n.TransactionStatus))
		return nil
	}

	after, err := g.orders.UpdateFields(n.OrderID, fields)
	if err != nil {
		g.logger.Error("failed to apply payment notification",
			zap.String("orderId", n.OrderID), zap.Error(err))
		return utils.NewAppError(utils.CodeInternal, "failed to update order")
	}

	if err := g.publisher.PublishOrderEvent(ctx, before, after); err != nil {
		g.logger.Warn("failed to publish notification event",
			zap.String("orderId", n.OrderID), zap.Error(err))
	}

	g.logger.Info("payment notification applied",
		zap.String("orderId", n.OrderID),
		zap.String("transactionStatus", n.TransactionStatus))
	return nil
}
