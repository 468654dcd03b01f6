// Package payment creates hosted-checkout transactions against the payment
// gateway and applies the gateway's status notifications back onto orders.
package payment

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	orderRepo "beresin/database/repository/order"
	userRepo "beresin/database/repository/user"
	"beresin/models"
	"beresin/services/sync"
	"beresin/utils"

	"github.com/go-redis/redis/v8"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

const sessionCacheTTL = 24 * time.Hour

// GatewayAdapter creates checkout transactions with an SDK-first,
// REST-fallback strategy and persists the resulting session on the order.
type GatewayAdapter struct {
	logger    *zap.Logger
	orders    orderRepo.OrderRepository
	users     userRepo.UserRepository
	cache     *redis.Client
	publisher sync.EventPublisher
	serverKey string
	primary   snapCreator
	fallback  snapCreator
}

// NewGatewayAdapter wires the two Snap strategies from the server key.
func NewGatewayAdapter(
	logger *zap.Logger,
	orders orderRepo.OrderRepository,
	users userRepo.UserRepository,
	cache *redis.Client,
	publisher sync.EventPublisher,
	serverKey string,
	production bool,
) *GatewayAdapter {
	return &GatewayAdapter{
		logger:    logger,
		orders:    orders,
		users:     users,
		cache:     cache,
		publisher: publisher,
		serverKey: serverKey,
		primary:   newSDKCreator(serverKey, production),
		fallback:  newRESTCreator(serverKey, production),
	}
}

// CreateTransaction builds the checkout for an order and returns the token
// and redirect URL. The session is merged onto the order document before
// returning, so a crash after gateway acceptance is recoverable by reading
// the order back.
func (g *GatewayAdapter) CreateTransaction(ctx context.Context, orderID, customerID string) (*models.CheckoutResult, error) {
	order, err := g.orders.GetByID(orderID)
	if err != nil {
		if errors.Is(err, orderRepo.ErrOrderNotFound) {
			return nil, utils.NewAppError(utils.CodeNotFound, fmt.Sprintf("order %s not found", orderID))
		}
		return nil, utils.NewAppError(utils.CodeInternal, "failed to load order")
	}

	customer, err := g.users.GetByID(customerID)
	if err != nil {
		if errors.Is(err, userRepo.ErrUserNotFound) {
			return nil, utils.NewAppError(utils.CodeNotFound, fmt.Sprintf("user %s not found", customerID))
		}
		return nil, utils.NewAppError(utils.CodeInternal, "failed to load user")
	}

	payload, err := buildPayload(order, customer)
	if err != nil {
		return nil, err
	}

	session, err := g.primary.createTransaction(payload)
	if err != nil {
		g.logger.Warn("snap sdk path failed, falling back to rest",
			zap.String("orderId", orderID), zap.Error(err))
		session, err = g.fallback.createTransaction(payload)
	}
	if err != nil {
		g.logger.Error("both gateway paths failed",
			zap.String("orderId", orderID), zap.Error(err))
		return nil, utils.NewAppError(utils.CodeInternal, "payment gateway unavailable")
	}

	after, err := g.orders.UpdateFields(orderID, bson.M{"payment": session})
	if err != nil {
		g.logger.Error("failed to persist payment session",
			zap.String("orderId", orderID), zap.Error(err))
		return nil, utils.NewAppError(utils.CodeInternal, "failed to persist payment session")
	}

	g.cacheSession(ctx, orderID, session)

	if err := g.publisher.PublishOrderEvent(ctx, order, after); err != nil {
		g.logger.Warn("failed to publish order event", zap.String("orderId", orderID), zap.Error(err))
	}

	return &models.CheckoutResult{Token: session.Token, RedirectURL: session.RedirectURL}, nil
}

// cacheSession stores the session for quick re-reads. Best effort only.
func (g *GatewayAdapter) cacheSession(ctx context.Context, orderID string, session *models.PaymentSession) {
	if g.cache == nil {
		return
	}
	raw, err := json.Marshal(session)
	if err != nil {
		return
	}
	key := "payment:session:" + orderID
	if err := g.cache.Set(ctx, key, raw, sessionCacheTTL).Err(); err != nil {
		g.logger.Warn("failed to cache payment session", zap.String("orderId", orderID), zap.Error(err))
	}
}
