package order

import (
	"context"
	"errors"
	"fmt"
	"time"

	orderRepo "beresin/database/repository/order"
	"beresin/models"
	"beresin/services/sync"
	"beresin/utils"

	"go.uber.org/zap"
)

const isoDateLayout = "2006-01-02"

// checkClaimPreconditions validates a claim against the state read inside the
// claim transaction. Pure; every failure is a FailedPrecondition with a
// structured reason payload.
func checkClaimPreconditions(o *models.Order, profile *models.ProviderProfile, active []models.Order, requestedDate string) error {
	if o.ProviderID != "" {
		return utils.NewAppError(utils.CodeFailedPrecondition, "order is already claimed").
			WithDetails(map[string]any{
				"reason":     utils.ReasonOrderAlreadyClaimed,
				"orderId":    o.ID,
				"providerId": o.ProviderID,
			})
	}
	if o.Status != models.StatusSearchingProvider {
		return utils.NewAppError(utils.CodeFailedPrecondition,
			fmt.Sprintf("order is not claimable in status %q", o.Status)).
			WithDetails(map[string]any{
				"reason":  utils.ReasonOrderNotClaimable,
				"orderId": o.ID,
				"status":  o.Status,
			})
	}
	if !profile.HasAvailableDate(requestedDate) {
		return utils.NewAppError(utils.CodeFailedPrecondition, "requested date is not in the provider's availability").
			WithDetails(map[string]any{
				"reason":         utils.ReasonScheduleNotAvailable,
				"requestedDate":  requestedDate,
				"availableDates": profile.AvailableDates,
			})
	}
	for i := range active {
		other := &active[i]
		// An active order without a date blocks everything: its true date is
		// unknown, so it is treated as occupying every date.
		if other.ScheduledDate == "" || other.ScheduledDate == requestedDate {
			return utils.NewAppError(utils.CodeFailedPrecondition, "provider has a conflicting active order").
				WithDetails(map[string]any{
					"reason":          utils.ReasonActiveOrderConflict,
					"conflictOrderId": other.ID,
					"conflictStatus":  other.Status,
					"conflictDate":    other.ScheduledDate,
					"requestedDate":   requestedDate,
				})
		}
	}
	return nil
}

// Claim runs the claim transaction, then issues the best-effort follow-up
// consume of the date from availableDates and publishes the order event.
//
// The consume is intentionally outside the claim transaction: merging it in
// would drag the unbounded active-orders query into the profile write. The
// busy-dates recompute bounds any drift from a crash in the gap.
func (s *DefaultOrderService) Claim(ctx context.Context, orderID, providerID, requestedDate string) error {
	if _, err := time.Parse(isoDateLayout, requestedDate); err != nil {
		return utils.NewAppError(utils.CodeInvalidArgument,
			fmt.Sprintf("scheduledDate %q is not a valid ISO date", requestedDate))
	}

	check := func(o *models.Order, profile *models.ProviderProfile, active []models.Order) error {
		return checkClaimPreconditions(o, profile, active, requestedDate)
	}

	before, after, err := s.Orders.Claim(ctx, orderID, providerID, requestedDate, check)
	if err != nil {
		var appErr *utils.AppError
		switch {
		case errors.As(err, &appErr):
			return appErr
		case errors.Is(err, orderRepo.ErrOrderNotFound):
			return utils.NewAppError(utils.CodeNotFound, fmt.Sprintf("order %s not found", orderID))
		case errors.Is(err, orderRepo.ErrProfileNotFound):
			return utils.NewAppError(utils.CodeNotFound, "provider profile not found")
		default:
			s.Logger.Error("claim transaction failed",
				zap.String("orderId", orderID),
				zap.String("providerId", providerID),
				zap.Error(err))
			return utils.NewAppError(utils.CodeInternal, "claim transaction failed")
		}
	}

	// Post-commit follow-up. Failures here are logged, never returned: the
	// claim is committed, and the event path plus the recompute converge the
	// calendar.
	if err := s.Sync.Apply(ctx, sync.Directive{
		ProviderID: providerID,
		Date:       requestedDate,
		Action:     sync.ActionConsume,
	}); err != nil {
		s.Logger.Warn("post-claim availability consume failed, relying on reconciliation",
			zap.String("orderId", orderID),
			zap.String("providerId", providerID),
			zap.Error(err))
	}

	if err := s.Publisher.PublishOrderEvent(ctx, before, after); err != nil {
		s.Logger.Warn("failed to publish claim event, relying on reconciliation",
			zap.String("orderId", orderID),
			zap.Error(err))
	}

	s.Logger.Info("order claimed",
		zap.String("orderId", orderID),
		zap.String("providerId", providerID),
		zap.String("date", requestedDate))
	return nil
}
