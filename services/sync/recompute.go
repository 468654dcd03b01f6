package sync

import (
	"context"
	"errors"
	"sort"

	orderRepo "beresin/database/repository/order"
	profileRepo "beresin/database/repository/profile"
	"beresin/models"

	"go.uber.org/zap"
)

// BusyDatesRecomputer rebuilds a provider's derived busyDates projection from
// a fresh active-orders query. This is the reconciliation backstop: the diff
// path can be skipped, delayed or double-applied under at-least-once delivery,
// but a full recompute from source-of-truth is eventually correct regardless.
type BusyDatesRecomputer struct {
	Logger   *zap.Logger
	Orders   orderRepo.OrderRepository
	Profiles profileRepo.ProfileRepository
}

func occupies(o *models.Order) bool {
	return o != nil && o.IsActive() && o.ProviderID != ""
}

// AffectedProviders returns the providers whose busyDates must be rebuilt for
// this write: it fires on the active-and-assigned flip, or when the provider
// or date changes while the predicate holds. Plain field touches return nil.
func AffectedProviders(before, after *models.Order) []string {
	pb := occupies(before)
	pa := occupies(after)

	switch {
	case !pb && !pa:
		return nil
	case pb && !pa:
		return []string{before.ProviderID}
	case !pb && pa:
		return []string{after.ProviderID}
	}

	if before.ProviderID != after.ProviderID {
		return []string{before.ProviderID, after.ProviderID}
	}
	if before.ScheduledDate != after.ScheduledDate {
		return []string{after.ProviderID}
	}
	return nil
}

// DeriveBusyDates extracts the sorted, de-duplicated scheduled dates of the
// given orders.
func DeriveBusyDates(orders []models.Order) []string {
	seen := make(map[string]struct{}, len(orders))
	busy := make([]string, 0, len(orders))
	for _, o := range orders {
		if o.ScheduledDate == "" {
			continue
		}
		if _, ok := seen[o.ScheduledDate]; ok {
			continue
		}
		seen[o.ScheduledDate] = struct{}{}
		busy = append(busy, o.ScheduledDate)
	}
	sort.Strings(busy)
	return busy
}

// HandleOrderEvent recomputes busyDates for every provider this write affects.
func (r *BusyDatesRecomputer) HandleOrderEvent(ctx context.Context, before, after *models.Order) error {
	for _, providerID := range AffectedProviders(before, after) {
		if err := r.Recompute(ctx, providerID); err != nil {
			return err
		}
	}
	return nil
}

// Recompute overwrites the provider's busyDates wholesale from the
// active-orders query.
func (r *BusyDatesRecomputer) Recompute(ctx context.Context, providerID string) error {
	active, err := r.Orders.FindActiveByProvider(providerID)
	if err != nil {
		r.Logger.Error("busy dates recompute query failed",
			zap.String("providerId", providerID), zap.Error(err))
		return err
	}

	busy := DeriveBusyDates(active)
	err = r.Profiles.SetBusyDates(ctx, providerID, busy)
	if errors.Is(err, profileRepo.ErrProfileNotFound) {
		r.Logger.Warn("provider profile missing, skipping busy dates recompute",
			zap.String("providerId", providerID))
		return nil
	}
	if err != nil {
		r.Logger.Error("failed to write busy dates",
			zap.String("providerId", providerID), zap.Error(err))
		return err
	}

	r.Logger.Info("busy dates recomputed",
		zap.String("providerId", providerID),
		zap.Int("dates", len(busy)))
	return nil
}
