package sync

import (
	"context"
	"errors"

	profileRepo "beresin/database/repository/profile"
	"beresin/models"

	"go.uber.org/zap"
)

// AvailabilitySyncEngine applies the consume/release directives computed by
// Diff to provider profiles. Safe under at-least-once delivery: each apply
// re-reads current state, so duplicates converge.
type AvailabilitySyncEngine struct {
	Logger   *zap.Logger
	Profiles profileRepo.ProfileRepository
}

// HandleOrderEvent diffs the snapshots and applies every resulting directive.
func (e *AvailabilitySyncEngine) HandleOrderEvent(ctx context.Context, before, after *models.Order) error {
	for _, d := range Diff(before, after) {
		if err := e.Apply(ctx, d); err != nil {
			return err
		}
	}
	return nil
}

// Apply executes one directive. A missing provider profile is a logged no-op:
// the order can proceed without one, and the busy-dates recompute will catch
// up once the profile exists.
func (e *AvailabilitySyncEngine) Apply(ctx context.Context, d Directive) error {
	var err error
	switch d.Action {
	case ActionConsume:
		err = e.Profiles.ConsumeAvailableDate(ctx, d.ProviderID, d.Date, nil)
	case ActionRelease:
		err = e.Profiles.ReleaseAvailableDate(ctx, d.ProviderID, d.Date, nil)
	default:
		e.Logger.Warn("unknown availability directive", zap.String("action", string(d.Action)))
		return nil
	}

	if errors.Is(err, profileRepo.ErrProfileNotFound) {
		e.Logger.Warn("provider profile missing, skipping availability change",
			zap.String("providerId", d.ProviderID),
			zap.String("date", d.Date),
			zap.String("action", string(d.Action)))
		return nil
	}
	if err != nil {
		e.Logger.Error("failed to apply availability change",
			zap.String("providerId", d.ProviderID),
			zap.String("date", d.Date),
			zap.String("action", string(d.Action)),
			zap.Error(err))
		return err
	}
	return nil
}
