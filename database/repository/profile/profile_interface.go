package profileRepo

import (
	"context"

	"beresin/models"
)

// ProfileRepository defines data access for provider booking calendars.
type ProfileRepository interface {
	GetByProviderID(providerID string) (*models.ProviderProfile, error)
	Create(profile *models.ProviderProfile) error

	// ConsumeAvailableDate removes date from the provider's availableDates.
	// Consuming an already-absent date is a no-op. forceAvailable, when set,
	// overrides the recomputed available flag.
	ConsumeAvailableDate(ctx context.Context, providerID, date string, forceAvailable *bool) error

	// ReleaseAvailableDate inserts date back into availableDates, keeping the
	// list sorted and de-duplicated. Releasing an already-present date is a
	// no-op.
	ReleaseAvailableDate(ctx context.Context, providerID, date string, forceAvailable *bool) error

	// SetBusyDates overwrites the derived busyDates projection wholesale.
	SetBusyDates(ctx context.Context, providerID string, busyDates []string) error
}
