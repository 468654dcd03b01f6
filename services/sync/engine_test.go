package sync

import (
	"context"
	"testing"

	"beresin/models"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestEngineConsumeAndRelease(t *testing.T) {
	profiles := newFakeProfiles()
	require.NoError(t, profiles.Create(&models.ProviderProfile{
		ProviderID:     "prov-1",
		AvailableDates: []string{"2024-04-01", "2024-04-02"},
		Available:      true,
	}))
	engine := &AvailabilitySyncEngine{Logger: zap.NewNop(), Profiles: profiles}

	err := engine.HandleOrderEvent(context.Background(),
		order("", "", models.StatusSearchingProvider),
		order("prov-1", "2024-04-01", models.StatusPending))
	require.NoError(t, err)

	p, err := profiles.GetByProviderID("prov-1")
	require.NoError(t, err)
	require.Equal(t, []string{"2024-04-02"}, p.AvailableDates)

	err = engine.HandleOrderEvent(context.Background(),
		order("prov-1", "2024-04-01", models.StatusOngoing),
		order("prov-1", "2024-04-01", models.StatusCancelled))
	require.NoError(t, err)

	p, err = profiles.GetByProviderID("prov-1")
	require.NoError(t, err)
	require.Equal(t, []string{"2024-04-01", "2024-04-02"}, p.AvailableDates)
}

func TestEngineRedeliveryConverges(t *testing.T) {
	profiles := newFakeProfiles()
	require.NoError(t, profiles.Create(&models.ProviderProfile{
		ProviderID:     "prov-1",
		AvailableDates: []string{"2024-04-01"},
	}))
	engine := &AvailabilitySyncEngine{Logger: zap.NewNop(), Profiles: profiles}

	before := order("", "", models.StatusSearchingProvider)
	after := order("prov-1", "2024-04-01", models.StatusPending)
	require.NoError(t, engine.HandleOrderEvent(context.Background(), before, after))
	require.NoError(t, engine.HandleOrderEvent(context.Background(), before, after))

	p, err := profiles.GetByProviderID("prov-1")
	require.NoError(t, err)
	require.Empty(t, p.AvailableDates)
}

func TestEngineMissingProfileIsNoOp(t *testing.T) {
	engine := &AvailabilitySyncEngine{Logger: zap.NewNop(), Profiles: newFakeProfiles()}

	err := engine.Apply(context.Background(), Directive{
		ProviderID: "ghost",
		Date:       "2024-04-01",
		Action:     ActionConsume,
	})
	require.NoError(t, err)
}
