package order

import (
	"context"
	"testing"
	"time"

	"beresin/models"
	syncsvc "beresin/services/sync"
	"beresin/utils"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newClaimService(repo *fakeOrderRepo, profiles *fakeProfileRepo, pub *fakePublisher) *DefaultOrderService {
	return &DefaultOrderService{
		Logger:         zap.NewNop(),
		Orders:         repo,
		Sync:           &syncsvc.AvailabilitySyncEngine{Logger: zap.NewNop(), Profiles: profiles},
		Publisher:      pub,
		PaymentTimeout: time.Hour,
	}
}

func claimableOrder(id string) *models.Order {
	return &models.Order{
		ID:         id,
		CustomerID: "cust-1",
		OrderType:  models.OrderTypeBasic,
		Status:     models.StatusSearchingProvider,
		CreatedAt:  time.Now(),
	}
}

func requireFailedPrecondition(t *testing.T, err error, reason string) *utils.AppError {
	t.Helper()
	require.Error(t, err)
	appErr, ok := err.(*utils.AppError)
	require.True(t, ok, "expected *utils.AppError, got %T", err)
	require.Equal(t, utils.CodeFailedPrecondition, appErr.Code)
	require.Equal(t, reason, appErr.Details["reason"])
	return appErr
}

func TestClaimSuccess(t *testing.T) {
	repo := newFakeOrderRepo()
	require.NoError(t, repo.Create(claimableOrder("order-1")))
	repo.profile = &models.ProviderProfile{
		ProviderID:     "prov-1",
		AvailableDates: []string{"2024-04-01"},
		Available:      true,
	}

	profiles := newFakeProfileRepo()
	require.NoError(t, profiles.Create(repo.profile))
	pub := &fakePublisher{}
	svc := newClaimService(repo, profiles, pub)

	err := svc.Claim(context.Background(), "order-1", "prov-1", "2024-04-01")
	require.NoError(t, err)

	claimed, err := repo.GetByID("order-1")
	require.NoError(t, err)
	require.Equal(t, "prov-1", claimed.ProviderID)
	require.Equal(t, models.StatusPending, claimed.Status)
	require.Equal(t, "2024-04-01", claimed.ScheduledDate)

	// The follow-up consume removed the date from availableDates.
	p, err := profiles.GetByProviderID("prov-1")
	require.NoError(t, err)
	require.Empty(t, p.AvailableDates)
	require.False(t, p.Available)

	require.Len(t, pub.events, 1)
	require.Equal(t, models.StatusSearchingProvider, pub.events[0].before.Status)
	require.Equal(t, models.StatusPending, pub.events[0].after.Status)
}

func TestClaimDateNotAvailable(t *testing.T) {
	repo := newFakeOrderRepo()
	require.NoError(t, repo.Create(claimableOrder("order-1")))
	repo.profile = &models.ProviderProfile{
		ProviderID:     "prov-1",
		AvailableDates: []string{"2024-04-01", "2024-04-03"},
	}
	svc := newClaimService(repo, newFakeProfileRepo(), &fakePublisher{})

	err := svc.Claim(context.Background(), "order-1", "prov-1", "2024-04-02")
	appErr := requireFailedPrecondition(t, err, utils.ReasonScheduleNotAvailable)
	// The payload carries the provider's actual availability for the client.
	require.Equal(t, []string{"2024-04-01", "2024-04-03"}, appErr.Details["availableDates"])
}

func TestClaimUnscheduledActiveOrderBlocksEveryDate(t *testing.T) {
	repo := newFakeOrderRepo()
	require.NoError(t, repo.Create(claimableOrder("order-1")))
	repo.profile = &models.ProviderProfile{
		ProviderID:     "prov-1",
		AvailableDates: []string{"2024-04-01"},
	}
	repo.active = []models.Order{{
		ID:         "order-0",
		ProviderID: "prov-1",
		Status:     models.StatusOngoing,
		// No scheduled date: its true date is unknown.
	}}
	svc := newClaimService(repo, newFakeProfileRepo(), &fakePublisher{})

	err := svc.Claim(context.Background(), "order-1", "prov-1", "2024-04-01")
	appErr := requireFailedPrecondition(t, err, utils.ReasonActiveOrderConflict)
	require.Equal(t, "order-0", appErr.Details["conflictOrderId"])
	require.Equal(t, "", appErr.Details["conflictDate"])
}

func TestClaimNoConflictOnDifferentDate(t *testing.T) {
	repo := newFakeOrderRepo()
	require.NoError(t, repo.Create(claimableOrder("order-1")))
	repo.profile = &models.ProviderProfile{
		ProviderID:     "prov-1",
		AvailableDates: []string{"2024-04-02"},
	}
	repo.active = []models.Order{{
		ID:            "order-0",
		ProviderID:    "prov-1",
		Status:        models.StatusAccepted,
		ScheduledDate: "2024-04-01",
	}}
	profiles := newFakeProfileRepo()
	require.NoError(t, profiles.Create(repo.profile))
	svc := newClaimService(repo, profiles, &fakePublisher{})

	require.NoError(t, svc.Claim(context.Background(), "order-1", "prov-1", "2024-04-02"))
}

func TestClaimConflictOnSameDate(t *testing.T) {
	repo := newFakeOrderRepo()
	require.NoError(t, repo.Create(claimableOrder("order-1")))
	repo.profile = &models.ProviderProfile{
		ProviderID:     "prov-1",
		AvailableDates: []string{"2024-04-01"},
	}
	repo.active = []models.Order{{
		ID:            "order-0",
		ProviderID:    "prov-1",
		Status:        models.StatusPending,
		ScheduledDate: "2024-04-01",
	}}
	svc := newClaimService(repo, newFakeProfileRepo(), &fakePublisher{})

	err := svc.Claim(context.Background(), "order-1", "prov-1", "2024-04-01")
	appErr := requireFailedPrecondition(t, err, utils.ReasonActiveOrderConflict)
	require.Equal(t, "2024-04-01", appErr.Details["conflictDate"])
}

func TestClaimAlreadyClaimed(t *testing.T) {
	repo := newFakeOrderRepo()
	o := claimableOrder("order-1")
	o.ProviderID = "prov-2"
	require.NoError(t, repo.Create(o))
	repo.profile = &models.ProviderProfile{
		ProviderID:     "prov-1",
		AvailableDates: []string{"2024-04-01"},
	}
	svc := newClaimService(repo, newFakeProfileRepo(), &fakePublisher{})

	err := svc.Claim(context.Background(), "order-1", "prov-1", "2024-04-01")
	requireFailedPrecondition(t, err, utils.ReasonOrderAlreadyClaimed)
}

func TestClaimWrongStatus(t *testing.T) {
	repo := newFakeOrderRepo()
	o := claimableOrder("order-1")
	o.Status = models.StatusAwaitingPayment
	require.NoError(t, repo.Create(o))
	repo.profile = &models.ProviderProfile{
		ProviderID:     "prov-1",
		AvailableDates: []string{"2024-04-01"},
	}
	svc := newClaimService(repo, newFakeProfileRepo(), &fakePublisher{})

	err := svc.Claim(context.Background(), "order-1", "prov-1", "2024-04-01")
	requireFailedPrecondition(t, err, utils.ReasonOrderNotClaimable)
}

func TestClaimInvalidDate(t *testing.T) {
	svc := newClaimService(newFakeOrderRepo(), newFakeProfileRepo(), &fakePublisher{})

	err := svc.Claim(context.Background(), "order-1", "prov-1", "04/01/2024")
	require.Error(t, err)
	appErr, ok := err.(*utils.AppError)
	require.True(t, ok)
	require.Equal(t, utils.CodeInvalidArgument, appErr.Code)
}

func TestClaimOrderNotFound(t *testing.T) {
	repo := newFakeOrderRepo()
	repo.profile = &models.ProviderProfile{ProviderID: "prov-1"}
	svc := newClaimService(repo, newFakeProfileRepo(), &fakePublisher{})

	err := svc.Claim(context.Background(), "missing", "prov-1", "2024-04-01")
	require.Error(t, err)
	appErr, ok := err.(*utils.AppError)
	require.True(t, ok)
	require.Equal(t, utils.CodeNotFound, appErr.Code)
}
