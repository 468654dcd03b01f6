package user

import (
	"context"
	"testing"

	profileRepo "beresin/database/repository/profile"
	userRepo "beresin/database/repository/user"
	"beresin/models"
	"beresin/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeUsers struct {
	users map[string]*models.User
}

func (f *fakeUsers) GetByID(id string) (*models.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, userRepo.ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUsers) SetRole(id, role string) error {
	u, ok := f.users[id]
	if !ok {
		return userRepo.ErrUserNotFound
	}
	u.Role = role
	return nil
}

func (f *fakeUsers) CreditRefund(ctx context.Context, entry models.LedgerEntry) error {
	return nil
}

type fakeProfiles struct {
	profiles map[string]*models.ProviderProfile
}

func (f *fakeProfiles) GetByProviderID(providerID string) (*models.ProviderProfile, error) {
	p, ok := f.profiles[providerID]
	if !ok {
		return nil, profileRepo.ErrProfileNotFound
	}
	cp := *p
	return &cp, nil
}

func (f *fakeProfiles) Create(p *models.ProviderProfile) error {
	cp := *p
	f.profiles[p.ProviderID] = &cp
	return nil
}

func (f *fakeProfiles) ConsumeAvailableDate(ctx context.Context, providerID, date string, force *bool) error {
	return nil
}

func (f *fakeProfiles) ReleaseAvailableDate(ctx context.Context, providerID, date string, force *bool) error {
	return nil
}

func (f *fakeProfiles) SetBusyDates(ctx context.Context, providerID string, busy []string) error {
	return nil
}

func newService(users *fakeUsers, profiles *fakeProfiles) *DefaultUserService {
	return &DefaultUserService{Logger: zap.NewNop(), Users: users, Profiles: profiles}
}

func TestUpgradeToProviderRole(t *testing.T) {
	users := &fakeUsers{users: map[string]*models.User{
		"user-1": {ID: "user-1", Role: models.RoleCustomer},
	}}
	profiles := &fakeProfiles{profiles: map[string]*models.ProviderProfile{}}
	svc := newService(users, profiles)

	require.NoError(t, svc.UpgradeToProviderRole(context.Background(), "user-1"))

	assert.Equal(t, models.RoleProvider, users.users["user-1"].Role)
	p, ok := profiles.profiles["user-1"]
	require.True(t, ok)
	assert.Empty(t, p.AvailableDates)
	assert.Empty(t, p.BusyDates)
	assert.False(t, p.Available)
}

func TestUpgradeToProviderRoleIdempotent(t *testing.T) {
	users := &fakeUsers{users: map[string]*models.User{
		"user-1": {ID: "user-1", Role: models.RoleProvider},
	}}
	profiles := &fakeProfiles{profiles: map[string]*models.ProviderProfile{
		"user-1": {ProviderID: "user-1", AvailableDates: []string{"2024-04-01"}},
	}}
	svc := newService(users, profiles)

	require.NoError(t, svc.UpgradeToProviderRole(context.Background(), "user-1"))

	// The existing calendar is untouched.
	assert.Equal(t, []string{"2024-04-01"}, profiles.profiles["user-1"].AvailableDates)
}

func TestUpgradeToProviderRoleUserNotFound(t *testing.T) {
	svc := newService(
		&fakeUsers{users: map[string]*models.User{}},
		&fakeProfiles{profiles: map[string]*models.ProviderProfile{}},
	)

	err := svc.UpgradeToProviderRole(context.Background(), "ghost")
	require.Error(t, err)
	appErr, ok := err.(*utils.AppError)
	require.True(t, ok)
	assert.Equal(t, utils.CodeNotFound, appErr.Code)
}
