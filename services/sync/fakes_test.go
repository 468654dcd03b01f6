package sync

import (
	"context"
	"time"

	orderRepo "beresin/database/repository/order"
	profileRepo "beresin/database/repository/profile"
	userRepo "beresin/database/repository/user"
	"beresin/models"

	"go.mongodb.org/mongo-driver/bson"
)

type fakeProfiles struct {
	profiles map[string]*models.ProviderProfile
	busySets map[string][]string
}

func newFakeProfiles() *fakeProfiles {
	return &fakeProfiles{
		profiles: make(map[string]*models.ProviderProfile),
		busySets: make(map[string][]string),
	}
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
	p, ok := f.profiles[providerID]
	if !ok {
		return profileRepo.ErrProfileNotFound
	}
	p.AvailableDates, _ = profileRepo.RemoveDate(p.AvailableDates, date)
	p.Available = len(p.AvailableDates) > 0
	return nil
}

func (f *fakeProfiles) ReleaseAvailableDate(ctx context.Context, providerID, date string, force *bool) error {
	p, ok := f.profiles[providerID]
	if !ok {
		return profileRepo.ErrProfileNotFound
	}
	p.AvailableDates, _ = profileRepo.InsertDate(p.AvailableDates, date)
	p.Available = len(p.AvailableDates) > 0
	return nil
}

func (f *fakeProfiles) SetBusyDates(ctx context.Context, providerID string, busy []string) error {
	if _, ok := f.profiles[providerID]; !ok {
		return profileRepo.ErrProfileNotFound
	}
	f.busySets[providerID] = busy
	return nil
}

type fakeOrders struct {
	active map[string][]models.Order
}

func (f *fakeOrders) GetByID(id string) (*models.Order, error) {
	return nil, orderRepo.ErrOrderNotFound
}

func (f *fakeOrders) Create(o *models.Order) error { return nil }

func (f *fakeOrders) UpdateFields(id string, fields bson.M) (*models.Order, error) {
	return nil, orderRepo.ErrOrderNotFound
}

func (f *fakeOrders) FindActiveByProvider(providerID string) ([]models.Order, error) {
	return f.active[providerID], nil
}

func (f *fakeOrders) FindExpiredAwaitingPayment(cutoff time.Time) ([]models.Order, error) {
	return nil, nil
}

func (f *fakeOrders) Claim(
	ctx context.Context,
	orderID, providerID, date string,
	check orderRepo.ClaimCheck,
) (*models.Order, *models.Order, error) {
	return nil, nil, orderRepo.ErrOrderNotFound
}

type fakeUsers struct {
	users   map[string]*models.User
	credits []models.LedgerEntry
}

func newFakeUsers() *fakeUsers {
	return &fakeUsers{users: make(map[string]*models.User)}
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
	for _, prev := range f.credits {
		if prev.OrderID == entry.OrderID && prev.Type == entry.Type {
			return nil
		}
	}
	if u, ok := f.users[entry.UserID]; ok {
		u.Balance += entry.Amount
	}
	f.credits = append(f.credits, entry)
	return nil
}
