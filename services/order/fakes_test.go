package order

import (
	"context"
	"time"

	orderRepo "beresin/database/repository/order"
	profileRepo "beresin/database/repository/profile"
	"beresin/models"

	"go.mongodb.org/mongo-driver/bson"
)

// fakeOrderRepo is an in-memory OrderRepository mirroring the claim
// transaction's read set.
type fakeOrderRepo struct {
	orders  map[string]*models.Order
	profile *models.ProviderProfile
	active  []models.Order
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{orders: make(map[string]*models.Order)}
}

func (f *fakeOrderRepo) GetByID(id string) (*models.Order, error) {
	o, ok := f.orders[id]
	if !ok {
		return nil, orderRepo.ErrOrderNotFound
	}
	cp := *o
	return &cp, nil
}

func (f *fakeOrderRepo) Create(o *models.Order) error {
	cp := *o
	f.orders[o.ID] = &cp
	return nil
}

func (f *fakeOrderRepo) UpdateFields(id string, fields bson.M) (*models.Order, error) {
	o, ok := f.orders[id]
	if !ok {
		return nil, orderRepo.ErrOrderNotFound
	}
	if v, ok := fields["status"].(string); ok {
		o.Status = v
	}
	if v, ok := fields["paymentStatus"].(string); ok {
		o.PaymentStatus = v
	}
	if v, ok := fields["payment"].(*models.PaymentSession); ok {
		o.Payment = v
	}
	o.UpdatedAt = time.Now()
	cp := *o
	return &cp, nil
}

func (f *fakeOrderRepo) FindActiveByProvider(providerID string) ([]models.Order, error) {
	var out []models.Order
	for _, o := range f.active {
		if o.ProviderID == providerID {
			out = append(out, o)
		}
	}
	return out, nil
}

func (f *fakeOrderRepo) FindExpiredAwaitingPayment(cutoff time.Time) ([]models.Order, error) {
	var out []models.Order
	for _, o := range f.orders {
		if o.Status == models.StatusAwaitingPayment && o.CreatedAt.Before(cutoff) {
			out = append(out, *o)
		}
	}
	return out, nil
}

func (f *fakeOrderRepo) Claim(
	ctx context.Context,
	orderID, providerID, date string,
	check orderRepo.ClaimCheck,
) (*models.Order, *models.Order, error) {
	o, ok := f.orders[orderID]
	if !ok {
		return nil, nil, orderRepo.ErrOrderNotFound
	}
	if f.profile == nil || f.profile.ProviderID != providerID {
		return nil, nil, orderRepo.ErrProfileNotFound
	}
	active, _ := f.FindActiveByProvider(providerID)

	before := *o
	if err := check(&before, f.profile, active); err != nil {
		return nil, nil, err
	}

	o.ProviderID = providerID
	o.ScheduledDate = date
	o.Status = models.StatusPending
	o.UpdatedAt = time.Now()
	after := *o
	return &before, &after, nil
}

// fakeProfileRepo records availability changes in memory.
type fakeProfileRepo struct {
	profiles map[string]*models.ProviderProfile
	busySets map[string][]string
}

func newFakeProfileRepo() *fakeProfileRepo {
	return &fakeProfileRepo{
		profiles: make(map[string]*models.ProviderProfile),
		busySets: make(map[string][]string),
	}
}

func (f *fakeProfileRepo) GetByProviderID(providerID string) (*models.ProviderProfile, error) {
	p, ok := f.profiles[providerID]
	if !ok {
		return nil, profileRepo.ErrProfileNotFound
	}
	cp := *p
	return &cp, nil
}

func (f *fakeProfileRepo) Create(p *models.ProviderProfile) error {
	cp := *p
	f.profiles[p.ProviderID] = &cp
	return nil
}

func (f *fakeProfileRepo) ConsumeAvailableDate(ctx context.Context, providerID, date string, force *bool) error {
	p, ok := f.profiles[providerID]
	if !ok {
		return profileRepo.ErrProfileNotFound
	}
	p.AvailableDates, _ = profileRepo.RemoveDate(p.AvailableDates, date)
	p.Available = len(p.AvailableDates) > 0
	if force != nil {
		p.Available = *force
	}
	return nil
}

func (f *fakeProfileRepo) ReleaseAvailableDate(ctx context.Context, providerID, date string, force *bool) error {
	p, ok := f.profiles[providerID]
	if !ok {
		return profileRepo.ErrProfileNotFound
	}
	p.AvailableDates, _ = profileRepo.InsertDate(p.AvailableDates, date)
	p.Available = len(p.AvailableDates) > 0
	if force != nil {
		p.Available = *force
	}
	return nil
}

func (f *fakeProfileRepo) SetBusyDates(ctx context.Context, providerID string, busy []string) error {
	if _, ok := f.profiles[providerID]; !ok {
		return profileRepo.ErrProfileNotFound
	}
	f.busySets[providerID] = busy
	return nil
}

// fakePublisher records published order events.
type fakePublisher struct {
	events []struct{ before, after *models.Order }
}

func (f *fakePublisher) PublishOrderEvent(ctx context.Context, before, after *models.Order) error {
	f.events = append(f.events, struct{ before, after *models.Order }{before, after})
	return nil
}
