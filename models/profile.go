package models

import "time"

// ProviderProfile is a provider's booking calendar.
//
// AvailableDates is the provider's own declared capacity: sorted, de-duplicated
// ISO dates ("2006-01-02") the provider has opted to accept work on.
// BusyDates is a derived projection of dates occupied by currently-active
// assigned orders; it is never edited directly, only recomputed.
type ProviderProfile struct {
	ProviderID     string    `bson:"providerId" json:"providerId"`
	AvailableDates []string  `bson:"availableDates" json:"availableDates"`
	BusyDates      []string  `bson:"busyDates" json:"busyDates"`
	Available      bool      `bson:"available" json:"available"`
	CreatedAt      time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt      time.Time `bson:"updatedAt" json:"updatedAt"`
}

// HasAvailableDate reports whether date is in the provider's declared capacity.
func (p *ProviderProfile) HasAvailableDate(date string) bool {
	for _, d := range p.AvailableDates {
		if d == date {
			return true
		}
	}
	return false
}
