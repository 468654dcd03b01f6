// Package sync keeps provider calendars consistent with order writes. The
// directive computation is a pure function over before/after snapshots; the
// I/O that applies directives lives in the engine.
package sync

import "beresin/models"

// Action is what a directive does to a provider's availableDates.
type Action string

const (
	ActionConsume Action = "consume"
	ActionRelease Action = "release"
)

// Directive is one consume/release instruction against a provider calendar.
type Directive struct {
	ProviderID string `json:"providerId"`
	Date       string `json:"date"`
	Action     Action `json:"action"`
}

func isTerminal(status string) bool {
	return status == models.StatusCancelled || status == models.StatusCompleted
}

// Diff computes the availability directives implied by an order write.
// Either snapshot may be nil (create and delete events).
func Diff(before, after *models.Order) []Directive {
	var beforeProvider, afterProvider string
	if before != nil {
		beforeProvider = before.ProviderID
	}
	if after != nil {
		afterProvider = after.ProviderID
	}

	var directives []Directive
	consume := func(providerID, date string) {
		if providerID != "" && date != "" {
			directives = append(directives, Directive{providerID, date, ActionConsume})
		}
	}
	release := func(providerID, date string) {
		if providerID != "" && date != "" {
			directives = append(directives, Directive{providerID, date, ActionRelease})
		}
	}

	switch {
	case beforeProvider == "" && afterProvider == "":
		// No provider on either side, nothing to sync.

	case beforeProvider == "" && afterProvider != "":
		consume(afterProvider, after.ScheduledDate)

	case beforeProvider != "" && afterProvider == "":
		// Provider removed, or the order document deleted.
		release(beforeProvider, before.ScheduledDate)

	case beforeProvider != afterProvider:
		release(beforeProvider, before.ScheduledDate)
		consume(afterProvider, after.ScheduledDate)

	default:
		// Same provider on both sides.
		if !isTerminal(before.Status) && isTerminal(after.Status) {
			date := after.ScheduledDate
			if date == "" {
				date = before.ScheduledDate
			}
			release(afterProvider, date)
			break
		}
		if before.ScheduledDate != after.ScheduledDate {
			release(beforeProvider, before.ScheduledDate)
			consume(afterProvider, after.ScheduledDate)
		}
	}

	return directives
}
