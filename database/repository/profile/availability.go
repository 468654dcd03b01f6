package profileRepo

import (
	"context"
	"fmt"
	"sort"
	"time"

	"beresin/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// RemoveDate returns dates without date and whether anything changed.
func RemoveDate(dates []string, date string) ([]string, bool) {
	out := make([]string, 0, len(dates))
	changed := false
	for _, d := range dates {
		if d == date {
			changed = true
			continue
		}
		out = append(out, d)
	}
	return out, changed
}

// InsertDate returns dates with date added, sorted and de-duplicated, and
// whether anything changed.
func InsertDate(dates []string, date string) ([]string, bool) {
	for _, d := range dates {
		if d == date {
			return dates, false
		}
	}
	out := append(append([]string{}, dates...), date)
	sort.Strings(out)
	return out, true
}

func (r *MongoProfileRepo) ConsumeAvailableDate(ctx context.Context, providerID, date string, forceAvailable *bool) error {
	return r.applyAvailabilityChange(ctx, providerID, forceAvailable, func(dates []string) ([]string, bool) {
		return RemoveDate(dates, date)
	})
}

func (r *MongoProfileRepo) ReleaseAvailableDate(ctx context.Context, providerID, date string, forceAvailable *bool) error {
	return r.applyAvailabilityChange(ctx, providerID, forceAvailable, func(dates []string) ([]string, bool) {
		return InsertDate(dates, date)
	})
}

// applyAvailabilityChange runs mutate against the current availableDates
// inside its own transaction, recomputes the available flag, and writes only
// the fields that actually changed. Re-reading current state before writing
// makes duplicate consume/release directives converge under redelivery.
func (r *MongoProfileRepo) applyAvailabilityChange(
	ctx context.Context,
	providerID string,
	forceAvailable *bool,
	mutate func(dates []string) ([]string, bool),
) error {
	client := r.coll.Database().Client()
	sess, err := client.StartSession()
	if err != nil {
		return fmt.Errorf("could not start mongo session: %w", err)
	}
	defer sess.EndSession(ctx)

	txnFn := func(sc mongo.SessionContext) error {
		var profile models.ProviderProfile
		if err := r.coll.FindOne(sc, bson.M{"providerId": providerID}).Decode(&profile); err != nil {
			if err == mongo.ErrNoDocuments {
				return ErrProfileNotFound
			}
			return fmt.Errorf("read provider profile failed: %w", err)
		}

		newDates, datesChanged := mutate(profile.AvailableDates)

		available := len(newDates) > 0
		if forceAvailable != nil {
			available = *forceAvailable
		}

		set := bson.M{}
		if datesChanged {
			set["availableDates"] = newDates
		}
		if available != profile.Available {
			set["available"] = available
		}
		if len(set) == 0 {
			return nil
		}
		set["updatedAt"] = time.Now()

		if _, err := r.coll.UpdateOne(sc, bson.M{"providerId": providerID}, bson.M{"$set": set}); err != nil {
			return fmt.Errorf("write provider profile failed: %w", err)
		}
		return nil
	}

	return mongo.WithSession(ctx, sess, func(sc mongo.SessionContext) error {
		if err := sc.StartTransaction(); err != nil {
			return err
		}
		if err := txnFn(sc); err != nil {
			_ = sc.AbortTransaction(sc)
			return err
		}
		return sc.CommitTransaction(sc)
	})
}
