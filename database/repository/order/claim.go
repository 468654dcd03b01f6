package orderRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"beresin/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// Sentinel errors surfaced to the service layer for taxonomy mapping.
var (
	ErrOrderNotFound   = errors.New("order not found")
	ErrProfileNotFound = errors.New("provider profile not found")
)

// Claim runs the claim inside one Mongo session transaction: it reads the
// order, the provider profile and the provider's active orders, asks check to
// validate them, and on success writes providerId, scheduledDate and the
// pending status onto the order.
//
// The follow-up consume of the date from availableDates is deliberately NOT
// part of this transaction; it runs afterwards and is reconciled by the busy
// dates recompute if it is missed.
func (r *MongoOrderRepo) Claim(
	ctx context.Context,
	orderID, providerID, date string,
	check ClaimCheck,
) (*models.Order, *models.Order, error) {
	client := r.coll.Database().Client()
	sess, err := client.StartSession()
	if err != nil {
		return nil, nil, fmt.Errorf("could not start mongo session: %w", err)
	}
	defer sess.EndSession(ctx)

	var before, after models.Order

	txnFn := func(sc mongo.SessionContext) error {
		if err := r.coll.FindOne(sc, bson.M{"id": orderID}).Decode(&before); err != nil {
			if err == mongo.ErrNoDocuments {
				return ErrOrderNotFound
			}
			return fmt.Errorf("read order failed: %w", err)
		}

		var profile models.ProviderProfile
		if err := r.profileColl.FindOne(sc, bson.M{"providerId": providerID}).Decode(&profile); err != nil {
			if err == mongo.ErrNoDocuments {
				return ErrProfileNotFound
			}
			return fmt.Errorf("read provider profile failed: %w", err)
		}

		cursor, err := r.coll.Find(sc, bson.M{
			"providerId": providerID,
			"status":     bson.M{"$in": models.ActiveStatuses},
		})
		if err != nil {
			return fmt.Errorf("query active orders failed: %w", err)
		}
		var active []models.Order
		if err := cursor.All(sc, &active); err != nil {
			return fmt.Errorf("decode active orders failed: %w", err)
		}

		if err := check(&before, &profile, active); err != nil {
			return err
		}

		update := bson.M{"$set": bson.M{
			"providerId":    providerID,
			"scheduledDate": date,
			"status":        models.StatusPending,
			"updatedAt":     time.Now(),
		}}
		res, err := r.coll.UpdateOne(sc, bson.M{"id": orderID}, update)
		if err != nil {
			return fmt.Errorf("write claimed order failed: %w", err)
		}
		if res.MatchedCount == 0 {
			return ErrOrderNotFound
		}

		after = before
		after.ProviderID = providerID
		after.ScheduledDate = date
		after.Status = models.StatusPending
		after.UpdatedAt = time.Now()
		return nil
	}

	if err := mongo.WithSession(ctx, sess, func(sc mongo.SessionContext) error {
		if err := sc.StartTransaction(); err != nil {
			return err
		}
		if err := txnFn(sc); err != nil {
			_ = sc.AbortTransaction(sc)
			return err
		}
		return sc.CommitTransaction(sc)
	}); err != nil {
		return nil, nil, err
	}

	return &before, &after, nil
}
