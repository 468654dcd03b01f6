package userRepo

import (
	"context"
	"fmt"

	"beresin/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// CreditRefund credits the user's balance and appends the ledger entry in one
// transaction. The ledger doubles as the idempotency record: if an entry of
// the same type already exists for the order, the whole operation is a no-op.
func (r *MongoUserRepo) CreditRefund(ctx context.Context, entry models.LedgerEntry) error {
	client := r.coll.Database().Client()
	sess, err := client.StartSession()
	if err != nil {
		return fmt.Errorf("could not start mongo session: %w", err)
	}
	defer sess.EndSession(ctx)

	txnFn := func(sc mongo.SessionContext) error {
		existing := r.ledgerColl.FindOne(sc, bson.M{
			"orderId": entry.OrderID,
			"type":    entry.Type,
		})
		if existing.Err() == nil {
			return nil
		}
		if existing.Err() != mongo.ErrNoDocuments {
			return fmt.Errorf("ledger lookup failed: %w", existing.Err())
		}

		res, err := r.coll.UpdateOne(sc,
			bson.M{"id": entry.UserID},
			bson.M{"$inc": bson.M{"balance": entry.Amount}},
		)
		if err != nil {
			return fmt.Errorf("balance credit failed: %w", err)
		}
		if res.MatchedCount == 0 {
			return ErrUserNotFound
		}

		if _, err := r.ledgerColl.InsertOne(sc, entry); err != nil {
			return fmt.Errorf("ledger insert failed: %w", err)
		}
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
		return fmt.Errorf("refund credit transaction failed: %w", err)
	}

	return nil
}
