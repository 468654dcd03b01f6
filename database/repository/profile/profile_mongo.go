package profileRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"beresin/database"
	"beresin/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// ErrProfileNotFound is returned when the provider has no profile document.
// Triggered handlers treat this as a logged no-op, not a failure.
var ErrProfileNotFound = errors.New("provider profile not found")

// MongoProfileRepo implements ProfileRepository using MongoDB.
type MongoProfileRepo struct {
	coll *mongo.Collection
}

// NewMongoProfileRepo creates a new instance of ProfileRepository using MongoDB.
func NewMongoProfileRepo() ProfileRepository {
	return &MongoProfileRepo{coll: database.DB().Collection("provider_profiles")}
}

func (r *MongoProfileRepo) GetByProviderID(providerID string) (*models.ProviderProfile, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	var profile models.ProviderProfile
	if err := r.coll.FindOne(ctx, bson.M{"providerId": providerID}).Decode(&profile); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrProfileNotFound
		}
		return nil, fmt.Errorf("failed to fetch profile for provider %s: %w", providerID, err)
	}
	return &profile, nil
}

func (r *MongoProfileRepo) Create(profile *models.ProviderProfile) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if _, err := r.coll.InsertOne(ctx, profile); err != nil {
		return fmt.Errorf("failed to create provider profile: %w", err)
	}
	return nil
}

func (r *MongoProfileRepo) SetBusyDates(ctx context.Context, providerID string, busyDates []string) error {
	opCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	update := bson.M{"$set": bson.M{
		"busyDates": busyDates,
		"updatedAt": time.Now(),
	}}
	res, err := r.coll.UpdateOne(opCtx, bson.M{"providerId": providerID}, update)
	if err != nil {
		return fmt.Errorf("failed to set busy dates for provider %s: %w", providerID, err)
	}
	if res.MatchedCount == 0 {
		return ErrProfileNotFound
	}
	return nil
}
