package profileRepo

import (
	"context"
	"fmt"
	"time"

	"opaleka/database"
	"opaleka/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoProfileRepo implements ProfileRepository using MongoDB.
type MongoProfileRepo struct {
	coll *mongo.Collection
}

// NewMongoProfileRepo creates a new ProfileRepository using MongoDB.
func NewMongoProfileRepo() ProfileRepository {
	coll := database.Collection("complete_profiles")
	repo := &MongoProfileRepo{coll: coll}

	ctx, cancel := newContext(10 * time.Second)
	defer cancel()
	_, err := coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "user_id", Value: 1}}, Options: options.Index().SetUnique(true),
	})
	if err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

// Upsert creates or replaces the profile for its user.
func (r *MongoProfileRepo) Upsert(p *models.CompleteProfile) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	now := time.Now()
	p.UpdatedAt = now
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}

	opts := options.Replace().SetUpsert(true)
	_, err := r.coll.ReplaceOne(ctx, bson.M{"user_id": p.UserID}, p, opts)
	if err != nil {
		return fmt.Errorf("failed to upsert profile for user %s: %w", p.UserID, err)
	}
	return nil
}

// GetByUserID retrieves a user's profile. Returns nil when absent.
func (r *MongoProfileRepo) GetByUserID(userID string) (*models.CompleteProfile, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var p models.CompleteProfile
	if err := r.coll.FindOne(ctx, bson.M{"user_id": userID}).Decode(&p); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch profile for user %s: %w", userID, err)
	}
	return &p, nil
}

// DeleteByUserID removes a user's profile if present.
func (r *MongoProfileRepo) DeleteByUserID(userID string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	if _, err := r.coll.DeleteOne(ctx, bson.M{"user_id": userID}); err != nil {
		return fmt.Errorf("failed to delete profile for user %s: %w", userID, err)
	}
	return nil
}
