package catalogRepo

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

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

// MongoServiceRepo implements ServiceRepository using MongoDB.
type MongoServiceRepo struct {
	coll *mongo.Collection
}

// NewMongoServiceRepo creates a new ServiceRepository using MongoDB.
func NewMongoServiceRepo() ServiceRepository {
	coll := database.Collection("services")
	repo := &MongoServiceRepo{coll: coll}

	ctx, cancel := newContext(10 * time.Second)
	defer cancel()
	_, err := coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "name", Value: 1}}, Options: options.Index().SetUnique(true)},
	})
	if err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

// Create inserts a new catalog entry.
func (r *MongoServiceRepo) Create(s *models.Service) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	now := time.Now()
	s.CreatedAt = now
	s.UpdatedAt = now

	if _, err := r.coll.InsertOne(ctx, s); err != nil {
		return fmt.Errorf("failed to create service: %w", err)
	}
	return nil
}

// List returns every catalog entry, name-sorted.
func (r *MongoServiceRepo) List() ([]models.Service, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})
	cursor, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list services: %w", err)
	}
	defer cursor.Close(ctx)

	var out []models.Service
	for cursor.Next(ctx) {
		var s models.Service
		if err := cursor.Decode(&s); err != nil {
			return nil, fmt.Errorf("failed to decode service: %w", err)
		}
		out = append(out, s)
	}
	return out, nil
}

// Categories returns the distinct category names.
func (r *MongoServiceRepo) Categories() ([]string, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	values, err := r.coll.Distinct(ctx, "category", bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}

	categories := make([]string, 0, len(values))
	for _, v := range values {
		if s, ok := v.(string); ok {
			categories = append(categories, s)
		}
	}
	return categories, nil
}

// Delete removes a catalog entry by ID.
func (r *MongoServiceRepo) Delete(id string) (bool, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	result, err := r.coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return false, fmt.Errorf("failed to delete service %s: %w", id, err)
	}
	return result.DeletedCount > 0, nil
}

// MongoTipRepo implements TipRepository using MongoDB.
type MongoTipRepo struct {
	coll *mongo.Collection
}

// NewMongoTipRepo creates a new TipRepository using MongoDB.
func NewMongoTipRepo() TipRepository {
	coll := database.Collection("tips")
	repo := &MongoTipRepo{coll: coll}

	ctx, cancel := newContext(10 * time.Second)
	defer cancel()
	_, err := coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true),
	})
	if err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

// Create inserts a new tip.
func (r *MongoTipRepo) Create(t *models.Tip) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	t.CreatedAt = time.Now()
	if _, err := r.coll.InsertOne(ctx, t); err != nil {
		return fmt.Errorf("failed to create tip: %w", err)
	}
	return nil
}

// List returns every tip, newest first.
func (r *MongoTipRepo) List() ([]models.Tip, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list tips: %w", err)
	}
	defer cursor.Close(ctx)

	var out []models.Tip
	for cursor.Next(ctx) {
		var t models.Tip
		if err := cursor.Decode(&t); err != nil {
			return nil, fmt.Errorf("failed to decode tip: %w", err)
		}
		out = append(out, t)
	}
	return out, nil
}

// Update applies new content to a tip.
func (r *MongoTipRepo) Update(t *models.Tip) (bool, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	result, err := r.coll.UpdateOne(ctx,
		bson.M{"id": t.ID},
		bson.M{"$set": bson.M{
			"icon":        t.Icon,
			"title":       t.Title,
			"description": t.Description,
			"colors":      t.Colors,
		}},
	)
	if err != nil {
		return false, fmt.Errorf("failed to update tip %s: %w", t.ID, err)
	}
	return result.MatchedCount > 0, nil
}

// Delete removes a tip by ID.
func (r *MongoTipRepo) Delete(id string) (bool, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	result, err := r.coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return false, fmt.Errorf("failed to delete tip %s: %w", id, err)
	}
	return result.DeletedCount > 0, nil
}
