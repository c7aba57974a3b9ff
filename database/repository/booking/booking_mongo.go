package bookingRepo

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

// MongoBookingRepo implements BookingRepository using MongoDB.
type MongoBookingRepo struct {
	coll *mongo.Collection
}

// NewMongoBookingRepo creates a new instance of BookingRepository using MongoDB.
func NewMongoBookingRepo() BookingRepository {
	coll := database.Collection("bookings")
	repo := &MongoBookingRepo{coll: coll}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

func (r *MongoBookingRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "provider_id", Value: 1}, {Key: "status", Value: 1}}},
		{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "status", Value: 1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// Create inserts a new booking document.
func (r *MongoBookingRepo) Create(b *models.Booking) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	now := time.Now()
	b.CreatedAt = now
	b.UpdatedAt = now
	if b.DeletedByUsers == nil {
		b.DeletedByUsers = []string{}
	}

	_, err := r.coll.InsertOne(ctx, b)
	if err != nil {
		return fmt.Errorf("failed to create booking: %w", err)
	}
	return nil
}

// GetByID retrieves a booking by its unique ID. Returns nil when absent.
func (r *MongoBookingRepo) GetByID(id string) (*models.Booking, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var b models.Booking
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&b); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch booking with id %s: %w", id, err)
	}
	return &b, nil
}

// findOneAndUpdate runs a conditional update returning the post-update
// document, or nil when the filter matched nothing.
func (r *MongoBookingRepo) findOneAndUpdate(filter, update bson.M) (*models.Booking, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var b models.Booking
	if err := r.coll.FindOneAndUpdate(ctx, filter, update, opts).Decode(&b); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to update booking: %w", err)
	}
	return &b, nil
}

// TransitionStatus atomically moves a booking from one status to another.
func (r *MongoBookingRepo) TransitionStatus(id, from, to string) (*models.Booking, error) {
	return r.findOneAndUpdate(
		bson.M{"id": id, "status": from},
		bson.M{"$set": bson.M{"status": to, "updated_at": time.Now()}},
	)
}

// MarkCompleted sets status=completed and arms the pending rating flag. The
// filter admits both pending and confirmed bookings so a terminal booking
// cannot be completed by a late request.
func (r *MongoBookingRepo) MarkCompleted(id string) (*models.Booking, error) {
	return r.findOneAndUpdate(
		bson.M{"id": id, "status": bson.M{"$in": []string{models.BookingPending, models.BookingConfirmed}}},
		bson.M{"$set": bson.M{
			"status":         models.BookingCompleted,
			"pending_rating": true,
			"updated_at":     time.Now(),
		}},
	)
}

// CancelPending moves a client's own pending booking to rejected.
func (r *MongoBookingRepo) CancelPending(id, clientID string) (*models.Booking, error) {
	return r.findOneAndUpdate(
		bson.M{"id": id, "user_id": clientID, "status": models.BookingPending},
		bson.M{"$set": bson.M{"status": models.BookingRejected, "updated_at": time.Now()}},
	)
}

// ResolveRating clears pending_rating on an eligible booking. The filter pins
// status=completed and pending_rating=true so a second resolution attempt
// matches nothing.
func (r *MongoBookingRepo) ResolveRating(id string, skipped bool) (bool, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	set := bson.M{"pending_rating": false, "updated_at": time.Now()}
	if skipped {
		set["skipped_rating"] = true
	}
	result, err := r.coll.UpdateOne(ctx,
		bson.M{"id": id, "status": models.BookingCompleted, "pending_rating": true},
		bson.M{"$set": set},
	)
	if err != nil {
		return false, fmt.Errorf("failed to resolve rating for booking %s: %w", id, err)
	}
	return result.MatchedCount > 0, nil
}

// AddDeletedBy idempotently appends a viewer to the soft-delete set.
func (r *MongoBookingRepo) AddDeletedBy(id, userID string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	result, err := r.coll.UpdateOne(ctx,
		bson.M{"id": id},
		bson.M{"$addToSet": bson.M{"deleted_by_users": userID}},
	)
	if err != nil {
		return fmt.Errorf("failed to soft-delete booking %s: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("booking with id %s not found", id)
	}
	return nil
}

// DeletePending hard-deletes a client's own pending booking.
func (r *MongoBookingRepo) DeletePending(id, clientID string) (bool, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	result, err := r.coll.DeleteOne(ctx, bson.M{
		"id":      id,
		"user_id": clientID,
		"status":  models.BookingPending,
	})
	if err != nil {
		return false, fmt.Errorf("failed to delete pending booking %s: %w", id, err)
	}
	return result.DeletedCount > 0, nil
}

// list runs a find excluding bookings the viewer soft-deleted, newest first.
func (r *MongoBookingRepo) list(filter bson.M, viewerID string) ([]models.Booking, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	filter["deleted_by_users"] = bson.M{"$ne": viewerID}
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})

	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}
	defer cursor.Close(ctx)

	var bookings []models.Booking
	for cursor.Next(ctx) {
		var b models.Booking
		if err := cursor.Decode(&b); err != nil {
			return nil, fmt.Errorf("failed to decode booking: %w", err)
		}
		bookings = append(bookings, b)
	}
	return bookings, nil
}

// ListByProvider lists a provider's bookings with the given status.
func (r *MongoBookingRepo) ListByProvider(providerID, status string) ([]models.Booking, error) {
	return r.list(bson.M{"provider_id": providerID, "status": status}, providerID)
}

// ListByClient lists a client's bookings with the given status.
func (r *MongoBookingRepo) ListByClient(clientID, status string) ([]models.Booking, error) {
	return r.list(bson.M{"user_id": clientID, "status": status}, clientID)
}

// ListPendingRatings lists a client's completed bookings awaiting a rating.
func (r *MongoBookingRepo) ListPendingRatings(clientID string) ([]models.Booking, error) {
	return r.list(bson.M{
		"user_id":        clientID,
		"status":         models.BookingCompleted,
		"pending_rating": true,
	}, clientID)
}
