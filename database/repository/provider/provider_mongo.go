package providerRepo

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

// MongoProviderDetailsRepo implements ProviderDetailsRepository using MongoDB.
type MongoProviderDetailsRepo struct {
	coll *mongo.Collection
}

// NewMongoProviderDetailsRepo creates a new ProviderDetailsRepository using MongoDB.
func NewMongoProviderDetailsRepo() ProviderDetailsRepository {
	coll := database.Collection("provider_details")
	repo := &MongoProviderDetailsRepo{coll: coll}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

func (r *MongoProviderDetailsRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "user_id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "verification_status", Value: 1}, {Key: "payment_status", Value: 1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// visibleFilter matches the marketplace visibility rule.
func visibleFilter() bson.M {
	return bson.M{
		"verification_status": models.VerificationVerified,
		"$or": []bson.M{
			{"payment_status": models.PaymentFree},
			{"payment_status": models.PaymentPaid, "paid_amount": bson.M{"$gt": 0}},
		},
	}
}

// Create inserts a new provider details document.
func (r *MongoProviderDetailsRepo) Create(details *models.ProviderDetails) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	now := time.Now()
	details.CreatedAt = now
	details.UpdatedAt = now

	_, err := r.coll.InsertOne(ctx, details)
	if err != nil {
		return fmt.Errorf("failed to create provider details: %w", err)
	}
	return nil
}

// GetByUserID retrieves details for the given provider user. Returns nil when absent.
func (r *MongoProviderDetailsRepo) GetByUserID(userID string) (*models.ProviderDetails, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var details models.ProviderDetails
	if err := r.coll.FindOne(ctx, bson.M{"user_id": userID}).Decode(&details); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch provider details for user %s: %w", userID, err)
	}
	return &details, nil
}

// SetVerification updates verification status and admin notes.
func (r *MongoProviderDetailsRepo) SetVerification(userID, status, notes string) (bool, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	result, err := r.coll.UpdateOne(ctx,
		bson.M{"user_id": userID},
		bson.M{"$set": bson.M{
			"verification_status": status,
			"admin_notes":         notes,
			"updated_at":          time.Now(),
		}},
	)
	if err != nil {
		return false, fmt.Errorf("failed to set verification for user %s: %w", userID, err)
	}
	return result.MatchedCount > 0, nil
}

// MarkUnpaidIfFree atomically moves a Free provider to Unpaid. The filter pins
// payment_status=Free, so concurrent first bookings apply the transition at
// most once.
func (r *MongoProviderDetailsRepo) MarkUnpaidIfFree(userID string) (bool, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	result, err := r.coll.UpdateOne(ctx,
		bson.M{"user_id": userID, "payment_status": models.PaymentFree},
		bson.M{"$set": bson.M{"payment_status": models.PaymentUnpaid, "updated_at": time.Now()}},
	)
	if err != nil {
		return false, fmt.Errorf("failed to mark provider %s unpaid: %w", userID, err)
	}
	return result.ModifiedCount > 0, nil
}

// ApplyPayment accumulates the paid amount and sets payment_status=Paid.
func (r *MongoProviderDetailsRepo) ApplyPayment(userID string, amount float64) (*models.ProviderDetails, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var details models.ProviderDetails
	err := r.coll.FindOneAndUpdate(ctx,
		bson.M{"user_id": userID},
		bson.M{
			"$inc": bson.M{"paid_amount": amount},
			"$set": bson.M{"payment_status": models.PaymentPaid, "updated_at": time.Now()},
		},
		opts,
	).Decode(&details)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to apply payment for user %s: %w", userID, err)
	}
	return &details, nil
}

func (r *MongoProviderDetailsRepo) find(filter bson.M) ([]models.ProviderDetails, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	cursor, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list provider details: %w", err)
	}
	defer cursor.Close(ctx)

	var out []models.ProviderDetails
	for cursor.Next(ctx) {
		var d models.ProviderDetails
		if err := cursor.Decode(&d); err != nil {
			return nil, fmt.Errorf("failed to decode provider details: %w", err)
		}
		out = append(out, d)
	}
	return out, nil
}

// ListVisible lists details satisfying the marketplace visibility rule.
func (r *MongoProviderDetailsRepo) ListVisible() ([]models.ProviderDetails, error) {
	return r.find(visibleFilter())
}

// ListPendingVerification lists details still awaiting verification.
func (r *MongoProviderDetailsRepo) ListPendingVerification() ([]models.ProviderDetails, error) {
	return r.find(bson.M{"verification_status": models.VerificationPending})
}

// ListNeedingReminder lists details with payment status Free or Unpaid.
func (r *MongoProviderDetailsRepo) ListNeedingReminder() ([]models.ProviderDetails, error) {
	return r.find(bson.M{
		"payment_status": bson.M{"$in": []string{models.PaymentFree, models.PaymentUnpaid}},
	})
}

// StampReminder records when a payment reminder was last sent.
func (r *MongoProviderDetailsRepo) StampReminder(userID string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	_, err := r.coll.UpdateOne(ctx,
		bson.M{"user_id": userID},
		bson.M{"$set": bson.M{"last_reminder_date": time.Now(), "updated_at": time.Now()}},
	)
	if err != nil {
		return fmt.Errorf("failed to stamp reminder for user %s: %w", userID, err)
	}
	return nil
}

func (r *MongoProviderDetailsRepo) count(filter bson.M) (int64, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	count, err := r.coll.CountDocuments(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("failed to count provider details: %w", err)
	}
	return count, nil
}

// CountPendingVerification counts details awaiting verification.
func (r *MongoProviderDetailsRepo) CountPendingVerification() (int64, error) {
	return r.count(bson.M{"verification_status": models.VerificationPending})
}

// CountVisible counts details satisfying the visibility rule.
func (r *MongoProviderDetailsRepo) CountVisible() (int64, error) {
	return r.count(visibleFilter())
}

// CountByPaymentStatus counts details with the given payment status.
func (r *MongoProviderDetailsRepo) CountByPaymentStatus(status string) (int64, error) {
	return r.count(bson.M{"payment_status": status})
}
