package models

import "time"

// MaxReviewLength caps the free-text review body.
const MaxReviewLength = 1000

// Review is client feedback on a completed booking. At most one review may
// reference a booking; the unique index on booking_id enforces it.
type Review struct {
	ID         string    `bson:"id" json:"id"`
	BookingID  string    `bson:"booking_id" json:"bookingId"`
	UserID     string    `bson:"user_id" json:"userId"`
	ProviderID string    `bson:"provider_id" json:"providerId"`
	Rating     int       `bson:"rating" json:"rating"`
	Review     string    `bson:"review,omitempty" json:"review,omitempty"`
	CreatedAt  time.Time `bson:"created_at" json:"createdAt"`
}

// ReviewSummary aggregates a provider's reviews.
type ReviewSummary struct {
	ReviewCount   int     `json:"reviewCount"`
	AverageRating float64 `json:"averageRating"`
}
