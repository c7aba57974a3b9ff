package models

import "time"

// Booking lifecycle states. A booking starts pending, moves to confirmed or
// rejected by provider action, and reaches completed via an explicit
// completion action. Client cancellation reuses the rejected status.
const (
	BookingPending   = "pending"
	BookingConfirmed = "confirmed"
	BookingRejected  = "rejected"
	BookingCompleted = "completed"
)

// Booking is a service booking between a client and a provider.
//
// DeletedByUsers is a per-viewer soft-delete marker: a user listed there no
// longer sees the booking in history listings, while the other party's view
// and the underlying record are unaffected.
type Booking struct {
	ID             string    `bson:"id" json:"id"`
	UserID         string    `bson:"user_id" json:"userId"`
	ProviderID     string    `bson:"provider_id" json:"providerId"`
	ServiceName    string    `bson:"service_name" json:"serviceName"`
	Date           string    `bson:"date" json:"date"` // "YYYY-MM-DD"
	Time           string    `bson:"time" json:"time"` // "HH:MM"
	Price          float64   `bson:"price" json:"price"`
	Address        string    `bson:"address" json:"address"`
	Status         string    `bson:"status" json:"status"`
	PendingRating  bool      `bson:"pending_rating" json:"pendingRating"`
	SkippedRating  bool      `bson:"skipped_rating" json:"skippedRating"`
	DeletedByUsers []string  `bson:"deleted_by_users" json:"-"`
	CreatedAt      time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt      time.Time `bson:"updated_at" json:"updatedAt"`
}

// IsParty reports whether the given user is the booking's client or provider.
func (b *Booking) IsParty(userID string) bool {
	return b.UserID == userID || b.ProviderID == userID
}

// BookingRequest is the payload for creating a booking.
type BookingRequest struct {
	UserID      string  `json:"userId"`
	ProviderID  string  `json:"providerId"`
	ServiceName string  `json:"serviceName"`
	Date        string  `json:"date"`
	Time        string  `json:"time"`
	Price       float64 `json:"price"`
	Address     string  `json:"address"`
}

// ProviderBookingView is a booking joined with client contact details, as
// returned by the provider-facing listing.
type ProviderBookingView struct {
	ID           string    `json:"id"`
	ServiceName  string    `json:"serviceName"`
	ClientName   string    `json:"clientName"`
	Email        string    `json:"email"`
	Phone        string    `json:"phone"`
	Date         string    `json:"date"`
	Time         string    `json:"time"`
	Price        float64   `json:"price"`
	Address      string    `json:"address"`
	ProfileImage string    `json:"profileImage"`
	CreatedAt    time.Time `json:"createdAt"`
}
