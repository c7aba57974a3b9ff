package booking

import "opaleka/models"

// Dispatcher receives booking transitions and fans out notifications. Calls
// are best-effort; the caller never checks for failure.
type Dispatcher interface {
	BookingCreated(b *models.Booking, client, provider *models.User)
	BookingDecision(b *models.Booking, client *models.User, accepted bool)
	BookingCompleted(b *models.Booking, client, provider *models.User)
}

// PaymentTracker flips a provider's payment standing when their first booking
// arrives.
type PaymentTracker interface {
	FirstBookingTransition(providerID string) error
}

// Service owns the booking lifecycle.
type Service interface {
	// Create validates and stores a new pending booking, flips the provider's
	// free trial if this is their first booking, and notifies the provider.
	Create(req *models.BookingRequest) (*models.Booking, error)
	// Accept moves a pending booking to confirmed.
	Accept(id string) (*models.Booking, error)
	// Reject moves a pending booking to rejected.
	Reject(id string) (*models.Booking, error)
	// Complete moves a confirmed booking to completed and arms the rating
	// prompt.
	Complete(id string) (*models.Booking, error)
	// Cancel lets the booking's own client withdraw while still pending.
	Cancel(id, clientID string) (*models.Booking, error)
	// SoftDelete hides a terminal booking from one party's listings only.
	SoftDelete(id, userID string) error
	// DeletePending hard-deletes a client's own pending booking.
	DeletePending(id, clientID string) error
	// ProviderBookings lists a provider's bookings with the given status,
	// joined with client contact details. Status matching is case-insensitive.
	ProviderBookings(providerID, status string) ([]models.ProviderBookingView, error)
	// ClientBookings lists a client's bookings with the given status.
	ClientBookings(clientID, status string) ([]models.Booking, error)
}
