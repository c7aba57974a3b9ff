package bookingRepo

import "opaleka/models"

// BookingRepository defines data access for booking documents. Status
// transitions are expressed as conditional updates so concurrent requests
// cannot double-apply them.
type BookingRepository interface {
	// Create inserts a new booking record.
	Create(b *models.Booking) error
	// GetByID retrieves a booking by its unique ID, or nil when absent.
	GetByID(id string) (*models.Booking, error)
	// TransitionStatus atomically moves a booking from one status to another
	// and returns the updated document, or nil when no booking matched.
	TransitionStatus(id, from, to string) (*models.Booking, error)
	// MarkCompleted sets status=completed and pending_rating=true in a single
	// update and returns the updated document, or nil when absent.
	MarkCompleted(id string) (*models.Booking, error)
	// CancelPending moves a client's own pending booking to rejected, or
	// returns nil when no such booking exists.
	CancelPending(id, clientID string) (*models.Booking, error)
	// ResolveRating clears pending_rating (and optionally sets
	// skipped_rating) on a booking that is completed and awaiting a rating.
	// Reports whether a document matched.
	ResolveRating(id string, skipped bool) (bool, error)
	// AddDeletedBy idempotently appends a viewer to the soft-delete set.
	AddDeletedBy(id, userID string) error
	// DeletePending hard-deletes a client's own pending booking. Reports
	// whether a document was removed.
	DeletePending(id, clientID string) (bool, error)
	// ListByProvider lists a provider's bookings with the given status,
	// excluding those the provider soft-deleted, newest first.
	ListByProvider(providerID, status string) ([]models.Booking, error)
	// ListByClient lists a client's bookings with the given status, excluding
	// those the client soft-deleted, newest first.
	ListByClient(clientID, status string) ([]models.Booking, error)
	// ListPendingRatings lists a client's completed bookings awaiting a rating.
	ListPendingRatings(clientID string) ([]models.Booking, error)
}
