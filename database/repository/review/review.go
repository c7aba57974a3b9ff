package reviewRepo

import "opaleka/models"

// ReviewRepository defines data access for review documents. The unique index
// on booking_id backstops the one-review-per-booking invariant.
type ReviewRepository interface {
	// Create inserts a new review. Returns ErrDuplicate when a review for the
	// same booking already exists.
	Create(review *models.Review) error
	// GetByBookingID retrieves the review referencing a booking, or nil.
	GetByBookingID(bookingID string) (*models.Review, error)
	// ListByProvider lists a provider's reviews, newest first.
	ListByProvider(providerID string) ([]models.Review, error)
	// Delete removes a review by its ID; used to compensate a failed flag flip.
	Delete(id string) error
}
