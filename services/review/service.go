package review

import (
	"errors"
	"math"
	"time"

	bookingRepo "opaleka/database/repository/booking"
	reviewRepo "opaleka/database/repository/review"
	"opaleka/models"
	"opaleka/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// SubmitRequest is the payload for submitting a review.
type SubmitRequest struct {
	BookingID string `json:"bookingId"`
	UserID    string `json:"userId"`
	Rating    int    `json:"rating"`
	Review    string `json:"review"`
}

// Service owns review submission and the pending-rating tracker.
type Service interface {
	// Submit records a client's rating of a completed booking and clears its
	// pending-rating flag. A booking can be reviewed at most once.
	Submit(req *SubmitRequest) (*models.Review, error)
	// Skip dismisses the rating prompt for a completed booking without
	// creating a review.
	Skip(bookingID, userID string) error
	// PendingRatings lists a client's completed bookings still awaiting a
	// rating.
	PendingRatings(userID string) ([]models.Booking, error)
	// ProviderReviews lists a provider's reviews together with their summary.
	ProviderReviews(providerID string) ([]models.Review, *models.ReviewSummary, error)
	// ProviderSummary aggregates a provider's review count and average rating.
	ProviderSummary(providerID string) (*models.ReviewSummary, error)
}

// DefaultService is the production review service.
type DefaultService struct {
	Reviews  reviewRepo.ReviewRepository
	Bookings bookingRepo.BookingRepository
}

// NewDefaultService builds the review service.
func NewDefaultService(reviews reviewRepo.ReviewRepository, bookings bookingRepo.BookingRepository) *DefaultService {
	return &DefaultService{Reviews: reviews, Bookings: bookings}
}

// eligibleBooking loads the booking and checks that the caller may resolve its
// rating: the caller is its client, it is completed, and the prompt is still
// armed.
func (s *DefaultService) eligibleBooking(bookingID, userID string) (*models.Booking, error) {
	b, err := s.Bookings.GetByID(bookingID)
	if err != nil {
		return nil, err
	}
	if b == nil || b.UserID != userID {
		return nil, utils.NewNotFoundError("booking")
	}
	if b.Status != models.BookingCompleted {
		return nil, utils.NewConflictError("only completed bookings can be rated")
	}
	if !b.PendingRating {
		return nil, utils.NewConflictError("this booking has already been rated")
	}
	return b, nil
}

// Submit records the rating, then clears pending_rating. The conditional flag
// update plus the unique booking_id index keep a racing second submission from
// creating a duplicate review.
func (s *DefaultService) Submit(req *SubmitRequest) (*models.Review, error) {
	if req.BookingID == "" || req.UserID == "" {
		return nil, utils.NewValidationError("bookingId and userId are required")
	}
	if req.Rating < 1 || req.Rating > 5 {
		return nil, utils.NewValidationError("rating must be between 1 and 5")
	}
	if len(req.Review) > models.MaxReviewLength {
		return nil, utils.NewValidationError("review must be at most %d characters", models.MaxReviewLength)
	}

	b, err := s.eligibleBooking(req.BookingID, req.UserID)
	if err != nil {
		return nil, err
	}

	review := &models.Review{
		ID:         uuid.New().String(),
		BookingID:  b.ID,
		UserID:     b.UserID,
		ProviderID: b.ProviderID,
		Rating:     req.Rating,
		Review:     req.Review,
		CreatedAt:  time.Now().UTC(),
	}
	if err := s.Reviews.Create(review); err != nil {
		if errors.Is(err, reviewRepo.ErrDuplicate) {
			return nil, utils.NewConflictError("this booking has already been rated")
		}
		return nil, err
	}

	matched, err := s.Bookings.ResolveRating(b.ID, false)
	if err != nil || !matched {
		// Compensate: the review must not outlive a pending_rating we could
		// not clear, or the prompt would reappear alongside a stored review.
		if derr := s.Reviews.Delete(review.ID); derr != nil {
			zap.L().Error("failed to roll back review after flag update failure",
				zap.String("reviewID", review.ID), zap.Error(derr))
		}
		if err != nil {
			return nil, err
		}
		return nil, utils.NewConflictError("this booking has already been rated")
	}
	return review, nil
}

// Skip dismisses the rating prompt without storing a review.
func (s *DefaultService) Skip(bookingID, userID string) error {
	if bookingID == "" || userID == "" {
		return utils.NewValidationError("bookingId and userId are required")
	}
	if _, err := s.eligibleBooking(bookingID, userID); err != nil {
		return err
	}
	matched, err := s.Bookings.ResolveRating(bookingID, true)
	if err != nil {
		return err
	}
	if !matched {
		return utils.NewConflictError("this booking has already been rated")
	}
	return nil
}

// PendingRatings lists the client's completed bookings awaiting a rating.
func (s *DefaultService) PendingRatings(userID string) ([]models.Booking, error) {
	return s.Bookings.ListPendingRatings(userID)
}

// ProviderReviews returns a provider's reviews plus their aggregate summary.
func (s *DefaultService) ProviderReviews(providerID string) ([]models.Review, *models.ReviewSummary, error) {
	reviews, err := s.Reviews.ListByProvider(providerID)
	if err != nil {
		return nil, nil, err
	}
	return reviews, summarize(reviews), nil
}

// ProviderSummary aggregates a provider's review count and average rating.
func (s *DefaultService) ProviderSummary(providerID string) (*models.ReviewSummary, error) {
	reviews, err := s.Reviews.ListByProvider(providerID)
	if err != nil {
		return nil, err
	}
	return summarize(reviews), nil
}

func summarize(reviews []models.Review) *models.ReviewSummary {
	summary := &models.ReviewSummary{ReviewCount: len(reviews)}
	if len(reviews) == 0 {
		return summary
	}
	var total int
	for _, r := range reviews {
		total += r.Rating
	}
	avg := float64(total) / float64(len(reviews))
	summary.AverageRating = math.Round(avg*10) / 10
	return summary
}
