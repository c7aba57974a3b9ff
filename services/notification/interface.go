package notification

import "opaleka/models"

// Service owns the in-app notification feed and every outbound side effect
// (email, push) tied to a state transition. Dispatch methods are best-effort:
// failures are logged and swallowed, never propagated to the caller, and
// never roll back the transition that triggered them.
type Service interface {
	// In-app feed.
	ListForUser(userID string) ([]models.Notification, error)
	MarkRead(id, userID string) error
	UnreadCount(userID string) (int64, error)
	Delete(id, userID string) error

	// Transition-driven dispatch.
	BookingCreated(b *models.Booking, client, provider *models.User)
	BookingDecision(b *models.Booking, client *models.User, accepted bool)
	BookingCompleted(b *models.Booking, client, provider *models.User)
	VerificationOutcome(user *models.User, status string)
	PaymentInsufficient(user *models.User, amount, required float64)
	PaymentConfirmed(user *models.User, amount float64)
	PaymentReminder(user *models.User, paymentStatus string)
}
