package providerRepo

import "opaleka/models"

// ProviderDetailsRepository defines data access for provider verification and
// payment state. Payment transitions are conditional single-document updates
// so concurrent requests cannot double-apply them.
type ProviderDetailsRepository interface {
	// Create inserts a new provider details record.
	Create(details *models.ProviderDetails) error
	// GetByUserID retrieves details for the given provider user, or nil.
	GetByUserID(userID string) (*models.ProviderDetails, error)
	// SetVerification updates verification status and admin notes. Reports
	// whether a document matched.
	SetVerification(userID, status, notes string) (bool, error)
	// MarkUnpaidIfFree atomically sets payment_status=Unpaid where it is
	// currently Free. Reports whether the transition happened; false means
	// either no details exist or the provider already left the Free plan.
	MarkUnpaidIfFree(userID string) (bool, error)
	// ApplyPayment accumulates the paid amount and sets payment_status=Paid,
	// returning the updated document, or nil when no details exist.
	ApplyPayment(userID string, amount float64) (*models.ProviderDetails, error)
	// ListVisible lists details satisfying the marketplace visibility rule:
	// Verified and (Free, or Paid with a positive paid amount).
	ListVisible() ([]models.ProviderDetails, error)
	// ListPendingVerification lists details still awaiting verification.
	ListPendingVerification() ([]models.ProviderDetails, error)
	// ListNeedingReminder lists details with payment status Free or Unpaid.
	ListNeedingReminder() ([]models.ProviderDetails, error)
	// StampReminder records when a payment reminder was last sent.
	StampReminder(userID string) error
	// CountPendingVerification counts details awaiting verification.
	CountPendingVerification() (int64, error)
	// CountVisible counts details satisfying the visibility rule.
	CountVisible() (int64, error)
	// CountByPaymentStatus counts details with the given payment status.
	CountByPaymentStatus(status string) (int64, error)
}
