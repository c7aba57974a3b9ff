package provider

import (
	"sort"
	"time"

	profileRepo "opaleka/database/repository/profile"
	providerRepo "opaleka/database/repository/provider"
	reviewRepo "opaleka/database/repository/review"
	userRepo "opaleka/database/repository/user"
	"opaleka/models"
	"opaleka/utils"

	"github.com/google/uuid"
)

// Dispatcher receives verification and payment outcomes and fans out
// notifications. Calls are best-effort.
type Dispatcher interface {
	VerificationOutcome(user *models.User, status string)
	PaymentInsufficient(user *models.User, amount, required float64)
	PaymentConfirmed(user *models.User, amount float64)
}

// Service owns provider verification, payment gating, and marketplace
// visibility.
type Service interface {
	// EnsureDetails creates the initial Pending/Free details record for a new
	// provider. Idempotent: an existing record is left untouched.
	EnsureDetails(userID string, documents models.IDDocument) error
	// SetVerification records an admin's verification decision and emails the
	// provider the outcome.
	SetVerification(userID, status, notes string) error
	// RecordPayment applies an activation payment. Amounts below the
	// configured threshold are accepted but not persisted; the provider is
	// emailed either way.
	RecordPayment(userID string, amount float64) (*PaymentResult, error)
	// FirstBookingTransition ends a provider's free trial when their first
	// booking arrives. Applies at most once per provider.
	FirstBookingTransition(providerID string) error
	// VisibleProviders lists marketplace-searchable providers, Paid ranked
	// before Free, joined with review aggregates.
	VisibleProviders() ([]models.VerifiedProvider, error)
	// PendingProviders lists providers awaiting verification for the admin
	// dashboard.
	PendingProviders() ([]models.PendingProvider, error)
	// Details builds the client-facing provider page.
	Details(userID string) (*models.ProviderPublicDetails, error)
	// PaymentStanding returns a provider's own verification and payment state.
	PaymentStanding(userID string) (*models.ProviderDetails, error)
}

// feeSource yields the configured minimum activation payment in NAD.
type feeSource func() float64

// PaymentResult is the outcome of recording an activation payment. A
// below-threshold payment is not an error: Activated is false and Shortfall
// carries the remaining amount due.
type PaymentResult struct {
	Details   *models.ProviderDetails `json:"provider"`
	Activated bool                    `json:"activated"`
	Shortfall float64                 `json:"shortfall,omitempty"`
}

// DefaultService is the production provider service.
type DefaultService struct {
	Repo     providerRepo.ProviderDetailsRepository
	Users    userRepo.UserRepository
	Reviews  reviewRepo.ReviewRepository
	Profiles profileRepo.ProfileRepository
	Notify   Dispatcher
	Fee      feeSource
}

// NewDefaultService builds the provider service. fee yields the activation
// threshold so config changes take effect without reconstruction.
func NewDefaultService(
	details providerRepo.ProviderDetailsRepository,
	users userRepo.UserRepository,
	reviews reviewRepo.ReviewRepository,
	profiles profileRepo.ProfileRepository,
	notify Dispatcher,
	fee func() float64,
) *DefaultService {
	return &DefaultService{Repo: details, Users: users, Reviews: reviews, Profiles: profiles, Notify: notify, Fee: fee}
}

// EnsureDetails seeds the Pending/Free record for a newly registered provider.
func (s *DefaultService) EnsureDetails(userID string, documents models.IDDocument) error {
	existing, err := s.Repo.GetByUserID(userID)
	if err != nil {
		return err
	}
	if existing != nil {
		return nil
	}
	now := time.Now().UTC()
	expiry := now.AddDate(0, 1, 0)
	return s.Repo.Create(&models.ProviderDetails{
		ID:                 uuid.New().String(),
		UserID:             userID,
		VerificationStatus: models.VerificationPending,
		Documents:          documents,
		PaymentStatus:      models.PaymentFree,
		FreePlanExpiry:     &expiry,
		CreatedAt:          now,
		UpdatedAt:          now,
	})
}

// SetVerification records the admin decision and emails the provider.
func (s *DefaultService) SetVerification(userID, status, notes string) error {
	if status != models.VerificationVerified && status != models.VerificationRejected {
		return utils.NewValidationError("status must be %s or %s",
			models.VerificationVerified, models.VerificationRejected)
	}
	matched, err := s.Repo.SetVerification(userID, status, notes)
	if err != nil {
		return err
	}
	if !matched {
		return utils.NewNotFoundError("provider")
	}
	if user, err := s.Users.GetByID(userID); err == nil && user != nil {
		s.Notify.VerificationOutcome(user, status)
	}
	return nil
}

// RecordPayment applies an activation payment. Below-threshold amounts leave
// the stored state untouched and report the shortfall instead of failing.
func (s *DefaultService) RecordPayment(userID string, amount float64) (*PaymentResult, error) {
	if amount <= 0 {
		return nil, utils.NewValidationError("amount must be greater than zero")
	}
	details, err := s.Repo.GetByUserID(userID)
	if err != nil {
		return nil, err
	}
	if details == nil {
		return nil, utils.NewNotFoundError("provider")
	}
	user, err := s.Users.GetByID(userID)
	if err != nil {
		return nil, err
	}

	required := s.Fee()
	if amount < required {
		if user != nil {
			s.Notify.PaymentInsufficient(user, amount, required)
		}
		return &PaymentResult{Details: details, Activated: false, Shortfall: required - amount}, nil
	}

	updated, err := s.Repo.ApplyPayment(userID, amount)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, utils.NewNotFoundError("provider")
	}
	if user != nil {
		s.Notify.PaymentConfirmed(user, amount)
	}
	return &PaymentResult{Details: updated, Activated: true}, nil
}

// FirstBookingTransition ends the free trial on the provider's first booking.
// The conditional update makes the flip happen at most once even under
// concurrent first bookings.
func (s *DefaultService) FirstBookingTransition(providerID string) error {
	_, err := s.Repo.MarkUnpaidIfFree(providerID)
	return err
}

// VisibleProviders lists searchable providers. Paid providers rank above Free
// ones; ties break on average rating.
func (s *DefaultService) VisibleProviders() ([]models.VerifiedProvider, error) {
	detailsList, err := s.Repo.ListVisible()
	if err != nil {
		return nil, err
	}

	providers := make([]models.VerifiedProvider, 0, len(detailsList))
	for _, d := range detailsList {
		user, err := s.Users.GetByID(d.UserID)
		if err != nil {
			return nil, err
		}
		if user == nil {
			continue
		}
		count, avg, err := s.reviewStats(d.UserID)
		if err != nil {
			return nil, err
		}
		providers = append(providers, models.VerifiedProvider{
			ID:            user.ID,
			Name:          user.Name,
			BusinessName:  user.BusinessName,
			Email:         user.Email,
			Phone:         user.Phone,
			ProfileImage:  user.ProfileImage,
			PaymentStatus: d.PaymentStatus,
			ReviewCount:   count,
			AverageRating: avg,
		})
	}

	sort.SliceStable(providers, func(i, j int) bool {
		pi := providers[i].PaymentStatus == models.PaymentPaid
		pj := providers[j].PaymentStatus == models.PaymentPaid
		if pi != pj {
			return pi
		}
		return providers[i].AverageRating > providers[j].AverageRating
	})
	return providers, nil
}

// PendingProviders lists providers awaiting verification.
func (s *DefaultService) PendingProviders() ([]models.PendingProvider, error) {
	detailsList, err := s.Repo.ListPendingVerification()
	if err != nil {
		return nil, err
	}
	pending := make([]models.PendingProvider, 0, len(detailsList))
	for _, d := range detailsList {
		user, err := s.Users.GetByID(d.UserID)
		if err != nil {
			return nil, err
		}
		if user == nil {
			continue
		}
		pending = append(pending, models.PendingProvider{
			ID:           user.ID,
			Name:         user.Name,
			BusinessName: user.BusinessName,
			Email:        user.Email,
			Phone:        user.Phone,
			Documents:    d.Documents,
			SubmittedAt:  d.CreatedAt,
		})
	}
	return pending, nil
}

// Details builds the client-facing provider page.
func (s *DefaultService) Details(userID string) (*models.ProviderPublicDetails, error) {
	user, err := s.Users.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil || user.Role != models.RoleProvider {
		return nil, utils.NewNotFoundError("provider")
	}
	details, err := s.Repo.GetByUserID(userID)
	if err != nil {
		return nil, err
	}
	profile, err := s.Profiles.GetByUserID(userID)
	if err != nil {
		return nil, err
	}
	count, avg, err := s.reviewStats(userID)
	if err != nil {
		return nil, err
	}

	page := &models.ProviderPublicDetails{
		ID:            user.ID,
		Name:          user.Name,
		BusinessName:  user.BusinessName,
		Email:         user.Email,
		Phone:         user.Phone,
		ProfileImage:  user.ProfileImage,
		Profile:       profile,
		ReviewCount:   count,
		AverageRating: avg,
	}
	if details != nil {
		page.Verified = details.VerificationStatus == models.VerificationVerified
	}
	return page, nil
}

// PaymentStanding returns the provider's own gating state.
func (s *DefaultService) PaymentStanding(userID string) (*models.ProviderDetails, error) {
	details, err := s.Repo.GetByUserID(userID)
	if err != nil {
		return nil, err
	}
	if details == nil {
		return nil, utils.NewNotFoundError("provider")
	}
	return details, nil
}

func (s *DefaultService) reviewStats(providerID string) (int, float64, error) {
	reviews, err := s.Reviews.ListByProvider(providerID)
	if err != nil {
		return 0, 0, err
	}
	if len(reviews) == 0 {
		return 0, 0, nil
	}
	var total int
	for _, r := range reviews {
		total += r.Rating
	}
	return len(reviews), float64(total) / float64(len(reviews)), nil
}
