package booking

import (
	"strings"
	"time"

	bookingRepo "opaleka/database/repository/booking"
	userRepo "opaleka/database/repository/user"
	"opaleka/models"
	"opaleka/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DefaultService is the production booking service.
type DefaultService struct {
	Repo     bookingRepo.BookingRepository
	Users    userRepo.UserRepository
	Payments PaymentTracker
	Notify   Dispatcher
}

// NewDefaultService builds the booking service.
func NewDefaultService(repo bookingRepo.BookingRepository, users userRepo.UserRepository, payments PaymentTracker, notify Dispatcher) *DefaultService {
	return &DefaultService{Repo: repo, Users: users, Payments: payments, Notify: notify}
}

func validateBookingRequest(req *models.BookingRequest) error {
	var missing []string
	if req.UserID == "" {
		missing = append(missing, "userId")
	}
	if req.ProviderID == "" {
		missing = append(missing, "providerId")
	}
	if req.ServiceName == "" {
		missing = append(missing, "serviceName")
	}
	if req.Date == "" {
		missing = append(missing, "date")
	}
	if req.Time == "" {
		missing = append(missing, "time")
	}
	if req.Address == "" {
		missing = append(missing, "address")
	}
	if len(missing) > 0 {
		return utils.NewValidationError("missing required fields: %s", strings.Join(missing, ", "))
	}
	if req.Price <= 0 {
		return utils.NewValidationError("price must be greater than zero")
	}
	return nil
}

// Create validates the request, stores the booking as pending, flips the
// provider's free trial on their first booking, and notifies the provider.
func (s *DefaultService) Create(req *models.BookingRequest) (*models.Booking, error) {
	if err := validateBookingRequest(req); err != nil {
		return nil, err
	}

	client, err := s.Users.GetByID(req.UserID)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, utils.NewNotFoundError("client")
	}
	provider, err := s.Users.GetByID(req.ProviderID)
	if err != nil {
		return nil, err
	}
	if provider == nil {
		return nil, utils.NewNotFoundError("provider")
	}

	now := time.Now().UTC()
	b := &models.Booking{
		ID:          uuid.New().String(),
		UserID:      req.UserID,
		ProviderID:  req.ProviderID,
		ServiceName: req.ServiceName,
		Date:        req.Date,
		Time:        req.Time,
		Price:       req.Price,
		Address:     req.Address,
		Status:      models.BookingPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.Repo.Create(b); err != nil {
		return nil, err
	}

	if err := s.Payments.FirstBookingTransition(req.ProviderID); err != nil {
		zap.L().Error("first booking payment transition failed",
			zap.String("providerID", req.ProviderID), zap.Error(err))
	}

	s.Notify.BookingCreated(b, client, provider)
	return b, nil
}

// Accept moves a pending booking to confirmed and notifies the client.
func (s *DefaultService) Accept(id string) (*models.Booking, error) {
	return s.decide(id, true)
}

// Reject moves a pending booking to rejected and notifies the client.
func (s *DefaultService) Reject(id string) (*models.Booking, error) {
	return s.decide(id, false)
}

func (s *DefaultService) decide(id string, accepted bool) (*models.Booking, error) {
	to := models.BookingRejected
	if accepted {
		to = models.BookingConfirmed
	}
	b, err := s.Repo.TransitionStatus(id, models.BookingPending, to)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, s.transitionFailure(id, models.BookingPending)
	}
	if client, err := s.Users.GetByID(b.UserID); err == nil && client != nil {
		s.Notify.BookingDecision(b, client, accepted)
	}
	return b, nil
}

// Complete moves an active booking to completed, arms the rating prompt, and
// invites the client to rate. A pending booking can be completed directly:
// finishing the work implies acceptance.
func (s *DefaultService) Complete(id string) (*models.Booking, error) {
	current, err := s.Repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if current == nil {
		return nil, utils.NewNotFoundError("booking")
	}
	if current.Status != models.BookingPending && current.Status != models.BookingConfirmed {
		return nil, utils.NewConflictError("booking is %s, only active bookings can be completed", current.Status)
	}

	b, err := s.Repo.MarkCompleted(id)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, utils.NewConflictError("booking is no longer active")
	}

	client, cerr := s.Users.GetByID(b.UserID)
	provider, perr := s.Users.GetByID(b.ProviderID)
	if cerr == nil && perr == nil && client != nil && provider != nil {
		s.Notify.BookingCompleted(b, client, provider)
	}
	return b, nil
}

// Cancel lets the booking's own client withdraw while the booking is still
// pending. A cancelled booking lands in the rejected status.
func (s *DefaultService) Cancel(id, clientID string) (*models.Booking, error) {
	b, err := s.Repo.CancelPending(id, clientID)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, s.cancelFailure(id, clientID)
	}
	return b, nil
}

// SoftDelete hides a terminal booking from one party's listings. The other
// party's view is untouched.
func (s *DefaultService) SoftDelete(id, userID string) error {
	b, err := s.Repo.GetByID(id)
	if err != nil {
		return err
	}
	if b == nil {
		return utils.NewNotFoundError("booking")
	}
	if !b.IsParty(userID) {
		return utils.NewNotFoundError("booking")
	}
	if b.Status != models.BookingCompleted && b.Status != models.BookingRejected {
		return utils.NewConflictError("only completed or rejected bookings can be removed from history")
	}
	return s.Repo.AddDeletedBy(id, userID)
}

// DeletePending hard-deletes a client's own pending booking.
func (s *DefaultService) DeletePending(id, clientID string) error {
	removed, err := s.Repo.DeletePending(id, clientID)
	if err != nil {
		return err
	}
	if !removed {
		return s.cancelFailure(id, clientID)
	}
	return nil
}

// ProviderBookings lists a provider's bookings with the given status, joining
// each with the client's contact details.
func (s *DefaultService) ProviderBookings(providerID, status string) ([]models.ProviderBookingView, error) {
	status = strings.ToLower(status)
	if !validStatus(status) {
		return nil, utils.NewValidationError("unknown booking status %q", status)
	}
	bookings, err := s.Repo.ListByProvider(providerID, status)
	if err != nil {
		return nil, err
	}

	views := make([]models.ProviderBookingView, 0, len(bookings))
	for _, b := range bookings {
		view := models.ProviderBookingView{
			ID:          b.ID,
			ServiceName: b.ServiceName,
			Date:        b.Date,
			Time:        b.Time,
			Price:       b.Price,
			Address:     b.Address,
			CreatedAt:   b.CreatedAt,
		}
		client, err := s.Users.GetByID(b.UserID)
		if err != nil {
			return nil, err
		}
		if client != nil {
			view.ClientName = client.Name
			view.Email = client.Email
			view.Phone = client.Phone
			view.ProfileImage = client.ProfileImage
		}
		views = append(views, view)
	}
	return views, nil
}

// ClientBookings lists a client's bookings with the given status.
func (s *DefaultService) ClientBookings(clientID, status string) ([]models.Booking, error) {
	status = strings.ToLower(status)
	if !validStatus(status) {
		return nil, utils.NewValidationError("unknown booking status %q", status)
	}
	return s.Repo.ListByClient(clientID, status)
}

func validStatus(status string) bool {
	switch status {
	case models.BookingPending, models.BookingConfirmed, models.BookingRejected, models.BookingCompleted:
		return true
	}
	return false
}

// transitionFailure distinguishes a missing booking from a wrong-state one so
// the caller gets 404 vs 400 correctly.
func (s *DefaultService) transitionFailure(id, wanted string) error {
	b, err := s.Repo.GetByID(id)
	if err != nil {
		return err
	}
	if b == nil {
		return utils.NewNotFoundError("booking")
	}
	return utils.NewConflictError("booking is %s, expected %s", b.Status, wanted)
}

func (s *DefaultService) cancelFailure(id, clientID string) error {
	b, err := s.Repo.GetByID(id)
	if err != nil {
		return err
	}
	if b == nil || b.UserID != clientID {
		return utils.NewNotFoundError("booking")
	}
	return utils.NewConflictError("booking is %s, only pending bookings can be cancelled", b.Status)
}
