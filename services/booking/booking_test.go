package booking

import (
	"testing"

	"opaleka/models"
	"opaleka/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

type mockBookingRepo struct {
	mock.Mock
}

func (m *mockBookingRepo) Create(b *models.Booking) error {
	return m.Called(b).Error(0)
}

func (m *mockBookingRepo) GetByID(id string) (*models.Booking, error) {
	args := m.Called(id)
	b, _ := args.Get(0).(*models.Booking)
	return b, args.Error(1)
}

func (m *mockBookingRepo) TransitionStatus(id, from, to string) (*models.Booking, error) {
	args := m.Called(id, from, to)
	b, _ := args.Get(0).(*models.Booking)
	return b, args.Error(1)
}

func (m *mockBookingRepo) MarkCompleted(id string) (*models.Booking, error) {
	args := m.Called(id)
	b, _ := args.Get(0).(*models.Booking)
	return b, args.Error(1)
}

func (m *mockBookingRepo) CancelPending(id, clientID string) (*models.Booking, error) {
	args := m.Called(id, clientID)
	b, _ := args.Get(0).(*models.Booking)
	return b, args.Error(1)
}

func (m *mockBookingRepo) ResolveRating(id string, skipped bool) (bool, error) {
	args := m.Called(id, skipped)
	return args.Bool(0), args.Error(1)
}

func (m *mockBookingRepo) AddDeletedBy(id, userID string) error {
	return m.Called(id, userID).Error(0)
}

func (m *mockBookingRepo) DeletePending(id, clientID string) (bool, error) {
	args := m.Called(id, clientID)
	return args.Bool(0), args.Error(1)
}

func (m *mockBookingRepo) ListByProvider(providerID, status string) ([]models.Booking, error) {
	args := m.Called(providerID, status)
	bookings, _ := args.Get(0).([]models.Booking)
	return bookings, args.Error(1)
}

func (m *mockBookingRepo) ListByClient(clientID, status string) ([]models.Booking, error) {
	args := m.Called(clientID, status)
	bookings, _ := args.Get(0).([]models.Booking)
	return bookings, args.Error(1)
}

func (m *mockBookingRepo) ListPendingRatings(clientID string) ([]models.Booking, error) {
	args := m.Called(clientID)
	bookings, _ := args.Get(0).([]models.Booking)
	return bookings, args.Error(1)
}

type mockUserRepo struct {
	mock.Mock
}

func (m *mockUserRepo) GetByID(id string) (*models.User, error) {
	args := m.Called(id)
	u, _ := args.Get(0).(*models.User)
	return u, args.Error(1)
}

func (m *mockUserRepo) GetByEmail(email string) (*models.User, error) {
	args := m.Called(email)
	u, _ := args.Get(0).(*models.User)
	return u, args.Error(1)
}

func (m *mockUserRepo) Create(user *models.User) error {
	return m.Called(user).Error(0)
}

func (m *mockUserRepo) UpdateFields(id string, fields bson.M) error {
	return m.Called(id, fields).Error(0)
}

func (m *mockUserRepo) Delete(id string) error {
	return m.Called(id).Error(0)
}

func (m *mockUserRepo) CountByRole(role string) (int64, error) {
	args := m.Called(role)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockUserRepo) Search(query, role string) ([]models.User, error) {
	args := m.Called(query, role)
	users, _ := args.Get(0).([]models.User)
	return users, args.Error(1)
}

type mockPaymentTracker struct {
	mock.Mock
}

func (m *mockPaymentTracker) FirstBookingTransition(providerID string) error {
	return m.Called(providerID).Error(0)
}

type mockDispatcher struct {
	mock.Mock
}

func (m *mockDispatcher) BookingCreated(b *models.Booking, client, provider *models.User) {
	m.Called(b, client, provider)
}

func (m *mockDispatcher) BookingDecision(b *models.Booking, client *models.User, accepted bool) {
	m.Called(b, client, accepted)
}

func (m *mockDispatcher) BookingCompleted(b *models.Booking, client, provider *models.User) {
	m.Called(b, client, provider)
}

func newTestService() (*DefaultService, *mockBookingRepo, *mockUserRepo, *mockPaymentTracker, *mockDispatcher) {
	repo := &mockBookingRepo{}
	users := &mockUserRepo{}
	payments := &mockPaymentTracker{}
	dispatcher := &mockDispatcher{}
	svc := NewDefaultService(repo, users, payments, dispatcher)
	return svc, repo, users, payments, dispatcher
}

func validRequest() *models.BookingRequest {
	return &models.BookingRequest{
		UserID:      "client-1",
		ProviderID:  "provider-1",
		ServiceName: "Plumbing",
		Date:        "2024-06-01",
		Time:        "10:00",
		Price:       300,
		Address:     "Main St",
	}
}

func TestCreateBooking(t *testing.T) {
	client := &models.User{ID: "client-1", Name: "Anna", Email: "anna@example.com"}
	provider := &models.User{ID: "provider-1", Name: "Ben", Role: models.RoleProvider}

	svc, repo, users, payments, dispatcher := newTestService()
	users.On("GetByID", "client-1").Return(client, nil)
	users.On("GetByID", "provider-1").Return(provider, nil)
	repo.On("Create", mock.AnythingOfType("*models.Booking")).Return(nil)
	payments.On("FirstBookingTransition", "provider-1").Return(nil)
	dispatcher.On("BookingCreated", mock.Anything, client, provider).Return()

	b, err := svc.Create(validRequest())
	require.NoError(t, err)
	assert.Equal(t, models.BookingPending, b.Status)
	assert.NotEmpty(t, b.ID)
	assert.False(t, b.PendingRating)

	repo.AssertExpectations(t)
	payments.AssertExpectations(t)
	dispatcher.AssertExpectations(t)
}

func TestCreateBookingMissingFields(t *testing.T) {
	svc, _, _, _, _ := newTestService()

	req := validRequest()
	req.ServiceName = ""
	req.Address = ""

	_, err := svc.Create(req)
	require.Error(t, err)
	var ve *utils.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Contains(t, ve.Reason, "serviceName")
	assert.Contains(t, ve.Reason, "address")
}

func TestCreateBookingUnknownProvider(t *testing.T) {
	svc, _, users, _, _ := newTestService()
	users.On("GetByID", "client-1").Return(&models.User{ID: "client-1"}, nil)
	users.On("GetByID", "provider-1").Return(nil, nil)

	_, err := svc.Create(validRequest())
	assert.True(t, utils.IsNotFound(err))
}

func TestCreateBookingFirstBookingTransitionFailureDoesNotFailRequest(t *testing.T) {
	client := &models.User{ID: "client-1"}
	provider := &models.User{ID: "provider-1"}

	svc, repo, users, payments, dispatcher := newTestService()
	users.On("GetByID", "client-1").Return(client, nil)
	users.On("GetByID", "provider-1").Return(provider, nil)
	repo.On("Create", mock.Anything).Return(nil)
	payments.On("FirstBookingTransition", "provider-1").Return(assert.AnError)
	dispatcher.On("BookingCreated", mock.Anything, client, provider).Return()

	b, err := svc.Create(validRequest())
	require.NoError(t, err)
	assert.Equal(t, models.BookingPending, b.Status)
}

func TestAcceptBooking(t *testing.T) {
	confirmed := &models.Booking{ID: "b1", UserID: "client-1", Status: models.BookingConfirmed}
	client := &models.User{ID: "client-1"}

	svc, repo, users, _, dispatcher := newTestService()
	repo.On("TransitionStatus", "b1", models.BookingPending, models.BookingConfirmed).Return(confirmed, nil)
	users.On("GetByID", "client-1").Return(client, nil)
	dispatcher.On("BookingDecision", confirmed, client, true).Return()

	b, err := svc.Accept("b1")
	require.NoError(t, err)
	assert.Equal(t, models.BookingConfirmed, b.Status)
	dispatcher.AssertExpectations(t)
}

func TestAcceptBookingWrongState(t *testing.T) {
	svc, repo, _, _, _ := newTestService()
	repo.On("TransitionStatus", "b1", models.BookingPending, models.BookingConfirmed).Return(nil, nil)
	repo.On("GetByID", "b1").Return(&models.Booking{ID: "b1", Status: models.BookingCompleted}, nil)

	_, err := svc.Accept("b1")
	assert.True(t, utils.IsConflict(err))
}

func TestAcceptBookingNotFound(t *testing.T) {
	svc, repo, _, _, _ := newTestService()
	repo.On("TransitionStatus", "b1", models.BookingPending, models.BookingConfirmed).Return(nil, nil)
	repo.On("GetByID", "b1").Return(nil, nil)

	_, err := svc.Accept("b1")
	assert.True(t, utils.IsNotFound(err))
}

func TestCompleteBooking(t *testing.T) {
	confirmed := &models.Booking{ID: "b1", UserID: "client-1", ProviderID: "provider-1", Status: models.BookingConfirmed}
	completed := &models.Booking{ID: "b1", UserID: "client-1", ProviderID: "provider-1", Status: models.BookingCompleted, PendingRating: true}
	client := &models.User{ID: "client-1"}
	provider := &models.User{ID: "provider-1"}

	svc, repo, users, _, dispatcher := newTestService()
	repo.On("GetByID", "b1").Return(confirmed, nil)
	repo.On("MarkCompleted", "b1").Return(completed, nil)
	users.On("GetByID", "client-1").Return(client, nil)
	users.On("GetByID", "provider-1").Return(provider, nil)
	dispatcher.On("BookingCompleted", completed, client, provider).Return()

	b, err := svc.Complete("b1")
	require.NoError(t, err)
	assert.Equal(t, models.BookingCompleted, b.Status)
	assert.True(t, b.PendingRating)
}

func TestCompleteBookingFromPending(t *testing.T) {
	pending := &models.Booking{ID: "b1", UserID: "client-1", ProviderID: "provider-1", Status: models.BookingPending}
	completed := &models.Booking{ID: "b1", UserID: "client-1", ProviderID: "provider-1", Status: models.BookingCompleted, PendingRating: true}
	client := &models.User{ID: "client-1"}
	provider := &models.User{ID: "provider-1"}

	// Completing a still-pending booking is allowed: the work happening at
	// all implies the provider accepted it.
	svc, repo, users, _, dispatcher := newTestService()
	repo.On("GetByID", "b1").Return(pending, nil)
	repo.On("MarkCompleted", "b1").Return(completed, nil)
	users.On("GetByID", "client-1").Return(client, nil)
	users.On("GetByID", "provider-1").Return(provider, nil)
	dispatcher.On("BookingCompleted", completed, client, provider).Return()

	b, err := svc.Complete("b1")
	require.NoError(t, err)
	assert.Equal(t, models.BookingCompleted, b.Status)
	assert.True(t, b.PendingRating)
}

func TestCompleteBookingTerminalStatus(t *testing.T) {
	svc, repo, _, _, _ := newTestService()
	repo.On("GetByID", "b1").Return(&models.Booking{ID: "b1", Status: models.BookingRejected}, nil)

	_, err := svc.Complete("b1")
	assert.True(t, utils.IsConflict(err))
	repo.AssertNotCalled(t, "MarkCompleted", mock.Anything)
}

func TestCancelConfirmedBookingFails(t *testing.T) {
	svc, repo, _, _, _ := newTestService()
	repo.On("CancelPending", "b1", "client-1").Return(nil, nil)
	repo.On("GetByID", "b1").Return(&models.Booking{ID: "b1", UserID: "client-1", Status: models.BookingConfirmed}, nil)

	_, err := svc.Cancel("b1", "client-1")
	assert.True(t, utils.IsConflict(err))
}

func TestCancelSomeoneElsesBooking(t *testing.T) {
	svc, repo, _, _, _ := newTestService()
	repo.On("CancelPending", "b1", "intruder").Return(nil, nil)
	repo.On("GetByID", "b1").Return(&models.Booking{ID: "b1", UserID: "client-1", Status: models.BookingPending}, nil)

	_, err := svc.Cancel("b1", "intruder")
	assert.True(t, utils.IsNotFound(err))
}

func TestSoftDeleteByParty(t *testing.T) {
	b := &models.Booking{ID: "b1", UserID: "client-1", ProviderID: "provider-1", Status: models.BookingCompleted}

	svc, repo, _, _, _ := newTestService()
	repo.On("GetByID", "b1").Return(b, nil)
	repo.On("AddDeletedBy", "b1", "provider-1").Return(nil)

	err := svc.SoftDelete("b1", "provider-1")
	require.NoError(t, err)
	repo.AssertCalled(t, "AddDeletedBy", "b1", "provider-1")
}

func TestSoftDeleteByStranger(t *testing.T) {
	b := &models.Booking{ID: "b1", UserID: "client-1", ProviderID: "provider-1", Status: models.BookingCompleted}

	svc, repo, _, _, _ := newTestService()
	repo.On("GetByID", "b1").Return(b, nil)

	err := svc.SoftDelete("b1", "stranger")
	assert.True(t, utils.IsNotFound(err))
	repo.AssertNotCalled(t, "AddDeletedBy", mock.Anything, mock.Anything)
}

func TestSoftDeleteActiveBookingFails(t *testing.T) {
	b := &models.Booking{ID: "b1", UserID: "client-1", ProviderID: "provider-1", Status: models.BookingConfirmed}

	svc, repo, _, _, _ := newTestService()
	repo.On("GetByID", "b1").Return(b, nil)

	err := svc.SoftDelete("b1", "client-1")
	assert.True(t, utils.IsConflict(err))
}

func TestProviderBookingsJoinsClientDetails(t *testing.T) {
	bookings := []models.Booking{
		{ID: "b1", UserID: "client-1", ServiceName: "Plumbing", Price: 300},
	}
	client := &models.User{ID: "client-1", Name: "Anna", Email: "anna@example.com", Phone: "123"}

	svc, repo, users, _, _ := newTestService()
	repo.On("ListByProvider", "provider-1", models.BookingPending).Return(bookings, nil)
	users.On("GetByID", "client-1").Return(client, nil)

	views, err := svc.ProviderBookings("provider-1", "Pending")
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, "Anna", views[0].ClientName)
	assert.Equal(t, "anna@example.com", views[0].Email)
}

func TestProviderBookingsRejectsUnknownStatus(t *testing.T) {
	svc, _, _, _, _ := newTestService()

	_, err := svc.ProviderBookings("provider-1", "archived")
	var ve *utils.ValidationError
	assert.ErrorAs(t, err, &ve)
}
