package review

import (
	"testing"

	reviewRepo "opaleka/database/repository/review"
	"opaleka/models"
	"opaleka/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockReviewRepo struct {
	mock.Mock
}

func (m *mockReviewRepo) Create(review *models.Review) error {
	return m.Called(review).Error(0)
}

func (m *mockReviewRepo) GetByBookingID(bookingID string) (*models.Review, error) {
	args := m.Called(bookingID)
	r, _ := args.Get(0).(*models.Review)
	return r, args.Error(1)
}

func (m *mockReviewRepo) ListByProvider(providerID string) ([]models.Review, error) {
	args := m.Called(providerID)
	reviews, _ := args.Get(0).([]models.Review)
	return reviews, args.Error(1)
}

func (m *mockReviewRepo) Delete(id string) error {
	return m.Called(id).Error(0)
}

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

func ratableBooking() *models.Booking {
	return &models.Booking{
		ID:            "b1",
		UserID:        "client-1",
		ProviderID:    "provider-1",
		Status:        models.BookingCompleted,
		PendingRating: true,
	}
}

func submitRequest() *SubmitRequest {
	return &SubmitRequest{BookingID: "b1", UserID: "client-1", Rating: 5, Review: "Great work"}
}

func TestSubmitReview(t *testing.T) {
	reviews := &mockReviewRepo{}
	bookings := &mockBookingRepo{}
	svc := NewDefaultService(reviews, bookings)

	bookings.On("GetByID", "b1").Return(ratableBooking(), nil)
	reviews.On("Create", mock.AnythingOfType("*models.Review")).Return(nil)
	bookings.On("ResolveRating", "b1", false).Return(true, nil)

	r, err := svc.Submit(submitRequest())
	require.NoError(t, err)
	assert.Equal(t, "b1", r.BookingID)
	assert.Equal(t, "provider-1", r.ProviderID)
	assert.Equal(t, 5, r.Rating)
}

func TestSubmitReviewInvalidRating(t *testing.T) {
	svc := NewDefaultService(&mockReviewRepo{}, &mockBookingRepo{})

	for _, rating := range []int{0, 6, -1} {
		req := submitRequest()
		req.Rating = rating
		_, err := svc.Submit(req)
		var ve *utils.ValidationError
		assert.ErrorAs(t, err, &ve)
	}
}

func TestSubmitReviewTooLong(t *testing.T) {
	svc := NewDefaultService(&mockReviewRepo{}, &mockBookingRepo{})

	req := submitRequest()
	req.Review = string(make([]byte, models.MaxReviewLength+1))
	_, err := svc.Submit(req)
	var ve *utils.ValidationError
	assert.ErrorAs(t, err, &ve)
}

func TestSubmitReviewNotCompleted(t *testing.T) {
	reviews := &mockReviewRepo{}
	bookings := &mockBookingRepo{}
	svc := NewDefaultService(reviews, bookings)

	b := ratableBooking()
	b.Status = models.BookingConfirmed
	bookings.On("GetByID", "b1").Return(b, nil)

	_, err := svc.Submit(submitRequest())
	assert.True(t, utils.IsConflict(err))
	reviews.AssertNotCalled(t, "Create", mock.Anything)
}

func TestSubmitReviewSecondAttemptConflicts(t *testing.T) {
	reviews := &mockReviewRepo{}
	bookings := &mockBookingRepo{}
	svc := NewDefaultService(reviews, bookings)

	b := ratableBooking()
	b.PendingRating = false
	bookings.On("GetByID", "b1").Return(b, nil)

	_, err := svc.Submit(submitRequest())
	assert.True(t, utils.IsConflict(err))
	reviews.AssertNotCalled(t, "Create", mock.Anything)
}

func TestSubmitReviewDuplicateInsertConflicts(t *testing.T) {
	reviews := &mockReviewRepo{}
	bookings := &mockBookingRepo{}
	svc := NewDefaultService(reviews, bookings)

	bookings.On("GetByID", "b1").Return(ratableBooking(), nil)
	reviews.On("Create", mock.Anything).Return(reviewRepo.ErrDuplicate)

	_, err := svc.Submit(submitRequest())
	assert.True(t, utils.IsConflict(err))
	bookings.AssertNotCalled(t, "ResolveRating", mock.Anything, mock.Anything)
}

func TestSubmitReviewRolledBackWhenFlagRace(t *testing.T) {
	reviews := &mockReviewRepo{}
	bookings := &mockBookingRepo{}
	svc := NewDefaultService(reviews, bookings)

	bookings.On("GetByID", "b1").Return(ratableBooking(), nil)
	reviews.On("Create", mock.Anything).Return(nil)
	bookings.On("ResolveRating", "b1", false).Return(false, nil)
	reviews.On("Delete", mock.AnythingOfType("string")).Return(nil)

	_, err := svc.Submit(submitRequest())
	assert.True(t, utils.IsConflict(err))
	reviews.AssertCalled(t, "Delete", mock.AnythingOfType("string"))
}

func TestSkipReview(t *testing.T) {
	reviews := &mockReviewRepo{}
	bookings := &mockBookingRepo{}
	svc := NewDefaultService(reviews, bookings)

	bookings.On("GetByID", "b1").Return(ratableBooking(), nil)
	bookings.On("ResolveRating", "b1", true).Return(true, nil)

	require.NoError(t, svc.Skip("b1", "client-1"))
	reviews.AssertNotCalled(t, "Create", mock.Anything)
}

func TestSkipReviewByWrongUser(t *testing.T) {
	bookings := &mockBookingRepo{}
	svc := NewDefaultService(&mockReviewRepo{}, bookings)

	bookings.On("GetByID", "b1").Return(ratableBooking(), nil)

	err := svc.Skip("b1", "intruder")
	assert.True(t, utils.IsNotFound(err))
}

func TestProviderSummary(t *testing.T) {
	reviews := &mockReviewRepo{}
	svc := NewDefaultService(reviews, &mockBookingRepo{})

	reviews.On("ListByProvider", "provider-1").Return([]models.Review{
		{Rating: 5}, {Rating: 4}, {Rating: 4},
	}, nil)

	summary, err := svc.ProviderSummary("provider-1")
	require.NoError(t, err)
	assert.Equal(t, 3, summary.ReviewCount)
	assert.InDelta(t, 4.3, summary.AverageRating, 0.001)
}

func TestProviderSummaryNoReviews(t *testing.T) {
	reviews := &mockReviewRepo{}
	svc := NewDefaultService(reviews, &mockBookingRepo{})

	reviews.On("ListByProvider", "provider-1").Return([]models.Review{}, nil)

	summary, err := svc.ProviderSummary("provider-1")
	require.NoError(t, err)
	assert.Equal(t, 0, summary.ReviewCount)
	assert.Zero(t, summary.AverageRating)
}
