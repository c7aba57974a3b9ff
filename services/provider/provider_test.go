package provider

import (
	"testing"

	"opaleka/models"
	"opaleka/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

type mockDetailsRepo struct {
	mock.Mock
}

func (m *mockDetailsRepo) Create(details *models.ProviderDetails) error {
	return m.Called(details).Error(0)
}

func (m *mockDetailsRepo) GetByUserID(userID string) (*models.ProviderDetails, error) {
	args := m.Called(userID)
	d, _ := args.Get(0).(*models.ProviderDetails)
	return d, args.Error(1)
}

func (m *mockDetailsRepo) SetVerification(userID, status, notes string) (bool, error) {
	args := m.Called(userID, status, notes)
	return args.Bool(0), args.Error(1)
}

func (m *mockDetailsRepo) MarkUnpaidIfFree(userID string) (bool, error) {
	args := m.Called(userID)
	return args.Bool(0), args.Error(1)
}

func (m *mockDetailsRepo) ApplyPayment(userID string, amount float64) (*models.ProviderDetails, error) {
	args := m.Called(userID, amount)
	d, _ := args.Get(0).(*models.ProviderDetails)
	return d, args.Error(1)
}

func (m *mockDetailsRepo) ListVisible() ([]models.ProviderDetails, error) {
	args := m.Called()
	list, _ := args.Get(0).([]models.ProviderDetails)
	return list, args.Error(1)
}

func (m *mockDetailsRepo) ListPendingVerification() ([]models.ProviderDetails, error) {
	args := m.Called()
	list, _ := args.Get(0).([]models.ProviderDetails)
	return list, args.Error(1)
}

func (m *mockDetailsRepo) ListNeedingReminder() ([]models.ProviderDetails, error) {
	args := m.Called()
	list, _ := args.Get(0).([]models.ProviderDetails)
	return list, args.Error(1)
}

func (m *mockDetailsRepo) StampReminder(userID string) error {
	return m.Called(userID).Error(0)
}

func (m *mockDetailsRepo) CountPendingVerification() (int64, error) {
	args := m.Called()
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockDetailsRepo) CountVisible() (int64, error) {
	args := m.Called()
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockDetailsRepo) CountByPaymentStatus(status string) (int64, error) {
	args := m.Called(status)
	return args.Get(0).(int64), args.Error(1)
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

type mockProfileRepo struct {
	mock.Mock
}

func (m *mockProfileRepo) Upsert(p *models.CompleteProfile) error {
	return m.Called(p).Error(0)
}

func (m *mockProfileRepo) GetByUserID(userID string) (*models.CompleteProfile, error) {
	args := m.Called(userID)
	p, _ := args.Get(0).(*models.CompleteProfile)
	return p, args.Error(1)
}

func (m *mockProfileRepo) DeleteByUserID(userID string) error {
	return m.Called(userID).Error(0)
}

type mockDispatcher struct {
	mock.Mock
}

func (m *mockDispatcher) VerificationOutcome(user *models.User, status string) {
	m.Called(user, status)
}

func (m *mockDispatcher) PaymentInsufficient(user *models.User, amount, required float64) {
	m.Called(user, amount, required)
}

func (m *mockDispatcher) PaymentConfirmed(user *models.User, amount float64) {
	m.Called(user, amount)
}

func newTestService() (*DefaultService, *mockDetailsRepo, *mockUserRepo, *mockDispatcher) {
	repo := &mockDetailsRepo{}
	users := &mockUserRepo{}
	dispatcher := &mockDispatcher{}
	svc := NewDefaultService(repo, users, &mockReviewRepo{}, &mockProfileRepo{}, dispatcher,
		func() float64 { return 180 })
	return svc, repo, users, dispatcher
}

func freeDetails(userID string) *models.ProviderDetails {
	return &models.ProviderDetails{
		ID:                 "d1",
		UserID:             userID,
		VerificationStatus: models.VerificationPending,
		PaymentStatus:      models.PaymentFree,
	}
}

func TestSetVerification(t *testing.T) {
	svc, repo, users, dispatcher := newTestService()

	user := &models.User{ID: "p1", Name: "Ben", Email: "ben@example.com"}
	repo.On("SetVerification", "p1", models.VerificationVerified, "looks good").Return(true, nil)
	users.On("GetByID", "p1").Return(user, nil)
	dispatcher.On("VerificationOutcome", user, models.VerificationVerified).Return()

	require.NoError(t, svc.SetVerification("p1", models.VerificationVerified, "looks good"))
	dispatcher.AssertExpectations(t)
}

func TestSetVerificationInvalidStatus(t *testing.T) {
	svc, repo, _, _ := newTestService()

	err := svc.SetVerification("p1", "Approved", "")
	var ve *utils.ValidationError
	assert.ErrorAs(t, err, &ve)
	repo.AssertNotCalled(t, "SetVerification", mock.Anything, mock.Anything, mock.Anything)
}

func TestSetVerificationUnknownProvider(t *testing.T) {
	svc, repo, _, _ := newTestService()
	repo.On("SetVerification", "ghost", models.VerificationRejected, "").Return(false, nil)

	err := svc.SetVerification("ghost", models.VerificationRejected, "")
	assert.True(t, utils.IsNotFound(err))
}

func TestRecordPaymentBelowThreshold(t *testing.T) {
	svc, repo, users, dispatcher := newTestService()

	user := &models.User{ID: "p1", Email: "ben@example.com"}
	repo.On("GetByUserID", "p1").Return(freeDetails("p1"), nil)
	users.On("GetByID", "p1").Return(user, nil)
	dispatcher.On("PaymentInsufficient", user, 100.0, 180.0).Return()

	// An underpayment is accepted without persisting anything: the caller
	// gets the shortfall back, not an error.
	result, err := svc.RecordPayment("p1", 100)
	require.NoError(t, err)
	assert.False(t, result.Activated)
	assert.Equal(t, 80.0, result.Shortfall)
	assert.Equal(t, models.PaymentFree, result.Details.PaymentStatus)
	repo.AssertNotCalled(t, "ApplyPayment", mock.Anything, mock.Anything)
	dispatcher.AssertExpectations(t)
}

func TestRecordPaymentAtThreshold(t *testing.T) {
	svc, repo, users, dispatcher := newTestService()

	user := &models.User{ID: "p1", Email: "ben@example.com"}
	paid := &models.ProviderDetails{
		UserID:        "p1",
		PaymentStatus: models.PaymentPaid,
		PaidAmount:    180,
	}
	repo.On("GetByUserID", "p1").Return(freeDetails("p1"), nil)
	users.On("GetByID", "p1").Return(user, nil)
	repo.On("ApplyPayment", "p1", 180.0).Return(paid, nil)
	dispatcher.On("PaymentConfirmed", user, 180.0).Return()

	result, err := svc.RecordPayment("p1", 180)
	require.NoError(t, err)
	assert.True(t, result.Activated)
	assert.Equal(t, models.PaymentPaid, result.Details.PaymentStatus)
	assert.Equal(t, 180.0, result.Details.PaidAmount)
	dispatcher.AssertExpectations(t)
}

func TestRecordPaymentNonPositiveAmount(t *testing.T) {
	svc, repo, _, _ := newTestService()

	_, err := svc.RecordPayment("p1", 0)
	var ve *utils.ValidationError
	assert.ErrorAs(t, err, &ve)
	repo.AssertNotCalled(t, "GetByUserID", mock.Anything)
}

func TestFirstBookingTransitionDelegatesConditionalUpdate(t *testing.T) {
	svc, repo, _, _ := newTestService()
	repo.On("MarkUnpaidIfFree", "p1").Return(true, nil)

	require.NoError(t, svc.FirstBookingTransition("p1"))
	repo.AssertCalled(t, "MarkUnpaidIfFree", "p1")
}

func TestFirstBookingTransitionAlreadyApplied(t *testing.T) {
	svc, repo, _, _ := newTestService()
	repo.On("MarkUnpaidIfFree", "p1").Return(false, nil)

	// Not an error: the Free -> Unpaid flip applies at most once.
	require.NoError(t, svc.FirstBookingTransition("p1"))
}

func TestVisibleProvidersRanksPaidFirst(t *testing.T) {
	repo := &mockDetailsRepo{}
	users := &mockUserRepo{}
	reviews := &mockReviewRepo{}
	svc := NewDefaultService(repo, users, reviews, &mockProfileRepo{}, &mockDispatcher{},
		func() float64 { return 180 })

	repo.On("ListVisible").Return([]models.ProviderDetails{
		{UserID: "free-1", VerificationStatus: models.VerificationVerified, PaymentStatus: models.PaymentFree},
		{UserID: "paid-1", VerificationStatus: models.VerificationVerified, PaymentStatus: models.PaymentPaid, PaidAmount: 180},
	}, nil)
	users.On("GetByID", "free-1").Return(&models.User{ID: "free-1", Name: "Free"}, nil)
	users.On("GetByID", "paid-1").Return(&models.User{ID: "paid-1", Name: "Paid"}, nil)
	reviews.On("ListByProvider", mock.Anything).Return([]models.Review{}, nil)

	providers, err := svc.VisibleProviders()
	require.NoError(t, err)
	require.Len(t, providers, 2)
	assert.Equal(t, "paid-1", providers[0].ID)
	assert.Equal(t, "free-1", providers[1].ID)
}

func TestVisibilityRule(t *testing.T) {
	cases := []struct {
		name    string
		details models.ProviderDetails
		visible bool
	}{
		{"verified free", models.ProviderDetails{VerificationStatus: models.VerificationVerified, PaymentStatus: models.PaymentFree}, true},
		{"verified paid", models.ProviderDetails{VerificationStatus: models.VerificationVerified, PaymentStatus: models.PaymentPaid, PaidAmount: 180}, true},
		{"verified paid without amount", models.ProviderDetails{VerificationStatus: models.VerificationVerified, PaymentStatus: models.PaymentPaid}, false},
		{"verified unpaid", models.ProviderDetails{VerificationStatus: models.VerificationVerified, PaymentStatus: models.PaymentUnpaid}, false},
		{"pending free", models.ProviderDetails{VerificationStatus: models.VerificationPending, PaymentStatus: models.PaymentFree}, false},
		{"rejected paid", models.ProviderDetails{VerificationStatus: models.VerificationRejected, PaymentStatus: models.PaymentPaid, PaidAmount: 180}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.visible, tc.details.Visible())
		})
	}
}

func TestEnsureDetailsIdempotent(t *testing.T) {
	svc, repo, _, _ := newTestService()
	repo.On("GetByUserID", "p1").Return(freeDetails("p1"), nil)

	require.NoError(t, svc.EnsureDetails("p1", models.IDDocument{}))
	repo.AssertNotCalled(t, "Create", mock.Anything)
}

func TestEnsureDetailsSeedsPendingFree(t *testing.T) {
	svc, repo, _, _ := newTestService()
	repo.On("GetByUserID", "p1").Return(nil, nil)
	repo.On("Create", mock.MatchedBy(func(d *models.ProviderDetails) bool {
		return d.UserID == "p1" &&
			d.VerificationStatus == models.VerificationPending &&
			d.PaymentStatus == models.PaymentFree &&
			d.FreePlanExpiry != nil
	})).Return(nil)

	require.NoError(t, svc.EnsureDetails("p1", models.IDDocument{Name: "id.pdf"}))
	repo.AssertExpectations(t)
}
