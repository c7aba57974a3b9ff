package user

import (
	"testing"
	"time"

	"opaleka/config"
	"opaleka/models"
	"opaleka/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"golang.org/x/crypto/bcrypt"
)

func init() {
	config.AppConfig.JWTSecret = "test-secret"
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

type mockDetailsCreator struct {
	mock.Mock
}

func (m *mockDetailsCreator) EnsureDetails(userID string, documents models.IDDocument) error {
	return m.Called(userID, documents).Error(0)
}

func newTestService() (*DefaultService, *mockUserRepo, *mockDetailsCreator) {
	repo := &mockUserRepo{}
	details := &mockDetailsCreator{}
	svc := NewDefaultService(repo, &mockProfileRepo{}, details)
	return svc, repo, details
}

func TestRegisterClient(t *testing.T) {
	svc, repo, details := newTestService()
	repo.On("GetByEmail", "anna@example.com").Return(nil, nil)
	repo.On("Create", mock.AnythingOfType("*models.User")).Return(nil)

	u, err := svc.Register(&RegisterRequest{
		Name:     "Anna",
		Email:    "Anna@Example.com",
		Password: "hunter2hunter2",
	})
	require.NoError(t, err)
	assert.Equal(t, models.RoleClient, u.Role)
	assert.Equal(t, "anna@example.com", u.Email)
	assert.NotEqual(t, "hunter2hunter2", u.PasswordHash)
	details.AssertNotCalled(t, "EnsureDetails", mock.Anything, mock.Anything)
}

func TestRegisterProviderSeedsDetails(t *testing.T) {
	svc, repo, details := newTestService()
	repo.On("GetByEmail", "ben@example.com").Return(nil, nil)
	repo.On("Create", mock.Anything).Return(nil)
	details.On("EnsureDetails", mock.AnythingOfType("string"), mock.Anything).Return(nil)

	u, err := svc.Register(&RegisterRequest{
		Name:     "Ben",
		Email:    "ben@example.com",
		Password: "hunter2hunter2",
		Role:     models.RoleProvider,
	})
	require.NoError(t, err)
	assert.Equal(t, models.RoleProvider, u.Role)
	details.AssertCalled(t, "EnsureDetails", u.ID, mock.Anything)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, repo, _ := newTestService()
	repo.On("GetByEmail", "anna@example.com").Return(&models.User{ID: "u1"}, nil)

	_, err := svc.Register(&RegisterRequest{
		Name:     "Anna",
		Email:    "anna@example.com",
		Password: "hunter2hunter2",
	})
	assert.True(t, utils.IsConflict(err))
}

func TestRegisterShortPassword(t *testing.T) {
	svc, _, _ := newTestService()

	_, err := svc.Register(&RegisterRequest{Name: "Anna", Email: "a@b.c", Password: "short"})
	var ve *utils.ValidationError
	assert.ErrorAs(t, err, &ve)
}

func TestLogin(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("hunter2hunter2"), bcrypt.MinCost)
	require.NoError(t, err)

	svc, repo, _ := newTestService()
	repo.On("GetByEmail", "anna@example.com").Return(&models.User{
		ID:           "u1",
		Email:        "anna@example.com",
		Role:         models.RoleClient,
		PasswordHash: string(hash),
	}, nil)

	result, err := svc.Login("anna@example.com", "hunter2hunter2")
	require.NoError(t, err)
	assert.NotEmpty(t, result.Token)
	assert.WithinDuration(t, time.Now().Add(utils.AccessTokenTTL), result.ExpiresAt, time.Minute)

	claims, err := utils.ExtractClaims(result.Token)
	require.NoError(t, err)
	assert.Equal(t, "u1", claims.UserID)
	assert.Equal(t, models.RoleClient, claims.Role)
}

func TestLoginWrongPassword(t *testing.T) {
	hash, _ := bcrypt.GenerateFromPassword([]byte("hunter2hunter2"), bcrypt.MinCost)

	svc, repo, _ := newTestService()
	repo.On("GetByEmail", "anna@example.com").Return(&models.User{
		ID:           "u1",
		PasswordHash: string(hash),
	}, nil)

	_, err := svc.Login("anna@example.com", "wrong")
	var ae *utils.AuthError
	require.ErrorAs(t, err, &ae)
	assert.Equal(t, "invalid_credentials", ae.Code)
}

func TestLoginUnknownEmail(t *testing.T) {
	svc, repo, _ := newTestService()
	repo.On("GetByEmail", "ghost@example.com").Return(nil, nil)

	_, err := svc.Login("ghost@example.com", "whatever")
	var ae *utils.AuthError
	assert.ErrorAs(t, err, &ae)
}

func TestSaveCompleteProfileRequiresProviderRole(t *testing.T) {
	svc, repo, _ := newTestService()
	repo.On("GetByID", "u1").Return(&models.User{ID: "u1", Role: models.RoleClient}, nil)

	err := svc.SaveCompleteProfile("u1", &models.CompleteProfile{
		BusinessAddress: "Main St",
		Town:            "Windhoek",
		Services:        []models.ProfileService{{Name: "Plumbing"}},
	})
	var ve *utils.ValidationError
	assert.ErrorAs(t, err, &ve)
}
