package user

import (
	"strings"
	"time"

	profileRepo "opaleka/database/repository/profile"
	userRepo "opaleka/database/repository/user"
	"opaleka/models"
	"opaleka/utils"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"golang.org/x/crypto/bcrypt"
)

// DetailsCreator seeds the verification/payment record for a newly registered
// provider.
type DetailsCreator interface {
	EnsureDetails(userID string, documents models.IDDocument) error
}

// RegisterRequest is the payload for account registration.
type RegisterRequest struct {
	Name         string            `json:"name"`
	Email        string            `json:"email"`
	Password     string            `json:"password"`
	Phone        string            `json:"phone"`
	Role         string            `json:"role"`
	BusinessName string            `json:"businessName"`
	Documents    models.IDDocument `json:"documents"`
}

// LoginResult carries a fresh access token and the authenticated user.
type LoginResult struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expiresAt"`
	User      *models.User `json:"user"`
}

// UpdateProfileRequest is the payload for basic account updates.
type UpdateProfileRequest struct {
	Name         string `json:"name"`
	Phone        string `json:"phone"`
	ProfileImage string `json:"profileImage"`
	BusinessName string `json:"businessName"`
	FCMToken     string `json:"fcmToken"`
}

// Service owns accounts, sessions, and provider business profiles.
type Service interface {
	// Register creates an account. Provider registrations also seed the
	// verification/payment record.
	Register(req *RegisterRequest) (*models.User, error)
	// Login verifies credentials and issues an access token.
	Login(email, password string) (*LoginResult, error)
	// Logout revokes an access token for its remaining validity.
	Logout(token string) error
	// GetByID fetches an account.
	GetByID(id string) (*models.User, error)
	// UpdateProfile applies basic account field updates.
	UpdateProfile(id string, req *UpdateProfileRequest) (*models.User, error)
	// ChangePassword rotates the password after verifying the current one.
	ChangePassword(id, current, next string) error
	// SaveCompleteProfile creates or replaces a provider's business profile.
	SaveCompleteProfile(userID string, profile *models.CompleteProfile) error
	// CompleteProfile fetches a provider's business profile.
	CompleteProfile(userID string) (*models.CompleteProfile, error)
	// Search finds users by name or email, optionally filtered by role.
	Search(query, role string) ([]models.User, error)
}

// DefaultService is the production user service.
type DefaultService struct {
	Repo     userRepo.UserRepository
	Profiles profileRepo.ProfileRepository
	Details  DetailsCreator
}

// NewDefaultService builds the user service.
func NewDefaultService(repo userRepo.UserRepository, profiles profileRepo.ProfileRepository, details DetailsCreator) *DefaultService {
	return &DefaultService{Repo: repo, Profiles: profiles, Details: details}
}

// Register creates the account and, for providers, seeds their verification
// record so they appear on the admin dashboard immediately.
func (s *DefaultService) Register(req *RegisterRequest) (*models.User, error) {
	var missing []string
	if req.Name == "" {
		missing = append(missing, "name")
	}
	if req.Email == "" {
		missing = append(missing, "email")
	}
	if req.Password == "" {
		missing = append(missing, "password")
	}
	if len(missing) > 0 {
		return nil, utils.NewValidationError("missing required fields: %s", strings.Join(missing, ", "))
	}
	if len(req.Password) < 8 {
		return nil, utils.NewValidationError("password must be at least 8 characters")
	}
	role := req.Role
	if role == "" {
		role = models.RoleClient
	}
	if role != models.RoleClient && role != models.RoleProvider {
		return nil, utils.NewValidationError("role must be %s or %s", models.RoleClient, models.RoleProvider)
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	existing, err := s.Repo.GetByEmail(email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, utils.NewConflictError("an account with this email already exists")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user := &models.User{
		ID:           uuid.New().String(),
		Name:         req.Name,
		Email:        email,
		PasswordHash: string(hash),
		Phone:        req.Phone,
		Role:         role,
		BusinessName: req.BusinessName,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.Repo.Create(user); err != nil {
		return nil, err
	}

	if role == models.RoleProvider {
		if err := s.Details.EnsureDetails(user.ID, req.Documents); err != nil {
			return nil, err
		}
	}
	return user, nil
}

// Login verifies credentials and issues a short-lived access token.
func (s *DefaultService) Login(email, password string) (*LoginResult, error) {
	if email == "" || password == "" {
		return nil, utils.NewValidationError("email and password are required")
	}
	user, err := s.Repo.GetByEmail(strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, utils.NewAuthError("invalid_credentials", "Invalid email or password.")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, utils.NewAuthError("invalid_credentials", "Invalid email or password.")
	}

	expiresAt := time.Now().Add(utils.AccessTokenTTL)
	token, err := utils.GenerateToken(user.ID, user.Role, utils.AccessTokenTTL)
	if err != nil {
		return nil, err
	}
	return &LoginResult{Token: token, ExpiresAt: expiresAt, User: user}, nil
}

// Logout blacklists the presented token until its natural expiry.
func (s *DefaultService) Logout(token string) error {
	claims, err := utils.ExtractClaims(token)
	if err != nil {
		// Already invalid or expired: nothing to revoke.
		return nil
	}
	return utils.BlacklistToken(token, claims.ExpiresAt)
}

// GetByID fetches an account.
func (s *DefaultService) GetByID(id string) (*models.User, error) {
	user, err := s.Repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, utils.NewNotFoundError("user")
	}
	return user, nil
}

// UpdateProfile applies basic account field updates.
func (s *DefaultService) UpdateProfile(id string, req *UpdateProfileRequest) (*models.User, error) {
	fields := bson.M{"updated_at": time.Now().UTC()}
	if req.Name != "" {
		fields["name"] = req.Name
	}
	if req.Phone != "" {
		fields["phone"] = req.Phone
	}
	if req.ProfileImage != "" {
		fields["profile_image"] = req.ProfileImage
	}
	if req.BusinessName != "" {
		fields["business_name"] = req.BusinessName
	}
	if req.FCMToken != "" {
		fields["fcm_token"] = req.FCMToken
	}
	if len(fields) == 1 {
		return nil, utils.NewValidationError("no fields to update")
	}
	if err := s.Repo.UpdateFields(id, fields); err != nil {
		return nil, err
	}
	return s.GetByID(id)
}

// ChangePassword rotates the password after verifying the current one.
func (s *DefaultService) ChangePassword(id, current, next string) error {
	if len(next) < 8 {
		return utils.NewValidationError("new password must be at least 8 characters")
	}
	user, err := s.GetByID(id)
	if err != nil {
		return err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(current)); err != nil {
		return utils.NewAuthError("invalid_credentials", "Current password is incorrect.")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(next), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return s.Repo.UpdateFields(id, bson.M{
		"password_hash": string(hash),
		"updated_at":    time.Now().UTC(),
	})
}

// SaveCompleteProfile creates or replaces a provider's business profile.
func (s *DefaultService) SaveCompleteProfile(userID string, profile *models.CompleteProfile) error {
	user, err := s.GetByID(userID)
	if err != nil {
		return err
	}
	if user.Role != models.RoleProvider {
		return utils.NewValidationError("only providers have a business profile")
	}
	if profile.BusinessAddress == "" || profile.Town == "" {
		return utils.NewValidationError("businessAddress and town are required")
	}
	if len(profile.Services) == 0 {
		return utils.NewValidationError("at least one service is required")
	}

	now := time.Now().UTC()
	if profile.ID == "" {
		profile.ID = uuid.New().String()
		profile.CreatedAt = now
	}
	profile.UserID = userID
	profile.UpdatedAt = now
	return s.Profiles.Upsert(profile)
}

// CompleteProfile fetches a provider's business profile.
func (s *DefaultService) CompleteProfile(userID string) (*models.CompleteProfile, error) {
	profile, err := s.Profiles.GetByUserID(userID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, utils.NewNotFoundError("profile")
	}
	return profile, nil
}

// Search finds users by name or email, optionally filtered by role.
func (s *DefaultService) Search(query, role string) ([]models.User, error) {
	return s.Repo.Search(query, role)
}
