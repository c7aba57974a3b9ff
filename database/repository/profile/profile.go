package profileRepo

import "opaleka/models"

// ProfileRepository defines data access for provider complete profiles.
// A user owns at most one profile; Upsert keeps that invariant.
type ProfileRepository interface {
	// Upsert creates or replaces the profile for its user.
	Upsert(p *models.CompleteProfile) error
	// GetByUserID retrieves a user's profile, or nil when absent.
	GetByUserID(userID string) (*models.CompleteProfile, error)
	// DeleteByUserID removes a user's profile if present.
	DeleteByUserID(userID string) error
}
