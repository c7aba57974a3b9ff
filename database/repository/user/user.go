package userRepo

import (
	"opaleka/models"

	"go.mongodb.org/mongo-driver/bson"
)

// UserRepository defines methods for user data access.
type UserRepository interface {
	// GetByID retrieves a user by its unique ID, or nil when absent.
	GetByID(id string) (*models.User, error)
	// GetByEmail retrieves a user by its email address, or nil when absent.
	GetByEmail(email string) (*models.User, error)
	// Create inserts a new user record.
	Create(user *models.User) error
	// UpdateFields applies a partial $set update to the user document.
	UpdateFields(id string, fields bson.M) error
	// Delete removes a user record by its ID.
	Delete(id string) error
	// CountByRole counts users holding the given role.
	CountByRole(role string) (int64, error)
	// Search finds users whose name or email matches the query, optionally
	// restricted to a role.
	Search(query, role string) ([]models.User, error)
}
