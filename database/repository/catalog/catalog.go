package catalogRepo

import "opaleka/models"

// ServiceRepository defines data access for the service catalog.
type ServiceRepository interface {
	// Create inserts a new catalog entry.
	Create(s *models.Service) error
	// List returns every catalog entry, name-sorted.
	List() ([]models.Service, error)
	// Categories returns the distinct category names.
	Categories() ([]string, error)
	// Delete removes a catalog entry by ID. Reports whether it matched.
	Delete(id string) (bool, error)
}

// TipRepository defines data access for advice cards.
type TipRepository interface {
	// Create inserts a new tip.
	Create(t *models.Tip) error
	// List returns every tip, newest first.
	List() ([]models.Tip, error)
	// Update applies new content to a tip. Reports whether it matched.
	Update(t *models.Tip) (bool, error)
	// Delete removes a tip by ID. Reports whether it matched.
	Delete(id string) (bool, error)
}
