package repositories

import (
	"context"

	"github.com/wardwatch/statuspanel/internal/domain/entities"
)

// SectorRepository defines the interface for sector state operations.
// Sectors are pre-seeded and never deleted, so there is no Delete.
type SectorRepository interface {
	// GetByID retrieves a sector by ID
	GetByID(ctx context.Context, id string) (*entities.Sector, error)

	// List retrieves all sectors
	List(ctx context.Context) ([]*entities.Sector, error)

	// Save inserts or overwrites a sector by ID
	Save(ctx context.Context, sector *entities.Sector) error
}

// PhysicianRepository defines the interface for physician state operations
type PhysicianRepository interface {
	// GetByID retrieves a physician by ID
	GetByID(ctx context.Context, id string) (*entities.Physician, error)

	// List retrieves all physicians
	List(ctx context.Context) ([]*entities.Physician, error)

	// Save inserts or overwrites a physician by ID
	Save(ctx context.Context, physician *entities.Physician) error

	// Delete removes a physician, reporting whether it existed
	Delete(ctx context.Context, id string) (bool, error)
}

// PatientRepository defines the interface for patient state operations
type PatientRepository interface {
	// GetByID retrieves a patient by ID
	GetByID(ctx context.Context, id string) (*entities.Patient, error)

	// List retrieves all patients
	List(ctx context.Context) ([]*entities.Patient, error)

	// Save inserts or overwrites a patient by ID
	Save(ctx context.Context, patient *entities.Patient) error

	// Delete removes a patient, reporting whether it existed
	Delete(ctx context.Context, id string) (bool, error)
}
