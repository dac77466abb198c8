// Package memory holds the authoritative in-memory stores for the
// panel's three entity kinds. State lives for the process lifetime
// only; persistence across restarts is out of scope.
package memory

import (
	"context"
	"sync"

	"github.com/wardwatch/statuspanel/internal/domain/entities"
	"github.com/wardwatch/statuspanel/internal/domain/repositories"
	apperrors "github.com/wardwatch/statuspanel/pkg/errors"
)

// SectorStore is an in-memory SectorRepository
type SectorStore struct {
	mu      sync.RWMutex
	sectors map[string]*entities.Sector
	order   []string
}

// NewSectorStore creates an empty sector store
func NewSectorStore() *SectorStore {
	return &SectorStore{
		sectors: make(map[string]*entities.Sector),
	}
}

// GetByID retrieves a sector by ID
func (s *SectorStore) GetByID(ctx context.Context, id string) (*entities.Sector, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sector, ok := s.sectors[id]
	if !ok {
		return nil, apperrors.NewNotFoundError("sector not found")
	}
	return sector.Clone(), nil
}

// List retrieves all sectors in insertion order
func (s *SectorStore) List(ctx context.Context) ([]*entities.Sector, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*entities.Sector, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.sectors[id].Clone())
	}
	return out, nil
}

// Save inserts or overwrites a sector by ID
func (s *SectorStore) Save(ctx context.Context, sector *entities.Sector) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.sectors[sector.ID]; !exists {
		s.order = append(s.order, sector.ID)
	}
	s.sectors[sector.ID] = sector.Clone()
	return nil
}

// PhysicianStore is an in-memory PhysicianRepository
type PhysicianStore struct {
	mu         sync.RWMutex
	physicians map[string]*entities.Physician
	order      []string
}

// NewPhysicianStore creates an empty physician store
func NewPhysicianStore() *PhysicianStore {
	return &PhysicianStore{
		physicians: make(map[string]*entities.Physician),
	}
}

// GetByID retrieves a physician by ID
func (s *PhysicianStore) GetByID(ctx context.Context, id string) (*entities.Physician, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	physician, ok := s.physicians[id]
	if !ok {
		return nil, apperrors.NewNotFoundError("physician not found")
	}
	return physician.Clone(), nil
}

// List retrieves all physicians in insertion order
func (s *PhysicianStore) List(ctx context.Context) ([]*entities.Physician, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*entities.Physician, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.physicians[id].Clone())
	}
	return out, nil
}

// Save inserts or overwrites a physician by ID
func (s *PhysicianStore) Save(ctx context.Context, physician *entities.Physician) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.physicians[physician.ID]; !exists {
		s.order = append(s.order, physician.ID)
	}
	s.physicians[physician.ID] = physician.Clone()
	return nil
}

// Delete removes a physician, reporting whether it existed
func (s *PhysicianStore) Delete(ctx context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.physicians[id]; !exists {
		return false, nil
	}
	delete(s.physicians, id)
	s.order = removeID(s.order, id)
	return true, nil
}

// PatientStore is an in-memory PatientRepository
type PatientStore struct {
	mu       sync.RWMutex
	patients map[string]*entities.Patient
	order    []string
}

// NewPatientStore creates an empty patient store
func NewPatientStore() *PatientStore {
	return &PatientStore{
		patients: make(map[string]*entities.Patient),
	}
}

// GetByID retrieves a patient by ID
func (s *PatientStore) GetByID(ctx context.Context, id string) (*entities.Patient, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	patient, ok := s.patients[id]
	if !ok {
		return nil, apperrors.NewNotFoundError("patient not found")
	}
	return patient.Clone(), nil
}

// List retrieves all patients in insertion order
func (s *PatientStore) List(ctx context.Context) ([]*entities.Patient, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*entities.Patient, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.patients[id].Clone())
	}
	return out, nil
}

// Save inserts or overwrites a patient by ID
func (s *PatientStore) Save(ctx context.Context, patient *entities.Patient) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.patients[patient.ID]; !exists {
		s.order = append(s.order, patient.ID)
	}
	s.patients[patient.ID] = patient.Clone()
	return nil
}

// Delete removes a patient, reporting whether it existed
func (s *PatientStore) Delete(ctx context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.patients[id]; !exists {
		return false, nil
	}
	delete(s.patients, id)
	s.order = removeID(s.order, id)
	return true, nil
}

func removeID(order []string, id string) []string {
	for i, existing := range order {
		if existing == id {
			return append(order[:i], order[i+1:]...)
		}
	}
	return order
}

var _ repositories.SectorRepository = (*SectorStore)(nil)
var _ repositories.PhysicianRepository = (*PhysicianStore)(nil)
var _ repositories.PatientRepository = (*PatientStore)(nil)
