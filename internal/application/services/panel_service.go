package services

import (
	"context"
	"math"
	"strconv"
	"strings"
	"sync"

	"github.com/wardwatch/statuspanel/internal/domain/entities"
	"github.com/wardwatch/statuspanel/internal/domain/providers"
	"github.com/wardwatch/statuspanel/internal/domain/repositories"
	apperrors "github.com/wardwatch/statuspanel/pkg/errors"
	"github.com/wardwatch/statuspanel/pkg/videoid"
)

// PanelService is the command surface: it validates input, applies the
// change to the entity stores and broadcasts the committed state. A
// single mutex serializes all mutations, so each one is atomic to
// observers and broadcasts go out in commit order. Reads and snapshot
// building take the same mutex before touching the hub; the lock order
// is always service then hub.
type PanelService struct {
	mu         sync.Mutex
	sectors    repositories.SectorRepository
	physicians repositories.PhysicianRepository
	patients   repositories.PatientRepository
	bus        providers.Broadcaster
}

// NewPanelService creates the command surface
func NewPanelService(
	sectors repositories.SectorRepository,
	physicians repositories.PhysicianRepository,
	patients repositories.PatientRepository,
	bus providers.Broadcaster,
) *PanelService {
	return &PanelService{
		sectors:    sectors,
		physicians: physicians,
		patients:   patients,
		bus:        bus,
	}
}

// SectorUpdateInput carries the optional fields of a sector update.
// Nil means the field was absent from the request.
type SectorUpdateInput struct {
	Status      string
	Reason      *string
	ETAMinutes  *string
	Instruction *string
}

// UpdateSector applies a partial update to a sector. When the update
// leaves the sector Open its restriction metadata is cleared, and any
// restriction fields supplied in the same call are discarded: the clear
// wins. An etaMinutes value that does not parse to a finite number is
// dropped, not an error.
func (s *PanelService) UpdateSector(ctx context.Context, id string, input SectorUpdateInput) (*entities.Sector, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sector, err := s.sectors.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Status != "" {
		status := entities.SectorStatus(input.Status)
		if !status.Valid() {
			return nil, apperrors.NewValidationError("invalid status")
		}
		sector.Status = status
	}

	if sector.Status == entities.SectorStatusOpen {
		sector.ClearRestriction()
	} else {
		if input.Reason != nil {
			if reason := strings.TrimSpace(*input.Reason); reason != "" {
				sector.Reason = &reason
			}
		}
		if input.ETAMinutes != nil {
			if eta, ok := parseETA(*input.ETAMinutes); ok {
				sector.ETAMinutes = &eta
			}
		}
		if input.Instruction != nil {
			if instruction := strings.TrimSpace(*input.Instruction); instruction != "" {
				sector.Instruction = &instruction
			}
		}
	}

	if err := s.sectors.Save(ctx, sector); err != nil {
		return nil, err
	}

	s.bus.Publish(entities.NewPanelEvent(entities.PanelEventTypeSector, sector))
	return sector, nil
}

// AddPhysician creates a physician, defaulting availability to Available
func (s *PanelService) AddPhysician(ctx context.Context, id, name, availabilityStatus string) (*entities.Physician, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if id == "" || name == "" {
		return nil, apperrors.NewValidationError("id and name required")
	}

	status := entities.PhysicianStatusAvailable
	if availabilityStatus != "" {
		status = entities.PhysicianStatus(availabilityStatus)
		if !status.Valid() {
			return nil, apperrors.NewValidationError("invalid status")
		}
	}

	if _, err := s.physicians.GetByID(ctx, id); err == nil {
		return nil, apperrors.NewConflictError("id exists")
	}

	physician := &entities.Physician{ID: id, Name: name, AvailabilityStatus: status}
	if err := s.physicians.Save(ctx, physician); err != nil {
		return nil, err
	}

	s.bus.Publish(entities.NewPanelEvent(entities.PanelEventTypePhysician, physician))
	return physician, nil
}

// SetPhysicianStatus changes a physician's availability
func (s *PanelService) SetPhysicianStatus(ctx context.Context, id, status string) (*entities.Physician, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	availability := entities.PhysicianStatus(status)
	if !availability.Valid() {
		return nil, apperrors.NewValidationError("invalid status")
	}

	physician, err := s.physicians.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	physician.AvailabilityStatus = availability
	if err := s.physicians.Save(ctx, physician); err != nil {
		return nil, err
	}

	s.bus.Publish(entities.NewPanelEvent(entities.PanelEventTypePhysician, physician))
	return physician, nil
}

// RemovePhysician deletes a physician and broadcasts a deletion marker
func (s *PanelService) RemovePhysician(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existed, err := s.physicians.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !existed {
		return apperrors.NewNotFoundError("physician not found")
	}

	s.bus.Publish(entities.NewPanelEvent(entities.PanelEventTypePhysician, entities.NewDeletionMarker(id)))
	return nil
}

// AddPatient creates a patient routed to Waiting
func (s *PanelService) AddPatient(ctx context.Context, id, name string) (*entities.Patient, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if id == "" || name == "" {
		return nil, apperrors.NewValidationError("id and name required")
	}

	if _, err := s.patients.GetByID(ctx, id); err == nil {
		return nil, apperrors.NewConflictError("id exists")
	}

	patient := &entities.Patient{ID: id, Name: name, RoutedTo: entities.RouteWaiting}
	if err := s.patients.Save(ctx, patient); err != nil {
		return nil, err
	}

	s.bus.Publish(entities.NewPanelEvent(entities.PanelEventTypePatient, patient))
	return patient, nil
}

// RoutePatient directs a patient to one of the four rooms
func (s *PanelService) RoutePatient(ctx context.Context, id, route string) (*entities.Patient, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	routed := entities.Route(route)
	if !routed.Valid() {
		return nil, apperrors.NewValidationError("invalid route")
	}

	patient, err := s.patients.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	patient.RoutedTo = routed
	if err := s.patients.Save(ctx, patient); err != nil {
		return nil, err
	}

	s.bus.Publish(entities.NewPanelEvent(entities.PanelEventTypePatient, patient))
	return patient, nil
}

// RemovePatient deletes a patient and broadcasts a deletion marker
func (s *PanelService) RemovePatient(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existed, err := s.patients.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !existed {
		return apperrors.NewNotFoundError("patient not found")
	}

	s.bus.Publish(entities.NewPanelEvent(entities.PanelEventTypePatient, entities.NewDeletionMarker(id)))
	return nil
}

// PlayVideo resolves the video reference and broadcasts a playVideo
// event. The entity stores are not touched. start accepts a number or
// numeric string; anything else, and negatives, coerce to 0.
func (s *PanelService) PlayVideo(ctx context.Context, video string, start interface{}, mute bool) (string, error) {
	id, err := videoid.Resolve(video)
	if err != nil {
		return "", apperrors.NewValidationError("invalid video")
	}

	payload := entities.PlayVideoPayload{
		VideoID: id,
		Start:   coerceStart(start),
		Mute:    mute,
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.bus.Publish(entities.NewPanelEvent(entities.PanelEventTypePlayVideo, payload))
	return id, nil
}

// StopVideo broadcasts a stopVideo event
func (s *PanelService) StopVideo(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.bus.Publish(entities.NewPanelEvent(entities.PanelEventTypeStopVideo, entities.StopVideoPayload{}))
}

// ListSectors returns all sectors
func (s *PanelService) ListSectors(ctx context.Context) ([]*entities.Sector, error) {
	return s.sectors.List(ctx)
}

// ListPhysicians returns all physicians
func (s *PanelService) ListPhysicians(ctx context.Context) ([]*entities.Physician, error) {
	return s.physicians.List(ctx)
}

// ListPatients returns all patients
func (s *PanelService) ListPatients(ctx context.Context) ([]*entities.Patient, error) {
	return s.patients.List(ctx)
}

// Subscribe registers a live-update subscriber. The snapshot is built
// under the mutation mutex, so it reflects a committed state and every
// later mutation reaches the subscriber exactly once as an increment.
func (s *PanelService) Subscribe(ctx context.Context) (*providers.Subscription, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot, err := s.buildSnapshot(ctx)
	if err != nil {
		return nil, err
	}
	return s.bus.Subscribe(entities.NewPanelEvent(entities.PanelEventTypeSnapshot, snapshot))
}

// Unsubscribe removes a live-update subscriber
func (s *PanelService) Unsubscribe(id string) {
	s.bus.Unsubscribe(id)
}

func (s *PanelService) buildSnapshot(ctx context.Context) (*entities.Snapshot, error) {
	sectors, err := s.sectors.List(ctx)
	if err != nil {
		return nil, err
	}
	physicians, err := s.physicians.List(ctx)
	if err != nil {
		return nil, err
	}
	patients, err := s.patients.List(ctx)
	if err != nil {
		return nil, err
	}
	return &entities.Snapshot{
		Sectors:    sectors,
		Physicians: physicians,
		Patients:   patients,
	}, nil
}

// parseETA parses a textual etaMinutes value. Only finite, non-negative
// values are stored.
func parseETA(raw string) (int, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || f < 0 {
		return 0, false
	}
	return int(f), true
}

func coerceStart(v interface{}) int {
	switch start := v.(type) {
	case nil:
		return 0
	case float64:
		if start < 0 || math.IsNaN(start) || math.IsInf(start, 0) {
			return 0
		}
		return int(start)
	case int:
		if start < 0 {
			return 0
		}
		return start
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(start), 64)
		if err != nil || f < 0 || math.IsNaN(f) || math.IsInf(f, 0) {
			return 0
		}
		return int(f)
	default:
		return 0
	}
}
