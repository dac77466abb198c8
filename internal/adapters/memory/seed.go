package memory

import (
	"context"

	"github.com/wardwatch/statuspanel/internal/domain/entities"
)

// Seed loads the fixed sample rows the panel starts with.
func Seed(ctx context.Context, sectors *SectorStore, physicians *PhysicianStore, patients *PatientStore) error {
	overcrowded := "Overcrowded"

	seedSectors := []*entities.Sector{
		{ID: "s1", Name: "Adult Emergency", Status: entities.SectorStatusOpen},
		{ID: "s2", Name: "Pediatric Emergency", Status: entities.SectorStatusRestricted, Reason: &overcrowded},
		{ID: "s3", Name: "Dental Emergency", Status: entities.SectorStatusOpen},
	}
	for _, sector := range seedSectors {
		if err := sectors.Save(ctx, sector); err != nil {
			return err
		}
	}

	seedPhysicians := []*entities.Physician{
		{ID: "doc1", Name: "Dr. Silva", AvailabilityStatus: entities.PhysicianStatusAvailable},
		{ID: "doc2", Name: "Dr. Souza", AvailabilityStatus: entities.PhysicianStatusBusy},
	}
	for _, physician := range seedPhysicians {
		if err := physicians.Save(ctx, physician); err != nil {
			return err
		}
	}

	seedPatients := []*entities.Patient{
		{ID: "p1", Name: "Joao", RoutedTo: entities.RouteWaiting},
		{ID: "p2", Name: "Maria", RoutedTo: entities.RouteWaiting},
	}
	for _, patient := range seedPatients {
		if err := patients.Save(ctx, patient); err != nil {
			return err
		}
	}

	return nil
}
