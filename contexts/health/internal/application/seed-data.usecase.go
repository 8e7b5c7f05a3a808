package application

import (
	"context"
	"fmt"
	"time"

	"github.com/go-arrower/records/app"
	"github.com/go-arrower/records/arepo"
	"github.com/go-arrower/records/contexts/health/internal/domain"
)

func NewSeedDataCommandHandler(
	patients domain.PatientRepository,
	prescriptions domain.PrescriptionRepository,
) app.Command[SeedDataCommand] {
	return &seedDataCommandHandler{patients: patients, prescriptions: prescriptions}
}

type seedDataCommandHandler struct {
	patients      domain.PatientRepository
	prescriptions domain.PrescriptionRepository
}

// SeedDataCommand fills empty repositories with sample patients and their prescriptions.
// Today is the day prescriptions are issued relative to, it defaults to the current day.
type SeedDataCommand struct {
	Today time.Time
}

func (h *seedDataCommandHandler) H(ctx context.Context, cmd SeedDataCommand) error {
	count, err := h.patients.Count(ctx)
	if err != nil {
		return fmt.Errorf("could not count patients: %w", err)
	}

	if count > 0 { // already seeded, e.g. loaded from a persistent store
		return nil
	}

	today := cmd.Today
	if today.IsZero() {
		today = time.Now().UTC().Truncate(24 * time.Hour) //nolint:mnd // one day
	}

	err = h.patients.InsertAll(ctx, []domain.Patient{
		{ID: 1, Name: "Ama Mensah", Age: 28, Gender: "Female"},
		{ID: 2, Name: "Kwame Boateng", Age: 35, Gender: "Male"},
		{ID: 3, Name: "Efua Owusu", Age: 42, Gender: "Female"},
	})
	if err != nil {
		return fmt.Errorf("could not seed patients: %w", err)
	}

	daysAgo := func(days int) time.Time { return today.AddDate(0, 0, -days) }

	prescriptions := []domain.Prescription{
		{ID: 101, PatientID: 1, MedicationName: "Amoxicillin 500mg", DateIssued: daysAgo(10)},
		{ID: 102, PatientID: 1, MedicationName: "Paracetamol 1g", DateIssued: daysAgo(7)},
		{ID: 103, PatientID: 2, MedicationName: "Ibuprofen 400mg", DateIssued: daysAgo(5)},
		{ID: 104, PatientID: 3, MedicationName: "Atorvastatin 20mg", DateIssued: daysAgo(2)},
		{ID: 105, PatientID: 2, MedicationName: "Metformin 500mg", DateIssued: daysAgo(1)},
	}

	for _, p := range prescriptions {
		ok, err := h.patients.Exists(ctx, p.PatientID)
		if err != nil {
			return fmt.Errorf("could not check patient: %w", err)
		}

		if !ok {
			return fmt.Errorf("%w: patient %d of prescription %d", arepo.ErrNotFound, p.PatientID, p.ID)
		}
	}

	err = h.prescriptions.InsertAll(ctx, prescriptions)
	if err != nil {
		return fmt.Errorf("could not seed prescriptions: %w", err)
	}

	return nil
}
