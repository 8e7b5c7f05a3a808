package application_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/go-arrower/records/arepo"
	"github.com/go-arrower/records/contexts/health/internal/application"
	"github.com/go-arrower/records/contexts/health/internal/domain"
)

var (
	ctx = context.Background()

	today = time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
)

type testApp struct {
	application.App

	patients      domain.PatientRepository
	prescriptions domain.PrescriptionRepository
	index         *domain.PrescriptionIndex
}

// newTestApp returns the health application on memory repositories.
func newTestApp(t *testing.T) testApp {
	t.Helper()

	patients, err := arepo.NewMemoryRepository[domain.Patient, domain.PatientID](ctx)
	require.NoError(t, err)

	prescriptions, err := arepo.NewMemoryRepository[domain.Prescription, domain.PrescriptionID](ctx)
	require.NoError(t, err)

	index := domain.NewPrescriptionIndex()

	return testApp{
		App: application.App{
			SeedData:                application.NewSeedDataCommandHandler(patients, prescriptions),
			BuildPrescriptionIndex:  application.NewBuildPrescriptionIndexCommandHandler(prescriptions, index),
			ListPatients:            application.NewListPatientsQueryHandler(patients),
			PrescriptionsForPatient: application.NewPrescriptionsForPatientQueryHandler(patients, index),
		},
		patients:      patients,
		prescriptions: prescriptions,
		index:         index,
	}
}

// seeded returns a test app with the sample data and a built index.
func seeded(t *testing.T) testApp {
	t.Helper()

	a := newTestApp(t)

	require.NoError(t, a.SeedData.H(ctx, application.SeedDataCommand{Today: today}))
	require.NoError(t, a.BuildPrescriptionIndex.H(ctx, application.BuildPrescriptionIndexCommand{}))

	return a
}

func prescriptionIDs(prescriptions []domain.Prescription) []domain.PrescriptionID {
	ids := make([]domain.PrescriptionID, 0, len(prescriptions))
	for _, p := range prescriptions {
		ids = append(ids, p.ID)
	}

	return ids
}
