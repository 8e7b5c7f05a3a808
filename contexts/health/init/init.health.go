package init

import (
	"context"
	"fmt"

	"github.com/go-arrower/records"
	"github.com/go-arrower/records/app"
	"github.com/go-arrower/records/arepo"
	"github.com/go-arrower/records/contexts/health/internal/application"
	"github.com/go-arrower/records/contexts/health/internal/domain"
	"github.com/go-arrower/records/contexts/health/internal/interfaces/web"
)

const contextName = "health"

// HealthContext keeps patients and the prescriptions issued to them.
type HealthContext struct {
	app application.App
}

func NewHealthContext(ctx context.Context, di *records.Container) (*HealthContext, error) {
	if err := di.EnsureAllDependenciesPresent(); err != nil {
		return nil, fmt.Errorf("could not initialise %s context: %w", contextName, err)
	}

	patients, err := records.NewRepository[domain.Patient, domain.PatientID](
		ctx, di, contextName+".patients", arepo.WithStructValidation(di.Validate),
	)
	if err != nil {
		return nil, fmt.Errorf("could not initialise %s context: %w", contextName, err)
	}

	prescriptions, err := records.NewRepository[domain.Prescription, domain.PrescriptionID](
		ctx, di, contextName+".prescriptions", arepo.WithStructValidation(di.Validate),
	)
	if err != nil {
		return nil, fmt.Errorf("could not initialise %s context: %w", contextName, err)
	}

	index := domain.NewPrescriptionIndex()

	hc := &HealthContext{
		app: application.App{
			SeedData: app.NewInstrumentedCommand(di.TraceProvider, di.MeterProvider, di.Logger,
				application.NewSeedDataCommandHandler(patients, prescriptions),
			),
			BuildPrescriptionIndex: app.NewInstrumentedCommand(di.TraceProvider, di.MeterProvider, di.Logger,
				application.NewBuildPrescriptionIndexCommandHandler(prescriptions, index),
			),
			ListPatients: app.NewInstrumentedQuery(di.TraceProvider, di.MeterProvider, di.Logger,
				application.NewListPatientsQueryHandler(patients),
			),
			PrescriptionsForPatient: app.NewInstrumentedQuery(di.TraceProvider, di.MeterProvider, di.Logger,
				application.NewPrescriptionsForPatientQueryHandler(patients, index),
			),
		},
	}

	pc := web.NewPatientsController(hc.app)

	routes := di.WebRouter.Group("/" + contextName)
	routes.GET("/patients", pc.ListPatients())
	routes.GET("/patients/:id/prescriptions", pc.ListPrescriptions())

	return hc, nil
}

// Setup seeds the sample data and builds the prescription index.
func (hc *HealthContext) Setup(ctx context.Context) error {
	if err := hc.app.SeedData.H(ctx, application.SeedDataCommand{}); err != nil {
		return fmt.Errorf("could not set up %s context: %w", contextName, err)
	}

	if err := hc.app.BuildPrescriptionIndex.H(ctx, application.BuildPrescriptionIndexCommand{}); err != nil {
		return fmt.Errorf("could not set up %s context: %w", contextName, err)
	}

	return nil
}
