package application

import (
	"github.com/go-arrower/records/app"
)

// App is a dependency injection container.
type App struct {
	SeedData                app.Command[SeedDataCommand]
	BuildPrescriptionIndex  app.Command[BuildPrescriptionIndexCommand]
	ListPatients            app.Query[ListPatientsQuery, ListPatientsResponse]
	PrescriptionsForPatient app.Query[PrescriptionsForPatientQuery, PrescriptionsForPatientResponse]
}
