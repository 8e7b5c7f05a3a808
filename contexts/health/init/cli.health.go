package init

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/go-arrower/records/arepo"
	"github.com/go-arrower/records/cmd"
	"github.com/go-arrower/records/contexts/health/internal/application"
	"github.com/go-arrower/records/contexts/health/internal/domain"
)

// Command returns the `health` command, printing all patients and
// the prescriptions of one of them.
func (hc *HealthContext) Command() *cobra.Command {
	var patientID int

	command := &cobra.Command{
		Use:   contextName,
		Short: "List patients and their prescriptions",
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			ctx := c.Context()
			w := c.OutOrStdout()

			if err := hc.Setup(ctx); err != nil {
				return err
			}

			res, err := hc.app.ListPatients.H(ctx, application.ListPatientsQuery{})
			if err != nil {
				return fmt.Errorf("could not list patients: %w", err)
			}

			cmd.Heading(w, "All Patients")

			for _, p := range res.Patients {
				cmd.Item(w, p)
			}

			_, _ = fmt.Fprintln(w)

			rx, err := hc.app.PrescriptionsForPatient.H(ctx, application.PrescriptionsForPatientQuery{
				PatientID: domain.PatientID(patientID),
			})
			if errors.Is(err, arepo.ErrNotFound) {
				cmd.Failure(w, fmt.Errorf("no patient found with id %d", patientID)) //nolint:err113 // message for the user

				return nil
			}

			if err != nil {
				return fmt.Errorf("could not list prescriptions: %w", err)
			}

			cmd.Heading(w, fmt.Sprintf("Prescriptions for %s (#%d)", rx.Patient.Name, rx.Patient.ID))

			if len(rx.Prescriptions) == 0 {
				_, _ = fmt.Fprintln(w, "  (none)")
			}

			for _, p := range rx.Prescriptions {
				cmd.Item(w, p)
			}

			return nil
		},
	}

	command.Flags().IntVar(&patientID, "patient", 2, "id of the patient to list the prescriptions for") //nolint:mnd,lll // sample patient

	return command
}
