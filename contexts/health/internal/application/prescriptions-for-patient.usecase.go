package application

import (
	"context"
	"fmt"

	"github.com/go-arrower/records/app"
	"github.com/go-arrower/records/contexts/health/internal/domain"
)

func NewPrescriptionsForPatientQueryHandler(
	patients domain.PatientRepository,
	index *domain.PrescriptionIndex,
) app.Query[PrescriptionsForPatientQuery, PrescriptionsForPatientResponse] {
	return app.NewValidatedQuery[PrescriptionsForPatientQuery, PrescriptionsForPatientResponse](
		nil,
		&prescriptionsForPatientQueryHandler{patients: patients, index: index},
	)
}

type prescriptionsForPatientQueryHandler struct {
	patients domain.PatientRepository
	index    *domain.PrescriptionIndex
}

type (
	PrescriptionsForPatientQuery struct {
		PatientID domain.PatientID `validate:"required"`
	}
	PrescriptionsForPatientResponse struct {
		Patient domain.Patient `json:"patient"`
		// Prescriptions are ordered by the day they are issued. A patient without prescriptions has an empty list.
		Prescriptions []domain.Prescription `json:"prescriptions"`
	}
)

func (h *prescriptionsForPatientQueryHandler) H(
	ctx context.Context,
	query PrescriptionsForPatientQuery,
) (PrescriptionsForPatientResponse, error) {
	patient, err := h.patients.GetByID(ctx, query.PatientID)
	if err != nil {
		return PrescriptionsForPatientResponse{}, fmt.Errorf("could not get patient: %w", err)
	}

	prescriptions := h.index.GetByKey(patient.ID)
	domain.SortByDateIssued(prescriptions)

	return PrescriptionsForPatientResponse{
		Patient:       patient,
		Prescriptions: prescriptions,
	}, nil
}
