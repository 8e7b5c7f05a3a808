package application

import (
	"context"
	"fmt"

	"github.com/go-arrower/records/app"
	"github.com/go-arrower/records/contexts/health/internal/domain"
)

func NewListPatientsQueryHandler(patients domain.PatientRepository) app.Query[ListPatientsQuery, ListPatientsResponse] {
	return &listPatientsQueryHandler{patients: patients}
}

type listPatientsQueryHandler struct {
	patients domain.PatientRepository
}

type (
	ListPatientsQuery    struct{}
	ListPatientsResponse struct {
		Patients []domain.Patient `json:"patients"`
	}
)

func (h *listPatientsQueryHandler) H(ctx context.Context, _ ListPatientsQuery) (ListPatientsResponse, error) {
	patients, err := h.patients.GetAll(ctx)
	if err != nil {
		return ListPatientsResponse{}, fmt.Errorf("could not get patients: %w", err)
	}

	return ListPatientsResponse{Patients: patients}, nil
}
