package application

import (
	"context"
	"fmt"

	"github.com/go-arrower/records/app"
	"github.com/go-arrower/records/contexts/health/internal/domain"
)

func NewBuildPrescriptionIndexCommandHandler(
	prescriptions domain.PrescriptionRepository,
	index *domain.PrescriptionIndex,
) app.Command[BuildPrescriptionIndexCommand] {
	return &buildPrescriptionIndexCommandHandler{prescriptions: prescriptions, index: index}
}

type buildPrescriptionIndexCommandHandler struct {
	prescriptions domain.PrescriptionRepository
	index         *domain.PrescriptionIndex
}

// BuildPrescriptionIndexCommand replaces the index with the prescriptions currently stored.
// Run it after every change to the prescriptions, the index is not updated on its own.
type BuildPrescriptionIndexCommand struct{}

func (h *buildPrescriptionIndexCommandHandler) H(ctx context.Context, _ BuildPrescriptionIndexCommand) error {
	err := h.index.BuildFrom(ctx, h.prescriptions, domain.ByPatient)
	if err != nil {
		return fmt.Errorf("could not build prescription index: %w", err)
	}

	return nil
}
