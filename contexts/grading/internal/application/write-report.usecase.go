package application

import (
	"context"
	"fmt"
	"os"

	"github.com/go-arrower/records/app"
	"github.com/go-arrower/records/contexts/grading/internal/domain"
)

func NewWriteReportCommandHandler(repo domain.StudentRepository) app.Command[WriteReportCommand] {
	return app.NewValidatedCommand[WriteReportCommand](nil, &writeReportCommandHandler{repo: repo})
}

type writeReportCommandHandler struct {
	repo domain.StudentRepository
}

// WriteReportCommand writes the report of all students to Path, replacing an existing file.
type WriteReportCommand struct {
	Path string `validate:"required"`
}

func (h *writeReportCommandHandler) H(ctx context.Context, cmd WriteReportCommand) error {
	students, err := h.repo.GetAll(ctx)
	if err != nil {
		return fmt.Errorf("could not write report: %w", err)
	}

	f, err := os.Create(cmd.Path)
	if err != nil {
		return fmt.Errorf("could not write report: %w", err)
	}

	if err = domain.WriteReport(f, students); err != nil {
		_ = f.Close()

		return err
	}

	if err = f.Close(); err != nil {
		return fmt.Errorf("could not write report: %w", err)
	}

	return nil
}
