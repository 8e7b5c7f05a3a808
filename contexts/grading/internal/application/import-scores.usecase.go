package application

import (
	"context"
	"fmt"
	"os"

	"github.com/go-arrower/records/app"
	"github.com/go-arrower/records/contexts/grading/internal/domain"
)

func NewImportScoresRequestHandler(repo domain.StudentRepository) app.Request[ImportScoresRequest, ImportScoresResponse] {
	return app.NewValidatedRequest[ImportScoresRequest, ImportScoresResponse](nil, &importScoresRequestHandler{repo: repo})
}

type importScoresRequestHandler struct {
	repo domain.StudentRepository
}

type (
	// ImportScoresRequest imports the score file at Path. Either all students of the file are imported or none.
	ImportScoresRequest struct {
		Path string `validate:"required"`
	}
	ImportScoresResponse struct {
		Imported int
	}
)

func (h *importScoresRequestHandler) H(ctx context.Context, req ImportScoresRequest) (ImportScoresResponse, error) {
	f, err := os.Open(req.Path)
	if err != nil {
		return ImportScoresResponse{}, fmt.Errorf("could not import scores: %w", err)
	}
	defer f.Close()

	students, err := domain.ParseScores(f)
	if err != nil {
		return ImportScoresResponse{}, fmt.Errorf("could not import scores from %s: %w", req.Path, err)
	}

	if err = h.repo.InsertAll(ctx, students); err != nil {
		return ImportScoresResponse{}, fmt.Errorf("could not import scores from %s: %w", req.Path, err)
	}

	return ImportScoresResponse{Imported: len(students)}, nil
}
