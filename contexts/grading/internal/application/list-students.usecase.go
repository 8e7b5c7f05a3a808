package application

import (
	"context"
	"fmt"

	"github.com/go-arrower/records/app"
	"github.com/go-arrower/records/contexts/grading/internal/domain"
)

func NewListStudentsQueryHandler(repo domain.StudentRepository) app.Query[ListStudentsQuery, ListStudentsResponse] {
	return &listStudentsQueryHandler{repo: repo}
}

type listStudentsQueryHandler struct {
	repo domain.StudentRepository
}

type (
	ListStudentsQuery    struct{}
	ListStudentsResponse struct {
		Students []domain.Student `json:"students"`
	}
)

func (h *listStudentsQueryHandler) H(ctx context.Context, _ ListStudentsQuery) (ListStudentsResponse, error) {
	students, err := h.repo.GetAll(ctx)
	if err != nil {
		return ListStudentsResponse{}, fmt.Errorf("could not list students: %w", err)
	}

	return ListStudentsResponse{Students: students}, nil
}
