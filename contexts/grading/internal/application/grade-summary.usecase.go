package application

import (
	"context"
	"fmt"

	"github.com/go-arrower/records/app"
	"github.com/go-arrower/records/contexts/grading/internal/domain"
)

func NewGradeSummaryQueryHandler(
	repo domain.StudentRepository,
	index *domain.GradeIndex,
) app.Query[GradeSummaryQuery, GradeSummaryResponse] {
	return &gradeSummaryQueryHandler{repo: repo, index: index}
}

type gradeSummaryQueryHandler struct {
	repo  domain.StudentRepository
	index *domain.GradeIndex
}

type (
	GradeSummaryQuery    struct{}
	GradeSummaryResponse struct {
		Total  int          `json:"total"`
		Grades []GradeGroup `json:"grades"`
	}
	// GradeGroup are the students with the same grade, in the order they were imported.
	GradeGroup struct {
		Grade    domain.Grade     `json:"grade"`
		Students []domain.Student `json:"students"`
	}
)

// H rebuilds the grade index from the current students, so the summary is never stale.
// All grades are listed from best to worst, including the ones no student has.
func (h *gradeSummaryQueryHandler) H(ctx context.Context, _ GradeSummaryQuery) (GradeSummaryResponse, error) {
	if err := h.index.BuildFrom(ctx, h.repo, domain.ByGrade); err != nil {
		return GradeSummaryResponse{}, fmt.Errorf("could not summarise grades: %w", err)
	}

	res := GradeSummaryResponse{Total: h.index.Size(), Grades: []GradeGroup{}}

	for _, grade := range domain.Grades() {
		res.Grades = append(res.Grades, GradeGroup{Grade: grade, Students: h.index.GetByKey(grade)})
	}

	return res, nil
}
