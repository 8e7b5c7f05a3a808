package application_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-arrower/records/contexts/grading/internal/application"
	"github.com/go-arrower/records/contexts/grading/internal/domain"
)

func studentIDs(students []domain.Student) []domain.StudentID {
	ids := make([]domain.StudentID, 0, len(students))
	for _, s := range students {
		ids = append(ids, s.ID)
	}

	return ids
}

func TestGradeSummaryQueryHandler_H(t *testing.T) {
	t.Parallel()

	t.Run("summary", func(t *testing.T) {
		t.Parallel()

		a := imported(t)

		res, err := a.GradeSummary.H(ctx, application.GradeSummaryQuery{})
		assert.NoError(t, err)
		assert.Equal(t, 5, res.Total)
		require.Len(t, res.Grades, 6)

		assert.Equal(t, domain.GradeA, res.Grades[0].Grade)
		assert.Equal(t, []domain.StudentID{1, 3}, studentIDs(res.Grades[0].Students))
		assert.Equal(t, []domain.StudentID{2}, studentIDs(res.Grades[2].Students))
		assert.Empty(t, res.Grades[3].Students)
		assert.Equal(t, []domain.StudentID{4}, studentIDs(res.Grades[4].Students))
		assert.Equal(t, domain.GradeInvalid, res.Grades[5].Grade)
		assert.Equal(t, []domain.StudentID{5}, studentIDs(res.Grades[5].Students))
	})

	t.Run("summary follows new students", func(t *testing.T) {
		t.Parallel()

		a := imported(t)

		_, err := a.GradeSummary.H(ctx, application.GradeSummaryQuery{})
		require.NoError(t, err)

		require.NoError(t, a.repo.Insert(ctx, domain.Student{ID: 6, FullName: "Yaw Asante", Score: 75}))

		res, err := a.GradeSummary.H(ctx, application.GradeSummaryQuery{})
		assert.NoError(t, err)
		assert.Equal(t, 6, res.Total)
		assert.Equal(t, []domain.StudentID{6}, studentIDs(res.Grades[1].Students))
	})

	t.Run("no students", func(t *testing.T) {
		t.Parallel()

		a := newTestApp(t)

		res, err := a.GradeSummary.H(ctx, application.GradeSummaryQuery{})
		assert.NoError(t, err)
		assert.Equal(t, 0, res.Total)
		assert.Len(t, res.Grades, 6)
	})
}
