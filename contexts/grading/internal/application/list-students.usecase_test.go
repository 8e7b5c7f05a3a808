package application_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/go-arrower/records/contexts/grading/internal/application"
	"github.com/go-arrower/records/contexts/grading/internal/domain"
)

func TestListStudentsQueryHandler_H(t *testing.T) {
	t.Parallel()

	a := imported(t)

	res, err := a.ListStudents.H(ctx, application.ListStudentsQuery{})
	assert.NoError(t, err)
	assert.Equal(t, []domain.StudentID{1, 2, 3, 4, 5}, studentIDs(res.Students))
}
