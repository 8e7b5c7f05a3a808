package application_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/require"

	"github.com/go-arrower/records/arepo"
	"github.com/go-arrower/records/contexts/grading/internal/application"
	"github.com/go-arrower/records/contexts/grading/internal/domain"
)

var ctx = context.Background()

const scores = `1, Ama Mensah, 84
2, Kwame Boateng, 67
3, Efua Owusu, 91
4, Kofi Adjei, 45
5, Abena Sarpong, 104
`

type testApp struct {
	application.App

	repo domain.StudentRepository
}

func newTestApp(t *testing.T) testApp {
	t.Helper()

	repo, err := arepo.NewMemoryRepository[domain.Student, domain.StudentID](ctx,
		arepo.WithStructValidation(validator.New()),
	)
	require.NoError(t, err)

	return testApp{
		App: application.App{
			ImportScores: application.NewImportScoresRequestHandler(repo),
			ListStudents: application.NewListStudentsQueryHandler(repo),
			GradeSummary: application.NewGradeSummaryQueryHandler(repo, domain.NewGradeIndex()),
			WriteReport:  application.NewWriteReportCommandHandler(repo),
		},
		repo: repo,
	}
}

// scoreFile writes content into a new score file and returns its path.
func scoreFile(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "scores.txt")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func imported(t *testing.T) testApp {
	t.Helper()

	a := newTestApp(t)

	_, err := a.ImportScores.H(ctx, application.ImportScoresRequest{Path: scoreFile(t, scores)})
	require.NoError(t, err)

	return a
}
