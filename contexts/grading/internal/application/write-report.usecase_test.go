package application_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-arrower/records/app"
	"github.com/go-arrower/records/contexts/grading/internal/application"
)

func TestWriteReportCommandHandler_H(t *testing.T) {
	t.Parallel()

	t.Run("write", func(t *testing.T) {
		t.Parallel()

		a := imported(t)
		path := filepath.Join(t.TempDir(), "report.txt")

		err := a.WriteReport.H(ctx, application.WriteReportCommand{Path: path})
		assert.NoError(t, err)

		b, err := os.ReadFile(path)
		require.NoError(t, err)

		lines := strings.Split(strings.TrimSpace(string(b)), "\n")
		assert.Len(t, lines, 5)
		assert.Equal(t, "Ama Mensah (ID: 1): Score = 84, Grade = A", lines[0])
		assert.Equal(t, "Abena Sarpong (ID: 5): Score = 104, Grade = Invalid", lines[4])
	})

	t.Run("missing path", func(t *testing.T) {
		t.Parallel()

		a := imported(t)

		err := a.WriteReport.H(ctx, application.WriteReportCommand{})
		assert.ErrorIs(t, err, app.ErrValidation)
	})

	t.Run("unwritable path", func(t *testing.T) {
		t.Parallel()

		a := imported(t)

		err := a.WriteReport.H(ctx, application.WriteReportCommand{Path: filepath.Join(t.TempDir(), "missing", "report.txt")})
		assert.Error(t, err)
	})
}
