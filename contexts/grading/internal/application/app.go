package application

import (
	"github.com/go-arrower/records/app"
)

// App is a dependency injection container.
type App struct {
	ImportScores app.Request[ImportScoresRequest, ImportScoresResponse]
	ListStudents app.Query[ListStudentsQuery, ListStudentsResponse]
	GradeSummary app.Query[GradeSummaryQuery, GradeSummaryResponse]
	WriteReport  app.Command[WriteReportCommand]
}
