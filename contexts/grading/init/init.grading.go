package init

import (
	"context"
	"fmt"

	"github.com/go-arrower/records"
	"github.com/go-arrower/records/app"
	"github.com/go-arrower/records/arepo"
	"github.com/go-arrower/records/contexts/grading/internal/application"
	"github.com/go-arrower/records/contexts/grading/internal/domain"
	"github.com/go-arrower/records/contexts/grading/internal/interfaces/web"
)

const contextName = "grading"

// GradingContext grades students by the scores imported from score files.
type GradingContext struct {
	app application.App
}

func NewGradingContext(ctx context.Context, di *records.Container) (*GradingContext, error) {
	if err := di.EnsureAllDependenciesPresent(); err != nil {
		return nil, fmt.Errorf("could not initialise %s context: %w", contextName, err)
	}

	students, err := records.NewRepository[domain.Student, domain.StudentID](
		ctx, di, contextName+".students", arepo.WithStructValidation(di.Validate),
	)
	if err != nil {
		return nil, fmt.Errorf("could not initialise %s context: %w", contextName, err)
	}

	gc := &GradingContext{
		app: application.App{
			ImportScores: app.NewInstrumentedRequest(di.TraceProvider, di.MeterProvider, di.Logger,
				application.NewImportScoresRequestHandler(students),
			),
			ListStudents: app.NewInstrumentedQuery(di.TraceProvider, di.MeterProvider, di.Logger,
				application.NewListStudentsQueryHandler(students),
			),
			GradeSummary: app.NewInstrumentedQuery(di.TraceProvider, di.MeterProvider, di.Logger,
				application.NewGradeSummaryQueryHandler(students, domain.NewGradeIndex()),
			),
			WriteReport: app.NewInstrumentedCommand(di.TraceProvider, di.MeterProvider, di.Logger,
				application.NewWriteReportCommandHandler(students),
			),
		},
	}

	sc := web.NewStudentsController(gc.app)

	routes := di.WebRouter.Group("/" + contextName)
	routes.GET("/students", sc.ListStudents())
	routes.GET("/summary", sc.Summary())

	return gc, nil
}
