package init

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/go-arrower/records/cmd"
	"github.com/go-arrower/records/contexts/grading/internal/application"
)

const defaultReportFile = "report.txt"

// Command returns the `grading` command. It imports a score file,
// prints a summary per grade and writes the report.
func (gc *GradingContext) Command() *cobra.Command {
	return &cobra.Command{
		Use:   contextName + " <scores-file> [report-file]",
		Short: "Grade the students of a score file and write a report",
		Long: "Each line of the score file is one student in the format `id, full name, score`.\n" +
			"The report is written to " + defaultReportFile + ", if no report file is given.",
		Args: cobra.RangeArgs(1, 2), //nolint:mnd // scores and report file
		RunE: func(c *cobra.Command, args []string) error {
			ctx := c.Context()
			w := c.OutOrStdout()

			reportFile := defaultReportFile
			if len(args) > 1 {
				reportFile = args[1]
			}

			res, err := gc.app.ImportScores.H(ctx, application.ImportScoresRequest{Path: args[0]})
			if err != nil {
				return err //nolint:wrapcheck // message is already meant for the user
			}

			summary, err := gc.app.GradeSummary.H(ctx, application.GradeSummaryQuery{})
			if err != nil {
				return err //nolint:wrapcheck // message is already meant for the user
			}

			cmd.Heading(w, fmt.Sprintf("Grades of %d students", res.Imported))

			for _, group := range summary.Grades {
				cmd.Item(w, fmt.Sprintf("%s: %d", group.Grade, len(group.Students)))
			}

			_, _ = fmt.Fprintln(w)

			if err = gc.app.WriteReport.H(ctx, application.WriteReportCommand{Path: reportFile}); err != nil {
				return err //nolint:wrapcheck // message is already meant for the user
			}

			cmd.Success(w, "report written to "+reportFile)

			return nil
		},
	}
}
