package web

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/go-arrower/records/contexts/grading/internal/application"
)

func NewStudentsController(app application.App) *StudentsController {
	return &StudentsController{app: app}
}

type StudentsController struct {
	app application.App
}

func (sc *StudentsController) ListStudents() func(c echo.Context) error {
	return func(c echo.Context) error {
		res, err := sc.app.ListStudents.H(c.Request().Context(), application.ListStudentsQuery{})
		if err != nil {
			return fmt.Errorf("%w", err)
		}

		return c.JSON(http.StatusOK, res)
	}
}

func (sc *StudentsController) Summary() func(c echo.Context) error {
	return func(c echo.Context) error {
		res, err := sc.app.GradeSummary.H(c.Request().Context(), application.GradeSummaryQuery{})
		if err != nil {
			return fmt.Errorf("%w", err)
		}

		return c.JSON(http.StatusOK, res)
	}
}
