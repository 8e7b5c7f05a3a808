package web

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/go-arrower/records/arepo"
	"github.com/go-arrower/records/contexts/health/internal/application"
	"github.com/go-arrower/records/contexts/health/internal/domain"
)

func NewPatientsController(app application.App) *PatientsController {
	return &PatientsController{app: app}
}

type PatientsController struct {
	app application.App
}

func (pc *PatientsController) ListPatients() func(c echo.Context) error {
	return func(c echo.Context) error {
		res, err := pc.app.ListPatients.H(c.Request().Context(), application.ListPatientsQuery{})
		if err != nil {
			return fmt.Errorf("%w", err)
		}

		return c.JSON(http.StatusOK, res)
	}
}

func (pc *PatientsController) ListPrescriptions() func(c echo.Context) error {
	return func(c echo.Context) error {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid patient id")
		}

		res, err := pc.app.PrescriptionsForPatient.H(
			c.Request().Context(),
			application.PrescriptionsForPatientQuery{PatientID: domain.PatientID(id)},
		)
		if errors.Is(err, arepo.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "patient not found")
		}

		if err != nil {
			return fmt.Errorf("%w", err)
		}

		return c.JSON(http.StatusOK, res)
	}
}
