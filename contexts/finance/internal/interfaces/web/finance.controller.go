package web

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/go-arrower/records/app"
	"github.com/go-arrower/records/arepo"
	"github.com/go-arrower/records/contexts/finance/internal/application"
	"github.com/go-arrower/records/contexts/finance/internal/domain"
)

func NewFinanceController(app application.App) *FinanceController {
	return &FinanceController{app: app}
}

type FinanceController struct {
	app application.App
}

func (fc *FinanceController) GetAccount() func(c echo.Context) error {
	return func(c echo.Context) error {
		res, err := fc.app.GetAccount.H(c.Request().Context(), application.GetAccountQuery{Number: c.Param("number")})
		if errors.Is(err, arepo.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "account not found")
		}

		if err != nil {
			return fmt.Errorf("%w", err)
		}

		return c.JSON(http.StatusOK, res)
	}
}

func (fc *FinanceController) ListTransactions() func(c echo.Context) error {
	return func(c echo.Context) error {
		res, err := fc.app.ListTransactions.H(c.Request().Context(), application.ListTransactionsQuery{})
		if err != nil {
			return fmt.Errorf("%w", err)
		}

		return c.JSON(http.StatusOK, res)
	}
}

// ProcessTransaction answers a rejected transaction with 422 Unprocessable Entity.
func (fc *FinanceController) ProcessTransaction() func(c echo.Context) error {
	return func(c echo.Context) error {
		var req application.ProcessTransactionRequest

		if err := c.Bind(&req); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid transaction")
		}

		res, err := fc.app.ProcessTransaction.H(c.Request().Context(), req)

		switch {
		case errors.Is(err, app.ErrValidation), errors.Is(err, domain.ErrUnknownProcessor):
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		case errors.Is(err, arepo.ErrNotFound):
			return echo.NewHTTPError(http.StatusNotFound, "account not found")
		case errors.Is(err, domain.ErrInsufficientFunds):
			return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
		case err != nil:
			return fmt.Errorf("%w", err)
		}

		return c.JSON(http.StatusCreated, res)
	}
}

func (fc *FinanceController) Spending() func(c echo.Context) error {
	return func(c echo.Context) error {
		res, err := fc.app.SpendingByCategory.H(c.Request().Context(), application.SpendingByCategoryQuery{})
		if err != nil {
			return fmt.Errorf("%w", err)
		}

		return c.JSON(http.StatusOK, res)
	}
}
