package web

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/go-arrower/records/app"
	"github.com/go-arrower/records/contexts/inventory/internal/application"
)

func NewItemsController(app application.App) *ItemsController {
	return &ItemsController{app: app}
}

type ItemsController struct {
	app application.App
}

func (ic *ItemsController) ListItems() func(c echo.Context) error {
	return func(c echo.Context) error {
		res, err := ic.app.ListItems.H(c.Request().Context(), application.ListItemsQuery{})
		if err != nil {
			return fmt.Errorf("%w", err)
		}

		return c.JSON(http.StatusOK, res)
	}
}

func (ic *ItemsController) AddItem() func(c echo.Context) error {
	return func(c echo.Context) error {
		var req application.AddItemRequest

		if err := c.Bind(&req); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid item")
		}

		res, err := ic.app.AddItem.H(c.Request().Context(), req)
		if errors.Is(err, app.ErrValidation) {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}

		if err != nil {
			return fmt.Errorf("%w", err)
		}

		return c.JSON(http.StatusCreated, res)
	}
}
