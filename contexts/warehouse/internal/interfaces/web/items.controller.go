package web

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/go-arrower/records/contexts/warehouse/internal/application"
	"github.com/go-arrower/records/contexts/warehouse/internal/domain"
)

func NewItemsController(app application.App) *ItemsController {
	return &ItemsController{app: app}
}

type ItemsController struct {
	app application.App
}

// ListItems responds with all items of the kind given in the path.
func (ic *ItemsController) ListItems() func(c echo.Context) error {
	return func(c echo.Context) error {
		ctx := c.Request().Context()

		var (
			res any
			err error
		)

		switch domain.Kind(c.Param("kind")) {
		case domain.Electronics:
			res, err = ic.app.Electronics.ListItems.H(ctx, application.ListItemsQuery{})
		case domain.Groceries:
			res, err = ic.app.Groceries.ListItems.H(ctx, application.ListItemsQuery{})
		default:
			return echo.NewHTTPError(http.StatusNotFound, "unknown kind of item")
		}

		if err != nil {
			return fmt.Errorf("%w", err)
		}

		return c.JSON(http.StatusOK, res)
	}
}
