package routes

import (
	"net/http"

	"github.com/procurewatch/backend/internal/server/middleware"
	"github.com/procurewatch/backend/pkg/dashboard"
	"github.com/procurewatch/backend/pkg/logger"

	"github.com/labstack/echo/v4"
)

func SearchSuppliersHandler(c echo.Context) error {
	type searchSuppliersParams struct {
		Query string `query:"q" validate:"required"`
	}

	params := new(searchSuppliersParams)
	if err := c.Bind(params); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request params"})
	}
	if err := c.Validate(params); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Missing search term"})
	}

	ctx := c.Request().Context()
	dashboards := c.(*middleware.AppContext).App.Dashboards

	// A failed search degrades to an empty result list so the view stays
	// usable while the rest of the dashboard keeps working.
	results, err := dashboards.SearchSuppliers(ctx, params.Query)
	if err != nil {
		logger.Error("Supplier search failed", "term", params.Query, "err", err)
		return c.JSON(http.StatusOK, []dashboard.SupplierResult{})
	}

	return c.JSON(http.StatusOK, results)
}
