package routes

import (
	"errors"
	"net/http"

	"github.com/procurewatch/backend/internal/server/middleware"
	"github.com/procurewatch/backend/pkg/graph"
	"github.com/procurewatch/backend/pkg/logger"

	"github.com/labstack/echo/v4"
)

func GetBuyerContractsHandler(c echo.Context) error {
	type getBuyerContractsParams struct {
		Name string `param:"name" validate:"required"`
	}

	params := new(getBuyerContractsParams)
	if err := c.Bind(params); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request params"})
	}
	if err := c.Validate(params); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request params"})
	}

	ctx := c.Request().Context()
	dashboards := c.(*middleware.AppContext).App.Dashboards

	contracts, err := dashboards.BuyerContracts(ctx, params.Name)
	if err != nil {
		logger.Error("Buyer drill-down failed", "buyer", params.Name, "err", err)
		if errors.Is(err, graph.ErrConnection) || errors.Is(err, graph.ErrQuery) {
			return c.JSON(http.StatusBadGateway, map[string]string{"error": "Graph store unavailable"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
	}

	return c.JSON(http.StatusOK, contracts)
}
