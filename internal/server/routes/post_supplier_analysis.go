package routes

import (
	"net/http"

	"github.com/procurewatch/backend/internal/server/middleware"
	"github.com/procurewatch/backend/pkg/analytics"
	"github.com/procurewatch/backend/pkg/logger"

	"github.com/labstack/echo/v4"
)

func CreateSupplierAnalysisHandler(c echo.Context) error {
	type createAnalysisParams struct {
		Name             string  `json:"name" validate:"required"`
		TotalAwards      int64   `json:"totalAwards" validate:"omitempty,min=0"`
		UniqueBuyers     int64   `json:"uniqueBuyers" validate:"omitempty,min=0"`
		QuickAwardRatio  float64 `json:"quickAwardRatio" validate:"omitempty,min=0,max=100"`
		AvgContractValue float64 `json:"avgContractValue" validate:"omitempty,min=0"`
	}

	type createAnalysisResponse struct {
		Analysis string `json:"analysis"`
	}

	params := new(createAnalysisParams)
	if err := c.Bind(params); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
	}
	if err := c.Validate(params); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
	}

	ctx := c.Request().Context()
	app := c.(*middleware.AppContext).App

	// The client posts the profile it already holds from the search view,
	// so a graph outage never blocks the narrative.
	profile := analytics.SupplierProfile{
		Name:             params.Name,
		TotalAwards:      params.TotalAwards,
		UniqueBuyers:     params.UniqueBuyers,
		QuickAwardRatio:  params.QuickAwardRatio,
		AvgContractValue: params.AvgContractValue,
	}

	analysis, err := app.Narrative.Analyze(ctx, profile)
	if err != nil {
		logger.Error("Supplier analysis failed", "supplier", params.Name, "err", err)
		return c.JSON(http.StatusBadGateway, map[string]string{"error": "Analysis service unavailable"})
	}

	return c.JSON(http.StatusOK, createAnalysisResponse{Analysis: analysis})
}
