package server

import (
	"github.com/procurewatch/backend/internal/server/routes"

	"github.com/labstack/echo/v4"
)

func RegisterRoutes(e *echo.Echo) {
	// Health check route
	e.GET("/health", func(c echo.Context) error {
		return c.String(200, "OK")
	})

	apiRoutes := e.Group("/api")

	// Dashboard routes
	apiRoutes.GET("/overview", routes.GetOverviewHandler)

	// Supplier routes
	apiRoutes.GET("/suppliers", routes.SearchSuppliersHandler)
	apiRoutes.GET("/suppliers/:name/contracts", routes.GetSupplierContractsHandler)
	apiRoutes.POST("/suppliers/analysis", routes.CreateSupplierAnalysisHandler)

	// Buyer routes
	apiRoutes.GET("/buyers/:name/contracts", routes.GetBuyerContractsHandler)

	// Citizen report routes
	apiRoutes.POST("/reports", routes.CreateReportHandler)
}
