package routes

import (
	"github.com/labstack/echo/v4"

	"os-system/internal/controllers"
	"os-system/pkg/middleware"
)

func registerReportRoutes(api *echo.Group, ctrl *controllers.ReportController, authMW *middleware.AuthMiddleware) {
	reports := api.Group("/reports", authMW.Auth)

	reports.GET("/status-summary", ctrl.StatusSummary)
	reports.GET("/orders/export", ctrl.ExportOrders)
}
