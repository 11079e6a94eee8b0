package routes

import (
	"github.com/labstack/echo/v4"

	"os-system/internal/controllers"
	"os-system/pkg/middleware"
)

func registerTechnicianRoutes(api *echo.Group, ctrl *controllers.TechnicianController, authMW *middleware.AuthMiddleware) {
	technicians := api.Group("/technicians", authMW.Auth)

	technicians.GET("", ctrl.List)
}
