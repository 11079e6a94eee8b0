package routes

import (
	"github.com/labstack/echo/v4"

	"os-system/internal/controllers"
	"os-system/pkg/middleware"
)

func registerServiceOrderRoutes(api *echo.Group, ctrl *controllers.ServiceOrderController, authMW *middleware.AuthMiddleware) {
	orders := api.Group("/service-orders", authMW.Auth)

	orders.GET("", ctrl.List)
	orders.POST("", ctrl.Create)
	orders.PATCH("/:id/status", ctrl.UpdateStatus)
	orders.PATCH("/:id/assign", ctrl.AssignTechnician)
	orders.POST("/:id/notes", ctrl.AddNote)
	orders.GET("/:id/history", ctrl.History)
}
