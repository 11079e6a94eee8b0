package routes

import (
	"github.com/labstack/echo/v4"

	"os-system/internal/controllers"
	"os-system/pkg/middleware"
)

func registerAuthRoutes(api *echo.Group, ctrl *controllers.AuthController, authMW *middleware.AuthMiddleware) {
	auth := api.Group("/auth")

	auth.POST("/signup", ctrl.Signup)
	auth.POST("/login", ctrl.Login)
	auth.POST("/refresh-token", ctrl.RefreshToken)

	auth.POST("/logout", ctrl.Logout, authMW.Auth)
	auth.GET("/profile", ctrl.Profile, authMW.Auth)
}
