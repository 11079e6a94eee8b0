package routes

import (
	"github.com/go-redis/redis/v8"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"os-system/internal/controllers"
	"os-system/internal/repositories"
	"os-system/internal/services"
	"os-system/pkg/config"
	"os-system/pkg/middleware"
	"os-system/pkg/service"
)

func InitRouter(e *echo.Echo, dbConn *pgxpool.Pool, redisClient *redis.Client, jwtSvc service.JWTService, logger *zap.Logger, cfg *config.Config) {
	api := e.Group("/api")
	authMW := middleware.NewAuthMiddleware(jwtSvc, logger)

	// Repositórios
	userRepo := repositories.NewUserRepository(dbConn)
	clientRepo := repositories.NewClientRepository(dbConn)
	orderRepo := repositories.NewServiceOrderRepository(dbConn)
	historyRepo := repositories.NewOrderHistoryRepository(dbConn)
	cacheRepo := repositories.NewRedisCacheRepository(redisClient)

	// Serviços
	orderService := services.NewServiceOrderService(orderRepo, clientRepo, userRepo, historyRepo, logger)
	historyService := services.NewOrderHistoryService(historyRepo, orderRepo, logger)
	authService := services.NewAuthService(userRepo, cacheRepo, jwtSvc, logger)
	technicianService := services.NewTechnicianService(userRepo, cacheRepo, cfg.Cache.TechnicianRosterTTL, logger)
	reportService := services.NewReportService(orderRepo, clientRepo, userRepo, logger)

	// Controllers
	authCtrl := controllers.NewAuthController(authService, orderService, logger)
	orderCtrl := controllers.NewServiceOrderController(orderService, historyService, logger)
	technicianCtrl := controllers.NewTechnicianController(technicianService, logger)
	reportCtrl := controllers.NewReportController(reportService, logger)

	registerAuthRoutes(api, authCtrl, authMW)
	registerServiceOrderRoutes(api, orderCtrl, authMW)
	registerTechnicianRoutes(api, technicianCtrl, authMW)
	registerReportRoutes(api, reportCtrl, authMW)
}
