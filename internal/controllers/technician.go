package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"os-system/internal/services"
	"os-system/pkg/utils"
)

type TechnicianController struct {
	technicianService services.TechnicianServiceInterface
	logger            *zap.Logger
}

func NewTechnicianController(technicianService services.TechnicianServiceInterface, logger *zap.Logger) *TechnicianController {
	return &TechnicianController{technicianService: technicianService, logger: logger}
}

func (ctrl *TechnicianController) List(c echo.Context) error {
	roster, err := ctrl.technicianService.ListTechnicians(c.Request().Context())
	if err != nil {
		ctrl.logger.Error("List: falha ao carregar o roster de técnicos", zap.Error(err))
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	return utils.SuccessResponse(c, roster, "Roster de técnicos carregado", http.StatusOK)
}
