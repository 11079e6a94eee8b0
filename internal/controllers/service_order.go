package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"os-system/internal/dto"
	"os-system/internal/services"
	apperrors "os-system/pkg/errors"
	"os-system/pkg/utils"
)

type ServiceOrderController struct {
	orderService   services.ServiceOrderServiceInterface
	historyService services.OrderHistoryServiceInterface
	logger         *zap.Logger
}

func NewServiceOrderController(
	orderService services.ServiceOrderServiceInterface,
	historyService services.OrderHistoryServiceInterface,
	logger *zap.Logger,
) *ServiceOrderController {
	return &ServiceOrderController{
		orderService:   orderService,
		historyService: historyService,
		logger:         logger,
	}
}

func (ctrl *ServiceOrderController) errorResponse(c echo.Context, err error) error {
	return utils.ErrorResponse(c, err, ctrl.logger)
}

// List recarrega a coleção da sessão a partir do banco e a devolve.
func (ctrl *ServiceOrderController) List(c echo.Context) error {
	orders, _, err := ctrl.orderService.LoadOrders(c.Request().Context())
	if err != nil {
		ctrl.logger.Error("List: falha ao carregar OS", zap.Error(err))
		return ctrl.errorResponse(c, err)
	}
	return utils.SuccessResponse(c, orders, "Lista de OS carregada", http.StatusOK)
}

func (ctrl *ServiceOrderController) Create(c echo.Context) error {
	var payload dto.CreateServiceOrderDTO
	if err := c.Bind(&payload); err != nil {
		return ctrl.errorResponse(c, apperrors.NewInvalidInputError("Formato de dados inválido para criar OS"))
	}
	if err := c.Validate(&payload); err != nil {
		return ctrl.errorResponse(c, err)
	}

	order, err := ctrl.orderService.CreateOrder(c.Request().Context(), payload)
	if err != nil {
		return ctrl.errorResponse(c, err)
	}
	return utils.SuccessResponse(c, order, "OS criada com sucesso", http.StatusCreated)
}

func (ctrl *ServiceOrderController) UpdateStatus(c echo.Context) error {
	var payload dto.UpdateStatusDTO
	if err := c.Bind(&payload); err != nil {
		return ctrl.errorResponse(c, apperrors.NewInvalidInputError("Formato de dados inválido para mudança de status"))
	}
	if err := c.Validate(&payload); err != nil {
		return ctrl.errorResponse(c, err)
	}

	id := c.Param("id")
	if err := ctrl.orderService.TransitionStatus(c.Request().Context(), id, payload.Status, payload.Notes); err != nil {
		return ctrl.errorResponse(c, err)
	}
	return utils.SuccessResponse(c, nil, "Status atualizado com sucesso", http.StatusOK)
}

func (ctrl *ServiceOrderController) AssignTechnician(c echo.Context) error {
	var payload dto.AssignTechnicianDTO
	if err := c.Bind(&payload); err != nil {
		return ctrl.errorResponse(c, apperrors.NewInvalidInputError("Formato de dados inválido para atribuição"))
	}
	if err := c.Validate(&payload); err != nil {
		return ctrl.errorResponse(c, err)
	}

	id := c.Param("id")
	if err := ctrl.orderService.AssignTechnician(c.Request().Context(), id, payload.TechnicianName); err != nil {
		return ctrl.errorResponse(c, err)
	}
	return utils.SuccessResponse(c, nil, "Técnico atribuído com sucesso", http.StatusOK)
}

func (ctrl *ServiceOrderController) AddNote(c echo.Context) error {
	var payload dto.AddNoteDTO
	if err := c.Bind(&payload); err != nil {
		return ctrl.errorResponse(c, apperrors.NewInvalidInputError("Formato de dados inválido para nota"))
	}
	if err := c.Validate(&payload); err != nil {
		return ctrl.errorResponse(c, err)
	}

	id := c.Param("id")
	if err := ctrl.orderService.AddNote(c.Request().Context(), id, payload.Notes); err != nil {
		return ctrl.errorResponse(c, err)
	}
	return utils.SuccessResponse(c, nil, "Nota registrada com sucesso", http.StatusCreated)
}

func (ctrl *ServiceOrderController) History(c echo.Context) error {
	id := c.Param("id")
	timeline, err := ctrl.historyService.ListHistory(c.Request().Context(), id)
	if err != nil {
		return ctrl.errorResponse(c, err)
	}
	return utils.SuccessResponse(c, timeline, "Histórico da OS carregado", http.StatusOK)
}
