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

type AuthController struct {
	authService  services.AuthServiceInterface
	orderService services.ServiceOrderServiceInterface
	logger       *zap.Logger
}

func NewAuthController(
	authService services.AuthServiceInterface,
	orderService services.ServiceOrderServiceInterface,
	logger *zap.Logger,
) *AuthController {
	return &AuthController{
		authService:  authService,
		orderService: orderService,
		logger:       logger,
	}
}

func (ctrl *AuthController) errorResponse(c echo.Context, err error) error {
	return utils.ErrorResponse(c, err, ctrl.logger)
}

func (ctrl *AuthController) Signup(c echo.Context) error {
	var payload dto.SignupDTO
	if err := c.Bind(&payload); err != nil {
		ctrl.logger.Error("Signup: erro ao ler o corpo da requisição", zap.Error(err))
		return ctrl.errorResponse(c, apperrors.NewInvalidInputError("Formato de dados inválido para cadastro"))
	}
	if err := c.Validate(&payload); err != nil {
		return ctrl.errorResponse(c, err)
	}

	tokens, err := ctrl.authService.Signup(c.Request().Context(), payload)
	if err != nil {
		ctrl.logger.Error("Signup: falha no cadastro", zap.String("email", payload.Email), zap.Error(err))
		return ctrl.errorResponse(c, err)
	}
	return utils.SuccessResponse(c, tokens, "Cadastro realizado com sucesso", http.StatusCreated)
}

func (ctrl *AuthController) Login(c echo.Context) error {
	var payload dto.LoginDTO
	if err := c.Bind(&payload); err != nil {
		ctrl.logger.Error("Login: erro ao ler o corpo da requisição", zap.Error(err))
		return ctrl.errorResponse(c, apperrors.NewInvalidInputError("Formato de dados inválido para login"))
	}
	if err := c.Validate(&payload); err != nil {
		return ctrl.errorResponse(c, err)
	}

	tokens, err := ctrl.authService.Login(c.Request().Context(), payload)
	if err != nil {
		ctrl.logger.Warn("Login: falha na autenticação", zap.String("email", payload.Email), zap.Error(err))
		return ctrl.errorResponse(c, err)
	}
	return utils.SuccessResponse(c, tokens, "Autenticação realizada com sucesso", http.StatusOK)
}

func (ctrl *AuthController) RefreshToken(c echo.Context) error {
	var payload dto.RefreshTokenDTO
	if err := c.Bind(&payload); err != nil {
		return ctrl.errorResponse(c, apperrors.NewInvalidInputError("Formato de dados inválido"))
	}
	if err := c.Validate(&payload); err != nil {
		return ctrl.errorResponse(c, err)
	}

	tokens, err := ctrl.authService.RefreshToken(c.Request().Context(), payload.RefreshToken)
	if err != nil {
		return ctrl.errorResponse(c, err)
	}
	return utils.SuccessResponse(c, tokens, "Tokens renovados com sucesso", http.StatusOK)
}

// Logout descarta a coleção de OS em cache da sessão. Os tokens são stateless;
// o cliente simplesmente para de usá-los.
func (ctrl *AuthController) Logout(c echo.Context) error {
	ident, err := utils.IdentityFromCtx(c.Request().Context())
	if err != nil {
		return ctrl.errorResponse(c, err)
	}

	ctrl.orderService.InvalidateSession(ident.ID)
	return utils.SuccessResponse(c, nil, "Você saiu do sistema.", http.StatusOK)
}

func (ctrl *AuthController) Profile(c echo.Context) error {
	profile, err := ctrl.authService.Profile(c.Request().Context())
	if err != nil {
		return ctrl.errorResponse(c, err)
	}
	return utils.SuccessResponse(c, profile, "Perfil carregado", http.StatusOK)
}
