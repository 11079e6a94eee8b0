package utils

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	apperrors "os-system/pkg/errors"
)

type HTTPResponse struct {
	Status  bool        `json:"status"`
	Body    interface{} `json:"body,omitempty"`
	Message string      `json:"message"`
}

func SuccessResponse(ctx echo.Context, body interface{}, message string, code int) error {
	return ctx.JSON(code, &HTTPResponse{Status: true, Body: body, Message: message})
}

// ErrorResponse traduz a taxonomia de erros do domínio em códigos HTTP.
// Toda falha vira uma única mensagem legível; nada é engolido em silêncio.
func ErrorResponse(c echo.Context, err error, logger *zap.Logger) error {
	var httpErr *apperrors.HttpError
	if errors.As(err, &httpErr) {
		if httpErr.Err != nil {
			logger.Error("HTTP Error",
				zap.Int("code", httpErr.Code),
				zap.String("message", httpErr.Message),
				zap.Error(httpErr.Err),
			)
		}
		resp := &HTTPResponse{Status: false, Message: httpErr.Message}
		if httpErr.Details != nil {
			resp.Body = httpErr.Details
		}
		return c.JSON(httpErr.Code, resp)
	}

	var invalidInput *apperrors.InvalidInputError
	if errors.As(err, &invalidInput) {
		return c.JSON(http.StatusBadRequest, &HTTPResponse{Status: false, Message: invalidInput.Message})
	}

	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		var msgs []string
		for _, e := range validationErrors {
			msgs = append(msgs, fmt.Sprintf("O campo '%s' não passou na regra '%s'", e.Field(), e.Tag()))
		}
		return c.JSON(http.StatusBadRequest, &HTTPResponse{Status: false, Message: "Erro de validação: " + strings.Join(msgs, "; ")})
	}

	var historyErr *apperrors.HistoryWriteError
	if errors.As(err, &historyErr) {
		logger.Error("Falha ao gravar histórico após mudança de status", zap.Error(historyErr.Err))
		return c.JSON(http.StatusBadGateway, &HTTPResponse{Status: false, Message: historyErr.Error()})
	}

	switch {
	case errors.Is(err, apperrors.ErrUnauthorized),
		errors.Is(err, apperrors.ErrInvalidCredentials),
		errors.Is(err, apperrors.ErrEmptyAuthHeader),
		errors.Is(err, apperrors.ErrInvalidAuthHeader),
		errors.Is(err, apperrors.ErrInvalidToken),
		errors.Is(err, apperrors.ErrTokenExpired),
		errors.Is(err, apperrors.ErrTokenIsNotAccess),
		errors.Is(err, apperrors.ErrTokenIsNotRefresh):
		return c.JSON(http.StatusUnauthorized, &HTTPResponse{Status: false, Message: err.Error()})
	case errors.Is(err, apperrors.ErrForbidden):
		return c.JSON(http.StatusForbidden, &HTTPResponse{Status: false, Message: err.Error()})
	case errors.Is(err, apperrors.ErrNotFound):
		return c.JSON(http.StatusNotFound, &HTTPResponse{Status: false, Message: err.Error()})
	case errors.Is(err, apperrors.ErrAmbiguous):
		return c.JSON(http.StatusConflict, &HTTPResponse{Status: false, Message: err.Error()})
	}

	logger.Error("Erro inesperado", zap.Error(err))
	return c.JSON(http.StatusInternalServerError, &HTTPResponse{Status: false, Message: "Erro interno do servidor"})
}
