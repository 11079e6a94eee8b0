package services

import (
	"bytes"
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"os-system/internal/dto"
	"os-system/internal/repositories"
	"os-system/pkg/constants"
	apperrors "os-system/pkg/errors"
	"os-system/pkg/utils"
)

type ReportServiceInterface interface {
	StatusSummary(ctx context.Context) ([]dto.StatusSummaryDTO, error)
	ExportOrders(ctx context.Context) (*bytes.Buffer, error)
}

type ReportService struct {
	orderRepo  repositories.ServiceOrderRepositoryInterface
	clientRepo repositories.ClientRepositoryInterface
	userRepo   repositories.UserRepositoryInterface
	logger     *zap.Logger
}

func NewReportService(
	orderRepo repositories.ServiceOrderRepositoryInterface,
	clientRepo repositories.ClientRepositoryInterface,
	userRepo repositories.UserRepositoryInterface,
	logger *zap.Logger,
) ReportServiceInterface {
	return &ReportService{
		orderRepo:  orderRepo,
		clientRepo: clientRepo,
		userRepo:   userRepo,
		logger:     logger,
	}
}

// StatusSummary agrega as OS visíveis ao ator por status, já traduzido para o
// vocabulário da interface. Status sem nenhuma OS aparecem com contagem zero.
func (s *ReportService) StatusSummary(ctx context.Context) ([]dto.StatusSummaryDTO, error) {
	ident, err := utils.IdentityFromCtx(ctx)
	if err != nil {
		return nil, err
	}

	rows, err := s.orderRepo.CountByStatus(ctx, *ident)
	if err != nil {
		s.logger.Error("falha ao agregar OS por status", zap.Error(err))
		return nil, err
	}

	counts := make(map[string]int64, len(rows))
	for _, row := range rows {
		counts[row.Status] = row.Count
	}

	summary := make([]dto.StatusSummaryDTO, 0, len(constants.AllStatusCodes()))
	for _, code := range constants.AllStatusCodes() {
		label, _ := constants.StatusLabel(code)
		summary = append(summary, dto.StatusSummaryDTO{Status: label, Count: counts[code]})
	}
	return summary, nil
}

// ExportOrders gera uma planilha XLSX com as OS visíveis ao ator. Somente
// administradores podem exportar.
func (s *ReportService) ExportOrders(ctx context.Context) (*bytes.Buffer, error) {
	ident, err := utils.IdentityFromCtx(ctx)
	if err != nil {
		return nil, err
	}
	if ident.Role != constants.RoleAdmin {
		return nil, apperrors.ErrForbidden
	}

	orders, err := s.orderRepo.ListOrders(ctx, *ident)
	if err != nil {
		s.logger.Error("falha ao buscar OS para exportação", zap.Error(err))
		return nil, err
	}

	clientIDs := make([]string, 0, len(orders))
	techIDs := make([]string, 0)
	seenClients := make(map[string]struct{})
	seenTechs := make(map[string]struct{})
	for _, order := range orders {
		if _, ok := seenClients[order.ClientID]; !ok && order.ClientID != "" {
			seenClients[order.ClientID] = struct{}{}
			clientIDs = append(clientIDs, order.ClientID)
		}
		if order.AssignedTechnicianID.Valid {
			id := order.AssignedTechnicianID.String
			if _, ok := seenTechs[id]; !ok {
				seenTechs[id] = struct{}{}
				techIDs = append(techIDs, id)
			}
		}
	}

	clientNames, err := s.clientRepo.ListNamesByIDs(ctx, clientIDs)
	if err != nil {
		return nil, err
	}
	techNames, err := s.userRepo.ListTechnicianNamesByIDs(ctx, techIDs)
	if err != nil {
		return nil, err
	}

	file := excelize.NewFile()
	defer file.Close()

	const sheet = "Ordens de Serviço"
	file.SetSheetName("Sheet1", sheet)

	headers := []string{"Número", "Cliente", "Descrição", "Status", "Técnico", "Data de Abertura"}
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := file.SetCellValue(sheet, cell, header); err != nil {
			return nil, fmt.Errorf("erro ao montar o cabeçalho da planilha: %w", err)
		}
	}

	for i, order := range orders {
		row := mapOrderToDTO(order, clientNames, techNames)
		values := []interface{}{
			row.OrderNumber,
			row.ClientName,
			row.Description,
			row.Status,
			row.AssignedTo,
			row.IssueDate,
		}
		for j, value := range values {
			cell, _ := excelize.CoordinatesToCellName(j+1, i+2)
			if err := file.SetCellValue(sheet, cell, value); err != nil {
				return nil, fmt.Errorf("erro ao preencher a planilha: %w", err)
			}
		}
	}

	buf, err := file.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("erro ao serializar a planilha: %w", err)
	}

	s.logger.Info("exportação de OS gerada",
		zap.String("userId", ident.ID), zap.Int("orders", len(orders)))
	return buf, nil
}
