package services

import (
	"context"

	"go.uber.org/zap"

	"os-system/internal/dto"
	"os-system/internal/repositories"
	"os-system/pkg/constants"
	"os-system/pkg/utils"
)

type OrderHistoryServiceInterface interface {
	ListHistory(ctx context.Context, serviceOrderID string) ([]dto.HistoryEntryDTO, error)
}

type OrderHistoryService struct {
	historyRepo repositories.OrderHistoryRepositoryInterface
	orderRepo   repositories.ServiceOrderRepositoryInterface
	logger      *zap.Logger
}

func NewOrderHistoryService(
	historyRepo repositories.OrderHistoryRepositoryInterface,
	orderRepo repositories.ServiceOrderRepositoryInterface,
	logger *zap.Logger,
) OrderHistoryServiceInterface {
	return &OrderHistoryService{historyRepo: historyRepo, orderRepo: orderRepo, logger: logger}
}

// ListHistory devolve a linha do tempo da OS em ordem cronológica, com os
// códigos de status traduzidos para o vocabulário da interface.
func (s *OrderHistoryService) ListHistory(ctx context.Context, serviceOrderID string) ([]dto.HistoryEntryDTO, error) {
	if _, err := utils.IdentityFromCtx(ctx); err != nil {
		return nil, err
	}

	// Confirma que a OS existe antes de listar, para distinguir
	// "OS inexistente" de "OS sem histórico".
	if _, err := s.orderRepo.FindOrderStatus(ctx, serviceOrderID); err != nil {
		return nil, err
	}

	entries, err := s.historyRepo.ListByOrderID(ctx, serviceOrderID)
	if err != nil {
		s.logger.Error("falha ao buscar histórico da OS", zap.Error(err), zap.String("orderId", serviceOrderID))
		return nil, err
	}

	timeline := make([]dto.HistoryEntryDTO, 0, len(entries))
	for _, entry := range entries {
		fromLabel, ok := constants.StatusLabel(entry.StatusFrom)
		if !ok {
			fromLabel = entry.StatusFrom
		}
		toLabel, ok := constants.StatusLabel(entry.StatusTo)
		if !ok {
			toLabel = entry.StatusTo
		}
		timeline = append(timeline, dto.HistoryEntryDTO{
			ID:         entry.ID,
			StatusFrom: fromLabel,
			StatusTo:   toLabel,
			ChangedBy:  entry.ChangedBy,
			Notes:      entry.Notes.String,
			CreatedAt:  entry.CreatedAt.Local().Format(constants.DisplayTimeFormat),
		})
	}
	return timeline, nil
}
