package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/aarondl/null/v8"
	"go.uber.org/zap"

	"os-system/internal/dto"
	"os-system/internal/entities"
	"os-system/internal/repositories"
	"os-system/pkg/constants"
	apperrors "os-system/pkg/errors"
	"os-system/pkg/utils"
)

type ServiceOrderServiceInterface interface {
	LoadOrders(ctx context.Context) ([]dto.ServiceOrderDTO, bool, error)
	Orders(ctx context.Context) ([]dto.ServiceOrderDTO, bool)
	CreateOrder(ctx context.Context, data dto.CreateServiceOrderDTO) (*dto.ServiceOrderDTO, error)
	TransitionStatus(ctx context.Context, id, newStatus, notes string) error
	AssignTechnician(ctx context.Context, id, technicianName string) error
	AddNote(ctx context.Context, id, notes string) error
	InvalidateSession(userID string)
}

// orderCollection - coleção de OS de uma sessão autenticada, mais os dois
// mapas de lookup (clientId -> nome, technicianId -> nome). O banco é a fonte
// da verdade; isto aqui é cache válido só durante a sessão.
type orderCollection struct {
	orders      []dto.ServiceOrderDTO
	clientNames map[string]string
	techNames   map[string]string
	loaded      bool
}

type ServiceOrderService struct {
	orderRepo   repositories.ServiceOrderRepositoryInterface
	clientRepo  repositories.ClientRepositoryInterface
	userRepo    repositories.UserRepositoryInterface
	historyRepo repositories.OrderHistoryRepositoryInterface
	logger      *zap.Logger

	mu       sync.RWMutex
	sessions map[string]*orderCollection
}

func NewServiceOrderService(
	orderRepo repositories.ServiceOrderRepositoryInterface,
	clientRepo repositories.ClientRepositoryInterface,
	userRepo repositories.UserRepositoryInterface,
	historyRepo repositories.OrderHistoryRepositoryInterface,
	logger *zap.Logger,
) ServiceOrderServiceInterface {
	return &ServiceOrderService{
		orderRepo:   orderRepo,
		clientRepo:  clientRepo,
		userRepo:    userRepo,
		historyRepo: historyRepo,
		logger:      logger,
		sessions:    make(map[string]*orderCollection),
	}
}

// LoadOrders substitui integralmente a coleção da sessão: busca as OS visíveis
// ao ator, resolve os nomes de clientes e técnicos em no máximo uma chamada em
// lote por tipo, e mapeia tudo para a forma de exibição. Sem sessão, devolve
// coleção vazia e "não carregado" sem erro. Qualquer erro do banco limpa a
// coleção; nunca fica um estado parcialmente mesclado.
func (s *ServiceOrderService) LoadOrders(ctx context.Context) ([]dto.ServiceOrderDTO, bool, error) {
	ident, err := utils.IdentityFromCtx(ctx)
	if err != nil {
		return []dto.ServiceOrderDTO{}, false, nil
	}

	rows, err := s.orderRepo.ListOrders(ctx, *ident)
	if err != nil {
		s.logger.Error("falha ao carregar a lista de OS", zap.Error(err))
		s.InvalidateSession(ident.ID)
		return nil, false, err
	}

	clientIDs := make([]string, 0)
	techIDs := make([]string, 0)
	seenClients := make(map[string]struct{})
	seenTechs := make(map[string]struct{})
	for _, row := range rows {
		if _, ok := seenClients[row.ClientID]; !ok && row.ClientID != "" {
			seenClients[row.ClientID] = struct{}{}
			clientIDs = append(clientIDs, row.ClientID)
		}
		if row.AssignedTechnicianID.Valid {
			id := row.AssignedTechnicianID.String
			if _, ok := seenTechs[id]; !ok {
				seenTechs[id] = struct{}{}
				techIDs = append(techIDs, id)
			}
		}
	}

	clientNames, err := s.clientRepo.ListNamesByIDs(ctx, clientIDs)
	if err != nil {
		s.logger.Error("falha ao resolver nomes de clientes", zap.Error(err))
		s.InvalidateSession(ident.ID)
		return nil, false, err
	}

	techNames, err := s.userRepo.ListTechnicianNamesByIDs(ctx, techIDs)
	if err != nil {
		s.logger.Error("falha ao resolver nomes de técnicos", zap.Error(err))
		s.InvalidateSession(ident.ID)
		return nil, false, err
	}

	coll := &orderCollection{
		orders:      make([]dto.ServiceOrderDTO, 0, len(rows)),
		clientNames: clientNames,
		techNames:   techNames,
		loaded:      true,
	}
	for _, row := range rows {
		coll.orders = append(coll.orders, mapOrderToDTO(row, clientNames, techNames))
	}

	// O snapshot sai ainda sob o lock: depois de publicada em sessions, a
	// coleção pode ser corrigida por uma mutação concorrente da mesma sessão.
	s.mu.Lock()
	s.sessions[ident.ID] = coll
	out := coll.snapshot()
	s.mu.Unlock()

	return out, true, nil
}

// Orders devolve uma visão somente leitura da coleção corrente da sessão.
func (s *ServiceOrderService) Orders(ctx context.Context) ([]dto.ServiceOrderDTO, bool) {
	ident, err := utils.IdentityFromCtx(ctx)
	if err != nil {
		return []dto.ServiceOrderDTO{}, false
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	coll, ok := s.sessions[ident.ID]
	if !ok || !coll.loaded {
		return []dto.ServiceOrderDTO{}, false
	}
	return coll.snapshot(), true
}

// CreateOrder resolve-ou-cria o cliente escopado por (nome, criador) e cria a
// OS com status Pendente. As duas escritas não são uma transação: uma falha
// entre elas deixa um cliente órfão, e isso fica explícito aqui em vez de
// fingir atomicidade.
func (s *ServiceOrderService) CreateOrder(ctx context.Context, data dto.CreateServiceOrderDTO) (*dto.ServiceOrderDTO, error) {
	ident, err := utils.IdentityFromCtx(ctx)
	if err != nil {
		return nil, err
	}

	clientName := strings.TrimSpace(data.ClientName)
	description := strings.TrimSpace(data.Description)
	if clientName == "" || description == "" {
		return nil, apperrors.NewInvalidInputError("Por favor, preencha todos os campos.")
	}

	client, err := s.clientRepo.FindByName(ctx, clientName, ident.ID)
	if errors.Is(err, apperrors.ErrNotFound) {
		client, err = s.clientRepo.CreateClient(ctx, clientName, ident.ID)
	}
	if err != nil {
		s.logger.Error("falha ao resolver o cliente da nova OS", zap.Error(err))
		return nil, err
	}

	order, err := s.orderRepo.CreateOrder(ctx, client.ID, description, ident.ID)
	if err != nil {
		s.logger.Error("falha ao criar a OS", zap.Error(err), zap.String("clientId", client.ID))
		return nil, err
	}

	orderDTO := mapOrderToDTO(*order, map[string]string{client.ID: clientName}, nil)

	s.mu.Lock()
	if coll, ok := s.sessions[ident.ID]; ok && coll.loaded {
		coll.clientNames[client.ID] = clientName
		coll.orders = append(coll.orders, orderDTO)
	}
	s.mu.Unlock()

	s.logger.Info("OS criada",
		zap.String("orderId", order.ID),
		zap.Int64("orderNumber", order.OrderNumber.Int64),
		zap.String("createdBy", ident.ID))
	return &orderDTO, nil
}

// TransitionStatus muda o status de uma OS aplicando a política de transições
// e grava exatamente um registro de histórico. As validações locais vêm antes
// de qualquer escrita; o status atual é relido do banco, não do cache.
func (s *ServiceOrderService) TransitionStatus(ctx context.Context, id, newStatus, notes string) error {
	ident, err := utils.IdentityFromCtx(ctx)
	if err != nil {
		return err
	}

	newCode, ok := constants.StatusCode(newStatus)
	if !ok {
		return apperrors.NewInvalidInputError("status desconhecido: %q", newStatus)
	}

	trimmedNotes := strings.TrimSpace(notes)
	if newCode == constants.StatusCompleted {
		if ident.Role != constants.RoleAdmin {
			s.logger.Warn("tentativa de concluir OS sem papel de administrador",
				zap.String("orderId", id), zap.String("userId", ident.ID), zap.String("role", ident.Role))
			return apperrors.ErrForbidden
		}
		if trimmedNotes == "" {
			return apperrors.NewInvalidInputError("Concluir a OS exige uma nota descrevendo o serviço executado.")
		}
	}

	currentCode, err := s.orderRepo.FindOrderStatus(ctx, id)
	if err != nil {
		return err
	}

	currentLabel, _ := constants.StatusLabel(currentCode)
	if constants.IsFinalStatus(currentCode) {
		return apperrors.NewInvalidInputError("a OS já está em um status final (%s) e não pode ser alterada", currentLabel)
	}
	if !constants.CanTransition(currentCode, newCode) {
		return apperrors.NewInvalidInputError("transição de %q para %q não é permitida", currentLabel, newStatus)
	}

	if err := s.orderRepo.UpdateOrderStatus(ctx, id, newCode); err != nil {
		s.logger.Error("falha ao gravar o novo status", zap.Error(err), zap.String("orderId", id))
		return err
	}

	s.patchOrder(ident.ID, id, func(order *dto.ServiceOrderDTO) {
		order.Status = newStatus
	})

	noteText := trimmedNotes
	if noteText == "" {
		noteText = fmt.Sprintf("Status alterado de %s para %s", currentLabel, newStatus)
	}
	entry := &entities.ServiceOrderHistory{
		ServiceOrderID: id,
		StatusFrom:     currentCode,
		StatusTo:       newCode,
		ChangedBy:      ident.ID,
		Notes:          null.StringFrom(noteText),
	}
	if err := s.historyRepo.InsertHistoryEntry(ctx, entry); err != nil {
		// O status já foi gravado; a falha do histórico é reportada sem rollback.
		s.logger.Error("status gravado mas o histórico falhou", zap.Error(err), zap.String("orderId", id))
		return &apperrors.HistoryWriteError{Err: err}
	}

	s.logger.Info("status da OS atualizado",
		zap.String("orderId", id),
		zap.String("de", currentCode),
		zap.String("para", newCode),
		zap.String("changedBy", ident.ID))
	return nil
}

// AssignTechnician vincula um técnico à OS pelo nome de exibição. Operação
// exclusiva de administrador; não gera registro de histórico.
func (s *ServiceOrderService) AssignTechnician(ctx context.Context, id, technicianName string) error {
	ident, err := utils.IdentityFromCtx(ctx)
	if err != nil {
		return err
	}
	if ident.Role != constants.RoleAdmin {
		return apperrors.ErrForbidden
	}

	name := strings.TrimSpace(technicianName)
	if name == "" {
		return apperrors.NewInvalidInputError("Por favor, selecione um técnico para atribuir.")
	}

	tech, err := s.userRepo.FindTechnicianByName(ctx, name)
	if err != nil {
		return err
	}

	if err := s.orderRepo.UpdateOrderAssignment(ctx, id, tech.ID); err != nil {
		s.logger.Error("falha ao gravar a atribuição", zap.Error(err), zap.String("orderId", id))
		return err
	}

	displayName := tech.Name.String
	if displayName == "" {
		displayName = name
	}

	s.mu.Lock()
	if coll, ok := s.sessions[ident.ID]; ok && coll.loaded {
		coll.techNames[tech.ID] = displayName
		for i := range coll.orders {
			if coll.orders[i].ID == id {
				coll.orders[i].AssignedTechnicianID = tech.ID
				coll.orders[i].AssignedTo = displayName
				break
			}
		}
	}
	s.mu.Unlock()

	s.logger.Info("técnico atribuído à OS",
		zap.String("orderId", id), zap.String("technicianId", tech.ID))
	return nil
}

// AddNote acrescenta um registro de histórico sem mudar o status: statusFrom e
// statusTo recebem o status corrente. A linha da OS não é tocada e a coleção
// em memória não precisa de patch; o histórico é buscado à parte pela tela.
func (s *ServiceOrderService) AddNote(ctx context.Context, id, notes string) error {
	ident, err := utils.IdentityFromCtx(ctx)
	if err != nil {
		return err
	}

	trimmed := strings.TrimSpace(notes)
	if trimmed == "" {
		return apperrors.NewInvalidInputError("A nota não pode ser vazia.")
	}

	currentCode, err := s.orderRepo.FindOrderStatus(ctx, id)
	if err != nil {
		return err
	}

	entry := &entities.ServiceOrderHistory{
		ServiceOrderID: id,
		StatusFrom:     currentCode,
		StatusTo:       currentCode,
		ChangedBy:      ident.ID,
		Notes:          null.StringFrom(trimmed),
	}
	return s.historyRepo.InsertHistoryEntry(ctx, entry)
}

// InvalidateSession descarta a coleção em cache de uma identidade (logout).
func (s *ServiceOrderService) InvalidateSession(userID string) {
	s.mu.Lock()
	delete(s.sessions, userID)
	s.mu.Unlock()
}

func (s *ServiceOrderService) patchOrder(userID, orderID string, patch func(*dto.ServiceOrderDTO)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	coll, ok := s.sessions[userID]
	if !ok || !coll.loaded {
		return
	}
	for i := range coll.orders {
		if coll.orders[i].ID == orderID {
			patch(&coll.orders[i])
			return
		}
	}
}

func (c *orderCollection) snapshot() []dto.ServiceOrderDTO {
	out := make([]dto.ServiceOrderDTO, len(c.orders))
	copy(out, c.orders)
	return out
}

// mapOrderToDTO é a projeção de leitura: traduz o status para o vocabulário da
// interface e resolve os campos de exibição pelos mapas de lookup, caindo nas
// sentinelas quando o lookup não encontra.
func mapOrderToDTO(row entities.ServiceOrder, clientNames, techNames map[string]string) dto.ServiceOrderDTO {
	statusLabel, ok := constants.StatusLabel(row.Status)
	if !ok {
		statusLabel = row.Status
	}

	clientName, ok := clientNames[row.ClientID]
	if !ok || clientName == "" {
		clientName = constants.UnknownClientName
	}

	order := dto.ServiceOrderDTO{
		ID:          row.ID,
		OrderNumber: row.OrderNumber.Int64,
		ClientID:    row.ClientID,
		ClientName:  clientName,
		Description: row.Description,
		Status:      statusLabel,
		IssueDate:   row.CreatedAt.Local().Format(constants.DisplayTimeFormat),
		CreatedBy:   row.CreatedBy,
	}

	if row.AssignedTechnicianID.Valid {
		order.AssignedTechnicianID = row.AssignedTechnicianID.String
		techName, ok := techNames[order.AssignedTechnicianID]
		if !ok || techName == "" {
			techName = constants.UnknownTechnicianName
		}
		order.AssignedTo = techName
	}

	return order
}
