package repositories

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"os-system/internal/dto"
	"os-system/internal/entities"
	"os-system/pkg/constants"
	apperrors "os-system/pkg/errors"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

const serviceOrderFields = "id, order_number, client_id, description, status, assigned_technician_id, created_by, created_at"

type ServiceOrderRepositoryInterface interface {
	ListOrders(ctx context.Context, actor dto.Identity) ([]entities.ServiceOrder, error)
	FindOrderStatus(ctx context.Context, id string) (string, error)
	CreateOrder(ctx context.Context, clientID, description, createdBy string) (*entities.ServiceOrder, error)
	UpdateOrderStatus(ctx context.Context, id, status string) error
	UpdateOrderAssignment(ctx context.Context, id, technicianID string) error
	CountByStatus(ctx context.Context, actor dto.Identity) ([]dto.StatusSummaryDTO, error)
}

type ServiceOrderRepository struct {
	storage *pgxpool.Pool
}

func NewServiceOrderRepository(storage *pgxpool.Pool) ServiceOrderRepositoryInterface {
	return &ServiceOrderRepository{storage: storage}
}

// visibilityFilter espelha no servidor a row-level security do modelo original:
// admin vê tudo, técnico vê o que lhe foi atribuído ou criou, cliente vê o que criou.
func visibilityFilter(builder sq.SelectBuilder, actor dto.Identity) sq.SelectBuilder {
	switch actor.Role {
	case constants.RoleAdmin:
		return builder
	case constants.RoleTechnician:
		return builder.Where(sq.Or{
			sq.Eq{"assigned_technician_id": actor.ID},
			sq.Eq{"created_by": actor.ID},
		})
	default:
		return builder.Where(sq.Eq{"created_by": actor.ID})
	}
}

func (r *ServiceOrderRepository) ListOrders(ctx context.Context, actor dto.Identity) ([]entities.ServiceOrder, error) {
	builder := psql.Select(serviceOrderFields).
		From("service_orders").
		OrderBy("created_at DESC")
	builder = visibilityFilter(builder, actor)

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao montar a consulta de OS: %w", err)
	}

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao buscar a lista de OS: %w", err)
	}
	defer rows.Close()

	orders := make([]entities.ServiceOrder, 0)
	for rows.Next() {
		var order entities.ServiceOrder
		if err := rows.Scan(
			&order.ID, &order.OrderNumber, &order.ClientID, &order.Description,
			&order.Status, &order.AssignedTechnicianID, &order.CreatedBy, &order.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("erro ao escanear OS na lista: %w", err)
		}
		orders = append(orders, order)
	}
	return orders, rows.Err()
}

// FindOrderStatus lê o status direto do banco. As operações de mutação usam
// esta leitura fresca em vez da coleção em memória para não agir sobre status obsoleto.
func (r *ServiceOrderRepository) FindOrderStatus(ctx context.Context, id string) (string, error) {
	var status string
	err := r.storage.QueryRow(ctx, `SELECT status FROM service_orders WHERE id = $1`, id).Scan(&status)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", apperrors.ErrNotFound
		}
		return "", fmt.Errorf("erro ao ler o status da OS: %w", err)
	}
	return status, nil
}

func (r *ServiceOrderRepository) CreateOrder(ctx context.Context, clientID, description, createdBy string) (*entities.ServiceOrder, error) {
	order := entities.ServiceOrder{
		ID:          uuid.New().String(),
		ClientID:    clientID,
		Description: description,
		Status:      constants.StatusOpen,
		CreatedBy:   createdBy,
	}

	query := `INSERT INTO service_orders (id, client_id, description, status, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
		RETURNING order_number, created_at`
	err := r.storage.QueryRow(ctx, query, order.ID, order.ClientID, order.Description, order.Status, order.CreatedBy).
		Scan(&order.OrderNumber, &order.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("erro ao criar a OS: %w", err)
	}
	return &order, nil
}

func (r *ServiceOrderRepository) UpdateOrderStatus(ctx context.Context, id, status string) error {
	tag, err := r.storage.Exec(ctx, `UPDATE service_orders SET status = $1 WHERE id = $2`, status, id)
	if err != nil {
		return fmt.Errorf("erro ao atualizar o status da OS: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *ServiceOrderRepository) UpdateOrderAssignment(ctx context.Context, id, technicianID string) error {
	tag, err := r.storage.Exec(ctx, `UPDATE service_orders SET assigned_technician_id = $1 WHERE id = $2`, technicianID, id)
	if err != nil {
		return fmt.Errorf("erro ao atribuir técnico à OS: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *ServiceOrderRepository) CountByStatus(ctx context.Context, actor dto.Identity) ([]dto.StatusSummaryDTO, error) {
	builder := psql.Select("status", "COUNT(*)").
		From("service_orders").
		GroupBy("status")
	builder = visibilityFilter(builder, actor)

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao montar a consulta do resumo: %w", err)
	}

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao contar OS por status: %w", err)
	}
	defer rows.Close()

	summary := make([]dto.StatusSummaryDTO, 0)
	for rows.Next() {
		var item dto.StatusSummaryDTO
		if err := rows.Scan(&item.Status, &item.Count); err != nil {
			return nil, fmt.Errorf("erro ao escanear o resumo por status: %w", err)
		}
		summary = append(summary, item)
	}
	return summary, rows.Err()
}
