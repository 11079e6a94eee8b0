package repositories

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"os-system/internal/entities"
)

type OrderHistoryRepositoryInterface interface {
	InsertHistoryEntry(ctx context.Context, entry *entities.ServiceOrderHistory) error
	ListByOrderID(ctx context.Context, serviceOrderID string) ([]entities.ServiceOrderHistory, error)
}

type OrderHistoryRepository struct {
	storage *pgxpool.Pool
}

func NewOrderHistoryRepository(storage *pgxpool.Pool) OrderHistoryRepositoryInterface {
	return &OrderHistoryRepository{storage: storage}
}

// InsertHistoryEntry grava um registro de auditoria. A tabela é append-only:
// não existe update nem delete para o histórico.
func (r *OrderHistoryRepository) InsertHistoryEntry(ctx context.Context, entry *entities.ServiceOrderHistory) error {
	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	query := `INSERT INTO service_order_history (id, service_order_id, status_from, status_to, changed_by, notes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW()) RETURNING created_at`
	err := r.storage.QueryRow(ctx, query,
		entry.ID, entry.ServiceOrderID, entry.StatusFrom, entry.StatusTo, entry.ChangedBy, entry.Notes,
	).Scan(&entry.CreatedAt)
	if err != nil {
		return fmt.Errorf("erro ao gravar histórico da OS: %w", err)
	}
	return nil
}

func (r *OrderHistoryRepository) ListByOrderID(ctx context.Context, serviceOrderID string) ([]entities.ServiceOrderHistory, error) {
	query := `SELECT id, service_order_id, status_from, status_to, changed_by, notes, created_at
		FROM service_order_history WHERE service_order_id = $1 ORDER BY created_at ASC`
	rows, err := r.storage.Query(ctx, query, serviceOrderID)
	if err != nil {
		return nil, fmt.Errorf("erro ao buscar histórico da OS: %w", err)
	}
	defer rows.Close()

	entries := make([]entities.ServiceOrderHistory, 0)
	for rows.Next() {
		var entry entities.ServiceOrderHistory
		if err := rows.Scan(
			&entry.ID, &entry.ServiceOrderID, &entry.StatusFrom, &entry.StatusTo,
			&entry.ChangedBy, &entry.Notes, &entry.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("erro ao escanear histórico: %w", err)
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}
