package repositories

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"os-system/internal/entities"
	apperrors "os-system/pkg/errors"
)

type ClientRepositoryInterface interface {
	ListNamesByIDs(ctx context.Context, ids []string) (map[string]string, error)
	FindByName(ctx context.Context, name, createdBy string) (*entities.Client, error)
	CreateClient(ctx context.Context, name, createdBy string) (*entities.Client, error)
}

type ClientRepository struct {
	storage *pgxpool.Pool
}

func NewClientRepository(storage *pgxpool.Pool) ClientRepositoryInterface {
	return &ClientRepository{storage: storage}
}

// ListNamesByIDs resolve todos os nomes em uma única chamada (id = ANY),
// nunca uma consulta por OS.
func (r *ClientRepository) ListNamesByIDs(ctx context.Context, ids []string) (map[string]string, error) {
	names := make(map[string]string, len(ids))
	if len(ids) == 0 {
		return names, nil
	}

	query, args, err := psql.Select("id", "name").From("clients").Where(sq.Eq{"id": ids}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao montar a consulta de clientes: %w", err)
	}

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao buscar nomes de clientes: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var id, name string
		if err := rows.Scan(&id, &name); err != nil {
			return nil, fmt.Errorf("erro ao escanear cliente: %w", err)
		}
		names[id] = name
	}
	return names, rows.Err()
}

func (r *ClientRepository) FindByName(ctx context.Context, name, createdBy string) (*entities.Client, error) {
	var client entities.Client
	query := `SELECT id, name, created_by, created_at FROM clients WHERE name = $1 AND created_by = $2 LIMIT 1`
	err := r.storage.QueryRow(ctx, query, name, createdBy).
		Scan(&client.ID, &client.Name, &client.CreatedBy, &client.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("erro ao buscar cliente por nome: %w", err)
	}
	return &client, nil
}

func (r *ClientRepository) CreateClient(ctx context.Context, name, createdBy string) (*entities.Client, error) {
	client := entities.Client{
		ID:        uuid.New().String(),
		Name:      name,
		CreatedBy: createdBy,
	}

	query := `INSERT INTO clients (id, name, created_by, created_at) VALUES ($1, $2, $3, NOW()) RETURNING created_at`
	if err := r.storage.QueryRow(ctx, query, client.ID, client.Name, client.CreatedBy).Scan(&client.CreatedAt); err != nil {
		return nil, fmt.Errorf("erro ao criar cliente: %w", err)
	}
	return &client, nil
}
