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
	"os-system/pkg/constants"
	apperrors "os-system/pkg/errors"
)

const userFields = "id, name, email, role, password_hash, created_at"

type UserRepositoryInterface interface {
	CreateUser(ctx context.Context, user *entities.User) error
	FindByEmail(ctx context.Context, email string) (*entities.User, error)
	FindUserByID(ctx context.Context, id string) (*entities.User, error)
	ListTechnicians(ctx context.Context) ([]entities.User, error)
	ListTechnicianNamesByIDs(ctx context.Context, ids []string) (map[string]string, error)
	FindTechnicianByName(ctx context.Context, name string) (*entities.User, error)
}

type UserRepository struct {
	storage *pgxpool.Pool
}

func NewUserRepository(storage *pgxpool.Pool) UserRepositoryInterface {
	return &UserRepository{storage: storage}
}

func (r *UserRepository) CreateUser(ctx context.Context, user *entities.User) error {
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	query := `INSERT INTO users (id, name, email, role, password_hash, created_at)
		VALUES ($1, $2, $3, $4, $5, NOW()) RETURNING created_at`
	err := r.storage.QueryRow(ctx, query, user.ID, user.Name, user.Email, user.Role, user.PasswordHash).
		Scan(&user.CreatedAt)
	if err != nil {
		return fmt.Errorf("erro ao criar usuário: %w", err)
	}
	return nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*entities.User, error) {
	query := fmt.Sprintf("SELECT %s FROM users WHERE email = $1 LIMIT 1", userFields)
	return r.scanOne(ctx, query, email)
}

func (r *UserRepository) FindUserByID(ctx context.Context, id string) (*entities.User, error) {
	query := fmt.Sprintf("SELECT %s FROM users WHERE id = $1", userFields)
	return r.scanOne(ctx, query, id)
}

func (r *UserRepository) scanOne(ctx context.Context, query string, args ...interface{}) (*entities.User, error) {
	var user entities.User
	err := r.storage.QueryRow(ctx, query, args...).
		Scan(&user.ID, &user.Name, &user.Email, &user.Role, &user.PasswordHash, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("erro ao buscar usuário: %w", err)
	}
	return &user, nil
}

func (r *UserRepository) ListTechnicians(ctx context.Context) ([]entities.User, error) {
	query := fmt.Sprintf("SELECT %s FROM users WHERE role = $1 ORDER BY name", userFields)
	rows, err := r.storage.Query(ctx, query, constants.RoleTechnician)
	if err != nil {
		return nil, fmt.Errorf("erro ao buscar técnicos: %w", err)
	}
	defer rows.Close()

	technicians := make([]entities.User, 0)
	for rows.Next() {
		var user entities.User
		if err := rows.Scan(&user.ID, &user.Name, &user.Email, &user.Role, &user.PasswordHash, &user.CreatedAt); err != nil {
			return nil, fmt.Errorf("erro ao escanear técnico: %w", err)
		}
		technicians = append(technicians, user)
	}
	return technicians, rows.Err()
}

// ListTechnicianNamesByIDs resolve os nomes em uma única chamada em lote.
func (r *UserRepository) ListTechnicianNamesByIDs(ctx context.Context, ids []string) (map[string]string, error) {
	names := make(map[string]string, len(ids))
	if len(ids) == 0 {
		return names, nil
	}

	query, args, err := psql.Select("id", "COALESCE(name, '')").
		From("users").
		Where(sq.Eq{"id": ids}).
		Where(sq.Eq{"role": constants.RoleTechnician}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao montar a consulta de técnicos: %w", err)
	}

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao buscar nomes de técnicos: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var id, name string
		if err := rows.Scan(&id, &name); err != nil {
			return nil, fmt.Errorf("erro ao escanear nome de técnico: %w", err)
		}
		names[id] = name
	}
	return names, rows.Err()
}

// FindTechnicianByName resolve um nome de exibição para a identidade do técnico.
// Zero correspondências -> ErrNotFound; mais de uma -> ErrAmbiguous.
func (r *UserRepository) FindTechnicianByName(ctx context.Context, name string) (*entities.User, error) {
	query := fmt.Sprintf("SELECT %s FROM users WHERE role = $1 AND name = $2 LIMIT 2", userFields)
	rows, err := r.storage.Query(ctx, query, constants.RoleTechnician, name)
	if err != nil {
		return nil, fmt.Errorf("erro ao buscar técnico por nome: %w", err)
	}
	defer rows.Close()

	var matches []entities.User
	for rows.Next() {
		var user entities.User
		if err := rows.Scan(&user.ID, &user.Name, &user.Email, &user.Role, &user.PasswordHash, &user.CreatedAt); err != nil {
			return nil, fmt.Errorf("erro ao escanear técnico: %w", err)
		}
		matches = append(matches, user)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	switch len(matches) {
	case 0:
		return nil, apperrors.ErrNotFound
	case 1:
		return &matches[0], nil
	default:
		return nil, apperrors.ErrAmbiguous
	}
}
