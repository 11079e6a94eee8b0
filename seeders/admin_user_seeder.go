package seeders

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"os-system/pkg/constants"
	"os-system/pkg/utils"
)

func seedAdminUser(ctx context.Context, db *pgxpool.Pool) error {
	log.Println("  - Criando usuário administrador...")

	const email = "admin@os-system.local"
	var existingID string
	err := db.QueryRow(ctx, "SELECT id FROM users WHERE email = $1", email).Scan(&existingID)
	if err == nil {
		log.Println("    - Administrador já existe. Pulando.")
		return nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("erro ao verificar o administrador: %w", err)
	}

	hash, err := utils.HashPassword("admin123")
	if err != nil {
		return err
	}

	_, err = db.Exec(ctx,
		`INSERT INTO users (id, name, email, role, password_hash, created_at) VALUES ($1, $2, $3, $4, $5, NOW())`,
		uuid.New().String(), "Administrador", email, constants.RoleAdmin, hash)
	if err != nil {
		return fmt.Errorf("erro ao criar o administrador: %w", err)
	}
	return nil
}
