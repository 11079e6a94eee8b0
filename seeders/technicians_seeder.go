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

var defaultTechnicians = []struct {
	Name  string
	Email string
}{
	{"Carlos Souza", "carlos@os-system.local"},
	{"Marta Lima", "marta@os-system.local"},
}

func seedTechnicians(ctx context.Context, db *pgxpool.Pool) error {
	log.Println("  - Criando técnicos de demonstração...")

	for _, tech := range defaultTechnicians {
		var existingID string
		err := db.QueryRow(ctx, "SELECT id FROM users WHERE email = $1", tech.Email).Scan(&existingID)
		if err == nil {
			continue
		}
		if !errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("erro ao verificar o técnico %s: %w", tech.Email, err)
		}

		hash, err := utils.HashPassword("tecnico123")
		if err != nil {
			return err
		}

		_, err = db.Exec(ctx,
			`INSERT INTO users (id, name, email, role, password_hash, created_at) VALUES ($1, $2, $3, $4, $5, NOW())`,
			uuid.New().String(), tech.Name, tech.Email, constants.RoleTechnician, hash)
		if err != nil {
			return fmt.Errorf("erro ao criar o técnico %s: %w", tech.Email, err)
		}
	}
	return nil
}
