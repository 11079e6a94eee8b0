package seeders

import (
	"context"
	"log"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Run aplica todos os seeds na ordem correta. Cada seed é idempotente:
// rodar duas vezes não duplica nada.
func Run(ctx context.Context, db *pgxpool.Pool) error {
	log.Println("Aplicando seeds...")

	if err := seedAdminUser(ctx, db); err != nil {
		return err
	}
	if err := seedTechnicians(ctx, db); err != nil {
		return err
	}

	log.Println("Seeds aplicados com sucesso.")
	return nil
}
