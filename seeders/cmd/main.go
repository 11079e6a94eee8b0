package main

import (
	"context"
	"log"

	"os-system/pkg/config"
	"os-system/pkg/database/postgresql"
	"os-system/seeders"
)

func main() {
	cfg := config.New()

	db := postgresql.ConnectDB(cfg.Postgres.DSN)
	defer db.Close()

	if err := seeders.Run(context.Background(), db); err != nil {
		log.Fatalf("seed falhou: %v", err)
	}
}
