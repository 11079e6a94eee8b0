package main

import (
	"database/sql"
	"flag"
	"log"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"os-system/pkg/config"
)

func main() {
	command := flag.String("command", "up", "comando do goose: up, down, status, version")
	dir := flag.String("dir", "migrations", "diretório das migrações")
	flag.Parse()

	cfg := config.New()

	db, err := sql.Open("pgx", cfg.Postgres.DSN)
	if err != nil {
		log.Fatalf("não foi possível abrir a conexão com o banco: %v", err)
	}
	defer db.Close()

	if err := goose.SetDialect("postgres"); err != nil {
		log.Fatalf("dialeto inválido: %v", err)
	}

	switch *command {
	case "up":
		err = goose.Up(db, *dir)
	case "down":
		err = goose.Down(db, *dir)
	case "status":
		err = goose.Status(db, *dir)
	case "version":
		err = goose.Version(db, *dir)
	default:
		log.Fatalf("comando desconhecido: %s", *command)
	}
	if err != nil {
		log.Fatalf("migração falhou (%s): %v", *command, err)
	}
}
