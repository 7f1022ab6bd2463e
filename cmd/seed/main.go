package main

import (
	"database/sql"
	"fmt"
	"log"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"github.com/supgamedex/gamedex-api/config"
	"github.com/supgamedex/gamedex-api/pkg/helpers"
)

// Seeds a confirmed demo account for local development.
func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := sql.Open("pgx", cfg.PostgresDSN())
	if err != nil {
		log.Fatalf("failed to open db: %v", err)
	}
	defer func() { _ = db.Close() }()

	email := "demo@gamedex.dev"
	password := "Passw0rd!"
	firstName := "Demo"
	hash, err := helpers.HashPassword(password)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}

	var id int64
	err = db.QueryRow(`
		INSERT INTO users (first_name, email, password_hash, is_active)
		VALUES ($1, $2, $3, true)
		ON CONFLICT (email) DO UPDATE SET is_active = true
		RETURNING id
	`, firstName, email, hash).Scan(&id)
	if err != nil {
		log.Fatalf("failed to seed user: %v", err)
	}
	fmt.Printf("seeded user: id=%d email=%s password=%s\n", id, email, password)
}
