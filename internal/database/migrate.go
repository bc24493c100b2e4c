package database

import (
	"context"
	_ "embed"
	"fmt"
	"log"

	"github.com/jackc/pgx/v5/pgxpool"
)

//go:embed schema.sql
var schemaSQL string

// Migrate creates any missing tables and indexes. Every statement is idempotent.
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	log.Println("Applying database schema...")
	if _, err := pool.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}
	log.Println("Database schema is up to date")
	return nil
}
