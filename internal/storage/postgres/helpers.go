package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"referral-network-api/internal/storage"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Querier is satisfied by both *pgxpool.Pool and pgx.Tx.
type Querier interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	CopyFrom(ctx context.Context, tableName pgx.Identifier, columnNames []string, rowSrc pgx.CopyFromSource) (int64, error)
}

const (
	pgForeignKeyViolation = "23503"
	pgUniqueViolation     = "23505"
)

// mapPgError turns constraint violations into storage.ErrConflict.
func mapPgError(err error, op string) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgForeignKeyViolation, pgUniqueViolation:
			return fmt.Errorf("%s: %s: %w", op, pgErr.ConstraintName, storage.ErrConflict)
		}
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return storage.ErrNotFound
	}
	return fmt.Errorf("%s: %w", op, err)
}

// buildListQuery appends WHERE, ORDER BY and LIMIT/OFFSET to a base select.
func buildListQuery(baseQuery string, conditions []string, orderBy string, args *[]interface{}, offset, limit int) string {
	var queryBuilder strings.Builder
	queryBuilder.WriteString(baseQuery)
	queryBuilder.WriteString(whereClause(conditions))
	queryBuilder.WriteString(" ORDER BY ")
	queryBuilder.WriteString(orderBy)

	*args = append(*args, limit)
	queryBuilder.WriteString(fmt.Sprintf(" LIMIT $%d", len(*args)))
	*args = append(*args, offset)
	queryBuilder.WriteString(fmt.Sprintf(" OFFSET $%d", len(*args)))

	return queryBuilder.String()
}

func whereClause(conditions []string) string {
	if len(conditions) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(conditions, " AND ")
}
