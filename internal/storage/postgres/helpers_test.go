package postgres

import (
	"errors"
	"fmt"
	"testing"

	"referral-network-api/internal/storage"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestBuildListQuery(t *testing.T) {
	args := []interface{}{"client-1"}
	q := buildListQuery("SELECT id FROM jobs", []string{"client_id = $1"}, "created_at DESC", &args, 5, 5)

	assert.Equal(t, "SELECT id FROM jobs WHERE client_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3", q)
	assert.Equal(t, []interface{}{"client-1", 5, 5}, args)
}

func TestBuildListQuery_NoConditions(t *testing.T) {
	var args []interface{}
	q := buildListQuery("SELECT id FROM referrals r", nil, "r.created_at DESC", &args, 0, 20)

	assert.Equal(t, "SELECT id FROM referrals r ORDER BY r.created_at DESC LIMIT $1 OFFSET $2", q)
	assert.Equal(t, []interface{}{20, 0}, args)
}

func TestEscapeLike(t *testing.T) {
	assert.Equal(t, `100\% remote\_ok`, escapeLike("100% remote_ok"))
	assert.Equal(t, `a\\b`, escapeLike(`a\b`))
}

func TestMapPgError(t *testing.T) {
	fk := &pgconn.PgError{Code: "23503", ConstraintName: "referrals_job_id_fkey"}
	err := mapPgError(fmt.Errorf("wrapped: %w", fk), "failed to create referral")
	assert.ErrorIs(t, err, storage.ErrConflict)
	assert.Contains(t, err.Error(), "referrals_job_id_fkey")

	assert.ErrorIs(t, mapPgError(pgx.ErrNoRows, "get"), storage.ErrNotFound)

	plain := errors.New("connection reset")
	err = mapPgError(plain, "failed to create job")
	assert.ErrorIs(t, err, plain)
	assert.NotErrorIs(t, err, storage.ErrConflict)
}
