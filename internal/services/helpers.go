package services

import (
	"context"
	"errors"
	"fmt"
	"log"

	"referral-network-api/internal/models"
	"referral-network-api/internal/realtime"
	"referral-network-api/internal/storage"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// Actor is the verified caller of a service operation.
type Actor struct {
	ID    uuid.UUID
	Email string
	Role  models.Role
}

// TxBeginner starts database transactions. *pgxpool.Pool satisfies it.
type TxBeginner interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

// Notifier pushes realtime events to a user. *realtime.Hub satisfies it.
type Notifier interface {
	Notify(userID uuid.UUID, evt realtime.Event)
}

type noopNotifier struct{}

func (noopNotifier) Notify(uuid.UUID, realtime.Event) {}

func notifierOrNoop(n Notifier) Notifier {
	if n == nil {
		return noopNotifier{}
	}
	return n
}

// MapRepoError maps storage errors to service errors
func MapRepoError(err error, operation string) error {
	if errors.Is(err, storage.ErrNotFound) {
		return fmt.Errorf("%w: %s", ErrNotFound, operation)
	}
	if errors.Is(err, storage.ErrConflict) {
		return fmt.Errorf("%w: %s (%v)", ErrConflict, operation, err)
	}
	// Log other unexpected errors
	log.Printf("Unexpected repository error during %s: %v", operation, err)
	return fmt.Errorf("internal error during %s: %w", operation, err)
}

// canAccessJob reports whether actor may run owner-level operations on job.
// Clients are limited to their own postings; network members work across jobs.
func canAccessJob(actor Actor, job *models.Job) bool {
	if actor.Role == models.RoleClient {
		return job.ClientID == actor.ID
	}
	return actor.Role.IsNetworkMember()
}

func dashboardCacheKey(userID uuid.UUID) string {
	return "dashboard:" + userID.String()
}
