package mocks

import (
	"context"
	"io"
	"sync"
	"time"

	"referral-network-api/internal/ai"
	"referral-network-api/internal/cache"
	"referral-network-api/internal/realtime"
	"referral-network-api/internal/storage/blob"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/mock"
)

// --- ai.Completer ---

type MockCompleter struct {
	mock.Mock
}

var _ ai.Completer = (*MockCompleter)(nil)

func (m *MockCompleter) Complete(ctx context.Context, req ai.CompletionRequest) (string, error) {
	args := m.Called(ctx, req)
	return args.String(0), args.Error(1)
}

// --- cache.Cache ---

type MockCache struct {
	mock.Mock
}

var _ cache.Cache = (*MockCache)(nil)

func (m *MockCache) GetJSON(ctx context.Context, key string, out any) (bool, error) {
	args := m.Called(ctx, key, out)
	return args.Bool(0), args.Error(1)
}

func (m *MockCache) SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error {
	args := m.Called(ctx, key, value, ttl)
	return args.Error(0)
}

func (m *MockCache) Delete(ctx context.Context, keys ...string) error {
	args := m.Called(ctx, keys)
	return args.Error(0)
}

// --- blob.Store ---

type MockBlobStore struct {
	mock.Mock
}

var _ blob.Store = (*MockBlobStore)(nil)

// Put drains r so callers observe a completed copy.
func (m *MockBlobStore) Put(ctx context.Context, key string, r io.Reader, maxBytes int64) (int64, error) {
	_, _ = io.Copy(io.Discard, r)
	args := m.Called(ctx, key, mock.Anything, maxBytes)
	return int64(args.Int(0)), args.Error(1)
}

func (m *MockBlobStore) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

// --- services.Notifier ---

// RecordingNotifier captures realtime events instead of sending them.
type RecordingNotifier struct {
	mu     sync.Mutex
	Events map[uuid.UUID][]realtime.Event
}

func (n *RecordingNotifier) Notify(userID uuid.UUID, evt realtime.Event) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.Events == nil {
		n.Events = make(map[uuid.UUID][]realtime.Event)
	}
	n.Events[userID] = append(n.Events[userID], evt)
}

// For returns the events sent to userID.
func (n *RecordingNotifier) For(userID uuid.UUID) []realtime.Event {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]realtime.Event(nil), n.Events[userID]...)
}

// --- pgx transactions ---

// FakeTx records Commit and Rollback. Other pgx.Tx methods are not used by
// the services and panic if called.
type FakeTx struct {
	pgx.Tx
	Committed  bool
	RolledBack bool
}

func (t *FakeTx) Commit(ctx context.Context) error {
	t.Committed = true
	return nil
}

func (t *FakeTx) Rollback(ctx context.Context) error {
	if !t.Committed {
		t.RolledBack = true
	}
	return nil
}

// FakeTxBeginner hands out one FakeTx.
type FakeTxBeginner struct {
	Tx  *FakeTx
	Err error
}

func (b *FakeTxBeginner) Begin(ctx context.Context) (pgx.Tx, error) {
	if b.Err != nil {
		return nil, b.Err
	}
	if b.Tx == nil {
		b.Tx = &FakeTx{}
	}
	return b.Tx, nil
}
