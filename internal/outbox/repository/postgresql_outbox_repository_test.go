package repository

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meridianfi/banking/internal/outbox/domain"
	"github.com/meridianfi/banking/internal/testutil"
)

func newTestOutboxEvent(eventType string) *domain.OutboxEvent {
	return &domain.OutboxEvent{
		ID:        uuid.Must(uuid.NewV7()),
		EventType: eventType,
		Payload:   `{"user_id": "00000000-0000-0000-0000-000000000001"}`,
		Status:    domain.OutboxEventStatusPending,
	}
}

func TestPostgreSQLOutboxEventRepository_Create(t *testing.T) {
	testutil.SkipIfNoPostgres(t)
	db := testutil.SetupPostgresDB(t)
	defer testutil.TeardownDB(t, db)
	defer testutil.CleanupPostgresDB(t, db)

	repo := NewPostgreSQLOutboxEventRepository(db)
	ctx := context.Background()

	event := newTestOutboxEvent("user.registered")
	err := repo.Create(ctx, event)
	assert.NoError(t, err)

	events, err := repo.GetPendingEvents(ctx, 10)
	assert.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, event.ID, events[0].ID)
	assert.Equal(t, "user.registered", events[0].EventType)
	assert.Equal(t, domain.OutboxEventStatusPending, events[0].Status)
	assert.Equal(t, 0, events[0].Retries)
	assert.Nil(t, events[0].LastError)
	assert.Nil(t, events[0].ProcessedAt)
}

func TestPostgreSQLOutboxEventRepository_GetPendingEvents(t *testing.T) {
	testutil.SkipIfNoPostgres(t)
	db := testutil.SetupPostgresDB(t)
	defer testutil.TeardownDB(t, db)
	defer testutil.CleanupPostgresDB(t, db)

	repo := NewPostgreSQLOutboxEventRepository(db)
	ctx := context.Background()

	first := newTestOutboxEvent("user.registered")
	second := newTestOutboxEvent("account.created")
	processed := newTestOutboxEvent("account.funded")
	processed.Status = domain.OutboxEventStatusProcessed

	require.NoError(t, repo.Create(ctx, first))
	require.NoError(t, repo.Create(ctx, second))
	require.NoError(t, repo.Create(ctx, processed))

	events, err := repo.GetPendingEvents(ctx, 10)
	assert.NoError(t, err)
	require.Len(t, events, 2)
	// Oldest first
	assert.Equal(t, first.ID, events[0].ID)
	assert.Equal(t, second.ID, events[1].ID)
}

func TestPostgreSQLOutboxEventRepository_GetPendingEvents_Limit(t *testing.T) {
	testutil.SkipIfNoPostgres(t)
	db := testutil.SetupPostgresDB(t)
	defer testutil.TeardownDB(t, db)
	defer testutil.CleanupPostgresDB(t, db)

	repo := NewPostgreSQLOutboxEventRepository(db)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		require.NoError(t, repo.Create(ctx, newTestOutboxEvent("user.registered")))
	}

	events, err := repo.GetPendingEvents(ctx, 2)
	assert.NoError(t, err)
	assert.Len(t, events, 2)
}

func TestPostgreSQLOutboxEventRepository_Update(t *testing.T) {
	testutil.SkipIfNoPostgres(t)
	db := testutil.SetupPostgresDB(t)
	defer testutil.TeardownDB(t, db)
	defer testutil.CleanupPostgresDB(t, db)

	repo := NewPostgreSQLOutboxEventRepository(db)
	ctx := context.Background()

	event := newTestOutboxEvent("user.registered")
	require.NoError(t, repo.Create(ctx, event))

	now := time.Now()
	lastError := "publish failed"
	event.Status = domain.OutboxEventStatusFailed
	event.Retries = 2
	event.LastError = &lastError
	event.ProcessedAt = &now

	err := repo.Update(ctx, event)
	assert.NoError(t, err)

	// Failed events no longer show up as pending
	events, err := repo.GetPendingEvents(ctx, 10)
	assert.NoError(t, err)
	assert.Empty(t, events)
}
