package repository

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meridianfi/banking/internal/testutil"
	"github.com/meridianfi/banking/internal/transaction/domain"
)

func newTestTransaction(accountID uuid.UUID, amountCents int64, description string) *domain.Transaction {
	return &domain.Transaction{
		ID:          uuid.Must(uuid.NewV7()),
		AccountID:   accountID,
		Type:        domain.TypeDeposit,
		Status:      domain.StatusCompleted,
		AmountCents: amountCents,
		Description: description,
	}
}

func TestPostgreSQLTransactionRepository_Create(t *testing.T) {
	testutil.SkipIfNoPostgres(t)
	db := testutil.SetupPostgresDB(t)
	defer testutil.TeardownDB(t, db)
	defer testutil.CleanupPostgresDB(t, db)

	repo := NewPostgreSQLTransactionRepository(db)
	ctx := context.Background()

	userID := testutil.CreateTestUser(t, db, "postgres", "tx@example.com")
	accountID := testutil.CreateTestAccount(t, db, "postgres", userID, "checking", "1000000001")

	tx := newTestTransaction(accountID, 150000, "Card funding")
	err := repo.Create(ctx, tx)
	assert.NoError(t, err)

	transactions, err := repo.ListByAccountID(ctx, accountID, 10)
	assert.NoError(t, err)
	require.Len(t, transactions, 1)
	assert.Equal(t, tx.ID, transactions[0].ID)
	assert.Equal(t, accountID, transactions[0].AccountID)
	assert.Equal(t, domain.TypeDeposit, transactions[0].Type)
	assert.Equal(t, domain.StatusCompleted, transactions[0].Status)
	assert.Equal(t, int64(150000), transactions[0].AmountCents)
	assert.Equal(t, "Card funding", transactions[0].Description)
	assert.False(t, transactions[0].CreatedAt.IsZero())
}

func TestPostgreSQLTransactionRepository_ListByAccountID(t *testing.T) {
	testutil.SkipIfNoPostgres(t)
	db := testutil.SetupPostgresDB(t)
	defer testutil.TeardownDB(t, db)
	defer testutil.CleanupPostgresDB(t, db)

	repo := NewPostgreSQLTransactionRepository(db)
	ctx := context.Background()

	userID := testutil.CreateTestUser(t, db, "postgres", "tx@example.com")
	accountID := testutil.CreateTestAccount(t, db, "postgres", userID, "checking", "1000000001")
	otherAccountID := testutil.CreateTestAccount(t, db, "postgres", userID, "savings", "1000000002")

	first := newTestTransaction(accountID, 10000, "First deposit")
	second := newTestTransaction(accountID, 20000, "Second deposit")
	require.NoError(t, repo.Create(ctx, first))
	require.NoError(t, repo.Create(ctx, second))
	require.NoError(t, repo.Create(ctx, newTestTransaction(otherAccountID, 5000, "Other account")))

	transactions, err := repo.ListByAccountID(ctx, accountID, 10)
	assert.NoError(t, err)
	require.Len(t, transactions, 2)
	// Newest first
	assert.Equal(t, second.ID, transactions[0].ID)
	assert.Equal(t, first.ID, transactions[1].ID)
}

func TestPostgreSQLTransactionRepository_ListByAccountID_Limit(t *testing.T) {
	testutil.SkipIfNoPostgres(t)
	db := testutil.SetupPostgresDB(t)
	defer testutil.TeardownDB(t, db)
	defer testutil.CleanupPostgresDB(t, db)

	repo := NewPostgreSQLTransactionRepository(db)
	ctx := context.Background()

	userID := testutil.CreateTestUser(t, db, "postgres", "tx@example.com")
	accountID := testutil.CreateTestAccount(t, db, "postgres", userID, "checking", "1000000001")

	for i := 0; i < 5; i++ {
		require.NoError(t, repo.Create(ctx, newTestTransaction(accountID, 1000, "Deposit")))
	}

	transactions, err := repo.ListByAccountID(ctx, accountID, 3)
	assert.NoError(t, err)
	assert.Len(t, transactions, 3)
}

func TestPostgreSQLTransactionRepository_ListByAccountID_Empty(t *testing.T) {
	testutil.SkipIfNoPostgres(t)
	db := testutil.SetupPostgresDB(t)
	defer testutil.TeardownDB(t, db)
	defer testutil.CleanupPostgresDB(t, db)

	repo := NewPostgreSQLTransactionRepository(db)
	ctx := context.Background()

	transactions, err := repo.ListByAccountID(ctx, uuid.Must(uuid.NewV7()), 10)
	assert.NoError(t, err)
	assert.Empty(t, transactions)
}
