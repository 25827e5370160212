package repository

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unimate-app/unimate-api/internal/models"
)

func TestPaymentRepositoryCreate(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewPaymentRepository(db)

	mock.ExpectQuery("INSERT INTO payment_transactions").
		WithArgs("tx-123", models.PaymentStatusSuccessful, int64(500), int64(1), sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(9)))

	tx := &models.PaymentTransaction{TransactionRef: "tx-123", Status: models.PaymentStatusSuccessful, Amount: 500, UserID: 1}
	require.NoError(t, repo.Create(context.Background(), tx))
	assert.Equal(t, int64(9), tx.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPaymentRepositoryFindByRef(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewPaymentRepository(db)

	rows := sqlmock.NewRows([]string{"id", "transaction_ref", "status", "amount", "user_id", "created_at"}).
		AddRow(int64(9), "tx-123", models.PaymentStatusConfirmed, int64(500), int64(1), time.Now())
	mock.ExpectQuery("SELECT (.+) FROM payment_transactions WHERE transaction_ref = \\$1").
		WithArgs("tx-123").
		WillReturnRows(rows)

	tx, err := repo.FindByRef(context.Background(), "tx-123")
	require.NoError(t, err)
	assert.Equal(t, models.PaymentStatusConfirmed, tx.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPaymentRepositoryFindByRefMissing(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewPaymentRepository(db)

	mock.ExpectQuery("SELECT (.+) FROM payment_transactions WHERE transaction_ref = \\$1").
		WithArgs("nope").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.FindByRef(context.Background(), "nope")
	assert.ErrorIs(t, err, sql.ErrNoRows)
}

func TestPaymentRepositoryUpdateStatus(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewPaymentRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE payment_transactions SET status = $2 WHERE transaction_ref = $1")).
		WithArgs("tx-123", models.PaymentStatusFailed).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.UpdateStatus(context.Background(), "tx-123", models.PaymentStatusFailed))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPaymentRepositoryList(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewPaymentRepository(db)

	rows := sqlmock.NewRows([]string{"id", "transaction_ref", "status", "amount", "user_id", "created_at"}).
		AddRow(int64(1), "tx-1", models.PaymentStatusConfirmed, int64(500), int64(1), time.Now()).
		AddRow(int64(2), "tx-2", models.PaymentStatusFailed, int64(500), int64(2), time.Now())
	mock.ExpectQuery("SELECT (.+) FROM payment_transactions ORDER BY created_at DESC").
		WillReturnRows(rows)

	txs, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, txs, 2)
	assert.NoError(t, mock.ExpectationsWereMet())
}
