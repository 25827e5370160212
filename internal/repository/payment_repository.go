package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/unimate-app/unimate-api/internal/models"
)

// PaymentRepository provides database access for payment transactions.
type PaymentRepository struct {
	db *sqlx.DB
}

// NewPaymentRepository creates a new instance of PaymentRepository.
func NewPaymentRepository(db *sqlx.DB) *PaymentRepository {
	return &PaymentRepository{db: db}
}

// Create inserts a payment transaction record.
func (r *PaymentRepository) Create(ctx context.Context, tx *models.PaymentTransaction) error {
	if tx.CreatedAt.IsZero() {
		tx.CreatedAt = time.Now().UTC()
	}
	const query = `INSERT INTO payment_transactions (transaction_ref, status, amount, user_id, created_at)
		VALUES ($1, $2, $3, $4, $5) RETURNING id`
	if err := r.db.QueryRowxContext(ctx, query,
		tx.TransactionRef, tx.Status, tx.Amount, tx.UserID, tx.CreatedAt,
	).Scan(&tx.ID); err != nil {
		return fmt.Errorf("create payment transaction: %w", err)
	}
	return nil
}

// FindByRef returns a transaction by its external reference.
func (r *PaymentRepository) FindByRef(ctx context.Context, ref string) (*models.PaymentTransaction, error) {
	const query = `SELECT id, transaction_ref, status, amount, user_id, created_at FROM payment_transactions WHERE transaction_ref = $1 LIMIT 1`
	var tx models.PaymentTransaction
	if err := r.db.GetContext(ctx, &tx, query, ref); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find payment transaction: %w", err)
	}
	return &tx, nil
}

// UpdateStatus settles the status of a transaction by reference.
func (r *PaymentRepository) UpdateStatus(ctx context.Context, ref, status string) error {
	const query = `UPDATE payment_transactions SET status = $2 WHERE transaction_ref = $1`
	if _, err := r.db.ExecContext(ctx, query, ref, status); err != nil {
		return fmt.Errorf("update payment status: %w", err)
	}
	return nil
}

// List returns all transactions newest first.
func (r *PaymentRepository) List(ctx context.Context) ([]models.PaymentTransaction, error) {
	const query = `SELECT id, transaction_ref, status, amount, user_id, created_at FROM payment_transactions ORDER BY created_at DESC`
	var txs []models.PaymentTransaction
	if err := r.db.SelectContext(ctx, &txs, query); err != nil {
		return nil, fmt.Errorf("list payment transactions: %w", err)
	}
	return txs, nil
}

// Count returns the total number of transactions.
func (r *PaymentRepository) Count(ctx context.Context) (int, error) {
	const query = `SELECT COUNT(*) FROM payment_transactions`
	var total int
	if err := r.db.GetContext(ctx, &total, query); err != nil {
		return 0, fmt.Errorf("count payment transactions: %w", err)
	}
	return total, nil
}
