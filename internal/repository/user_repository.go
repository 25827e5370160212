package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/unimate-app/unimate-api/internal/models"
)

const userColumns = `id, username, password_hash, university, gender, nationality, phone, profile_image, has_paid, last_seen_at, created_at, updated_at`

// UserRepository provides database access for user accounts.
type UserRepository struct {
	db *sqlx.DB
}

// NewUserRepository creates a new instance of UserRepository.
func NewUserRepository(db *sqlx.DB) *UserRepository {
	return &UserRepository{db: db}
}

// FindByUsername returns a user by username.
func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM users WHERE username = $1 LIMIT 1`, userColumns)
	var user models.User
	if err := r.db.GetContext(ctx, &user, query, username); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find user by username: %w", err)
	}
	return &user, nil
}

// FindByID returns a user by identifier.
func (r *UserRepository) FindByID(ctx context.Context, id int64) (*models.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM users WHERE id = $1 LIMIT 1`, userColumns)
	var user models.User
	if err := r.db.GetContext(ctx, &user, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find user by id: %w", err)
	}
	return &user, nil
}

// Create inserts a new user and fills in the generated id.
func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	now := time.Now().UTC()
	user.CreatedAt = now
	user.UpdatedAt = now

	const query = `INSERT INTO users (username, password_hash, university, gender, nationality, phone, profile_image, has_paid, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, FALSE, $8, $9) RETURNING id`
	if err := r.db.QueryRowxContext(ctx, query,
		user.Username, user.PasswordHash, user.University, user.Gender,
		user.Nationality, user.Phone, user.ProfileImage, user.CreatedAt, user.UpdatedAt,
	).Scan(&user.ID); err != nil {
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

// ListPeers returns every user except the given caller.
func (r *UserRepository) ListPeers(ctx context.Context, excludeID int64) ([]models.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM users WHERE id != $1 ORDER BY username`, userColumns)
	var users []models.User
	if err := r.db.SelectContext(ctx, &users, query, excludeID); err != nil {
		return nil, fmt.Errorf("list peers: %w", err)
	}
	return users, nil
}

// Touch refreshes the presence heartbeat for a user.
func (r *UserRepository) Touch(ctx context.Context, id int64, ts time.Time) error {
	const query = `UPDATE users SET last_seen_at = $2, updated_at = $2 WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, id, ts); err != nil {
		return fmt.Errorf("touch user: %w", err)
	}
	return nil
}

// SetPaid flips the paid-access flag. Setting it when already set is a no-op.
func (r *UserRepository) SetPaid(ctx context.Context, id int64) error {
	const query = `UPDATE users SET has_paid = TRUE, updated_at = $2 WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, id, time.Now().UTC()); err != nil {
		return fmt.Errorf("set paid: %w", err)
	}
	return nil
}

// HasPaid reads the paid-access flag for a user.
func (r *UserRepository) HasPaid(ctx context.Context, id int64) (bool, error) {
	const query = `SELECT has_paid FROM users WHERE id = $1 LIMIT 1`
	var hasPaid bool
	if err := r.db.GetContext(ctx, &hasPaid, query, id); err != nil {
		if err == sql.ErrNoRows {
			return false, err
		}
		return false, fmt.Errorf("read paid flag: %w", err)
	}
	return hasPaid, nil
}

// Count returns the total number of users.
func (r *UserRepository) Count(ctx context.Context) (int, error) {
	const query = `SELECT COUNT(*) FROM users`
	var total int
	if err := r.db.GetContext(ctx, &total, query); err != nil {
		return 0, fmt.Errorf("count users: %w", err)
	}
	return total, nil
}
