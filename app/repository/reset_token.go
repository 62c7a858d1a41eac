package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/vibast-solutions/ms-go-accounts/app/entity"
)

type ResetTokenRepository struct {
	db Querier
}

func NewResetTokenRepository(db Querier) *ResetTokenRepository {
	return &ResetTokenRepository{db: db}
}

func (r *ResetTokenRepository) WithTx(tx *sql.Tx) *ResetTokenRepository {
	return &ResetTokenRepository{db: tx}
}

func (r *ResetTokenRepository) Create(ctx context.Context, token *entity.PasswordResetToken) error {
	query := `
		INSERT INTO password_reset_tokens (user_id, token, expires_at, used, active, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`
	result, err := r.db.ExecContext(ctx, query,
		token.UserID,
		token.Token,
		token.ExpiresAt,
		token.Used,
		token.Active,
		token.CreatedAt,
	)
	if err != nil {
		return err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	token.ID = uint64(id)
	return nil
}

func (r *ResetTokenRepository) FindByToken(ctx context.Context, token string) (*entity.PasswordResetToken, error) {
	query := `
		SELECT id, user_id, token, expires_at, used, active, created_at
		FROM password_reset_tokens WHERE token = ?
	`
	t := &entity.PasswordResetToken{}
	err := r.db.QueryRowContext(ctx, query, token).Scan(
		&t.ID,
		&t.UserID,
		&t.Token,
		&t.ExpiresAt,
		&t.Used,
		&t.Active,
		&t.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return t, nil
}

// Consume transitions a pending token to used. The WHERE clause doubles as the
// serialization point for concurrent confirmations: only one caller can match
// a row that is still active and unused, everyone else gets zero rows.
func (r *ResetTokenRepository) Consume(ctx context.Context, id uint64) (int64, error) {
	query := `
		UPDATE password_reset_tokens SET used = 1, active = 0
		WHERE id = ? AND active = 1 AND used = 0
	`
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

// DeactivateExpired is advisory cleanup for the background sweep; the lazy
// expiry check at confirmation time does not depend on it.
func (r *ResetTokenRepository) DeactivateExpired(ctx context.Context, now time.Time) (int64, error) {
	query := `
		UPDATE password_reset_tokens SET active = 0
		WHERE expires_at < ? AND active = 1
	`
	result, err := r.db.ExecContext(ctx, query, now)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

func (r *ResetTokenRepository) CountPending(ctx context.Context, now time.Time) (int64, error) {
	query := `
		SELECT COUNT(*) FROM password_reset_tokens
		WHERE active = 1 AND used = 0 AND expires_at > ?
	`
	var n int64
	if err := r.db.QueryRowContext(ctx, query, now).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}
