package sqlite

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/icarus-portal/icarus-api/internal/repository"
)

// TokenRepository implements repository.TokenRepository for SQLite. Only the
// SHA-256 hash of a token is stored; the plaintext is returned once at issue
// time and never persisted.
type TokenRepository struct {
	db *DB
}

// NewTokenRepository creates a new TokenRepository
func NewTokenRepository(db *DB) *TokenRepository {
	return &TokenRepository{db: db}
}

// Issue creates an opaque access token for the user
func (r *TokenRepository) Issue(ctx context.Context, userID string) (string, error) {
	token := uuid.NewString()
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO access_tokens (token_hash, user_id, created_at) VALUES (?, ?, ?)`,
		hashToken(token), userID, time.Now().UTC(),
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return "", repository.ErrNotFound
		}
		return "", fmt.Errorf("failed to issue token: %w", err)
	}
	return token, nil
}

// Resolve maps an access token back to its user id
func (r *TokenRepository) Resolve(ctx context.Context, token string) (string, error) {
	var userID string
	err := r.db.QueryRowContext(ctx,
		`SELECT user_id FROM access_tokens WHERE token_hash = ?`, hashToken(token),
	).Scan(&userID)
	if errors.Is(err, sql.ErrNoRows) {
		return "", repository.ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to resolve token: %w", err)
	}
	return userID, nil
}

func hashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
