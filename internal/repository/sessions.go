package repository

import (
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"finedesk/internal/config/connections/postgres"
	"finedesk/internal/models"

	"github.com/jackc/pgx/v5"
)

var ErrSessionNotFound = errors.New("session not found")

// SessionRepository resolves BFF bearer tokens to sessions. Tokens have the
// form "<id>|<secret>"; the table stores sha256(secret) in token_hash and the
// upstream API token the session calls with in api_token.
type SessionRepository struct {
	pg *postgres.Postgres
}

func NewSessionRepository(pg *postgres.Postgres) *SessionRepository {
	return &SessionRepository{pg: pg}
}

const sessionColumns = `id, token_hash, user_id, role, api_token, expires_at`

func (r *SessionRepository) FindSessionByPlainToken(ctx context.Context, plainToken string) (*models.Session, error) {
	id, secret, err := splitToken(plainToken)
	if err != nil {
		return nil, err
	}
	hash := hashSecret(secret)

	if id != nil {
		query := `SELECT ` + sessionColumns + `
            FROM sessions
            WHERE id = $1
              AND (expires_at IS NULL OR expires_at > $2)`

		s, stored, err := r.scan(r.pg.Pool.QueryRow(ctx, query, *id, time.Now()))
		switch {
		case err == nil && stored == hash:
			return s, nil
		case err == nil:
			log.Printf("[AUTH] token hash mismatch for session id=%d", *id)
			return nil, ErrSessionNotFound
		case !errors.Is(err, pgx.ErrNoRows):
			return nil, fmt.Errorf("session by id: %w", err)
		}
	}

	query := `SELECT ` + sessionColumns + `
        FROM sessions
        WHERE token_hash = $1
          AND (expires_at IS NULL OR expires_at > $2)
        ORDER BY created_at DESC
        LIMIT 1`

	s, _, err := r.scan(r.pg.Pool.QueryRow(ctx, query, hash, time.Now()))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("session by hash: %w", err)
	}
	log.Printf("[AUTH] session found id=%d user=%d role=%s", s.ID, s.UserID, s.Role)
	return s, nil
}

func (r *SessionRepository) scan(row pgx.Row) (*models.Session, string, error) {
	var (
		s    models.Session
		hash string
		role string
	)
	if err := row.Scan(&s.ID, &hash, &s.UserID, &role, &s.Token, &s.ExpiresAt); err != nil {
		return nil, "", err
	}
	s.Role = models.Role(role)
	return &s, hash, nil
}

func splitToken(plain string) (*int64, string, error) {
	plain = strings.TrimSpace(plain)
	if plain == "" {
		return nil, "", errors.New("empty token")
	}

	idx := strings.Index(plain, "|")
	if idx <= 0 {
		return nil, plain, nil
	}
	secret := plain[idx+1:]
	if secret == "" {
		return nil, "", errors.New("empty token secret")
	}
	id, err := strconv.ParseInt(plain[:idx], 10, 64)
	if err != nil {
		return nil, secret, nil
	}
	return &id, secret, nil
}

func hashSecret(secret string) string {
	return fmt.Sprintf("%x", sha256.Sum256([]byte(secret)))
}
