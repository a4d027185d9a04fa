package auth

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"finedesk/internal/models"
)

type ctxKey string

const SessionKey ctxKey = "session"

const LoginPath = "/login"

type SessionRepo interface {
	FindSessionByPlainToken(ctx context.Context, plainToken string) (*models.Session, error)
}

// SessionMiddleware resolves the bearer token (or the token query parameter)
// to a session and stores it in the request context. Requests without a
// valid session get 401 with a pointer to the login surface.
func SessionMiddleware(repo SessionRepo) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method == http.MethodOptions {
				next.ServeHTTP(w, r)
				return
			}

			var sess *models.Session
			if h := r.Header.Get("Authorization"); strings.HasPrefix(h, "Bearer ") {
				if tok := strings.TrimSpace(strings.TrimPrefix(h, "Bearer ")); tok != "" {
					s, err := repo.FindSessionByPlainToken(r.Context(), tok)
					if err != nil {
						log.Printf("[AUTH] session lookup (header) error: %v", err)
					}
					sess = s
				}
			}

			if sess == nil {
				if tok := r.URL.Query().Get("token"); tok != "" {
					s, err := repo.FindSessionByPlainToken(r.Context(), tok)
					if err != nil {
						log.Printf("[AUTH] session lookup (query) error: %v", err)
					}
					sess = s
				}
			}

			if sess == nil || sess.Token == "" || sess.Expired(time.Now()) {
				LoginRequired(w)
				return
			}

			ctx := context.WithValue(r.Context(), SessionKey, *sess)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireRole lets only sessions of one of roles through.
func RequireRole(next http.Handler, roles ...models.Role) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess, err := GetSession(r.Context())
		if err != nil {
			LoginRequired(w)
			return
		}
		for _, role := range roles {
			if sess.Role == role {
				next.ServeHTTP(w, r)
				return
			}
		}
		log.Printf("[AUTH] role %s denied for %s", sess.Role, r.URL.Path)
		writeJSON(w, http.StatusForbidden, map[string]string{"error": "forbidden"})
	})
}

// LoginRequired answers 401 and names the login route.
func LoginRequired(w http.ResponseWriter) {
	writeJSON(w, http.StatusUnauthorized, map[string]string{
		"error":    "login required",
		"redirect": LoginPath,
	})
}

func GetSession(ctx context.Context) (models.Session, error) {
	s, ok := ctx.Value(SessionKey).(models.Session)
	if !ok || s.Token == "" {
		return models.Session{}, errors.New("session not found in context")
	}
	return s, nil
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}
