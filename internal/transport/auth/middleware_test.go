package auth

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"finedesk/internal/models"
)

type fakeRepo struct {
	sess  *models.Session
	err   error
	token string
}

func (f *fakeRepo) FindSessionByPlainToken(ctx context.Context, plainToken string) (*models.Session, error) {
	f.token = plainToken
	return f.sess, f.err
}

func TestSessionMiddleware_setsSession(t *testing.T) {
	fr := &fakeRepo{sess: &models.Session{ID: 1, UserID: 123, Role: models.RoleDriver, Token: "upstream"}}

	var got models.Session
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s, err := GetSession(r.Context())
		if err != nil {
			t.Errorf("expected session present, got err: %v", err)
		}
		got = s
		w.WriteHeader(http.StatusOK)
	})

	srv := SessionMiddleware(fr)(handler)

	req := httptest.NewRequest("GET", "/driver/fines", nil)
	req.Header.Set("Authorization", "Bearer 1|mytoken")
	rr := httptest.NewRecorder()

	srv.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d", rr.Code)
	}
	if got.UserID != 123 || got.Token != "upstream" {
		t.Fatalf("session = %+v", got)
	}
	if fr.token != "1|mytoken" {
		t.Fatalf("looked up %q", fr.token)
	}
}

func TestSessionMiddleware_queryToken(t *testing.T) {
	fr := &fakeRepo{sess: &models.Session{ID: 2, UserID: 5, Token: "upstream"}}
	srv := SessionMiddleware(fr)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest("GET", "/admin/charged-fines/pdf?token=2|abc", nil)
	rr := httptest.NewRecorder()
	srv.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK || fr.token != "2|abc" {
		t.Fatalf("code = %d token = %q", rr.Code, fr.token)
	}
}

func TestSessionMiddleware_blockWhenMissing(t *testing.T) {
	for name, fr := range map[string]*fakeRepo{
		"missing": {},
		"error":   {err: errors.New("not found")},
		"expired": {sess: &models.Session{Token: "x", ExpiresAt: ptrTime(time.Now().Add(-time.Minute))}},
		"no api":  {sess: &models.Session{ID: 3}},
	} {
		srv := SessionMiddleware(fr)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			t.Errorf("%s: should not reach handler", name)
		}))

		req := httptest.NewRequest("GET", "/driver/fines", nil)
		req.Header.Set("Authorization", "Bearer tok")
		rr := httptest.NewRecorder()
		srv.ServeHTTP(rr, req)
		if rr.Code != http.StatusUnauthorized {
			t.Fatalf("%s: expected 401, got %d", name, rr.Code)
		}
		if !strings.Contains(rr.Body.String(), `"redirect":"/login"`) {
			t.Fatalf("%s: body = %s", name, rr.Body.String())
		}
	}
}

func TestSessionMiddleware_allowsOptions(t *testing.T) {
	reached := false
	srv := SessionMiddleware(&fakeRepo{})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reached = true
		w.WriteHeader(http.StatusNoContent)
	}))

	req := httptest.NewRequest("OPTIONS", "/driver/payments/pay", nil)
	rr := httptest.NewRecorder()
	srv.ServeHTTP(rr, req)
	if rr.Code != http.StatusNoContent || !reached {
		t.Fatalf("expected handler to be reached on OPTIONS, got %d", rr.Code)
	}
}

func TestRequireRole(t *testing.T) {
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) })
	h := RequireRole(inner, models.RoleOfficer, models.RoleAdmin)

	for role, want := range map[models.Role]int{
		models.RoleOfficer: http.StatusOK,
		models.RoleAdmin:   http.StatusOK,
		models.RoleDriver:  http.StatusForbidden,
	} {
		req := httptest.NewRequest("GET", "/officer/appeals", nil)
		req = req.WithContext(context.WithValue(req.Context(), SessionKey, models.Session{Role: role, Token: "t"}))
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, req)
		if rr.Code != want {
			t.Fatalf("%s: got %d, want %d", role, rr.Code, want)
		}
	}

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest("GET", "/officer/appeals", nil))
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("no session: got %d", rr.Code)
	}
}

func ptrTime(t time.Time) *time.Time { return &t }
