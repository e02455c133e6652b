package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/keyprint/authserver/internal/auth"
	"github.com/keyprint/authserver/internal/services"
	"github.com/keyprint/authserver/internal/store"
)

const testSessionSecret = "keyprint_test_session_secret_0123456789"

type memoryUserRepo struct {
	hashes map[string]string
	err    error
}

func (m *memoryUserRepo) FindByUsername(_ context.Context, username string) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	hash, ok := m.hashes[username]
	if !ok {
		return "", store.ErrNotFound
	}
	return hash, nil
}

func (m *memoryUserRepo) Insert(_ context.Context, username, _, passwordHash string) (int64, error) {
	if m.err != nil {
		return 0, m.err
	}
	if _, ok := m.hashes[username]; ok {
		return 0, store.ErrDuplicateUsername
	}
	m.hashes[username] = passwordHash
	return int64(len(m.hashes)), nil
}

func (m *memoryUserRepo) Ping(context.Context) error { return m.err }

func newPageRouter(t *testing.T, withSessions bool) (*chi.Mux, *memoryUserRepo) {
	t.Helper()
	repo := &memoryUserRepo{hashes: map[string]string{}}
	var sessions *SessionManager
	if withSessions {
		sessions = NewSessionManager(testSessionSecret, time.Minute)
	}
	r := chi.NewRouter()
	PageRouter(r, services.NewUserService(repo, auth.SHA256Hasher{}), sessions, nil)
	return r, repo
}

func doForm(h http.Handler, path string, form url.Values, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func doGet(h http.Handler, path string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func findCookie(rec *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, c := range rec.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}
