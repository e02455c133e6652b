package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/keyprint/authserver/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newKeystrokeRouter() *chi.Mux {
	r := chi.NewRouter()
	r.Route("/api", func(r chi.Router) {
		KeystrokeRouter(r, services.NewKeystrokeService(nil))
	})
	return r
}

func postAPI(h http.Handler, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) ErrorResponse {
	t.Helper()
	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func TestEnrollAPI_Accepts(t *testing.T) {
	r := newKeystrokeRouter()

	cases := map[string]struct {
		body  string
		count int
	}{
		"numbers":      {`{"username":"a","events":[1,2,3]}`, 3},
		"objects":      {`{"username":"a","events":[{"key":"a","down_at":0,"up_at":90}]}`, 1},
		"empty events": {`{"username":"a","events":[]}`, 0},
		"empty name":   {`{"username":"","events":[1]}`, 1},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			rec := postAPI(r, "/api/enroll", tc.body)
			require.Equal(t, http.StatusOK, rec.Code)

			var resp map[string]any
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.Equal(t, "ok", resp["status"])
			assert.Equal(t, true, resp["received"])
			assert.Equal(t, float64(tc.count), resp["event_count"])
		})
	}
}

func TestEnrollAPI_Rejects(t *testing.T) {
	r := newKeystrokeRouter()

	for name, body := range map[string]string{
		"empty":          "",
		"whitespace":     "  \n",
		"malformed":      `{"username":`,
		"null":           `null`,
		"array":          `[1,2]`,
		"missing events": `{"username":"a"}`,
		"missing name":   `{"events":[1]}`,
		"null events":    `{"username":"a","events":null}`,
	} {
		t.Run(name, func(t *testing.T) {
			rec := postAPI(r, "/api/enroll", body)
			require.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, "error", decodeError(t, rec).Status)
		})
	}
}

func TestEnrollAPI_WrongShapeNamesField(t *testing.T) {
	r := newKeystrokeRouter()

	cases := map[string]struct {
		body    string
		message string
	}{
		"events string":   {`{"username":"a","events":"abc"}`, "events must be an array"},
		"events object":   {`{"username":"a","events":{}}`, "events must be an array"},
		"username object": {`{"username":{},"events":[]}`, "username must be a string"},
		"username number": {`{"username":7,"events":[]}`, "username must be a string"},
		"top-level array": {`[1,2]`, "request body must be a JSON object"},
		"malformed":       {`{"username":`, "invalid JSON body"},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			rec := postAPI(r, "/api/enroll", tc.body)
			require.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, ErrorResponse{Status: "error", Message: tc.message}, decodeError(t, rec))
		})
	}
}

func TestLoginTryAPI_AcceptsAnyNonEmptyJSON(t *testing.T) {
	r := newKeystrokeRouter()

	for _, body := range []string{`{"a":1}`, `[1]`, `"x"`, `7`, `true`} {
		rec := postAPI(r, "/api/login-try", body)
		require.Equal(t, http.StatusOK, rec.Code, body)
		assert.JSONEq(t, `{"status":"ok","received":true}`, rec.Body.String())
	}
}

func TestLoginTryAPI_Rejects(t *testing.T) {
	r := newKeystrokeRouter()

	for _, body := range []string{"", "{", "null", "{}", "[]", `""`, "0", "false"} {
		rec := postAPI(r, "/api/login-try", body)
		require.Equal(t, http.StatusBadRequest, rec.Code, body)
		assert.Equal(t, "error", decodeError(t, rec).Status)
	}
}

func TestKeystrokeAPI_MethodNotAllowed(t *testing.T) {
	r := newKeystrokeRouter()

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/enroll", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}
