package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/keyprint/authserver/internal/services"
	"github.com/keyprint/authserver/types"
)

var errEmptyBody = errors.New("missing JSON body")

// KeystrokeHandler serves the keystroke sample API.
type KeystrokeHandler struct {
	keystrokeService *services.KeystrokeService
	validate         *validator.Validate
}

func NewKeystrokeHandler(keystrokeService *services.KeystrokeService) *KeystrokeHandler {
	return &KeystrokeHandler{
		keystrokeService: keystrokeService,
		validate:         validator.New(),
	}
}

// KeystrokeRouter registers keystroke API routes on the given router.
func KeystrokeRouter(r chi.Router, keystrokeService *services.KeystrokeService) {
	handler := NewKeystrokeHandler(keystrokeService)

	r.Post("/enroll", handler.Enroll)
	r.Post("/login-try", handler.LoginTry)
}

func (h *KeystrokeHandler) Enroll(w http.ResponseWriter, r *http.Request) {
	body, err := readJSONBody(w, r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req types.EnrollRequest
	if err := json.Unmarshal(body, &req); err != nil {
		writeError(w, http.StatusBadRequest, decodeErrorMessage(err))
		return
	}
	if err := h.validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, "username and events are required")
		return
	}

	writeJSON(w, http.StatusOK, h.keystrokeService.Enroll(r.Context(), req))
}

func (h *KeystrokeHandler) LoginTry(w http.ResponseWriter, r *http.Request) {
	body, err := readJSONBody(w, r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var payload any
	if err := json.Unmarshal(body, &payload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if isEmptyJSON(payload) {
		writeError(w, http.StatusBadRequest, errEmptyBody.Error())
		return
	}

	writeJSON(w, http.StatusOK, h.keystrokeService.LoginTry(r.Context(), payload))
}

func readJSONBody(w http.ResponseWriter, r *http.Request) ([]byte, error) {
	if r.Body == nil {
		return nil, errEmptyBody
	}
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxJSONBody))
	if err != nil {
		return nil, errors.New("request body too large")
	}
	body = bytes.TrimSpace(body)
	if len(body) == 0 {
		return nil, errEmptyBody
	}
	return body, nil
}

// decodeErrorMessage names the offending field when the body is valid JSON
// of the wrong shape.
func decodeErrorMessage(err error) string {
	var typeErr *json.UnmarshalTypeError
	if !errors.As(err, &typeErr) {
		return "invalid JSON body"
	}
	switch typeErr.Field {
	case "":
		return "request body must be a JSON object"
	case "username":
		return "username must be a string"
	case "events":
		return "events must be an array"
	}
	return fmt.Sprintf("%s has the wrong type", typeErr.Field)
}

// isEmptyJSON reports whether a decoded payload carries nothing:
// null, false, zero, an empty string, or an empty object or array.
func isEmptyJSON(v any) bool {
	switch value := v.(type) {
	case nil:
		return true
	case bool:
		return !value
	case float64:
		return value == 0
	case string:
		return value == ""
	case map[string]any:
		return len(value) == 0
	case []any:
		return len(value) == 0
	}
	return false
}
