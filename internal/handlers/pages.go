package handlers

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"
	"github.com/keyprint/authserver/internal/services"
	"github.com/keyprint/authserver/internal/store"
	"go.uber.org/zap"
)

const (
	msgInvalidCredentials = "Invalid username or password. Please try again or register first."
	msgUsernameTaken      = "Username already exists. Choose another one."
	msgPasswordRequired   = "Password is required."
	msgSampleReceived     = "Typing sample received. Keystroke enrollment is not active yet."
	maxFormBody           = 64 << 10
)

// PageHandler serves the HTML login, registration and landing pages.
type PageHandler struct {
	userService *services.UserService
	sessions    *SessionManager
	logger      *zap.Logger
}

// NewPageHandler constructs a PageHandler. sessions may be nil.
func NewPageHandler(userService *services.UserService, sessions *SessionManager, logger *zap.Logger) *PageHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PageHandler{
		userService: userService,
		sessions:    sessions,
		logger:      logger,
	}
}

// PageRouter registers page routes on the given router.
func PageRouter(r chi.Router, userService *services.UserService, sessions *SessionManager, logger *zap.Logger) {
	handler := NewPageHandler(userService, sessions, logger)

	r.Get("/", handler.LoginPage)
	r.Post("/", handler.Login)
	r.Get("/register", handler.RegisterPage)
	r.Post("/register", handler.Register)
	r.Get("/home", handler.Home)
	r.Get("/enroll", handler.EnrollPage)
	r.Post("/enroll", handler.Enroll)
	r.Get("/logout", handler.Logout)
}

func (h *PageHandler) LoginPage(w http.ResponseWriter, r *http.Request) {
	render(w, h.logger, http.StatusOK, "login.html", pageData{Title: "Log in"})
}

// Login checks the submitted credentials. Unknown users and wrong passwords
// get the same message.
func (h *PageHandler) Login(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxFormBody)
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	username := r.PostFormValue("username")
	password := r.PostFormValue("password")

	if err := h.userService.Authenticate(r.Context(), username, password); err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			render(w, h.logger, http.StatusUnauthorized, "login.html", pageData{
				Title:    "Log in",
				Username: username,
				Error:    msgInvalidCredentials,
			})
			return
		}
		internalError(w, h.logger, "authenticate user", err)
		return
	}

	if h.sessions != nil {
		if err := h.sessions.Issue(w, username); err != nil {
			internalError(w, h.logger, "issue session", err)
			return
		}
	}

	h.logger.Info("user logged in", zap.String("username", username))
	http.Redirect(w, r, "/home?"+url.Values{"username": {username}}.Encode(), http.StatusSeeOther)
}

func (h *PageHandler) RegisterPage(w http.ResponseWriter, r *http.Request) {
	render(w, h.logger, http.StatusOK, "register.html", pageData{Title: "Register"})
}

// Register creates an account and sends the user to the login page.
func (h *PageHandler) Register(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxFormBody)
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	username := r.PostFormValue("username")
	email := r.PostFormValue("email")
	password := r.PostFormValue("password")

	if _, err := h.userService.Register(r.Context(), username, email, password); err != nil {
		if errors.Is(err, store.ErrDuplicateUsername) {
			render(w, h.logger, http.StatusConflict, "register.html", pageData{
				Title:    "Register",
				Username: username,
				Error:    msgUsernameTaken,
			})
			return
		}
		internalError(w, h.logger, "register user", err)
		return
	}

	h.logger.Info("user registered", zap.String("username", username))
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// Home greets the user named in the query, falling back to the session
// cookie when the query carries no name.
func (h *PageHandler) Home(w http.ResponseWriter, r *http.Request) {
	username := r.URL.Query().Get("username")
	if username == "" && h.sessions != nil {
		if name, err := h.sessions.Username(r); err == nil {
			username = name
		}
	}
	if username == "" {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	render(w, h.logger, http.StatusOK, "home.html", pageData{Title: "Home", Username: username})
}

func (h *PageHandler) EnrollPage(w http.ResponseWriter, r *http.Request) {
	render(w, h.logger, http.StatusOK, "enroll.html", pageData{
		Title:    "Keystroke enrollment",
		Username: r.URL.Query().Get("username"),
	})
}

// Enroll acknowledges a typed password sample. The password is neither
// checked nor stored.
func (h *PageHandler) Enroll(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxFormBody)
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	data := pageData{
		Title:    "Keystroke enrollment",
		Username: r.PostFormValue("username"),
	}

	if r.PostFormValue("password") == "" {
		data.Error = msgPasswordRequired
		render(w, h.logger, http.StatusBadRequest, "enroll.html", data)
		return
	}

	data.Message = msgSampleReceived
	render(w, h.logger, http.StatusOK, "enroll.html", data)
}

func (h *PageHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if h.sessions != nil {
		h.sessions.Clear(w)
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
