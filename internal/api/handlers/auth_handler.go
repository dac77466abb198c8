package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/wardwatch/statuspanel/internal/domain/entities"
	apperrors "github.com/wardwatch/statuspanel/pkg/errors"
)

// AuthGate is the slice of the session gate the HTTP layer needs
type AuthGate interface {
	Login(ctx context.Context, username, password string) (*entities.Session, error)
	Check(ctx context.Context, token string) bool
	Logout(ctx context.Context, token string) error
}

// AuthHandler handles login, session-check and logout requests
type AuthHandler struct {
	gate       AuthGate
	cookieName string
	ttl        time.Duration
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(gate AuthGate, cookieName string, ttl time.Duration) *AuthHandler {
	return &AuthHandler{
		gate:       gate,
		cookieName: cookieName,
		ttl:        ttl,
	}
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Login handles POST /login. The body may be JSON or form-encoded; the
// admin page posts forms, programmatic clients post JSON.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var payload loginRequest

	contentType := r.Header.Get("Content-Type")
	if strings.Contains(contentType, "application/json") {
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			respondWithJSON(w, http.StatusBadRequest, map[string]interface{}{
				"ok": false, "error": "invalid request payload",
			})
			return
		}
	} else {
		if err := r.ParseForm(); err != nil {
			respondWithJSON(w, http.StatusBadRequest, map[string]interface{}{
				"ok": false, "error": "invalid request payload",
			})
			return
		}
		payload.Username = r.PostFormValue("username")
		payload.Password = r.PostFormValue("password")
	}

	session, err := h.gate.Login(r.Context(), payload.Username, payload.Password)
	if err != nil {
		status := http.StatusUnauthorized
		if apperrors.TypeOf(err) == apperrors.ErrorTypeValidation {
			status = http.StatusBadRequest
		}
		message := "invalid credentials"
		var appErr *apperrors.AppError
		if errors.As(err, &appErr) {
			message = appErr.Message
		}
		respondWithJSON(w, status, map[string]interface{}{"ok": false, "error": message})
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     h.cookieName,
		Value:    session.Token,
		Path:     "/",
		MaxAge:   int(h.ttl.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	respondWithJSON(w, http.StatusOK, map[string]interface{}{"ok": true})
}

// SessionCheck handles GET /session-check; it never errors
func (h *AuthHandler) SessionCheck(w http.ResponseWriter, r *http.Request) {
	authenticated := false
	if cookie, err := r.Cookie(h.cookieName); err == nil {
		authenticated = h.gate.Check(r.Context(), cookie.Value)
	}
	respondWithJSON(w, http.StatusOK, map[string]bool{"authenticated": authenticated})
}

// Logout handles POST /logout; logging out without a session still succeeds
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(h.cookieName); err == nil {
		if err := h.gate.Logout(r.Context(), cookie.Value); err != nil {
			respondWithAppError(w, err)
			return
		}
	}

	http.SetCookie(w, &http.Cookie{
		Name:     h.cookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
	respondWithJSON(w, http.StatusOK, map[string]bool{"ok": true})
}
