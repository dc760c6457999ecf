package auth

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/sessions"
)

const (
	SessionName       = "darkroom_session"
	EditorIDKey       = "editor_id"
	SessionCreatedKey = "created_at"

	SessionMaxAge = 86400 * 7 // 7 days
)

var (
	ErrNoSession = errors.New("no editor session")
)

// SessionManager issues the cookie that ties a browser to its editing
// sessions. The cookie carries only an opaque id; images and editor state
// stay on the server.
type SessionManager struct {
	store *sessions.CookieStore
}

func NewSessionManager(secret string) *SessionManager {
	if secret == "" {
		slog.Warn("SESSION_SECRET not set; editor sessions will not survive a restart")
		secret = generateSecret()
	}
	return &SessionManager{
		store: sessions.NewCookieStore([]byte(secret)),
	}
}

func generateSecret() string {
	b := make([]byte, 32)
	rand.Read(b)
	return base64.StdEncoding.EncodeToString(b)
}

// SaveID stores id in the session cookie.
func (sm *SessionManager) SaveID(w http.ResponseWriter, r *http.Request, id string) error {
	session, _ := sm.store.Get(r, SessionName)
	session.Values[EditorIDKey] = id
	session.Values[SessionCreatedKey] = time.Now().Unix()

	// Determine if we're on HTTPS
	isHTTPS := r.TLS != nil || r.Header.Get("X-Forwarded-Proto") == "https"

	session.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   SessionMaxAge,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   isHTTPS,
	}

	return session.Save(r, w)
}

// GetID returns the editor id stored in the cookie.
func (sm *SessionManager) GetID(r *http.Request) (string, error) {
	session, err := sm.store.Get(r, SessionName)
	if err != nil {
		_, cookieErr := r.Cookie(SessionName)
		slog.Warn("failed to decode session", "error", err, "host", r.Host, "has_cookie", cookieErr == nil)
		return "", err
	}

	val, ok := session.Values[EditorIDKey]
	if !ok {
		return "", ErrNoSession
	}

	id, ok := val.(string)
	if !ok || id == "" {
		return "", ErrNoSession
	}

	return id, nil
}

// EnsureID returns the cookie's editor id, issuing a new one when the
// request has none or carries a cookie that no longer decodes.
func (sm *SessionManager) EnsureID(w http.ResponseWriter, r *http.Request) (string, error) {
	if id, err := sm.GetID(r); err == nil {
		return id, nil
	}

	id := uuid.NewString()
	if err := sm.SaveID(w, r, id); err != nil {
		return "", err
	}
	return id, nil
}

// GetSessionCreatedAt returns the time the session was created.
// Returns zero time if the session is missing or invalid.
func (sm *SessionManager) GetSessionCreatedAt(r *http.Request) time.Time {
	session, err := sm.store.Get(r, SessionName)
	if err != nil {
		return time.Time{}
	}

	val, ok := session.Values[SessionCreatedKey]
	if !ok {
		return time.Time{}
	}

	unix, ok := val.(int64)
	if !ok {
		return time.Time{}
	}

	return time.Unix(unix, 0)
}

func (sm *SessionManager) ClearSession(w http.ResponseWriter, r *http.Request) error {
	session, _ := sm.store.Get(r, SessionName)
	session.Options.MaxAge = -1
	return session.Save(r, w)
}
