package session

import (
	"crypto/hmac"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Session errors
var (
	ErrInvalidSession = errors.New("invalid session")
	ErrExpiredSession = errors.New("session expired")
)

// csrfTokenBytes is the entropy of the per-session CSRF token (32 hex chars).
const csrfTokenBytes = 16

// Flash is a one-shot notice queued in the session and shown on the next
// rendered page.
type Flash struct {
	Message  string `json:"message"`
	Category string `json:"category"`
}

// Claims defines the signed session cookie content.
type Claims struct {
	UserID    int64   `json:"userId,omitempty"`
	Username  string  `json:"username,omitempty"`
	Role      string  `json:"role,omitempty"`
	CSRFToken string  `json:"csrfToken,omitempty"`
	Flashes   []Flash `json:"flashes,omitempty"`
	jwt.RegisteredClaims
}

// Session holds per-client state decoded from the session cookie. Mutations
// mark the session dirty; the manager only rewrites the cookie for dirty
// sessions.
type Session struct {
	claims Claims
	dirty  bool
}

// New creates an empty, anonymous session.
func New() *Session {
	return &Session{}
}

// IsAuthenticated reports whether the session carries a logged-in identity.
func (s *Session) IsAuthenticated() bool {
	return s.claims.UserID > 0
}

// UserID returns the logged-in user's ID, or 0 for anonymous sessions.
func (s *Session) UserID() int64 {
	return s.claims.UserID
}

// Username returns the logged-in user's username.
func (s *Session) Username() string {
	return s.claims.Username
}

// Role returns the logged-in user's role.
func (s *Session) Role() string {
	return s.claims.Role
}

// SetIdentity replaces all session state with a fresh identity. Flashes and
// the CSRF token of the prior (anonymous) session are dropped so nothing
// carries over across a login boundary.
func (s *Session) SetIdentity(userID int64, username, role string) {
	s.claims = Claims{
		UserID:   userID,
		Username: username,
		Role:     role,
	}
	s.dirty = true
}

// Clear wipes all session state.
func (s *Session) Clear() {
	s.claims = Claims{}
	s.dirty = true
}

// CSRFToken returns the per-session CSRF token, generating it on first use.
// The token is reused for the lifetime of the session.
func (s *Session) CSRFToken() string {
	if s.claims.CSRFToken == "" {
		buf := make([]byte, csrfTokenBytes)
		if _, err := rand.Read(buf); err != nil {
			// crypto/rand never fails on supported platforms
			panic(fmt.Sprintf("session: crypto/rand failed: %v", err))
		}
		s.claims.CSRFToken = hex.EncodeToString(buf)
		s.dirty = true
	}
	return s.claims.CSRFToken
}

// ValidateCSRF compares a form-supplied token against the session token in
// constant time. A session without a token rejects every candidate.
func (s *Session) ValidateCSRF(token string) bool {
	if token == "" || s.claims.CSRFToken == "" {
		return false
	}
	return hmac.Equal([]byte(token), []byte(s.claims.CSRFToken))
}

// AddFlash queues a notice for the next rendered page.
func (s *Session) AddFlash(message, category string) {
	s.claims.Flashes = append(s.claims.Flashes, Flash{Message: message, Category: category})
	s.dirty = true
}

// TakeFlashes drains all queued flashes.
func (s *Session) TakeFlashes() []Flash {
	if len(s.claims.Flashes) == 0 {
		return nil
	}
	flashes := s.claims.Flashes
	s.claims.Flashes = nil
	s.dirty = true
	return flashes
}

// IsDirty reports whether the session changed since it was decoded.
func (s *Session) IsDirty() bool {
	return s.dirty
}

// isEmpty reports whether the session carries no state worth persisting.
func (s *Session) isEmpty() bool {
	return s.claims.UserID == 0 && s.claims.CSRFToken == "" && len(s.claims.Flashes) == 0
}

// Config defines session manager settings.
type Config struct {
	Secret     []byte
	CookieName string
	TTL        time.Duration
	Secure     bool
}

// Manager encodes sessions into HMAC-signed cookies and back.
type Manager struct {
	config Config
}

// NewManager creates a new session manager.
func NewManager(config Config) *Manager {
	if config.CookieName == "" {
		config.CookieName = "studentdesk_session"
	}
	if config.TTL <= 0 {
		config.TTL = 24 * time.Hour
	}
	return &Manager{config: config}
}

// CookieName returns the name of the session cookie.
func (m *Manager) CookieName() string {
	return m.config.CookieName
}

// Encode signs the session state into a compact cookie value.
func (m *Manager) Encode(s *Session) (string, error) {
	now := time.Now()
	claims := s.claims
	claims.RegisteredClaims = jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(now.Add(m.config.TTL)),
		IssuedAt:  jwt.NewNumericDate(now),
		ID:        uuid.New().String(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, &claims)
	signed, err := token.SignedString(m.config.Secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign session: %w", err)
	}
	return signed, nil
}

// Decode parses and verifies a cookie value into a session.
func (m *Manager) Decode(value string) (*Session, error) {
	token, err := jwt.ParseWithClaims(value, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return m.config.Secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredSession
		}
		return nil, ErrInvalidSession
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidSession
	}

	return &Session{claims: *claims}, nil
}

// Load reads the session cookie from a request. A missing, tampered or
// expired cookie yields a fresh anonymous session rather than an error.
func (m *Manager) Load(r *http.Request) *Session {
	cookie, err := r.Cookie(m.config.CookieName)
	if err != nil || cookie.Value == "" {
		return New()
	}

	sess, err := m.Decode(cookie.Value)
	if err != nil {
		return New()
	}
	return sess
}

// Save writes the session cookie when the session was mutated. A cleared,
// empty session drops the cookie instead.
func (m *Manager) Save(w http.ResponseWriter, s *Session) error {
	if !s.dirty {
		return nil
	}

	cookie := &http.Cookie{
		Name:     m.config.CookieName,
		Path:     "/",
		HttpOnly: true,
		Secure:   m.config.Secure,
		SameSite: http.SameSiteLaxMode,
	}

	if s.isEmpty() {
		cookie.Value = ""
		cookie.MaxAge = -1
	} else {
		value, err := m.Encode(s)
		if err != nil {
			return err
		}
		cookie.Value = value
		cookie.MaxAge = int(m.config.TTL.Seconds())
	}

	http.SetCookie(w, cookie)
	s.dirty = false
	return nil
}
