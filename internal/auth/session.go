package auth

import (
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// CookieName is the name of the session cookie.
const CookieName = "session"

const sessionTTL = 24 * time.Hour

// Claims defines the JWT claims stored in the session cookie.
type Claims struct {
	UserID  int64    `json:"uid,omitempty"`
	Flashes []string `json:"flashes,omitempty"`
	jwt.RegisteredClaims
}

// Session is the per-request view of the session cookie.
type Session struct {
	UserID  int64
	Flashes []string
}

// Login binds the session to a user.
func (s *Session) Login(userID int64) {
	s.UserID = userID
}

// Logout drops the user binding. Pending flashes survive so the next page can show them.
func (s *Session) Logout() {
	s.UserID = 0
}

// AddFlash queues a one-shot notice for the next rendered page.
func (s *Session) AddFlash(message string) {
	s.Flashes = append(s.Flashes, message)
}

// PopFlashes returns and clears the queued notices.
func (s *Session) PopFlashes() []string {
	flashes := s.Flashes
	s.Flashes = nil
	return flashes
}

func (s *Session) empty() bool {
	return s.UserID == 0 && len(s.Flashes) == 0
}

// SessionManager signs and verifies session cookies.
type SessionManager struct {
	key    []byte
	secure bool
	now    func() time.Time
}

// NewSessionManager creates a manager signing with secret. secure marks cookies HTTPS-only.
func NewSessionManager(secret string, secure bool) *SessionManager {
	return &SessionManager{key: []byte(secret), secure: secure, now: time.Now}
}

// Encode signs a session into a cookie value.
func (m *SessionManager) Encode(s *Session) (string, error) {
	claims := &Claims{
		UserID:  s.UserID,
		Flashes: s.Flashes,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(m.now()),
			ExpiresAt: jwt.NewNumericDate(m.now().Add(sessionTTL)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.key)
}

// Decode verifies a cookie value and returns the session it carries.
func (m *SessionManager) Decode(value string) (*Session, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(value, claims, func(token *jwt.Token) (interface{}, error) {
		return m.key, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(m.now))
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, fmt.Errorf("invalid session token")
	}
	return &Session{UserID: claims.UserID, Flashes: claims.Flashes}, nil
}

// Load reads the session from the request. A missing, tampered or expired
// cookie yields an empty session.
func (m *SessionManager) Load(r *http.Request) *Session {
	cookie, err := r.Cookie(CookieName)
	if err != nil || cookie.Value == "" {
		return &Session{}
	}
	s, err := m.Decode(cookie.Value)
	if err != nil {
		return &Session{}
	}
	return s
}

// Save writes the session cookie, or expires it when the session holds nothing.
func (m *SessionManager) Save(w http.ResponseWriter, s *Session) error {
	if s.empty() {
		http.SetCookie(w, &http.Cookie{
			Name:     CookieName,
			Value:    "",
			Path:     "/",
			MaxAge:   -1,
			HttpOnly: true,
			Secure:   m.secure,
			SameSite: http.SameSiteLaxMode,
		})
		return nil
	}

	value, err := m.Encode(s)
	if err != nil {
		return err
	}
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    value,
		Path:     "/",
		Expires:  m.now().Add(sessionTTL),
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}
