package auth

import (
	"context"
	"errors"
	"net/http"

	"github.com/isdelr/watchlist/internal/models"
	"github.com/isdelr/watchlist/internal/services"
	"github.com/rs/zerolog/log"
)

// LoginRequiredMessage is flashed when an anonymous visitor hits a protected page.
const LoginRequiredMessage = "Please log in to access this page."

type contextKey string

const identityKey = contextKey("identity")

// Identity is the authentication state of one request, resolved once by LoadSession.
type Identity struct {
	Session *Session
	User    *models.User
}

// IsAuthenticated reports whether the request belongs to a logged-in user.
func (i *Identity) IsAuthenticated() bool {
	return i.User != nil
}

// FromContext returns the request identity. Without LoadSession in the chain
// it returns an anonymous identity with an empty session.
func FromContext(ctx context.Context) *Identity {
	if id, ok := ctx.Value(identityKey).(*Identity); ok {
		return id
	}
	return &Identity{Session: &Session{}}
}

// WithIdentity returns a copy of ctx carrying id.
func WithIdentity(ctx context.Context, id *Identity) context.Context {
	return context.WithValue(ctx, identityKey, id)
}

// LoadSession resolves the session cookie and the current user for every request.
func LoadSession(sessions *SessionManager, users services.UserServiceProvider) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := &Identity{Session: sessions.Load(r)}

			if uid := id.Session.UserID; uid != 0 {
				user, err := users.GetUserByID(uid)
				switch {
				case err == nil:
					id.User = &user
				case errors.Is(err, services.ErrNotFound):
					// Account vanished; continue anonymously.
					id.Session.Logout()
				default:
					log.Error().Err(err).Int64("user_id", uid).Msg("Failed to load session user")
					http.Error(w, "Internal Server Error", http.StatusInternalServerError)
					return
				}
			}

			next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), id)))
		})
	}
}

// RequireLogin redirects anonymous requests to the login page.
func RequireLogin(sessions *SessionManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := FromContext(r.Context())
			if !id.IsAuthenticated() {
				id.Session.AddFlash(LoginRequiredMessage)
				if err := sessions.Save(w, id.Session); err != nil {
					log.Error().Err(err).Msg("Failed to save session")
				}
				http.Redirect(w, r, "/login", http.StatusSeeOther)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
