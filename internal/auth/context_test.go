package auth

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/isdelr/watchlist/internal/models"
	"github.com/isdelr/watchlist/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubUsers implements services.UserServiceProvider for middleware tests.
type stubUsers struct {
	services.UserServiceProvider
	users map[int64]models.User
	err   error
}

func (s *stubUsers) GetUserByID(id int64) (models.User, error) {
	if s.err != nil {
		return models.User{}, s.err
	}
	if u, ok := s.users[id]; ok {
		return u, nil
	}
	return models.User{}, services.ErrNotFound
}

func identityProbe(got **Identity) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*got = FromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})
}

func TestLoadSession(t *testing.T) {
	m := NewSessionManager("secret", false)
	users := &stubUsers{users: map[int64]models.User{1: {ID: 1, Name: "Admin", Username: "admin"}}}

	tests := []struct {
		name     string
		session  *Session
		wantUser bool
	}{
		{"anonymous", nil, false},
		{"known user", &Session{UserID: 1}, true},
		{"deleted user", &Session{UserID: 99}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.session != nil {
				req = roundTrip(t, m, tt.session)
			}

			var got *Identity
			rec := httptest.NewRecorder()
			LoadSession(m, users)(identityProbe(&got)).ServeHTTP(rec, req)

			require.NotNil(t, got)
			assert.Equal(t, tt.wantUser, got.IsAuthenticated())
			if tt.wantUser {
				assert.Equal(t, "admin", got.User.Username)
			}
		})
	}
}

func TestLoadSession_StoreFailure(t *testing.T) {
	m := NewSessionManager("secret", false)
	users := &stubUsers{err: errors.New("disk on fire")}

	var got *Identity
	rec := httptest.NewRecorder()
	LoadSession(m, users)(identityProbe(&got)).ServeHTTP(rec, roundTrip(t, m, &Session{UserID: 1}))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Nil(t, got)
}

func TestRequireLogin(t *testing.T) {
	m := NewSessionManager("secret", false)
	users := &stubUsers{users: map[int64]models.User{1: {ID: 1, Username: "admin"}}}
	reached := false
	protected := LoadSession(m, users)(RequireLogin(m)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reached = true
	})))

	t.Run("anonymous is redirected with a notice", func(t *testing.T) {
		reached = false
		rec := httptest.NewRecorder()
		protected.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/settings", nil))

		assert.False(t, reached)
		assert.Equal(t, http.StatusSeeOther, rec.Code)
		assert.Equal(t, "/login", rec.Header().Get("Location"))

		next := httptest.NewRequest(http.MethodGet, "/login", nil)
		for _, c := range rec.Result().Cookies() {
			next.AddCookie(c)
		}
		assert.Equal(t, []string{LoginRequiredMessage}, m.Load(next).Flashes)
	})

	t.Run("logged in passes through", func(t *testing.T) {
		reached = false
		rec := httptest.NewRecorder()
		protected.ServeHTTP(rec, roundTrip(t, m, &Session{UserID: 1}))
		assert.True(t, reached)
	})
}

func TestFromContext_DefaultsToAnonymous(t *testing.T) {
	id := FromContext(httptest.NewRequest(http.MethodGet, "/", nil).Context())
	require.NotNil(t, id)
	assert.False(t, id.IsAuthenticated())
	assert.NotNil(t, id.Session)
}
