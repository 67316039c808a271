package api

import (
	"net/http"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogin_Failures(t *testing.T) {
	env := newWatchlistEnv(t, 0)
	_, err := env.users.CreateUser("Admin", "admin", "pass")
	require.NoError(t, err)

	tests := []struct {
		name     string
		username string
		password string
		notice   string
	}{
		{"unknown username", "ghost", "pass", "Invalid username or password."},
		{"wrong password", "admin", "nope", "Invalid username or password."},
		{"empty username", "", "pass", "Invalid input."},
		{"empty password", "admin", "", "Invalid input."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := newBrowser(t, env.router)
			rec := b.post("/login", url.Values{"username": {tt.username}, "password": {tt.password}})
			assert.Equal(t, http.StatusSeeOther, rec.Code)
			assert.Equal(t, "/login", rec.Header().Get("Location"))

			p, _ := b.page("/login")
			assert.Equal(t, []string{tt.notice}, p.Notices)
			assert.Nil(t, p.User)
		})
	}
}

func TestLogout_ClearsSession(t *testing.T) {
	env := newWatchlistEnv(t, 0)
	b := env.loggedIn(t)

	p, _ := b.page("/watchlist")
	require.NotNil(t, p.User)

	rec := b.do(http.MethodGet, "/logout", nil)
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/watchlist", rec.Header().Get("Location"))

	p, _ = b.page("/watchlist")
	assert.Nil(t, p.User)
	assert.Equal(t, []string{"Goodbye."}, p.Notices)

	// Logging out again while anonymous is harmless.
	rec = b.do(http.MethodGet, "/logout", nil)
	assert.Equal(t, http.StatusSeeOther, rec.Code)
}

func TestSignup_DuplicateUsername(t *testing.T) {
	env := newWatchlistEnv(t, 0)
	_, err := env.users.CreateUser("First", "taken", "pw")
	require.NoError(t, err)
	before, err := env.users.CountUsers()
	require.NoError(t, err)

	b := newBrowser(t, env.router)
	rec := b.post("/signup", url.Values{"name": {"Second"}, "username": {"taken"}, "password": {"other"}})
	assert.Equal(t, "/signup", rec.Header().Get("Location"))

	p, _ := b.page("/signup")
	assert.Equal(t, "signup", p.View)
	assert.Equal(t, []string{"Username exists. Try again."}, p.Notices)

	after, err := env.users.CountUsers()
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestSignup_InvalidInput(t *testing.T) {
	env := newWatchlistEnv(t, 0)

	for _, form := range []url.Values{
		{"name": {"n"}, "username": {""}, "password": {"pw"}},
		{"name": {"n"}, "username": {"u"}, "password": {""}},
		{"name": {"n"}, "username": {strings.Repeat("u", 21)}, "password": {"pw"}},
		{"name": {strings.Repeat("n", 21)}, "username": {"u"}, "password": {"pw"}},
	} {
		b := newBrowser(t, env.router)
		rec := b.post("/signup", form)
		assert.Equal(t, "/signup", rec.Header().Get("Location"))
		p, _ := b.page("/signup")
		assert.Equal(t, []string{"Invalid input."}, p.Notices)
	}

	n, err := env.users.CountUsers()
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestSettings(t *testing.T) {
	env := newWatchlistEnv(t, 0)
	b := env.loggedIn(t)

	p, code := b.page("/settings")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "settings", p.View)

	for _, name := range []string{"", strings.Repeat("x", 21)} {
		rec := b.post("/settings", url.Values{"name": {name}})
		assert.Equal(t, "/settings", rec.Header().Get("Location"))
		p, _ = b.page("/settings")
		assert.Equal(t, []string{"Invalid input."}, p.Notices)
	}

	rec := b.post("/settings", url.Values{"name": {"Kaijie"}})
	assert.Equal(t, "/watchlist", rec.Header().Get("Location"))

	p, _ = b.page("/watchlist")
	require.NotNil(t, p.User)
	assert.Equal(t, "Kaijie", p.User.Name)
	assert.Equal(t, []string{"Settings updated."}, p.Notices)
}

func TestLogin_RateLimited(t *testing.T) {
	env := newWatchlistEnv(t, 2)
	b := newBrowser(t, env.router)

	form := url.Values{"username": {"ghost"}, "password": {"x"}}
	assert.Equal(t, http.StatusSeeOther, b.post("/login", form).Code)
	assert.Equal(t, http.StatusSeeOther, b.post("/login", form).Code)
	assert.Equal(t, http.StatusTooManyRequests, b.post("/login", form).Code)

	// Viewing the form is not limited.
	_, code := b.page("/login")
	assert.Equal(t, http.StatusOK, code)
}

func TestWatchlist_MetricsEndpoint(t *testing.T) {
	env := newWatchlistEnv(t, 0)
	b := newBrowser(t, env.router)
	b.page("/watchlist")
	rec := b.do(http.MethodGet, "/metrics", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "http_requests_total")
}
