package api

import (
	"database/sql"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/isdelr/watchlist/internal/auth"
	"github.com/isdelr/watchlist/internal/database"
	"github.com/isdelr/watchlist/internal/models"
	"github.com/isdelr/watchlist/internal/services"
	"github.com/stretchr/testify/require"
)

type page struct {
	View    string          `json:"view"`
	User    *models.User    `json:"user"`
	Notices []string        `json:"notices"`
	Data    json.RawMessage `json:"data"`
}

// browser replays cookies between requests like a real client would.
type browser struct {
	t       *testing.T
	handler http.Handler
	cookies map[string]*http.Cookie
}

func newBrowser(t *testing.T, h http.Handler) *browser {
	return &browser{t: t, handler: h, cookies: map[string]*http.Cookie{}}
}

func (b *browser) do(method, path string, form url.Values) *httptest.ResponseRecorder {
	b.t.Helper()
	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}
	req := httptest.NewRequest(method, path, body)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	for _, c := range b.cookies {
		req.AddCookie(c)
	}

	rec := httptest.NewRecorder()
	b.handler.ServeHTTP(rec, req)

	for _, c := range rec.Result().Cookies() {
		if c.MaxAge < 0 || c.Value == "" {
			delete(b.cookies, c.Name)
			continue
		}
		b.cookies[c.Name] = c
	}
	return rec
}

func (b *browser) post(path string, form url.Values) *httptest.ResponseRecorder {
	b.t.Helper()
	if form == nil {
		form = url.Values{}
	}
	return b.do(http.MethodPost, path, form)
}

func (b *browser) page(path string) (page, int) {
	b.t.Helper()
	rec := b.do(http.MethodGet, path, nil)
	var p page
	require.NoError(b.t, json.Unmarshal(rec.Body.Bytes(), &p), rec.Body.String())
	return p, rec.Code
}

type watchlistEnv struct {
	db     *sql.DB
	users  *services.UserService
	movies *services.MovieService
	events *services.EventService
	router http.Handler
}

func newWatchlistEnv(t *testing.T, loginRateLimit int) *watchlistEnv {
	t.Helper()
	db, err := database.New(filepath.Join(t.TempDir(), "watchlist.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, database.MigrateWatchlist(db))

	events := services.NewEventService(db)
	env := &watchlistEnv{
		db:     db,
		users:  services.NewUserService(db, events),
		movies: services.NewMovieService(db, events),
		events: events,
	}
	env.router = NewWatchlistRouter(WatchlistDeps{
		Users:          env.users,
		Movies:         env.movies,
		Sessions:       auth.NewSessionManager("test-secret", false),
		LoginRateLimit: loginRateLimit,
	})
	return env
}

// loggedIn returns a browser with an authenticated session for a fresh user.
func (e *watchlistEnv) loggedIn(t *testing.T) *browser {
	t.Helper()
	_, err := e.users.CreateUser("Admin", "admin", "pass")
	require.NoError(t, err)

	b := newBrowser(t, e.router)
	rec := b.post("/login", url.Values{"username": {"admin"}, "password": {"pass"}})
	require.Equal(t, http.StatusSeeOther, rec.Code)
	require.Equal(t, "/watchlist", rec.Header().Get("Location"))
	return b
}

func (e *watchlistEnv) movieCount(t *testing.T) int {
	t.Helper()
	n, err := e.movies.CountMovies()
	require.NoError(t, err)
	return n
}
