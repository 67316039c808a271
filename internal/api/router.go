package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/isdelr/watchlist/internal/api/handlers"
	"github.com/isdelr/watchlist/internal/auth"
	"github.com/isdelr/watchlist/internal/metrics"
	"github.com/isdelr/watchlist/internal/services"
	"github.com/isdelr/watchlist/internal/view"
	"github.com/isdelr/watchlist/internal/websocket"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// WatchlistDeps is everything the watchlist site router needs.
type WatchlistDeps struct {
	Users          services.UserServiceProvider
	Movies         services.MovieServiceProvider
	Sessions       *auth.SessionManager
	Renderer       view.Renderer // nil renders JSON
	LoginRateLimit int           // attempts per minute per IP; <= 0 disables
}

// ResourceDeps is everything the resource API router needs.
type ResourceDeps struct {
	Resources   services.ResourceServiceProvider
	Events      services.EventServiceProvider
	Hub         *websocket.Hub
	CORSOrigins []string
}

func baseRouter(app string) *chi.Mux {
	r := chi.NewRouter()

	// Basic middleware stack
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(metrics.Middleware(app))
	return r
}

// NewWatchlistRouter creates the session-backed movie watchlist site.
func NewWatchlistRouter(deps WatchlistDeps) *chi.Mux {
	r := baseRouter("watchlist")
	r.Use(auth.LoadSession(deps.Sessions, deps.Users))

	responder := view.NewResponder(deps.Sessions, deps.Renderer)
	authHandler := handlers.NewAuthHandler(deps.Users, responder)
	watchlistHandler := handlers.NewWatchlistHandler(deps.Movies, responder)
	settingsHandler := handlers.NewSettingsHandler(deps.Users, responder)

	r.NotFound(responder.NotFound)

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/watchlist", http.StatusSeeOther)
	})

	r.Get("/watchlist", watchlistHandler.List)
	r.Post("/watchlist", watchlistHandler.Create)

	r.Group(func(r chi.Router) {
		r.Use(auth.RequireLogin(deps.Sessions))

		r.Route("/watchlist/movie", func(r chi.Router) {
			r.Get("/edit/{id}", watchlistHandler.ShowEdit)
			r.Post("/edit/{id}", watchlistHandler.Edit)
			r.Post("/delete/{id}", watchlistHandler.Delete)
		})

		r.Get("/settings", settingsHandler.Show)
		r.Post("/settings", settingsHandler.Update)
	})

	r.Group(func(r chi.Router) {
		if deps.LoginRateLimit > 0 {
			r.Use(httprate.LimitByIP(deps.LoginRateLimit, time.Minute))
		}
		r.Post("/login", authHandler.Login)
		r.Post("/signup", authHandler.Signup)
	})
	r.Get("/login", authHandler.ShowLogin)
	r.Get("/signup", authHandler.ShowSignup)
	r.Get("/logout", authHandler.Logout)

	r.Method(http.MethodGet, "/metrics", promhttp.Handler())
	return r
}

// NewResourceRouter creates the CORS-enabled resource JSON API.
func NewResourceRouter(deps ResourceDeps) *chi.Mux {
	r := baseRouter("rigapi")

	origins := deps.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	var publisher handlers.Publisher
	if deps.Hub != nil {
		publisher = deps.Hub
	}
	resourceHandler := handlers.NewResourceHandler(deps.Resources, publisher)
	eventHandler := handlers.NewEventHandler(deps.Events)

	r.Get("/ping", resourceHandler.Ping)
	r.Get("/resource", resourceHandler.GetAll)
	r.Post("/resource", resourceHandler.Create)
	r.Get("/events", eventHandler.GetRecent)

	if deps.Hub != nil {
		wsHandler := handlers.NewWebSocketHandler(deps.Hub)
		r.Get("/ws", wsHandler.Serve)
	}

	r.Method(http.MethodGet, "/metrics", promhttp.Handler())
	return r
}
