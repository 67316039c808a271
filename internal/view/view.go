// Package view turns handler results into responses. Handlers describe what to
// show (a named view plus data, or a redirect with a one-shot notice) and a
// Renderer decides how it is drawn.
package view

import (
	"net/http"

	"github.com/goccy/go-json"
	"github.com/isdelr/watchlist/internal/auth"
	"github.com/isdelr/watchlist/internal/models"
	"github.com/rs/zerolog/log"
)

// Page is a fully resolved view ready for rendering.
type Page struct {
	View    string                 `json:"view"`
	Status  int                    `json:"-"`
	User    *models.User           `json:"user"`
	Notices []string               `json:"notices"`
	Data    map[string]interface{} `json:"data,omitempty"`
}

// Renderer draws a Page onto the response.
type Renderer interface {
	Render(w http.ResponseWriter, p Page) error
}

// JSONRenderer writes pages as JSON documents.
type JSONRenderer struct{}

// Render implements Renderer.
func (JSONRenderer) Render(w http.ResponseWriter, p Page) error {
	return WriteJSON(w, p.Status, p)
}

// WriteJSON writes v as a JSON response with the given status.
func WriteJSON(w http.ResponseWriter, status int, v interface{}) error {
	body, err := json.Marshal(v)
	if err != nil {
		return err
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, err = w.Write(append(body, '\n'))
	return err
}

// Responder builds pages and redirects for the session-backed site.
type Responder struct {
	sessions *auth.SessionManager
	renderer Renderer
}

// NewResponder creates a Responder. A nil renderer defaults to JSONRenderer.
func NewResponder(sessions *auth.SessionManager, renderer Renderer) *Responder {
	if renderer == nil {
		renderer = JSONRenderer{}
	}
	return &Responder{sessions: sessions, renderer: renderer}
}

// Render shows a view, consuming any pending notices.
func (rs *Responder) Render(w http.ResponseWriter, r *http.Request, name string, status int, data map[string]interface{}) {
	id := auth.FromContext(r.Context())
	notices := id.Session.PopFlashes()
	if len(notices) > 0 {
		if err := rs.sessions.Save(w, id.Session); err != nil {
			log.Error().Err(err).Msg("Failed to save session")
		}
	} else {
		notices = []string{}
	}

	page := Page{View: name, Status: status, User: id.User, Notices: notices, Data: data}
	if err := rs.renderer.Render(w, page); err != nil {
		log.Error().Err(err).Str("view", name).Msg("Failed to render view")
	}
}

// Redirect sends a 303 to url, queueing flash for the next page when non-empty.
func (rs *Responder) Redirect(w http.ResponseWriter, r *http.Request, url, flash string) {
	id := auth.FromContext(r.Context())
	if flash != "" {
		id.Session.AddFlash(flash)
	}
	if err := rs.sessions.Save(w, id.Session); err != nil {
		log.Error().Err(err).Msg("Failed to save session")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, url, http.StatusSeeOther)
}

// NotFound renders the 404 view.
func (rs *Responder) NotFound(w http.ResponseWriter, r *http.Request) {
	rs.Render(w, r, "404", http.StatusNotFound, nil)
}
