package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/isdelr/watchlist/internal/auth"
	"github.com/isdelr/watchlist/internal/services"
	"github.com/isdelr/watchlist/internal/validation"
	"github.com/isdelr/watchlist/internal/view"
	"github.com/rs/zerolog/log"
)

// WatchlistHandler handles the movie watchlist pages.
type WatchlistHandler struct {
	service services.MovieServiceProvider
	view    *view.Responder
}

// NewWatchlistHandler creates a new WatchlistHandler.
func NewWatchlistHandler(service services.MovieServiceProvider, responder *view.Responder) *WatchlistHandler {
	return &WatchlistHandler{service: service, view: responder}
}

// List renders every movie. Anonymous visitors may view.
func (h *WatchlistHandler) List(w http.ResponseWriter, r *http.Request) {
	movies, err := h.service.GetAllMovies()
	if err != nil {
		log.Error().Err(err).Msg("Failed to retrieve movies")
		serverError(w, "Failed to retrieve movies")
		return
	}
	h.view.Render(w, r, "watchlist", http.StatusOK, map[string]interface{}{"movies": movies})
}

// Create adds a movie. Anonymous posts are bounced back to the list untouched.
func (h *WatchlistHandler) Create(w http.ResponseWriter, r *http.Request) {
	if !auth.FromContext(r.Context()).IsAuthenticated() {
		h.view.Redirect(w, r, "/watchlist", "")
		return
	}

	form := MovieCreateForm{Title: r.FormValue("title"), Year: r.FormValue("year")}
	if verr := validation.ValidateStruct(&form); verr != nil {
		log.Debug().Str("reason", verr.Error()).Msg("Rejected new movie")
		h.view.Redirect(w, r, "/watchlist", msgInvalidInput)
		return
	}

	if _, err := h.service.CreateMovie(form.Title, form.Year); err != nil {
		log.Error().Err(err).Msg("Failed to create movie")
		serverError(w, "Failed to create movie")
		return
	}
	h.view.Redirect(w, r, "/watchlist", msgItemCreated)
}

// ShowEdit renders the edit form for one movie.
func (h *WatchlistHandler) ShowEdit(w http.ResponseWriter, r *http.Request) {
	id, ok := movieID(r)
	if !ok {
		h.view.NotFound(w, r)
		return
	}
	movie, err := h.service.GetMovieByID(id)
	if err != nil {
		h.lookupFailed(w, r, id, err)
		return
	}
	h.view.Render(w, r, "edit", http.StatusOK, map[string]interface{}{"movie": movie})
}

// Edit updates one movie after checking it exists and the input is valid.
func (h *WatchlistHandler) Edit(w http.ResponseWriter, r *http.Request) {
	id, ok := movieID(r)
	if !ok {
		h.view.NotFound(w, r)
		return
	}
	if _, err := h.service.GetMovieByID(id); err != nil {
		h.lookupFailed(w, r, id, err)
		return
	}

	form := MovieEditForm{Title: r.FormValue("title"), Year: r.FormValue("year")}
	if verr := validation.ValidateStruct(&form); verr != nil {
		log.Debug().Str("reason", verr.Error()).Int64("movie_id", id).Msg("Rejected movie edit")
		h.view.Redirect(w, r, fmt.Sprintf("/watchlist/movie/edit/%d", id), msgInvalidInput)
		return
	}

	if _, err := h.service.UpdateMovie(id, form.Title, form.Year); err != nil {
		h.lookupFailed(w, r, id, err)
		return
	}
	h.view.Redirect(w, r, "/watchlist", msgItemUpdated)
}

// Delete removes one movie.
func (h *WatchlistHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := movieID(r)
	if !ok {
		h.view.NotFound(w, r)
		return
	}
	if err := h.service.DeleteMovie(id); err != nil {
		h.lookupFailed(w, r, id, err)
		return
	}
	h.view.Redirect(w, r, "/watchlist", msgItemDeleted)
}

func (h *WatchlistHandler) lookupFailed(w http.ResponseWriter, r *http.Request, id int64, err error) {
	if errors.Is(err, services.ErrNotFound) {
		log.Warn().Int64("movie_id", id).Msg("Movie not found")
		h.view.NotFound(w, r)
		return
	}
	log.Error().Err(err).Int64("movie_id", id).Msg("Failed to access movie")
	serverError(w, "Failed to access movie")
}

func movieID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	return id, err == nil && id > 0
}
