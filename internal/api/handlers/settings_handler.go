package handlers

import (
	"net/http"

	"github.com/isdelr/watchlist/internal/auth"
	"github.com/isdelr/watchlist/internal/services"
	"github.com/isdelr/watchlist/internal/validation"
	"github.com/isdelr/watchlist/internal/view"
	"github.com/rs/zerolog/log"
)

// SettingsHandler lets the logged-in user change their display name.
type SettingsHandler struct {
	service services.UserServiceProvider
	view    *view.Responder
}

// NewSettingsHandler creates a new SettingsHandler.
func NewSettingsHandler(service services.UserServiceProvider, responder *view.Responder) *SettingsHandler {
	return &SettingsHandler{service: service, view: responder}
}

// Show renders the settings form.
func (h *SettingsHandler) Show(w http.ResponseWriter, r *http.Request) {
	h.view.Render(w, r, "settings", http.StatusOK, nil)
}

// Update changes the current user's name. Requires RequireLogin upstream.
func (h *SettingsHandler) Update(w http.ResponseWriter, r *http.Request) {
	form := SettingsForm{Name: r.FormValue("name")}
	if verr := validation.ValidateStruct(&form); verr != nil {
		h.view.Redirect(w, r, "/settings", msgInvalidInput)
		return
	}

	id := auth.FromContext(r.Context())
	user, err := h.service.UpdateName(id.User.ID, form.Name)
	if err != nil {
		log.Error().Err(err).Int64("user_id", id.User.ID).Msg("Failed to update user")
		serverError(w, "Failed to update settings")
		return
	}
	id.User = &user

	h.view.Redirect(w, r, "/watchlist", msgSettingsUpdated)
}
