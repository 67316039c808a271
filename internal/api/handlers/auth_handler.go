package handlers

import (
	"errors"
	"net/http"

	"github.com/isdelr/watchlist/internal/auth"
	"github.com/isdelr/watchlist/internal/services"
	"github.com/isdelr/watchlist/internal/validation"
	"github.com/isdelr/watchlist/internal/view"
	"github.com/rs/zerolog/log"
)

// AuthHandler handles login, logout and signup for the watchlist site.
type AuthHandler struct {
	service services.UserServiceProvider
	view    *view.Responder
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(service services.UserServiceProvider, responder *view.Responder) *AuthHandler {
	return &AuthHandler{service: service, view: responder}
}

// ShowLogin renders the login form.
func (h *AuthHandler) ShowLogin(w http.ResponseWriter, r *http.Request) {
	h.view.Render(w, r, "login", http.StatusOK, nil)
}

// Login checks the submitted credentials and binds the session to the user.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	form := LoginForm{
		Username: r.FormValue("username"),
		Password: r.FormValue("password"),
	}
	if verr := validation.ValidateStruct(&form); verr != nil {
		h.view.Redirect(w, r, "/login", msgInvalidInput)
		return
	}

	user, err := h.service.AuthenticateUser(form.Username, form.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			log.Warn().Str("username", form.Username).Msg("Failed authentication attempt")
			h.view.Redirect(w, r, "/login", msgInvalidCredentials)
			return
		}
		log.Error().Err(err).Str("username", form.Username).Msg("Failed to authenticate user")
		serverError(w, "Failed to log in")
		return
	}

	auth.FromContext(r.Context()).Session.Login(user.ID)
	h.view.Redirect(w, r, "/watchlist", msgLoginSuccess)
}

// Logout clears the session user unconditionally.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	auth.FromContext(r.Context()).Session.Logout()
	h.view.Redirect(w, r, "/watchlist", msgGoodbye)
}

// ShowSignup renders the signup form.
func (h *AuthHandler) ShowSignup(w http.ResponseWriter, r *http.Request) {
	h.view.Render(w, r, "signup", http.StatusOK, nil)
}

// Signup registers a new user unless the username is taken.
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	form := SignupForm{
		Name:     r.FormValue("name"),
		Username: r.FormValue("username"),
		Password: r.FormValue("password"),
	}
	if verr := validation.ValidateStruct(&form); verr != nil {
		h.view.Redirect(w, r, "/signup", msgInvalidInput)
		return
	}

	if _, err := h.service.CreateUser(form.Name, form.Username, form.Password); err != nil {
		if errors.Is(err, services.ErrUsernameTaken) {
			h.view.Redirect(w, r, "/signup", msgUsernameExists)
			return
		}
		log.Error().Err(err).Str("username", form.Username).Msg("Failed to register user")
		serverError(w, "Failed to register user")
		return
	}

	h.view.Redirect(w, r, "/login", msgUserCreated)
}
