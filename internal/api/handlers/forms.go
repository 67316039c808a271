package handlers

import "net/http"

// Messages flashed by the watchlist site.
const (
	msgInvalidInput       = "Invalid input."
	msgInvalidCredentials = "Invalid username or password."
	msgLoginSuccess       = "Login success."
	msgGoodbye            = "Goodbye."
	msgUsernameExists     = "Username exists. Try again."
	msgUserCreated        = "New user created."
	msgItemCreated        = "New item created."
	msgItemUpdated        = "Item updated."
	msgItemDeleted        = "Item deleted."
	msgSettingsUpdated    = "Settings updated."
)

// LoginForm is the body of POST /login.
type LoginForm struct {
	Username string `validate:"required"`
	Password string `validate:"required"`
}

// SignupForm is the body of POST /signup.
type SignupForm struct {
	Name     string `validate:"max=20"`
	Username string `validate:"required,max=20"`
	Password string `validate:"required"`
}

// MovieCreateForm is the body of POST /watchlist.
type MovieCreateForm struct {
	Title string `validate:"required,max=60"`
	Year  string `validate:"required,max=4"`
}

// MovieEditForm is the body of POST /watchlist/movie/edit/{id}. The year must
// be exactly four characters, stricter than on create.
type MovieEditForm struct {
	Title string `validate:"required,max=60"`
	Year  string `validate:"required,len=4"`
}

// SettingsForm is the body of POST /settings.
type SettingsForm struct {
	Name string `validate:"required,max=20"`
}

func serverError(w http.ResponseWriter, msg string) {
	http.Error(w, msg, http.StatusInternalServerError)
}
