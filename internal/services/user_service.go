package services

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/isdelr/watchlist/internal/models"
)

// UserServiceProvider defines the interface for user services.
type UserServiceProvider interface {
	GetUserByID(id int64) (models.User, error)
	GetUserByUsername(username string) (models.User, error)
	CreateUser(name, username, password string) (models.User, error)
	UpdateName(id int64, name string) (models.User, error)
	UpdatePassword(id int64, newPassword string) error
	AuthenticateUser(username, password string) (models.User, error)
	CountUsers() (int, error)
}

// UserService provides business logic for user management.
type UserService struct {
	db           *sql.DB
	eventService EventServiceProvider
}

// NewUserService creates a new UserService.
func NewUserService(db *sql.DB, eventService EventServiceProvider) *UserService {
	return &UserService{db: db, eventService: eventService}
}

// GetUserByID retrieves a single user by their ID, including the password hash.
func (s *UserService) GetUserByID(id int64) (models.User, error) {
	row := s.db.QueryRow("SELECT id, name, username, password_hash FROM user WHERE id = ?", id)
	user, err := scanUser(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, fmt.Errorf("user with ID %d: %w", id, ErrNotFound)
	}
	return user, err
}

// GetUserByUsername retrieves a single user by exact username match.
func (s *UserService) GetUserByUsername(username string) (models.User, error) {
	row := s.db.QueryRow("SELECT id, name, username, password_hash FROM user WHERE username = ?", username)
	user, err := scanUser(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, fmt.Errorf("user %q: %w", username, ErrNotFound)
	}
	return user, err
}

// CreateUser creates a new user, hashing their password. Usernames must be unique.
func (s *UserService) CreateUser(name, username, password string) (models.User, error) {
	_, err := s.GetUserByUsername(username)
	if err == nil {
		return models.User{}, fmt.Errorf("user %q: %w", username, ErrUsernameTaken)
	}
	if !errors.Is(err, ErrNotFound) {
		return models.User{}, err
	}

	user := models.User{Name: name, Username: username}
	if err := user.SetPassword(password); err != nil {
		return models.User{}, fmt.Errorf("failed to hash password: %w", err)
	}

	stmt, err := s.db.Prepare("INSERT INTO user(name, username, password_hash) VALUES(?, ?, ?)")
	if err != nil {
		return models.User{}, err
	}
	defer stmt.Close()

	res, err := stmt.Exec(user.Name, user.Username, user.PasswordHash)
	if err != nil {
		// Lost a race with a concurrent signup for the same name.
		if isUniqueViolation(err) {
			return models.User{}, fmt.Errorf("user %q: %w", username, ErrUsernameTaken)
		}
		return models.User{}, err
	}
	if user.ID, err = res.LastInsertId(); err != nil {
		return models.User{}, err
	}

	recordEvent(s.eventService, "user.signup", "info", fmt.Sprintf("User '%s' signed up.", user.Username))
	return user, nil
}

// UpdateName changes the display name of a user.
func (s *UserService) UpdateName(id int64, name string) (models.User, error) {
	res, err := s.db.Exec("UPDATE user SET name = ? WHERE id = ?", name, id)
	if err != nil {
		return models.User{}, err
	}
	if n, err := res.RowsAffected(); err != nil {
		return models.User{}, err
	} else if n == 0 {
		return models.User{}, fmt.Errorf("user with ID %d: %w", id, ErrNotFound)
	}

	recordEvent(s.eventService, "user.settings", "info", fmt.Sprintf("User %d changed their name.", id))
	return s.GetUserByID(id)
}

// UpdatePassword hashes and sets a new password for a user.
func (s *UserService) UpdatePassword(id int64, newPassword string) error {
	var user models.User
	if err := user.SetPassword(newPassword); err != nil {
		return fmt.Errorf("failed to hash new password: %w", err)
	}

	res, err := s.db.Exec("UPDATE user SET password_hash = ? WHERE id = ?", user.PasswordHash, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("user with ID %d: %w", id, ErrNotFound)
	}
	return nil
}

// AuthenticateUser verifies a user's credentials. An unknown username and a
// wrong password produce the same ErrInvalidCredentials.
func (s *UserService) AuthenticateUser(username, password string) (models.User, error) {
	user, err := s.GetUserByUsername(username)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return models.User{}, ErrInvalidCredentials
		}
		return models.User{}, err
	}

	if user.Username != username || !user.ValidatePassword(password) {
		return models.User{}, ErrInvalidCredentials
	}

	recordEvent(s.eventService, "user.login", "info", fmt.Sprintf("User '%s' logged in.", user.Username))
	return user, nil
}

// CountUsers returns the number of registered users.
func (s *UserService) CountUsers() (int, error) {
	var n int
	err := s.db.QueryRow("SELECT COUNT(*) FROM user").Scan(&n)
	return n, err
}

func scanUser(scanner interface{ Scan(...interface{}) error }) (models.User, error) {
	var user models.User
	var name, hash sql.NullString
	if err := scanner.Scan(&user.ID, &name, &user.Username, &hash); err != nil {
		return models.User{}, err
	}
	user.Name = name.String
	user.PasswordHash = hash.String
	return user, nil
}
