package services

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/isdelr/watchlist/internal/models"
)

// MovieServiceProvider defines the interface for watchlist services.
type MovieServiceProvider interface {
	GetAllMovies() ([]models.Movie, error)
	GetMovieByID(id int64) (models.Movie, error)
	CreateMovie(title, year string) (models.Movie, error)
	UpdateMovie(id int64, title, year string) (models.Movie, error)
	DeleteMovie(id int64) error
	CountMovies() (int, error)
}

// MovieService provides business logic for the watchlist.
type MovieService struct {
	db           *sql.DB
	eventService EventServiceProvider
}

// NewMovieService creates a new MovieService.
func NewMovieService(db *sql.DB, eventService EventServiceProvider) *MovieService {
	return &MovieService{db: db, eventService: eventService}
}

// GetAllMovies retrieves every movie in insertion order.
func (s *MovieService) GetAllMovies() ([]models.Movie, error) {
	rows, err := s.db.Query("SELECT id, title, year FROM movie ORDER BY id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	movies := []models.Movie{}
	for rows.Next() {
		movie, err := scanMovie(rows)
		if err != nil {
			return nil, err
		}
		movies = append(movies, movie)
	}
	return movies, rows.Err()
}

// GetMovieByID retrieves a single movie by its ID.
func (s *MovieService) GetMovieByID(id int64) (models.Movie, error) {
	movie, err := scanMovie(s.db.QueryRow("SELECT id, title, year FROM movie WHERE id = ?", id))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Movie{}, fmt.Errorf("movie with ID %d: %w", id, ErrNotFound)
	}
	return movie, err
}

// CreateMovie inserts a new movie.
func (s *MovieService) CreateMovie(title, year string) (models.Movie, error) {
	stmt, err := s.db.Prepare("INSERT INTO movie(title, year) VALUES(?, ?)")
	if err != nil {
		return models.Movie{}, err
	}
	defer stmt.Close()

	res, err := stmt.Exec(title, year)
	if err != nil {
		return models.Movie{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return models.Movie{}, err
	}

	recordEvent(s.eventService, "movie.create", "info", fmt.Sprintf("Movie '%s' (%s) added.", title, year))
	return models.Movie{ID: id, Title: title, Year: year}, nil
}

// UpdateMovie replaces the title and year of an existing movie.
func (s *MovieService) UpdateMovie(id int64, title, year string) (models.Movie, error) {
	res, err := s.db.Exec("UPDATE movie SET title = ?, year = ? WHERE id = ?", title, year, id)
	if err != nil {
		return models.Movie{}, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return models.Movie{}, err
	}
	if n == 0 {
		return models.Movie{}, fmt.Errorf("movie with ID %d: %w", id, ErrNotFound)
	}

	recordEvent(s.eventService, "movie.update", "info", fmt.Sprintf("Movie %d updated to '%s' (%s).", id, title, year))
	return models.Movie{ID: id, Title: title, Year: year}, nil
}

// DeleteMovie removes a movie from the database.
func (s *MovieService) DeleteMovie(id int64) error {
	res, err := s.db.Exec("DELETE FROM movie WHERE id = ?", id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("movie with ID %d: %w", id, ErrNotFound)
	}

	recordEvent(s.eventService, "movie.delete", "warn", fmt.Sprintf("Movie %d was deleted.", id))
	return nil
}

// CountMovies returns the number of movies on the watchlist.
func (s *MovieService) CountMovies() (int, error) {
	var n int
	err := s.db.QueryRow("SELECT COUNT(*) FROM movie").Scan(&n)
	return n, err
}

func scanMovie(scanner interface{ Scan(...interface{}) error }) (models.Movie, error) {
	var movie models.Movie
	var title, year sql.NullString
	if err := scanner.Scan(&movie.ID, &title, &year); err != nil {
		return models.Movie{}, err
	}
	movie.Title = title.String
	movie.Year = year.String
	return movie, nil
}
