package database

import (
	"database/sql"

	_ "modernc.org/sqlite" // SQLite driver
)

// New opens the file-backed SQLite store and verifies the connection.
func New(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", "file:"+path+"?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, err
	}
	// SQLite serialises writers; a single connection avoids SQLITE_BUSY churn.
	db.SetMaxOpenConns(1)
	if err = db.Ping(); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

const eventsSchema = `
	CREATE TABLE IF NOT EXISTS events (
		id TEXT NOT NULL PRIMARY KEY,
		type TEXT NOT NULL,
		level TEXT NOT NULL,
		message TEXT NOT NULL,
		created_at DATETIME NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_events_created_at ON events(created_at);
`

// MigrateWatchlist creates the watchlist site schema.
func MigrateWatchlist(db *sql.DB) error {
	const sqlStmt = `
	CREATE TABLE IF NOT EXISTS user (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name VARCHAR(20),
		username VARCHAR(20) UNIQUE,
		password_hash VARCHAR(128)
	);

	CREATE TABLE IF NOT EXISTS movie (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		title VARCHAR(60),
		year VARCHAR(4)
	);
	`
	_, err := db.Exec(sqlStmt + eventsSchema)
	return err
}

// MigrateResourceAPI creates the resource API schema. The user and
// user_group tables have no handlers yet.
func MigrateResourceAPI(db *sql.DB) error {
	const sqlStmt = `
	CREATE TABLE IF NOT EXISTS user (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		email VARCHAR(80) UNIQUE,
		cdsid VARCHAR(40) UNIQUE,
		password_hash VARCHAR(128),
		username VARCHAR(50),
		user_type VARCHAR(20)
	);

	CREATE TABLE IF NOT EXISTS user_group (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		group_name VARCHAR(60),
		description VARCHAR(255)
	);

	CREATE TABLE IF NOT EXISTS resource (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		resource_name VARCHAR(30),
		status VARCHAR(20),
		description VARCHAR(255),
		resource_type VARCHAR(20)
	);
	`
	_, err := db.Exec(sqlStmt + eventsSchema)
	return err
}
