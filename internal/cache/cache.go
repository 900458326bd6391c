// Package cache keeps a local read-through snapshot of listings so
// they can be browsed without a network round trip. Reads against the
// remote store always re-fetch; the snapshot is refreshed afterwards
// and only consulted when explicitly asked for.
package cache

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"propview/internal/property"
)

// Cache is a sqlite-backed listing snapshot.
type Cache struct {
	db *sql.DB
}

// DefaultPath returns the cache database path: ~/.config/pv/listings.db
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("finding home directory: %w", err)
	}
	return filepath.Join(home, ".config", "pv", "listings.db"), nil
}

// Open opens (or creates) the cache database at path.
func Open(path string) (*Cache, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("creating cache directory: %w", err)
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("opening cache: %w", err)
	}

	if err := migrate(db); err != nil {
		closeErr := db.Close()
		if closeErr != nil {
			return nil, fmt.Errorf("%w (also failed to close: %v)", err, closeErr)
		}
		return nil, err
	}

	return &Cache{db: db}, nil
}

// Close closes the underlying database.
func (c *Cache) Close() error {
	return c.db.Close()
}

func migrate(db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS listings (
			id TEXT PRIMARY KEY,
			title TEXT NOT NULL,
			location TEXT NOT NULL,
			price INTEGER NOT NULL,
			description TEXT,
			bedroom INTEGER,
			bathroom INTEGER,
			area REAL,
			image_url TEXT,
			contact TEXT,
			created_at TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS cache_meta (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		)`,
	}
	for _, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("running migration: %w", err)
		}
	}
	return nil
}

// Replace swaps the snapshot for props and records the refresh time.
func (c *Cache) Replace(props []*property.Property) error {
	tx, err := c.db.Begin()
	if err != nil {
		return fmt.Errorf("starting transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if _, err := tx.Exec("DELETE FROM listings"); err != nil {
		return fmt.Errorf("clearing listings: %w", err)
	}

	for _, p := range props {
		_, err := tx.Exec(
			`INSERT INTO listings
				(id, title, location, price, description, bedroom, bathroom, area, image_url, contact, created_at)
				VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			p.ID, p.Title, p.Location, p.Price,
			nullString(p.Description), p.Bedroom, p.Bathroom, p.Area,
			nullString(p.ImageURL), nullString(p.Contact),
			p.CreatedAt.UTC().Format(time.RFC3339Nano),
		)
		if err != nil {
			return fmt.Errorf("inserting listing %s: %w", p.ID, err)
		}
	}

	_, err = tx.Exec(
		"INSERT INTO cache_meta (key, value) VALUES ('refreshed_at', ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value",
		time.Now().UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("recording refresh time: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing snapshot: %w", err)
	}
	return nil
}

// List returns the cached listings newest-created first, along with
// the time the snapshot was refreshed. An empty cache returns a zero
// refresh time.
func (c *Cache) List() ([]*property.Property, time.Time, error) {
	rows, err := c.db.Query(
		`SELECT id, title, location, price, description, bedroom, bathroom, area, image_url, contact, created_at
			FROM listings ORDER BY created_at DESC`,
	)
	if err != nil {
		return nil, time.Time{}, fmt.Errorf("querying listings: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	props := []*property.Property{}
	for rows.Next() {
		p, err := scanListing(rows)
		if err != nil {
			return nil, time.Time{}, fmt.Errorf("scanning listing: %w", err)
		}
		props = append(props, p)
	}
	if err := rows.Err(); err != nil {
		return nil, time.Time{}, fmt.Errorf("iterating listings: %w", err)
	}

	refreshed, err := c.refreshedAt()
	if err != nil {
		return nil, time.Time{}, err
	}
	return props, refreshed, nil
}

func (c *Cache) refreshedAt() (time.Time, error) {
	var value string
	err := c.db.QueryRow("SELECT value FROM cache_meta WHERE key = 'refreshed_at'").Scan(&value)
	if err == sql.ErrNoRows {
		return time.Time{}, nil
	}
	if err != nil {
		return time.Time{}, fmt.Errorf("reading refresh time: %w", err)
	}

	t, err := time.Parse(time.RFC3339Nano, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing refresh time: %w", err)
	}
	return t, nil
}

// scanListing scans a property from a cache row.
func scanListing(row interface{ Scan(...interface{}) error }) (*property.Property, error) {
	var p property.Property
	var description, imageURL, contact sql.NullString
	var bedroom, bathroom sql.NullInt64
	var area sql.NullFloat64
	var createdAt string

	err := row.Scan(
		&p.ID, &p.Title, &p.Location, &p.Price,
		&description, &bedroom, &bathroom, &area,
		&imageURL, &contact, &createdAt,
	)
	if err != nil {
		return nil, err
	}

	if description.Valid {
		p.Description = description.String
	}
	if bedroom.Valid {
		p.Bedroom = &bedroom.Int64
	}
	if bathroom.Valid {
		p.Bathroom = &bathroom.Int64
	}
	if area.Valid {
		p.Area = &area.Float64
	}
	if imageURL.Valid {
		p.ImageURL = imageURL.String
	}
	if contact.Valid {
		p.Contact = contact.String
	}

	t, err := time.Parse(time.RFC3339Nano, createdAt)
	if err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	p.CreatedAt = t

	return &p, nil
}

func nullString(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}
