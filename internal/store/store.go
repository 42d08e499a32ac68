// Package store persists detection and event records to SQLite.
package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/ishant3366/minealert/internal/models"
)

const schema = `
CREATE TABLE IF NOT EXISTS detections (
	id             TEXT PRIMARY KEY,
	timestamp      DATETIME NOT NULL,
	latitude       REAL NOT NULL,
	longitude      REAL NOT NULL,
	classification TEXT NOT NULL,
	confidence     REAL NOT NULL,
	image_path     TEXT,
	x              INTEGER,
	y              INTEGER,
	width          INTEGER,
	height         INTEGER
);
CREATE INDEX IF NOT EXISTS idx_detections_classification ON detections(classification);

CREATE TABLE IF NOT EXISTS events (
	id       TEXT PRIMARY KEY,
	time     DATETIME NOT NULL,
	type     TEXT NOT NULL,
	message  TEXT NOT NULL,
	severity TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_events_time ON events(time);
`

// Store wraps a SQLite database holding detections and events.
type Store struct {
	db   *sql.DB
	path string
}

// Open initializes the database at the given path, creating the parent
// directory and schema as needed. Use ":memory:" for an ephemeral store.
func Open(path string) (*Store, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("failed to create directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to set busy_timeout: %w", err)
	}
	if path != ":memory:" {
		if _, err := db.Exec("PRAGMA journal_mode = WAL"); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to set journal_mode: %w", err)
		}
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	return &Store{db: db, path: path}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// SaveDetection inserts a detection record.
func (s *Store) SaveDetection(d *models.Detection) error {
	_, err := s.db.Exec(
		`INSERT INTO detections (id, timestamp, latitude, longitude, classification, confidence, image_path, x, y, width, height)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		d.ID, d.Timestamp.UTC(), d.Latitude, d.Longitude, d.Classification, d.Confidence,
		nullString(d.ImagePath), nullInt(d.X), nullInt(d.Y), nullInt(d.Width), nullInt(d.Height),
	)
	if err != nil {
		return fmt.Errorf("failed to save detection: %w", err)
	}
	return nil
}

// SaveEvent inserts an event record.
func (s *Store) SaveEvent(e *models.Event) error {
	_, err := s.db.Exec(
		`INSERT INTO events (id, time, type, message, severity) VALUES (?, ?, ?, ?, ?)`,
		e.ID, e.Time.UTC(), e.Type, e.Message, e.Severity,
	)
	if err != nil {
		return fmt.Errorf("failed to save event: %w", err)
	}
	return nil
}

// ListDetections returns all detections, newest first.
func (s *Store) ListDetections() ([]models.Detection, error) {
	return s.queryDetections(`SELECT id, timestamp, latitude, longitude, classification, confidence, image_path, x, y, width, height
		FROM detections ORDER BY timestamp DESC`)
}

// ListDetectionsByClassification returns detections of one classification,
// newest first.
func (s *Store) ListDetectionsByClassification(classification string) ([]models.Detection, error) {
	return s.queryDetections(`SELECT id, timestamp, latitude, longitude, classification, confidence, image_path, x, y, width, height
		FROM detections WHERE classification = ? ORDER BY timestamp DESC`, classification)
}

func (s *Store) queryDetections(query string, args ...any) ([]models.Detection, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query detections: %w", err)
	}
	defer rows.Close()

	var out []models.Detection
	for rows.Next() {
		var d models.Detection
		var ts time.Time
		var imagePath sql.NullString
		var x, y, w, h sql.NullInt64
		if err := rows.Scan(&d.ID, &ts, &d.Latitude, &d.Longitude, &d.Classification, &d.Confidence,
			&imagePath, &x, &y, &w, &h); err != nil {
			return nil, fmt.Errorf("failed to scan detection: %w", err)
		}
		d.Timestamp = ts
		d.ImagePath = imagePath.String
		d.X, d.Y = int(x.Int64), int(y.Int64)
		d.Width, d.Height = int(w.Int64), int(h.Int64)
		out = append(out, d)
	}
	return out, rows.Err()
}

// DetectionStats counts detections per known classification.
func (s *Store) DetectionStats() (map[string]int, error) {
	stats := map[string]int{
		models.ClassLandmine:    0,
		models.ClassMetalDebris: 0,
		models.ClassSafeZone:    0,
	}
	rows, err := s.db.Query(`SELECT classification, COUNT(*) FROM detections GROUP BY classification`)
	if err != nil {
		return nil, fmt.Errorf("failed to query stats: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var class string
		var count int
		if err := rows.Scan(&class, &count); err != nil {
			return nil, fmt.Errorf("failed to scan stats: %w", err)
		}
		stats[class] = count
	}
	return stats, rows.Err()
}

// ListEvents returns the most recent events, newest first. A limit <= 0
// returns everything.
func (s *Store) ListEvents(limit int) ([]models.Event, error) {
	query := `SELECT id, time, type, message, severity FROM events ORDER BY time DESC`
	var rows *sql.Rows
	var err error
	if limit > 0 {
		rows, err = s.db.Query(query+` LIMIT ?`, limit)
	} else {
		rows, err = s.db.Query(query)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query events: %w", err)
	}
	defer rows.Close()

	var out []models.Event
	for rows.Next() {
		var e models.Event
		if err := rows.Scan(&e.ID, &e.Time, &e.Type, &e.Message, &e.Severity); err != nil {
			return nil, fmt.Errorf("failed to scan event: %w", err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func nullString(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func nullInt(v int) any {
	if v == 0 {
		return nil
	}
	return v
}
