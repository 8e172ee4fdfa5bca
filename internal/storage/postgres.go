package storage

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/lib/pq"

	"github.com/friendlyLight/daily-learning-bot/internal/logger"
)

// PostgresStore keeps the delivered-id set in Postgres. Drop-in replacement
// for ProcessedLog when several runners share a database.
type PostgresStore struct {
	db *sql.DB
}

var _ Store = (*PostgresStore)(nil)

func NewPostgresStore(connectionString string) (*PostgresStore, error) {
	db, err := sql.Open("postgres", connectionString)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}

	store := &PostgresStore{db: db}
	if err := store.initSchema(); err != nil {
		return nil, fmt.Errorf("init schema: %w", err)
	}
	return store, nil
}

func (s *PostgresStore) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS processed_items (
		id TEXT PRIMARY KEY,
		delivered_at TIMESTAMP NOT NULL DEFAULT NOW()
	);

	CREATE INDEX IF NOT EXISTS idx_processed_items_delivered_at ON processed_items(delivered_at);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Load verifies the connection; membership queries go to the database.
func (s *PostgresStore) Load() error {
	var count int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM processed_items`).Scan(&count); err != nil {
		return fmt.Errorf("count processed items: %w", err)
	}
	logger.Debug("processed store loaded", "backend", "postgres", "ids", count)
	return nil
}

func (s *PostgresStore) Contains(id string) bool {
	var exists bool
	err := s.db.QueryRow(`SELECT EXISTS(SELECT 1 FROM processed_items WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		logger.Warn("processed membership query failed", "error", err)
		return false
	}
	return exists
}

// ContainsAny returns the subset of ids already delivered, in one round trip.
func (s *PostgresStore) ContainsAny(ids []string) (map[string]bool, error) {
	if len(ids) == 0 {
		return map[string]bool{}, nil
	}

	rows, err := s.db.Query(`SELECT id FROM processed_items WHERE id = ANY($1)`, pq.StringArray(ids))
	if err != nil {
		return nil, fmt.Errorf("query processed items: %w", err)
	}
	defer rows.Close()

	result := make(map[string]bool)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan id: %w", err)
		}
		result[id] = true
	}
	return result, rows.Err()
}

func (s *PostgresStore) Append(ids []string) error {
	now := time.Now()
	for _, id := range ids {
		if id == "" {
			continue
		}
		_, err := s.db.Exec(
			`INSERT INTO processed_items (id, delivered_at) VALUES ($1, $2) ON CONFLICT (id) DO NOTHING`,
			id, now,
		)
		if err != nil {
			return fmt.Errorf("insert processed id: %w", err)
		}
	}
	return nil
}

func (s *PostgresStore) Close() error {
	return s.db.Close()
}
