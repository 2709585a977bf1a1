package scores

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"
)

// uniqueViolation is the PostgreSQL error code for a duplicate key.
const uniqueViolation = "23505"


// PostgresStore keeps the leaderboard in PostgreSQL
type PostgresStore struct {
	db *sql.DB
}

// NewPostgresStore connects and makes sure the schema exists
func NewPostgresStore(connectionString string) (*PostgresStore, error) {
	db, err := sql.Open("postgres", connectionString)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	store := &PostgresStore{db: db}
	if err := store.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return store, nil
}

const scoreSchema = `
CREATE TABLE IF NOT EXISTS scores (
	id TEXT PRIMARY KEY,
	level TEXT NOT NULL,
	player TEXT NOT NULL,
	seconds DOUBLE PRECISION NOT NULL,
	barrels INTEGER NOT NULL,
	total INTEGER NOT NULL,
	at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS scores_level_seconds ON scores (level, seconds, at);
`

func (ps *PostgresStore) initSchema() error {
	_, err := ps.db.Exec(scoreSchema)
	return err
}

// Submit saves a record
func (ps *PostgresStore) Submit(rec Record) (Record, error) {
	if err := rec.Normalize(); err != nil {
		return Record{}, err
	}

	query := `
	INSERT INTO scores (id, level, player, seconds, barrels, total, at)
	VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := ps.db.Exec(query, rec.ID, rec.Level, rec.Player, rec.Seconds, rec.Barrels, rec.Total, rec.At)
	if isUniqueViolation(err) {
		return Record{}, fmt.Errorf("%w: duplicate id %s", ErrInvalidRecord, rec.ID)
	}
	if err != nil {
		return Record{}, fmt.Errorf("failed to save score: %w", err)
	}
	return rec, nil
}

// Top returns the fastest records for a level
func (ps *PostgresStore) Top(level string, limit int) ([]Record, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}

	query := `
	SELECT id, level, player, seconds, barrels, total, at
	FROM scores WHERE level = $1
	ORDER BY seconds ASC, at ASC
	LIMIT $2
	`
	rows, err := ps.db.Query(query, level, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query scores: %w", err)
	}
	defer rows.Close()

	var out []Record
	for rows.Next() {
		var rec Record
		if err := rows.Scan(&rec.ID, &rec.Level, &rec.Player, &rec.Seconds, &rec.Barrels, &rec.Total, &rec.At); err != nil {
			return nil, fmt.Errorf("failed to scan score: %w", err)
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read scores: %w", err)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("level %s: %w", level, ErrNotFound)
	}
	return out, nil
}

// Levels lists levels that have records
func (ps *PostgresStore) Levels() ([]string, error) {
	rows, err := ps.db.Query(`SELECT DISTINCT level FROM scores ORDER BY level`)
	if err != nil {
		return nil, fmt.Errorf("failed to query levels: %w", err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var level string
		if err := rows.Scan(&level); err != nil {
			return nil, fmt.Errorf("failed to scan level: %w", err)
		}
		out = append(out, level)
	}
	return out, rows.Err()
}

// Close closes the database connection
func (ps *PostgresStore) Close() error {
	return ps.db.Close()
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == uniqueViolation
}
