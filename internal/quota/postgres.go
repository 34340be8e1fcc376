package quota

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"

	"github.com/tikscope/tikscope/internal/logger"
)

// PostgresStore backs the counters with a single-table Postgres schema. Each
// Increment is one atomic upsert, so concurrent increments for the same user
// never lose updates.
type PostgresStore struct {
	conn *sql.DB
	vips VIPList
}

func NewPostgresStore(dsn string, vips VIPList) (*PostgresStore, error) {
	conn, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	if err := conn.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	store := &PostgresStore{conn: conn, vips: vips}
	if err := store.initTables(); err != nil {
		return nil, fmt.Errorf("failed to initialize tables: %w", err)
	}

	logger.InfoMsg("Postgres quota store initialized")
	return store, nil
}

func (s *PostgresStore) initTables() error {
	query := `
	CREATE TABLE IF NOT EXISTS quota_counts (
		user_id TEXT PRIMARY KEY,
		count INTEGER NOT NULL DEFAULT 0
	)`
	_, err := s.conn.Exec(query)
	return err
}

func (s *PostgresStore) Get(ctx context.Context, userID string) (int, error) {
	var count int
	err := s.conn.QueryRowContext(ctx,
		`SELECT count FROM quota_counts WHERE user_id = $1`, userID).Scan(&count)
	if err == sql.ErrNoRows {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to read quota count: %w", err)
	}
	return count, nil
}

func (s *PostgresStore) IsVIP(userID string) bool {
	return s.vips.Contains(userID)
}

func (s *PostgresStore) Increment(ctx context.Context, userID string) (int, error) {
	var count int
	err := s.conn.QueryRowContext(ctx, `
		INSERT INTO quota_counts (user_id, count) VALUES ($1, 1)
		ON CONFLICT (user_id) DO UPDATE SET count = quota_counts.count + 1
		RETURNING count`, userID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to increment quota count: %w", err)
	}
	return count, nil
}

func (s *PostgresStore) Close() error {
	if s.conn != nil {
		return s.conn.Close()
	}
	return nil
}
