package localstore

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/sqlite3"
	_ "modernc.org/sqlite"

	"github.com/geognosis/orecast/internal/infrastructure/observability"
	"github.com/geognosis/orecast/pkg/config"
)

const entriesTable = "storage_entries"

// Client is the embedded key-value store backing all persistence. Each
// logical key holds one serialized JSON payload, mirroring a browser
// localStorage area: no transactions across keys, last writer wins.
type Client struct {
	db      *sql.DB
	qb      *goqu.Database
	metrics *observability.Metrics
}

// NewClient opens (and if necessary initializes) the store file.
func NewClient(cfg *config.LocalStoreConfig) (*Client, error) {
	db, err := sql.Open("sqlite", cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open local store: %w", err)
	}

	// The store is a single-writer file; more than one connection only
	// invites SQLITE_BUSY.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping local store: %w", err)
	}

	if _, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS storage_entries (
			key        TEXT PRIMARY KEY,
			value      TEXT NOT NULL,
			updated_at TIMESTAMP NOT NULL
		)`); err != nil {
		return nil, fmt.Errorf("failed to initialize local store schema: %w", err)
	}

	return &Client{
		db: db,
		qb: goqu.New("sqlite3", db),
	}, nil
}

// SetMetrics attaches application metrics. Optional; operation durations are
// recorded when set.
func (c *Client) SetMetrics(metrics *observability.Metrics) {
	c.metrics = metrics
}

// observe records one operation duration. Call with defer so the measurement
// spans the whole operation.
func (c *Client) observe(ctx context.Context, op string, start time.Time) {
	if c.metrics != nil {
		observability.RecordStoreMetric(ctx, c.metrics, op, time.Since(start))
	}
}

// Get returns the payload stored under key. The second return value reports
// whether the key exists.
func (c *Client) Get(ctx context.Context, key string) (string, bool, error) {
	defer c.observe(ctx, "get", time.Now())

	query, args, err := c.qb.Select("value").
		From(entriesTable).
		Where(goqu.Ex{"key": key}).
		ToSQL()
	if err != nil {
		return "", false, fmt.Errorf("failed to build get query: %w", err)
	}

	var value string
	err = c.db.QueryRowContext(ctx, query, args...).Scan(&value)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to read key %q: %w", key, err)
	}

	return value, true, nil
}

// Set stores the payload under key, replacing any previous value.
func (c *Client) Set(ctx context.Context, key, value string) error {
	defer c.observe(ctx, "set", time.Now())

	now := time.Now().UTC()

	query, args, err := c.qb.Update(entriesTable).
		Set(goqu.Record{"value": value, "updated_at": now}).
		Where(goqu.Ex{"key": key}).
		ToSQL()
	if err != nil {
		return fmt.Errorf("failed to build update query: %w", err)
	}

	result, err := c.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update key %q: %w", key, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected > 0 {
		return nil
	}

	query, args, err = c.qb.Insert(entriesTable).
		Rows(goqu.Record{"key": key, "value": value, "updated_at": now}).
		ToSQL()
	if err != nil {
		return fmt.Errorf("failed to build insert query: %w", err)
	}

	if _, err := c.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to insert key %q: %w", key, err)
	}

	return nil
}

// Delete removes the payload stored under key. No-op when absent.
func (c *Client) Delete(ctx context.Context, key string) error {
	defer c.observe(ctx, "delete", time.Now())

	query, args, err := c.qb.Delete(entriesTable).
		Where(goqu.Ex{"key": key}).
		ToSQL()
	if err != nil {
		return fmt.Errorf("failed to build delete query: %w", err)
	}

	if _, err := c.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to delete key %q: %w", key, err)
	}

	return nil
}

// Keys returns every stored key with the given prefix.
func (c *Client) Keys(ctx context.Context, prefix string) ([]string, error) {
	defer c.observe(ctx, "keys", time.Now())

	query, args, err := c.qb.Select("key").
		From(entriesTable).
		Where(goqu.I("key").Like(prefix + "%")).
		Order(goqu.I("key").Asc()).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("failed to build keys query: %w", err)
	}

	rows, err := c.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list keys: %w", err)
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, fmt.Errorf("failed to scan key: %w", err)
		}
		keys = append(keys, key)
	}

	return keys, rows.Err()
}

// LastModified returns the most recent update time across all keys. Zero
// time when the store is empty.
func (c *Client) LastModified(ctx context.Context) (time.Time, error) {
	query, args, err := c.qb.Select(goqu.MAX("updated_at")).
		From(entriesTable).
		ToSQL()
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to build last-modified query: %w", err)
	}

	var last sql.NullTime
	if err := c.db.QueryRowContext(ctx, query, args...).Scan(&last); err != nil {
		return time.Time{}, fmt.Errorf("failed to read last-modified: %w", err)
	}
	if !last.Valid {
		return time.Time{}, nil
	}

	return last.Time, nil
}

// Close closes the store.
func (c *Client) Close() error {
	return c.db.Close()
}
