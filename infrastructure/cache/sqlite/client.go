// ABOUTME: SQLite-based cache implementation for persistent caching
// ABOUTME: Probe and feed results survive restarts; expired rows are evicted lazily on read

package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"feedmedia/core/interfaces"
	_ "github.com/mattn/go-sqlite3"
)

const maxKeyLength = 4096

// Client implements the Cache interface using SQLite
type Client struct {
	db       *sql.DB
	filePath string
	logger   interfaces.Logger
	now      func() time.Time
}

// NewSQLiteCache creates a new SQLite cache client
func NewSQLiteCache(filePath string, logger interfaces.Logger) (*Client, error) {
	if filePath == "" {
		filePath = "feedmedia-cache.db"
	}

	db, err := sql.Open("sqlite3", filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite database: %w", err)
	}
	// A single writer avoids SQLITE_BUSY under concurrent access
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to SQLite database: %w", err)
	}

	client := &Client{
		db:       db,
		filePath: filePath,
		logger:   logger,
		now:      time.Now,
	}

	if err := client.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return client, nil
}

// initSchema creates the cache table if it doesn't exist.
// expiry is unix milliseconds; 0 means the entry never expires.
func (c *Client) initSchema() error {
	query := `
		CREATE TABLE IF NOT EXISTS cache (
			key TEXT PRIMARY KEY,
			value BLOB NOT NULL,
			expiry INTEGER NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_expiry ON cache(expiry);
	`

	_, err := c.db.Exec(query)
	return err
}

func validateKey(key string) error {
	if key == "" {
		return errors.New("key cannot be empty")
	}
	if len(key) > maxKeyLength {
		return fmt.Errorf("key exceeds %d bytes", maxKeyLength)
	}
	return nil
}

// Get retrieves a value from the cache. An expired row is deleted and
// reported as a miss.
func (c *Client) Get(ctx context.Context, key string) ([]byte, error) {
	if err := validateKey(key); err != nil {
		return nil, err
	}

	var value []byte
	var expiry int64

	err := c.db.QueryRowContext(ctx, "SELECT value, expiry FROM cache WHERE key = ?", key).Scan(&value, &expiry)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, interfaces.ErrCacheMiss
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get value: %w", err)
	}

	if expiry != 0 && expiry <= c.now().UnixMilli() {
		if _, err := c.db.ExecContext(ctx, "DELETE FROM cache WHERE key = ? AND expiry = ?", key, expiry); err != nil {
			c.logger.Warn("Failed to evict expired cache entry", map[string]interface{}{
				"key":   key,
				"error": err.Error(),
			})
		}
		return nil, interfaces.ErrCacheMiss
	}

	return value, nil
}

// Set stores a value in the cache with TTL
func (c *Client) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if err := validateKey(key); err != nil {
		return err
	}
	if value == nil {
		value = []byte{}
	}

	var expiry int64
	if ttl > 0 {
		expiry = c.now().Add(ttl).UnixMilli()
	}

	query := `
		INSERT OR REPLACE INTO cache (key, value, expiry)
		VALUES (?, ?, ?)
	`

	if _, err := c.db.ExecContext(ctx, query, key, value, expiry); err != nil {
		return fmt.Errorf("failed to set value: %w", err)
	}

	return nil
}

// Delete removes a value from the cache
func (c *Client) Delete(ctx context.Context, key string) error {
	if err := validateKey(key); err != nil {
		return err
	}

	if _, err := c.db.ExecContext(ctx, "DELETE FROM cache WHERE key = ?", key); err != nil {
		return fmt.Errorf("failed to delete value: %w", err)
	}

	return nil
}

// Clear removes all values from the cache
func (c *Client) Clear(ctx context.Context) error {
	if _, err := c.db.ExecContext(ctx, "DELETE FROM cache"); err != nil {
		return fmt.Errorf("failed to clear cache: %w", err)
	}

	return nil
}

// Stats counts all rows and the rows that have not expired
func (c *Client) Stats(ctx context.Context) (interfaces.CacheStats, error) {
	var stats interfaces.CacheStats

	if err := c.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM cache").Scan(&stats.TotalEntries); err != nil {
		return stats, fmt.Errorf("failed to count entries: %w", err)
	}

	query := "SELECT COUNT(*) FROM cache WHERE expiry = 0 OR expiry > ?"
	if err := c.db.QueryRowContext(ctx, query, c.now().UnixMilli()).Scan(&stats.ValidEntries); err != nil {
		return stats, fmt.Errorf("failed to count valid entries: %w", err)
	}

	return stats, nil
}

// FilePath returns the database file location
func (c *Client) FilePath() string {
	return c.filePath
}

// Close closes the database connection
func (c *Client) Close() error {
	return c.db.Close()
}
