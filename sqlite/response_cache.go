package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"strconv"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/docagent"
)

// Compile-time interface verification.
var _ docagent.ResponseCache = (*ResponseCache)(nil)

// ResponseCache implements docagent.ResponseCache using SQLite.
// Each row carries an xxHash of the response; a row whose hash does not
// match its text is treated as absent.
type ResponseCache struct {
	db *DB
}

// NewResponseCache creates a new ResponseCache.
func NewResponseCache(db *DB) *ResponseCache {
	return &ResponseCache{db: db}
}

// hashContent computes the xxHash of content as 16 hex digits.
func hashContent(content string) string {
	return strconv.FormatUint(xxhash.Sum64String(content), 16)
}

// Get returns the cached response for fp.
func (c *ResponseCache) Get(ctx context.Context, fp docagent.Fingerprint) (string, bool, error) {
	var response, hash string
	err := c.db.QueryRowContext(ctx, `
		SELECT response, content_hash
		FROM responses
		WHERE fingerprint = ?
	`, fp.String()).Scan(&response, &hash)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	} else if err != nil {
		return "", false, err
	}

	if hashContent(response) != hash {
		return "", false, nil
	}
	return response, true, nil
}

// Put stores text for fp, replacing any previous row.
func (c *ResponseCache) Put(ctx context.Context, fp docagent.Fingerprint, text string) error {
	_, err := c.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO responses (fingerprint, response, content_hash, created_at)
		VALUES (?, ?, ?, ?)
	`, fp.String(), text, hashContent(text), time.Now().UTC().Format(time.RFC3339))
	return err
}
