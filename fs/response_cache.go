package fs

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/fwojciec/docagent"
)

// Ensure ResponseCache implements docagent.ResponseCache at compile time.
var _ docagent.ResponseCache = (*ResponseCache)(nil)

// ResponseCache stores model responses as files named <fingerprint>.txt.
// Files hold the raw response text with no envelope.
type ResponseCache struct {
	dir string
}

// NewResponseCache returns a cache rooted at dir. The directory is created
// on the first Put.
func NewResponseCache(dir string) *ResponseCache {
	return &ResponseCache{dir: dir}
}

// Path returns the file that holds the response for fp.
func (c *ResponseCache) Path(fp docagent.Fingerprint) string {
	return filepath.Join(c.dir, fp.String()+".txt")
}

// Get returns the cached text for fp. A missing file is reported as
// ok == false, not as an error.
func (c *ResponseCache) Get(ctx context.Context, fp docagent.Fingerprint) (string, bool, error) {
	data, err := os.ReadFile(c.Path(fp))
	if errors.Is(err, fs.ErrNotExist) {
		return "", false, nil
	} else if err != nil {
		return "", false, err
	}
	return string(data), true, nil
}

// Put writes text for fp. The text goes to a temporary file in the cache
// directory first and is renamed into place, so readers never see a
// partial entry.
func (c *ResponseCache) Put(ctx context.Context, fp docagent.Fingerprint, text string) error {
	if err := os.MkdirAll(c.dir, 0755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(c.dir, fp.String()+".*.tmp")
	if err != nil {
		return err
	}
	// Removing after a successful rename fails harmlessly.
	defer os.Remove(tmp.Name())

	if _, err := tmp.WriteString(text); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}

	return os.Rename(tmp.Name(), c.Path(fp))
}
