// Package fs provides file-based storage: the response cache, local
// documentation trees, and markdown copies of fetched pages.
package fs

import (
	"context"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fwojciec/docagent"
)

// URLToPath converts a documentation URL to a relative file path.
// Example: https://example.com/docs/api/users → docs/api/users.md
func URLToPath(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", docagent.Errorf(docagent.EINVALID, "invalid url %q", rawURL)
	}

	path := u.Path

	// Handle root or trailing slash → index.md
	if path == "" || path == "/" {
		return "index.md", nil
	}

	path = strings.TrimPrefix(path, "/")

	// Trailing slash becomes index.md in that directory
	if strings.HasSuffix(path, "/") {
		return path + "index.md", nil
	}

	// Sphinx pages end in .html; keep the stem.
	path = strings.TrimSuffix(path, ".html")

	return path + ".md", nil
}

// FormatPage formats a page with YAML frontmatter.
func FormatPage(page *docagent.Page, fetched time.Time) string {
	var b strings.Builder
	b.WriteString("---\n")
	b.WriteString("source: ")
	b.WriteString(page.URL)
	b.WriteString("\ntitle: ")
	b.WriteString(page.Title)
	b.WriteString("\nfetched: ")
	b.WriteString(fetched.Format("2006-01-02"))
	b.WriteString("\n---\n\n")
	b.WriteString(page.Content)
	return b.String()
}

// Writer saves fetched pages as markdown files under a base directory.
type Writer struct {
	baseDir string
	now     func() time.Time
}

// NewWriter creates a new Writer that writes to the given base directory.
func NewWriter(baseDir string) *Writer {
	return &Writer{baseDir: baseDir, now: time.Now}
}

// WritePage writes page to disk and returns the file path.
func (w *Writer) WritePage(ctx context.Context, page *docagent.Page) (string, error) {
	if page.URL == "" {
		return "", docagent.Errorf(docagent.EINVALID, "page url required")
	}

	relPath, err := URLToPath(page.URL)
	if err != nil {
		return "", err
	}

	fullPath := filepath.Join(w.baseDir, filepath.FromSlash(relPath))

	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return "", err
	}

	if err := os.WriteFile(fullPath, []byte(FormatPage(page, w.now())), 0644); err != nil {
		return "", err
	}
	return fullPath, nil
}
