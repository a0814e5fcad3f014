package docagent

import (
	"context"
	"strings"
)

// DocFile is a file in a local documentation tree.
type DocFile struct {
	// Name is the path relative to the tree root, using forward slashes.
	Name string

	// Path is the location on disk.
	Path string
}

// DocTree lists and reads the files of a documentation source tree.
type DocTree interface {
	// Files returns matching files ordered by name.
	Files(ctx context.Context) ([]*DocFile, error)

	// ReadFile returns the text of a file.
	ReadFile(ctx context.Context, file *DocFile) (string, error)
}

// Summary pairs a documentation file name with text derived from it.
type Summary struct {
	Name string
	Text string
}

// FormatSummaries joins summaries as "name\n\ntext" blocks separated by
// blank lines.
func FormatSummaries(summaries []Summary) string {
	if len(summaries) == 0 {
		return ""
	}

	parts := make([]string, 0, len(summaries))
	for _, s := range summaries {
		parts = append(parts, s.Name+"\n\n"+s.Text)
	}

	return strings.Join(parts, "\n\n")
}
