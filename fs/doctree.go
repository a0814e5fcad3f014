package fs

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/fwojciec/docagent"
)

// DefaultPattern matches reStructuredText sources.
const DefaultPattern = "*.rst"

// Ensure DocTree implements docagent.DocTree at compile time.
var _ docagent.DocTree = (*DocTree)(nil)

// DocTree lists documentation sources below a root directory.
type DocTree struct {
	root    string
	pattern string
}

// DocTreeOption configures a DocTree.
type DocTreeOption func(*DocTree)

// WithPattern sets the glob matched against file base names.
// Defaults to DefaultPattern.
func WithPattern(pattern string) DocTreeOption {
	return func(t *DocTree) {
		t.pattern = pattern
	}
}

// NewDocTree returns a tree rooted at root. root may also name a single
// file, in which case the tree holds just that file.
func NewDocTree(root string, opts ...DocTreeOption) (*DocTree, error) {
	t := &DocTree{root: root, pattern: DefaultPattern}
	for _, opt := range opts {
		opt(t)
	}
	if _, err := filepath.Match(t.pattern, ""); err != nil {
		return nil, docagent.Errorf(docagent.EINVALID, "invalid pattern %q", t.pattern)
	}
	if _, err := os.Stat(root); errors.Is(err, fs.ErrNotExist) {
		return nil, docagent.Errorf(docagent.ENOTFOUND, "documentation root %q not found", root)
	} else if err != nil {
		return nil, err
	}
	return t, nil
}

// Sub returns the tree for a file or directory below the root, the way a
// user narrows a summary to one section of the docs.
func (t *DocTree) Sub(path string) (*DocTree, error) {
	if !filepath.IsLocal(filepath.FromSlash(path)) {
		return nil, docagent.Errorf(docagent.EINVALID, "path %q must stay inside the documentation root", path)
	}
	return NewDocTree(filepath.Join(t.root, filepath.FromSlash(path)), WithPattern(t.pattern))
}

// Files returns the matching files ordered by name. Names are relative to
// the root and use forward slashes. A tree rooted at a file returns that
// file under its base name regardless of the pattern.
func (t *DocTree) Files(ctx context.Context) ([]*docagent.DocFile, error) {
	info, err := os.Stat(t.root)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return []*docagent.DocFile{{Name: filepath.Base(t.root), Path: t.root}}, nil
	}

	var files []*docagent.DocFile
	err = filepath.WalkDir(t.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if ok, _ := filepath.Match(t.pattern, d.Name()); !ok {
			return nil
		}
		rel, err := filepath.Rel(t.root, path)
		if err != nil {
			return err
		}
		files = append(files, &docagent.DocFile{Name: filepath.ToSlash(rel), Path: path})
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(files, func(i, j int) bool { return files[i].Name < files[j].Name })
	return files, nil
}

// ReadFile returns the text of file.
func (t *DocTree) ReadFile(ctx context.Context, file *docagent.DocFile) (string, error) {
	data, err := os.ReadFile(file.Path)
	if errors.Is(err, fs.ErrNotExist) {
		return "", docagent.Errorf(docagent.ENOTFOUND, "file %q not found", file.Name)
	} else if err != nil {
		return "", err
	}
	return string(data), nil
}
