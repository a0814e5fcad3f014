package docagent

import (
	"context"
	"strings"
)

// Page is a documentation page converted for a model to read.
type Page struct {
	URL     string
	Title   string
	Content string // Markdown
	Links   []DiscoveredLink
}

// PageReader fetches a URL and converts it to a Page.
// Implementations hide fetching, rate limiting, retries, content
// extraction, markdown conversion and link discovery.
type PageReader interface {
	ReadPage(ctx context.Context, url string) (*Page, error)
}

// OpenPage is a page the agent has decided to read. The page is loaded
// lazily: Page and Err are both nil until Load is called.
type OpenPage struct {
	URL  string
	Page *Page
	Err  error
}

// Loaded reports whether a load has been attempted.
func (p *OpenPage) Loaded() bool {
	return p.Page != nil || p.Err != nil
}

// Load reads the page once. A failed read is kept on the OpenPage so the
// model can see it; only context errors are returned.
func (p *OpenPage) Load(ctx context.Context, r PageReader) error {
	if p.Loaded() {
		return nil
	}
	page, err := r.ReadPage(ctx, p.URL)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		p.Err = err
		return nil
	}
	p.Page = page
	return nil
}

// String renders the page as the model sees it.
func (p *OpenPage) String() string {
	var sb strings.Builder
	sb.WriteString(p.URL)
	sb.WriteString("\n\n")
	switch {
	case p.Err != nil:
		sb.WriteString("(This page could not be loaded: ")
		sb.WriteString(errorText(p.Err))
		sb.WriteString(")")
	case p.Page != nil:
		sb.WriteString(p.Page.Content)
	}
	return sb.String()
}

// errorText returns the message of an application error, or the error text
// for any other error.
func errorText(err error) string {
	if code := ErrorCode(err); code != "" && code != EINTERNAL {
		return ErrorMessage(err)
	}
	return err.Error()
}
