package docagent

// ExtractResult is the main content of a page with navigation and
// other boilerplate removed.
type ExtractResult struct {
	// Title from page metadata. May be empty.
	Title string

	// ContentHTML keeps the structure of the main content so code
	// blocks survive conversion to markdown.
	ContentHTML string
}

// Extractor narrows a page down to the text the model should read.
// PageReader falls back to the full page when extraction fails.
type Extractor interface {
	Extract(html string) (*ExtractResult, error)
}
