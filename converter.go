package docagent

// Converter converts HTML to Markdown.
type Converter interface {
	// Convert transforms HTML content into Markdown.
	// Relative links are resolved against baseURL when it is not empty,
	// so the model sees URLs it can open.
	Convert(html string, baseURL string) (string, error)
}
