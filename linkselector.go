package docagent

// LinkPriority ranks links by how likely they lead to useful documentation
// (higher = more important).
type LinkPriority int

// Link priority levels.
const (
	PriorityIgnore     LinkPriority = 0
	PriorityFallback   LinkPriority = 10
	PriorityFooter     LinkPriority = 20
	PriorityContent    LinkPriority = 50
	PriorityNavigation LinkPriority = 100
	PriorityTOC        LinkPriority = 110
)

// DiscoveredLink is a same-site link found on a page.
type DiscoveredLink struct {
	URL      string
	Priority LinkPriority
	Text     string
	Source   string // "toc", "nav", "content", "footer", "fallback"
}

// LinkSelector extracts prioritized links from HTML.
type LinkSelector interface {
	// ExtractLinks parses HTML and returns discovered links with priority.
	// The baseURL is used to resolve relative URLs.
	ExtractLinks(html string, baseURL string) ([]DiscoveredLink, error)
}

// LinkSet remembers links across the steps of an agent run.
type LinkSet interface {
	// Seen reports whether url was recorded before and records it.
	Seen(url string) bool
}
