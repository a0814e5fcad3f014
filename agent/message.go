package agent

import (
	"cmp"
	"net/url"
	"slices"
	"strings"

	"github.com/fwojciec/docagent"
)

// pageSeparator divides open pages in the user message.
const pageSeparator = "\n==========\n"

// UserMessage renders the run as the model sees it on each step.
func UserMessage(r *Run) string {
	var sb strings.Builder
	sb.WriteString("The task is:\n")
	sb.WriteString(r.Task)
	sb.WriteString("\n\nSo far you have opened the following pages:\n")

	pages := make([]string, 0, len(r.Pages))
	for _, p := range r.Pages {
		pages = append(pages, "\n"+p.String()+formatLinks(r.newLinks[p])+"\n")
	}
	sb.WriteString(strings.Join(pages, pageSeparator))

	sb.WriteString("\n\nYou have answered the following questions:\n")
	sb.WriteString(docagent.FormatQuestions(r.Questions))
	sb.WriteString("\n\n")

	if len(r.Index) > 0 {
		sb.WriteString("Other pages on this site:\n")
		for _, u := range r.Index {
			sb.WriteString("- ")
			sb.WriteString(u)
			sb.WriteString("\n")
		}
		sb.WriteString("\n")
	}

	sb.WriteString("Please respond with your decision.")
	return sb.String()
}

func formatLinks(links []docagent.DiscoveredLink) string {
	if len(links) == 0 {
		return ""
	}
	var sb strings.Builder
	sb.WriteString("\n\nLinks on this page:\n")
	for _, l := range links {
		sb.WriteString("- ")
		if l.Text != "" {
			sb.WriteString(l.Text)
			sb.WriteString(": ")
		}
		sb.WriteString(l.URL)
		sb.WriteString("\n")
	}
	return strings.TrimSuffix(sb.String(), "\n")
}

// selectLinks returns up to limit links of page that no earlier page
// listed, highest priority first. Links back to open pages are dropped.
func selectLinks(r *Run, page *docagent.Page, limit int) []docagent.DiscoveredLink {
	links := slices.Clone(page.Links)
	slices.SortStableFunc(links, func(a, b docagent.DiscoveredLink) int {
		return cmp.Compare(b.Priority, a.Priority)
	})

	var out []docagent.DiscoveredLink
	local := make(map[string]bool)
	for _, l := range links {
		if len(out) >= limit {
			break
		}
		if l.Priority == docagent.PriorityIgnore {
			continue
		}
		u := stripFragment(l.URL)
		if local[u] || u == stripFragment(page.URL) || r.IsOpen(u) {
			continue
		}
		local[u] = true
		if r.links != nil && r.links.Seen(u) {
			continue
		}
		l.URL = u
		out = append(out, l)
	}
	return out
}

func stripFragment(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return raw
	}
	u.Fragment = ""
	u.RawFragment = ""
	return u.String()
}

// resolveURL resolves ref against base.
// Returns EMALFORMED if either cannot be parsed.
func resolveURL(base, ref string) (string, error) {
	b, err := url.Parse(base)
	if err != nil {
		return "", docagent.Errorf(docagent.EMALFORMED, "invalid start URL %q", base)
	}
	u, err := url.Parse(strings.TrimSpace(ref))
	if err != nil {
		return "", docagent.Errorf(docagent.EMALFORMED, "invalid page URL %q", ref)
	}
	return b.ResolveReference(u).String(), nil
}
