package goquery_test

import (
	"testing"

	"github.com/fwojciec/docagent"
	"github.com/fwojciec/docagent/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const rtdPage = `<!DOCTYPE html>
<html>
<head><title>The Basics &mdash; PyAutoFit documentation</title></head>
<body>
<nav class="wy-nav-side">
  <div class="wy-menu wy-menu-vertical">
    <ul>
      <li class="toctree-l1"><a href="../installation/overview.html">Installation</a></li>
      <li class="toctree-l1 current"><a href="#">The Basics</a></li>
      <li class="toctree-l1"><a href="statistical_methods.html">Statistical Methods</a></li>
    </ul>
  </div>
</nav>
<div class="document">
  <h1>The Basics<a class="headerlink" href="#the-basics">¶</a></h1>
  <p>See <a href="statistical_methods.html#priors">the priors section</a>.</p>
  <div class="toctree-wrapper compound">
    <ul><li><a href="the_basics/model.html">Model</a></li></ul>
  </div>
  <p>Source on <a href="https://github.com/rhayes777/PyAutoFit">GitHub</a>.</p>
  <p><a href="mailto:someone@example.com">Mail</a></p>
</div>
<footer><a href="cookbooks.html">Cookbooks</a></footer>
</body>
</html>`

const pageURL = "https://pyautofit.readthedocs.io/en/latest/overview/the_basics.html"

func linkURLs(links []docagent.DiscoveredLink) []string {
	urls := make([]string, 0, len(links))
	for _, l := range links {
		urls = append(urls, l.URL)
	}
	return urls
}

func findLink(links []docagent.DiscoveredLink, url string) (docagent.DiscoveredLink, bool) {
	for _, l := range links {
		if l.URL == url {
			return l, true
		}
	}
	return docagent.DiscoveredLink{}, false
}

func TestLinkSelector_ExtractLinks(t *testing.T) {
	t.Parallel()

	t.Run("resolves relative links against the page", func(t *testing.T) {
		t.Parallel()

		links, err := goquery.NewLinkSelector().ExtractLinks(rtdPage, pageURL)

		require.NoError(t, err)
		assert.Contains(t, linkURLs(links), "https://pyautofit.readthedocs.io/en/latest/installation/overview.html")
		assert.Contains(t, linkURLs(links), "https://pyautofit.readthedocs.io/en/latest/overview/the_basics/model.html")
	})

	t.Run("drops self links, external hosts and mailto", func(t *testing.T) {
		t.Parallel()

		links, err := goquery.NewLinkSelector().ExtractLinks(rtdPage, pageURL)

		require.NoError(t, err)
		for _, l := range links {
			assert.NotEqual(t, pageURL, l.URL)
			assert.NotContains(t, l.URL, "github.com")
			assert.NotContains(t, l.URL, "mailto")
		}
	})

	t.Run("deduplicates by url keeping highest priority", func(t *testing.T) {
		t.Parallel()

		links, err := goquery.NewLinkSelector().ExtractLinks(rtdPage, pageURL)

		require.NoError(t, err)
		count := 0
		for _, l := range links {
			if l.URL == "https://pyautofit.readthedocs.io/en/latest/overview/statistical_methods.html" {
				count++
			}
		}
		assert.Equal(t, 1, count)

		link, ok := findLink(links, "https://pyautofit.readthedocs.io/en/latest/overview/statistical_methods.html")
		require.True(t, ok)
		assert.Equal(t, docagent.PriorityNavigation, link.Priority)
		assert.Equal(t, "Statistical Methods", link.Text)
	})

	t.Run("ranks toctree entries as toc", func(t *testing.T) {
		t.Parallel()

		links, err := goquery.NewLinkSelector().ExtractLinks(rtdPage, pageURL)

		require.NoError(t, err)
		link, ok := findLink(links, "https://pyautofit.readthedocs.io/en/latest/overview/the_basics/model.html")
		require.True(t, ok)
		assert.Equal(t, docagent.PriorityTOC, link.Priority)
		assert.Equal(t, "toc", link.Source)
	})

	t.Run("falls back to anchors under the page directory", func(t *testing.T) {
		t.Parallel()

		html := `<html><body><div><a href="next.html">Next</a><a href="/other/page.html">Other</a></div></body></html>`

		links, err := goquery.NewLinkSelector().ExtractLinks(html, pageURL)

		require.NoError(t, err)
		assert.Equal(t, []string{"https://pyautofit.readthedocs.io/en/latest/overview/next.html"}, linkURLs(links))
		assert.Equal(t, docagent.PriorityFallback, links[0].Priority)
	})

	t.Run("rejects invalid base url", func(t *testing.T) {
		t.Parallel()

		_, err := goquery.NewLinkSelector().ExtractLinks(rtdPage, "http://[::1")

		assert.Equal(t, docagent.EINVALID, docagent.ErrorCode(err))
	})
}

func TestTitle(t *testing.T) {
	t.Parallel()

	t.Run("prefers first heading without anchor", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, "The Basics", goquery.Title(rtdPage))
	})

	t.Run("strips site name from title element", func(t *testing.T) {
		t.Parallel()

		html := `<html><head><title>Installation &mdash; PyAutoFit documentation</title></head><body><p>x</p></body></html>`

		assert.Equal(t, "Installation", goquery.Title(html))
	})

	t.Run("empty when page has no title", func(t *testing.T) {
		t.Parallel()

		assert.Empty(t, goquery.Title(`<p>no title</p>`))
	})
}
