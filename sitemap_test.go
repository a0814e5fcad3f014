package docagent_test

import (
	"regexp"
	"testing"

	"github.com/fwojciec/docagent"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestURLFilter_Match(t *testing.T) {
	t.Parallel()

	filter := &docagent.URLFilter{
		Include: []*regexp.Regexp{regexp.MustCompile(`/en/latest/`)},
		Exclude: []*regexp.Regexp{regexp.MustCompile(`/_modules/`)},
	}

	tests := []struct {
		url  string
		want bool
	}{
		{"https://pyautofit.readthedocs.io/en/latest/overview/the_basics.html", true},
		{"https://pyautofit.readthedocs.io/en/stable/overview/the_basics.html", false},
		{"https://pyautofit.readthedocs.io/en/latest/_modules/autofit.html", false},
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, filter.Match(tt.url))
		})
	}

	t.Run("nil filter matches everything", func(t *testing.T) {
		t.Parallel()

		var f *docagent.URLFilter
		assert.True(t, f.Match("https://example.com/anything"))
	})
}

func TestCompileURLFilter(t *testing.T) {
	t.Parallel()

	t.Run("returns nil without patterns", func(t *testing.T) {
		t.Parallel()

		f, err := docagent.CompileURLFilter(nil)
		require.NoError(t, err)
		assert.Nil(t, f)
	})

	t.Run("compiles include patterns", func(t *testing.T) {
		t.Parallel()

		f, err := docagent.CompileURLFilter([]string{`/howtofit/`, `/overview/`})
		require.NoError(t, err)
		assert.True(t, f.Match("https://example.com/overview/a.html"))
		assert.False(t, f.Match("https://example.com/api/a.html"))
	})

	t.Run("rejects invalid pattern", func(t *testing.T) {
		t.Parallel()

		_, err := docagent.CompileURLFilter([]string{`(`})
		assert.Equal(t, docagent.EINVALID, docagent.ErrorCode(err))
	})
}
