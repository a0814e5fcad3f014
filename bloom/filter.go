// Package bloom remembers which navigation links have been shown to the
// model during an agent run.
package bloom

import (
	"github.com/bits-and-blooms/bloom/v3"
	"github.com/fwojciec/docagent"
)

const (
	// DefaultCapacity covers the link count of a large documentation site.
	DefaultCapacity = 10000

	// DefaultFalsePositiveRate is the chance a new link is wrongly
	// reported as already listed.
	DefaultFalsePositiveRate = 0.001
)

// Ensure Filter implements docagent.LinkSet.
var _ docagent.LinkSet = (*Filter)(nil)

// Filter wraps a Bloom filter for URL deduplication.
type Filter struct {
	f *bloom.BloomFilter
}

// NewFilter creates a new Bloom filter sized for n expected items
// with the given false positive rate.
func NewFilter(n uint, fpRate float64) *Filter {
	return &Filter{
		f: bloom.NewWithEstimates(n, fpRate),
	}
}

// NewLinkFilter creates a Filter with the default sizing.
func NewLinkFilter() *Filter {
	return NewFilter(DefaultCapacity, DefaultFalsePositiveRate)
}

// Add records a URL without reporting on it.
func (f *Filter) Add(url string) {
	f.f.AddString(url)
}

// Seen reports whether the URL was recorded before and records it.
// False positives are possible; false negatives are not.
func (f *Filter) Seen(url string) bool {
	return f.f.TestAndAddString(url)
}

// EstimatedCount returns the approximate number of items in the filter.
func (f *Filter) EstimatedCount() uint {
	return uint(f.f.ApproximatedSize())
}
