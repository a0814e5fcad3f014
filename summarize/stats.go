package summarize

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/fwojciec/docagent"
)

// Stat compares a file with its summary.
type Stat struct {
	Name          string
	Chars         int
	SummaryChars  int
	Tokens        int
	SummaryTokens int
}

// Stats measures each source against the summary with the same name.
// Token counts are left at zero when counter is nil.
func Stats(ctx context.Context, counter docagent.TokenCounter, sources, summaries []docagent.Summary) ([]Stat, error) {
	byName := make(map[string]string, len(summaries))
	for _, s := range summaries {
		byName[s.Name] = s.Text
	}

	stats := make([]Stat, 0, len(sources))
	for _, src := range sources {
		summary := byName[src.Name]
		st := Stat{
			Name:         src.Name,
			Chars:        len(src.Text),
			SummaryChars: len(summary),
		}
		if counter != nil {
			var err error
			if st.Tokens, err = countTokens(ctx, counter, src.Text); err != nil {
				return nil, err
			}
			if st.SummaryTokens, err = countTokens(ctx, counter, summary); err != nil {
				return nil, err
			}
		}
		stats = append(stats, st)
	}
	return stats, nil
}

func countTokens(ctx context.Context, counter docagent.TokenCounter, text string) (int, error) {
	if text == "" {
		return 0, nil
	}
	return counter.CountTokens(ctx, text)
}

// WriteStats prints stats as an aligned table with a total row.
func WriteStats(w io.Writer, stats []Stat) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "file\tchars\tsummary\ttokens\tsummary\t")

	var total Stat
	for _, st := range stats {
		fmt.Fprintf(tw, "%s\t%d\t%d\t%d\t%d\t\n", st.Name, st.Chars, st.SummaryChars, st.Tokens, st.SummaryTokens)
		total.Chars += st.Chars
		total.SummaryChars += st.SummaryChars
		total.Tokens += st.Tokens
		total.SummaryTokens += st.SummaryTokens
	}
	fmt.Fprintf(tw, "total\t%d\t%d\t%d\t%d\t\n", total.Chars, total.SummaryChars, total.Tokens, total.SummaryTokens)

	return tw.Flush()
}
