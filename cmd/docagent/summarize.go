package main

import (
	"fmt"

	"github.com/fwojciec/docagent"
	"github.com/fwojciec/docagent/fs"
	"github.com/fwojciec/docagent/summarize"
)

// Run executes the summarize command.
func (c *SummarizeCmd) Run(deps *Dependencies) error {
	tree, err := fs.NewDocTree(c.Root, fs.WithPattern(c.Glob))
	if err != nil {
		return err
	}
	if c.Path != "" {
		if tree, err = tree.Sub(c.Path); err != nil {
			return err
		}
	}

	var sources, summaries []docagent.Summary
	if c.Raw || c.Stats {
		if sources, err = summarize.Raw(deps.Ctx, tree); err != nil {
			return err
		}
	}

	if c.Raw {
		summaries = sources
	} else {
		s := &summarize.Summarizer{
			Caller:      deps.Caller,
			Model:       deps.Config.Model,
			MaxTokens:   deps.Config.MaxTokens,
			Concurrency: c.Concurrency,
			Logger:      deps.Logger,
		}
		if summaries, err = s.Summarize(deps.Ctx, tree); err != nil {
			return err
		}
	}

	if len(summaries) == 0 {
		return docagent.Errorf(docagent.ENOTFOUND, "no files matching %q under %s", c.Glob, c.Root)
	}

	fmt.Fprintln(deps.Stdout, docagent.FormatSummaries(summaries))

	if c.Stats {
		stats, err := summarize.Stats(deps.Ctx, deps.Tokens, sources, summaries)
		if err != nil {
			return err
		}
		return summarize.WriteStats(deps.Stderr, stats)
	}
	return nil
}
