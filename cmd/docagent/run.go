package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/fwojciec/docagent"
	"github.com/fwojciec/docagent/agent"
	"github.com/fwojciec/docagent/bloom"
)

// Run executes the run command.
func (c *RunCmd) Run(deps *Dependencies) error {
	ctx := deps.Ctx
	if c.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.Timeout)
		defer cancel()
	}

	filter, err := docagent.CompileURLFilter(c.Include)
	if err != nil {
		return err
	}

	a := &agent.Agent{
		Caller:        deps.Caller,
		Pages:         deps.Pages,
		Questioner:    deps.Questioner,
		Sitemaps:      deps.Sitemaps,
		SitemapFilter: filter,
		NewLinkSet:    func() docagent.LinkSet { return bloom.NewLinkFilter() },
		OnEvent:       func(e agent.Event) { printEvent(deps, e) },
		Model:         deps.Config.Model,
		MaxTokens:     deps.Config.MaxTokens,
		MaxSteps:      c.MaxSteps,
		Logger:        deps.Logger,
	}

	answer, err := a.Run(ctx, c.Task, c.URL)
	if err != nil {
		return err
	}

	fmt.Fprintln(deps.Stdout, answer)
	return nil
}

// printEvent shows reasoning, opened pages and questions as the run
// progresses. The answer is printed once the run returns.
func printEvent(deps *Dependencies, e agent.Event) {
	switch e.Type {
	case agent.EventReasoning:
		if e.Text != "" {
			fmt.Fprintln(deps.Stdout, e.Text)
		}
	case agent.EventOpenPages:
		if len(e.URLs) > 0 {
			fmt.Fprintf(deps.Stdout, "opening %s\n", strings.Join(e.URLs, ", "))
		}
	case agent.EventQuestion:
		fmt.Fprintln(deps.Stdout, e.Text)
	}
}
