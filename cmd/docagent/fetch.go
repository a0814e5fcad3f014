package main

import (
	"fmt"

	"github.com/fwojciec/docagent"
	"github.com/fwojciec/docagent/fs"
)

// Run executes the fetch command.
func (c *FetchCmd) Run(deps *Dependencies) error {
	page, err := deps.Pages.ReadPage(deps.Ctx, c.URL)
	if err != nil {
		return err
	}

	if c.Out != "" {
		path, err := fs.NewWriter(c.Out).WritePage(deps.Ctx, page)
		if err != nil {
			return err
		}
		fmt.Fprintln(deps.Stdout, path)
		return nil
	}

	open := &docagent.OpenPage{URL: page.URL, Page: page}
	fmt.Fprintln(deps.Stdout, open.String())

	if c.Links && len(page.Links) > 0 {
		fmt.Fprintln(deps.Stdout, "\nLinks:")
		for _, l := range page.Links {
			fmt.Fprintf(deps.Stdout, "- [%s] %s %s\n", l.Source, l.URL, l.Text)
		}
	}
	return nil
}
