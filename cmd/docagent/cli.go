package main

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/fwojciec/docagent"
)

// DefaultStartURL is the documentation site the agent opens first.
const DefaultStartURL = "https://pyautofit.readthedocs.io/en/latest/"

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx    context.Context
	Stdout io.Writer
	Stderr io.Writer
	Logger *slog.Logger
	Config Config

	Caller     docagent.Caller
	Pages      docagent.PageReader
	Sitemaps   docagent.SitemapService
	Tokens     docagent.TokenCounter
	Questioner docagent.Questioner
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Provider   string `help:"Model provider: gemini or openai"`
	Model      string `help:"Model name"`
	MaxTokens  int    `name:"max-tokens" help:"Maximum tokens per reply"`
	CacheDir   string `name:"cache-dir" type:"path" help:"Response cache directory"`
	Cache      string `help:"Response cache backend: fs or sqlite"`
	Browser    bool   `help:"Render pages in headless Chrome"`
	Extractor  string `help:"Content extractor: none, trafilatura or readability"`
	ConfigFile string `name:"config" type:"path" help:"Config file (default $DOCAGENT_CONFIG or ~/.docagent/config.toml)"`
	Verbose    bool   `short:"v" help:"Log debug output"`

	Run       RunCmd       `cmd:"" help:"Answer a task by reading documentation pages"`
	Summarize SummarizeCmd `cmd:"" help:"Summarize a local documentation tree"`
	Fetch     FetchCmd     `cmd:"" help:"Show a page as the agent reads it"`
}

// RunCmd is the "run" subcommand.
type RunCmd struct {
	Task     string        `arg:"" help:"Task to complete"`
	URL      string        `default:"${start_url}" help:"Documentation page to start from"`
	MaxSteps int           `name:"max-steps" default:"25" help:"Model calls before giving up"`
	Sitemap  bool          `help:"Show the model the site's sitemap"`
	Include  []string      `help:"Only list sitemap URLs matching these regular expressions"`
	Timeout  time.Duration `help:"Give up after this long (0 means no limit)"`
}

// SummarizeCmd is the "summarize" subcommand.
type SummarizeCmd struct {
	Root        string `arg:"" type:"path" help:"Documentation source directory or file"`
	Glob        string `default:"*.rst" help:"File name pattern"`
	Path        string `help:"Summarize only this file or directory below root"`
	Raw         bool   `help:"Print file contents without summarizing"`
	Stats       bool   `help:"Print length and token statistics to stderr"`
	Concurrency int    `short:"c" default:"1" help:"Concurrent model calls"`
}

// FetchCmd is the "fetch" subcommand.
type FetchCmd struct {
	URL   string `arg:"" help:"Page URL"`
	Out   string `type:"path" help:"Write markdown files under this directory instead of stdout"`
	Links bool   `help:"Also print the navigation links found on the page"`
}

// needsCaller reports whether the command calls a model.
func (c *CLI) needsCaller(cmd string) bool {
	switch cmd {
	case "run <task>":
		return true
	case "summarize <root>":
		return !c.Summarize.Raw
	}
	return false
}
