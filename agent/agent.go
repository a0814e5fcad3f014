// Package agent runs the documentation agent loop. On each step the model
// sees the task, the pages opened so far and the questions answered so far,
// and decides to open more pages, ask the user a question or answer.
package agent

import (
	"context"
	"log/slog"

	"github.com/fwojciec/docagent"
	"github.com/google/uuid"
)

const (
	// DefaultMaxSteps bounds the model calls of a run.
	DefaultMaxSteps = 25

	// DefaultMaxTokens limits each model reply.
	DefaultMaxTokens = 4096

	// DefaultMaxLinks bounds the links listed for a single page.
	DefaultMaxLinks = 50

	// DefaultMaxIndex bounds the sitemap entries shown to the model.
	DefaultMaxIndex = 200
)

// EventType identifies what happened during a step.
type EventType int

// Event types.
const (
	EventReasoning EventType = iota
	EventOpenPages
	EventQuestion
	EventAnswer
)

// Event reports progress of a run to the caller.
type Event struct {
	Type  EventType
	RunID string
	Step  int

	// Text holds the reasoning, question or answer.
	Text string

	// URLs holds the pages opened by an EventOpenPages.
	URLs []string
}

// Agent drives runs. Caller and Pages are required; every other field is
// optional.
type Agent struct {
	Caller docagent.Caller
	Pages  docagent.PageReader

	// Questioner answers clarifying questions in Run. Without one, Run
	// fails when the model asks a question.
	Questioner docagent.Questioner

	// Sitemaps, when set, adds the site's page index to every message.
	Sitemaps docagent.SitemapService

	// SitemapFilter narrows the index. Nil keeps every URL.
	SitemapFilter *docagent.URLFilter

	// NewLinkSet creates the per-run set that keeps a navigation link from
	// being listed under more than one page.
	NewLinkSet func() docagent.LinkSet

	// OnEvent receives reasoning, opened pages, questions and answers.
	OnEvent func(Event)

	Model     string
	MaxTokens int
	MaxSteps  int
	MaxLinks  int
	MaxIndex  int

	Logger *slog.Logger
}

// Start creates a run for task beginning at startURL. The start page is
// opened but not loaded until the first step.
func (a *Agent) Start(ctx context.Context, task, startURL string) (*Run, error) {
	if task == "" {
		return nil, docagent.Errorf(docagent.EINVALID, "task required")
	}
	if startURL == "" {
		return nil, docagent.Errorf(docagent.EINVALID, "start URL required")
	}

	r := &Run{
		ID:       uuid.NewString(),
		Task:     task,
		StartURL: startURL,
		State:    StateRunning,
		Pages:    []*docagent.OpenPage{{URL: startURL}},
		newLinks: make(map[*docagent.OpenPage][]docagent.DiscoveredLink),
	}
	if a.NewLinkSet != nil {
		r.links = a.NewLinkSet()
	}

	if a.Sitemaps != nil {
		urls, err := a.Sitemaps.DiscoverURLs(ctx, startURL, a.SitemapFilter)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			a.logger().Warn("sitemap unavailable", "run", r.ID, "err", err)
		}
		r.Index = urls[:min(len(urls), a.maxIndex())]
	}

	a.logger().Info("run started", "run", r.ID, "url", startURL)
	return r, nil
}

// Step performs one iteration of a running run: it loads new pages, asks
// the model for a decision and applies it.
//
// Returns EINVALID if the run is not running and EBUDGET once the step
// budget is spent. Call, parse and dispatch failures move the run to the
// failed state and are returned.
func (a *Agent) Step(ctx context.Context, r *Run) error {
	if r.State != StateRunning {
		return docagent.Errorf(docagent.EINVALID, "run %s is %s", r.ID, r.State)
	}
	if r.Steps >= a.maxSteps() {
		return r.fail(docagent.Errorf(docagent.EBUDGET, "no answer after %d steps", r.Steps))
	}

	if err := a.loadPages(ctx, r); err != nil {
		return r.fail(err)
	}

	r.Steps++
	logger := a.logger().With("run", r.ID, "step", r.Steps)

	text, err := a.Caller.Call(ctx, &docagent.Request{
		System:    SystemPrompt,
		Model:     a.Model,
		Content:   UserMessage(r),
		MaxTokens: a.maxTokens(),
	})
	if err != nil {
		return r.fail(err)
	}

	d, err := docagent.ParseDecision(text)
	if err != nil {
		logger.Debug("unparseable reply", "text", text)
		return r.fail(err)
	}
	logger.Info("decision", "action", d.Action)
	a.emit(Event{Type: EventReasoning, RunID: r.ID, Step: r.Steps, Text: d.Reasoning})

	switch d.Action {
	case docagent.ActionCompleteTask:
		answer, err := d.Arg("answer")
		if err != nil {
			return r.fail(err)
		}
		r.Answer = answer
		r.State = StateCompleted
		a.emit(Event{Type: EventAnswer, RunID: r.ID, Step: r.Steps, Text: answer})

	case docagent.ActionOpenPages:
		refs, err := d.URLs()
		if err != nil {
			return r.fail(err)
		}
		var opened []string
		for _, ref := range refs {
			u, err := resolveURL(r.StartURL, ref)
			if err != nil {
				return r.fail(err)
			}
			u = stripFragment(u)
			if r.IsOpen(u) {
				logger.Debug("page opened again", "url", u)
			}
			r.Pages = append(r.Pages, &docagent.OpenPage{URL: u})
			opened = append(opened, u)
		}
		if len(opened) > 0 {
			a.emit(Event{Type: EventOpenPages, RunID: r.ID, Step: r.Steps, URLs: opened})
		}

	case docagent.ActionAskQuestion:
		question, err := d.Arg("question")
		if err != nil {
			return r.fail(err)
		}
		r.Question = question
		r.State = StateAwaitingInput
		a.emit(Event{Type: EventQuestion, RunID: r.ID, Step: r.Steps, Text: question})

	default:
		return r.fail(docagent.Errorf(docagent.EUNRECOGNIZED, "unrecognized action %q", d.Action))
	}

	return nil
}

// Run drives a new run to completion and returns the answer. Questions
// the model asks are put to the Questioner.
func (a *Agent) Run(ctx context.Context, task, startURL string) (string, error) {
	r, err := a.Start(ctx, task, startURL)
	if err != nil {
		return "", err
	}
	return a.Continue(ctx, r)
}

// Continue drives an existing run until it completes or fails.
func (a *Agent) Continue(ctx context.Context, r *Run) (string, error) {
	for {
		switch r.State {
		case StateCompleted:
			a.logger().Info("run completed", "run", r.ID, "steps", r.Steps, "pages", len(r.Pages))
			return r.Answer, nil
		case StateFailed:
			return "", r.Err
		case StateAwaitingInput:
			if a.Questioner == nil {
				return "", r.fail(docagent.Errorf(docagent.EINVALID, "model asked %q but no one can answer", r.Question))
			}
			answer, err := a.Questioner.Ask(ctx, r.Question)
			if err != nil {
				return "", r.fail(err)
			}
			if err := r.Resume(answer); err != nil {
				return "", err
			}
		case StateRunning:
			if err := a.Step(ctx, r); err != nil {
				a.logger().Warn("run failed", "run", r.ID, "steps", r.Steps, "code", docagent.ErrorCode(err))
				return "", err
			}
		}
	}
}

// loadPages loads pages that have not been read yet and records the
// navigation links they add.
func (a *Agent) loadPages(ctx context.Context, r *Run) error {
	for i, p := range r.Pages {
		if p.Loaded() {
			continue
		}
		// A page opened again shows the content read the first time and
		// lists no links of its own.
		if prev := loadedCopy(r.Pages[:i], p.URL); prev != nil {
			p.Page, p.Err = prev.Page, prev.Err
			continue
		}
		if err := p.Load(ctx, a.Pages); err != nil {
			return err
		}
		if p.Err != nil {
			a.logger().Warn("page unavailable", "run", r.ID, "url", p.URL, "err", p.Err)
			continue
		}
		r.newLinks[p] = selectLinks(r, p.Page, a.maxLinks())
	}
	return nil
}

func loadedCopy(pages []*docagent.OpenPage, url string) *docagent.OpenPage {
	for _, p := range pages {
		if p.URL == url && p.Loaded() {
			return p
		}
	}
	return nil
}

func (a *Agent) emit(e Event) {
	if a.OnEvent != nil {
		a.OnEvent(e)
	}
}

func (a *Agent) logger() *slog.Logger {
	if a.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return a.Logger
}

func (a *Agent) maxSteps() int {
	if a.MaxSteps <= 0 {
		return DefaultMaxSteps
	}
	return a.MaxSteps
}

func (a *Agent) maxTokens() int {
	if a.MaxTokens <= 0 {
		return DefaultMaxTokens
	}
	return a.MaxTokens
}

func (a *Agent) maxLinks() int {
	if a.MaxLinks <= 0 {
		return DefaultMaxLinks
	}
	return a.MaxLinks
}

func (a *Agent) maxIndex() int {
	if a.MaxIndex <= 0 {
		return DefaultMaxIndex
	}
	return a.MaxIndex
}
