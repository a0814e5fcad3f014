// Package summarize shortens local documentation trees with a language
// model, one file at a time.
package summarize

import (
	"context"
	"log/slog"
	"strings"

	"github.com/fwojciec/docagent"
	"golang.org/x/sync/errgroup"
)

// DefaultMaxTokens limits each summary.
const DefaultMaxTokens = 4096

// SystemPrompt asks the model to shorten a document while keeping its code.
const SystemPrompt = `I will give you a document from ReadTheDocs.

Shorten the document, making the language as concise as possible while keeping the original meaning.
Keep every code snippet in full.

Do not explain the result. Give only the shortened document.

For example:
` + "```" + `
PyAutoFit recognises the parameters of a class by the constructor arguments of the class which are the arguments passed
into the class's __init__ method. For example, the following class has three parameters, centre, normalization and sigma.

.. code-block:: python

    class Gaussian:

        def __init__(
            self,
            centre=0.0,        # <- PyAutoFit recognises these
            normalization=0.1, # <- constructor arguments are
            sigma=0.01,        # <- the Gaussian's parameters.
        ):
            self.centre = centre
            self.normalization = normalization
            self.sigma = sigma
` + "```" + `

should be shortened to:

` + "```" + `
PyAutoFit recognises the parameters of a class by its constructor arguments. Below they are centre,
normalization and sigma.

.. code-block:: python

    class Gaussian:

        def __init__(
            self,
            centre=0.0,
            normalization=0.1,
            sigma=0.01,
        ):
            self.centre = centre
            self.normalization = normalization
            self.sigma = sigma
` + "```" + `
`

// Summarizer summarizes the files of a DocTree. Caller and Model are
// required.
type Summarizer struct {
	Caller    docagent.Caller
	Model     string
	MaxTokens int

	// Concurrency bounds in-flight model calls. Values below 1 mean 1.
	Concurrency int

	Logger *slog.Logger
}

// Summarize returns one summary per file, in tree order. Empty files are
// summarized as empty without calling the model. The first failure
// cancels the remaining calls and is returned.
func (s *Summarizer) Summarize(ctx context.Context, tree docagent.DocTree) ([]docagent.Summary, error) {
	files, err := tree.Files(ctx)
	if err != nil {
		return nil, err
	}

	maxTokens := s.MaxTokens
	if maxTokens <= 0 {
		maxTokens = DefaultMaxTokens
	}

	summaries := make([]docagent.Summary, len(files))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(s.Concurrency, 1))

	for i, f := range files {
		g.Go(func() error {
			text, err := tree.ReadFile(ctx, f)
			if err != nil {
				return err
			}
			summaries[i].Name = f.Name
			if strings.TrimSpace(text) == "" {
				return nil
			}

			summary, err := s.Caller.Call(ctx, &docagent.Request{
				System:    SystemPrompt,
				Model:     s.Model,
				Content:   text,
				MaxTokens: maxTokens,
			})
			if err != nil {
				return err
			}
			summaries[i].Text = summary
			s.logger().Debug("summarized", "file", f.Name, "chars", len(text), "summary_chars", len(summary))
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return summaries, nil
}

func (s *Summarizer) logger() *slog.Logger {
	if s.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return s.Logger
}

// Raw returns the unmodified text of every file, in tree order.
func Raw(ctx context.Context, tree docagent.DocTree) ([]docagent.Summary, error) {
	files, err := tree.Files(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]docagent.Summary, 0, len(files))
	for _, f := range files {
		text, err := tree.ReadFile(ctx, f)
		if err != nil {
			return nil, err
		}
		out = append(out, docagent.Summary{Name: f.Name, Text: text})
	}
	return out, nil
}
