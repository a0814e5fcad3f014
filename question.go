package docagent

import (
	"context"
	"strings"
)

// AnsweredQuestion is a clarifying question the model asked and the
// answer the user gave.
type AnsweredQuestion struct {
	Question string
	Answer   string
}

// String renders the pair as the model sees it.
func (q AnsweredQuestion) String() string {
	return q.Question + "\n" + q.Answer
}

// FormatQuestions renders answered questions separated by blank lines.
// Returns "None." when nothing has been asked yet.
func FormatQuestions(questions []AnsweredQuestion) string {
	if len(questions) == 0 {
		return "None."
	}
	parts := make([]string, 0, len(questions))
	for _, q := range questions {
		parts = append(parts, q.String())
	}
	return strings.Join(parts, "\n\n")
}

// Questioner obtains an answer to a clarifying question from the user.
type Questioner interface {
	// Ask presents the question and blocks until an answer is available.
	Ask(ctx context.Context, question string) (string, error)
}
