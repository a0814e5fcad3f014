package agent

import (
	"github.com/fwojciec/docagent"
)

// State is the lifecycle state of a Run.
type State int

// Run states.
const (
	StateRunning State = iota
	StateAwaitingInput
	StateCompleted
	StateFailed
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateRunning:
		return "running"
	case StateAwaitingInput:
		return "awaiting_input"
	case StateCompleted:
		return "completed"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Run is the state of one task. It owns its open pages and answered
// questions; both only grow.
type Run struct {
	ID       string
	Task     string
	StartURL string
	State    State

	Pages     []*docagent.OpenPage
	Questions []docagent.AnsweredQuestion

	// Index lists site pages from the sitemap, when one was requested.
	Index []string

	// Steps counts model calls made so far.
	Steps int

	// Question is set while the run is awaiting input.
	Question string

	// Answer is set once the run has completed.
	Answer string

	// Err is set once the run has failed.
	Err error

	links    docagent.LinkSet
	newLinks map[*docagent.OpenPage][]docagent.DiscoveredLink
}

// Resume records the user's answer to the pending question and puts the run
// back into the running state.
// Returns EINVALID if the run is not awaiting input.
func (r *Run) Resume(answer string) error {
	if r.State != StateAwaitingInput {
		return docagent.Errorf(docagent.EINVALID, "run %s is %s, not awaiting input", r.ID, r.State)
	}
	r.Questions = append(r.Questions, docagent.AnsweredQuestion{
		Question: r.Question,
		Answer:   answer,
	})
	r.Question = ""
	r.State = StateRunning
	return nil
}

// IsOpen reports whether url is already among the open pages.
func (r *Run) IsOpen(url string) bool {
	for _, p := range r.Pages {
		if p.URL == url {
			return true
		}
	}
	return false
}

func (r *Run) fail(err error) error {
	r.State = StateFailed
	r.Err = err
	return err
}
