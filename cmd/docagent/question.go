package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/fwojciec/docagent"
)

var _ docagent.Questioner = (*Questioner)(nil)

// Questioner asks the user on the terminal.
type Questioner struct {
	in  *bufio.Reader
	out io.Writer
}

// NewQuestioner reads answers from r and prompts on w.
func NewQuestioner(r io.Reader, w io.Writer) *Questioner {
	return &Questioner{in: bufio.NewReader(r), out: w}
}

// Ask prompts for an answer and reads one line. The question itself has
// already been printed by the run command.
// Returns EINVALID if input ends before an answer is given.
func (q *Questioner) Ask(ctx context.Context, question string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	fmt.Fprint(q.out, "> ")
	line, err := q.in.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return "", docagent.Errorf(docagent.EINVALID, "no answer to %q", question)
	}
	return strings.TrimRight(line, "\r\n"), nil
}
