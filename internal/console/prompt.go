package console

import (
	"context"
	"errors"
	"io"
	"strings"

	"github.com/chzyer/readline"
)

// ErrNoInput is returned when the input ends before an answer is given.
var ErrNoInput = errors.New("no input")

// Prompter asks the user for a single line of input.
type Prompter interface {
	Prompt(label string) (string, error)
}

// ReadlinePrompter prompts with line editing on the terminal.
type ReadlinePrompter struct {
	stdin  io.ReadCloser
	stdout io.Writer
}

// NewReadlinePrompter creates a prompter. Nil streams default to the
// process's standard input and output.
func NewReadlinePrompter(stdin io.ReadCloser, stdout io.Writer) *ReadlinePrompter {
	return &ReadlinePrompter{stdin: stdin, stdout: stdout}
}

// Prompt shows label and returns the trimmed answer. An interrupt (^C) is
// reported as context.Canceled.
func (p *ReadlinePrompter) Prompt(label string) (string, error) {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          label,
		InterruptPrompt: "^C",
		Stdin:           p.stdin,
		Stdout:          p.stdout,
	})
	if err != nil {
		return "", err
	}
	defer rl.Close()

	line, err := rl.Readline()
	switch {
	case errors.Is(err, readline.ErrInterrupt):
		return "", context.Canceled
	case errors.Is(err, io.EOF):
		return "", ErrNoInput
	case err != nil:
		return "", err
	}
	return strings.TrimSpace(line), nil
}
