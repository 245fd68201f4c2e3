package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

// ErrNoInput is returned when the input stream ends before a line is read.
var ErrNoInput = errors.New("no input available")

// Prompter asks questions on out and reads answers from in. Both prompts of
// a run must share one Prompter so buffered input is not lost.
type Prompter struct {
	in  *bufio.Reader
	out io.Writer
}

func New(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{in: bufio.NewReader(in), out: out}
}

// Line prints question and returns the next input line, trimmed.
func (p *Prompter) Line(question string) (string, error) {
	fmt.Fprintln(p.out, question)
	line, err := p.in.ReadString('\n')
	if err != nil {
		if !errors.Is(err, io.EOF) {
			return "", fmt.Errorf("failed to read input: %w", err)
		}
		if line == "" {
			return "", ErrNoInput
		}
	}
	return strings.TrimSpace(line), nil
}

// Confirm asks a yes/no question defaulting to yes. Only an empty answer or
// "y" (any case) confirms; a closed input declines.
func (p *Prompter) Confirm(question string) (bool, error) {
	answer, err := p.Line(question + " [Y/n]")
	if err != nil {
		if errors.Is(err, ErrNoInput) {
			return false, nil
		}
		return false, err
	}
	answer = strings.ToLower(answer)
	return answer == "" || answer == "y", nil
}
