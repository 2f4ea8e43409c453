package match

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// PromptOutcome is the result of one solicitation. The prompter never
// loops on its own; the selector decides whether to re-solicit.
type PromptOutcome int

const (
	PromptValid PromptOutcome = iota
	PromptRetry
	PromptCancelled
)

// IndexPrompter solicits an integer index from an input stream, one
// line per call.
type IndexPrompter struct {
	in  *bufio.Scanner
	out io.Writer
}

// NewIndexPrompter creates a prompter reading from in (normally stdin)
// and writing prompts to out.
func NewIndexPrompter(in io.Reader, out io.Writer) *IndexPrompter {
	return &IndexPrompter{in: bufio.NewScanner(in), out: out}
}

// Solicit reads one line and interprets it as an index in [0, count).
// Empty, non-integer and out-of-range input print a corrective message
// and report PromptRetry. "q", "quit" and end of input report
// PromptCancelled.
func (p *IndexPrompter) Solicit(count int) (int, PromptOutcome) {
	fmt.Fprint(p.out, `Enter index of desired result. (Enter "q" or "quit" to exit.): `)

	if !p.in.Scan() {
		// Interrupted or input closed.
		fmt.Fprintln(p.out)
		return 0, PromptCancelled
	}

	text := strings.TrimSpace(p.in.Text())
	if text == "" {
		fmt.Fprintln(p.out, "Please enter an index.")
		return 0, PromptRetry
	}
	if lowered := strings.ToLower(text); lowered == "q" || lowered == "quit" {
		return 0, PromptCancelled
	}

	value, err := strconv.Atoi(text)
	if err != nil {
		fmt.Fprintf(p.out, "'%s' is not an integer.\n", text)
		return 0, PromptRetry
	}
	if value < 0 || value >= count {
		fmt.Fprintf(p.out, "Int is out of bounds, must be in [0, %d].\n", count-1)
		return 0, PromptRetry
	}
	return value, PromptValid
}
