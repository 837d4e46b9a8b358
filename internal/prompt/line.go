package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

// DefaultAffirmatives is the loose affirmative token set.
var DefaultAffirmatives = []string{"y", "yes"}

// StrictAffirmatives accepts only a spelled-out "yes".
var StrictAffirmatives = []string{"yes"}

// LineConfirmer reads one line per question from a plain reader.
//
// The answer is trimmed and lowercased, then matched against the
// affirmative token set; anything else (including an empty line or EOF)
// is a negative answer, so the destructive and expensive paths default
// to "do nothing".
type LineConfirmer struct {
	in           *bufio.Reader
	out          io.Writer
	affirmatives []string
}

// NewLineConfirmer creates a LineConfirmer over the given streams.
// An empty affirmative set falls back to DefaultAffirmatives.
func NewLineConfirmer(in io.Reader, out io.Writer, affirmatives ...string) *LineConfirmer {
	if len(affirmatives) == 0 {
		affirmatives = DefaultAffirmatives
	}
	return &LineConfirmer{
		in:           bufio.NewReader(in),
		out:          out,
		affirmatives: affirmatives,
	}
}

// Confirm prints the question and blocks for a single line of input.
func (c *LineConfirmer) Confirm(question string) (bool, error) {
	if _, err := fmt.Fprintf(c.out, "%s (yes/no) ", question); err != nil {
		return false, fmt.Errorf("failed to write prompt: %w", err)
	}

	line, err := c.in.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false, fmt.Errorf("failed to read answer: %w", err)
	}

	return IsAffirmative(line, c.affirmatives), nil
}

// IsAffirmative normalizes a free-text answer and matches it against the
// given token set, case-insensitively.
func IsAffirmative(answer string, affirmatives []string) bool {
	normalized := strings.ToLower(strings.TrimSpace(answer))
	for _, token := range affirmatives {
		if normalized == token {
			return true
		}
	}
	return false
}
