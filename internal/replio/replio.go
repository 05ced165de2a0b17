// Package replio reads lines of input for the interactive "type a sentence,
// see its parse tree" driver mode, grounded on the teacher's internal/input
// readers: a plain buffered reader for piped/non-tty input, and a
// chzyer/readline-backed reader for an interactive terminal session with
// history and line editing.
package replio

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"
)

// LineReader is the interface both reader implementations satisfy.
type LineReader interface {
	// ReadLine blocks until a line of input is available. At end of input it
	// returns ("", io.EOF).
	ReadLine() (string, error)
	// AllowBlank sets whether a blank line is returned as-is (true) or
	// skipped in favor of the next non-blank line (false, the default).
	AllowBlank(allow bool)
	Close() error
}

// DirectReader reads lines from any io.Reader without sanitizing escape
// sequences; suitable for piped or file-redirected input.
type DirectReader struct {
	r             *bufio.Reader
	blanksAllowed bool
}

// NewDirectReader wraps r in a DirectReader.
func NewDirectReader(r io.Reader) *DirectReader {
	return &DirectReader{r: bufio.NewReader(r)}
}

func (dr *DirectReader) AllowBlank(allow bool) { dr.blanksAllowed = allow }

func (dr *DirectReader) Close() error { return nil }

func (dr *DirectReader) ReadLine() (string, error) {
	var line string
	var err error
	for line == "" {
		line, err = dr.r.ReadString('\n')
		if err != nil && (err != io.EOF || line == "") {
			return "", err
		}
		line = strings.TrimSpace(line)
		if line == "" && dr.blanksAllowed {
			return line, nil
		}
		if err == io.EOF && line == "" {
			return "", io.EOF
		}
	}
	return line, nil
}

// InteractiveReader reads lines from a terminal via chzyer/readline, giving
// the user history and basic line editing.
type InteractiveReader struct {
	rl            *readline.Instance
	blanksAllowed bool
}

// NewInteractiveReader starts a readline session with the given prompt.
func NewInteractiveReader(prompt string) (*InteractiveReader, error) {
	rl, err := readline.NewEx(&readline.Config{Prompt: prompt})
	if err != nil {
		return nil, fmt.Errorf("create readline config: %w", err)
	}
	return &InteractiveReader{rl: rl}, nil
}

func (ir *InteractiveReader) AllowBlank(allow bool) { ir.blanksAllowed = allow }

func (ir *InteractiveReader) Close() error { return ir.rl.Close() }

func (ir *InteractiveReader) SetPrompt(p string) { ir.rl.SetPrompt(p) }

func (ir *InteractiveReader) ReadLine() (string, error) {
	var line string
	var err error
	for line == "" {
		line, err = ir.rl.Readline()
		if err != nil && (err != io.EOF || line == "") {
			return "", err
		}
		line = strings.TrimSpace(line)
		if line == "" && ir.blanksAllowed {
			return line, nil
		}
		if err == io.EOF && line == "" {
			return "", io.EOF
		}
	}
	return line, nil
}
