package view

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"golang.org/x/term"
)

// Prompter reads form input.
type Prompter interface {
	Ask(label string) (string, error)
	AskSecret(label string) (string, error)
}

// LinePrompter reads newline-terminated answers from one reader. The REPL
// reads its command lines through the same instance so no input is lost
// between two buffers.
type LinePrompter struct {
	mu  sync.Mutex
	in  *bufio.Reader
	out io.Writer

	// readSecret reads one line with echo off. It is nil unless in is a
	// terminal.
	readSecret func() ([]byte, error)
}

// NewLinePrompter creates a LinePrompter. When in is a terminal, secrets
// are read with echo disabled.
func NewLinePrompter(in io.Reader, out io.Writer) *LinePrompter {
	p := &LinePrompter{in: bufio.NewReader(in), out: out}
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		fd := int(f.Fd())
		p.readSecret = func() ([]byte, error) { return term.ReadPassword(fd) }
	}
	return p
}

// ReadLine prints prompt and returns the next line without its line
// ending. A final line without a newline is returned before io.EOF.
func (p *LinePrompter) ReadLine(prompt string) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if prompt != "" {
		fmt.Fprint(p.out, prompt)
	}
	line, err := p.in.ReadString('\n')
	if err != nil {
		if err == io.EOF && line != "" {
			return strings.TrimRight(line, "\r\n"), nil
		}
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// Ask prompts for label and trims surrounding space.
func (p *LinePrompter) Ask(label string) (string, error) {
	line, err := p.ReadLine(label + ": ")
	if err != nil {
		return "", fmt.Errorf("read %s: %w", strings.ToLower(label), err)
	}
	return strings.TrimSpace(line), nil
}

// AskSecret prompts for label and returns the answer untrimmed. On a
// terminal the answer is not echoed; piped input is read as a plain line.
func (p *LinePrompter) AskSecret(label string) (string, error) {
	if p.readSecret == nil {
		line, err := p.ReadLine(label + ": ")
		if err != nil {
			return "", fmt.Errorf("read %s: %w", strings.ToLower(label), err)
		}
		return line, nil
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	fmt.Fprint(p.out, label+": ")
	secret, err := p.readSecret()
	// The newline typed by the user was not echoed either.
	fmt.Fprintln(p.out)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", strings.ToLower(label), err)
	}
	return string(secret), nil
}
