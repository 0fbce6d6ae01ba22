package repl

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/yndnr/mitaina-cli/internal/cli/router"
)

// LineReader reads one line of input after printing prompt.
type LineReader interface {
	ReadLine(prompt string) (string, error)
}

// Pages navigates and renders routes.
type Pages interface {
	Open(ctx context.Context, path string) (*router.Location, error)
	Back(ctx context.Context) (*router.Location, error)
}

// Executor runs one command line split into arguments.
type Executor func(ctx context.Context, args []string) error

// Config wires a REPL.
type Config struct {
	Input     LineReader
	Output    io.Writer
	Pages     Pages
	Exec      Executor
	History   *History
	Completer *Completer

	// Prompt returns the prompt text. Defaults to "mitaina> ".
	Prompt func() string

	// AfterLine runs after each handled line, e.g. to render a
	// redirect forced by an expired session.
	AfterLine func(ctx context.Context)
}

// REPL represents the Read-Eval-Print Loop.
type REPL struct {
	cfg Config
}

// New creates a new REPL instance.
func New(cfg Config) *REPL {
	if cfg.History == nil {
		cfg.History = NewHistory("", 0)
	}
	if cfg.Completer == nil {
		cfg.Completer = NewCompleter(nil, nil)
	}
	if cfg.Prompt == nil {
		cfg.Prompt = func() string { return "mitaina> " }
	}
	return &REPL{cfg: cfg}
}

// History returns the line history.
func (r *REPL) History() *History {
	return r.cfg.History
}

type readResult struct {
	line string
	err  error
}

// Run reads and handles lines until exit, end of input or ctx is done.
func (r *REPL) Run(ctx context.Context) error {
	out := r.cfg.Output

	for {
		lines := make(chan readResult, 1)
		go func() {
			line, err := r.cfg.Input.ReadLine(r.cfg.Prompt())
			lines <- readResult{line, err}
		}()

		var res readResult
		select {
		case <-ctx.Done():
			fmt.Fprintln(out)
			return nil
		case res = <-lines:
		}

		if errors.Is(res.err, io.EOF) {
			fmt.Fprintln(out)
			return nil
		}
		if res.err != nil {
			return res.err
		}

		line := strings.TrimSpace(res.line)
		if line == "" {
			continue
		}
		r.cfg.History.Add(line)

		if line == "exit" || line == "quit" {
			return nil
		}

		if err := r.execute(ctx, line); err != nil {
			if ctx.Err() != nil {
				fmt.Fprintln(out)
				return nil
			}
			fmt.Fprintf(out, "error: %v\n", err)
		}
		if r.cfg.AfterLine != nil {
			r.cfg.AfterLine(ctx)
		}
	}
}

func (r *REPL) execute(ctx context.Context, line string) error {
	if strings.HasPrefix(line, "/") {
		_, err := r.cfg.Pages.Open(ctx, line)
		return err
	}

	args, err := Tokenize(line)
	if err != nil {
		return err
	}

	switch args[0] {
	case "back":
		_, err := r.cfg.Pages.Back(ctx)
		return err
	case "complete":
		prefix := ""
		if len(args) > 1 {
			prefix = strings.Join(args[1:], " ")
		}
		for _, s := range r.cfg.Completer.Complete(prefix) {
			fmt.Fprintln(r.cfg.Output, s)
		}
		return nil
	case "help":
		if len(args) == 1 {
			r.help()
			return nil
		}
	}

	if r.cfg.Exec == nil {
		return fmt.Errorf("unknown command %q", args[0])
	}
	return r.cfg.Exec(ctx, args)
}

func (r *REPL) help() {
	out := r.cfg.Output
	fmt.Fprintln(out, "Navigate:  /PATH (e.g. /, /login, /p/12, /u/taro)")
	fmt.Fprintln(out, "           back")
	fmt.Fprintln(out, "Run:       any mitaina-cli command without the program name")
	fmt.Fprintln(out, "Complete:  complete PREFIX")
	fmt.Fprintln(out, "Leave:     exit, quit, Ctrl-D")
	fmt.Fprintln(out, "Help:      help COMMAND")
}
