// Package opener shows the file chosen in a browse session: in an editor,
// on stdout, or as a bare path for shell composition.
package opener

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/indaco/nmsearch/internal/browse"
	"github.com/indaco/nmsearch/internal/core"
	"mvdan.cc/sh/v3/shell"
)

// ErrNoEditor is returned when an editor command expands to nothing.
var ErrNoEditor = errors.New("no editor command")

// Runner starts an external command attached to the terminal.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) error
}

// ExecRunner runs commands with os/exec using the process stdio.
type ExecRunner struct{}

func (ExecRunner) Run(ctx context.Context, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}

// Editor opens files with an editor command line such as "code --wait".
type Editor struct {
	args   []string
	runner Runner
}

// NewEditor parses command with shell quoting rules; environment variables
// in it are expanded with getenv.
func NewEditor(command string, getenv func(string) string, runner Runner) (*Editor, error) {
	args, err := shell.Fields(command, getenv)
	if err != nil {
		return nil, fmt.Errorf("invalid editor command %q: %w", command, err)
	}
	if len(args) == 0 {
		return nil, ErrNoEditor
	}
	if runner == nil {
		runner = ExecRunner{}
	}
	return &Editor{args: args, runner: runner}, nil
}

// Open runs the editor with path as its last argument.
func (e *Editor) Open(ctx context.Context, path string) error {
	args := append(append([]string(nil), e.args[1:]...), path)
	if err := e.runner.Run(ctx, e.args[0], args...); err != nil {
		return fmt.Errorf("%s: %w", e.args[0], err)
	}
	return nil
}

// Command returns the parsed editor command line.
func (e *Editor) Command() []string {
	return append([]string(nil), e.args...)
}

// Writer copies the file contents to w.
type Writer struct {
	fs core.FileSystem
	w  io.Writer
}

// NewWriter creates a Writer.
func NewWriter(fs core.FileSystem, w io.Writer) *Writer {
	return &Writer{fs: fs, w: w}
}

func (o *Writer) Open(ctx context.Context, path string) error {
	data, err := o.fs.ReadFile(ctx, path)
	if err != nil {
		return err
	}
	_, err = o.w.Write(data)
	return err
}

// Path prints the path of the file instead of opening it.
type Path struct {
	w io.Writer
}

// NewPath creates a Path opener.
func NewPath(w io.Writer) *Path {
	return &Path{w: w}
}

func (o *Path) Open(_ context.Context, path string) error {
	_, err := fmt.Fprintln(o.w, path)
	return err
}

// Options selects the opener built by New.
type Options struct {
	// Editor is the configured editor command; $VISUAL and $EDITOR are used
	// when empty.
	Editor string

	// PrintPath prints the path instead of opening the file.
	PrintPath bool

	FileSystem core.FileSystem
	Stdout     io.Writer
	Getenv     func(string) string
	Runner     Runner
}

// New returns the opener for opts: the path printer when PrintPath is set,
// else the editor when one is configured, else the file is written to stdout.
func New(opts Options) (browse.Opener, error) {
	stdout := opts.Stdout
	if stdout == nil {
		stdout = os.Stdout
	}
	if opts.PrintPath {
		return NewPath(stdout), nil
	}

	getenv := opts.Getenv
	if getenv == nil {
		getenv = os.Getenv
	}
	command := editorCommand(opts.Editor, getenv)
	if command == "" {
		return NewWriter(opts.FileSystem, stdout), nil
	}
	editor, err := NewEditor(command, getenv, opts.Runner)
	if err != nil {
		return nil, err
	}
	return editor, nil
}

func editorCommand(configured string, getenv func(string) string) string {
	for _, c := range []string{configured, getenv("VISUAL"), getenv("EDITOR")} {
		if c = strings.TrimSpace(c); c != "" {
			return c
		}
	}
	return ""
}
