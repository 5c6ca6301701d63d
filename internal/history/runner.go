package history

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"
)

// ErrDecode is returned when a query produces output that is not text.
var ErrDecode = errors.New("query output is not valid UTF-8")

// QueryError reports a git invocation that exited unsuccessfully.
type QueryError struct {
	Args   []string
	Stderr string
	Err    error
}

func (e *QueryError) Error() string {
	cmd := "git " + strings.Join(e.Args, " ")
	if e.Stderr != "" {
		return fmt.Sprintf("%s: %s", cmd, e.Stderr)
	}
	return fmt.Sprintf("%s: %v", cmd, e.Err)
}

func (e *QueryError) Unwrap() error {
	return e.Err
}

// Runner executes a git subcommand in dir and returns its standard output.
type Runner interface {
	Run(ctx context.Context, dir string, args ...string) ([]byte, error)
}

// ExecRunner runs git as a child process.
type ExecRunner struct {
	// Program defaults to "git".
	Program string
	Logger  *slog.Logger
}

// Run implements Runner. A nonzero exit is always reported as a
// *QueryError, even when stdout is empty.
func (r ExecRunner) Run(ctx context.Context, dir string, args ...string) ([]byte, error) {
	program := r.Program
	if program == "" {
		program = "git"
	}

	full := args
	if dir != "" {
		full = append([]string{"-C", dir}, args...)
	}

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, program, full...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if r.Logger != nil {
		r.Logger.Debug("running query", "program", program, "args", full)
	}

	if err := cmd.Run(); err != nil {
		return nil, &QueryError{
			Args:   args,
			Stderr: strings.TrimSpace(stderr.String()),
			Err:    err,
		}
	}

	return stdout.Bytes(), nil
}
