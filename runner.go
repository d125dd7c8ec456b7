package serial

import (
	"bytes"
	"context"
	"errors"
	"os"
	"os/exec"
)

// CommandResult is the outcome of one platform configuration command.
// ExitCode 0 means success.
type CommandResult struct {
	ExitCode int
	Stdout   string
	Stderr   string
}

// Runner executes an external configuration command. Implementations return a
// non-nil error only when the command could not be run at all; a command that
// ran and failed is reported through CommandResult.ExitCode.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) (CommandResult, error)
}

// execRunner runs commands with os/exec
type execRunner struct {
	env []string // appended to the inherited environment
}

// NewExecRunner returns a Runner backed by os/exec. env entries ("KEY=value")
// are added to the environment of every command it starts.
func NewExecRunner(env ...string) Runner {
	return &execRunner{env: env}
}

func (r *execRunner) Run(ctx context.Context, name string, args ...string) (CommandResult, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	if len(r.env) > 0 {
		cmd.Env = append(os.Environ(), r.env...)
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	res := CommandResult{
		Stdout: stdout.String(),
		Stderr: stderr.String(),
	}

	var exitErr *exec.ExitError
	switch {
	case err == nil:
		return res, nil
	case errors.As(err, &exitErr):
		// -1 when killed by a signal, e.g. on context deadline
		res.ExitCode = exitErr.ExitCode()
		return res, nil
	default:
		return res, err
	}
}
