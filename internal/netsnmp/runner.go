// Package netsnmp drives the net-snmp command line tools.
package netsnmp

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os/exec"
	"strings"

	"go.uber.org/zap"
)

const (
	snmptranslate = "snmptranslate"
	snmpwalk      = "snmpwalk"
)

var (
	ErrToolNotFound = errors.New("net-snmp tool not found")
	ErrNoOutput     = errors.New("no output from net-snmp tool")
)

// Runner runs an external command and returns its standard output.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) ([]byte, error)
}

// ExitError is returned when a tool exits with a non-zero status.
type ExitError struct {
	Tool   string
	Args   []string
	Code   int
	Output string
}

func (e *ExitError) Error() string {
	out := strings.TrimSpace(e.Output)
	if out == "" {
		return fmt.Sprintf("%s exited with status %d", e.Tool, e.Code)
	}
	return fmt.Sprintf("%s exited with status %d: %s", e.Tool, e.Code, out)
}

// ExecRunner runs tools with os/exec.
type ExecRunner struct {
	logger *zap.Logger
}

func NewExecRunner(logger *zap.Logger) *ExecRunner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExecRunner{logger: logger}
}

func (r *ExecRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	r.logger.Debug("exec", zap.String("cmd", name), zap.Strings("args", args))
	if err := cmd.Run(); err != nil {
		if errors.Is(err, exec.ErrNotFound) || errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrToolNotFound, name)
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return nil, &ExitError{
				Tool:   name,
				Args:   args,
				Code:   exitErr.ExitCode(),
				Output: stderr.String() + stdout.String(),
			}
		}
		return nil, err
	}
	return stdout.Bytes(), nil
}

// CheckTools returns ErrToolNotFound unless every named tool is on PATH.
func CheckTools(names ...string) error {
	var missing []string
	for _, name := range names {
		if _, err := exec.LookPath(name); err != nil {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s (install net-snmp utilities)", ErrToolNotFound, strings.Join(missing, ", "))
	}
	return nil
}
