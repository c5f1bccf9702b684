package cmd

import (
	"context"
	"os/exec"
	"strings"
)

// Runner spawns external commands from an argument list,
// never going through a shell
type Runner interface {
	// Run executes the command discarding any output,
	// failing on non-zero exit status
	Run(ctx context.Context, name string, args ...string) error
	// Output executes the command returning its standard output
	Output(ctx context.Context, name string, args ...string) (string, error)
}

type ExecRunner struct{}

func (ExecRunner) Run(ctx context.Context, name string, args ...string) error {
	return exec.CommandContext(ctx, name, args...).Run()
}

func (ExecRunner) Output(ctx context.Context, name string, args ...string) (string, error) {
	output, err := exec.CommandContext(ctx, name, args...).Output()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(output)), nil
}
