// SPDX-License-Identifier: MPL-2.0

package convert

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"os/exec"

	"docport-cli/pkg/platform"

	"github.com/charmbracelet/log"
)

type (
	// Invoker builds and runs converter invocations. Construct with
	// NewInvoker.
	Invoker struct {
		logger *log.Logger
		run    runFunc
	}

	// runFunc executes a prepared command and reports the process exit
	// code, or a spawn error when the process never started. Tests swap
	// it to simulate converter behavior without a real binary.
	runFunc func(cmd *exec.Cmd) (ExitCode, error)

	// PreparedInvocation is a converter command ready for execution
	// along with its cleanup function. Cleanup removes the transient
	// input file and must be called after execution completes; it may
	// be called regardless of whether Run succeeded.
	PreparedInvocation struct {
		// Cmd is the prepared command.
		Cmd *exec.Cmd
		// CommandLine is the human-readable form of the command.
		CommandLine string
		// InputPath is the transient input file the command reads.
		InputPath string
		// Cleanup removes the transient input file, best-effort.
		Cleanup func()
	}
)

// NewInvoker creates an Invoker that logs invocation diagnostics to
// the given logger. A nil logger discards them.
func NewInvoker(logger *log.Logger) *Invoker {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Invoker{
		logger: logger,
		run:    runPrepared,
	}
}

// Prepare materializes the job's input and constructs the platform
// command without running it. Callers own the returned Cleanup.
func (iv *Invoker) Prepare(ctx context.Context, exePath string, job Job, facts platform.Facts) (*PreparedInvocation, error) {
	if ok, errs := job.IsValid(); !ok {
		return nil, &InvalidJobError{FieldErrors: errs}
	}

	inputPath, cleanup, err := materializeInput(job.DocumentName, job.Content)
	if err != nil {
		return nil, err
	}

	args, err := buildArgs(job, inputPath)
	if err != nil {
		cleanup()
		return nil, err
	}

	profile := profileFor(facts)
	commandLine, err := renderCommandLine(profile, exePath, args)
	if err != nil {
		cleanup()
		return nil, err
	}

	var cmd *exec.Cmd
	if profile.wrapInShell {
		shellArgs := append(platform.ShellCommandArgs(facts.Shell), commandLine)
		cmd = exec.CommandContext(ctx, facts.Shell, shellArgs...)
		// The caller's environment is forwarded unchanged; the explicit
		// SHELL entry records which shell the invocation went through.
		cmd.Env = append(os.Environ(), "SHELL="+facts.Shell)
	} else {
		cmd = exec.CommandContext(ctx, exePath, args...)
		cmd.Env = os.Environ()
	}

	return &PreparedInvocation{
		Cmd:         cmd,
		CommandLine: commandLine,
		InputPath:   inputPath,
		Cleanup:     cleanup,
	}, nil
}

// Invoke runs the converter for one job and classifies the outcome.
// Expected converter failures (absent tool, missing engine, nonzero
// exit) land in the Result, never in the error return; the error
// covers preparation problems only. The transient input file is
// removed before Invoke returns, whatever the outcome.
func (iv *Invoker) Invoke(ctx context.Context, exePath string, job Job, facts platform.Facts) (*Result, error) {
	prepared, err := iv.Prepare(ctx, exePath, job, facts)
	if err != nil {
		return nil, err
	}
	defer prepared.Cleanup()

	var stdout, stderr bytes.Buffer
	prepared.Cmd.Stdout = &stdout
	prepared.Cmd.Stderr = &stderr

	iv.logger.Debug("running converter", "command", prepared.CommandLine)
	exitCode, spawnErr := iv.run(prepared.Cmd)

	result := &Result{
		ExitCode:    exitCode,
		Output:      stdout.String(),
		ErrOutput:   stderr.String(),
		CommandLine: prepared.CommandLine,
		OutputPath:  job.OutputPath,
		InputPath:   prepared.InputPath,
		Error:       spawnErr,
	}

	diagnostics := result.ErrOutput
	if spawnErr != nil {
		diagnostics += "\n" + spawnErr.Error()
	}
	result.Outcome = classifyOutcome(spawnErr, exitCode, diagnostics)

	switch {
	case result.Outcome == OutcomeSuccess && result.Warning() != "":
		iv.logger.Warn("converter succeeded with diagnostics", "stderr", result.Warning())
	case result.Outcome != OutcomeSuccess:
		iv.logger.Debug("converter failed",
			"outcome", result.Outcome.String(), "exitCode", exitCode.String(), "stderr", result.ErrOutput)
	}

	return result, nil
}

// runPrepared is the real runFunc: run the process and extract the
// exit code, distinguishing a nonzero exit from a failure to spawn.
func runPrepared(cmd *exec.Cmd) (ExitCode, error) {
	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return ExitCode(exitErr.ExitCode()), nil
		}
		return ExitCode(-1), err
	}
	return 0, nil
}
