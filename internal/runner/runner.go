// Package runner executes external tool invocations as child processes,
// streaming their combined output line-by-line to the console as it is
// produced. When a session is active, real scans are transparently given
// output-file arguments so their results land in the session directory.
package runner

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/redeyescan/redeye/internal/errors"
	"github.com/redeyescan/redeye/internal/logging"
	"github.com/redeyescan/redeye/internal/session"
	"github.com/redeyescan/redeye/internal/ui"
)

const separatorWidth = 60

// LineSink receives one line of child-process output at a time.
type LineSink func(line string)

// StartFunc launches an argument vector with stderr merged into stdout and
// returns a reader over the combined stream plus a wait function for the
// exit status. Replaceable in tests.
type StartFunc func(ctx context.Context, argv []string) (io.ReadCloser, func() error, error)

// Runner executes argument vectors.
type Runner struct {
	Out   io.Writer
	Start StartFunc
	Now   func() time.Time

	log *logging.Logger
}

// New returns a runner that launches real processes and prints to stdout.
func New() *Runner {
	return &Runner{
		Out:   os.Stdout,
		Start: startProcess,
		Now:   time.Now,
		log:   logging.Default().WithComponent("runner"),
	}
}

func startProcess(ctx context.Context, argv []string) (io.ReadCloser, func() error, error) {
	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	pipe, err := cmd.StdoutPipe()
	if err != nil {
		return nil, nil, err
	}
	cmd.Stderr = cmd.Stdout
	// The scanner prompts for sudo passwords on the terminal directly.
	cmd.Stdin = os.Stdin
	if err := cmd.Start(); err != nil {
		return nil, nil, err
	}
	return pipe, cmd.Wait, nil
}

// IsRealScan reports whether argv is a scan that probes ports: a direct
// nmap invocation carrying neither the ping-only nor the list-only flag.
// Only real scans produce session artifacts; sudo-prefixed commands run
// exactly as built, without output-file injection.
func IsRealScan(argv []string) bool {
	if len(argv) == 0 || argv[0] != "nmap" {
		return false
	}
	for _, arg := range argv {
		if arg == "-sn" || arg == "-sL" {
			return false
		}
	}
	return true
}

// OutputArgs returns the output-file arguments appended to a real scan for
// the given artifact base path: normal output and XML side by side.
func OutputArgs(base string) []string {
	return []string{
		"-oN", base + session.PlainExt,
		"-oX", base + session.StructuredExt,
	}
}

// Execute runs argv, streaming combined output to the console. Launch
// failures are reported, never propagated; the interactive loop always
// continues. With an active session, a real scan gets timestamped output
// files inside the session directory.
func (r *Runner) Execute(ctx context.Context, argv []string, sess *session.Session) {
	if len(argv) == 0 {
		return
	}

	var base string
	if sess != nil && IsRealScan(argv) {
		base = sess.ArtifactBase(r.Now())
		argv = append(append([]string{}, argv...), OutputArgs(base)...)
	}

	fmt.Fprintf(r.Out, "\n%s\n", ui.CommandStyle.Render("Executing: "+strings.Join(argv, " ")))
	fmt.Fprintln(r.Out, strings.Repeat("-", separatorWidth))

	err := r.Stream(ctx, argv, func(line string) {
		fmt.Fprintln(r.Out, line)
	})

	fmt.Fprintln(r.Out, "\n"+strings.Repeat("-", separatorWidth))
	if err != nil {
		r.log.WithTool(argv[0]).Error("command failed", "error", err)
		fmt.Fprintln(r.Out, ui.ErrorStyle.Render(fmt.Sprintf("An error occurred: %v", err)))
		return
	}

	fmt.Fprintln(r.Out, ui.SuccessStyle.Render("Command finished."))
	if base != "" {
		fmt.Fprintln(r.Out, ui.SuccessStyle.Render(
			fmt.Sprintf("Results saved in: %s%s / %s%s", base, session.PlainExt, base, session.StructuredExt)))
		fmt.Fprintln(r.Out)
	}
}

// Stream launches argv and forwards each output line to sink as it
// arrives, then waits for the process to exit. The child's output is never
// buffered whole; long scans surface progress immediately.
func (r *Runner) Stream(ctx context.Context, argv []string, sink LineSink) error {
	pipe, wait, err := r.Start(ctx, argv)
	if err != nil {
		return errors.ErrLaunchFailed(strings.Join(argv, " "), err)
	}

	copyErr := CopyLines(pipe, sink)
	pipe.Close()

	if err := wait(); err != nil {
		return errors.WrapLaunchError(errors.CodeExitNonZero, "Command exited abnormally", strings.Join(argv, " "), err)
	}
	if copyErr != nil {
		return errors.WrapLaunchError(errors.CodeLaunchFailed, "Reading command output failed", strings.Join(argv, " "), copyErr)
	}
	return nil
}

// CopyLines forwards lines from a combined output stream to the sink and
// returns the read error that ended the stream, if any. Split out so the
// streaming behavior is testable with scripted readers.
func CopyLines(from io.Reader, sink LineSink) error {
	scanner := bufio.NewScanner(from)
	// nmap script output can produce long lines
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		sink(scanner.Text())
	}
	return scanner.Err()
}
