// Package menu implements the interactive shell: a synchronous
// read-evaluate loop over numbered menus that assemble argument vectors
// for the process runner, plus session, comparison and report actions.
package menu

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"

	"github.com/redeyescan/redeye/internal/config"
	"github.com/redeyescan/redeye/internal/errors"
	"github.com/redeyescan/redeye/internal/logging"
	"github.com/redeyescan/redeye/internal/session"
	"github.com/redeyescan/redeye/internal/ui"
)

// State carries the shell's mutable state. It is passed explicitly into
// every handler; there are no package-level globals.
type State struct {
	Target  string
	Ports   string
	Session *session.Session
}

// Executor runs an argument vector, optionally tee-ing artifacts into a
// session. Satisfied by runner.Runner; tests substitute a recorder.
type Executor interface {
	Execute(ctx context.Context, argv []string, sess *session.Session)
}

// Shell is the interactive menu loop.
type Shell struct {
	lines <-chan lineResult
	out   io.Writer
	exec  Executor
	store *session.Store
	cfg   *config.Config

	log *logging.Logger
}

// New builds a shell reading choices from in and printing to out.
func New(cfg *config.Config, store *session.Store, exec Executor, in io.Reader, out io.Writer) *Shell {
	return &Shell{
		lines: readLines(in),
		out:   out,
		exec:  exec,
		store: store,
		cfg:   cfg,
		log:   logging.Default().WithComponent("shell"),
	}
}

type lineResult struct {
	text string
	err  error
}

// readLines pumps input lines onto a channel so prompts can race a read
// against context cancellation. An interrupt while a prompt is waiting
// takes effect immediately instead of after the next Enter.
func readLines(in io.Reader) <-chan lineResult {
	lines := make(chan lineResult)
	go func() {
		reader := bufio.NewReader(in)
		for {
			text, err := reader.ReadString('\n')
			lines <- lineResult{text: text, err: err}
			if err != nil {
				close(lines)
				return
			}
		}
	}()
	return lines
}

// Run drives the main menu until the user exits or the context is
// canceled (the interrupt signal). It always returns a clean nil: every
// failure inside the loop is reported and recovered locally.
func (s *Shell) Run(ctx context.Context) error {
	st := &State{Ports: s.cfg.Scanning.DefaultPorts}

	for {
		if ctx.Err() != nil {
			fmt.Fprintln(s.out, ui.WarnStyle.Render("Operation cancelled. Exiting."))
			return nil
		}

		s.printMainMenu(st)
		choice, err := s.readLine(ctx, "Enter your choice: ")
		if err != nil {
			if ctx.Err() != nil {
				fmt.Fprintln(s.out, ui.WarnStyle.Render("Operation cancelled. Exiting."))
				return nil
			}
			// EOF on stdin
			fmt.Fprintln(s.out, ui.SuccessStyle.Render("Exiting. Goodbye!"))
			return nil
		}

		if quit := s.dispatch(ctx, choice, st); quit {
			return nil
		}
	}
}

// scanChoices are the main-menu selections that need a target.
var scanChoices = map[string]bool{
	"3": true, "4": true, "5": true, "6": true, "7": true, "11": true,
}

// dispatch executes one main-menu selection and reports whether the loop
// should terminate.
func (s *Shell) dispatch(ctx context.Context, choice string, st *State) bool {
	if scanChoices[choice] && st.Target == "" {
		fmt.Fprintln(s.out, ui.ErrorStyle.Render("No target has been set. Please use option '1' first."))
		return false
	}

	switch choice {
	case "1":
		s.setTarget(ctx, st)
	case "2":
		s.setPorts(ctx, st)
	case "3":
		s.exec.Execute(ctx, PingScan(st.Target), st.Session)
	case "4":
		s.exec.Execute(ctx, IntenseScan(st.Target, st.Ports), st.Session)
	case "5":
		s.exec.Execute(ctx, FastScan(st.Target, st.Ports), st.Session)
	case "6":
		s.exec.Execute(ctx, DefaultScriptsScan(st.Target, st.Ports), st.Session)
	case "7":
		s.exec.Execute(ctx, VulnScan(st.Target, st.Ports), st.Session)
	case "8":
		s.setSession(ctx, st)
	case "9":
		s.compareScans(ctx, st)
	case "10":
		s.generateReport(ctx, st)
	case "11":
		s.runAdvancedMenu(ctx, st)
	case "12":
		s.runCustomCommand(ctx, st)
	case "13":
		s.runHelper(ctx)
	case "0":
		fmt.Fprintln(s.out, ui.SuccessStyle.Render("Exiting. Goodbye!"))
		return true
	default:
		fmt.Fprintln(s.out, ui.ErrorStyle.Render("Invalid choice. Please try again."))
	}
	return false
}

func (s *Shell) setTarget(ctx context.Context, st *State) {
	target, err := s.readLine(ctx, "Enter target IP or domain: ")
	if err != nil || target == "" {
		fmt.Fprintln(s.out, ui.ErrorStyle.Render("Target cannot be empty."))
		return
	}
	st.Target = target
	s.log.InfoScan("target set", target)
}

func (s *Shell) setPorts(ctx context.Context, st *State) {
	ports, err := s.readLine(ctx, "Enter custom ports (or blank to clear): ")
	if err != nil {
		return
	}
	st.Ports = ports
	if ports == "" {
		fmt.Fprintln(s.out, ui.InfoStyle.Render("Custom ports cleared; scanner defaults apply."))
	}
}

func (s *Shell) setSession(ctx context.Context, st *State) {
	name, err := s.readLine(ctx, "Enter session name (e.g., 'project_x'): ")
	if err != nil {
		return
	}

	sess, err := s.store.Create(name)
	if err != nil {
		fmt.Fprintln(s.out, ui.ErrorStyle.Render(sessionCreateMessage(err)))
		return
	}
	st.Session = sess
	s.log.WithSession(sess.Name).Info("session activated", "dir", sess.Dir)
	fmt.Fprintln(s.out, ui.SuccessStyle.Render(
		fmt.Sprintf("Session '%s' is active. Scans will be saved to '%s'.", sess.Name, sess.Dir)))
}

func sessionCreateMessage(err error) string {
	if errors.IsCode(err, errors.CodeEmptyInput) {
		return "Session name cannot be empty."
	}
	return fmt.Sprintf("Failed to create session directory: %v", err)
}

// compareScans selects two structured artifacts by index and diffs them.
func (s *Shell) compareScans(ctx context.Context, st *State) {
	if st.Session == nil {
		fmt.Fprintln(s.out, ui.ErrorStyle.Render("Please set a session first (Option 8)."))
		return
	}

	files := s.listArtifacts(st.Session.Name, session.StructuredExt)
	if len(files) < 2 {
		fmt.Fprintln(s.out, ui.WarnStyle.Render("You need at least two XML scans in this session to compare."))
		return
	}

	first, err := s.promptIndex(ctx, "Select the first file (number): ", len(files))
	if err != nil {
		fmt.Fprintln(s.out, ui.ErrorStyle.Render("Invalid selection."))
		return
	}
	second, err := s.promptIndex(ctx, "Select the second file (number): ", len(files))
	if err != nil {
		fmt.Fprintln(s.out, ui.ErrorStyle.Render("Invalid selection."))
		return
	}

	pathA := s.store.ArtifactPath(st.Session.Name, files[first])
	pathB := s.store.ArtifactPath(st.Session.Name, files[second])
	s.exec.Execute(ctx, CompareArgs(s.cfg.Tools.Ndiff, pathA, pathB), nil)
}

// generateReport transforms one structured artifact into an HTML sibling.
func (s *Shell) generateReport(ctx context.Context, st *State) {
	if st.Session == nil {
		fmt.Fprintln(s.out, ui.ErrorStyle.Render("Please set a session first (Option 8)."))
		return
	}

	files := s.listArtifacts(st.Session.Name, session.StructuredExt)
	if len(files) == 0 {
		fmt.Fprintln(s.out, ui.WarnStyle.Render(
			fmt.Sprintf("No '%s' files found in session '%s'.", session.StructuredExt, st.Session.Name)))
		return
	}

	idx, err := s.promptIndex(ctx, "Select the XML file to generate a report from: ", len(files))
	if err != nil {
		fmt.Fprintln(s.out, ui.ErrorStyle.Render("Invalid selection."))
		return
	}

	xmlPath := s.store.ArtifactPath(st.Session.Name, files[idx])
	htmlPath := strings.TrimSuffix(xmlPath, session.StructuredExt) + session.ReportExt

	fmt.Fprintln(s.out, ui.InfoStyle.Render("Generating HTML report..."))
	s.exec.Execute(ctx, ReportArgs(s.cfg.Tools.Xsltproc, s.cfg.Tools.Stylesheet, htmlPath, xmlPath), nil)
	fmt.Fprintln(s.out, ui.MutedStyle.Render(
		"Hint: if the transform failed, make sure nmap's XSL stylesheet is in xsltproc's search path."))
}

// runCustomCommand accepts a full nmap command line, splits it into an
// argument vector, and runs it under the current session.
func (s *Shell) runCustomCommand(ctx context.Context, st *State) {
	input, err := s.readLine(ctx, "Enter full nmap command: ")
	if err != nil {
		return
	}
	if !strings.HasPrefix(strings.ToLower(input), "nmap ") {
		fmt.Fprintln(s.out, ui.ErrorStyle.Render("Invalid command. It must start with 'nmap '."))
		return
	}
	s.exec.Execute(ctx, strings.Fields(input), st.Session)
}

// runAdvancedMenu drives the advanced scans sub-menu until the user backs
// out. The target gate was already enforced by dispatch.
func (s *Shell) runAdvancedMenu(ctx context.Context, st *State) {
	for {
		s.printAdvancedMenu(st)
		choice, err := s.readLine(ctx, "Select an advanced scan: ")
		if err != nil || choice == "0" {
			return
		}

		idx, convErr := strconv.Atoi(choice)
		if convErr != nil || idx < 1 || idx > len(advancedScans) {
			fmt.Fprintln(s.out, ui.ErrorStyle.Render("Invalid choice."))
			continue
		}

		scan := advancedScans[idx-1]
		if scan.warning != "" {
			fmt.Fprintln(s.out, ui.DangerStyle.Render(scan.warning))
		}
		if scan.confirm && s.cfg.Scanning.ConfirmDangerous && !s.confirm(ctx, "Are you sure you want to continue? (yes/no): ") {
			continue
		}

		zombie := ""
		if scan.needsZombie {
			zombie, err = s.readLine(ctx, "Enter Zombie IP for Idle Scan: ")
			if err != nil || zombie == "" {
				continue
			}
		}

		s.exec.Execute(ctx, scan.build(st.Target, st.Ports, zombie), st.Session)
	}
}

// listArtifacts prints an indexed table of matching artifacts and returns
// them in the displayed (sorted) order.
func (s *Shell) listArtifacts(sessionName, suffix string) []string {
	files := s.store.ListArtifacts(sessionName, suffix)
	if len(files) == 0 {
		return files
	}

	fmt.Fprintln(s.out, ui.HeaderStyle.Render(
		fmt.Sprintf("Available '%s' files in '%s':", suffix, sessionName)))
	table := tablewriter.NewWriter(s.out)
	table.Header("#", "File")
	for i, file := range files {
		_ = table.Append([]string{strconv.Itoa(i + 1), file})
	}
	_ = table.Render()
	return files
}

// readLine prompts and returns one trimmed input line, or an error on
// EOF or cancellation.
func (s *Shell) readLine(ctx context.Context, prompt string) (string, error) {
	fmt.Fprint(s.out, ui.PromptStyle.Render(prompt))
	select {
	case r, ok := <-s.lines:
		if !ok {
			return "", io.EOF
		}
		if r.err != nil && r.text == "" {
			return "", r.err
		}
		return strings.TrimSpace(r.text), nil
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

// promptIndex reads a 1-based selection and returns a 0-based index,
// rejecting non-numeric and out-of-range input.
func (s *Shell) promptIndex(ctx context.Context, prompt string, n int) (int, error) {
	input, err := s.readLine(ctx, prompt)
	if err != nil {
		return 0, err
	}
	idx, err := strconv.Atoi(input)
	if err != nil || idx < 1 || idx > n {
		return 0, errors.ErrInvalidSelection(input)
	}
	return idx - 1, nil
}

// confirm reads a yes/no answer; only an explicit "yes" passes.
func (s *Shell) confirm(ctx context.Context, prompt string) bool {
	answer, err := s.readLine(ctx, prompt)
	if err != nil {
		return false
	}
	return strings.ToLower(answer) == "yes"
}
