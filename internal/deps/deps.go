// Package deps verifies that the external tools redeye drives are present
// on the search path and, when they are not, attempts to install them with
// the host's package manager.
package deps

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/redeyescan/redeye/internal/errors"
	"github.com/redeyescan/redeye/internal/logging"
	"github.com/redeyescan/redeye/internal/platform"
)

// The external tools required before the shell can start.
const (
	ToolNmap     = "nmap"
	ToolNdiff    = "ndiff"
	ToolXsltproc = "xsltproc"
)

// Required returns the default set of required tool names.
func Required() []string {
	return []string{ToolNmap, ToolNdiff, ToolXsltproc}
}

// packageOverrides maps (manager, binary) to the package that ships the
// binary when the package name differs from the binary name. Managers and
// binaries not listed here use the identity mapping. New managers or
// binaries are additive entries, not new branches.
var packageOverrides = map[string]map[string]string{
	platform.ManagerApt: {
		ToolNdiff: "nmap", // ndiff ships with the nmap package on Debian/Ubuntu
	},
	platform.ManagerPkg: {
		ToolNdiff: "nmap",
	},
	platform.ManagerPacman: {
		ToolNdiff:    "nmap",
		ToolXsltproc: "libxslt",
	},
	platform.ManagerDnf: {
		ToolNdiff:    "nmap",
		ToolXsltproc: "libxslt",
	},
	platform.ManagerYum: {
		ToolNdiff:    "nmap",
		ToolXsltproc: "libxslt",
	},
}

// PackageFor maps a binary name to the package providing it under the
// given package manager.
func PackageFor(manager, binary string) string {
	if overrides, ok := packageOverrides[manager]; ok {
		if pkg, ok := overrides[binary]; ok {
			return pkg
		}
	}
	return binary
}

// RunFunc executes an argument vector and returns its combined output.
type RunFunc func(ctx context.Context, argv []string) (output string, err error)

// Installer checks for and installs missing tools. All environment access
// goes through replaceable function fields so the flow is testable without
// touching a real package manager.
type Installer struct {
	Prober   *platform.Prober
	LookPath func(string) (string, error)
	Run      RunFunc
	Euid     func() int
	Out      io.Writer

	log *logging.Logger
}

// New returns an installer bound to the real environment.
func New() *Installer {
	return &Installer{
		Prober:   platform.NewProber(),
		LookPath: exec.LookPath,
		Run:      runCombined,
		Euid:     os.Geteuid,
		Out:      os.Stdout,
		log:      logging.Default().WithComponent("installer"),
	}
}

func runCombined(ctx context.Context, argv []string) (string, error) {
	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	out, err := cmd.CombinedOutput()
	return strings.TrimSpace(string(out)), err
}

// Check partitions the required tools into found and missing by search
// path lookup. Absence is an expected outcome, not an error.
func (i *Installer) Check(required []string) (found, missing []string) {
	for _, tool := range required {
		if _, err := i.LookPath(tool); err == nil {
			found = append(found, tool)
		} else {
			missing = append(missing, tool)
		}
	}
	return found, missing
}

// Ensure verifies all required tools are present, installing them if
// necessary. It returns true only when a final re-check finds nothing
// missing. Progress is narrated to the console throughout.
func (i *Installer) Ensure(ctx context.Context, required []string) bool {
	fmt.Fprintf(i.Out, "Checking required tools: %s\n", strings.Join(required, ", "))
	found, missing := i.Check(required)
	if len(missing) == 0 {
		fmt.Fprintf(i.Out, "All required tools are present: %s\n", strings.Join(found, ", "))
		return true
	}

	fmt.Fprintf(i.Out, "Missing tools: %s\n", strings.Join(missing, ", "))
	plat := i.Prober.Detect()
	fmt.Fprintf(i.Out, "Detected OS: %s, package manager: %s\n", plat.OSID, orNone(plat.Manager))

	if i.attemptInstall(ctx, required, missing, plat) {
		return true
	}

	if _, stillMissing := i.Check(required); len(stillMissing) > 0 {
		fmt.Fprintf(i.Out, "Could not install: %s\n", strings.Join(stillMissing, ", "))
		i.printManualInstructions(plat.Manager)
		return false
	}
	return true
}

// attemptInstall updates the package database and tries an unprivileged
// install, retrying once with sudo when tools remain missing and the
// process is not already root. The sudo retry is attempted regardless of
// why the first install failed, mirroring the tool's long-standing
// behavior.
func (i *Installer) attemptInstall(ctx context.Context, required, missing []string, plat platform.Platform) bool {
	if !plat.Known() {
		fmt.Fprintln(i.Out, "No supported package manager detected; cannot install automatically.")
		return false
	}

	if len(plat.UpdateCmd) > 0 {
		fmt.Fprintf(i.Out, "Running update: %s\n", strings.Join(plat.UpdateCmd, " "))
		if out, err := i.Run(ctx, plat.UpdateCmd); err != nil {
			updateErr := errors.WrapInstallError(errors.CodeUpdateFailed, "Package database update failed", plat.Manager, err)
			i.log.WithError(updateErr).Warn("package database update failed", "output", out)
			fmt.Fprintf(i.Out, "Warning: update command failed (%v); continuing.\n", err)
		}
	}

	packages := PackagesFor(plat.Manager, missing)
	installCmd := append(append([]string{}, plat.InstallCmd...), packages...)

	fmt.Fprintf(i.Out, "Trying install: %s (without sudo)\n", strings.Join(installCmd, " "))
	if out, err := i.Run(ctx, installCmd); err != nil {
		i.log.WithError(err).Warn("unprivileged install failed", "manager", plat.Manager, "output", out)
		fmt.Fprintf(i.Out, "Warning: install without sudo failed: %v\n", err)
	}

	if _, stillMissing := i.Check(required); len(stillMissing) == 0 {
		fmt.Fprintln(i.Out, "All tools installed successfully.")
		return true
	}

	if i.Euid() == 0 {
		fmt.Fprintln(i.Out, "Already running as root; install attempt above failed.")
		return false
	}

	sudoCmd := append([]string{"sudo"}, installCmd...)
	fmt.Fprintf(i.Out, "Retrying with sudo: %s\n", strings.Join(sudoCmd, " "))
	if out, err := i.Run(ctx, sudoCmd); err != nil {
		installErr := errors.ErrInstallFailed(plat.Manager, err)
		i.log.WithError(installErr).Error("privileged install failed", "output", out)
		fmt.Fprintf(i.Out, "Error: sudo install failed: %v\n", err)
		return false
	}

	_, stillMissing := i.Check(required)
	if len(stillMissing) == 0 {
		fmt.Fprintln(i.Out, "All tools installed successfully (with sudo).")
		return true
	}
	fmt.Fprintf(i.Out, "Still missing after sudo install: %s\n", strings.Join(stillMissing, ", "))
	return false
}

// PackagesFor maps missing binaries to package names for the manager,
// deduplicated while preserving first-seen order.
func PackagesFor(manager string, missing []string) []string {
	seen := make(map[string]bool, len(missing))
	packages := make([]string, 0, len(missing))
	for _, binary := range missing {
		pkg := PackageFor(manager, binary)
		if !seen[pkg] {
			seen[pkg] = true
			packages = append(packages, pkg)
		}
	}
	return packages
}

// printManualInstructions prints per-manager installation guidance for
// when automatic installation is impossible or failed.
func (i *Installer) printManualInstructions(manager string) {
	fmt.Fprintln(i.Out, "\n=== Manual installation suggestions ===")
	switch manager {
	case platform.ManagerApt:
		fmt.Fprintln(i.Out, "Debian/Ubuntu (APT):")
		fmt.Fprintln(i.Out, "  sudo apt-get update")
		fmt.Fprintln(i.Out, "  sudo apt-get install -y nmap ndiff xsltproc")
		fmt.Fprintln(i.Out, "  (ndiff usually ships with nmap; if not, try 'apt-cache search ndiff')")
	case platform.ManagerPkg:
		fmt.Fprintln(i.Out, "Termux (pkg):")
		fmt.Fprintln(i.Out, "  pkg update")
		fmt.Fprintln(i.Out, "  pkg install nmap libxslt")
		fmt.Fprintln(i.Out, "  (ndiff usually comes with nmap)")
	case platform.ManagerPacman:
		fmt.Fprintln(i.Out, "Arch (pacman):")
		fmt.Fprintln(i.Out, "  sudo pacman -Sy")
		fmt.Fprintln(i.Out, "  sudo pacman -S nmap libxslt")
		fmt.Fprintln(i.Out, "  (ndiff is usually part of the nmap package)")
	case platform.ManagerDnf, platform.ManagerYum:
		fmt.Fprintln(i.Out, "Fedora/RHEL (dnf/yum):")
		fmt.Fprintf(i.Out, "  sudo %s makecache\n", manager)
		fmt.Fprintf(i.Out, "  sudo %s install -y nmap libxslt\n", manager)
		fmt.Fprintln(i.Out, "  (ndiff usually comes with nmap)")
	default:
		fmt.Fprintln(i.Out, "Unknown package manager. Try installing: nmap, libxslt (xsltproc).")
	}
	fmt.Fprintln(i.Out, "If you are inside a container or lack privileges, ask the sysadmin or use an image that includes these tools.")
}

func orNone(s string) string {
	if s == "" {
		return "none"
	}
	return s
}
