// Package platform detects the host operating system family and its
// package manager. Detection is best-effort and never fails: unknown or
// unreadable environments degrade to an empty result instead of an error.
package platform

import (
	"os"
	"os/exec"
	"strings"
)

const (
	// Termux keeps its userland under this prefix.
	termuxUsrDir = "/data/data/com.termux/files/usr"

	osReleasePath = "/etc/os-release"
)

// Supported package manager identifiers.
const (
	ManagerApt    = "apt"
	ManagerPacman = "pacman"
	ManagerDnf    = "dnf"
	ManagerYum    = "yum"
	ManagerPkg    = "pkg"
)

// Platform describes a detected environment. A zero Manager means no
// supported package manager was found; InstallCmd and UpdateCmd are nil
// in that case.
type Platform struct {
	OSID       string
	Manager    string
	InstallCmd []string
	UpdateCmd  []string
}

// Known returns true when a package manager was identified.
func (p Platform) Known() bool {
	return p.Manager != ""
}

// Prober performs environment detection. Its lookup functions default to
// the real filesystem and search path and are replaceable in tests.
type Prober struct {
	LookPath func(string) (string, error)
	ReadFile func(string) ([]byte, error)
	Getenv   func(string) string
	Stat     func(string) (os.FileInfo, error)
}

// NewProber returns a prober bound to the real environment.
func NewProber() *Prober {
	return &Prober{
		LookPath: exec.LookPath,
		ReadFile: os.ReadFile,
		Getenv:   os.Getenv,
		Stat:     os.Stat,
	}
}

// Detect probes the environment using the default prober.
func Detect() Platform {
	return NewProber().Detect()
}

// Detect identifies the OS family and package manager. Priority order:
// Termux marker, /etc/os-release contents, then a direct search-path probe
// for known package manager binaries. First match wins.
func (p *Prober) Detect() Platform {
	if p.isTermux() {
		return p.platformFor("termux", ManagerPkg)
	}

	if plat, ok := p.fromOSRelease(); ok {
		return plat
	}

	return p.fromSearchPath()
}

func (p *Prober) isTermux() bool {
	if strings.HasPrefix(p.Getenv("PREFIX"), termuxUsrDir) {
		return true
	}
	_, err := p.Stat(termuxUsrDir)
	return err == nil
}

// fromOSRelease matches known distribution substrings in /etc/os-release.
// An absent or unreadable file degrades silently to the search path probe.
func (p *Prober) fromOSRelease() (Platform, bool) {
	data, err := p.ReadFile(osReleasePath)
	if err != nil {
		return Platform{}, false
	}
	content := strings.ToLower(string(data))

	switch {
	case strings.Contains(content, "ubuntu"):
		return p.platformFor("ubuntu", ManagerApt), true
	case strings.Contains(content, "debian"):
		return p.platformFor("debian", ManagerApt), true
	case strings.Contains(content, "arch"):
		return p.platformFor("arch", ManagerPacman), true
	case containsAny(content, "fedora", "rhel", "centos", "red hat"):
		manager := ManagerYum
		if _, err := p.LookPath("dnf"); err == nil {
			manager = ManagerDnf
		}
		return p.platformFor("redhat", manager), true
	case strings.Contains(strings.ReplaceAll(content, `"`, ""), "id_like=debian"):
		return p.platformFor("debian-like", ManagerApt), true
	}

	return Platform{}, false
}

// fromSearchPath probes for package manager binaries in fixed priority order.
func (p *Prober) fromSearchPath() Platform {
	probes := []struct {
		binary  string
		osID    string
		manager string
	}{
		{"apt-get", "debian-like", ManagerApt},
		{"pacman", "arch", ManagerPacman},
		{"dnf", "redhat", ManagerDnf},
		{"yum", "redhat", ManagerYum},
		{"pkg", "termux", ManagerPkg},
	}

	for _, probe := range probes {
		if _, err := p.LookPath(probe.binary); err == nil {
			return p.platformFor(probe.osID, probe.manager)
		}
	}

	return Platform{OSID: "unknown"}
}

func (p *Prober) platformFor(osID, manager string) Platform {
	install, update := ManagerCommands(manager)
	return Platform{
		OSID:       osID,
		Manager:    manager,
		InstallCmd: install,
		UpdateCmd:  update,
	}
}

// ManagerCommands returns the install and update argument vectors for a
// package manager. Unknown managers yield nil slices.
func ManagerCommands(manager string) (install, update []string) {
	switch manager {
	case ManagerApt:
		return []string{"apt-get", "install", "-y"}, []string{"apt-get", "update", "-y"}
	case ManagerPacman:
		return []string{"pacman", "-S", "--noconfirm"}, []string{"pacman", "-Sy", "--noconfirm"}
	case ManagerDnf:
		return []string{"dnf", "install", "-y"}, []string{"dnf", "makecache", "--refresh", "-y"}
	case ManagerYum:
		return []string{"yum", "install", "-y"}, []string{"yum", "makecache", "-y"}
	case ManagerPkg:
		return []string{"pkg", "install", "-y"}, []string{"pkg", "update", "-y"}
	}
	return nil, nil
}

func containsAny(s string, substrings ...string) bool {
	for _, sub := range substrings {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
