package ui

import (
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Version information - these can be overridden at build time via ldflags:
// go build -ldflags "-X github.com/redeyescan/redeye/internal/ui.Version=1.0.0"
var (
	Version   = "dev"
	BuildDate = "unknown"
	Commit    = "none"
)

// Global UI state
var (
	noColorMode bool
	uiMu        sync.RWMutex
)

// SetNoColor disables colored output
func SetNoColor(noColor bool) {
	uiMu.Lock()
	defer uiMu.Unlock()
	noColorMode = noColor
	if noColor {
		// Use ASCII profile to disable colors
		lipgloss.SetColorProfile(termenv.Ascii)
	}
}

// IsNoColor returns whether color is disabled
func IsNoColor() bool {
	uiMu.RLock()
	defer uiMu.RUnlock()
	return noColorMode
}

// ASCII art banner
const bannerArt = `
  ____          _ _____
 |  _ \ ___  __| | ____|   _  ___
 | |_) / _ \/ _` + "`" + ` |  _|| | | |/ _ \
 |  _ <  __/ (_| | |__| |_| |  __/
 |_| \_\___|\__,_|_____\__, |\___|
                       |___/
`

// PrintBanner prints the styled application banner to stderr so it never
// mixes with streamed scan output on stdout.
func PrintBanner() {
	for _, line := range strings.Split(bannerArt, "\n") {
		if line != "" {
			fmt.Fprintln(os.Stderr, BannerStyle.Render(line))
		}
	}
	fmt.Fprintf(os.Stderr, "          nmap session scanner %s\n\n", VersionStyle.Render(Version))
}

// ClearScreen clears the terminal before the banner is shown.
func ClearScreen() {
	out := termenv.NewOutput(os.Stdout)
	out.ClearScreen()
	out.MoveCursor(1, 1)
}

// Successf prints a green status line.
func Successf(format string, args ...any) {
	fmt.Println(SuccessStyle.Render(fmt.Sprintf(format, args...)))
}

// Errorf prints a red status line.
func Errorf(format string, args ...any) {
	fmt.Println(ErrorStyle.Render(fmt.Sprintf(format, args...)))
}

// Infof prints a blue status line.
func Infof(format string, args ...any) {
	fmt.Println(InfoStyle.Render(fmt.Sprintf(format, args...)))
}
