package cli

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/redeyescan/redeye/internal/deps"
	"github.com/redeyescan/redeye/internal/ui"
)

// preflightExitCode is returned when required tools are still missing
// after the install attempt, so scripts can gate on tool availability.
const preflightExitCode = 2

// preflightCmd runs the dependency check without entering the shell.
var preflightCmd = &cobra.Command{
	Use:   "preflight",
	Short: "Check (and install) required external tools, then exit",
	Long: `Verify that nmap, ndiff and xsltproc are available on the search
path, attempting installation through the detected package manager when
they are not. Exits 0 when every tool is present, 2 otherwise.`,
	Run: runPreflight,
}

func init() {
	rootCmd.AddCommand(preflightCmd)
}

func runPreflight(cmd *cobra.Command, _ []string) {
	cfg, err := loadConfig()
	if err != nil {
		ui.Errorf("invalid configuration: %v", err)
		os.Exit(preflightExitCode)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if !deps.New().Ensure(ctx, cfg.RequiredTools()) {
		os.Exit(preflightExitCode)
	}
	ui.Successf("All required tools are installed.")
}
