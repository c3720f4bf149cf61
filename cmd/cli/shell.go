package cli

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/redeyescan/redeye/internal/deps"
	"github.com/redeyescan/redeye/internal/errors"
	"github.com/redeyescan/redeye/internal/logging"
	"github.com/redeyescan/redeye/internal/menu"
	"github.com/redeyescan/redeye/internal/runner"
	"github.com/redeyescan/redeye/internal/session"
	"github.com/redeyescan/redeye/internal/ui"
)

// shellCmd starts the interactive menu loop. It is also the root
// command's default action, so plain `redeye` does the same thing.
var shellCmd = &cobra.Command{
	Use:   "shell",
	Short: "Start the interactive scanning shell",
	Long: `Start the interactive shell. Checks for the required external tools
first (installing them through the system package manager when possible),
then presents the scan menus.`,
	RunE: runShell,
}

func init() {
	rootCmd.AddCommand(shellCmd)
}

func runShell(cmd *cobra.Command, _ []string) error {
	cmd.SilenceUsage = true

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	// Interrupts cancel the context; a scan in flight is killed and the
	// shell winds down on its next loop iteration.
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	ui.ClearScreen()
	ui.PrintBanner()

	installer := deps.New()
	if !installer.Ensure(ctx, cfg.RequiredTools()) {
		logging.Error("required tools are missing, cannot start shell")
		_, missing := installer.Check(cfg.RequiredTools())
		if len(missing) > 0 {
			return errors.ErrMissingTool(missing[0])
		}
		return errors.ErrNoPackageManager()
	}

	if err := os.MkdirAll(cfg.Sessions.Root, 0750); err != nil {
		return errors.WrapToolError(errors.CodeDirectoryCreate, "Failed to create sessions directory", "", err)
	}
	ui.Infof("Session scans are saved under '%s'.", cfg.Sessions.Root)

	store := session.NewStore(cfg.Sessions.Root)
	run := runner.New()

	return menu.New(cfg, store, run, os.Stdin, os.Stdout).Run(ctx)
}
