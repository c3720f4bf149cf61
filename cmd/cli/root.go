// Package cli provides the command-line surface for redeye. It wires
// the Cobra command tree: the interactive shell (the default action)
// and the non-interactive preflight dependency check.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/redeyescan/redeye/internal/config"
	"github.com/redeyescan/redeye/internal/logging"
	"github.com/redeyescan/redeye/internal/ui"
)

var (
	cfgFile string
	verbose bool
	noColor bool
)

// Build information - these will be set by ldflags during build.
var (
	version   = "dev"
	commit    = "none"
	buildTime = "unknown"
)

// rootCmd represents the base command. Called without a subcommand it
// starts the interactive shell.
var rootCmd = &cobra.Command{
	Use:   "redeye",
	Short: "Interactive nmap front-end",
	Long: `RedEye is an interactive front-end for nmap. It checks that the
required scanning tools are installed (offering to install them through
the system package manager), then drives scans through numbered menus,
saving results into named session directories for later comparison and
HTML reporting.`,
	Version: getVersion(),
	RunE:    runShell,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./redeye.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")

	// Bind flags to viper
	if err := viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose")); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to bind verbose flag: %v\n", err)
	}
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Search for config in current directory
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName("redeye")
	}

	// Read in environment variables that match
	viper.AutomaticEnv()
	viper.SetEnvPrefix("REDEYE")

	setConfigDefaults()

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil {
		if verbose {
			fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
		}
	}

	if noColor || os.Getenv("NO_COLOR") != "" {
		ui.SetNoColor(true)
	}

	// Initialize structured logging after config is loaded
	initLogging()
}

// setConfigDefaults mirrors config.Default so environment overrides
// (REDEYE_SESSIONS_ROOT and friends) layer cleanly on top.
func setConfigDefaults() {
	def := config.Default()

	viper.SetDefault("sessions.root", def.Sessions.Root)

	viper.SetDefault("tools.nmap", def.Tools.Nmap)
	viper.SetDefault("tools.ndiff", def.Tools.Ndiff)
	viper.SetDefault("tools.xsltproc", def.Tools.Xsltproc)
	viper.SetDefault("tools.stylesheet", def.Tools.Stylesheet)

	viper.SetDefault("scanning.default_ports", def.Scanning.DefaultPorts)
	viper.SetDefault("scanning.confirm_dangerous", def.Scanning.ConfirmDangerous)

	viper.SetDefault("logging.level", def.Logging.Level)
	viper.SetDefault("logging.format", def.Logging.Format)
	viper.SetDefault("logging.output", def.Logging.Output)
}

// loadConfig builds the effective configuration: file (when present)
// over defaults, then viper-managed overrides from flags and the
// REDEYE_ environment prefix.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(viper.ConfigFileUsed())
	if err != nil {
		return nil, err
	}

	cfg.Sessions.Root = viper.GetString("sessions.root")
	cfg.Tools.Nmap = viper.GetString("tools.nmap")
	cfg.Tools.Ndiff = viper.GetString("tools.ndiff")
	cfg.Tools.Xsltproc = viper.GetString("tools.xsltproc")
	cfg.Tools.Stylesheet = viper.GetString("tools.stylesheet")
	cfg.Scanning.DefaultPorts = viper.GetString("scanning.default_ports")
	cfg.Scanning.ConfirmDangerous = viper.GetBool("scanning.confirm_dangerous")
	cfg.Logging.Level = viper.GetString("logging.level")
	cfg.Logging.Format = viper.GetString("logging.format")
	cfg.Logging.Output = viper.GetString("logging.output")

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// getVersion returns the version string.
func getVersion() string {
	return fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, buildTime)
}

// SetVersion sets the version information (called from main).
func SetVersion(v, c, bt string) {
	version = v
	commit = c
	buildTime = bt
	rootCmd.Version = getVersion()
	ui.Version = v
	ui.Commit = c
	ui.BuildDate = bt
}

// initLogging initializes structured logging based on configuration.
func initLogging() {
	cfg, err := loadConfig()
	if err != nil {
		logging.SetDefault(logging.NewDefault())
		return
	}

	level := cfg.Logging.Level
	if verbose {
		level = "debug"
	}

	logConfig := logging.Config{
		Level:     logging.LogLevel(level),
		Format:    logging.LogFormat(cfg.Logging.Format),
		Output:    cfg.Logging.Output,
		AddSource: level == "debug",
	}

	logger, err := logging.New(logConfig)
	if err != nil {
		logger = logging.NewDefault()
		fmt.Fprintf(os.Stderr, "Warning: failed to initialize logging: %v\n", err)
	}
	logging.SetDefault(logger)
}
