// Command redeye is the interactive nmap front-end binary.
package main

import (
	"github.com/redeyescan/redeye/cmd/cli"
)

// Build information - these will be set by ldflags during build.
var (
	version   = "dev"
	commit    = "none"
	buildTime = "unknown"
)

func main() {
	cli.SetVersion(version, commit, buildTime)
	cli.Execute()
}
