package menu

import (
	"context"
	"fmt"
	"strings"

	"github.com/redeyescan/redeye/internal/ui"
)

// helperTopic is one category of the nmap command reference.
type helperTopic struct {
	title   string
	entries [][2]string // flag, description
}

var helperTopics = []helperTopic{
	{
		title: "Host Discovery",
		entries: [][2]string{
			{"-sn / -sP", "Ping Scan. Disables port scanning. Best for just discovering which hosts are online."},
			{"-sL", "List Scan. Simply lists targets without scanning them. Good for a quick target overview."},
			{"-Pn", "No Ping. Skips host discovery. Assumes all targets are online. Use if hosts block pings."},
		},
	},
	{
		title: "Scan Techniques",
		entries: [][2]string{
			{"-sS", "TCP SYN (Stealth) Scan. Fast, stealthy, and the most popular scan type. Requires root."},
			{"-sT", "TCP Connect Scan. Slower and more detectable than SYN, but doesn't require root."},
			{"-sU", "UDP Scan. Scans for open UDP ports. Very slow. Requires root."},
		},
	},
	{
		title: "Port Specification",
		entries: [][2]string{
			{"-p <range>", "Scan specific ports. Examples: -p 22, -p 1-1023, -p U:53,T:21-25,80."},
			{"-F", "Fast Scan. Scans the 100 most common ports."},
		},
	},
	{
		title: "Service & OS Detection",
		entries: [][2]string{
			{"-sV", "Service/Version Detection. Probes open ports to find out the exact service and version running."},
			{"-O", "OS Detection. Tries to determine the target's operating system. Requires root."},
			{"-A", "Aggressive Scan. A shortcut for -O -sV -sC --traceroute."},
		},
	},
	{
		title: "Nmap Scripting Engine (NSE)",
		entries: [][2]string{
			{"-sC", "Default Scripts. Runs the default set of scripts. It's considered safe for the target."},
			{"--script <name>", "Runs specific scripts, categories (e.g., 'vuln'), or all scripts."},
		},
	},
	{
		title: "Timing and Performance",
		entries: [][2]string{
			{"-T<0-5>", "Timing Template. T0 (paranoid) is very slow, T5 (insane) is very fast. T4 is recommended."},
		},
	},
	{
		title: "Output Formats",
		entries: [][2]string{
			{"-oN <file>", "Normal Output. Saves the output in a standard text file."},
			{"-oX <file>", "XML Output. Saves in XML format, which can be parsed by other tools."},
		},
	},
}

// runHelper drives the static nmap command reference sub-menu.
func (s *Shell) runHelper(ctx context.Context) {
	for {
		fmt.Fprintln(s.out)
		fmt.Fprintln(s.out, ui.HeaderStyle.Render("--- Nmap Command Helper ---"))
		for i, topic := range helperTopics {
			fmt.Fprintf(s.out, "%d. %s\n", i+1, topic.title)
		}
		fmt.Fprintln(s.out, "0. Back to Main Menu")
		s.rule(menuRuleWidth)

		choice, err := s.readLine(ctx, "Select a category to learn more: ")
		if err != nil || choice == "0" {
			return
		}

		idx := -1
		for i := range helperTopics {
			if choice == fmt.Sprint(i+1) {
				idx = i
				break
			}
		}
		if idx < 0 {
			fmt.Fprintln(s.out, ui.ErrorStyle.Render("Invalid choice. Please select from the menu."))
			continue
		}

		topic := helperTopics[idx]
		fmt.Fprintln(s.out, "\n"+strings.Repeat("=", 60))
		fmt.Fprintln(s.out, ui.HeaderStyle.Render(topic.title+":"))
		for _, entry := range topic.entries {
			fmt.Fprintf(s.out, "%s : %s\n", ui.FlagStyle.Render(fmt.Sprintf("%-15s", entry[0])), entry[1])
		}
		fmt.Fprintln(s.out, strings.Repeat("=", 60)+"\n")
	}
}
