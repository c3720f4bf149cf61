package menu

// Argument-vector builders for every scan the menus offer. User-supplied
// values (target, ports, zombie host) are always discrete argv elements;
// nothing here ever assembles a shell string.

// portArgs returns the port-selection arguments for a custom port spec,
// or nil to use the scanner's default.
func portArgs(ports string) []string {
	if ports == "" {
		return nil
	}
	return []string{"-p", ports}
}

// portsOr returns the custom port arguments when set, otherwise the given
// per-scan default arguments.
func portsOr(ports string, def ...string) []string {
	if ports != "" {
		return []string{"-p", ports}
	}
	return def
}

func buildArgs(parts ...[]string) []string {
	var argv []string
	for _, part := range parts {
		argv = append(argv, part...)
	}
	return argv
}

// Basic scans (main menu)

// PingScan discovers live hosts without port scanning.
func PingScan(target string) []string {
	return []string{"nmap", "-sn", target}
}

// IntenseScan runs an aggressive scan with OS and version detection.
func IntenseScan(target, ports string) []string {
	return buildArgs([]string{"nmap", "-A", "-T4"}, portArgs(ports), []string{target})
}

// FastScan probes the 100 most common ports.
func FastScan(target, ports string) []string {
	return buildArgs([]string{"nmap", "-F", "-T4"}, portArgs(ports), []string{target})
}

// DefaultScriptsScan runs the default NSE script set.
func DefaultScriptsScan(target, ports string) []string {
	return buildArgs([]string{"nmap", "-sC"}, portArgs(ports), []string{target})
}

// VulnScan runs the general vulnerability script category.
func VulnScan(target, ports string) []string {
	return buildArgs([]string{"nmap", "--script", "vuln", "-sV"}, portArgs(ports), []string{target})
}

// CompareArgs diffs two structured scan results.
func CompareArgs(ndiff, pathA, pathB string) []string {
	return []string{ndiff, pathA, pathB}
}

// ReportArgs transforms a structured scan result into an HTML report. An
// empty stylesheet lets the transform follow the stylesheet reference
// embedded in the XML itself.
func ReportArgs(xsltproc, stylesheet, htmlPath, xmlPath string) []string {
	argv := []string{xsltproc, "-o", htmlPath}
	if stylesheet != "" {
		argv = append(argv, stylesheet)
	}
	return append(argv, xmlPath)
}

// advancedScan is one entry of the advanced scans sub-menu.
type advancedScan struct {
	title       string
	section     string // printed before this entry when non-empty
	warning     string // printed before building the command
	confirm     bool   // requires an explicit yes before running
	needsZombie bool
	build       func(target, ports, zombie string) []string
}

// advancedScans lists the advanced menu in display order; selections are
// 1-based indexes into this table.
var advancedScans = []advancedScan{
	{
		title:   "Aggressive Discovery (All Ping Types)",
		section: "--- Firewall/IDS Evasion & Discovery ---",
		build: func(target, _, _ string) []string {
			return []string{"sudo", "nmap", "-sn", "-PE", "-PS22,80,443", "-PA80,443", "-PU53", "-T4", target}
		},
	},
	{
		title: "Full Port Scan (No Ping)",
		build: func(target, ports, _ string) []string {
			return buildArgs([]string{"sudo", "nmap", "-Pn", "-sS", "-T4"}, portsOr(ports, "-p-"), []string{target})
		},
	},
	{
		title: "Firewall Evasion (Fragment Packets)",
		build: func(target, ports, _ string) []string {
			return buildArgs([]string{"sudo", "nmap", "-f", "-sS", "-T4"}, portArgs(ports), []string{target})
		},
	},
	{
		title: "Firewall Evasion (Decoy Scan)",
		build: func(target, ports, _ string) []string {
			return buildArgs([]string{"sudo", "nmap", "-D", "RND:10", "-sS", "-T4"}, portArgs(ports), []string{target})
		},
	},
	{
		title:       "Idle Scan (Ultimate Stealth - requires zombie host)",
		needsZombie: true,
		build: func(target, ports, zombie string) []string {
			return buildArgs([]string{"sudo", "nmap", "-Pn", "-sI", zombie}, portArgs(ports), []string{target})
		},
	},
	{
		title:   "Comprehensive Web Server Scan",
		section: "--- Vulnerability & Service Specific Scans ---",
		build: func(target, ports, _ string) []string {
			return buildArgs([]string{"nmap", "--script", "http-enum,http-title,http-vuln*", "-sV", "-T4"},
				portsOr(ports, "-p", "80,443"), []string{target})
		},
	},
	{
		title: "SMB Vulnerability Scan (e.g., EternalBlue)",
		build: func(target, ports, _ string) []string {
			return buildArgs([]string{"nmap", "--script", "smb-vuln*", "-sV", "-T4"},
				portsOr(ports, "-p", "139,445"), []string{target})
		},
	},
	{
		title: "FTP Vulnerability Scan",
		build: func(target, ports, _ string) []string {
			return buildArgs([]string{"nmap", "--script", "ftp-anon,ftp-vuln*", "-sV", "-T4"},
				portsOr(ports, "-p", "21"), []string{target})
		},
	},
	{
		title: "MySQL Vulnerability Scan",
		build: func(target, ports, _ string) []string {
			return buildArgs([]string{"nmap", "--script", "mysql-empty-password,mysql-vuln*", "-sV", "-T4"},
				portsOr(ports, "-p", "3306"), []string{target})
		},
	},
	{
		title: "Heartbleed SSL Vulnerability Check",
		build: func(target, ports, _ string) []string {
			return buildArgs([]string{"nmap", "--script", "ssl-heartbleed", "-sV"},
				portsOr(ports, "-p", "443"), []string{target})
		},
	},
	{
		title: "Detect Web Application Firewall (WAF)",
		build: func(target, ports, _ string) []string {
			return buildArgs([]string{"nmap", "--script", "http-waf-detect,http-waf-fingerprint", "-T4"},
				portsOr(ports, "-p", "80,443"), []string{target})
		},
	},
	{
		title: "Slowloris DoS Vulnerability Check",
		build: func(target, ports, _ string) []string {
			return buildArgs([]string{"nmap", "--script", "http-slowloris-check", "-T4"}, portArgs(ports), []string{target})
		},
	},
	{
		title:   "Full TCP & UDP Scan (Extremely Slow)",
		section: "--- Deep & Aggressive Scans ---",
		warning: "WARNING: This scan is extremely slow and can take many hours.",
		build: func(target, ports, _ string) []string {
			return buildArgs([]string{"sudo", "nmap", "-sS", "-sU", "-T4"},
				portsOr(ports, "-p", "T:-,U:1-4000"), []string{target})
		},
	},
	{
		title: "Safe Script Scan (Non-intrusive)",
		build: func(target, ports, _ string) []string {
			return buildArgs([]string{"nmap", "-sV", "-sC", "--script", "not intrusive"},
				portArgs(ports), []string{target})
		},
	},
	{
		title:   "Exploit Script Scan (Potentially Dangerous)",
		warning: "WARNING: Running 'exploit' scripts is dangerous and may crash the target.",
		confirm: true,
		build: func(target, ports, _ string) []string {
			return buildArgs([]string{"sudo", "nmap", "-sV", "--script", "exploit", "-T4"},
				portArgs(ports), []string{target})
		},
	},
	{
		title: "Brute Force Scripts (Auth Category)",
		build: func(target, ports, _ string) []string {
			return buildArgs([]string{"nmap", "-sV", "--script", "auth", "-T4"}, portArgs(ports), []string{target})
		},
	},
	{
		title: "Traceroute & Geo-location",
		build: func(target, ports, _ string) []string {
			return buildArgs([]string{"nmap", "--traceroute", "--script", "traceroute-geolocation", "-T4"},
				portsOr(ports, "-p", "80"), []string{target})
		},
	},
	{
		title:   "Aggressive All Ports Scan (-A -p-)",
		warning: "WARNING: This is a very noisy and slow scan.",
		build: func(target, ports, _ string) []string {
			return buildArgs([]string{"sudo", "nmap", "-A", "-p-", "-T4"}, portArgs(ports), []string{target})
		},
	},
	{
		title: "Full Network Sweep (Ping Only)",
		build: func(target, _, _ string) []string {
			return []string{"nmap", "-sn", "-T4", target}
		},
	},
	{
		title: "Scan for ALL TCP ports with OS detection",
		build: func(target, ports, _ string) []string {
			return buildArgs([]string{"sudo", "nmap", "-O", "-T4"}, portsOr(ports, "-p-"), []string{target})
		},
	},
}
