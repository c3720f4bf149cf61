package menu

import (
	"fmt"
	"strings"

	"github.com/redeyescan/redeye/internal/ui"
)

const menuRuleWidth = 34

func (s *Shell) rule(width int) {
	fmt.Fprintln(s.out, strings.Repeat("-", width))
}

// printMainMenu shows the main menu with the current state summary.
func (s *Shell) printMainMenu(st *State) {
	fmt.Fprintln(s.out)
	fmt.Fprintln(s.out, ui.HeaderStyle.Render("--- RedEye Nmap Scanner Menu ---"))

	if st.Session != nil {
		fmt.Fprintln(s.out, ui.StateActiveStyle.Render("Active Session: "+st.Session.Name))
	} else {
		fmt.Fprintln(s.out, ui.StateUnsetStyle.Render("No Active Session (scans will not be saved)"))
	}
	if st.Target != "" {
		fmt.Fprintln(s.out, ui.StateActiveStyle.Render("Current Target: "+st.Target))
	} else {
		fmt.Fprintln(s.out, ui.StateUnsetStyle.Render("No Target Set"))
	}
	if st.Ports != "" {
		fmt.Fprintln(s.out, ui.StateActiveStyle.Render("Custom Ports: "+st.Ports))
	} else {
		fmt.Fprintln(s.out, ui.StateUnsetStyle.Render("Ports: Default"))
	}

	s.rule(menuRuleWidth)
	fmt.Fprintln(s.out, "--- Target & Port Management ---")
	fmt.Fprintln(s.out, "1.  Set / Change Target")
	fmt.Fprintln(s.out, "2.  Set / Unset Custom Ports (Optional)")
	fmt.Fprintln(s.out)
	fmt.Fprintln(s.out, "--- Basic Scans ---")
	fmt.Fprintln(s.out, "3.  Ping Scan (Host Discovery only)")
	fmt.Fprintln(s.out, "4.  Intense Scan (-A -T4)")
	fmt.Fprintln(s.out, "5.  Fast Scan (Top 100 ports)")
	fmt.Fprintln(s.out, "6.  Default Scripts Scan (-sC)")
	fmt.Fprintln(s.out, "7.  Vulnerability Scan (General 'vuln' scripts)")
	fmt.Fprintln(s.out)
	fmt.Fprintln(s.out, "--- Session, Reporting & Advanced ---")
	fmt.Fprintln(s.out, ui.FeatureStyle.Render("8.  Set / Create Scan Session"))
	fmt.Fprintln(s.out, ui.FeatureStyle.Render("9.  Compare Two Scans (Diff)"))
	fmt.Fprintln(s.out, ui.FeatureStyle.Render("10. Generate HTML Report"))
	fmt.Fprintln(s.out, ui.FeatureStyle.Render("11. Advanced Scans Menu"))
	fmt.Fprintln(s.out)
	fmt.Fprintln(s.out, "--- Other Options ---")
	fmt.Fprintln(s.out, "12. Custom Nmap Command")
	fmt.Fprintln(s.out, ui.FeatureStyle.Render("13. Nmap Command Helper"))
	fmt.Fprintln(s.out, "0.  Exit")
	s.rule(menuRuleWidth)
}

// printAdvancedMenu shows the advanced sub-menu from the scan table so
// menu text and behavior cannot drift apart.
func (s *Shell) printAdvancedMenu(st *State) {
	fmt.Fprintln(s.out)
	fmt.Fprintln(s.out, ui.HeaderStyle.Render(
		fmt.Sprintf("--- Advanced Scans Menu (Target: %s) ---", st.Target)))
	if st.Ports != "" {
		fmt.Fprintln(s.out, ui.StateActiveStyle.Render("Using Custom Ports: "+st.Ports))
	}

	for i, scan := range advancedScans {
		if scan.section != "" {
			fmt.Fprintln(s.out, ui.SectionStyle.Render(scan.section))
		}
		entry := fmt.Sprintf("%-3s %s", fmt.Sprintf("%d.", i+1), scan.title)
		if scan.confirm {
			entry = ui.DangerStyle.Render(entry)
		}
		fmt.Fprintln(s.out, entry)
	}
	fmt.Fprintln(s.out, "0.  Back to Main Menu")
	s.rule(50)
}
