package menu

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBasicScanBuilders(t *testing.T) {
	tests := []struct {
		name string
		got  []string
		want []string
	}{
		{
			name: "ping scan ignores ports",
			got:  PingScan("10.0.0.5"),
			want: []string{"nmap", "-sn", "10.0.0.5"},
		},
		{
			name: "intense scan default ports",
			got:  IntenseScan("10.0.0.5", ""),
			want: []string{"nmap", "-A", "-T4", "10.0.0.5"},
		},
		{
			name: "intense scan custom ports",
			got:  IntenseScan("10.0.0.5", "1-1024"),
			want: []string{"nmap", "-A", "-T4", "-p", "1-1024", "10.0.0.5"},
		},
		{
			name: "fast scan",
			got:  FastScan("example.com", ""),
			want: []string{"nmap", "-F", "-T4", "example.com"},
		},
		{
			name: "default scripts scan custom ports",
			got:  DefaultScriptsScan("example.com", "443"),
			want: []string{"nmap", "-sC", "-p", "443", "example.com"},
		},
		{
			name: "vuln scan",
			got:  VulnScan("10.0.0.5", ""),
			want: []string{"nmap", "--script", "vuln", "-sV", "10.0.0.5"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.got)
		})
	}
}

func TestCompareArgs(t *testing.T) {
	assert.Equal(t,
		[]string{"ndiff", "/s/a.xml", "/s/b.xml"},
		CompareArgs("ndiff", "/s/a.xml", "/s/b.xml"))
}

func TestReportArgs(t *testing.T) {
	t.Run("without stylesheet", func(t *testing.T) {
		assert.Equal(t,
			[]string{"xsltproc", "-o", "/s/a.html", "/s/a.xml"},
			ReportArgs("xsltproc", "", "/s/a.html", "/s/a.xml"))
	})

	t.Run("with stylesheet", func(t *testing.T) {
		assert.Equal(t,
			[]string{"xsltproc", "-o", "/s/a.html", "/usr/share/nmap/nmap.xsl", "/s/a.xml"},
			ReportArgs("xsltproc", "/usr/share/nmap/nmap.xsl", "/s/a.html", "/s/a.xml"))
	})
}

func TestAdvancedScanTable(t *testing.T) {
	require.Len(t, advancedScans, 20)

	t.Run("every entry produces an argv ending in the target", func(t *testing.T) {
		for i, scan := range advancedScans {
			argv := scan.build("10.0.0.5", "", "192.0.2.7")
			require.NotEmpty(t, argv, "entry %d (%s)", i+1, scan.title)
			assert.Equal(t, "10.0.0.5", argv[len(argv)-1], "entry %d (%s)", i+1, scan.title)
			head := argv[0]
			if head == "sudo" {
				require.Greater(t, len(argv), 1)
				head = argv[1]
			}
			assert.Equal(t, "nmap", head, "entry %d (%s)", i+1, scan.title)
		}
	})

	t.Run("custom ports replace per-scan defaults", func(t *testing.T) {
		// Web server scan defaults to -p 80,443.
		web := advancedScans[5]
		assert.Contains(t, web.title, "Web Server")

		def := web.build("10.0.0.5", "", "")
		assert.Contains(t, strings.Join(def, " "), "-p 80,443")

		custom := web.build("10.0.0.5", "8443", "")
		joined := strings.Join(custom, " ")
		assert.Contains(t, joined, "-p 8443")
		assert.NotContains(t, joined, "80,443")
	})

	t.Run("safe scripts selection is a single argument", func(t *testing.T) {
		safe := advancedScans[13]
		assert.Contains(t, safe.title, "Safe Script")
		assert.Contains(t, safe.build("10.0.0.5", "", ""), "not intrusive")
	})

	t.Run("idle scan embeds the zombie host", func(t *testing.T) {
		idle := advancedScans[4]
		require.True(t, idle.needsZombie)
		argv := idle.build("10.0.0.5", "", "192.0.2.7")
		assert.Equal(t, []string{"sudo", "nmap", "-Pn", "-sI", "192.0.2.7", "10.0.0.5"}, argv)
	})

	t.Run("only the exploit scan demands confirmation", func(t *testing.T) {
		for i, scan := range advancedScans {
			if i == 14 {
				assert.True(t, scan.confirm, "entry %d (%s)", i+1, scan.title)
				continue
			}
			assert.False(t, scan.confirm, "entry %d (%s)", i+1, scan.title)
		}
	})
}
