package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr bool
	}{
		{
			name: "valid yaml config",
			content: `
sessions:
  root: /tmp/redeye_sessions
tools:
  nmap: nmap
  ndiff: ndiff
  xsltproc: xsltproc
scanning:
  default_ports: "22,80,443"
logging:
  level: debug
  format: json
`,
			wantErr: false,
		},
		{
			name:    "invalid yaml syntax",
			content: "sessions: [unclosed",
			wantErr: true,
		},
		{
			name: "invalid log level",
			content: `
logging:
  level: loud
`,
			wantErr: true,
		},
		{
			name: "empty sessions root",
			content: `
sessions:
  root: ""
`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			path := filepath.Join(dir, "config.yaml")
			if err := os.WriteFile(path, []byte(tt.content), 0644); err != nil {
				t.Fatal(err)
			}

			cfg, err := Load(path)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Load() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && cfg == nil {
				t.Fatal("Load() returned nil config without error")
			}
		})
	}
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("Load() on missing file should return defaults, got error: %v", err)
	}
	if cfg.Sessions.Root != "redeye_sessions" {
		t.Errorf("Expected default sessions root, got %q", cfg.Sessions.Root)
	}
	if cfg.Tools.Nmap != "nmap" {
		t.Errorf("Expected default nmap tool name, got %q", cfg.Tools.Nmap)
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := []byte(`
sessions:
  root: engagements
logging:
  level: warn
`)
	if err := os.WriteFile(path, content, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Sessions.Root != "engagements" {
		t.Errorf("Expected overridden root 'engagements', got %q", cfg.Sessions.Root)
	}
	// Untouched sections keep their defaults
	if cfg.Tools.Xsltproc != "xsltproc" {
		t.Errorf("Expected default xsltproc tool, got %q", cfg.Tools.Xsltproc)
	}
	if cfg.Logging.Format != "text" {
		t.Errorf("Expected default log format 'text', got %q", cfg.Logging.Format)
	}
}

func TestSaveRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sub", "config.yaml")

	cfg := Default()
	cfg.Sessions.Root = "client_acme"
	cfg.Scanning.DefaultPorts = "1-1024"

	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save() failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load() after Save() failed: %v", err)
	}
	if loaded.Sessions.Root != "client_acme" {
		t.Errorf("Expected saved root 'client_acme', got %q", loaded.Sessions.Root)
	}
	if loaded.Scanning.DefaultPorts != "1-1024" {
		t.Errorf("Expected saved ports '1-1024', got %q", loaded.Scanning.DefaultPorts)
	}
}

func TestValidate(t *testing.T) {
	t.Run("default config is valid", func(t *testing.T) {
		if err := Default().Validate(); err != nil {
			t.Errorf("Default config should validate: %v", err)
		}
	})

	t.Run("missing tool name", func(t *testing.T) {
		cfg := Default()
		cfg.Tools.Ndiff = ""
		if err := cfg.Validate(); err == nil {
			t.Error("Expected validation error for empty ndiff tool name")
		}
	})
}

func TestRequiredTools(t *testing.T) {
	got := Default().RequiredTools()
	want := []string{"nmap", "ndiff", "xsltproc"}
	if len(got) != len(want) {
		t.Fatalf("RequiredTools() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("RequiredTools()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}
