package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "complement.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("test", nil)
	if err != nil {
		t.Fatal(err)
	}
	if *cfg != *Default() {
		t.Errorf("cfg = %+v, want %+v", *cfg, *Default())
	}
	if cfg.Input != "marbles.bmp" || cfg.Output != "img_complement.bmp" {
		t.Errorf("default files = %q, %q", cfg.Input, cfg.Output)
	}
}

func TestLoadFlags(t *testing.T) {
	cfg, err := Load("test", []string{"-in", "a.bmp", "-out", "b.bmp", "-legacy-rows", "-permissive", "-validate", "-verify", "-v"})
	if err != nil {
		t.Fatal(err)
	}
	want := Config{Input: "a.bmp", Output: "b.bmp", LegacyExtraRow: true, Permissive: true, Validate: true, Verify: true, Verbose: true}
	if *cfg != want {
		t.Errorf("cfg = %+v, want %+v", *cfg, want)
	}
}

func TestLoadFileThenFlags(t *testing.T) {
	path := writeConfig(t, "input: photo.bmp\noutput: negative.bmp\nlegacy_extra_row: true\nverify: true\n")

	cfg, err := Load("test", []string{"-config", path, "-out", "override.bmp", "-verify=false"})
	if err != nil {
		t.Fatal(err)
	}
	want := Config{Input: "photo.bmp", Output: "override.bmp", LegacyExtraRow: true}
	if *cfg != want {
		t.Errorf("cfg = %+v, want %+v", *cfg, want)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"unknown flag", []string{"-nope"}},
		{"missing file", []string{"-config", filepath.Join(t.TempDir(), "missing.yaml")}},
		{"unknown key", []string{"-config", writeConfig(t, "inptu: typo.bmp\n")}},
		{"bad yaml", []string{"-config", writeConfig(t, "input: [\n")}},
		{"empty input", []string{"-in", ""}},
		{"same file", []string{"-in", "x.bmp", "-out", "x.bmp"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Load("test", tt.args); err == nil {
				t.Errorf("Load(%q) succeeded", tt.args)
			}
		})
	}
}
