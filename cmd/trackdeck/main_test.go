package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"

	"trackdeck/internal/services"
	"trackdeck/internal/testsupport"
)

// writeTestConfig materializes a testsupport config as the TOML file the
// CLI loads.
func writeTestConfig(t *testing.T, opts ...testsupport.ConfigOption) string {
	t.Helper()
	cfg := testsupport.NewConfig(t, opts...)
	data, err := toml.Marshal(cfg)
	if err != nil {
		t.Fatal(err)
	}
	cfgPath := filepath.Join(testsupport.BaseDir(cfg), "trackdeck.toml")
	if err := os.WriteFile(cfgPath, data, 0o644); err != nil {
		t.Fatal(err)
	}
	return cfgPath
}

func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCommand()
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

func TestConfigInitCommand(t *testing.T) {
	target := filepath.Join(t.TempDir(), "config.toml")
	out, err := runCommand(t, "config", "init", "--path", target)
	if err != nil {
		t.Fatalf("config init: %v", err)
	}
	if !strings.Contains(out, target) {
		t.Fatalf("output does not name the target: %s", out)
	}
	data, err := os.ReadFile(target)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "url_prefix") {
		t.Fatal("sample config missing url_prefix")
	}
}

func TestConfigInitRefusesOverwrite(t *testing.T) {
	target := filepath.Join(t.TempDir(), "config.toml")
	if _, err := runCommand(t, "config", "init", "--path", target); err != nil {
		t.Fatal(err)
	}
	if _, err := runCommand(t, "config", "init", "--path", target); err == nil {
		t.Fatal("expected refusal without --overwrite")
	}
	if _, err := runCommand(t, "config", "init", "--path", target, "--overwrite"); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
}

func TestDepsCommandAllPresent(t *testing.T) {
	cfgPath := writeTestConfig(t, testsupport.WithStubbedBinaries())

	out, err := runCommand(t, "deps", "-c", cfgPath)
	if err != nil {
		t.Fatalf("deps: %v\n%s", err, out)
	}
	if strings.Count(out, "ok") < 4 {
		t.Fatalf("expected four ok rows:\n%s", out)
	}
}

func TestDepsCommandMissingTool(t *testing.T) {
	cfgPath := writeTestConfig(t, testsupport.WithStubbedBinaries("metaflac", "ffmpeg"))

	out, err := runCommand(t, "deps", "-c", cfgPath)
	if err == nil {
		t.Fatalf("expected failure with missing tools:\n%s", out)
	}
	if !strings.Contains(out, "missing") {
		t.Fatalf("output does not flag missing tools:\n%s", out)
	}
}

func TestConfigShowCommand(t *testing.T) {
	cfgPath := writeTestConfig(t)

	out, err := runCommand(t, "config", "show", "-c", cfgPath)
	if err != nil {
		t.Fatalf("config show: %v", err)
	}
	for _, want := range []string{"url_prefix", "https://hits.example.com/", "duplex_mirror"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestStatsCommandJSON(t *testing.T) {
	cfgPath := writeTestConfig(t)

	out, err := runCommand(t, "stats", "-c", cfgPath, "--json")
	if err != nil {
		t.Fatalf("stats --json: %v", err)
	}
	var report struct {
		Total int `json:"total"`
	}
	if err := json.Unmarshal([]byte(out), &report); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, out)
	}
	if report.Total != 0 {
		t.Fatalf("total = %d, want 0", report.Total)
	}
}

func TestStatsCommandEmptyLibrary(t *testing.T) {
	cfgPath := writeTestConfig(t)

	out, err := runCommand(t, "stats", "-c", cfgPath)
	if err != nil {
		t.Fatalf("stats: %v\n%s", err, out)
	}
	if !strings.Contains(out, "Total: 0 tracks") {
		t.Fatalf("missing total line:\n%s", out)
	}
}

func TestExitCodeByClass(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{services.Wrap(services.ErrValidation, "track", "scan", "no tracks", nil), 2},
		{services.Wrap(services.ErrConfiguration, "config", "load", "bad value", nil), 2},
		{services.Wrap(services.ErrExternalTool, "ffmpeg", "transcode", "exit 1", nil), 3},
		{services.Wrap(services.ErrTimeout, "inkscape", "convert", "deadline", nil), 3},
		{errors.New("plain failure"), 1},
	}
	for _, tc := range cases {
		if got := exitCode(tc.err); got != tc.want {
			t.Errorf("exitCode(%v) = %d, want %d", tc.err, got, tc.want)
		}
	}
}
