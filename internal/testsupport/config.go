// Package testsupport provides shared helpers for package tests: temp-dir
// backed configs, stubbed external binaries, and fixture files.
package testsupport

import (
	"os"
	"path/filepath"
	"testing"

	"trackdeck/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config seeded with unique temp directories per test.
// It defaults common fields and applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Input.TrackDir = filepath.Join(base, "tracks")
	cfgVal.Output.Dir = filepath.Join(base, "out")
	cfgVal.Output.BuildDir = filepath.Join(base, "build")
	cfgVal.Cards.URLPrefix = "https://hits.example.com/"

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}

	for _, opt := range opts {
		opt(builder)
	}

	if err := os.MkdirAll(builder.cfg.Input.TrackDir, 0o755); err != nil {
		t.Fatalf("mkdir track dir: %v", err)
	}

	return builder.cfg
}

// WithURLPrefix overrides the published base URL on the test config.
func WithURLPrefix(prefix string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Cards.URLPrefix = prefix
	}
}

// WithIdentifierMode sets the identifier derivation mode on the test config.
func WithIdentifierMode(mode string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Identifiers.Mode = mode
	}
}

// WithStubbedBinaries writes stub executables for the provided names and
// points PATH at them alone, so tools outside the list resolve as missing.
// If names is empty, the default external binaries are stubbed.
func WithStubbedBinaries(names ...string) ConfigOption {
	return func(b *configBuilder) {
		if len(names) == 0 {
			names = []string{"metaflac", "ffmpeg", "inkscape", "pdfunite"}
		}
		binDir := filepath.Join(b.baseDir, "bin")
		if err := os.MkdirAll(binDir, 0o755); err != nil {
			b.t.Fatalf("mkdir bin dir: %v", err)
		}
		script := []byte("#!/bin/sh\nexit 0\n")
		for _, name := range names {
			target := filepath.Join(binDir, name)
			if err := os.WriteFile(target, script, 0o755); err != nil {
				b.t.Fatalf("write stub %s: %v", name, err)
			}
		}
		b.t.Setenv("PATH", binDir)
	}
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(cfg.Output.Dir)
}
