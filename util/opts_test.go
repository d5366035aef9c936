package util

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/cooldogedev/prism/version"
)

func writeFile(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "prism.toml")
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadOpts(t *testing.T) {
	path := writeFile(t, `
addr = ":25577"
token = "secret"
native_version = "1.8"
default_locale = " DE_DE "
transport = "quic"
`)
	opts, err := LoadOpts(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if opts.Addr != ":25577" || opts.Token != "secret" || opts.Transport != "quic" {
		t.Fatalf("unexpected opts %+v", opts)
	}
	if opts.DefaultLocale != "de_de" {
		t.Fatalf("expected locale de_de, got %q", opts.DefaultLocale)
	}
	if opts.LatencyInterval != 3000 || opts.DialTimeout != 5000 {
		t.Fatalf("defaults should be kept, got %+v", opts)
	}
	v, err := opts.Version()
	if err != nil || v != version.Minecraft_1_8 {
		t.Fatalf("expected 1.8, got %v (%v)", v, err)
	}
}

func TestLoadOptsUnknownVersion(t *testing.T) {
	if _, err := LoadOpts(writeFile(t, `native_version = "2.0"`)); err == nil {
		t.Fatalf("expected error for unknown native version")
	}
}

func TestLoadOptsMissingFile(t *testing.T) {
	if _, err := LoadOpts(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestDefaultOpts(t *testing.T) {
	v, err := DefaultOpts().Version()
	if err != nil || v != version.Latest {
		t.Fatalf("default native version should be latest, got %v (%v)", v, err)
	}
}
