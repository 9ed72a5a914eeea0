package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad_MissingFileFallsBackToDefaults(t *testing.T) {
	got := Load(filepath.Join(t.TempDir(), "missing.toml"))
	want := Default()
	if got != want {
		t.Errorf("Load(missing) = %+v, want defaults %+v", got, want)
	}
}

func TestLoad_OverridesOnlySpecifiedFields(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "xwords.toml")
	contents := `
[wordlist]
default_name = "ro"

[fill]
default_timeout = "30s"
`
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	got := Load(path)
	if got.Wordlist.DefaultName != "ro" {
		t.Errorf("DefaultName = %q, want ro", got.Wordlist.DefaultName)
	}
	if got.Wordlist.Dir != "./words" {
		t.Errorf("Dir = %q, want unset default ./words", got.Wordlist.Dir)
	}
	if got.FillTimeout() != 30*time.Second {
		t.Errorf("FillTimeout() = %v, want 30s", got.FillTimeout())
	}
	if got.Fill.ThroughputLogEvery != 10000 {
		t.Errorf("ThroughputLogEvery = %d, want unset default 10000", got.Fill.ThroughputLogEvery)
	}
}

func TestLoad_MalformedFileFallsBackToDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.toml")
	if err := os.WriteFile(path, []byte("not valid [[[ toml"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	got := Load(path)
	want := Default()
	if got != want {
		t.Errorf("Load(malformed) = %+v, want defaults %+v", got, want)
	}
}
