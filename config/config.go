// Package config loads the optional TOML run configuration shared by the
// CLI and the Cloud Function: wordlist locations, fill defaults, and the
// optional BigQuery-backed wordlist source. A missing or malformed file
// falls back to built-in defaults rather than failing the run.
package config

import (
	"time"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"
)

// Wordlist describes where raw wordlist files and the index cache live.
type Wordlist struct {
	Dir         string `toml:"dir"`
	DefaultName string `toml:"default_name"`
	CacheDir    string `toml:"cache_dir"`
}

// Fill describes the fill engine's run defaults.
type Fill struct {
	DefaultTimeout     duration `toml:"default_timeout"`
	ThroughputLogEvery int      `toml:"throughput_log_every"`
}

// Cloud describes the optional BigQuery-backed wordlist source. Either field
// empty disables it.
type Cloud struct {
	Project string `toml:"project"`
	Dataset string `toml:"dataset"`
}

// Server describes the local-dev runner for the Cloud Function.
type Server struct {
	Port int `toml:"port"`
}

// Config is the full run configuration, with every field defaulted.
type Config struct {
	Wordlist Wordlist `toml:"wordlist"`
	Fill     Fill     `toml:"fill"`
	Cloud    Cloud    `toml:"cloud"`
	Server   Server   `toml:"server"`
}

// duration wraps time.Duration so BurntSushi/toml can decode strings like
// "2m" via TextUnmarshaler, instead of requiring a raw integer of
// nanoseconds in the file.
type duration struct {
	time.Duration
}

func (d *duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = parsed
	return nil
}

// Default returns the built-in configuration, matching §6 of the spec:
// local ./words, default wordlist "en", 2-minute fill budget, throughput
// logged every 10000 candidates, BigQuery disabled, port 8080.
func Default() Config {
	return Config{
		Wordlist: Wordlist{
			Dir:         "./words",
			DefaultName: "en",
			CacheDir:    "./words/.cache",
		},
		Fill: Fill{
			DefaultTimeout:     duration{2 * time.Minute},
			ThroughputLogEvery: 10000,
		},
		Server: Server{Port: 8080},
	}
}

// FillTimeout returns the configured fill budget as a plain time.Duration.
func (c Config) FillTimeout() time.Duration {
	return c.Fill.DefaultTimeout.Duration
}

// Load reads path as TOML over the built-in defaults: any field path
// leaves unset keeps its default value. A missing or malformed file is
// logged at debug level and Default() is returned unchanged, matching this
// lineage's default-on-missing-config posture.
func Load(path string) Config {
	cfg := Default()
	if path == "" {
		return cfg
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		log.Debug("config: falling back to defaults", "path", path, "err", err)
		return Default()
	}
	return cfg
}
