package config

import (
	"errors"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
)

// Config holds the adapter's configuration block, loaded from
// config.toml. Every field maps to one line of the "Configuration"
// table this adapter exposes to its host.
type Config struct {
	// Interface is the local network interface name bound by the UPnP
	// client. Empty means the library default (all interfaces).
	Interface string `toml:"interface"`

	Cache Cache `toml:"cache"`

	// DiscoveryInterval controls how often SSDP re-search runs.
	DiscoveryInterval duration `toml:"discovery_interval"`

	// Notify is optional: when Broker is empty, no MQTT change
	// notifications are published.
	Notify Notify `toml:"notify"`
}

// Cache configures the browse/metadata response cache.
type Cache struct {
	SizeBytes int      `toml:"size_bytes"`
	TTL       duration `toml:"ttl"`
}

// Notify configures the optional MQTT side channel that announces
// discovery changes (servers appearing/disappearing).
type Notify struct {
	Broker   string `toml:"broker"`
	ClientID string `toml:"client_id"`
	Topic    string `toml:"topic"`
}

// duration wraps time.Duration with TOML string decoding ("30s",
// "5m"), the way the rest of this adapter's timeouts are configured.
type duration time.Duration

func (d *duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	*d = duration(parsed)
	return nil
}

// Duration returns the underlying time.Duration.
func (d duration) Duration() time.Duration { return time.Duration(d) }

// defaultConfig fills in the values this adapter runs with when no
// config.toml is present.
func defaultConfig() Config {
	return Config{
		Cache: Cache{
			SizeBytes: 8 << 20,
			TTL:       duration(5 * time.Minute),
		},
		DiscoveryInterval: duration(time.Minute),
	}
}

// Load reads config.toml if present, falling back to defaults for a
// missing file.
func Load() (Config, error) {
	cfg := defaultConfig()

	path, err := configPath()
	if err != nil {
		return Config{}, err
	}

	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, err
	}
	if info.IsDir() {
		return Config{}, errors.New("config path is a directory")
	}

	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func configPath() (string, error) {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "upnpdb", "config.toml"), nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "upnpdb", "config.toml"), nil
}
