package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/hamed0406/pingwatch/internal/notify"
)

type ProbeConfig struct {
	Type          string `yaml:"type"`           // icmp | tcp | http
	Timeout       string `yaml:"timeout"`        // overall bound per probe
	PacketTimeout string `yaml:"packet_timeout"` // icmp per-packet wait
	Privileged    bool   `yaml:"privileged"`     // icmp raw socket mode
	Port          string `yaml:"port"`           // tcp only

	TimeoutDuration       time.Duration `yaml:"-"`
	PacketTimeoutDuration time.Duration `yaml:"-"`
}

type APIConfig struct {
	Addr  string `yaml:"addr"` // empty disables the status API
	RPM   int    `yaml:"rpm"`
	Burst int    `yaml:"burst"`
}

type Config struct {
	Interval string              `yaml:"interval"` // probe cadence per host
	Refresh  string              `yaml:"refresh"`  // display redraw cadence
	LogDir   string              `yaml:"log_dir"`
	Probe    ProbeConfig         `yaml:"probe"`
	API      APIConfig           `yaml:"api"`
	Slack    notify.SlackOptions `yaml:"slack"`

	IntervalDuration time.Duration `yaml:"-"`
	RefreshDuration  time.Duration `yaml:"-"`
}

// Default is the configuration used when no config file is present:
// monitoring runs, notifications stay off.
func Default() Config {
	cfg := Config{
		Interval: "5s",
		Refresh:  "2s",
		LogDir:   "logs",
		Probe: ProbeConfig{
			Type:          "icmp",
			Timeout:       "3s",
			PacketTimeout: "2s",
		},
		API: APIConfig{RPM: 120, Burst: 60},
		Slack: notify.SlackOptions{
			Enabled:          false,
			NotifyOnDown:     true,
			NotifyOnRecovery: true,
			DownThreshold:    10,
		},
	}
	// Default() can't fail: the literals above always parse.
	_ = cfg.parseDurations()
	return cfg
}

// Load reads the YAML config document. Any problem (missing file, malformed
// YAML, bad duration string) is reported to the caller, who degrades to
// Default() with notifications disabled; it is never fatal.
func Load(path string) (Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Default(), err
	}

	cfg := Default()
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return Default(), fmt.Errorf("parse %s: %w", path, err)
	}
	if err := cfg.parseDurations(); err != nil {
		return Default(), fmt.Errorf("parse %s: %w", path, err)
	}
	if cfg.Slack.DownThreshold < 1 {
		cfg.Slack.DownThreshold = 1
	}
	return cfg, nil
}

func (c *Config) parseDurations() error {
	var err error
	if c.IntervalDuration, err = time.ParseDuration(c.Interval); err != nil {
		return fmt.Errorf("interval: %w", err)
	}
	if c.RefreshDuration, err = time.ParseDuration(c.Refresh); err != nil {
		return fmt.Errorf("refresh: %w", err)
	}
	if c.Probe.TimeoutDuration, err = time.ParseDuration(c.Probe.Timeout); err != nil {
		return fmt.Errorf("probe.timeout: %w", err)
	}
	if c.Probe.PacketTimeoutDuration, err = time.ParseDuration(c.Probe.PacketTimeout); err != nil {
		return fmt.Errorf("probe.packet_timeout: %w", err)
	}
	return nil
}

// Paths are the file locations resolved before the config itself is loaded.
type Paths struct {
	ConfigFile string
	HostsFile  string
	LogDir     string // overrides Config.LogDir when set
}

func FromEnv() Paths {
	p := Paths{
		ConfigFile: "config.yaml",
		HostsFile:  "hosts.txt",
	}
	if v := os.Getenv("PINGWATCH_CONFIG"); v != "" {
		p.ConfigFile = v
	}
	if v := os.Getenv("PINGWATCH_HOSTS"); v != "" {
		p.HostsFile = v
	}
	if v := os.Getenv("LOG_DIR"); v != "" {
		p.LogDir = v
	}
	return p
}
