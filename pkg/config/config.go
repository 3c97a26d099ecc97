package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/cuemby/eventchannel/pkg/channel"
	"github.com/cuemby/eventchannel/pkg/log"
	"github.com/cuemby/eventchannel/pkg/policy"
	"github.com/cuemby/eventchannel/pkg/queue"
	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig wraps every validation failure
var ErrInvalidConfig = errors.New("invalid config")

const (
	DefaultGRPCAddr = "127.0.0.1:7400"
	DefaultHTTPAddr = "127.0.0.1:7401"
	DefaultDataDir  = "./data"
)

// Duration is a time.Duration that reads Go duration strings from YAML
type Duration time.Duration

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return fmt.Errorf("duration must be a string: %w", err)
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("line %d: %w", value.Line, err)
	}
	*d = Duration(parsed)
	return nil
}

func (d Duration) MarshalYAML() (interface{}, error) {
	return time.Duration(d).String(), nil
}

// Config is the server configuration file
type Config struct {
	Server       ServerConfig    `yaml:"server"`
	AdminChannel string          `yaml:"admin_channel"`
	Channels     []ChannelConfig `yaml:"channels"`
}

// ServerConfig holds listener, storage and logging settings
type ServerConfig struct {
	GRPCAddr string `yaml:"grpc_addr"`
	HTTPAddr string `yaml:"http_addr"`
	DataDir  string `yaml:"data_dir"`
	LogLevel string `yaml:"log_level"`
	LogJSON  bool   `yaml:"log_json"`
}

// ChannelConfig describes one channel
type ChannelConfig struct {
	Name                string   `yaml:"name"`
	Persistent          bool     `yaml:"persistent"`
	RelaxLivenessChecks bool     `yaml:"relax_liveness_checks"`
	BatchSize           int      `yaml:"batch_size"`
	MaxPushWait         Duration `yaml:"max_push_wait"`
	WakeInterval        Duration `yaml:"wake_interval"`
	RateLimit           float64  `yaml:"rate_limit"`
	RateBurst           int      `yaml:"rate_burst"`
}

// Default returns a configuration with no channels
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Load reads, defaults and validates a YAML configuration file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	return Parse(data)
}

// Parse decodes, defaults and validates YAML configuration data
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Server.GRPCAddr == "" {
		c.Server.GRPCAddr = DefaultGRPCAddr
	}
	if c.Server.HTTPAddr == "" {
		c.Server.HTTPAddr = DefaultHTTPAddr
	}
	if c.Server.DataDir == "" {
		c.Server.DataDir = DefaultDataDir
	}
	if c.Server.LogLevel == "" {
		c.Server.LogLevel = string(log.InfoLevel)
	}
	if c.AdminChannel == "" {
		c.AdminChannel = channel.DefaultAdminChannel
	}

	for i := range c.Channels {
		ch := &c.Channels[i]
		if ch.BatchSize == 0 {
			ch.BatchSize = queue.DefaultBatchSize
		}
		if ch.MaxPushWait == 0 {
			ch.MaxPushWait = Duration(policy.DefaultMaxPushWait)
		}
		if ch.WakeInterval == 0 {
			ch.WakeInterval = Duration(channel.DefaultWakeInterval)
		}
	}
}

// Validate checks the configuration
func (c *Config) Validate() error {
	switch log.Level(c.Server.LogLevel) {
	case log.DebugLevel, log.InfoLevel, log.WarnLevel, log.ErrorLevel:
	default:
		return fmt.Errorf("%w: unknown log level %q", ErrInvalidConfig, c.Server.LogLevel)
	}

	seen := map[string]bool{c.AdminChannel: true}
	for i, ch := range c.Channels {
		if ch.Name == "" {
			return fmt.Errorf("%w: channels[%d]: name is required", ErrInvalidConfig, i)
		}
		if seen[ch.Name] {
			return fmt.Errorf("%w: duplicate channel name %q", ErrInvalidConfig, ch.Name)
		}
		seen[ch.Name] = true

		if ch.BatchSize <= 0 {
			return fmt.Errorf("%w: channel %s: batch_size must be positive", ErrInvalidConfig, ch.Name)
		}
		if ch.MaxPushWait <= 0 {
			return fmt.Errorf("%w: channel %s: max_push_wait must be positive", ErrInvalidConfig, ch.Name)
		}
		if ch.WakeInterval <= 0 {
			return fmt.Errorf("%w: channel %s: wake_interval must be positive", ErrInvalidConfig, ch.Name)
		}
		if ch.RateLimit < 0 || ch.RateBurst < 0 {
			return fmt.Errorf("%w: channel %s: rate settings must not be negative", ErrInvalidConfig, ch.Name)
		}
	}
	return nil
}

// ChannelConfig converts the file form into a channel configuration
func (c ChannelConfig) ChannelConfig() channel.Config {
	return channel.Config{
		Name:                c.Name,
		Persistent:          c.Persistent,
		RelaxLivenessChecks: c.RelaxLivenessChecks,
		BatchSize:           c.BatchSize,
		MaxPushWait:         time.Duration(c.MaxPushWait),
		WakeInterval:        time.Duration(c.WakeInterval),
		RateLimit:           c.RateLimit,
		RateBurst:           c.RateBurst,
	}
}

// LogConfig returns the logging settings
func (c *Config) LogConfig() log.Config {
	return log.Config{
		Level:      log.ParseLevel(c.Server.LogLevel),
		JSONOutput: c.Server.LogJSON,
	}
}
