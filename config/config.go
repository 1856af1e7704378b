package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	ConfigDebug               = "debug"
	ConfigDepth               = "depth"
	ConfigHTTPAddr            = "http-addr"
	ConfigLineAddr            = "line-addr"
	ConfigNatsURL             = "nats-url"
	ConfigNatsChannel         = "nats-channel"
	ConfigDecideTimeout       = "decide-timeout"
	ConfigCacheType           = "cache-type"
	ConfigRedisURL            = "redis-url"
	ConfigCacheMemoryFraction = "cache-memory-fraction"
	ConfigCPUProfile          = "cpu-profile"
)

const (
	CacheTypeMemory = "memory"
	CacheTypeRedis  = "redis"
	CacheTypeNone   = "none"
)

var ErrBadSetting = errors.New("bad config setting")

type Config struct {
	viper.Viper
}

func DefaultConfig() *Config {
	c := &Config{Viper: *viper.New()}
	c.setDefaults()
	return c
}

func (c *Config) setDefaults() {
	c.SetDefault(ConfigDebug, false)
	c.SetDefault(ConfigDepth, 10)
	c.SetDefault(ConfigHTTPAddr, "localhost:6583")
	c.SetDefault(ConfigLineAddr, "localhost:6584")
	c.SetDefault(ConfigNatsURL, "nats://localhost:4222")
	c.SetDefault(ConfigNatsChannel, "trailbot.bot")
	c.SetDefault(ConfigDecideTimeout, 30*time.Second)
	c.SetDefault(ConfigCacheType, CacheTypeMemory)
	c.SetDefault(ConfigRedisURL, "redis://localhost:6379/0")
	c.SetDefault(ConfigCacheMemoryFraction, 0.01)
	c.SetDefault(ConfigCPUProfile, "")

	c.SetEnvPrefix("trailbot")
	c.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	c.AutomaticEnv()
}

// Flags returns a flag set naming every config key, for binding to a
// command line.
func Flags() *pflag.FlagSet {
	fs := pflag.NewFlagSet("trailbot", pflag.ContinueOnError)
	fs.Bool(ConfigDebug, false, "debug logging on")
	fs.Int(ConfigDepth, 10, "search depth in plies")
	fs.String(ConfigHTTPAddr, "localhost:6583", "address for the HTTP decision endpoint")
	fs.String(ConfigLineAddr, "localhost:6584", "address for the line protocol server")
	fs.String(ConfigNatsURL, "nats://localhost:4222", "NATS server for the bot worker")
	fs.String(ConfigNatsChannel, "trailbot.bot", "NATS subject the bot listens on")
	fs.Duration(ConfigDecideTimeout, 30*time.Second, "longest a single decision may take")
	fs.String(ConfigCacheType, CacheTypeMemory, "decision cache: memory, redis or none")
	fs.String(ConfigRedisURL, "redis://localhost:6379/0", "redis server for the redis decision cache")
	fs.Float64(ConfigCacheMemoryFraction, 0.01, "fraction of system memory the in-memory cache may use")
	fs.String(ConfigCPUProfile, "", "write a CPU profile to this file")
	return fs
}

// Load parses command-line style arguments into the config. Flags that
// are not given fall back to the environment, then to defaults.
func (c *Config) Load(args []string) error {
	c.setDefaults()
	fs := Flags()
	if err := fs.Parse(args); err != nil {
		return err
	}
	return c.BindFlags(fs)
}

// BindFlags makes the flags in fs override the matching config keys
// when they are set, then checks the result.
func (c *Config) BindFlags(fs *pflag.FlagSet) error {
	if err := c.BindPFlags(fs); err != nil {
		return err
	}
	return c.Validate()
}

// Validate rejects settings no command can run with.
func (c *Config) Validate() error {
	if d := c.Depth(); d < 1 {
		return fmt.Errorf("%w: %s must be at least 1, got %d", ErrBadSetting, ConfigDepth, d)
	}
	if t := c.DecideTimeout(); t < 0 {
		return fmt.Errorf("%w: %s cannot be negative, got %v", ErrBadSetting, ConfigDecideTimeout, t)
	}
	return nil
}

func (c *Config) Depth() int {
	return c.GetInt(ConfigDepth)
}

func (c *Config) DecideTimeout() time.Duration {
	return c.GetDuration(ConfigDecideTimeout)
}

// SanitizedSettings returns the settings with anything that may hold a
// credential removed, for logging.
func (c *Config) SanitizedSettings() map[string]any {
	settings := c.AllSettings()
	for _, k := range []string{ConfigRedisURL, ConfigNatsURL} {
		if _, ok := settings[k]; ok {
			settings[k] = "<redacted>"
		}
	}
	return settings
}
