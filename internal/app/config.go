package app

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
	"go.uber.org/zap/zapcore"

	"tooldir/internal/domain"
)

const envPrefix = "TOOLDIR"

// Config is the resolved runtime configuration.
type Config struct {
	StorePath     string              `mapstructure:"storePath"`
	Locale        string              `mapstructure:"locale"`
	TagCloudLimit int                 `mapstructure:"tagCloudLimit"`
	Log           LogConfig           `mapstructure:"log"`
	Feed          FeedConfig          `mapstructure:"feed"`
	Observability ObservabilityConfig `mapstructure:"observability"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

type FeedConfig struct {
	Path           string `mapstructure:"path"`
	DebounceMillis int    `mapstructure:"debounceMillis"`
}

type ObservabilityConfig struct {
	ListenAddress string `mapstructure:"listenAddress"`
}

func newConfigViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setConfigDefaults(v)
	return v
}

func setConfigDefaults(v *viper.Viper) {
	v.SetDefault("storePath", "")
	v.SetDefault("locale", domain.DefaultLocale)
	v.SetDefault("tagCloudLimit", domain.DefaultTagCloudLimit)
	v.SetDefault("log.level", domain.DefaultLogLevel)
	v.SetDefault("log.format", domain.DefaultLogFormat)
	v.SetDefault("feed.path", "")
	v.SetDefault("feed.debounceMillis", domain.DefaultFeedDebounceMillis)
	v.SetDefault("observability.listenAddress", domain.DefaultObservabilityListenAddress)
}

// LoadConfig reads the optional YAML file at path and applies TOOLDIR_*
// environment overrides on top of the defaults.
func LoadConfig(path string) (Config, error) {
	v := newConfigViper()

	if path = strings.TrimSpace(path); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
		if err := v.ReadConfig(bytes.NewReader(data)); err != nil {
			return Config{}, fmt.Errorf("parse config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	cfg.normalize()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) normalize() {
	c.StorePath = strings.TrimSpace(c.StorePath)
	c.Locale = strings.TrimSpace(c.Locale)
	if c.Locale == "" {
		c.Locale = domain.DefaultLocale
	}
	c.Log.Level = strings.ToLower(strings.TrimSpace(c.Log.Level))
	c.Log.Format = strings.ToLower(strings.TrimSpace(c.Log.Format))
	c.Feed.Path = strings.TrimSpace(c.Feed.Path)
	c.Observability.ListenAddress = strings.TrimSpace(c.Observability.ListenAddress)
}

// Validate reports every invalid setting at once.
func (c Config) Validate() error {
	var errs []string
	if c.TagCloudLimit < 0 {
		errs = append(errs, "tagCloudLimit must be >= 0")
	}
	if _, err := zapcore.ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, fmt.Sprintf("log.level %q is not a valid level", c.Log.Level))
	}
	if c.Log.Format != "console" && c.Log.Format != "json" {
		errs = append(errs, "log.format must be console or json")
	}
	if c.Feed.DebounceMillis < 0 {
		errs = append(errs, "feed.debounceMillis must be >= 0")
	}
	if len(errs) > 0 {
		return domain.E(domain.CodeInvalidArgument, "load config", strings.Join(errs, "; "), nil)
	}
	return nil
}
