package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	DSTK   DSTKConfig   `yaml:"dstk" mapstructure:"dstk"`
	Server ServerConfig `yaml:"server" mapstructure:"server"`
	Log    LogConfig    `yaml:"log" mapstructure:"log"`
}

// DSTKConfig configures the DataScienceToolkit upstream.
type DSTKConfig struct {
	BaseURL     string `yaml:"base_url" mapstructure:"base_url"`
	TimeoutSecs int    `yaml:"timeout_secs" mapstructure:"timeout_secs"`
	UserAgent   string `yaml:"user_agent" mapstructure:"user_agent"`
}

// Timeout returns the upstream request timeout.
func (c DSTKConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSecs) * time.Second
}

// ServerConfig configures the HTTP API server.
type ServerConfig struct {
	Port           int      `yaml:"port" mapstructure:"port"`
	AllowedOrigins []string `yaml:"allowed_origins" mapstructure:"allowed_origins"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from file and environment. A .env file in the
// working directory, if present, is loaded into the environment first.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !isNotExist(err) {
		return nil, eris.Wrap(err, "config: load .env")
	}

	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("GEOCODER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("dstk.base_url", "http://www.datasciencetoolkit.org")
	v.SetDefault("dstk.timeout_secs", 30)
	v.SetDefault("dstk.user_agent", "dstk-geocoder/1.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.allowed_origins", []string{"*"})
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// Validate checks the settings required by the given mode ("geocode" or "serve").
func (c *Config) Validate(mode string) error {
	var errs []string

	switch mode {
	case "geocode", "serve":
	default:
		return eris.Errorf("config: unknown mode %q", mode)
	}

	if c.DSTK.BaseURL == "" {
		errs = append(errs, "dstk.base_url is required")
	} else if u, err := url.Parse(c.DSTK.BaseURL); err != nil || u.Scheme == "" || u.Host == "" {
		errs = append(errs, fmt.Sprintf("dstk.base_url %q is not an absolute URL", c.DSTK.BaseURL))
	}
	if c.DSTK.TimeoutSecs <= 0 {
		errs = append(errs, "dstk.timeout_secs must be > 0")
	}

	if mode == "serve" && (c.Server.Port <= 0 || c.Server.Port > 65535) {
		errs = append(errs, "server.port must be > 0 and <= 65535")
	}

	if len(errs) > 0 {
		return eris.Errorf("config: %s", strings.Join(errs, "; "))
	}
	return nil
}

// ServiceName is attached to every log line as the "service" field.
const ServiceName = "dstk-geocoder"

// loggerConfig maps LogConfig onto a zap config. Format is "json" or
// "console"; empty means json.
func loggerConfig(cfg LogConfig) (zap.Config, error) {
	var zapCfg zap.Config
	switch cfg.Format {
	case "", "json":
		zapCfg = zap.NewProductionConfig()
	case "console":
		zapCfg = zap.NewDevelopmentConfig()
	default:
		return zap.Config{}, eris.Errorf("config: unknown log format %q", cfg.Format)
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return zap.Config{}, eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)
	zapCfg.InitialFields = map[string]any{"service": ServiceName}
	return zapCfg, nil
}

// InitLogger builds a logger from cfg and installs it as the zap global.
func InitLogger(cfg LogConfig) error {
	zapCfg, err := loggerConfig(cfg)
	if err != nil {
		return err
	}

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)
	return nil
}

func isNotExist(err error) bool {
	return errors.Is(err, fs.ErrNotExist)
}
