package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"time"

	"github.com/adrg/xdg"
	"github.com/go-playground/validator/v10"
	"github.com/mitchellh/go-homedir"
	"gopkg.in/yaml.v3"
)

const (
	XDGName = "resh"

	DefaultAPIBaseURL        = "https://www.reddit.com"
	DefaultOAuthBaseURL      = "https://oauth.reddit.com"
	DefaultUserAgent         = "resh/0.2 (terminal reddit shell)"
	DefaultPageSize          = 10
	DefaultSort              = "hot"
	DefaultRequestsPerMinute = 30
	DefaultRequestTimeout    = 10 * time.Second
)

// Config holds runtime settings for the shell. Precedence, lowest first:
// defaults, the YAML file, RESH_* environment variables, command-line flags.
type Config struct {
	PageSize          int           `yaml:"page_size" validate:"gte=1,lte=100"`
	ASCIIOnly         bool          `yaml:"ascii"`
	APIBaseURL        string        `yaml:"api_base_url" validate:"omitempty,url"`
	UserAgent         string        `yaml:"user_agent" validate:"required"`
	AccessToken       string        `yaml:"access_token"`
	DefaultSort       string        `yaml:"sort" validate:"oneof=hot new top rising controversial"`
	RequestsPerMinute int           `yaml:"requests_per_minute" validate:"gte=0"`
	RequestTimeout    time.Duration `yaml:"request_timeout" validate:"gte=0"`
	LogPath           string        `yaml:"log_path"`
	LogLevel          string        `yaml:"log_level" validate:"omitempty,oneof=debug info warn error"`
}

func Default() Config {
	return Config{
		PageSize:          DefaultPageSize,
		ASCIIOnly:         runtime.GOOS == "windows",
		UserAgent:         DefaultUserAgent,
		DefaultSort:       DefaultSort,
		RequestsPerMinute: DefaultRequestsPerMinute,
		RequestTimeout:    DefaultRequestTimeout,
		LogPath:           filepath.Join(xdg.StateHome, XDGName, "resh.log"),
		LogLevel:          "info",
	}
}

// DefaultPath is where Load looks when no file is given.
func DefaultPath() string {
	return filepath.Join(xdg.ConfigHome, XDGName, "config.yaml")
}

// Load reads defaults, then the YAML file at path, then the environment. An
// empty path means DefaultPath, which may be missing; an explicit path must
// exist.
func Load(path string) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = DefaultPath()
	}
	expanded, err := homedir.Expand(path)
	if err != nil {
		return Config{}, fmt.Errorf("expand config path: %w", err)
	}
	f, err := os.Open(expanded)
	switch {
	case err == nil:
		cfg, err = NewFromReader(f, cfg)
		f.Close()
		if err != nil {
			return Config{}, fmt.Errorf("%s: %w", expanded, err)
		}
	case errors.Is(err, os.ErrNotExist) && !explicit:
	default:
		return Config{}, fmt.Errorf("open config file: %w", err)
	}

	if err := applyEnv(&cfg); err != nil {
		return Config{}, err
	}
	return cfg.finish()
}

// LoadFromEnv skips the config file.
func LoadFromEnv() (Config, error) {
	cfg := Default()
	if err := applyEnv(&cfg); err != nil {
		return Config{}, err
	}
	return cfg.finish()
}

// NewFromReader overlays YAML from r onto base without validating.
func NewFromReader(r io.Reader, base Config) (Config, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Config{}, fmt.Errorf("unable to read config: %w", err)
	}
	cfg := base
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("unable to unmarshal config: %w", err)
	}
	return cfg, nil
}

func applyEnv(cfg *Config) error {
	if v := os.Getenv("RESH_PAGE_SIZE"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("RESH_PAGE_SIZE must be a number: %s", v)
		}
		cfg.PageSize = n
	}
	if v := os.Getenv("RESH_ASCII"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("RESH_ASCII must be true or false: %s", v)
		}
		cfg.ASCIIOnly = b
	}
	if v := os.Getenv("RESH_REQUESTS_PER_MINUTE"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("RESH_REQUESTS_PER_MINUTE must be a number: %s", v)
		}
		cfg.RequestsPerMinute = n
	}
	if v := os.Getenv("RESH_REQUEST_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("RESH_REQUEST_TIMEOUT must be a duration: %s", v)
		}
		cfg.RequestTimeout = d
	}
	for env, field := range map[string]*string{
		"RESH_API_BASE_URL": &cfg.APIBaseURL,
		"RESH_USER_AGENT":   &cfg.UserAgent,
		"RESH_ACCESS_TOKEN": &cfg.AccessToken,
		"RESH_SORT":         &cfg.DefaultSort,
		"RESH_LOG_PATH":     &cfg.LogPath,
		"RESH_LOG_LEVEL":    &cfg.LogLevel,
	} {
		if v := os.Getenv(env); v != "" {
			*field = v
		}
	}
	return nil
}

func (c Config) finish() (Config, error) {
	if c.LogPath != "" {
		expanded, err := homedir.Expand(c.LogPath)
		if err != nil {
			return Config{}, fmt.Errorf("expand log path: %w", err)
		}
		c.LogPath = expanded
	}
	c.LogLevel = strings.ToLower(c.LogLevel)
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

var validate = validator.New()

func (c Config) Validate() error {
	if c.PageSize < 1 {
		return fmt.Errorf("PageSize must be at least 1: %d", c.PageSize)
	}
	if strings.HasSuffix(c.APIBaseURL, "/") {
		return fmt.Errorf("APIBaseURL must not end with '/': %s", c.APIBaseURL)
	}
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("config validation error: %w", err)
	}
	return nil
}

// BaseURL is the API host requests go to: the configured one, else the
// OAuth host when a token is set.
func (c Config) BaseURL() string {
	if c.APIBaseURL != "" {
		return c.APIBaseURL
	}
	if c.AccessToken != "" {
		return DefaultOAuthBaseURL
	}
	return DefaultAPIBaseURL
}
