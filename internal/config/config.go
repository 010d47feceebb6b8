package config

import (
	"fmt"
	"net/url"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const envPrefix = "FOLIO_"

// Config holds all configuration for the site.
type Config struct {
	Port string `koanf:"port"`

	// APIBaseURL is the origin every content endpoint is appended to.
	APIBaseURL string `koanf:"api_base_url"`
	// APISecret is sent as the secret-key header when non-empty.
	APISecret string `koanf:"api_secret"`
	// DefaultUsername is the profile rendered when a request carries no name parameter.
	DefaultUsername     string `koanf:"default_username"`
	PortfolioCategoryID string `koanf:"portfolio_category_id"`

	// ShellPath overrides the embedded page shell.
	ShellPath string `koanf:"shell_path"`
	StaticDir string `koanf:"static_dir"`

	LogFormat string `koanf:"log_format"`
	LogLevel  string `koanf:"log_level"`
	GinMode   string `koanf:"gin_mode"`

	Mail Mail `koanf:"mail"`
}

// Mail configures where contact form submissions go.
type Mail struct {
	Provider string `koanf:"provider"`
	Host     string `koanf:"host"`
	Port     string `koanf:"port"`
	User     string `koanf:"user"`
	Pass     string `koanf:"pass"`
	To       string `koanf:"to"`
}

// Default returns the configuration used when nothing overrides it.
func Default() *Config {
	return &Config{
		Port:                "8080",
		APIBaseURL:          "https://portfolio.theapplicationdevelopers.in",
		DefaultUsername:     "jagadesh",
		PortfolioCategoryID: "1",
		StaticDir:           "./static",
		LogFormat:           "text",
		LogLevel:            "info",
		GinMode:             "release",
		Mail: Mail{
			Provider: "log",
			Host:     "smtp.gmail.com",
			Port:     "587",
		},
	}
}

// Load reads configuration from the given YAML file, then overlays
// environment variable overrides (PORT, then FOLIO_*). A missing file is not
// an error.
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	cfg := Default()

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
				return nil, fmt.Errorf("reading config %s: %w", path, err)
			}
		} else if !os.IsNotExist(err) {
			return nil, fmt.Errorf("accessing config %s: %w", path, err)
		}
	}

	// Hosting platforms set a bare PORT; FOLIO_PORT still wins over it.
	if err := k.Load(env.ProviderWithValue("PORT", ".", platformPort), nil); err != nil {
		return nil, fmt.Errorf("loading PORT: %w", err)
	}

	// FOLIO_API_BASE_URL -> api_base_url, FOLIO_MAIL_HOST -> mail.host
	if err := k.Load(env.Provider(envPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("loading env overrides: %w", err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	return cfg, nil
}

func platformPort(key, value string) (string, any) {
	if key != "PORT" || value == "" {
		return "", nil
	}
	return "port", value
}

func envKey(s string) string {
	key := strings.ToLower(strings.TrimPrefix(s, envPrefix))
	if rest, ok := strings.CutPrefix(key, "mail_"); ok {
		return "mail." + rest
	}
	return key
}

// Validate checks that the configuration contains usable values.
func (c *Config) Validate() error {
	if c.Port == "" {
		return fmt.Errorf("port is required")
	}

	if strings.TrimSpace(c.DefaultUsername) == "" {
		return fmt.Errorf("default_username is required")
	}

	u, err := url.Parse(c.APIBaseURL)
	if err != nil {
		return fmt.Errorf("invalid api_base_url %q: %w", c.APIBaseURL, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("invalid api_base_url %q: must be an absolute http(s) URL", c.APIBaseURL)
	}

	switch c.LogFormat {
	case "text", "json":
	default:
		return fmt.Errorf("invalid log_format %q: must be one of text, json", c.LogFormat)
	}

	switch c.GinMode {
	case "debug", "release", "test":
	default:
		return fmt.Errorf("invalid gin_mode %q: must be one of debug, release, test", c.GinMode)
	}

	switch c.Mail.Provider {
	case "log":
	case "smtp":
		if c.Mail.User == "" || c.Mail.Pass == "" {
			return fmt.Errorf("mail provider is 'smtp' but mail.user or mail.pass is not set")
		}
		if c.Mail.To == "" {
			return fmt.Errorf("mail provider is 'smtp' but mail.to is not set")
		}
	default:
		return fmt.Errorf("invalid mail.provider %q: must be one of log, smtp", c.Mail.Provider)
	}

	return nil
}

// Addr is the listen address for the HTTP server.
func (c *Config) Addr() string {
	return ":" + c.Port
}
