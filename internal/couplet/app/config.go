package app

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds every runtime setting of the couplet service.
type Config struct {
	Port         int    `env:"COUPLET_PORT" envDefault:"8080"`
	DatabaseFile string `env:"COUPLET_DATABASE_FILE" envDefault:"couplet.db"`
	BlobDir      string `env:"COUPLET_BLOB_DIR" envDefault:"blobs"`
	// PublicURL is the externally reachable base URL, used for media links.
	PublicURL  string        `env:"COUPLET_PUBLIC_URL" envDefault:"http://localhost:8080"`
	Issuer     string        `env:"COUPLET_ISSUER" envDefault:"couplet"`
	PepperFile string        `env:"COUPLET_PEPPER_FILE" envDefault:"pepper"`
	AccessTTL  time.Duration `env:"COUPLET_ACCESS_TTL" envDefault:"24h"`
	// TrustProxyHeaders keys rate limits on X-Forwarded-For/X-Real-IP.
	// Enable only behind a proxy that sets them.
	TrustProxyHeaders bool `env:"COUPLET_TRUST_PROXY_HEADERS" envDefault:"false"`

	Env       string `env:"ENV" envDefault:"dev"`
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"json"`

	ShutdownGracePeriod  time.Duration `env:"SHUTDOWN_GRACE_PERIOD" envDefault:"10s"`
	HousekeepingInterval time.Duration `env:"HOUSEKEEPING_INTERVAL" envDefault:"1h"`
	InviteCodeRetention  time.Duration `env:"INVITE_CODE_RETENTION" envDefault:"24h"`

	// OTelEndpoint enables trace export when set, e.g. http://localhost:4318.
	OTelEndpoint string `env:"OTEL_ENDPOINT"`
}

// LoadConfig reads Config from the environment.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	cfg.PublicURL = strings.TrimRight(cfg.PublicURL, "/")
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects settings the service cannot start with.
func (c Config) Validate() error {
	var errs []error
	if c.Port <= 0 || c.Port > 65535 {
		errs = append(errs, fmt.Errorf("COUPLET_PORT out of range: %d", c.Port))
	}
	if c.DatabaseFile == "" {
		errs = append(errs, errors.New("COUPLET_DATABASE_FILE is required"))
	}
	if c.PublicURL == "" {
		errs = append(errs, errors.New("COUPLET_PUBLIC_URL is required"))
	}
	if c.Issuer == "" {
		errs = append(errs, errors.New("COUPLET_ISSUER is required"))
	}
	if c.AccessTTL <= 0 {
		errs = append(errs, errors.New("COUPLET_ACCESS_TTL must be positive"))
	}
	return errors.Join(errs...)
}
