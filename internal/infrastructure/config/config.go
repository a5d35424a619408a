package config

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"

	// DevSessionSecret signs sessions when SESSION_SECRET is unset in
	// development. Tokens signed with it are worthless anywhere else.
	DevSessionSecret = "gnanalytica-development-secret-change-me"

	defaultCalendarURL = "https://calendar.google.com/appointments/schedules/AcZssZ20kzIhtACNpQCMPvERahaZmkUOfe47XP2Oz72YUXE4Uj21gSvyKju1bKWtj7mjr14xA-jqzt1-"
)

type Config struct {
	Port     string `env:"PORT,      default=8080"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	Session  SessionConfig
	Content  ContentConfig
	Calendar CalendarConfig
	SignIn   SignInConfig
	Audit    AuditConfig
	Mongo    MongoConfig
	Redis    RedisConfig
}

type SessionConfig struct {
	Secret string        `env:"SESSION_SECRET"`
	TTL    time.Duration `env:"SESSION_TTL, default=720h"`
}

type ContentConfig struct {
	CatalogFile string `env:"CATALOG_FILE"`
	SiteFile    string `env:"SITE_FILE"`
	// ShowDemo lists the seeded demo logins on the sign-in page.
	ShowDemo bool `env:"DEMO_CREDENTIALS, default=true"`
}

type CalendarConfig struct {
	EmbedURL string `env:"CALENDAR_EMBED_URL"`
	Timezone string `env:"CALENDAR_TIMEZONE"`
}

type SignInConfig struct {
	Rate  float64 `env:"SIGNIN_RATE,  default=1"`
	Burst int     `env:"SIGNIN_BURST, default=5"`
}

type AuditConfig struct {
	Workers int `env:"AUDIT_WORKERS, default=4"`
}

// MongoConfig enables the persistent user directory and audit log when URI
// is set.
type MongoConfig struct {
	URI      string `env:"MONGO_URI"`
	Database string `env:"MONGO_DB, default=gnanalytica"`
}

// RedisConfig enables the shared revocation store when Addr is set.
type RedisConfig struct {
	Addr string `env:"REDIS_ADDR"`
	DB   int    `env:"REDIS_DB, default=0"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	return load(ctx, envconfig.OsLookuper())
}

func load(ctx context.Context, lookuper envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: lookuper}); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if cfg.Calendar.EmbedURL == "" {
		cfg.Calendar.EmbedURL = defaultCalendarURL
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.Session.Secret == "" {
		if c.Env != EnvDevelopment {
			return fmt.Errorf("SESSION_SECRET is required when ENV=%s", c.Env)
		}
		c.Session.Secret = DevSessionSecret
	}
	if c.Session.TTL <= 0 {
		return errors.New("SESSION_TTL must be positive")
	}
	if c.SignIn.Rate <= 0 || c.SignIn.Burst <= 0 {
		return errors.New("SIGNIN_RATE and SIGNIN_BURST must be positive")
	}
	return nil
}

// IsProduction reports whether the service runs with production settings.
func (c *Config) IsProduction() bool {
	return c.Env == EnvProduction
}

// UsingDevSecret reports whether sessions are signed with the built-in
// development secret.
func (c *Config) UsingDevSecret() bool {
	return c.Session.Secret == DevSessionSecret
}
