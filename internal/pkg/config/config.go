package config

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sethvargo/go-envconfig"
)

const (
	EnvProduction = "production"

	// DefaultJWTSecret and DefaultMongoURI are the well-known fallbacks used
	// when nothing is configured. They are only accepted outside production.
	DefaultJWTSecret = "fallback_secret"
	DefaultMongoURI  = "mongodb://localhost:27017/digital_health_record"

	StoreMongo  = "mongo"
	StoreMemory = "memory"
)

var ErrInsecureConfig = errors.New("insecure configuration")

type Config struct {
	Port     string `env:"PORT,      default=5000"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	JWTSecret  string `env:"JWT_SECRET"`
	BcryptCost int    `env:"BCRYPT_COST, default=10"`

	// InsecureDefaults controls whether the fallback secret and store URI may
	// be used. Unset means "allowed unless ENV=production".
	InsecureDefaults *bool `env:"INSECURE_DEFAULTS, noinit"`
	SeedDemoUsers    bool  `env:"SEED_DEMO_USERS,   default=false"`

	CORSOrigins []string `env:"CORS_ORIGINS, default=*"`

	Store StoreConfig
	Redis RedisConfig

	// Defaulted lists the settings that fell back to a well-known value.
	Defaulted []string
}

type StoreConfig struct {
	Driver   string `env:"STORE_DRIVER, default=mongo"`
	MongoURI string `env:"MONGODB_URI"`
	Database string `env:"MONGO_DB"`
}

type RedisConfig struct {
	Addr       string        `env:"REDIS_ADDR"`
	DB         int           `env:"REDIS_DB,          default=0"`
	ProfileTTL time.Duration `env:"PROFILE_CACHE_TTL, default=1m"`
}

// Load reads configuration from environment variables using go-envconfig and
// resolves defaults.
func Load(ctx context.Context) (*Config, error) {
	return load(ctx, envconfig.OsLookuper())
}

func load(ctx context.Context, lookuper envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   &cfg,
		Lookuper: lookuper,
	}); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := cfg.Resolve(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Env, EnvProduction)
}

// Resolve fills in the fallback secret and store URI and refuses to do so in
// production. It also rejects development-only features in production.
func (c *Config) Resolve() error {
	c.Store.Driver = strings.ToLower(strings.TrimSpace(c.Store.Driver))
	if c.Store.Driver != StoreMongo && c.Store.Driver != StoreMemory {
		return fmt.Errorf("config: unknown STORE_DRIVER %q", c.Store.Driver)
	}

	if c.IsProduction() {
		var problems []string
		if c.InsecureDefaults != nil && *c.InsecureDefaults {
			problems = append(problems, "INSECURE_DEFAULTS must not be set")
		}
		if c.JWTSecret == "" {
			problems = append(problems, "JWT_SECRET is required")
		}
		if c.Store.Driver == StoreMemory {
			problems = append(problems, "STORE_DRIVER=memory is not allowed")
		} else if c.Store.MongoURI == "" {
			problems = append(problems, "MONGODB_URI is required")
		}
		if c.SeedDemoUsers {
			problems = append(problems, "SEED_DEMO_USERS must not be set")
		}
		if len(problems) > 0 {
			return fmt.Errorf("%w: %s", ErrInsecureConfig, strings.Join(problems, "; "))
		}
		return nil
	}

	allowDefaults := c.InsecureDefaults == nil || *c.InsecureDefaults
	if !allowDefaults {
		var missing []string
		if c.JWTSecret == "" {
			missing = append(missing, "JWT_SECRET")
		}
		if c.Store.Driver == StoreMongo && c.Store.MongoURI == "" {
			missing = append(missing, "MONGODB_URI")
		}
		if len(missing) > 0 {
			return fmt.Errorf("%w: INSECURE_DEFAULTS=false and %s unset", ErrInsecureConfig, strings.Join(missing, ", "))
		}
		return nil
	}

	if c.JWTSecret == "" {
		c.JWTSecret = DefaultJWTSecret
		c.Defaulted = append(c.Defaulted, "JWT_SECRET")
	}
	if c.Store.Driver == StoreMongo && c.Store.MongoURI == "" {
		c.Store.MongoURI = DefaultMongoURI
		c.Defaulted = append(c.Defaulted, "MONGODB_URI")
	}
	return nil
}
