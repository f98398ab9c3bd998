package app

import (
	"os"
	"time"

	"github.com/cristalhq/aconfig"
	"github.com/cristalhq/aconfig/aconfigyaml"
	"github.com/go-faster/errors"
)

const defaultAddr = "0.0.0.0:4000"

// Config holds the API server configuration, loadable from environment
// variables (RFQ_ prefix), flags, or YAML config files.
type Config struct {
	Addr        string `default:"0.0.0.0:4000" usage:"API server listen address"`
	DatabaseURL string `usage:"Optional PostgreSQL connection URL; enables the postgres readiness check" flag:"database-url"`
	Health      HealthConfig
	Graceful    GracefulConfig
}

// HealthConfig controls the background liveness and readiness checks.
type HealthConfig struct {
	Interval      time.Duration `default:"10s"   usage:"Interval between health check runs"`
	MaxGoroutines int           `default:"10000" usage:"Goroutine count above which the service is not live" flag:"max-goroutines"`
	MaxGCPause    time.Duration `default:"1s"    usage:"GC pause above which the service is not live" flag:"max-gc-pause"`
}

// GracefulConfig controls graceful shutdown timing.
type GracefulConfig struct {
	ReadinessDelay  time.Duration `default:"3s"  usage:"Delay after readiness=false before shutdown" flag:"readiness-delay"`
	ShutdownTimeout time.Duration `default:"15s" usage:"Maximum shutdown duration" flag:"shutdown-timeout"`
}

// LoadConfig loads configuration from args, environment variables and YAML
// config files, then applies platform-specific defaults.
func LoadConfig(args []string) (*Config, error) {
	var cfg Config
	loader := aconfig.LoaderFor(&cfg, aconfig.Config{
		EnvPrefix: "RFQ",
		Args:      args,
		Files:     []string{"config.yaml", "/etc/rfq/config.yaml"},
		FileDecoders: map[string]aconfig.FileDecoder{
			".yaml": aconfigyaml.New(),
		},
		AllowUnknownFields: true,
		AllowUnknownEnvs:   true,
	})
	if err := loader.Load(); err != nil {
		return nil, errors.Wrap(err, "load config")
	}
	cfg.applyPlatformDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) validate() error {
	if c.Health.Interval <= 0 {
		return errors.Errorf("health interval must be positive, got %s", c.Health.Interval)
	}
	if c.Graceful.ReadinessDelay < 0 {
		return errors.Errorf("readiness delay must not be negative, got %s", c.Graceful.ReadinessDelay)
	}
	return nil
}

// applyPlatformDefaults maps platform-provided environment variables that use
// standard names like DATABASE_URL and PORT to the RFQ_-prefixed configuration.
func (c *Config) applyPlatformDefaults() {
	if c.DatabaseURL == "" {
		if v := os.Getenv("DATABASE_URL"); v != "" {
			c.DatabaseURL = v
		}
	}
	if port := os.Getenv("PORT"); port != "" && c.Addr == defaultAddr {
		c.Addr = "0.0.0.0:" + port
	}
}
