package provision

import (
	"os"

	"github.com/cristalhq/aconfig"
	"github.com/cristalhq/aconfig/aconfigyaml"
	"github.com/go-faster/errors"
)

// Config holds the schema setup configuration, loadable from environment
// variables (RFQ_ prefix), flags, or YAML config files.
type Config struct {
	DatabaseURL string `usage:"PostgreSQL connection URL (RFQ_DATABASE_URL or DATABASE_URL)" flag:"database-url"`
	PrintSchema bool   `default:"false" usage:"Print the schema DDL and exit without connecting" flag:"print-schema"`
}

// LoadConfig reads the configuration from args, the environment and config
// files. A missing database URL is not an error here; Provisioner.Run reports it.
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

	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	return &cfg, nil
}
