package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"github.com/xtding233/pricing-backend/internal/pricing"
)

// Config is the service configuration. Values come from an optional YAML file
// and are then overridden by any flags set on the command line.
type Config struct {
	HTTPAddr       string        `yaml:"http_addr" validate:"required"`
	GRPCAddr       string        `yaml:"grpc_addr"` // empty disables the gRPC listener
	CatalogDir     string        `yaml:"catalog_dir"`
	WatchInterval  time.Duration `yaml:"watch_interval" validate:"gte=0"`
	AllowanceScope string        `yaml:"allowance_scope" validate:"oneof=seat organization plan"`
}

func NewConfig() *Config {
	return &Config{
		HTTPAddr:       ":8080",
		GRPCAddr:       ":9090",
		WatchInterval:  5 * time.Second,
		AllowanceScope: string(pricing.ScopePerSeat),
	}
}

// AddFlags binds the config fields to fs. Defaults are the current values.
func (c *Config) AddFlags(fs *pflag.FlagSet) {
	fs.StringVar(&c.HTTPAddr, "http-addr", c.HTTPAddr, "HTTP listen address")
	fs.StringVar(&c.GRPCAddr, "grpc-addr", c.GRPCAddr, "gRPC listen address, empty to disable")
	fs.StringVar(&c.CatalogDir, "catalog-dir", c.CatalogDir, "directory holding catalog.yaml and overrides/*.yaml; empty uses the embedded catalog")
	fs.DurationVar(&c.WatchInterval, "watch-interval", c.WatchInterval, "catalog poll interval, 0 disables hot reload")
	fs.StringVar(&c.AllowanceScope, "allowance-scope", c.AllowanceScope, "allowance multiplication: seat, organization or plan")
}

// ReadFile overlays the YAML file at path onto c. Flags explicitly set in fs
// keep their command-line value.
func (c *Config) ReadFile(path string, fs *pflag.FlagSet) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrapf(err, "read config %s", path)
	}
	fromFile := *c
	if err := yaml.Unmarshal(b, &fromFile); err != nil {
		return errors.Wrapf(err, "parse config %s", path)
	}

	set := map[string]bool{}
	if fs != nil {
		fs.Visit(func(f *pflag.Flag) { set[f.Name] = true })
	}
	if !set["http-addr"] {
		c.HTTPAddr = fromFile.HTTPAddr
	}
	if !set["grpc-addr"] {
		c.GRPCAddr = fromFile.GRPCAddr
	}
	if !set["catalog-dir"] {
		c.CatalogDir = fromFile.CatalogDir
	}
	if !set["watch-interval"] {
		c.WatchInterval = fromFile.WatchInterval
	}
	if !set["allowance-scope"] {
		c.AllowanceScope = fromFile.AllowanceScope
	}
	return nil
}

var validate = validator.New()

func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return err
		}
		msgs := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			msgs = append(msgs, fmt.Sprintf("%s failed %s", fe.Field(), fe.Tag()))
		}
		return errors.Errorf("invalid config: %s", strings.Join(msgs, "; "))
	}
	return nil
}

// EngineConfig maps the service config onto the pricing engine's.
func (c *Config) EngineConfig() pricing.Config {
	return pricing.Config{AllowanceScope: pricing.ScopePolicy(c.AllowanceScope)}
}
