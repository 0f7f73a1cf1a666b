package server

import (
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds the host server settings. Fields load from the
// environment via ConfigFromEnv; flags may override them afterwards.
type Config struct {
	// Addr is the listen address.
	Addr string `env:"INKWELL_ADDR" envDefault:":8099"`

	// ShutdownTimeout bounds graceful shutdown.
	ShutdownTimeout time.Duration `env:"INKWELL_SHUTDOWN_TIMEOUT" envDefault:"10s"`

	// ReadTimeout is the HTTP server read timeout.
	ReadTimeout time.Duration `env:"INKWELL_READ_TIMEOUT" envDefault:"30s"`

	// WriteTimeout is the HTTP server write timeout. Zero, because the
	// field-update stream holds its connection open.
	WriteTimeout time.Duration `env:"INKWELL_WRITE_TIMEOUT" envDefault:"0"`

	// Sanitize controls whether host-supplied HTML entering through the
	// REST surface is run through the sanitizer policy before import.
	// The source-apply path is never sanitized: it is byte-exact by
	// contract.
	Sanitize bool `env:"INKWELL_SANITIZE" envDefault:"true"`

	// MaxBodyBytes caps request bodies carrying HTML.
	MaxBodyBytes int64 `env:"INKWELL_MAX_BODY_BYTES" envDefault:"1048576"`

	// MetricsNamespace is the Prometheus namespace.
	MetricsNamespace string `env:"INKWELL_METRICS_NAMESPACE" envDefault:"inkwell"`
}

// DefaultConfig returns the built-in defaults without consulting the
// environment.
func DefaultConfig() Config {
	return Config{
		Addr:             ":8099",
		ShutdownTimeout:  10 * time.Second,
		ReadTimeout:      30 * time.Second,
		Sanitize:         true,
		MaxBodyBytes:     1 << 20,
		MetricsNamespace: "inkwell",
	}
}

// ConfigFromEnv loads Config from the environment.
func ConfigFromEnv() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
