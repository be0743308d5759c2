package config

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"regexp"
	"strconv"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/hashicorp/go-multierror"
	"github.com/spf13/pflag"
)

type Config struct {
	Host           string        `env:"OBWOB_HOST" envDefault:"0.0.0.0"`
	Port           uint          `env:"OBWOB_PORT" envDefault:"80"`
	APIUrl         string        `env:"OBWOB_API_URL" envDefault:"http://localhost:8000"`
	OrgName        string        `env:"OBWOB_ORG_NAME" envDefault:"Organization"`
	APITimeout     time.Duration `env:"OBWOB_API_TIMEOUT" envDefault:"0s"`
	MaxUploadBytes int64         `env:"OBWOB_MAX_UPLOAD_BYTES" envDefault:"8388608"`
	Debug          bool          `env:"OBWOB_DEBUG"`

	// Addr is derived from Host and Port.
	Addr string
}

// Parse reads the environment first, then lets command-line flags override it.
func Parse(args []string) (cfg Config, err error) {
	if err = env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("parse env: %w", err)
	}

	flags := pflag.NewFlagSet("obwob", pflag.ContinueOnError)
	flags.StringVar(&cfg.Host, "host", cfg.Host, "listen host name")
	flags.UintVar(&cfg.Port, "port", cfg.Port, "listen port number")
	flags.StringVar(&cfg.APIUrl, "api-url", cfg.APIUrl, "base URL of the events backend API")
	flags.StringVar(&cfg.OrgName, "org-name", cfg.OrgName, "organization name shown on the dashboard")
	flags.DurationVar(&cfg.APITimeout, "api-timeout", cfg.APITimeout, "backend request timeout (0 disables it)")
	flags.Int64Var(&cfg.MaxUploadBytes, "max-upload-bytes", cfg.MaxUploadBytes, "largest accepted scan image")
	flags.BoolVar(&cfg.Debug, "debug", cfg.Debug, "log at DEBUG level")
	if err = flags.Parse(args); err != nil {
		return cfg, err
	}

	cfg.Addr = net.JoinHostPort(cfg.Host, strconv.Itoa(int(cfg.Port)))

	err = cfg.Validate()
	return
}

// Validate reports every invalid setting at once.
func (cfg Config) Validate() error {
	var result *multierror.Error

	if cfg.Port == 0 || cfg.Port > 65535 {
		result = multierror.Append(result, fmt.Errorf("invalid port %d", cfg.Port))
	}
	if u, err := url.Parse(cfg.APIUrl); err != nil || u.Scheme == "" || u.Host == "" {
		result = multierror.Append(result, fmt.Errorf("invalid api url %q", cfg.APIUrl))
	}
	if cfg.APITimeout < 0 {
		result = multierror.Append(result, errors.New("api timeout must not be negative"))
	}
	if cfg.MaxUploadBytes <= 0 {
		result = multierror.Append(result, errors.New("max upload bytes must be positive"))
	}

	return result.ErrorOrNil()
}

func (cfg Config) Url() (url string) {
	url = cfg.Addr
	url = regexp.MustCompile(`^0.0.0.0`).ReplaceAllString(url, "localhost")
	url = "http://" + url
	return
}
