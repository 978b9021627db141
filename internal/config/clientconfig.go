package config

import (
	"fmt"

	"github.com/hashicorp/go-multierror"
)

// ClientConfig holds the fully resolved configuration for the probe: built-in defaults overlaid
// by the config file, overlaid by command-line flags.
type ClientConfig struct {
	Host            string
	Port            int
	Timeout         int // seconds
	Unknown         bool // treat a request timeout as UNKNOWN rather than CRITICAL
	SSLVerifyServer bool
	SSLCAFile       string
	SSLCertFile     string
	SSLKeyFile      string

	Command string
	Args    []string

	ConfigFile string
}

func clientDefaults() ClientConfig {
	return ClientConfig{
		Port:            59546,
		Timeout:         10,
		Unknown:         false,
		SSLVerifyServer: true,
		SSLCAFile:       "",
		SSLCertFile:     "",
		SSLKeyFile:      "",
	}
}

// Validate reports every problem found with cfg, aggregated with multierror.
func (cfg *ClientConfig) Validate() error {
	var errs *multierror.Error

	if cfg.Host == "" {
		errs = multierror.Append(errs, fmt.Errorf("host: a target host is required"))
	}
	if cfg.Port < 1 || cfg.Port > 65535 {
		errs = multierror.Append(errs, fmt.Errorf("port: not a valid port number"))
	}
	if cfg.Timeout <= 0 {
		errs = multierror.Append(errs, fmt.Errorf("timeout: must be positive"))
	}
	// Command is intentionally optional: with no command the probe queries /v1/version
	// for discovery instead of /v1/check/<command>.
	if (cfg.SSLCertFile == "") != (cfg.SSLKeyFile == "") {
		errs = multierror.Append(errs, fmt.Errorf("ssl_cert_file and ssl_key_file must both be set or both be empty"))
	}

	return errs.ErrorOrNil()
}
