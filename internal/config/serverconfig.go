package config

import (
	"fmt"

	"github.com/bootc/nrpe-ng/internal/commands"
	"github.com/bootc/nrpe-ng/internal/constants"
	"github.com/hashicorp/go-multierror"
)

// ServerConfig holds the fully resolved configuration for the agent daemon: built-in defaults
// overlaid by the config file, overlaid by command-line flags.
type ServerConfig struct {
	AllowBashCommandSubstitution bool
	AllowedHosts                 []string
	CommandPrefix                string
	CommandTimeout               int // seconds
	ConnectionTimeout            int // seconds
	Debug                        bool
	DontBlameNRPE                bool
	LogFacility                  string
	NRPEUser                     string
	NRPEGroup                    string
	PidFile                      string
	ServerAddress                string
	ServerPort                   int
	SSLVerifyClient              bool
	SSLCAFile                    string
	SSLCertFile                  string
	SSLKeyFile                   string

	Commands map[string]commands.Template

	// ConfigFile is the path this config was loaded from, empty if run without one.
	ConfigFile string
}

// serverDefaults returns the built-in defaults, a fresh copy each call so callers can't mutate
// shared state by modifying the returned value.
func serverDefaults() ServerConfig {
	c := constants.Get()
	return ServerConfig{
		AllowBashCommandSubstitution: false,
		AllowedHosts:                 nil,
		CommandPrefix:                "",
		CommandTimeout:               60,
		ConnectionTimeout:            300,
		Debug:                        false,
		DontBlameNRPE:                false,
		LogFacility:                  "daemon",
		NRPEUser:                     "nagios",
		NRPEGroup:                    "nagios",
		PidFile:                      "/run/nagios/nrpe-ng.pid",
		ServerAddress:                c.DefaultServerAddress,
		ServerPort:                   59546,
		SSLVerifyClient:              false,
		SSLCAFile:                    "",
		SSLCertFile:                  "",
		SSLKeyFile:                   "",
		Commands:                     make(map[string]commands.Template),
	}
}

// Validate reports every problem found with cfg rather than stopping at the first, aggregated
// with multierror.
func (cfg *ServerConfig) Validate() error {
	var errs *multierror.Error

	if cfg.ServerPort < 1 || cfg.ServerPort > 65535 {
		errs = multierror.Append(errs, fmt.Errorf("server_port: %d is not a valid port number", cfg.ServerPort))
	}
	if cfg.CommandTimeout <= 0 {
		errs = multierror.Append(errs, fmt.Errorf("command_timeout: must be positive, got %d", cfg.CommandTimeout))
	}
	if cfg.ConnectionTimeout <= 0 {
		errs = multierror.Append(errs, fmt.Errorf("connection_timeout: must be positive, got %d", cfg.ConnectionTimeout))
	}
	if cfg.SSLVerifyClient && cfg.SSLCAFile == "" {
		errs = multierror.Append(errs, fmt.Errorf("ssl_verify_client is set but ssl_ca_file is empty"))
	}
	if (cfg.SSLCertFile == "") != (cfg.SSLKeyFile == "") {
		errs = multierror.Append(errs, fmt.Errorf("ssl_cert_file and ssl_key_file must both be set or both be empty"))
	}

	return errs.ErrorOrNil()
}

// Immutable reports whether key cannot be changed by a reload: identity, listener-binding and
// TLS options require a full restart to take effect.
func Immutable(key string) bool {
	switch key {
	case "server_address", "server_port", "nrpe_user", "nrpe_group", "pid_file",
		"ssl_verify_client", "ssl_ca_file", "ssl_cert_file", "ssl_key_file":
		return true
	default:
		return false
	}
}
