package config

import (
	"fmt"

	"github.com/bootc/nrpe-ng/internal/commands"
	"github.com/hashicorp/go-multierror"
)

// LoadServer builds a ServerConfig from built-in defaults, optionally overlaid with path (if
// non-empty), then overlaid with overrides (flags explicitly set on the command line; whatever
// the overrides function assigns is applied as is, zero values included, so callers only
// assign the fields a user actually passed). Every problem found is returned together via multierror; a non-nil ServerConfig is
// still returned alongside an error so callers can inspect what was parsed.
func LoadServer(path string, overrides func(*ServerConfig)) (*ServerConfig, error) {
	cfg := serverDefaults()
	cfg.ConfigFile = path

	var errs *multierror.Error

	if path != "" {
		raw, err := Parse(path)
		if err != nil {
			errs = multierror.Append(errs, err)
			raw = newRawConfig()
		}

		applyServerOption := func(key string) (string, bool) {
			v, ok := raw.options[key]
			return v, ok
		}

		if v, ok := applyServerOption("allow_bash_command_substitution"); ok {
			if b, err := coerceBool(path, "allow_bash_command_substitution", v); err != nil {
				errs = multierror.Append(errs, err)
			} else {
				cfg.AllowBashCommandSubstitution = b
			}
		}
		if v, ok := applyServerOption("allowed_hosts"); ok {
			cfg.AllowedHosts = coerceList(v)
		}
		if v, ok := applyServerOption("command_prefix"); ok {
			cfg.CommandPrefix = v
		}
		if v, ok := applyServerOption("command_timeout"); ok {
			if n, err := coerceInt(path, "command_timeout", v); err != nil {
				errs = multierror.Append(errs, err)
			} else {
				cfg.CommandTimeout = n
			}
		}
		if v, ok := applyServerOption("connection_timeout"); ok {
			if n, err := coerceInt(path, "connection_timeout", v); err != nil {
				errs = multierror.Append(errs, err)
			} else {
				cfg.ConnectionTimeout = n
			}
		}
		if v, ok := applyServerOption("debug"); ok {
			if b, err := coerceBool(path, "debug", v); err != nil {
				errs = multierror.Append(errs, err)
			} else {
				cfg.Debug = b
			}
		}
		if v, ok := applyServerOption("dont_blame_nrpe"); ok {
			if b, err := coerceBool(path, "dont_blame_nrpe", v); err != nil {
				errs = multierror.Append(errs, err)
			} else {
				cfg.DontBlameNRPE = b
			}
		}
		if v, ok := applyServerOption("log_facility"); ok {
			cfg.LogFacility = v
		}
		if v, ok := applyServerOption("nrpe_user"); ok {
			cfg.NRPEUser = v
		}
		if v, ok := applyServerOption("nrpe_group"); ok {
			cfg.NRPEGroup = v
		}
		if v, ok := applyServerOption("pid_file"); ok {
			cfg.PidFile = v
		}
		if v, ok := applyServerOption("server_address"); ok {
			cfg.ServerAddress = v
		}
		if v, ok := applyServerOption("server_port"); ok {
			if n, err := coerceInt(path, "server_port", v); err != nil {
				errs = multierror.Append(errs, err)
			} else {
				cfg.ServerPort = n
			}
		}
		if v, ok := applyServerOption("ssl_verify_client"); ok {
			if b, err := coerceBool(path, "ssl_verify_client", v); err != nil {
				errs = multierror.Append(errs, err)
			} else {
				cfg.SSLVerifyClient = b
			}
		}
		if v, ok := applyServerOption("ssl_ca_file"); ok {
			cfg.SSLCAFile = v
		}
		if v, ok := applyServerOption("ssl_cert_file"); ok {
			cfg.SSLCertFile = v
		}
		if v, ok := applyServerOption("ssl_key_file"); ok {
			cfg.SSLKeyFile = v
		}

		for _, name := range raw.commandOrder {
			tmpl, err := commands.Parse(raw.commands[name])
			if err != nil {
				errs = multierror.Append(errs, fmt.Errorf("%s: command[%s]: %w", path, name, err))
				continue
			}
			cfg.Commands[name] = tmpl
		}
	}

	if overrides != nil {
		overrides(&cfg)
	}

	if err := cfg.Validate(); err != nil {
		errs = multierror.Append(errs, err)
	}

	return &cfg, errs.ErrorOrNil()
}

// LoadClient builds a ClientConfig the same way LoadServer does.
func LoadClient(path string, overrides func(*ClientConfig)) (*ClientConfig, error) {
	cfg := clientDefaults()
	cfg.ConfigFile = path

	var errs *multierror.Error

	if path != "" {
		raw, err := Parse(path)
		if err != nil {
			errs = multierror.Append(errs, err)
			raw = newRawConfig()
		}

		if v, ok := raw.options["port"]; ok {
			if n, err := coerceInt(path, "port", v); err != nil {
				errs = multierror.Append(errs, err)
			} else {
				cfg.Port = n
			}
		}
		if v, ok := raw.options["timeout"]; ok {
			if n, err := coerceInt(path, "timeout", v); err != nil {
				errs = multierror.Append(errs, err)
			} else {
				cfg.Timeout = n
			}
		}
		if v, ok := raw.options["ssl_verify_server"]; ok {
			if b, err := coerceBool(path, "ssl_verify_server", v); err != nil {
				errs = multierror.Append(errs, err)
			} else {
				cfg.SSLVerifyServer = b
			}
		}
		if v, ok := raw.options["ssl_ca_file"]; ok {
			cfg.SSLCAFile = v
		}
		if v, ok := raw.options["ssl_cert_file"]; ok {
			cfg.SSLCertFile = v
		}
		if v, ok := raw.options["ssl_key_file"]; ok {
			cfg.SSLKeyFile = v
		}
	}

	if overrides != nil {
		overrides(&cfg)
	}

	if err := cfg.Validate(); err != nil {
		errs = multierror.Append(errs, err)
	}

	return &cfg, errs.ErrorOrNil()
}
