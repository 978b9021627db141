package tlsutil

import (
	"crypto/tls"
	"fmt"
)

const clientPrefix = "tlsutil:NewClientTLSConfig"

// NewClientTLSConfig builds a tls.Config for the probe's outbound HTTPS connection.
//
// If verifyServer is false, server certificate verification is disabled outright
// (InsecureSkipVerify). Otherwise, if caFile is non-empty it is loaded as the trust root;
// if it is empty the system trust store is used instead (a nil RootCAs tells the tls package to
// consult the platform store).
//
// If both certFile and keyFile are non-empty they are presented as a client certificate. Exactly
// one of the two being set is an error.
func NewClientTLSConfig(verifyServer bool, caFile, certFile, keyFile string) (*tls.Config, error) {
	cfg := &tls.Config{InsecureSkipVerify: !verifyServer}

	if verifyServer && len(caFile) > 0 {
		pool, err := loadroots(caFile)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", clientPrefix, err)
		}
		cfg.RootCAs = pool
	}

	if len(certFile) > 0 && len(keyFile) == 0 {
		return nil, fmt.Errorf("%s: ssl_key_file missing when ssl_cert_file is set", clientPrefix)
	}
	if len(certFile) == 0 && len(keyFile) > 0 {
		return nil, fmt.Errorf("%s: ssl_cert_file missing when ssl_key_file is set", clientPrefix)
	}
	if len(certFile) == 0 {
		return cfg, nil
	}

	cert, err := tls.LoadX509KeyPair(certFile, keyFile)
	if err != nil {
		return nil, fmt.Errorf("%s: tls.LoadX509KeyPair: %w", clientPrefix, err)
	}
	cfg.Certificates = []tls.Certificate{cert}

	return cfg, nil
}
