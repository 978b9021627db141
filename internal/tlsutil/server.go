// Package tlsutil is a helper package to manage TLS key, cert and CA settings for the agent's
// listener and the probe's outbound connection.
package tlsutil

import (
	"crypto/tls"
	"fmt"
)

const serverPrefix = "tlsutil:NewServerTLSConfig"

// NewServerTLSConfig builds a tls.Config for the agent's HTTPS listener. certFile/keyFile are
// always required and are loaded as the server's own certificate chain. When verifyClient is
// true, caFile must name a PEM bundle of CAs that client certificates are verified against and
// client certificates become mandatory; when verifyClient is false no client certificate is
// requested.
//
// Returns a tls.Config or an error. Certificate or CA file errors are always fatal to the
// caller — at startup that aborts the process, at reload the caller keeps running the prior
// config (the immutable-options rule in the data model covers all of these fields).
func NewServerTLSConfig(certFile, keyFile, caFile string, verifyClient bool) (*tls.Config, error) {
	if len(certFile) == 0 || len(keyFile) == 0 {
		return nil, fmt.Errorf("%s: ssl_cert_file and ssl_key_file are both required", serverPrefix)
	}

	cert, err := tls.LoadX509KeyPair(certFile, keyFile)
	if err != nil {
		return nil, fmt.Errorf("%s: tls.LoadX509KeyPair: %w", serverPrefix, err)
	}

	cfg := &tls.Config{
		MinVersion:   tls.VersionTLS12,
		Certificates: []tls.Certificate{cert},
	}

	if verifyClient {
		pool, err := loadroots(caFile)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", serverPrefix, err)
		}
		if pool == nil {
			return nil, fmt.Errorf("%s: ssl_verify_client requires a readable ssl_ca_file", serverPrefix)
		}
		cfg.ClientCAs = pool
		cfg.ClientAuth = tls.RequireAndVerifyClientCert
	}

	return cfg, nil
}
