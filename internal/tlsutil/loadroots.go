package tlsutil

import (
	"crypto/x509"
	"fmt"
	"os"
)

// loadroots reads a single PEM-encoded CA bundle file and returns an x509.CertPool containing
// it. An empty caFile returns a nil pool, which tells a tls.Config to fall back to the system
// trust store.
func loadroots(caFile string) (*x509.CertPool, error) {
	if len(caFile) == 0 {
		return nil, nil
	}

	pemData, err := os.ReadFile(caFile)
	if err != nil {
		return nil, fmt.Errorf("tlsutil:loadroots:%w", err)
	}

	pool := x509.NewCertPool()
	if !pool.AppendCertsFromPEM(pemData) {
		return nil, fmt.Errorf("tlsutil:loadroots:failed to parse any certificates from %s", caFile)
	}

	return pool, nil
}
