package tlsutil

import (
	"os"
	"path/filepath"
	"testing"
)

func TestNewServerTLSConfig(t *testing.T) {
	dir := t.TempDir()
	certFile, keyFile := writeSelfSignedPair(t, dir, "server")

	// Missing cert/key entirely is an error.
	if _, err := NewServerTLSConfig("", "", "", false); err == nil {
		t.Error("Expected error with no cert/key files")
	}

	// Good path, no client verification.
	cfg, err := NewServerTLSConfig(certFile, keyFile, "", false)
	if err != nil {
		t.Fatalf("Unexpected error with good cert/key: %v", err)
	}
	if cfg == nil {
		t.Fatal("cfg should be non-nil when no error returned")
	}
	if len(cfg.Certificates) != 1 {
		t.Error("Expected exactly one certificate loaded")
	}

	// ssl_verify_client requires a CA file.
	if _, err := NewServerTLSConfig(certFile, keyFile, "", true); err == nil {
		t.Error("Expected error when ssl_verify_client is set without ssl_ca_file")
	}

	// Good path with client verification.
	cfg, err = NewServerTLSConfig(certFile, keyFile, certFile, true)
	if err != nil {
		t.Fatalf("Unexpected error with ssl_verify_client and a readable CA: %v", err)
	}
	if cfg.ClientCAs == nil {
		t.Error("Expected ClientCAs to be populated")
	}

	// Bad paths.
	if _, err := NewServerTLSConfig(filepath.Join(dir, "missing.cert"), keyFile, "", false); err == nil {
		t.Error("Expected error with missing cert file")
	}
	if _, err := NewServerTLSConfig(certFile, filepath.Join(dir, "missing.key"), "", false); err == nil {
		t.Error("Expected error with missing key file")
	}

	emptyCA := filepath.Join(dir, "empty.pem")
	if err := os.WriteFile(emptyCA, []byte(""), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := NewServerTLSConfig(certFile, keyFile, emptyCA, true); err == nil {
		t.Error("Expected error with an empty CA bundle")
	}
}
