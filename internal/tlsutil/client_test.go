package tlsutil

import (
	"os"
	"path/filepath"
	"testing"
)

func TestNewClientTLSConfig(t *testing.T) {
	dir := t.TempDir()
	certFile, keyFile := writeSelfSignedPair(t, dir, "client")

	// Minimalist: no verification requested at all.
	cfg, err := NewClientTLSConfig(false, "", "", "")
	if err != nil {
		t.Fatalf("Unexpected error with minimalist config: %v", err)
	}
	if !cfg.InsecureSkipVerify {
		t.Error("Expected InsecureSkipVerify when verifyServer is false")
	}

	// verifyServer with no CA file falls back to the system trust store.
	cfg, err = NewClientTLSConfig(true, "", "", "")
	if err != nil {
		t.Fatalf("Unexpected error with system trust store: %v", err)
	}
	if cfg.InsecureSkipVerify {
		t.Error("Expected verification enabled")
	}
	if cfg.RootCAs != nil {
		t.Error("Expected nil RootCAs (system store) when ssl_ca_file is unset")
	}

	// Good path: CA file plus client certificate.
	cfg, err = NewClientTLSConfig(true, certFile, certFile, keyFile)
	if err != nil {
		t.Fatalf("Unexpected error with good data: %v", err)
	}
	if len(cfg.Certificates) != 1 {
		t.Error("Expected a client certificate to be loaded")
	}
	if cfg.RootCAs == nil {
		t.Error("Expected RootCAs to be populated from ssl_ca_file")
	}

	// Mismatched cert/key is an error.
	if _, err := NewClientTLSConfig(false, "", keyFile, certFile); err == nil {
		t.Error("Expected error with swapped cert/key files")
	}

	// Only one of cert/key set is an error.
	if _, err := NewClientTLSConfig(false, "", certFile, ""); err == nil {
		t.Error("Expected error with missing key file")
	}
	if _, err := NewClientTLSConfig(false, "", "", keyFile); err == nil {
		t.Error("Expected error with missing cert file")
	}

	// Bad CA file.
	missingCA := filepath.Join(dir, "missing.pem")
	if _, err := NewClientTLSConfig(true, missingCA, "", ""); err == nil {
		t.Error("Expected error with a missing CA file")
	}

	emptyCA := filepath.Join(dir, "empty.pem")
	if err := os.WriteFile(emptyCA, []byte(""), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := NewClientTLSConfig(true, emptyCA, "", ""); err == nil {
		t.Error("Expected error with an empty CA bundle")
	}
}
