package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadServerFileAndOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nrpe-ng.cfg")
	content := `
server_port = 12345
debug = yes
allowed_hosts = 10.0.0.1, 10.0.0.2
command[check_load] = /usr/lib/nagios/plugins/check_load -w $warn$ -c $crit$
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadServer(path, func(c *ServerConfig) {
		c.Debug = false // simulate an explicit CLI override
	})
	if err != nil {
		t.Fatalf("LoadServer: %v", err)
	}

	if cfg.ServerPort != 12345 {
		t.Errorf("ServerPort = %d, want 12345", cfg.ServerPort)
	}
	if cfg.Debug {
		t.Error("expected CLI override to win over the file value")
	}
	if len(cfg.AllowedHosts) != 2 {
		t.Errorf("AllowedHosts = %v", cfg.AllowedHosts)
	}
	tmpl, ok := cfg.Commands["check_load"]
	if !ok {
		t.Fatal("expected check_load command to be loaded")
	}
	argv := tmpl.Render(nil, map[string]string{"warn": "5", "crit": "10"})
	want := "/usr/lib/nagios/plugins/check_load"
	if argv[0] != want {
		t.Errorf("argv[0] = %q, want %q", argv[0], want)
	}
}

func TestLoadServerNoFile(t *testing.T) {
	cfg, err := LoadServer("", nil)
	if err != nil {
		t.Fatalf("LoadServer with no file: %v", err)
	}
	if cfg.ServerPort != 59546 {
		t.Errorf("expected built-in default port, got %d", cfg.ServerPort)
	}
}

func TestLoadServerBadValue(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.cfg")
	if err := os.WriteFile(path, []byte("server_port = not-a-number\n"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadServer(path, nil); err == nil {
		t.Fatal("expected a coercion error")
	}
}

func TestLoadClientFileAndOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "check_nrpe_ng.cfg")
	content := "port = 8443\ntimeout = 30\nssl_verify_server = no\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadClient(path, func(c *ClientConfig) {
		c.Host = "example.org"
		c.Command = "check_load"
	})
	if err != nil {
		t.Fatalf("LoadClient: %v", err)
	}
	if cfg.Port != 8443 {
		t.Errorf("Port = %d, want 8443", cfg.Port)
	}
	if cfg.SSLVerifyServer {
		t.Error("expected ssl_verify_server=no from file to be honored")
	}
	if cfg.Host != "example.org" || cfg.Command != "check_load" {
		t.Errorf("overrides not applied: %+v", cfg)
	}
}

func TestLoadClientMissingRequiredFields(t *testing.T) {
	if _, err := LoadClient("", nil); err == nil {
		t.Fatal("expected validation error for missing host")
	}
}
