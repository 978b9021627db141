package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeTempFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestParseBasic(t *testing.T) {
	dir := t.TempDir()
	path := writeTempFile(t, dir, "nrpe-ng.cfg", `
# a comment
; another comment
rem an old-style comment line

server_port = 12345
debug: yes
allowed_hosts = 10.0.0.1, 10.0.0.2,10.0.0.3

command[check_load] = /usr/lib/nagios/plugins/check_load -w $warn$ -c $crit$
`)

	rc, err := Parse(path)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	if rc.options["server_port"] != "12345" {
		t.Errorf("server_port = %q", rc.options["server_port"])
	}
	if rc.options["debug"] != "yes" {
		t.Errorf("debug = %q", rc.options["debug"])
	}
	if rc.options["allowed_hosts"] != "10.0.0.1, 10.0.0.2,10.0.0.3" {
		t.Errorf("allowed_hosts = %q", rc.options["allowed_hosts"])
	}
	if rc.commands["check_load"] == "" {
		t.Error("expected check_load command to be captured")
	}
}

func TestParseContinuationAndInlineComment(t *testing.T) {
	dir := t.TempDir()
	path := writeTempFile(t, dir, "nrpe-ng.cfg", `
allowed_hosts = 10.0.0.1,
  10.0.0.2,
  10.0.0.3
command_prefix = /usr/bin/sudo ; trailing comment
quoted = ""
`)

	rc, err := Parse(path)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	if want := "10.0.0.1,\n10.0.0.2,\n10.0.0.3"; rc.options["allowed_hosts"] != want {
		t.Errorf("allowed_hosts = %q, want %q", rc.options["allowed_hosts"], want)
	}
	if rc.options["command_prefix"] != "/usr/bin/sudo" {
		t.Errorf("command_prefix = %q", rc.options["command_prefix"])
	}
	if rc.options["quoted"] != "" {
		t.Errorf("quoted = %q, want empty string", rc.options["quoted"])
	}
}

func TestParseIncludeOverrideOrder(t *testing.T) {
	dir := t.TempDir()
	writeTempFile(t, dir, "included.cfg", "server_port = 1111\n")
	main := writeTempFile(t, dir, "main.cfg", `
server_port = 9999
include = included.cfg
`)

	rc, err := Parse(main)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	// The include appears after the direct assignment textually, so it wins.
	if rc.options["server_port"] != "1111" {
		t.Errorf("server_port = %q, want 1111 (include should win, textually later)", rc.options["server_port"])
	}
}

func TestParseIncludeThenOverride(t *testing.T) {
	dir := t.TempDir()
	writeTempFile(t, dir, "included.cfg", "server_port = 1111\n")
	main := writeTempFile(t, dir, "main.cfg", `
include = included.cfg
server_port = 9999
`)

	rc, err := Parse(main)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	// The direct assignment appears after the include textually, so it wins.
	if rc.options["server_port"] != "9999" {
		t.Errorf("server_port = %q, want 9999 (direct assignment should win)", rc.options["server_port"])
	}
}

func TestParseIncludeDir(t *testing.T) {
	dir := t.TempDir()
	confd := filepath.Join(dir, "conf.d")
	if err := os.Mkdir(confd, 0755); err != nil {
		t.Fatal(err)
	}
	writeTempFile(t, confd, "10-first.cfg", "command[a] = /bin/true\n")
	writeTempFile(t, confd, "20-second.cfg", "command[b] = /bin/false\n")
	writeTempFile(t, confd, "ignored.txt", "command[c] = /bin/echo\n")

	main := writeTempFile(t, dir, "main.cfg", "include_dir = conf.d\n")

	rc, err := Parse(main)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if _, ok := rc.commands["a"]; !ok {
		t.Error("expected command a from 10-first.cfg")
	}
	if _, ok := rc.commands["b"]; !ok {
		t.Error("expected command b from 20-second.cfg")
	}
	if _, ok := rc.commands["c"]; ok {
		t.Error("did not expect command c from a non-.cfg file")
	}
}

func TestParseIncludeCycle(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.cfg")
	b := filepath.Join(dir, "b.cfg")
	if err := os.WriteFile(a, []byte("include = b.cfg\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(b, []byte("include = a.cfg\n"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := Parse(a); err == nil {
		t.Fatal("expected an include cycle error")
	}
}

func TestParseMalformedLine(t *testing.T) {
	dir := t.TempDir()
	path := writeTempFile(t, dir, "bad.cfg", "this line has no separator\n")

	if _, err := Parse(path); err == nil {
		t.Fatal("expected a parse error for a malformed line")
	}
}

func TestParseMissingFile(t *testing.T) {
	if _, err := Parse("/nonexistent/path/does-not-exist.cfg"); err == nil {
		t.Fatal("expected an error reading a missing file")
	}
}

func TestCommandKeyTrailingBracket(t *testing.T) {
	// A key with extra characters after the closing bracket is not a valid command key.
	if m := commandKeyRE.FindStringSubmatch("command[ab]cd]"); m != nil {
		t.Errorf("expected no match, got %v", m)
	}
	if m := commandKeyRE.FindStringSubmatch("command[check_load]"); m == nil || m[1] != "check_load" {
		t.Errorf("expected match with name check_load, got %v", m)
	}
}
