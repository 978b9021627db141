package httpserver

import "testing"

func TestListenHost(t *testing.T) {
	if got := listenHost("::"); got != "" {
		t.Errorf("listenHost(::) = %q, want empty string", got)
	}
	if got := listenHost("127.0.0.1"); got != "127.0.0.1" {
		t.Errorf("listenHost(127.0.0.1) = %q, want unchanged", got)
	}
}
