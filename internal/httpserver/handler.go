package httpserver

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"github.com/bootc/nrpe-ng/internal/commands"
	"github.com/bootc/nrpe-ng/internal/concurrencytracker"
	"github.com/bootc/nrpe-ng/internal/config"
	"github.com/bootc/nrpe-ng/internal/constants"
	"github.com/bootc/nrpe-ng/internal/logging"
	"github.com/bootc/nrpe-ng/internal/supervisor"
)

// handler implements http.Handler, dispatching /v1/check/{cmd} and /v1/version requests against
// the currently installed configuration snapshot.
type handler struct {
	cfg *atomic.Pointer[config.ServerConfig]
	log logging.Logger
	ccs concurrencytracker.Counter
}

func newHandler(cfg *atomic.Pointer[config.ServerConfig], log logging.Logger) *handler {
	return &handler{cfg: cfg, log: log}
}

func (h *handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	cfg := h.cfg.Load()

	if !hostAllowed(cfg.AllowedHosts, normalizeHost(r.RemoteAddr)) {
		h.errorf(w, http.StatusForbidden, "Not in allowed_hosts: %s", normalizeHost(r.RemoteAddr))
		return
	}

	c := constants.Get()

	if r.URL.Path == c.VersionURI {
		h.serveVersion(w, r)
		return
	}

	if strings.HasPrefix(r.URL.Path, c.CheckURIPrefix) {
		h.serveCheck(w, r, cfg)
		return
	}

	h.errorf(w, http.StatusNotFound, "Invalid request URI")
}

func (h *handler) serveVersion(w http.ResponseWriter, r *http.Request) {
	c := constants.Get()
	w.Header().Set("Content-Type", "text/plain")
	fmt.Fprintf(w, "%s/%s\n", c.ServerHeaderValue, c.Version)
}

func (h *handler) serveCheck(w http.ResponseWriter, r *http.Request, cfg *config.ServerConfig) {
	c := constants.Get()
	name := strings.TrimPrefix(r.URL.Path, c.CheckURIPrefix)
	if name == "" || strings.Contains(name, "/") {
		h.errorf(w, http.StatusNotFound, "Invalid request URI")
		return
	}

	// Arguments are refused before the command lookup, so a POST gets 405 whether or not the
	// command exists.
	if r.Method == http.MethodPost && !cfg.DontBlameNRPE {
		h.log.Warningf("rejecting request: command arguments disabled")
		h.errorf(w, http.StatusMethodNotAllowed, "Command arguments are disabled")
		return
	}

	tmpl, ok := cfg.Commands[name]
	if !ok {
		h.log.Warningf("unknown command: %s", name)
		h.errorf(w, http.StatusNotFound, "Unknown command: %s", name)
		return
	}

	var args map[string]string

	switch r.Method {
	case http.MethodGet, http.MethodHead:
		// No arguments accepted on GET/HEAD.

	case http.MethodPost:
		var err error
		args, err = parseFormArgs(r)
		if err != nil {
			h.errorf(w, http.StatusBadRequest, "Malformed request body: %s", err)
			return
		}

	default:
		h.errorf(w, http.StatusMethodNotAllowed, "Expected %s or %s, not %s",
			http.MethodGet, http.MethodPost, r.Method)
		return
	}

	if r.Method == http.MethodHead {
		w.Header().Set("Content-Type", "text/plain")
		w.WriteHeader(http.StatusOK)
		return
	}

	h.ccs.Add()
	defer h.ccs.Done()

	commandPrefix, err := splitCommandPrefix(cfg.CommandPrefix)
	if err != nil {
		h.errorf(w, http.StatusInternalServerError, "Bad command_prefix: %s", err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), time.Duration(cfg.ConnectionTimeout)*time.Second)
	defer cancel()

	inv, err := supervisor.Execute(ctx, tmpl, commandPrefix, args, time.Duration(cfg.CommandTimeout)*time.Second)
	if err != nil {
		if errors.Is(err, supervisor.ErrTimedOut) {
			h.log.Errorf("%s: %v", tmpl, err)
			h.errorf(w, http.StatusGatewayTimeout, "Command timed out")
			return
		}
		h.log.Errorf("unexpected error running %s: %v", tmpl, err)
		h.errorf(w, http.StatusInternalServerError, "Unexpected error executing command")
		return
	}

	w.Header().Set("Content-Type", "text/plain")
	w.Header().Set("Content-Length", strconv.Itoa(len(inv.Output)))
	w.Header().Set(c.NRPEResultHeader, strconv.Itoa(inv.ExitCode))
	w.WriteHeader(http.StatusOK)
	io.WriteString(w, inv.Output)
}

func (h *handler) errorf(w http.ResponseWriter, status int, format string, args ...interface{}) {
	http.Error(w, fmt.Sprintf(format, args...), status)
}

// parseFormArgs decodes an application/x-www-form-urlencoded POST body into a flat map, taking
// the first value for any key supplied more than once.
func parseFormArgs(r *http.Request) (map[string]string, error) {
	body, err := io.ReadAll(io.LimitReader(r.Body, 1<<20))
	if err != nil {
		return nil, err
	}
	values, err := url.ParseQuery(string(body))
	if err != nil {
		return nil, err
	}
	args := make(map[string]string, len(values))
	for k, v := range values {
		if len(v) > 0 {
			args[k] = v[0]
		}
	}
	return args, nil
}

func splitCommandPrefix(prefix string) ([]string, error) {
	if prefix == "" {
		return nil, nil
	}
	tmpl, err := commands.Parse(prefix)
	if err != nil {
		return nil, err
	}
	return tmpl.Argv, nil
}
