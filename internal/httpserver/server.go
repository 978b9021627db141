// Package httpserver implements the agent's HTTPS listener: TLS setup, request routing, the
// allowed_hosts ACL, and dispatch into the command supervisor.
package httpserver

import (
	"context"
	"crypto/tls"
	"fmt"
	"net/http"
	"sync/atomic"

	"github.com/bootc/nrpe-ng/internal/config"
	"github.com/bootc/nrpe-ng/internal/logging"
	"github.com/bootc/nrpe-ng/internal/tlsutil"
)

// Server owns the listening socket for the agent. Its configuration is read from a shared
// atomic snapshot so a reload can swap it out without disturbing in-flight requests, which
// continue to see whichever snapshot they started with.
type Server struct {
	cfg *atomic.Pointer[config.ServerConfig]
	log logging.Logger

	httpServer *http.Server
}

// New builds a Server bound to cfg's current and future snapshots. The listen address and TLS
// material are read once, from the snapshot installed at call time — changing them requires a
// restart, not a reload (see config.Immutable).
func New(cfg *atomic.Pointer[config.ServerConfig], log logging.Logger) (*Server, error) {
	snap := cfg.Load()

	tlsConfig, err := tlsutil.NewServerTLSConfig(snap.SSLCertFile, snap.SSLKeyFile, snap.SSLCAFile, snap.SSLVerifyClient)
	if err != nil {
		return nil, fmt.Errorf("httpserver: %w", err)
	}

	addr := fmt.Sprintf("%s:%d", listenHost(snap.ServerAddress), snap.ServerPort)

	s := &Server{cfg: cfg, log: log}
	s.httpServer = &http.Server{
		Addr:      addr,
		Handler:   newHandler(cfg, log),
		TLSConfig: tlsConfig,
	}
	return s, nil
}

// listenHost rewrites the "::" wildcard to the empty string. Go's net package already accepts
// IPv4-mapped connections on a "[::]:port" listener by default (unlike some event-loop runtimes
// that require IPV6_V6ONLY to be explicitly disabled), so no further translation is required.
func listenHost(addr string) string {
	if addr == "::" {
		return ""
	}
	return addr
}

// Start begins serving in a background goroutine and sends the eventual ListenAndServeTLS error
// (nil is never sent; a clean Stop reports http.ErrServerClosed) on errCh.
func (s *Server) Start(errCh chan<- error) {
	go func() {
		errCh <- s.httpServer.ListenAndServeTLS("", "")
	}()
}

// Stop gracefully shuts the listener down, waiting for in-flight requests to complete.
func (s *Server) Stop(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
