// Run the agent: listen for HTTPS check requests and execute configured plugin commands.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/bootc/nrpe-ng/internal/config"
	"github.com/bootc/nrpe-ng/internal/constants"
	"github.com/bootc/nrpe-ng/internal/httpserver"
	"github.com/bootc/nrpe-ng/internal/logging"
	"github.com/bootc/nrpe-ng/internal/osutil"
	"github.com/bootc/nrpe-ng/internal/pidfile"
)

// Program-wide variables
var (
	consts = constants.Get()
	cfg    *cliFlags

	stdout io.Writer // All I/O goes via these writers
	stderr io.Writer

	startTime   = time.Now()
	stopChannel chan os.Signal
	flagSet     *flag.FlagSet
)

func fatal(args ...interface{}) int {
	fmt.Fprint(stderr, "Fatal: ", consts.AgentProgramName, ": ")
	fmt.Fprintln(stderr, args...)
	return 1
}

func stopMain() {
	stopChannel <- syscall.SIGTERM
}

// mainInit resets everything such that mainExecute() can be called multiple times in one program
// execution. stopChannel is buffered so a slow reader never stalls a signal sender.
func mainInit(out, err io.Writer) {
	cfg = &cliFlags{}
	stdout = out
	stderr = err
	mainState(initial)
	stopChannel = make(chan os.Signal, 4)
	osutil.SignalNotify(stopChannel)
}

func main() {
	mainInit(os.Stdout, os.Stderr)
	os.Exit(mainExecute(os.Args))
}

func mainExecute(args []string) int {
	defer mainState(stopped)
	flagSet = flag.NewFlagSet(args[0], flag.ContinueOnError)
	flagSet.SetOutput(stderr)
	if err := parseCommandLine(args); err != nil {
		return 1 // Error already printed by the flag package
	}
	if cfg.help {
		usage(stdout)
		return 0
	}
	if cfg.version {
		fmt.Fprintln(stdout, consts.AgentProgramName, "Version:", consts.Version)
		return 0
	}
	if flagSet.NArg() > 0 {
		return fatal("unexpected parameters on the command line:", flagSet.Args())
	}
	if cfg.configFile == "" {
		return fatal("-c is required: a configuration file must be supplied")
	}

	daemonize := cfg.daemonize && !cfg.foreground
	if daemonize && !osutil.IsDaemonChild() {
		if err := osutil.Daemonize(); err != nil {
			return fatal("failed to daemonize:", err)
		}
		return 0 // The detached child carries on; this process is done.
	}

	serverCfg, err := config.LoadServer(cfg.configFile, func(sc *config.ServerConfig) {
		if cfg.debug {
			sc.Debug = true
		}
	})
	if err != nil {
		return fatal(err)
	}

	log, err := buildLogger(serverCfg, !daemonize)
	if err != nil {
		return fatal(err)
	}
	log = log.With(consts.AgentProgramName)

	var pidLock *pidfile.File
	if daemonize {
		pidLock, err = pidfile.Acquire(serverCfg.PidFile)
		if err != nil {
			return fatal("pidfile:", err)
		}
		if err := pidLock.Write(); err != nil {
			return fatal("pidfile:", err)
		}
		defer pidLock.Close()

		if err := osutil.DropPrivileges(serverCfg.NRPEUser, serverCfg.NRPEGroup); err != nil {
			return fatal("privilege drop:", err)
		}
		log.Infof("dropped privileges: %s", osutil.CredentialReport())
	}

	cfgPtr := &atomic.Pointer[config.ServerConfig]{}
	cfgPtr.Store(serverCfg)

	srv, err := httpserver.New(cfgPtr, log)
	if err != nil {
		return fatal(err)
	}

	errorChannel := make(chan error, 1)
	srv.Start(errorChannel)
	log.Infof("%s %s starting, listening on %s:%d", consts.AgentProgramName, consts.Version,
		serverCfg.ServerAddress, serverCfg.ServerPort)

	mainState(started)

Running:
	for {
		select {
		case sig := <-stopChannel:
			if osutil.IsReloadSignal(sig) {
				reloadConfig(cfgPtr, &log)
				continue
			}
			log.Infof("received %s, shutting down", sig)
			break Running

		case err := <-errorChannel:
			log.Criticalf("listener failed: %v", err)
			return fatal(err)
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Stop(ctx); err != nil {
		log.Warningf("shutdown: %v", err)
	}

	log.Infof("%s exiting after %s", consts.AgentProgramName, time.Since(startTime).Truncate(time.Second))
	return 0
}

// buildLogger mirrors the daemon's long-standing logging policy: console-only while attached to
// a terminal in debug mode, console-plus-syslog otherwise.
func buildLogger(sc *config.ServerConfig, foreground bool) (logging.Logger, error) {
	level := logging.LevelInfo
	if sc.Debug {
		level = logging.LevelDebug
	}
	if sc.Debug && foreground {
		return logging.NewConsoleLogger(stderr, level), nil
	}
	return logging.NewSyslogLogger(stderr, level, sc.LogFacility, consts.AgentProgramName)
}

// reloadConfig re-reads the configuration file and installs it if it parses and validates
// cleanly. Fields marked config.Immutable keep their running value; a change to one of them is
// logged as a warning rather than treated as a reload failure.
func reloadConfig(cfgPtr *atomic.Pointer[config.ServerConfig], log *logging.Logger) {
	log.Infof("received reload signal, reloading configuration")

	current := cfgPtr.Load()
	next, err := config.LoadServer(current.ConfigFile, func(sc *config.ServerConfig) {
		sc.Debug = cfg.debug || sc.Debug
	})
	if err != nil {
		log.Errorf("configuration reload failed, keeping previous configuration: %v", err)
		return
	}

	if config.Immutable("server_address") && (next.ServerAddress != current.ServerAddress || next.ServerPort != current.ServerPort) {
		log.Warningf("server_address/server_port changed but require a restart to take effect, keeping old value")
	}
	if config.Immutable("nrpe_user") && (next.NRPEUser != current.NRPEUser || next.NRPEGroup != current.NRPEGroup) {
		log.Warningf("nrpe_user/nrpe_group changed but require a restart to take effect, keeping old value")
	}
	if config.Immutable("pid_file") && next.PidFile != current.PidFile {
		log.Warningf("pid_file changed but requires a restart to take effect, keeping old value")
	}
	if config.Immutable("ssl_cert_file") && (next.SSLVerifyClient != current.SSLVerifyClient ||
		next.SSLCAFile != current.SSLCAFile || next.SSLCertFile != current.SSLCertFile || next.SSLKeyFile != current.SSLKeyFile) {
		log.Warningf("ssl_* options changed but require a restart to take effect, keeping old values")
	}
	next.ServerAddress = current.ServerAddress
	next.ServerPort = current.ServerPort
	next.NRPEUser = current.NRPEUser
	next.NRPEGroup = current.NRPEGroup
	next.PidFile = current.PidFile
	next.SSLVerifyClient = current.SSLVerifyClient
	next.SSLCAFile = current.SSLCAFile
	next.SSLCertFile = current.SSLCertFile
	next.SSLKeyFile = current.SSLKeyFile

	cfgPtr.Store(next)
	log.Infof("configuration reloaded")
}
