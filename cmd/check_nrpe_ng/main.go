// Issue a single HTTPS check request to an nrpe-ng agent and report a Nagios-style exit code.
package main

import (
	"flag"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/bootc/nrpe-ng/internal/config"
	"github.com/bootc/nrpe-ng/internal/constants"
	"github.com/bootc/nrpe-ng/internal/tlsutil"
)

// Nagios-convention exit codes.
const (
	exitOK = iota
	exitWarning
	exitCritical
	exitUnknown
)

// Program-wide variables
var (
	consts = constants.Get()
	cfg    *cliFlags

	stdout io.Writer
	stderr io.Writer

	flagSet *flag.FlagSet
)

func mainInit(out, err io.Writer) {
	cfg = &cliFlags{}
	stdout = out
	stderr = err
}

func main() {
	mainInit(os.Stdout, os.Stderr)
	os.Exit(mainExecute(os.Args))
}

func fatal(args ...interface{}) int {
	fmt.Fprint(stderr, "Fatal: ", consts.ProbeProgramName, ": ")
	fmt.Fprintln(stderr, args...)
	return exitUnknown
}

func mainExecute(args []string) int {
	flagSet = flag.NewFlagSet(args[0], flag.ContinueOnError)
	flagSet.SetOutput(stderr)
	if err := parseCommandLine(args); err != nil {
		return exitUnknown
	}
	if cfg.help {
		usage(stdout)
		return exitOK
	}
	if cfg.version {
		fmt.Fprintln(stdout, consts.ProbeProgramName, "Version:", consts.Version)
		return exitOK
	}
	if cfg.host == "" {
		return fatal("-H is required: a target host must be supplied")
	}

	configPath := cfg.configFile
	if configPath == "" {
		if _, err := os.Stat(consts.DefaultClientConfigPath); err == nil {
			configPath = consts.DefaultClientConfigPath
		}
	}

	clientCfg, err := config.LoadClient(configPath, func(cc *config.ClientConfig) {
		cc.Host = cfg.host
		if cfg.port != 0 {
			cc.Port = cfg.port
		}
		if cfg.timeout != 0 {
			cc.Timeout = cfg.timeout
		}
		if cfg.unknown {
			cc.Unknown = true
		}
		cc.Command = cfg.command
		cc.Args = cfg.args.Args()
	})
	if err != nil {
		return fatal(err)
	}

	if cfg.debug {
		fmt.Fprintf(stderr, "DEBUG: %s:%d command=%q args=%v timeout=%ds\n",
			clientCfg.Host, clientCfg.Port, clientCfg.Command, clientCfg.Args, clientCfg.Timeout)
	}

	start := time.Now()
	code, output := probe(clientCfg)
	if cfg.debug {
		fmt.Fprintf(stderr, "DEBUG: exit=%d elapsed=%s\n", code, time.Since(start).Truncate(time.Millisecond))
	}

	fmt.Fprintln(stdout, output)
	return code
}

// probe issues the request described by cc and maps the outcome to a Nagios exit code and the
// text to print on stdout, following the same precedence every Nagios plugin uses: a connection
// timeout is CRITICAL unless the caller asked for UNKNOWN on timeout (-u); any other transport
// failure, or a non-200 response, or a 200 with no parseable result header, is UNKNOWN; only a
// clean 200 with a numeric X-NRPE-Result header carries the command's own exit code through.
func probe(cc *config.ClientConfig) (int, string) {
	tlsConfig, err := tlsutil.NewClientTLSConfig(cc.SSLVerifyServer, cc.SSLCAFile, cc.SSLCertFile, cc.SSLKeyFile)
	if err != nil {
		return exitUnknown, err.Error()
	}

	client := &http.Client{
		Timeout:   time.Duration(cc.Timeout) * time.Second,
		Transport: &http.Transport{TLSClientConfig: tlsConfig},
	}

	req, err := buildRequest(cc)
	if err != nil {
		return exitUnknown, err.Error()
	}

	resp, err := client.Do(req)
	if err != nil {
		if urlErr, ok := err.(*url.Error); ok && urlErr.Timeout() {
			if cc.Unknown {
				return exitUnknown, "request timed out"
			}
			return exitCritical, "request timed out"
		}
		return exitUnknown, err.Error()
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode != http.StatusOK {
		return exitUnknown, resp.Status
	}

	c := constants.Get()
	code, err := strconv.Atoi(resp.Header.Get(c.NRPEResultHeader))
	if err != nil {
		return exitUnknown, strings.TrimRight(string(body), "\n")
	}
	return code, strings.TrimRight(string(body), "\n")
}

// buildRequest assembles the outbound HTTP request for cc: GET /v1/version with no command, GET
// /v1/check/<command> with no arguments, or POST /v1/check/<command> with a urlencoded body once
// any -a arguments are present.
func buildRequest(cc *config.ClientConfig) (*http.Request, error) {
	c := constants.Get()
	u := url.URL{Scheme: "https", Host: fmt.Sprintf("%s:%d", cc.Host, cc.Port)}

	if cc.Command == "" {
		u.Path = c.VersionURI
		return http.NewRequest(http.MethodGet, u.String(), nil)
	}

	u.Path = c.CheckURIPrefix + cc.Command
	args := buildArgsMap(cc.Args)
	if len(args) == 0 {
		return http.NewRequest(http.MethodGet, u.String(), nil)
	}

	form := url.Values{}
	for k, v := range args {
		form.Set(k, v)
	}
	req, err := http.NewRequest(http.MethodPost, u.String(), strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req, nil
}
