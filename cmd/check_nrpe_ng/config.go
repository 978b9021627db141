package main

import "github.com/bootc/nrpe-ng/internal/flagutil"

// cliFlags holds the flags understood by the probe binary. Only fields the user actually set on
// the command line should ever be applied on top of config-file values; zero ints/bools are
// ambiguous with "not specified", so callers check cfg.port != 0 etc. before overriding.
type cliFlags struct {
	host       string
	port       int
	timeout    int
	unknown    bool
	command    string
	args       flagutil.StringValue
	configFile string
	debug      bool
	help       bool
	version    bool
}

func parseCommandLine(args []string) error {
	flagSet.StringVar(&cfg.host, "H", "", "target `host` to probe (required)")
	flagSet.IntVar(&cfg.port, "p", 0, "agent `port` (default from config file)")
	flagSet.IntVar(&cfg.timeout, "t", 0, "request `timeout` in seconds (default from config file)")
	flagSet.BoolVar(&cfg.unknown, "u", false, "report UNKNOWN rather than CRITICAL on a connection timeout")
	flagSet.StringVar(&cfg.command, "c", "", "check `command` name to run (omit to probe /v1/version)")
	flagSet.Var(&cfg.args, "a", "check command `argument`, repeatable; K=V or a bare value")
	flagSet.StringVar(&cfg.configFile, "C", "", "configuration `file` to read")
	flagSet.BoolVar(&cfg.debug, "debug", false, "print verbose debugging information")
	flagSet.BoolVar(&cfg.help, "h", false, "print usage message to stdout then exit(0)")
	flagSet.BoolVar(&cfg.version, "version", false, "print version and exit")

	return flagSet.Parse(args[1:])
}
