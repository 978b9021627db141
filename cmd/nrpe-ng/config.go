package main

// cliFlags holds the flags understood by the agent binary. Everything else about how it behaves
// comes from the config file loaded via -c, not from additional flags.
type cliFlags struct {
	configFile string
	daemonize  bool // -d, true by default
	foreground bool // -f, forces daemonize off
	debug      bool
	help       bool
	version    bool
}

// parseCommandLine sets up the flags-to-config mapping and parses the supplied command line
// arguments. It starts from scratch each time to make it easier for test wrappers to use.
func parseCommandLine(args []string) error {
	flagSet.BoolVar(&cfg.help, "h", false, "Print usage message to stdout then exit(0)")
	flagSet.StringVar(&cfg.configFile, "c", "", "configuration `file` to read (required)")
	flagSet.BoolVar(&cfg.daemonize, "d", true, "run as a detached background daemon (default)")
	flagSet.BoolVar(&cfg.foreground, "f", false, "stay attached to the terminal, do not daemonize")
	flagSet.BoolVar(&cfg.debug, "debug", false, "print verbose debugging information")
	flagSet.BoolVar(&cfg.version, "version", false, "print version and exit")

	return flagSet.Parse(args[1:])
}
