package main

import (
	"fmt"
	"io"
	"text/template"
)

const usageMessageTemplate = `
NAME
          {{.AgentProgramName}} -- Nagios Remote Plugin Executor, next generation

SYNOPSIS
          {{.AgentProgramName}} -c FILE [-f] [--debug] [--version]

DESCRIPTION
          {{.AgentProgramName}} listens for HTTPS check requests and runs the locally
          configured plugin commands on behalf of a remote Nagios-compatible monitoring
          server, returning the plugin's exit status and output.

          By default {{.AgentProgramName}} detaches from the controlling terminal and
          runs as a background daemon; -f keeps it attached for interactive use or
          supervision by an external service manager.

OPTIONS
          [-h] [-c configuration file] [-d] [-f] [--debug] [--version]

`

func usage(out io.Writer) {
	tmpl, err := template.New("usage").Parse(usageMessageTemplate)
	if err != nil {
		panic(err)
	}
	err = tmpl.Execute(out, consts)
	if err != nil {
		panic(err)
	}
	flagSet.SetOutput(out)
	flagSet.PrintDefaults()
	fmt.Fprintln(out, "\nVersion:", consts.Version)
}
