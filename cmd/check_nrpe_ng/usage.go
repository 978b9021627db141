package main

import (
	"fmt"
	"io"
	"text/template"
)

const usageMessageTemplate = `
NAME
          {{.ProbeProgramName}} -- probe a {{.AgentProgramName}} agent, Nagios plugin style

SYNOPSIS
          {{.ProbeProgramName}} -H HOST [-p PORT] [-t SECONDS] [-u] [-c COMMAND [-a ARG ...]] [-C FILE]

DESCRIPTION
          {{.ProbeProgramName}} issues a single HTTPS request to a {{.AgentProgramName}} agent
          and translates the outcome into a Nagios-convention exit code: 0 OK, 1 WARNING,
          2 CRITICAL, 3 UNKNOWN. Without -c it probes /v1/version for discovery instead of
          running a check command.

OPTIONS
          [-h] [-H host] [-p port] [-t timeout] [-u]
          [-c command] [-a argument ...] [-C config file]
          [--debug] [--version]

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
