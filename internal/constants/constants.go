/*
Package constants provides common values used across all nrpe-ng packages. Usage is to call the
global Get() function which returns the Constants by value ensuring that any modifications made
(accidental or otherwise) will not affect other modules when they call Get().

Typical usage:

    consts := constants.Get()
    fmt.Println("I am", consts.AgentProgramName, "version", consts.Version)
*/
package constants

// Constants contains the system-wide constants.
type Constants struct {
	AgentProgramName string // Program related constants
	ProbeProgramName string
	Version          string
	PackageURL       string

	DefaultPort              string // Listener related constants
	DefaultServerAddress     string
	DefaultServerConfigPath  string
	DefaultClientConfigPath  string

	ExecPath string // Minimal PATH handed to supervised subprocesses

	CheckURIPrefix    string // "/v1/check/"
	VersionURI        string // "/v1/version"
	NRPEResultHeader  string // "X-NRPE-Result"
	ServerHeaderValue string // "nrpe-ng/<ver>" prefix, Version appended by caller

	TerminateAttempts int // Signal escalation retry budget
	TerminateInterval string
}

var readOnlyConstants *Constants

func createReadOnlyConstants() {
	readOnlyConstants = &Constants{
		AgentProgramName: "nrpe-ng",
		ProbeProgramName: "check_nrpe_ng",
		Version:          "0.1.0",
		PackageURL:       "https://github.com/bootc/nrpe-ng",

		DefaultPort:             "59546",
		DefaultServerAddress:    "::",
		DefaultServerConfigPath: "/etc/nagios/nrpe-ng.cfg",
		DefaultClientConfigPath: "/etc/nagios/check_nrpe_ng.cfg",

		ExecPath: "/usr/local/sbin:/usr/local/bin:/sbin:/bin:/usr/sbin:/usr/bin",

		CheckURIPrefix:    "/v1/check/",
		VersionURI:        "/v1/version",
		NRPEResultHeader:  "X-NRPE-Result",
		ServerHeaderValue: "nrpe-ng",

		TerminateAttempts: 3,
		TerminateInterval: "1s",
	}
}

func init() {
	createReadOnlyConstants()
}

// Get returns a copy of the Constants struct. Returned by value so internal values cannot be
// inadvertently changed by callers.
func Get() Constants {
	return *readOnlyConstants
}
