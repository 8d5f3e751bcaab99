// Package version identifies the service in logs, traces, and the CLI.
package version

// Name is the service identifier reported to tracing and logging backends.
const Name = "timberd"

// Version is overridden at build time via -ldflags.
var Version = "dev"
