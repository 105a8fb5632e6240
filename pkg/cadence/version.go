// Package cadence holds module-level metadata shared by the CLI and
// library consumers.
package cadence

// Version is the current Cadence release version.
const Version = "0.1.0"
