// Package types defines the Store and Table interfaces, entity types,
// the calendar Day type, and standard error types for the Cadence habit
// tracking system.
package types
