// Package engine implements the habit recurrence and completion analytics
// engine: the pure scheduling rule, the completion ledger discipline, and
// the derivations built on top of them (streaks, completion rates, calendar
// projections, weekly/monthly buckets, dashboard rollups).
//
// All derived values are recomputed from the ledger on every read. Nothing
// in this package caches a streak counter or mirrors ledger state; the
// ledger is the single source of truth.
package engine
