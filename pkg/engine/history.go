package engine

import "github.com/mesh-intelligence/cadence/pkg/types"

// History is a read-only snapshot of one habit's ledger entries, keyed by
// canonical day string. Calculators take a History plus explicit dates so
// the derivation logic stays pure; the snapshot is rebuilt from the store
// on every read.
type History map[string]types.CompletionRecord

// NewHistory builds a History from ledger records. Later records for the
// same day replace earlier ones, matching the ledger's upsert discipline.
func NewHistory(records []*types.CompletionRecord) History {
	hist := make(History, len(records))
	for _, r := range records {
		if r == nil {
			continue
		}
		hist[r.Date.String()] = *r
	}
	return hist
}

// StatusOn returns the recorded status for a day: StatusCompleted,
// StatusMissed, or StatusNoRecord when nothing was written.
func (h History) StatusOn(day types.Day) string {
	if r, ok := h[day.String()]; ok {
		return r.Status
	}
	return types.StatusNoRecord
}

// RecordOn returns the record for a day, if one exists.
func (h History) RecordOn(day types.Day) (types.CompletionRecord, bool) {
	r, ok := h[day.String()]
	return r, ok
}

// CompletedCount returns the number of completed days in [from, to].
func (h History) CompletedCount(from, to types.Day) int {
	count := 0
	for _, r := range h {
		if r.Status == types.StatusCompleted && !r.Date.Before(from) && !r.Date.After(to) {
			count++
		}
	}
	return count
}
