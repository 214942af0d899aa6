package domain

import (
	"errors"
	"time"
)

// Action is what a synchronization pass did to a single name.
type Action uint8

const (
	// ActionRetain left the bundle untouched.
	ActionRetain Action = iota
	// ActionCreate created a new bundle with a generated cage.
	ActionCreate
	// ActionDelete removed a bundle whose name left the source collections.
	ActionDelete
	// ActionFlag marked a bundle whose reference topology changed.
	ActionFlag
	// ActionReset restored a bundle's default cage on user request.
	ActionReset
	// ActionRebuild regenerated a bundle's cage with its own parameters on user request.
	ActionRebuild
)

func (a Action) String() string {
	switch a {
	case ActionRetain:
		return "retain"
	case ActionCreate:
		return "create"
	case ActionDelete:
		return "delete"
	case ActionFlag:
		return "flag"
	case ActionReset:
		return "reset"
	case ActionRebuild:
		return "rebuild"
	default:
		return "unknown"
	}
}

// ReportEntry records the outcome for one name. A non-nil Err marks a failed entry;
// the bundle was left as it was before the pass.
type ReportEntry struct {
	Name   string
	Action Action
	Status Status
	Err    error
}

// Failed reports whether the entry carries an error.
func (e ReportEntry) Failed() bool {
	return e.Err != nil
}

// SyncReport lists the per-name outcome of a synchronization pass.
type SyncReport struct {
	PassID    string
	StartedAt time.Time
	Duration  time.Duration
	DryRun    bool
	Entries   []ReportEntry
}

// Add appends an entry.
func (r *SyncReport) Add(entry ReportEntry) {
	r.Entries = append(r.Entries, entry)
}

// Actions returns every entry that changed or attempted to change the registry.
// Retained names are not actions.
func (r *SyncReport) Actions() []ReportEntry {
	var out []ReportEntry
	for _, e := range r.Entries {
		if e.Action != ActionRetain {
			out = append(out, e)
		}
	}
	return out
}

// Failures returns the failed entries.
func (r *SyncReport) Failures() []ReportEntry {
	var out []ReportEntry
	for _, e := range r.Entries {
		if e.Failed() {
			out = append(out, e)
		}
	}
	return out
}

// Count returns how many successful entries took the given action.
func (r *SyncReport) Count(action Action) int {
	n := 0
	for _, e := range r.Entries {
		if e.Action == action && !e.Failed() {
			n++
		}
	}
	return n
}

// Err joins every entry error, or returns nil when all entries succeeded.
func (r *SyncReport) Err() error {
	var errs []error
	for _, e := range r.Entries {
		if e.Err != nil {
			errs = append(errs, e.Err)
		}
	}
	return errors.Join(errs...)
}
