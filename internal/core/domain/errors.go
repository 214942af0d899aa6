package domain

import (
	"fmt"
	"strings"

	"go.trai.ch/zerr"
)

var (
	// ErrNameMismatch is returned when the retopo and reference name sets differ.
	ErrNameMismatch = zerr.New("retopo and reference names do not match")

	// ErrCardinality is returned when the retopo and reference collections differ in size.
	ErrCardinality = zerr.New("retopo and reference object counts differ")

	// ErrDuplicateName is returned when a collection contains the same object name twice.
	ErrDuplicateName = zerr.New("duplicate object name")

	// ErrUnknownName is returned when an operation targets a bundle that is not in the registry.
	ErrUnknownName = zerr.New("unknown bundle")

	// ErrBundleExists is returned when adding a bundle whose name is already registered.
	ErrBundleExists = zerr.New("bundle already exists")

	// ErrGeneration is returned when a cage cannot be generated for a bundle.
	ErrGeneration = zerr.New("cage generation failed")

	// ErrEmptyReference is returned when a reference mesh has no points.
	ErrEmptyReference = zerr.New("reference mesh has no points")

	// ErrDegenerateReference is returned when a reference mesh contains non-finite positions.
	ErrDegenerateReference = zerr.New("reference mesh contains non-finite positions")

	// ErrInvalidPeakDistance is returned when a peak distance is negative or not finite.
	ErrInvalidPeakDistance = zerr.New("peak distance must be a finite, non-negative number")

	// ErrMissingReference is returned when a bundle has no reference mesh in the current snapshot.
	ErrMissingReference = zerr.New("no reference mesh for bundle in current snapshot")

	// ErrBundleStale is returned when accepting a bundle whose cage no longer matches its parameters.
	ErrBundleStale = zerr.New("bundle cage is stale, rebuild it to apply its parameters")

	// ErrReferenceChanged is returned when a rebuild finds a reference that differs from the last synchronized one.
	ErrReferenceChanged = zerr.New("reference mesh changed since the last sync")

	// ErrBundleNeedsInspection is returned when a rebuild targets a bundle that is awaiting inspection.
	ErrBundleNeedsInspection = zerr.New("bundle needs inspection, accept it first")

	// ErrEmptySnapshot is returned when both collections are empty and an empty sync was not allowed.
	ErrEmptySnapshot = zerr.New("no objects in either retopo or reference collection")

	// ErrInvalidEditOp is returned when an edit operation has no kind.
	ErrInvalidEditOp = zerr.New("edit operation requires a kind")

	// ErrInvalidAnchors is returned when a persisted edit subgraph is not bounded by the fixed anchors.
	ErrInvalidAnchors = zerr.New("edit subgraph anchors are missing or reordered")

	// ErrNoBundlesSpecified is returned when a bundle command is run without names or --all.
	ErrNoBundlesSpecified = zerr.New("no bundles specified")

	// ErrSyncFailed is returned when one or more bundles failed during a synchronization pass.
	ErrSyncFailed = zerr.New("synchronization finished with failures")

	// ErrInvalidStatus is returned when a persisted bundle status cannot be parsed.
	ErrInvalidStatus = zerr.New("invalid bundle status")

	// ErrStoreCreateFailed is returned when the registry store directory cannot be created.
	ErrStoreCreateFailed = zerr.New("failed to create registry store directory")

	// ErrStoreOpenFailed is returned when the registry store cannot be opened.
	ErrStoreOpenFailed = zerr.New("failed to open registry store")

	// ErrStoreReadFailed is returned when the registry cannot be read.
	ErrStoreReadFailed = zerr.New("failed to read registry")

	// ErrStoreUnmarshalFailed is returned when the registry cannot be unmarshaled.
	ErrStoreUnmarshalFailed = zerr.New("failed to unmarshal registry")

	// ErrStoreMarshalFailed is returned when the registry cannot be marshaled.
	ErrStoreMarshalFailed = zerr.New("failed to marshal registry")

	// ErrStoreWriteFailed is returned when the registry cannot be written.
	ErrStoreWriteFailed = zerr.New("failed to write registry")

	// ErrInvalidStoreBackend is returned when the configured store backend is unknown.
	ErrInvalidStoreBackend = zerr.New("invalid store backend, expected 'json' or 'sqlite'")

	// ErrConfigReadFailed is returned when the config file cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read config file")

	// ErrConfigParseFailed is returned when the config file cannot be parsed.
	ErrConfigParseFailed = zerr.New("failed to parse config file")

	// ErrConfigNotFound is returned when the config file cannot be found.
	ErrConfigNotFound = zerr.New("could not find cagesync.yaml")

	// ErrMissingSourcePath is returned when the retopo or reference path is not configured.
	ErrMissingSourcePath = zerr.New("retopo and reference paths are required")

	// ErrInvalidScale is returned when an import or export scale is not positive.
	ErrInvalidScale = zerr.New("scale must be greater than zero")

	// ErrInvalidDebounce is returned when the watch debounce window cannot be parsed.
	ErrInvalidDebounce = zerr.New("invalid watch debounce duration")

	// ErrSnapshotReadFailed is returned when a mesh snapshot file cannot be read.
	ErrSnapshotReadFailed = zerr.New("failed to read mesh snapshot")

	// ErrSnapshotParseFailed is returned when a mesh snapshot file cannot be parsed.
	ErrSnapshotParseFailed = zerr.New("failed to parse mesh snapshot")

	// ErrInvalidVector is returned when a vector does not have exactly three finite components.
	ErrInvalidVector = zerr.New("vector must have exactly three finite components")

	// ErrExportFailed is returned when writing an export file fails.
	ErrExportFailed = zerr.New("failed to write export file")

	// ErrWatchFailed is returned when the source watcher cannot be started.
	ErrWatchFailed = zerr.New("failed to watch source files")
)

// NameMismatchError reports the symmetric difference between the retopo and
// reference name sets.
type NameMismatchError struct {
	OnlyInRetopo    []string
	OnlyInReference []string
}

// Names returns every mismatched name, retopo-only names first.
func (e *NameMismatchError) Names() []string {
	names := make([]string, 0, len(e.OnlyInRetopo)+len(e.OnlyInReference))
	names = append(names, e.OnlyInRetopo...)
	return append(names, e.OnlyInReference...)
}

func (e *NameMismatchError) Error() string {
	var parts []string
	if len(e.OnlyInRetopo) > 0 {
		parts = append(parts, "only in retopo: "+strings.Join(e.OnlyInRetopo, ", "))
	}
	if len(e.OnlyInReference) > 0 {
		parts = append(parts, "only in reference: "+strings.Join(e.OnlyInReference, ", "))
	}
	if len(parts) == 0 {
		return ErrNameMismatch.Error()
	}
	return ErrNameMismatch.Error() + " (" + strings.Join(parts, "; ") + ")"
}

// Is reports whether target is ErrNameMismatch.
func (e *NameMismatchError) Is(target error) bool {
	return target == ErrNameMismatch
}

// CardinalityError reports differing collection sizes. It wraps the name
// mismatch so the offending names stay available to callers.
type CardinalityError struct {
	RetopoCount    int
	ReferenceCount int
	Mismatch       *NameMismatchError
}

func (e *CardinalityError) Error() string {
	msg := fmt.Sprintf("%s (retopo: %d, reference: %d)", ErrCardinality.Error(), e.RetopoCount, e.ReferenceCount)
	if e.Mismatch != nil {
		msg += ": " + e.Mismatch.Error()
	}
	return msg
}

// Is reports whether target is ErrCardinality.
func (e *CardinalityError) Is(target error) bool {
	return target == ErrCardinality
}

// Unwrap returns the underlying name mismatch.
func (e *CardinalityError) Unwrap() error {
	if e.Mismatch == nil {
		return nil
	}
	return e.Mismatch
}

// UnknownNameError is returned when a bundle name is not present in the registry.
type UnknownNameError struct {
	Name string
}

func (e *UnknownNameError) Error() string {
	return fmt.Sprintf("%s: %q", ErrUnknownName.Error(), e.Name)
}

// Is reports whether target is ErrUnknownName.
func (e *UnknownNameError) Is(target error) bool {
	return target == ErrUnknownName
}

// GenerationError is returned when the cage for a single bundle could not be produced.
type GenerationError struct {
	Name  string
	Cause error
}

func (e *GenerationError) Error() string {
	if e.Cause == nil {
		return fmt.Sprintf("%s for %q", ErrGeneration.Error(), e.Name)
	}
	return fmt.Sprintf("%s for %q: %s", ErrGeneration.Error(), e.Name, e.Cause.Error())
}

// Is reports whether target is ErrGeneration.
func (e *GenerationError) Is(target error) bool {
	return target == ErrGeneration
}

// Unwrap returns the generator failure.
func (e *GenerationError) Unwrap() error {
	return e.Cause
}
