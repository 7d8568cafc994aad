// Package persist mirrors in-memory state into a repository.KVStore.
//
// Loading follows a decode-or-default contract: anything that is not a usable
// snapshot is replaced by the caller's defaults, and malformed entries are
// removed from storage. Writes are best effort; a failed write is logged and
// reported to the caller but never rolls back the in-memory state.
package persist

import (
	"errors"
	"fmt"
)

// Source tells where a loaded value came from.
type Source string

const (
	SourceStored  Source = "stored"
	SourceDefault Source = "default"
)

var (
	errEmptySnapshot = errors.New("empty snapshot")
	errNotSequence   = errors.New("stored value is not a sequence")
	errNotObject     = errors.New("stored value is not an object")
)

// LoadReport describes how a key was loaded.
type LoadReport struct {
	Key       string
	Source    Source
	Discarded bool
	// Err is the read or decode failure that forced the fallback, if any.
	Err error
	// PersistErr is set when mirroring the loaded state back failed.
	PersistErr error
}

// Outcome reports the effect of a mutation.
type Outcome struct {
	// Applied is false when the mutation found nothing to change
	// (for example an unknown id).
	Applied    bool
	PersistErr error
}

// Warning returns a user-facing message when the change was kept in memory
// but could not be saved.
func (o Outcome) Warning() string {
	if o.PersistErr == nil {
		return ""
	}
	return "changes could not be saved; they will be lost on restart"
}

func writeError(key string, err error) error {
	return fmt.Errorf("persist %s: %w", key, err)
}
