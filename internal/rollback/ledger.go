package rollback

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/flowd-dev/flowd-installer/internal/logger"
)

// ActionKind selects the undo operation for a recorded mutation.
type ActionKind int

const (
	// MoveFile records a file moved into place. The forward move consumes the
	// source, so undo deletes the installed copy.
	MoveFile ActionKind = iota
	// CreateDir records a directory created by the installer.
	// Undo removes it recursively, including anything staged inside later.
	CreateDir
	// CopyFile records a file copied into place. Undo deletes the copy;
	// the source is untouched by the forward action.
	CopyFile
	// CopyTree records a directory tree copied into place. Undo deletes it recursively.
	CopyTree
)

// String returns the kind name used in logs and error messages.
func (k ActionKind) String() string {
	switch k {
	case MoveFile:
		return "move file"
	case CreateDir:
		return "create directory"
	case CopyFile:
		return "copy file"
	case CopyTree:
		return "copy tree"
	default:
		return "unknown"
	}
}

// Action is one completed, undoable filesystem mutation.
type Action struct {
	// Kind selects the undo operation.
	Kind ActionKind
	// Source is the pre-mutation origin path. Only MoveFile carries one;
	// it is kept for diagnostics, not restoration (the move consumed it).
	Source string
	// Destination is the path the forward action produced.
	Destination string
}

// undo reverses the action on the filesystem.
func (a Action) undo() error {
	switch a.Kind {
	case MoveFile, CopyFile:
		return os.Remove(a.Destination)
	case CreateDir, CopyTree:
		return os.RemoveAll(a.Destination)
	default:
		return fmt.Errorf("%w: %d", errUnknownKind, a.Kind)
	}
}

var errUnknownKind = errors.New("unknown action kind")

// Ledger is an append-only record of completed mutations for one install
// attempt. Insertion order is the chronological order of completion.
//
// The contract is strict: an action is recorded only after it succeeded.
// A ledger must never contain an action that did not actually happen, or
// cleanup will fail attempting to undo something nonexistent.
type Ledger struct {
	actions []Action
}

// NewLedger returns an empty ledger.
func NewLedger() *Ledger {
	return &Ledger{}
}

// Record appends a completed action to the ledger.
func (l *Ledger) Record(action Action) {
	l.actions = append(l.actions, action)
}

// Len returns the number of recorded actions.
func (l *Ledger) Len() int {
	return len(l.actions)
}

// Actions returns a copy of the recorded actions in chronological order.
func (l *Ledger) Actions() []Action {
	return append([]Action(nil), l.actions...)
}

// CleanupError describes one undo operation that failed during cleanup.
type CleanupError struct {
	// Action is the ledger entry whose undo failed.
	Action Action
	// Err is the underlying filesystem error.
	Err error
}

// Error renders the failed undo with its target path.
func (e *CleanupError) Error() string {
	return fmt.Sprintf("undo %s %s: %v", e.Action.Kind, e.Action.Destination, e.Err)
}

// Unwrap exposes the underlying cause for errors.Is/As.
func (e *CleanupError) Unwrap() error {
	return e.Err
}

// Cleanup undoes every recorded action, most-recent-first, and returns the
// undo failures encountered. Cleanup is best-effort: a failed undo does not
// stop the remaining entries, since aborting mid-way would abandon the rest
// of the undo sequence. Errors are collected for operator visibility, never
// raised.
func Cleanup(ctx context.Context, ledger *Ledger) []*CleanupError {
	if ledger == nil || len(ledger.actions) == 0 {
		return nil
	}

	var failures []*CleanupError

	for i := len(ledger.actions) - 1; i >= 0; i-- {
		action := ledger.actions[i]

		logger.Debugf(ctx, "Undoing %s: %s", action.Kind, action.Destination)

		if err := action.undo(); err != nil {
			failures = append(failures, &CleanupError{Action: action, Err: err})
		}
	}

	return failures
}
