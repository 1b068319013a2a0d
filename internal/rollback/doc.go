// Package rollback implements the undo ledger behind the installer's
// all-or-nothing behavior.
//
// The installer records every mutation in a Ledger right after it completes.
// When a later step fails, Cleanup drains the ledger in reverse chronological
// order, deleting installed files and directories so the filesystem returns
// to its pre-install state. On success the ledger is simply discarded.
package rollback
