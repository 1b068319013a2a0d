// Package installer implements the flowd install procedure: an ordered
// sequence of filesystem mutations (binary placement, data directory,
// default config, database migrations, install manifest) that behaves as an
// all-or-nothing unit.
//
// Each completed mutation is recorded in a rollback ledger; the first failure
// stops the sequence and Run drains the ledger through rollback.Cleanup,
// returning touched paths to their pre-install state. The single accepted
// asymmetry is a pre-existing binary displaced in step one, which is removed
// for good before the move and is not restored on rollback.
package installer
