package installer

import (
	"errors"
	"fmt"
	"io/fs"
)

var (
	// ErrNotBuilt is returned when the expected build output is missing.
	// Nothing has been mutated at that point, so no cleanup is needed.
	ErrNotBuilt = errors.New("binary is not built, compile it before installing")

	// ErrDaemonRunning is returned when a live flowd process would hold the
	// binary the installer is about to replace.
	ErrDaemonRunning = errors.New("flowd is currently running, stop it before installing")
)

// Step identifiers carried by StepError and used in progress messages.
const (
	StepBinary     = "install binary"
	StepDataDir    = "create data directory"
	StepConfig     = "stage default config"
	StepMigrations = "stage migrations"
	StepManifest   = "write install manifest"
)

// StepError wraps a failed filesystem mutation with the step and path involved.
type StepError struct {
	// Step identifies the install step that failed.
	Step string
	// Path is the filesystem path the step was operating on.
	Path string
	// Err is the underlying cause.
	Err error
}

// Error renders the step, path and cause.
func (e *StepError) Error() string {
	return fmt.Sprintf("%s: %s: %v", e.Step, e.Path, e.Err)
}

// Unwrap exposes the underlying cause for errors.Is/As.
func (e *StepError) Unwrap() error {
	return e.Err
}

// stepErr builds a StepError for the given step and path.
func stepErr(step, path string, err error) error {
	return &StepError{Step: step, Path: path, Err: err}
}

// IsPermission reports whether the failure is an access-control denial.
// The remedy (elevate privileges) differs from a generic filesystem fault,
// so the command surfaces it distinctly.
func IsPermission(err error) bool {
	return errors.Is(err, fs.ErrPermission)
}
