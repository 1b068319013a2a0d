// Package config defines the fixed filesystem locations used by the installer
// and the InstallConfig record driving a single install run.
//
// InstallConfig is built once from CLI input, validated, and treated as
// read-only by the install procedure. The data directory and bundled source
// locations are fixed constants; only the install path and build variant are
// operator-supplied.
package config
