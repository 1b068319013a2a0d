// Package manifest records the outcome of a successful install as a YAML
// file inside the data directory: installer version, timestamp, binary
// checksum, and the staged data files. Later tooling (audits, updaters)
// can read it to learn what exactly was placed on the host.
package manifest
