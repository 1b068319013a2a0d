// Package fsops holds the small filesystem primitives the installer builds on:
// existence checks, file copy with explicit close-error propagation, rename,
// and non-recursive directory listing.
package fsops
