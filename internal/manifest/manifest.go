package manifest

import (
	"crypto"
	"encoding/base64"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/flowd-dev/flowd-installer/internal/version"

	// Ensure SHA512 is available for checksum calculation.
	_ "crypto/sha512"
)

const (
	// Filename is the manifest file written into the data directory.
	Filename = "install-manifest.yaml"

	// filePermissions restricts the manifest to the installing user.
	filePermissions os.FileMode = 0o600

	// ChecksumFunction is used to hash the installed binary.
	ChecksumFunction crypto.Hash = crypto.SHA512
)

var errHashUnavailable = errors.New("hash function unavailable")

// Binary describes the installed service binary.
type Binary struct {
	// Path is where the binary was placed.
	Path string `yaml:"path"`
	// Checksum is the base64-encoded hash of the installed binary.
	Checksum string `yaml:"checksum"`
}

// Manifest records what a successful install placed on the host.
type Manifest struct {
	// Version is the installer version that produced this manifest.
	Version string `yaml:"version"`
	// InstalledAt is when the install completed.
	InstalledAt time.Time `yaml:"installed_at"`
	// Binary describes the installed binary; nil when the binary was skipped.
	Binary *Binary `yaml:"binary,omitempty"`
	// ConfigFile is the installed default configuration file.
	ConfigFile string `yaml:"config_file"`
	// Migrations lists the staged migration script names.
	Migrations []string `yaml:"migrations"`
}

// New returns a manifest initialized with the current installer version and time.
func New() *Manifest {
	return &Manifest{
		Version:     version.Short(),
		InstalledAt: time.Now().UTC(),
	}
}

// FileChecksum returns the base64-encoded hash of the file at path.
func FileChecksum(path string) (string, error) {
	contents, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return "", err
	}

	if !ChecksumFunction.Available() {
		return "", fmt.Errorf("checksum calculation not possible: %w", errHashUnavailable)
	}

	hasher := ChecksumFunction.New()
	if _, err = hasher.Write(contents); err != nil {
		return "", fmt.Errorf("calculate checksum: %w", err)
	}

	return base64.StdEncoding.EncodeToString(hasher.Sum(nil)), nil
}

// Save writes the manifest to the provided path.
func Save(path string, m *Manifest) error {
	contents, err := yaml.Marshal(m)
	if err != nil {
		return fmt.Errorf("marshal manifest: %w", err)
	}

	if err = os.WriteFile(filepath.Clean(path), contents, filePermissions); err != nil {
		return fmt.Errorf("write manifest: %w", err)
	}

	return nil
}

// Load reads a manifest back from disk.
func Load(path string) (*Manifest, error) {
	contents, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}

	var m Manifest
	if err = yaml.Unmarshal(contents, &m); err != nil {
		return nil, fmt.Errorf("unmarshal manifest: %w", err)
	}

	return &m, nil
}
