package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const (
	// DefaultInstallDir is the conventional destination directory for the binary.
	DefaultInstallDir = "/usr/local/bin"

	// DefaultDataDir is the fixed system directory holding non-binary assets.
	// It is never operator-supplied.
	DefaultDataDir = "/usr/share/flowd"

	// BinaryName is the name the installed binary carries at its destination.
	BinaryName = "flowd"

	// ConfigDirName is the subdirectory of the data directory holding the default config.
	ConfigDirName = "config"

	// MigrationsDirName is the subdirectory of the data directory holding migration scripts.
	MigrationsDirName = "migrations"

	// SourceConfigPath is the bundled default configuration file, relative to the project root.
	SourceConfigPath = "src/resources/config/config.toml"

	// SourceMigrationsDir is the bundled migrations directory, relative to the project root.
	SourceMigrationsDir = "src/resources/db/migrations"

	// DefaultDirPermissions is used when creating installed directories.
	DefaultDirPermissions os.FileMode = 0o755

	// DefaultFilePermissions is the default file permission for installed data files.
	DefaultFilePermissions os.FileMode = 0o644

	// Build output directories, relative to the project root.
	debugTargetDir   = "target/debug"
	releaseTargetDir = "target/release"
)

// BuildVariant selects which compiled output (debug or release) is the install source.
type BuildVariant int

const (
	// Release installs the optimized build output.
	Release BuildVariant = iota
	// Debug installs the debug build output.
	Debug
)

// String returns the lowercase variant name.
func (v BuildVariant) String() string {
	if v == Debug {
		return "debug"
	}

	return "release"
}

// TargetDir returns the build output directory for the variant, relative to the project root.
func (v BuildVariant) TargetDir() string {
	if v == Debug {
		return debugTargetDir
	}

	return releaseTargetDir
}

// ParseBuildVariant converts string input to a BuildVariant.
func ParseBuildVariant(s string) (BuildVariant, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return Debug, true
	case "release":
		return Release, true
	default:
		return Release, false
	}
}

// InstallConfig holds the inputs of a single install run.
// It is constructed once at process start and read-only thereafter.
type InstallConfig struct {
	// InstallPath is the directory receiving the binary.
	InstallPath string
	// DataDir is the fixed system directory for non-binary assets.
	DataDir string
	// SourceRoot is the project root containing bundled assets and build outputs.
	SourceRoot string
	// Variant selects the debug or release build output.
	Variant BuildVariant
	// SkipBinary stages data files only, leaving the binary untouched.
	SkipBinary bool
}

var (
	// errConfigIsNotSet is returned when a nil configuration is provided.
	errConfigIsNotSet = errors.New("configuration is not set")
	// errInstallPathRequired is returned when the install path is missing.
	errInstallPathRequired = errors.New("install path must be provided")
	// errInstallPathNotDir is returned when the install path is not a directory.
	errInstallPathNotDir = errors.New("install path is not a directory")
)

// NewInstallConfig builds an InstallConfig with the fixed system locations filled in.
func NewInstallConfig(installPath string, variant BuildVariant, skipBinary bool) *InstallConfig {
	if installPath == "" {
		installPath = DefaultInstallDir
	}

	return &InstallConfig{
		InstallPath: filepath.Clean(installPath),
		DataDir:     DefaultDataDir,
		SourceRoot:  ".",
		Variant:     variant,
		SkipBinary:  skipBinary,
	}
}

// Validate checks the provided configuration and fills defaults for the fixed locations.
// The install path must name an existing directory unless the binary is skipped.
func Validate(cfg *InstallConfig) error {
	if cfg == nil {
		return errConfigIsNotSet
	}

	if cfg.DataDir == "" {
		cfg.DataDir = DefaultDataDir
	}

	if cfg.SourceRoot == "" {
		cfg.SourceRoot = "."
	}

	if cfg.SkipBinary {
		return nil
	}

	if cfg.InstallPath == "" {
		return errInstallPathRequired
	}

	info, err := os.Stat(cfg.InstallPath)
	if err != nil {
		return fmt.Errorf("stat install path: %w", err)
	}

	if !info.IsDir() {
		return fmt.Errorf("%s: %w", cfg.InstallPath, errInstallPathNotDir)
	}

	return nil
}

// BinaryInstallPath returns the destination path of the installed binary.
func (c *InstallConfig) BinaryInstallPath() string {
	return filepath.Join(c.InstallPath, BinaryName)
}

// BuildOutputPath returns the expected location of the compiled binary for the variant.
func (c *InstallConfig) BuildOutputPath() string {
	return filepath.Join(c.SourceRoot, c.Variant.TargetDir(), BinaryName)
}

// ConfigDir returns the installed configuration directory.
func (c *InstallConfig) ConfigDir() string {
	return filepath.Join(c.DataDir, ConfigDirName)
}

// MigrationsDir returns the installed migrations directory.
func (c *InstallConfig) MigrationsDir() string {
	return filepath.Join(c.DataDir, MigrationsDirName)
}

// SourceConfigFile returns the bundled default configuration file location.
func (c *InstallConfig) SourceConfigFile() string {
	return filepath.Join(c.SourceRoot, SourceConfigPath)
}

// SourceMigrations returns the bundled migrations directory location.
func (c *InstallConfig) SourceMigrations() string {
	return filepath.Join(c.SourceRoot, SourceMigrationsDir)
}
