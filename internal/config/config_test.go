package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// TestParseBuildVariant verifies mapping from strings to variants and handling of unknown values.
func TestParseBuildVariant(t *testing.T) {
	t.Parallel()

	v, ok := ParseBuildVariant("debug")
	require.True(t, ok)
	require.Equal(t, Debug, v)

	v, ok = ParseBuildVariant(" Release ")
	require.True(t, ok)
	require.Equal(t, Release, v)

	_, ok = ParseBuildVariant("optimized")
	require.False(t, ok)
}

// TestBuildVariant_TargetDir checks variant-specific build output directories.
func TestBuildVariant_TargetDir(t *testing.T) {
	t.Parallel()

	require.Equal(t, "target/debug", Debug.TargetDir())
	require.Equal(t, "target/release", Release.TargetDir())
	require.Equal(t, "debug", Debug.String())
	require.Equal(t, "release", Release.String())
}

// TestValidate checks install path requirements and default filling.
func TestValidate(t *testing.T) {
	t.Parallel()

	// Nil config.
	require.Error(t, Validate(nil))

	// Missing install path.
	cfg := &InstallConfig{}

	require.Error(t, Validate(cfg))

	// Install path must exist.
	cfg = &InstallConfig{
		InstallPath: filepath.Join(t.TempDir(), "missing"),
	}

	require.Error(t, Validate(cfg))

	// Install path must be a directory.
	dir := t.TempDir()
	file := filepath.Join(dir, "occupied")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0o600))

	cfg = &InstallConfig{InstallPath: file}

	require.Error(t, Validate(cfg))

	// Valid directory fills fixed defaults.
	cfg = &InstallConfig{InstallPath: dir}

	require.NoError(t, Validate(cfg))
	require.Equal(t, DefaultDataDir, cfg.DataDir)
	require.Equal(t, ".", cfg.SourceRoot)
}

// TestValidate_SkipBinary ensures the install path is not required when the binary is skipped.
func TestValidate_SkipBinary(t *testing.T) {
	t.Parallel()

	cfg := &InstallConfig{SkipBinary: true}

	require.NoError(t, Validate(cfg))
}

// TestInstallConfig_Paths checks the derived path accessors.
func TestInstallConfig_Paths(t *testing.T) {
	t.Parallel()

	cfg := NewInstallConfig("/opt/bin", Debug, false)

	require.Equal(t, "/opt/bin/flowd", cfg.BinaryInstallPath())
	require.Equal(t, filepath.Join("target/debug", BinaryName), cfg.BuildOutputPath())
	require.Equal(t, filepath.Join(DefaultDataDir, "config"), cfg.ConfigDir())
	require.Equal(t, filepath.Join(DefaultDataDir, "migrations"), cfg.MigrationsDir())
	require.Equal(t, SourceConfigPath, cfg.SourceConfigFile())
	require.Equal(t, SourceMigrationsDir, cfg.SourceMigrations())
}
