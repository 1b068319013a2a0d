package manifest

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// TestSaveLoadRoundtrip ensures a manifest is persisted and loaded back intact.
func TestSaveLoadRoundtrip(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), Filename)

	want := New()
	want.Binary = &Binary{
		Path:     "/usr/local/bin/flowd",
		Checksum: "abc=",
	}
	want.ConfigFile = "/usr/share/flowd/config/config.toml"
	want.Migrations = []string{"001_init.sql", "002_indexes.sql"}

	require.NoError(t, Save(path, want))

	got, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, want.Version, got.Version)
	require.Equal(t, want.Binary, got.Binary)
	require.Equal(t, want.ConfigFile, got.ConfigFile)
	require.Equal(t, want.Migrations, got.Migrations)
	require.WithinDuration(t, want.InstalledAt, got.InstalledAt, time.Second)
}

// TestFileChecksum hashes deterministic content and fails for missing files.
func TestFileChecksum(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	file := filepath.Join(dir, "flowd")
	require.NoError(t, os.WriteFile(file, []byte("binary contents"), 0o755))

	first, err := FileChecksum(file)
	require.NoError(t, err)
	require.NotEmpty(t, first)

	second, err := FileChecksum(file)
	require.NoError(t, err)
	require.Equal(t, first, second)

	_, err = FileChecksum(filepath.Join(dir, "missing"))
	require.Error(t, err)
}
