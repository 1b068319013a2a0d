package integration

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/flowd-dev/flowd-installer/internal/config"
	"github.com/flowd-dev/flowd-installer/internal/manifest"
	"github.com/flowd-dev/flowd-installer/internal/service/installer"
)

// layout prepares a project root with build output and bundled assets plus the
// destination directories, returning ready-to-use installer options.
func layout(t *testing.T) (*installer.Options, string) {
	t.Helper()

	root := t.TempDir()
	sourceRoot := filepath.Join(root, "project")

	require.NoError(t, os.MkdirAll(filepath.Join(sourceRoot, "src", "resources", "config"), 0o755))
	require.NoError(t, os.WriteFile(
		filepath.Join(sourceRoot, config.SourceConfigPath),
		[]byte("concurrent_downloads = 4\n"), 0o644))

	migrations := filepath.Join(sourceRoot, config.SourceMigrationsDir)
	require.NoError(t, os.MkdirAll(migrations, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(migrations, "001_init.sql"), []byte("CREATE TABLE downloads;"), 0o644))

	target := filepath.Join(sourceRoot, config.Debug.TargetDir())
	require.NoError(t, os.MkdirAll(target, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(target, config.BinaryName), []byte("debug build"), 0o755))

	installPath := filepath.Join(root, "bin")
	require.NoError(t, os.Mkdir(installPath, 0o755))
	require.NoError(t, os.Mkdir(filepath.Join(root, "share"), 0o755))

	dataDir := filepath.Join(root, "share", "flowd")

	return &installer.Options{
		InstallPath: installPath,
		Debug:       true,
		DataDir:     dataDir,
		SourceRoot:  sourceRoot,
	}, dataDir
}

// TestInstaller_EndToEnd runs a full install and checks the produced tree,
// including the manifest checksum matching the installed binary.
func TestInstaller_EndToEnd(t *testing.T) {
	t.Parallel()

	opts, dataDir := layout(t)

	require.NoError(t, installer.Run(context.Background(), opts))

	installedBinary := filepath.Join(opts.InstallPath, config.BinaryName)

	contents, err := os.ReadFile(installedBinary)
	require.NoError(t, err)
	require.Equal(t, "debug build", string(contents))

	_, err = os.Stat(filepath.Join(dataDir, config.ConfigDirName, "config.toml"))
	require.NoError(t, err)
	_, err = os.Stat(filepath.Join(dataDir, config.MigrationsDirName, "001_init.sql"))
	require.NoError(t, err)

	m, err := manifest.Load(filepath.Join(dataDir, manifest.Filename))
	require.NoError(t, err)
	require.NotNil(t, m.Binary)

	checksum, err := manifest.FileChecksum(installedBinary)
	require.NoError(t, err)
	require.Equal(t, checksum, m.Binary.Checksum)
	require.Equal(t, []string{"001_init.sql"}, m.Migrations)
}

// TestInstaller_FailureLeavesNoTrace injects a failure after the data files
// were staged and verifies the end-to-end command erases everything it did.
func TestInstaller_FailureLeavesNoTrace(t *testing.T) {
	t.Parallel()

	opts, dataDir := layout(t)

	// An unreadable bundled config makes staging fail after the binary move
	// and data directory creation.
	require.NoError(t, os.Remove(filepath.Join(opts.SourceRoot, config.SourceConfigPath)))

	err := installer.Run(context.Background(), opts)
	require.Error(t, err)

	var step *installer.StepError
	require.ErrorAs(t, err, &step)
	require.Equal(t, installer.StepConfig, step.Step)

	_, statErr := os.Stat(dataDir)
	require.True(t, os.IsNotExist(statErr))
	_, statErr = os.Stat(filepath.Join(opts.InstallPath, config.BinaryName))
	require.True(t, os.IsNotExist(statErr))
}
