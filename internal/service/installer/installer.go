package installer

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/flowd-dev/flowd-installer/internal/config"
	"github.com/flowd-dev/flowd-installer/internal/fsops"
	"github.com/flowd-dev/flowd-installer/internal/logger"
	"github.com/flowd-dev/flowd-installer/internal/manifest"
	"github.com/flowd-dev/flowd-installer/internal/rollback"
)

// installer holds the state of a single install attempt.
// It is unexported—callers use Install, or Run for the full CLI workflow.
type installer struct {
	// cfg is the read-only configuration for this run.
	cfg *config.InstallConfig
	// ledger records completed mutations for rollback on failure.
	ledger *rollback.Ledger
	// migrations collects staged migration names for the manifest.
	migrations []string
}

// Install executes the ordered mutation sequence: binary placement, data
// directory creation, config staging, migrations staging, and the install
// manifest. It short-circuits on the first failure and returns the ledger in
// the state it held at that moment, so the caller can route it into
// rollback.Cleanup. The installer never cleans up after itself.
func Install(ctx context.Context, cfg *config.InstallConfig) (*rollback.Ledger, error) {
	ins := &installer{
		cfg:    cfg,
		ledger: rollback.NewLedger(),
	}

	if !cfg.SkipBinary {
		if err := ins.placeBinary(ctx); err != nil {
			return ins.ledger, err
		}
	}

	if err := ins.createDataDir(ctx); err != nil {
		return ins.ledger, err
	}

	if err := ins.stageConfig(ctx); err != nil {
		return ins.ledger, err
	}

	if err := ins.stageMigrations(ctx); err != nil {
		return ins.ledger, err
	}

	if err := ins.writeManifest(ctx); err != nil {
		return ins.ledger, err
	}

	return ins.ledger, nil
}

// placeBinary moves the build output into the install path.
func (ins *installer) placeBinary(ctx context.Context) error {
	source := ins.cfg.BuildOutputPath()

	exists, err := fsops.Exists(source)
	if err != nil {
		return stepErr(StepBinary, source, err)
	}

	if !exists {
		return fmt.Errorf("%s: %w", source, ErrNotBuilt)
	}

	running, err := isDaemonRunning()
	if err != nil {
		// A failed process scan is not worth aborting the install over.
		logger.Warnf(ctx, "Unable to scan running processes: %v", err)
	}

	if running {
		return ErrDaemonRunning
	}

	logger.Infof(ctx, "Installing %s binary to %s", ins.cfg.Variant, ins.cfg.InstallPath)

	destination := ins.cfg.BinaryInstallPath()

	exists, err = fsops.Exists(destination)
	if err != nil {
		return stepErr(StepBinary, destination, err)
	}

	if exists {
		// The displaced binary is gone for good; rollback does not restore it.
		if err = os.Remove(destination); err != nil {
			return stepErr(StepBinary, destination, err)
		}
	}

	if err = fsops.MoveFile(source, destination); err != nil {
		return stepErr(StepBinary, destination, err)
	}

	ins.ledger.Record(rollback.Action{
		Kind:        rollback.MoveFile,
		Source:      source,
		Destination: destination,
	})

	return nil
}

// createDataDir creates the fixed data directory when absent.
// A pre-existing directory gets no ledger entry: a failed re-run must not
// delete a directory the installer did not create.
func (ins *installer) createDataDir(_ context.Context) error {
	return ins.ensureDir(StepDataDir, ins.cfg.DataDir)
}

// stageConfig ensures the config subdirectory exists and copies the bundled
// default configuration into it, overwriting any previous copy.
func (ins *installer) stageConfig(ctx context.Context) error {
	logger.Info(ctx, "Copying default config")

	configDir := ins.cfg.ConfigDir()
	if err := ins.ensureDir(StepConfig, configDir); err != nil {
		return err
	}

	source := ins.cfg.SourceConfigFile()
	destination := filepath.Join(configDir, filepath.Base(source))

	// The copy is idempotent and needs no ledger entry of its own:
	// the directory's CreateDir undo removes its contents.
	if err := fsops.CopyFile(source, destination, config.DefaultFilePermissions); err != nil {
		return stepErr(StepConfig, destination, err)
	}

	return nil
}

// stageMigrations fully replaces the migrations directory with the bundled
// scripts. Stale files from a prior run must not linger.
func (ins *installer) stageMigrations(ctx context.Context) error {
	logger.Info(ctx, "Copying database migrations")

	migrationsDir := ins.cfg.MigrationsDir()

	exists, err := fsops.Exists(migrationsDir)
	if err != nil {
		return stepErr(StepMigrations, migrationsDir, err)
	}

	if exists {
		if err = os.RemoveAll(migrationsDir); err != nil {
			return stepErr(StepMigrations, migrationsDir, err)
		}
	}

	if err = os.Mkdir(migrationsDir, config.DefaultDirPermissions); err != nil {
		return stepErr(StepMigrations, migrationsDir, err)
	}

	ins.ledger.Record(rollback.Action{
		Kind:        rollback.CreateDir,
		Destination: migrationsDir,
	})

	source := ins.cfg.SourceMigrations()

	names, err := fsops.ListFiles(source)
	if err != nil {
		return stepErr(StepMigrations, source, err)
	}

	for _, name := range names {
		destination := filepath.Join(migrationsDir, name)
		if err = fsops.CopyFile(filepath.Join(source, name), destination, config.DefaultFilePermissions); err != nil {
			return stepErr(StepMigrations, destination, err)
		}
	}

	ins.migrations = names

	return nil
}

// writeManifest records the install outcome inside the data directory.
func (ins *installer) writeManifest(ctx context.Context) error {
	m := manifest.New()
	m.ConfigFile = filepath.Join(ins.cfg.ConfigDir(), filepath.Base(ins.cfg.SourceConfigFile()))
	m.Migrations = ins.migrations

	if !ins.cfg.SkipBinary {
		installed := ins.cfg.BinaryInstallPath()

		checksum, err := manifest.FileChecksum(installed)
		if err != nil {
			return stepErr(StepManifest, installed, err)
		}

		m.Binary = &manifest.Binary{
			Path:     installed,
			Checksum: checksum,
		}
	}

	path := filepath.Join(ins.cfg.DataDir, manifest.Filename)

	logger.Infof(ctx, "Writing install manifest to %s", path)

	if err := manifest.Save(path, m); err != nil {
		return stepErr(StepManifest, path, err)
	}

	ins.ledger.Record(rollback.Action{
		Kind:        rollback.CopyFile,
		Destination: path,
	})

	return nil
}

// ensureDir creates the directory when absent and records a CreateDir entry
// for it. Existing directories are left alone and unrecorded.
func (ins *installer) ensureDir(step, dir string) error {
	exists, err := fsops.Exists(dir)
	if err != nil {
		return stepErr(step, dir, err)
	}

	if exists {
		return nil
	}

	if err = os.Mkdir(dir, config.DefaultDirPermissions); err != nil {
		return stepErr(step, dir, err)
	}

	ins.ledger.Record(rollback.Action{
		Kind:        rollback.CreateDir,
		Destination: dir,
	})

	return nil
}
