package installer

import (
	"context"
	"errors"

	"go.uber.org/multierr"

	"github.com/flowd-dev/flowd-installer/internal/config"
	"github.com/flowd-dev/flowd-installer/internal/logger"
	"github.com/flowd-dev/flowd-installer/internal/rollback"
)

// Options contains inputs for the installer entry point.
type Options struct {
	// InstallPath is the destination directory for the binary.
	InstallPath string
	// Debug installs the debug build output instead of the release one.
	Debug bool
	// DataOnly stages data files only, skipping binary placement.
	DataOnly bool
	// DataDir overrides the fixed system data directory. Tests only;
	// the CLI never sets it.
	DataDir string
	// SourceRoot overrides the project root. Tests only.
	SourceRoot string
}

// Run executes the install workflow: build the configuration, run the
// mutation sequence, and on failure route the ledger into cleanup exactly
// once. The triggering error stays primary; cleanup failures are reported
// alongside it but never mask it.
func Run(ctx context.Context, opts *Options) error {
	ctx = logger.WithName(ctx, "flowd-install")

	variant := config.Release
	if opts.Debug {
		variant = config.Debug
	}

	cfg := config.NewInstallConfig(opts.InstallPath, variant, opts.DataOnly)
	if opts.DataDir != "" {
		cfg.DataDir = opts.DataDir
	}

	if opts.SourceRoot != "" {
		cfg.SourceRoot = opts.SourceRoot
	}

	if err := config.Validate(cfg); err != nil {
		return err
	}

	ledger, err := Install(ctx, cfg)
	if err == nil {
		logger.Info(ctx, "Install completed successfully")
		return nil
	}

	if errors.Is(err, ErrNotBuilt) {
		// Precondition failure: nothing was mutated, cleanup is not invoked.
		return err
	}

	if IsPermission(err) {
		logger.Error(ctx, "Permission denied, re-run with elevated privileges")
	}

	logger.Errorf(ctx, "Install failed: %v", err)
	logger.Info(ctx, "Cleaning up")

	if failures := rollback.Cleanup(ctx, ledger); len(failures) > 0 {
		var combined error
		for _, failure := range failures {
			combined = multierr.Append(combined, failure)
		}

		logger.Errorf(ctx, "Cleanup left %d action(s) undone: %v", len(failures), combined)
	} else {
		logger.Info(ctx, "Cleanup completed, no changes remain")
	}

	return err
}
