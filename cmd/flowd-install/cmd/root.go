package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/flowd-dev/flowd-installer/internal/config"
	"github.com/flowd-dev/flowd-installer/internal/logger"
	"github.com/flowd-dev/flowd-installer/internal/service/installer"
	"github.com/flowd-dev/flowd-installer/internal/version"
)

var (
	// installPath is the destination directory for the binary.
	installPath string
	// debugBuild selects the debug build output over the release one.
	debugBuild bool
	// dataOnly skips binary placement and stages data files only.
	dataOnly bool
	// logLevel configures logging verbosity.
	logLevel string

	// rootCmd represents the base command installing flowd onto the host.
	rootCmd = &cobra.Command{
		Use:   "flowd-install",
		Short: "Install the flowd binary, default config, and database migrations",
		Long: "Install the compiled flowd binary into the install path and stage its " +
			"data files (default configuration and database migrations) under the " +
			"system data directory. If any step fails, every completed step is " +
			"rolled back so the filesystem returns to its pre-install state.",
		Args: cobra.NoArgs,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			if level, ok := logger.ParseLogLevel(logLevel); ok {
				logger.SetLevel(level)
			}
		},
		RunE: func(_ *cobra.Command, _ []string) error {
			// Setup graceful shutdown handling.
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
			defer stop()

			options := &installer.Options{
				InstallPath: installPath,
				Debug:       debugBuild,
				DataOnly:    dataOnly,
			}

			return installer.Run(ctx, options)
		},
	}
)

// Execute runs the flowd-install CLI and exits with non-zero status on error.
func Execute() {
	version.AttachCobraVersionCommand(rootCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	// Setup command flags with consistent naming and descriptions.
	rootCmd.Flags().StringVarP(&installPath, "install-path", "i", config.DefaultInstallDir, "binary install destination path")
	rootCmd.Flags().BoolVarP(&debugBuild, "debug", "d", false, "install the debug binary instead of the release binary")
	rootCmd.Flags().BoolVarP(&dataOnly, "data-only", "n", false, "stage data files only without installing the binary")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "logging level (debug, info, warn, error)")
}
